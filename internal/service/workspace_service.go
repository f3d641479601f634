package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/model"
	"expensetracker/internal/repository"
)

// WorkspaceService handles workspace operations for the calling user.
type WorkspaceService interface {
	// List returns the user's workspaces newest first and the user's profile, which
	// is nil when the user row no longer exists.
	List(ctx context.Context, userID uuid.UUID) ([]model.Workspace, *model.Profile, error)
	Create(ctx context.Context, userID uuid.UUID, title, description string) (*model.Workspace, error)
}

type workspaceService struct {
	repo     repository.WorkspaceRepository
	userRepo repository.UserRepository
	now      func() time.Time
}

// NewWorkspaceService creates a new workspace service.
func NewWorkspaceService(repo repository.WorkspaceRepository, userRepo repository.UserRepository) WorkspaceService {
	return &workspaceService{repo: repo, userRepo: userRepo, now: time.Now}
}

func (s *workspaceService) List(ctx context.Context, userID uuid.UUID) ([]model.Workspace, *model.Profile, error) {
	var profile *model.Profile
	user, err := s.userRepo.FindByID(ctx, userID)
	switch {
	case err == nil:
		p := user.Profile()
		profile = &p
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil, apperrors.Store("find user", err)
	}

	workspaces, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, nil, apperrors.Store("list workspaces", err)
	}
	return workspaces, profile, nil
}

func (s *workspaceService) Create(ctx context.Context, userID uuid.UUID, title, description string) (*model.Workspace, error) {
	workspace := &model.Workspace{
		UserID:      userID,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Type:        model.WorkspaceTypeCustom,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.Create(ctx, workspace); err != nil {
		return nil, apperrors.Store("create workspace", err)
	}
	return workspace, nil
}
