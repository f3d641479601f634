package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"expensetracker/internal/model"
)

// WorkspaceRepository defines workspace persistence operations.
type WorkspaceRepository interface {
	Create(ctx context.Context, workspace *model.Workspace) error
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]model.Workspace, error)
	FindByIDForOwner(ctx context.Context, id, userID uuid.UUID) (*model.Workspace, error)
}

type workspaceRepository struct {
	db *gorm.DB
}

// NewWorkspaceRepository creates a new workspace repository.
func NewWorkspaceRepository(db *gorm.DB) WorkspaceRepository {
	return &workspaceRepository{db: db}
}

// Create creates a new workspace.
func (r *workspaceRepository) Create(ctx context.Context, workspace *model.Workspace) error {
	return r.db.WithContext(ctx).Create(workspace).Error
}

// ListByOwner lists the user's workspaces, newest first.
func (r *workspaceRepository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]model.Workspace, error) {
	workspaces := []model.Workspace{}
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&workspaces).Error; err != nil {
		return nil, err
	}
	return workspaces, nil
}

// FindByIDForOwner finds a workspace by ID only if it belongs to userID.
func (r *workspaceRepository) FindByIDForOwner(ctx context.Context, id, userID uuid.UUID) (*model.Workspace, error) {
	var workspace model.Workspace
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&workspace).Error; err != nil {
		return nil, err
	}
	return &workspace, nil
}
