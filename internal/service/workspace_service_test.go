package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/model"
)

func TestWorkspaceService_List(t *testing.T) {
	userID := uuid.New()
	workspaces := []model.Workspace{{ID: uuid.New(), UserID: userID, Title: "Trip"}}

	t.Run("includes profile", func(t *testing.T) {
		repo := new(MockWorkspaceRepository)
		users := new(MockUserRepository)
		users.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID, Name: "Jane", Email: "jane@example.com"}, nil)
		repo.On("ListByOwner", mock.Anything, userID).Return(workspaces, nil)

		got, profile, err := NewWorkspaceService(repo, users).List(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, workspaces, got)
		require.NotNil(t, profile)
		assert.Equal(t, model.Profile{ID: userID, Name: "Jane", Email: "jane@example.com"}, *profile)
	})

	t.Run("missing user yields nil profile", func(t *testing.T) {
		repo := new(MockWorkspaceRepository)
		users := new(MockUserRepository)
		users.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)
		repo.On("ListByOwner", mock.Anything, userID).Return([]model.Workspace{}, nil)

		got, profile, err := NewWorkspaceService(repo, users).List(context.Background(), userID)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Nil(t, profile)
	})

	t.Run("store failure", func(t *testing.T) {
		repo := new(MockWorkspaceRepository)
		users := new(MockUserRepository)
		users.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
		repo.On("ListByOwner", mock.Anything, userID).Return(nil, errors.New("timeout"))

		_, _, err := NewWorkspaceService(repo, users).List(context.Background(), userID)
		var storeErr *apperrors.StoreError
		assert.ErrorAs(t, err, &storeErr)
	})
}

func TestWorkspaceService_Create(t *testing.T) {
	userID := uuid.New()
	repo := new(MockWorkspaceRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Workspace")).Return(nil)

	svc := NewWorkspaceService(repo, new(MockUserRepository))
	fixed := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	svc.(*workspaceService).now = func() time.Time { return fixed }

	workspace, err := svc.Create(context.Background(), userID, "  Trip to Goa ", "")
	require.NoError(t, err)
	assert.Equal(t, userID, workspace.UserID)
	assert.Equal(t, "Trip to Goa", workspace.Title)
	assert.Equal(t, "", workspace.Description)
	assert.Equal(t, model.WorkspaceTypeCustom, workspace.Type)
	assert.Equal(t, fixed, workspace.CreatedAt)
	repo.AssertExpectations(t)
}
