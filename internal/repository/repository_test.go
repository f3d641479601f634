package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"expensetracker/internal/db"
	"expensetracker/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gormDB, err := db.Open("sqlite", "file::memory:")
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gormDB))
	return gormDB
}

func createUser(t *testing.T, repo UserRepository, email string) *model.User {
	t.Helper()
	user := &model.User{Name: "Jane", Email: email, PasswordHash: "x", PhoneHash: "y"}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func date(y int, m time.Month, d int) model.Date {
	return model.NewDate(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	user := createUser(t, repo, "jane@example.com")
	assert.NotEqual(t, uuid.Nil, user.ID)

	found, err := repo.FindByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.False(t, found.IsVerified)

	_, err = repo.FindByEmail(ctx, "JANE@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "email equality is case-sensitive")

	require.NoError(t, repo.MarkVerified(ctx, user.ID))
	found, err = repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, found.IsVerified)

	assert.ErrorIs(t, repo.MarkVerified(ctx, uuid.New()), gorm.ErrRecordNotFound)
}

func TestUserRepository_UniqueEmail(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	createUser(t, repo, "jane@example.com")

	err := repo.Create(context.Background(), &model.User{Name: "Jane", Email: "jane@example.com", PasswordHash: "x", PhoneHash: "y"})
	assert.Error(t, err)
}

func TestWorkspaceRepository(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	users := NewUserRepository(gormDB)
	repo := NewWorkspaceRepository(gormDB)

	owner := createUser(t, users, "owner@example.com")
	other := createUser(t, users, "other@example.com")

	older := &model.Workspace{UserID: owner.ID, Title: "Home", Type: model.WorkspaceTypeCustom, CreatedAt: time.Now().Add(-time.Hour)}
	newer := &model.Workspace{UserID: owner.ID, Title: "Travel", Type: model.WorkspaceTypeCustom, CreatedAt: time.Now()}
	foreign := &model.Workspace{UserID: other.ID, Title: "Theirs", Type: model.WorkspaceTypeCustom}
	for _, w := range []*model.Workspace{older, newer, foreign} {
		require.NoError(t, repo.Create(ctx, w))
	}

	list, err := repo.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Travel", list[0].Title)
	assert.Equal(t, "Home", list[1].Title)

	found, err := repo.FindByIDForOwner(ctx, older.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Home", found.Title)

	_, err = repo.FindByIDForOwner(ctx, foreign.ID, owner.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	empty, err := repo.ListByOwner(ctx, uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestExpenseRepository(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	users := NewUserRepository(gormDB)
	workspaces := NewWorkspaceRepository(gormDB)
	repo := NewExpenseRepository(gormDB)

	owner := createUser(t, users, "owner@example.com")
	other := createUser(t, users, "other@example.com")

	home := &model.Workspace{UserID: owner.ID, Title: "Home", Type: model.WorkspaceTypeCustom}
	trip := &model.Workspace{UserID: owner.ID, Title: "Trip", Type: model.WorkspaceTypeCustom}
	require.NoError(t, workspaces.Create(ctx, home))
	require.NoError(t, workspaces.Create(ctx, trip))

	rent := &model.Expense{UserID: owner.ID, WorkspaceID: home.ID, Amount: 1200, Description: "Rent", Category: "Housing", Date: date(2024, 2, 1)}
	train := &model.Expense{UserID: owner.ID, WorkspaceID: trip.ID, Amount: 45.5, Description: "Train", Category: "Transport", Date: date(2024, 2, 15)}
	theirs := &model.Expense{UserID: other.ID, WorkspaceID: home.ID, Amount: 9, Description: "Coffee", Category: "Food", Date: date(2024, 2, 15)}
	for _, e := range []*model.Expense{rent, train, theirs} {
		require.NoError(t, repo.Create(ctx, e))
	}

	all, err := repo.ListByOwner(ctx, owner.ID, ExpenseFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Train", all[0].Description, "most recent date first")
	assert.Equal(t, "2024-02-15", all[0].Date.String())

	scoped, err := repo.ListByOwner(ctx, owner.ID, ExpenseFilter{WorkspaceID: &home.ID})
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "Rent", scoped[0].Description)

	_, err = repo.FindByIDForOwner(ctx, theirs.ID, owner.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	found, err := repo.FindByIDForOwner(ctx, rent.ID, owner.ID)
	require.NoError(t, err)
	found.Amount = 1250
	found.Category = "Rent"
	found.Date = date(2024, 3, 1)
	require.NoError(t, repo.Update(ctx, found))

	updated, err := repo.FindByIDForOwner(ctx, rent.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 1250.0, updated.Amount)
	assert.Equal(t, "Rent", updated.Category)
	assert.Equal(t, "2024-03-01", updated.Date.String())

	require.NoError(t, repo.Delete(ctx, rent.ID, owner.ID))
	_, err = repo.FindByIDForOwner(ctx, rent.ID, owner.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.Delete(ctx, theirs.ID, owner.ID))
	_, err = repo.FindByIDForOwner(ctx, theirs.ID, other.ID)
	assert.NoError(t, err, "delete is scoped to the owner")
}
