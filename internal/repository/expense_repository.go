package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"expensetracker/internal/model"
)

// ExpenseFilter narrows an owner's expense listing.
type ExpenseFilter struct {
	WorkspaceID *uuid.UUID
}

// ExpenseRepository defines expense persistence operations. Every lookup is scoped
// to the owning user.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *model.Expense) error
	ListByOwner(ctx context.Context, userID uuid.UUID, filter ExpenseFilter) ([]model.Expense, error)
	FindByIDForOwner(ctx context.Context, id, userID uuid.UUID) (*model.Expense, error)
	Update(ctx context.Context, expense *model.Expense) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository.
func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

// Create creates a new expense record.
func (r *expenseRepository) Create(ctx context.Context, expense *model.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

// ListByOwner lists the user's expenses, most recent date first.
func (r *expenseRepository) ListByOwner(ctx context.Context, userID uuid.UUID, filter ExpenseFilter) ([]model.Expense, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.WorkspaceID != nil {
		q = q.Where("workspace_id = ?", *filter.WorkspaceID)
	}

	expenses := []model.Expense{}
	if err := q.Order("date DESC").Order("created_at DESC").Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// FindByIDForOwner finds an expense by ID only if it belongs to userID.
func (r *expenseRepository) FindByIDForOwner(ctx context.Context, id, userID uuid.UUID) (*model.Expense, error) {
	var expense model.Expense
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&expense).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

// Update saves the mutable fields of an existing expense.
func (r *expenseRepository) Update(ctx context.Context, expense *model.Expense) error {
	return r.db.WithContext(ctx).Model(&model.Expense{}).
		Where("id = ? AND user_id = ?", expense.ID, expense.UserID).
		Updates(map[string]interface{}{
			"amount":      expense.Amount,
			"description": expense.Description,
			"category":    expense.Category,
			"date":        expense.Date,
		}).Error
}

// Delete removes an expense owned by userID.
func (r *expenseRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Expense{}).Error
}
