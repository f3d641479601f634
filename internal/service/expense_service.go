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
	"expensetracker/internal/validate"
)

// ExpenseQuery selects the caller's expenses for a month, optionally in one workspace.
type ExpenseQuery struct {
	WorkspaceID *uuid.UUID
	Period      Period
}

// CreateExpenseCommand carries the fields of a new expense.
type CreateExpenseCommand struct {
	WorkspaceID uuid.UUID
	Amount      float64
	Description string
	Category    string
	Date        model.Date
}

// UpdateExpenseCommand carries the mutable fields of an expense. A nil Date keeps
// the stored one.
type UpdateExpenseCommand struct {
	Amount      float64
	Description string
	Category    string
	Date        *model.Date
}

// ExpenseService handles expense operations scoped to the calling user.
type ExpenseService interface {
	List(ctx context.Context, userID uuid.UUID, q ExpenseQuery) ([]model.Expense, error)
	Create(ctx context.Context, userID uuid.UUID, cmd CreateExpenseCommand) (*model.Expense, error)
	Update(ctx context.Context, userID, id uuid.UUID, cmd UpdateExpenseCommand) (*model.Expense, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Summary(ctx context.Context, userID uuid.UUID, q ExpenseQuery) (*Summary, error)
}

type expenseService struct {
	repo          repository.ExpenseRepository
	workspaceRepo repository.WorkspaceRepository
	now           func() time.Time
}

// NewExpenseService creates a new expense service.
func NewExpenseService(repo repository.ExpenseRepository, workspaceRepo repository.WorkspaceRepository) ExpenseService {
	return &expenseService{repo: repo, workspaceRepo: workspaceRepo, now: time.Now}
}

// List fetches the user's expenses and keeps those dated inside q.Period.
// The month filter runs in-process on the fetched rows.
func (s *expenseService) List(ctx context.Context, userID uuid.UUID, q ExpenseQuery) ([]model.Expense, error) {
	expenses, err := s.repo.ListByOwner(ctx, userID, repository.ExpenseFilter{WorkspaceID: q.WorkspaceID})
	if err != nil {
		return nil, apperrors.Store("list expenses", err)
	}
	return FilterByPeriod(expenses, q.Period), nil
}

func (s *expenseService) Create(ctx context.Context, userID uuid.UUID, cmd CreateExpenseCommand) (*model.Expense, error) {
	if !validate.Expense(cmd.Amount, cmd.Description, cmd.Category) {
		return nil, apperrors.ErrInvalidExpense
	}

	if _, err := s.workspaceRepo.FindByIDForOwner(ctx, cmd.WorkspaceID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrWorkspaceNotFound
		}
		return nil, apperrors.Store("find workspace", err)
	}

	expense := &model.Expense{
		UserID:      userID,
		WorkspaceID: cmd.WorkspaceID,
		Amount:      cmd.Amount,
		Description: strings.TrimSpace(cmd.Description),
		Category:    strings.TrimSpace(cmd.Category),
		Date:        cmd.Date,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.Create(ctx, expense); err != nil {
		return nil, apperrors.Store("create expense", err)
	}
	return expense, nil
}

// Update validates cmd, then loads the expense scoped to userID before writing.
// A foreign expense is reported exactly like a missing one.
func (s *expenseService) Update(ctx context.Context, userID, id uuid.UUID, cmd UpdateExpenseCommand) (*model.Expense, error) {
	if !validate.Expense(cmd.Amount, cmd.Description, cmd.Category) {
		return nil, apperrors.ErrInvalidExpense
	}

	expense, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	expense.Amount = cmd.Amount
	expense.Description = strings.TrimSpace(cmd.Description)
	expense.Category = strings.TrimSpace(cmd.Category)
	if cmd.Date != nil {
		expense.Date = *cmd.Date
	}
	if err := s.repo.Update(ctx, expense); err != nil {
		return nil, apperrors.Store("update expense", err)
	}
	return expense, nil
}

func (s *expenseService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.findOwned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return apperrors.Store("delete expense", err)
	}
	return nil
}

func (s *expenseService) Summary(ctx context.Context, userID uuid.UUID, q ExpenseQuery) (*Summary, error) {
	expenses, err := s.List(ctx, userID, q)
	if err != nil {
		return nil, err
	}
	summary := Summarize(expenses)
	return &summary, nil
}

func (s *expenseService) findOwned(ctx context.Context, userID, id uuid.UUID) (*model.Expense, error) {
	expense, err := s.repo.FindByIDForOwner(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Store("find expense", err)
	}
	return expense, nil
}
