package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/model"
	"expensetracker/internal/service"
)

// ExpenseHandler handles expense and summary endpoints.
type ExpenseHandler struct {
	expenseService service.ExpenseService
	now            func() time.Time
}

// NewExpenseHandler creates a new expense handler.
func NewExpenseHandler(expenseService service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, now: time.Now}
}

// CreateExpenseRequest represents an expense creation request. Amount accepts a
// number or a numeric string.
type CreateExpenseRequest struct {
	Amount      Amount `json:"amount" swaggertype:"number"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Date        string `json:"date" validate:"required"`
	WorkspaceID string `json:"workspace_id" validate:"required"`
}

// UpdateExpenseRequest represents an expense update request. Date is optional.
type UpdateExpenseRequest struct {
	Amount      Amount  `json:"amount" swaggertype:"number"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Date        *string `json:"date,omitempty"`
}

// ExpenseListResponse lists expenses.
type ExpenseListResponse struct {
	Expenses []model.Expense `json:"expenses"`
}

// ExpenseResponse wraps a single expense.
type ExpenseResponse struct {
	Message string         `json:"message,omitempty"`
	Expense *model.Expense `json:"expense"`
}

// SummaryResponse wraps a monthly summary.
type SummaryResponse struct {
	Summary *service.Summary `json:"summary"`
}

// List godoc
// @Summary List expenses for a month
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param workspace_id query string false "Workspace ID"
// @Param month query int false "Month (1-12), defaults to the current month"
// @Param year query int false "Year, defaults to the current year"
// @Success 200 {object} ExpenseListResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /expenses [get]
func (h *ExpenseHandler) List(c echo.Context) error {
	claims, err := identity(c)
	if err != nil {
		return err
	}
	query, err := h.parseQuery(c)
	if err != nil {
		return err
	}

	expenses, err := h.expenseService.List(c.Request().Context(), claims.UserID, query)
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusOK, ExpenseListResponse{Expenses: expenses})
}

// Create godoc
// @Summary Create an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateExpenseRequest true "Expense data"
// @Success 201 {object} ExpenseResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /expenses [post]
func (h *ExpenseHandler) Create(c echo.Context) error {
	claims, err := identity(c)
	if err != nil {
		return err
	}

	var req CreateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	if err := c.Validate(&req); err != nil || !req.Amount.Set {
		return badRequest("Missing required fields", "VALIDATION_ERROR")
	}

	date, err := model.ParseDate(req.Date)
	if err != nil {
		return badRequest("Invalid date", "INVALID_DATE")
	}
	workspaceID, err := uuid.Parse(req.WorkspaceID)
	if err != nil {
		return fail(apperrors.ErrWorkspaceNotFound)
	}

	expense, err := h.expenseService.Create(c.Request().Context(), claims.UserID, service.CreateExpenseCommand{
		WorkspaceID: workspaceID,
		Amount:      req.Amount.Value,
		Description: req.Description,
		Category:    req.Category,
		Date:        date,
	})
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusCreated, ExpenseResponse{Expense: expense})
}

// Update godoc
// @Summary Update an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Expense ID"
// @Param request body UpdateExpenseRequest true "Expense data"
// @Success 200 {object} ExpenseResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /expenses/{id} [put]
func (h *ExpenseHandler) Update(c echo.Context) error {
	claims, err := identity(c)
	if err != nil {
		return err
	}
	id, err := expenseID(c)
	if err != nil {
		return err
	}

	var req UpdateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	cmd := service.UpdateExpenseCommand{
		Amount:      req.Amount.Value,
		Description: req.Description,
		Category:    req.Category,
	}
	if req.Date != nil && *req.Date != "" {
		date, err := model.ParseDate(*req.Date)
		if err != nil {
			return badRequest("Invalid date", "INVALID_DATE")
		}
		cmd.Date = &date
	}

	expense, err := h.expenseService.Update(c.Request().Context(), claims.UserID, id, cmd)
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusOK, ExpenseResponse{Message: "Expense updated successfully", Expense: expense})
}

// Delete godoc
// @Summary Delete an expense
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Expense ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c echo.Context) error {
	claims, err := identity(c)
	if err != nil {
		return err
	}
	id, err := expenseID(c)
	if err != nil {
		return err
	}

	if err := h.expenseService.Delete(c.Request().Context(), claims.UserID, id); err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Expense deleted successfully"})
}

// Summary godoc
// @Summary Summarize expenses for a month
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param workspace_id query string false "Workspace ID"
// @Param month query int false "Month (1-12), defaults to the current month"
// @Param year query int false "Year, defaults to the current year"
// @Success 200 {object} SummaryResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /expenses/summary [get]
func (h *ExpenseHandler) Summary(c echo.Context) error {
	claims, err := identity(c)
	if err != nil {
		return err
	}
	query, err := h.parseQuery(c)
	if err != nil {
		return err
	}

	summary, err := h.expenseService.Summary(c.Request().Context(), claims.UserID, query)
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusOK, SummaryResponse{Summary: summary})
}

// parseQuery reads workspace_id, month and year. Month and year default to the
// current UTC month.
func (h *ExpenseHandler) parseQuery(c echo.Context) (service.ExpenseQuery, error) {
	now := h.now().UTC()
	q := service.ExpenseQuery{Period: service.Period{Month: int(now.Month()), Year: now.Year()}}

	if raw := c.QueryParam("workspace_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return q, badRequest("Invalid workspace_id", "INVALID_WORKSPACE_ID")
		}
		q.WorkspaceID = &id
	}

	if raw := c.QueryParam("month"); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil || month < 1 || month > 12 {
			return q, badRequest("Invalid month", "INVALID_MONTH")
		}
		q.Period.Month = month
	}

	if raw := c.QueryParam("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year < 1 || year > 9999 {
			return q, badRequest("Invalid year", "INVALID_YEAR")
		}
		q.Period.Year = year
	}

	return q, nil
}

// expenseID parses the path id. A malformed id cannot name an owned expense, so
// it is reported as not found.
func expenseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, fail(apperrors.ErrExpenseNotFound)
	}
	return id, nil
}
