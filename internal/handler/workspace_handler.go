package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"expensetracker/internal/model"
	"expensetracker/internal/service"
)

// WorkspaceHandler handles workspace endpoints.
type WorkspaceHandler struct {
	workspaceService service.WorkspaceService
}

// NewWorkspaceHandler creates a new workspace handler.
func NewWorkspaceHandler(workspaceService service.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService}
}

// CreateWorkspaceRequest represents a workspace creation request.
type CreateWorkspaceRequest struct {
	Title       string `json:"title" validate:"notblank"`
	Description string `json:"description"`
}

// WorkspaceListResponse lists the caller's workspaces with their profile.
type WorkspaceListResponse struct {
	Workspaces []model.Workspace `json:"workspaces"`
	User       *model.Profile    `json:"user"`
}

// WorkspaceResponse wraps a single workspace.
type WorkspaceResponse struct {
	Workspace *model.Workspace `json:"workspace"`
}

// List godoc
// @Summary List workspaces
// @Tags workspaces
// @Produce json
// @Security BearerAuth
// @Success 200 {object} WorkspaceListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /workspaces [get]
func (h *WorkspaceHandler) List(c echo.Context) error {
	claims, err := identity(c)
	if err != nil {
		return err
	}

	workspaces, profile, err := h.workspaceService.List(c.Request().Context(), claims.UserID)
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusOK, WorkspaceListResponse{Workspaces: workspaces, User: profile})
}

// Create godoc
// @Summary Create a workspace
// @Tags workspaces
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateWorkspaceRequest true "Workspace data"
// @Success 201 {object} WorkspaceResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /workspaces [post]
func (h *WorkspaceHandler) Create(c echo.Context) error {
	claims, err := identity(c)
	if err != nil {
		return err
	}

	var req CreateWorkspaceRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	if err := c.Validate(&req); err != nil {
		return badRequest("Title is required", "VALIDATION_ERROR")
	}

	workspace, err := h.workspaceService.Create(c.Request().Context(), claims.UserID, req.Title, req.Description)
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusCreated, WorkspaceResponse{Workspace: workspace})
}
