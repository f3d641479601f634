package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"expensetracker/internal/db"
	apperrors "expensetracker/internal/errors"
)

// HealthHandler reports process and store liveness.
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(gormDB *gorm.DB) *HealthHandler {
	return &HealthHandler{db: gormDB}
}

// StoreHealthResponse reports a successful store ping.
type StoreHealthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}

// Live godoc
// @Summary Liveness probe
// @Tags health
// @Produce plain
// @Success 200 {string} string "ok"
// @Router /healthz [get]
func (h *HealthHandler) Live(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Store godoc
// @Summary Store connectivity probe
// @Tags health
// @Produce json
// @Success 200 {object} StoreHealthResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /healthz/store [get]
func (h *HealthHandler) Store(c echo.Context) error {
	if err := db.Ping(c.Request().Context(), h.db); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{
			Error:   "Store connection failed",
			Code:    "STORE_UNAVAILABLE",
			Details: err.Error(),
		})
	}
	return c.JSON(http.StatusOK, StoreHealthResponse{Status: "ok", Store: h.db.Dialector.Name()})
}
