package router

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"expensetracker/internal/auth"
	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/handler"
	"expensetracker/internal/logging"
	"expensetracker/internal/validate"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	logger *zap.Logger,
	authHandler *handler.AuthHandler,
	workspaceHandler *handler.WorkspaceHandler,
	expenseHandler *handler.ExpenseHandler,
	healthHandler *handler.HealthHandler,
) {
	if logger == nil {
		logger = zap.NewNop()
	}

	e.HTTPErrorHandler = ErrorHandler(e, logger)
	e.Validator = &CustomValidator{validator: validate.New()}

	e.Use(middleware.RequestID())
	e.Use(logging.RequestLogger(logger))
	e.Use(middleware.Recover())

	e.GET("/healthz", healthHandler.Live)
	e.GET("/healthz/store", healthHandler.Store)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/verify", authHandler.Verify)

	// Secured routes (require a bearer token)
	secured := e.Group("", auth.Guard(jwtService))

	secured.GET("/workspaces", workspaceHandler.List)
	secured.POST("/workspaces", workspaceHandler.Create)

	secured.GET("/expenses", expenseHandler.List)
	secured.POST("/expenses", expenseHandler.Create)
	secured.GET("/expenses/summary", expenseHandler.Summary)
	secured.PUT("/expenses/:id", expenseHandler.Update)
	secured.DELETE("/expenses/:id", expenseHandler.Delete)
}

// ErrorHandler renders *echo.HTTPError as usual and turns every other error into
// a generic 500 with a timestamp.
func ErrorHandler(e *echo.Echo, logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			e.DefaultHTTPErrorHandler(err, c)
			return
		}

		logger.Error("unhandled error",
			zap.String("path", c.Request().URL.Path),
			zap.Error(err),
		)
		if c.Response().Committed {
			return
		}
		if jsonErr := c.JSON(http.StatusInternalServerError, apperrors.Internal(time.Now())); jsonErr != nil {
			logger.Error("write error response", zap.Error(jsonErr))
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
