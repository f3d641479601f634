package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"expensetracker/internal/model"
	"expensetracker/internal/service"
)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name" validate:"fullname"`
	Email    string `json:"email" validate:"emailshape"`
	Phone    string `json:"phone" validate:"phone10"`
	Password string `json:"password" validate:"min=6"`
}

var registerMessages = map[string]string{
	"Name":     "Name must be at least 2 characters",
	"Email":    "Invalid email format",
	"Phone":    "Phone must be 10 digits",
	"Password": "Password must be at least 6 characters",
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"emailshape"`
	Password string `json:"password" validate:"required"`
}

var loginMessages = map[string]string{
	"Email":    "Invalid email format",
	"Password": "Password is required",
}

// RegisterResponse is returned after registration.
type RegisterResponse struct {
	Message string    `json:"message"`
	UserID  uuid.UUID `json:"userId"`
	Token   string    `json:"token"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Message string        `json:"message"`
	Token   string        `json:"token"`
	User    model.Profile `json:"user"`
}

// VerifyResponse is returned by the email verification link.
type VerifyResponse struct {
	Message  string `json:"message"`
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} RegisterResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	if err := c.Validate(&req); err != nil {
		return validationError(err, registerMessages)
	}
	if len(req.Password) > maxPasswordBytes {
		return badRequest("Password must be at most 72 bytes", "VALIDATION_ERROR")
	}

	result, err := h.authService.Register(c.Request().Context(), service.RegisterCommand{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusCreated, RegisterResponse{
		Message: "User registered successfully. Check your email to verify.",
		UserID:  result.UserID,
		Token:   result.VerificationToken,
	})
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	if err := c.Validate(&req); err != nil {
		return validationError(err, loginMessages)
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Message: "Login successful",
		Token:   token,
		User:    user.Profile(),
	})
}

// Verify godoc
// @Summary Verify email address
// @Tags auth
// @Produce json
// @Param token query string true "Verification token"
// @Success 200 {object} VerifyResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/verify [get]
func (h *AuthHandler) Verify(c echo.Context) error {
	result, err := h.authService.VerifyEmail(c.Request().Context(), c.QueryParam("token"))
	if err != nil {
		return fail(err)
	}

	message := "Email verified successfully!"
	if result.AlreadyVerified {
		message = "Email already verified"
	}
	return c.JSON(http.StatusOK, VerifyResponse{
		Message:  message,
		Email:    result.Email,
		Verified: result.Verified,
	})
}
