package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrUserAlreadyExists is returned when trying to register an existing email.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailNotVerified is returned when an unverified user tries to log in.
	ErrEmailNotVerified = errors.New("email not verified")
	// ErrTooManyAttempts is returned when login is throttled for an email.
	ErrTooManyAttempts = errors.New("too many login attempts")
	// ErrMissingVerificationToken is returned when the verify link carries no token.
	ErrMissingVerificationToken = errors.New("missing verification token")
	// ErrInvalidVerificationToken is returned when the verification token is expired or forged.
	ErrInvalidVerificationToken = errors.New("invalid or expired verification token")
	// ErrUserNotFound is returned when a token refers to a user that no longer exists.
	ErrUserNotFound = errors.New("user not found")
	// ErrWorkspaceNotFound is returned when a workspace does not exist or is not owned by the caller.
	ErrWorkspaceNotFound = errors.New("workspace not found")
	// ErrExpenseNotFound is returned when an expense does not exist or is not owned by the caller.
	ErrExpenseNotFound = errors.New("expense not found")
	// ErrInvalidExpense is returned when expense fields fail validation.
	ErrInvalidExpense = errors.New("invalid expense data")
)

// domainErrors lists the client-facing status, message and code of each sentinel.
var domainErrors = []struct {
	err     error
	status  int
	message string
	code    string
}{
	{ErrUserAlreadyExists, http.StatusConflict, "User already exists", "USER_ALREADY_EXISTS"},
	{ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password", "INVALID_CREDENTIALS"},
	{ErrEmailNotVerified, http.StatusForbidden, "Please verify your email first. Check your inbox for verification link.", "EMAIL_NOT_VERIFIED"},
	{ErrTooManyAttempts, http.StatusTooManyRequests, "Too many login attempts. Try again later.", "TOO_MANY_ATTEMPTS"},
	{ErrMissingVerificationToken, http.StatusBadRequest, "No verification token provided", "MISSING_TOKEN"},
	{ErrInvalidVerificationToken, http.StatusUnauthorized, "Token has expired or is invalid", "INVALID_TOKEN"},
	{ErrUserNotFound, http.StatusNotFound, "User account not found", "USER_NOT_FOUND"},
	{ErrWorkspaceNotFound, http.StatusNotFound, "Workspace not found", "WORKSPACE_NOT_FOUND"},
	{ErrExpenseNotFound, http.StatusNotFound, "Expense not found or unauthorized", "EXPENSE_NOT_FOUND"},
	{ErrInvalidExpense, http.StatusBadRequest, "Invalid expense data", "INVALID_EXPENSE"},
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Details   string `json:"details,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Details    string
	Timestamp  string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:     e.Message,
		Code:      e.Code,
		Details:   e.Details,
		Timestamp: e.Timestamp,
	}
}

// StoreError marks a failed call to the data store. Its cause is surfaced to the
// caller for operator diagnosis.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Store wraps err as a StoreError for the named operation. A nil err stays nil.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	for _, d := range domainErrors {
		if errors.Is(err, d.err) {
			return NewHTTPError(d.status, d.message, d.code)
		}
	}

	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		httpErr := NewHTTPError(http.StatusInternalServerError, "Database error", "STORE_ERROR")
		httpErr.Details = storeErr.Error()
		return httpErr
	}
	internal := Internal(time.Now())
	httpErr := NewHTTPError(http.StatusInternalServerError, internal.Error, internal.Code)
	httpErr.Timestamp = internal.Timestamp
	return httpErr
}

// Internal builds the generic response body for failures that escaped every handler.
func Internal(now time.Time) ErrorResponse {
	return ErrorResponse{
		Error:     "Internal server error",
		Code:      "INTERNAL_ERROR",
		Timestamp: now.UTC().Format(time.RFC3339),
	}
}
