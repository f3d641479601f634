package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"expensetracker/internal/auth"
	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/validate"
)

// MessageResponse is a body carrying only a human readable message.
type MessageResponse struct {
	Message string `json:"message"`
}

// fail converts a service error into the HTTP error echo renders.
func fail(err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func badRequest(message, code string) error {
	return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func invalidBody() error {
	return badRequest("Invalid request body", "INVALID_REQUEST")
}

// validationError reports the message for the first failed field, falling back to
// a generic one for fields missing from messages.
func validationError(err error, messages map[string]string) error {
	if field, _, ok := validate.FirstField(err); ok {
		if msg, found := messages[field]; found {
			return badRequest(msg, "VALIDATION_ERROR")
		}
	}
	return badRequest("Invalid request", "VALIDATION_ERROR")
}

// identity returns the caller's claims set by auth.Guard.
func identity(c echo.Context) (*auth.Claims, error) {
	claims, ok := auth.IdentityFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
			Error: "Invalid or expired token",
			Code:  "INVALID_TOKEN",
		})
	}
	return claims, nil
}

// Amount decodes a JSON number or a numeric string. Set stays false for an
// absent, null or empty value.
type Amount struct {
	Value float64
	Set   bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	raw := string(data)
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			return fmt.Errorf("amount: %w", err)
		}
		raw = unquoted
		if raw == "" {
			return nil
		}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return errors.New("amount must be a number")
	}
	a.Value = v
	a.Set = true
	return nil
}
