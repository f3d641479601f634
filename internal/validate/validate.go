// Package validate holds the field shape checks shared by every endpoint.
package validate

import (
	"errors"
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email reports whether s has the local@domain.tld shape.
func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// Phone reports whether s holds exactly 10 digits once every non-digit is stripped.
func Phone(s string) bool {
	return len(Digits(s)) == 10
}

// Digits returns s with every non-digit rune removed.
func Digits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// Name reports whether the trimmed name has at least two characters.
func Name(s string) bool {
	return len([]rune(strings.TrimSpace(s))) >= 2
}

// NotBlank reports whether s has any non-space content.
func NotBlank(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) }) >= 0
}

// MaxAmount is the largest amount a single expense may carry.
const MaxAmount = 1e12

// Amount reports whether v is a finite positive value no larger than MaxAmount.
func Amount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0 && v <= MaxAmount
}

// Expense reports whether amount is valid and description and category are not blank.
func Expense(amount float64, description, category string) bool {
	return Amount(amount) && NotBlank(description) && NotBlank(category)
}

// New returns a validator with the custom tags used by request structs:
// emailshape, phone10, fullname and notblank.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	register := func(tag string, fn func(string) bool) {
		// RegisterValidation only fails for empty tags.
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return fn(fl.Field().String())
		})
	}
	register("emailshape", Email)
	register("phone10", Phone)
	register("fullname", Name)
	register("notblank", NotBlank)
	return v
}

// FirstField returns the struct field name and tag of the first failed rule in err.
func FirstField(err error) (field, tag string, ok bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "", "", false
	}
	return verrs[0].StructField(), verrs[0].Tag(), true
}
