package services

import (
	"strings"

	"github.com/dmitrijs2005/sessionkeeper/internal/common"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// RegisterForm is what the user typed on the registration screen.
type RegisterForm struct {
	Name     string
	Email    string
	Password string
	Confirm  string
}

// ValidationError is a form problem detected before contacting the backend.
// Its message is meant to be shown to the user as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return common.ErrValidation }

// Validate checks the form in display order and reports the first problem.
func (f RegisterForm) Validate() error {
	switch {
	case f.Name == "" || f.Email == "" || f.Password == "":
		return &ValidationError{Message: "all fields are required"}
	case !strings.Contains(f.Email, "@"):
		return &ValidationError{Field: "email", Message: "enter a valid email address"}
	case len([]rune(f.Password)) < MinPasswordLength:
		return &ValidationError{Field: "password", Message: "password must be at least 6 characters"}
	case f.Password != f.Confirm:
		return &ValidationError{Field: "confirm", Message: "passwords do not match"}
	}
	return nil
}
