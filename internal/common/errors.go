package common

import "errors"

var (
	// Session errors.
	ErrInvalidSession = errors.New("session requires both credential and user")
	ErrNotLoggedIn    = errors.New("not logged in")

	// Validation errors (client-side form checks).
	ErrValidation = errors.New("validation error")

	// Request flow control.
	ErrSuperseded = errors.New("request superseded by a newer one")
)
