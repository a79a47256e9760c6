package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable     = errors.New("server unavailable")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotFound        = errors.New("not found")
	ErrInvalidResponse = errors.New("invalid response")
)

// unknownErrorMessage is reported for failures that carry no usable
// description, such as a refused connection.
const unknownErrorMessage = "an unknown error occurred"

// Error is the failure returned by every gateway call.
//
// Message is what a UI should show: the backend's "error" field when the
// response carried an envelope, "HTTP <status>: <status text>" when it did
// not, and a fixed fallback for transport failures. Error() returns Message
// unchanged.
type Error struct {
	Op      string
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return unknownErrorMessage
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func statusError(op string, status int, statusText, message, code string) *Error {
	if message == "" {
		message = fmt.Sprintf("HTTP %d: %s", status, statusText)
	}

	var kind error
	switch status {
	case http.StatusUnauthorized:
		kind = ErrUnauthorized
	case http.StatusNotFound:
		kind = ErrNotFound
	}

	return &Error{Op: op, Status: status, Code: code, Message: message, Err: kind}
}

func transportError(op string, err error) *Error {
	return &Error{Op: op, Message: unknownErrorMessage, Err: fmt.Errorf("%w: %w", ErrUnavailable, err)}
}
