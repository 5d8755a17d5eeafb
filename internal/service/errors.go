package service

import (
	"errors"
)

// Error categories. Handlers map them to HTTP status codes with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrAuth       = errors.New("authentication error")
	ErrForbidden  = errors.New("forbidden")
	ErrThrottled  = errors.New("too many requests")
)

// Error is a client-safe error tagged with its category.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Domain errors.
var (
	ErrDeviceIDRequired   = newError(ErrValidation, "deviceId is required")
	ErrDeviceNotFound     = newError(ErrNotFound, "Device not found")
	ErrInvalidCredentials = newError(ErrAuth, "Invalid credentials")
	ErrInvalidToken       = newError(ErrAuth, "Invalid or expired token")
	ErrMissingToken       = newError(ErrAuth, "Access token required")
	ErrAdminRequired      = newError(ErrForbidden, "Admin access required")
	ErrUserExists         = newError(ErrValidation, "User already exists")
	ErrPasswordTooShort   = newError(ErrValidation, "Password too short")
	ErrUsernameRequired   = newError(ErrValidation, "Username and password are required")
	ErrInvalidRole        = newError(ErrValidation, "Invalid role")
	ErrTooManyAttempts    = newError(ErrThrottled, "Too many login attempts, try again later")
)
