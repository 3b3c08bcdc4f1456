package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("email is already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownRole        = errors.New("unknown role")
	ErrForbidden          = errors.New("access forbidden")

	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ValidationError is a business-rule failure whose message is safe to show
// to the caller verbatim.
type ValidationError struct {
	Msg string
	Err error
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Unwrap() error { return e.Err }
