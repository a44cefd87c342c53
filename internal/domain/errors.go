package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is; the delivery layer maps each kind to an HTTP status.
var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("not found")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrConflict          = errors.New("conflict")
	ErrStorage           = errors.New("storage error")
)

// Error is a classified failure. Message is safe to show to callers, Err keeps the cause for logs.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func newError(kind error, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: cause}
}

func ValidationError(format string, args ...interface{}) error {
	return newError(ErrValidation, nil, format, args...)
}

func NotFoundError(format string, args ...interface{}) error {
	return newError(ErrNotFound, nil, format, args...)
}

func EmptyCartError() error {
	return newError(ErrEmptyCart, nil, "cart is empty")
}

func InvalidTransitionError(format string, args ...interface{}) error {
	return newError(ErrInvalidTransition, nil, format, args...)
}

func AuthError(format string, args ...interface{}) error {
	return newError(ErrUnauthorized, nil, format, args...)
}

func ForbiddenError(format string, args ...interface{}) error {
	return newError(ErrForbidden, nil, format, args...)
}

func ConflictError(format string, args ...interface{}) error {
	return newError(ErrConflict, nil, format, args...)
}

// StorageError wraps a persistence failure. If cause is already classified (not found, conflict)
// it is returned unchanged so its kind survives.
func StorageError(cause error, format string, args ...interface{}) error {
	var classified *Error
	if errors.As(cause, &classified) {
		return cause
	}
	return newError(ErrStorage, cause, format, args...)
}

// PublicMessage returns the caller-facing text for err. Storage and unclassified errors are
// reported generically.
func PublicMessage(err error) string {
	var classified *Error
	if errors.As(err, &classified) && !errors.Is(err, ErrStorage) {
		return classified.Message
	}
	return "Internal server error"
}
