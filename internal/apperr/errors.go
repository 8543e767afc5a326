// Package apperr holds the error values shared by services and handlers.
// Services return these (possibly wrapped); the HTTP layer maps them to a
// status code and a short message for the caller.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrInvalidCredentials     = errors.New("invalid username or password")
	ErrForbidden              = errors.New("forbidden")
	ErrNotFound               = errors.New("not found")
	ErrNoSelection            = errors.New("select an item first")
	ErrPaymentDeclined        = errors.New("payment declined")
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ConflictError is returned when the write clashes with existing rows
// (duplicate username, second check-in on the same day).
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }

func Conflict(reason string) error {
	return &ConflictError{Reason: reason}
}

// PersistenceError wraps an underlying database failure. The action it
// belongs to has been rolled back.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func Persistence(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsPersistence(err error) bool {
	var p *PersistenceError
	return errors.As(err, &p)
}

func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}

// Classified reports whether err already carries one of the errors above,
// so callers do not wrap it a second time.
func Classified(err error) bool {
	return IsPersistence(err) || HTTPStatus(err) != http.StatusInternalServerError
}

// HTTPStatus maps an error to the status code a handler should answer with.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrAuthenticationRequired), errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNoSelection), IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, ErrPaymentDeclined):
		return http.StatusPaymentRequired
	case IsConflict(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message is the short status text shown to the user.
func Message(err error) string {
	var (
		v *ValidationError
		c *ConflictError
		p *PersistenceError
	)
	switch {
	case errors.As(err, &v):
		return v.Error()
	case errors.As(err, &c):
		return c.Reason
	case errors.As(err, &p):
		return "could not save, please retry"
	case errors.Is(err, ErrAuthenticationRequired),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrForbidden),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrNoSelection),
		errors.Is(err, ErrPaymentDeclined):
		return rootSentinel(err).Error()
	default:
		return "internal error"
	}
}

func rootSentinel(err error) error {
	for _, s := range []error{
		ErrAuthenticationRequired, ErrInvalidCredentials, ErrForbidden,
		ErrNotFound, ErrNoSelection, ErrPaymentDeclined,
	} {
		if errors.Is(err, s) {
			return s
		}
	}
	return err
}
