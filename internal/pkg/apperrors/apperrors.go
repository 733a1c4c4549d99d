// Package apperrors defines the error kinds the domain services surface.
// Domain packages declare their own sentinel errors wrapping one of these
// kinds, so handlers can map any service error to an HTTP status with a
// single errors.Is chain.
package apperrors

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound means a referenced entity does not exist under the given key.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists means an operation would violate a uniqueness invariant.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidArgument means structurally invalid input reached a service.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotAuthorized means the acting principal lacks the required role profile.
	ErrNotAuthorized = errors.New("not authorized")
)

// HTTPStatus maps an error kind to a response status. Unknown errors are
// treated as internal.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotAuthorized):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Code returns the machine-readable code for an error kind.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrAlreadyExists):
		return "ALREADY_EXISTS"
	case errors.Is(err, ErrInvalidArgument):
		return "INVALID_ARGUMENT"
	case errors.Is(err, ErrNotAuthorized):
		return "NOT_AUTHORIZED"
	default:
		return "INTERNAL"
	}
}
