// Package common defines shared constants and sentinel errors used across
// the BlogKeeper layers. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("already exists")

	// Validation errors. ErrorInvalidIdentifier matches ErrorValidation too.
	ErrorValidation        = errors.New("validation error")
	ErrorInvalidIdentifier = fmt.Errorf("%w: invalid identifier", ErrorValidation)

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors. ErrTokenExpired matches ErrInvalidToken too.
	ErrMissingToken    = errors.New("missing token")
	ErrMalformedHeader = errors.New("malformed authorization header")
	ErrInvalidToken    = errors.New("invalid token")
	ErrTokenExpired    = fmt.Errorf("%w: token expired", ErrInvalidToken)
)
