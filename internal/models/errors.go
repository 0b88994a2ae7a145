package models

import (
	"errors"
	"fmt"
)

// Errors shared by the stores, services and handlers. Stores translate
// driver errors into these so callers never see raw database errors.
var (
	// ErrValidation wraps every *ValidationError.
	ErrValidation = errors.New("validation error")

	// ErrDuplicate is a unique-constraint violation on insert
	// (identity name, access token, or a rating name for the same owner).
	ErrDuplicate = errors.New("already exists")

	// ErrNameTaken is the ErrDuplicate case where the identity name
	// is the conflicting column.
	ErrNameTaken = fmt.Errorf("name %w", ErrDuplicate)

	// ErrNotFound is returned by lookups that match nothing.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials covers both an unknown name and a wrong
	// password at login.
	ErrInvalidCredentials = errors.New("invalid name or password")
)

// ValidationError reports a request field that failed a schema check.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Msg)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
