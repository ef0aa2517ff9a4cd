package service

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized covers bad credentials and unusable session tokens.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned when no account holds the phone number.
	ErrNotFound = errors.New("not_found")
)

// ValidationError reports caller input that cannot be accepted. Detail is
// safe to show to the caller.
type ValidationError struct {
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Detail
	}
	return e.Field + ": " + e.Detail
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Detail: fmt.Sprintf(format, args...)}
}

// DependencyError wraps a storage or provider failure. Its text is for
// logs only.
type DependencyError struct {
	Op  string
	Err error
}

func (e *DependencyError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *DependencyError) Unwrap() error { return e.Err }

func dependency(op string, err error) error {
	return &DependencyError{Op: op, Err: err}
}
