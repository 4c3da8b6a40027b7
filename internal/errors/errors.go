package errors

import (
	"errors"
	"fmt"
)

// Common error types for the task/board client
var (
	// Credential storage errors
	ErrStorage           = errors.New("secure storage failure")
	ErrCredentialMissing = errors.New("credential not found")

	// Session errors
	ErrAuthRequired = errors.New("authentication required")
	ErrNotResolved  = errors.New("session status not resolved")

	// Validation errors
	ErrValidation = errors.New("validation failure")

	// Remote errors
	ErrRemote         = errors.New("remote request failed")
	ErrFetchExhausted = errors.New("fetch retry budget exhausted")

	// Mutation errors
	ErrMutationPending = errors.New("mutation already pending")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
