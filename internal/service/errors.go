package service

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientFunds     = errors.New("insufficient funds in wallet")
	ErrInsufficientGoalFunds = errors.New("insufficient savings in goal")
	ErrNotFound              = errors.New("not found")
	ErrDevModeDisabled       = errors.New("dev tools are disabled")
)

// ValidationError reports rejected user input. Nothing was mutated.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// BackupFormatError reports a backup document that cannot be restored.
type BackupFormatError struct {
	Reason string
	Err    error
}

func (e *BackupFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("backup format: %s: %v", e.Reason, e.Err)
	}
	return "backup format: " + e.Reason
}

func (e *BackupFormatError) Unwrap() error { return e.Err }

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}
