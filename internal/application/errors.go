package application

import (
	"errors"
	"fmt"

	"tasknote/internal/domain"
)

// Sentinel errors for common conditions
var (
	ErrNotFound     = domain.ErrNoteNotFound
	ErrOutsideRoot  = domain.ErrOutsideRoot
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NoteError represents a failure tied to a specific note
type NoteError struct {
	Name   string
	Reason string
	Err    error
}

func (e *NoteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("note %s: %s: %v", e.Name, e.Reason, e.Err)
	}
	return fmt.Sprintf("note %s: %s", e.Name, e.Reason)
}

func (e *NoteError) Unwrap() error {
	return e.Err
}
