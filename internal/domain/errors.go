package domain

import "errors"

var (
	// ErrNoteNotFound is returned when a note file does not exist
	ErrNoteNotFound = errors.New("note not found")

	// ErrOutsideRoot is returned for paths that escape the notes directory
	ErrOutsideRoot = errors.New("path outside notes directory")
)
