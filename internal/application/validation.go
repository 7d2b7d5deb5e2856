package application

import (
	"fmt"
	"path/filepath"
	"strings"

	"tasknote/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "noteName" -> "note name")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"noteName": "note name",
		"index":    "task index",
		"query":    "query",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateNoteName checks that name refers to a Markdown note inside the
// notes directory. Subdirectories are allowed, parent references are not.
func ValidateNoteName(fieldName, name string) error {
	if err := ValidateRequired(fieldName, name); err != nil {
		return err
	}

	if !domain.IsNoteName(name) {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("expected a %s file, got: %s", domain.NoteExt, name),
		}
	}

	clean := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s must stay inside the notes directory: %s", formatFieldName(fieldName), name),
		}
	}
	return nil
}

// ValidateIndex checks that a task index is non-negative
func ValidateIndex(fieldName string, index int) error {
	if index < 0 {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s must be >= 0, got: %d", formatFieldName(fieldName), index),
		}
	}
	return nil
}
