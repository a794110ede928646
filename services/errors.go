package services

import (
	"errors"

	"note-app/validator"
)

// Common service-level errors
var (
	// Validation errors
	ErrEmptyTitle        = errors.New("title cannot be empty")
	ErrInvalidSearchDate = errors.New("search date must be in YYYY-MM-DD format")

	// Note errors
	ErrNoteNotFound = errors.New("note not found")

	// Collaborator errors
	ErrClipboardUnavailable = errors.New("clipboard is not available")
)

// IsUserError reports whether err is an expected condition the user can fix,
// as opposed to a storage failure.
func IsUserError(err error) bool {
	var verrs validator.ValidationErrors
	return errors.Is(err, ErrEmptyTitle) ||
		errors.Is(err, ErrInvalidSearchDate) ||
		errors.Is(err, ErrNoteNotFound) ||
		errors.As(err, &verrs)
}
