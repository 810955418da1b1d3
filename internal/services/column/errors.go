package column

import "errors"

// Column-related errors
var (
	// Validation errors
	ErrEmptyTitle   = errors.New("column title cannot be empty")
	ErrTitleTooLong = errors.New("column title cannot exceed 50 characters")
	ErrInvalidOrder = errors.New("invalid order: must be >= 0")
	ErrInvalidDate  = errors.New("date must be formatted as YYYY-MM-DD")
	ErrNoChanges    = errors.New("no column changes requested")

	// Business logic errors
	ErrColumnNotFound = errors.New("column not found")
)
