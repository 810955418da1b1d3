package task

import "errors"

// Task-related errors
var (
	// Validation errors
	ErrEmptyTitle         = errors.New("task title cannot be empty")
	ErrTitleTooLong       = errors.New("task title cannot exceed 200 characters")
	ErrInvalidDate        = errors.New("task date must be formatted as YYYY-MM-DD")
	ErrInvalidPriority    = errors.New("priority must be one of High, Medium, Low, Completed")
	ErrInvalidOrder       = errors.New("invalid order: must be >= 0")
	ErrTagTooLong         = errors.New("tags cannot exceed 30 characters")
	ErrSubtaskTextInvalid = errors.New("subtask text must be between 1 and 200 characters")
	ErrMissingColumn      = errors.New("task must belong to a column")

	// Business logic errors
	ErrTaskNotFound   = errors.New("task not found")
	ErrColumnNotFound = errors.New("column not found")
)
