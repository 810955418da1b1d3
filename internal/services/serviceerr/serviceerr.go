// Package serviceerr sorts service sentinel errors into the caller-facing
// classes shared by the HTTP API and the CLI.
package serviceerr

import (
	"errors"

	"github.com/4wadia/focusflow/internal/models"
	columnservice "github.com/4wadia/focusflow/internal/services/column"
	taskservice "github.com/4wadia/focusflow/internal/services/task"
)

// Kind is the class of a service error
type Kind int

const (
	Other Kind = iota
	Validation
	NotFound
)

var validationErrors = []error{
	taskservice.ErrEmptyTitle,
	taskservice.ErrTitleTooLong,
	taskservice.ErrInvalidDate,
	taskservice.ErrInvalidPriority,
	taskservice.ErrInvalidOrder,
	taskservice.ErrTagTooLong,
	taskservice.ErrSubtaskTextInvalid,
	taskservice.ErrMissingColumn,
	columnservice.ErrEmptyTitle,
	columnservice.ErrTitleTooLong,
	columnservice.ErrInvalidOrder,
	columnservice.ErrInvalidDate,
	columnservice.ErrNoChanges,
	models.ErrUnknownPriority,
}

var notFoundErrors = []error{
	taskservice.ErrTaskNotFound,
	taskservice.ErrColumnNotFound,
	columnservice.ErrColumnNotFound,
}

// Of returns the kind of err together with the sentinel it wraps. The
// sentinel is nil for Other.
func Of(err error) (Kind, error) {
	if err == nil {
		return Other, nil
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return Validation, target
		}
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return NotFound, target
		}
	}
	return Other, nil
}

// IsValidation reports whether err wraps a validation sentinel
func IsValidation(err error) bool {
	kind, _ := Of(err)
	return kind == Validation
}

// IsNotFound reports whether err wraps a not-found sentinel
func IsNotFound(err error) bool {
	kind, _ := Of(err)
	return kind == NotFound
}
