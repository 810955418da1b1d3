package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/4wadia/focusflow/internal/admission"
	"github.com/4wadia/focusflow/internal/models"
	columnservice "github.com/4wadia/focusflow/internal/services/column"
	"github.com/4wadia/focusflow/internal/services/serviceerr"
)

// Classify maps a service error to an error code and exit code
func Classify(err error) (string, int) {
	var rej *admission.Rejection
	if errors.As(err, &rej) {
		return string(rej.Reason), ExitValidation
	}
	switch {
	case serviceerr.IsValidation(err):
		return "VALIDATION_ERROR", ExitValidation
	case serviceerr.IsNotFound(err):
		return "NOT_FOUND", ExitNotFound
	}
	return "ERROR", ExitError
}

// ParsePriority maps a case-insensitive priority name to its Priority
func ParsePriority(priority string) (models.Priority, error) {
	p, err := models.ParsePriority(strings.TrimSpace(priority))
	if err != nil {
		return "", fmt.Errorf("invalid priority '%s': %w", priority, err)
	}
	return p, nil
}

// FindColumnByName finds a column by ID or case-insensitive title
func FindColumnByName(columns []*models.Column, ref string) (*models.Column, error) {
	for _, col := range columns {
		if col.ID == ref {
			return col, nil
		}
	}
	for _, col := range columns {
		if strings.EqualFold(col.Title, ref) {
			return col, nil
		}
	}
	return nil, fmt.Errorf("column '%s': %w", ref, columnservice.ErrColumnNotFound)
}

// ResolveColumn looks up one of the owner's columns by ID or title
func ResolveColumn(ctx context.Context, c *CLI, ref string) (*models.Column, []*models.Column, error) {
	columns, err := c.App.ColumnService.ListColumns(ctx, c.Owner)
	if err != nil {
		return nil, nil, err
	}
	col, err := FindColumnByName(columns, ref)
	if err != nil {
		return nil, columns, err
	}
	return col, columns, nil
}

// FormatAvailableColumns formats the column titles as a comma-separated list
func FormatAvailableColumns(columns []*models.Column) string {
	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = col.Title
	}
	return strings.Join(names, ", ")
}

// GetCurrentColumnName returns the title of the column with columnID
func GetCurrentColumnName(columns []*models.Column, columnID string) string {
	for _, col := range columns {
		if col.ID == columnID {
			return col.Title
		}
	}
	return "Unknown"
}
