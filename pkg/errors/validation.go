package errors

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidationError reports an invalid option value.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Input formats accepted by the importer.
const (
	FormatJSON = "json"
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

// DetectFormat returns the input format implied by a file extension.
func DetectFormat(path string) (string, error) {
	if path == "" {
		return "", New(ErrCodeInvalidInput, "input path cannot be empty")
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return FormatJSON, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", New(ErrCodeInvalidFormat, "unsupported input %q (must be .json, .xlsx or .csv)", filepath.Base(path))
	}
}

// ValidateTickBudget checks a tick budget value.
func ValidateTickBudget(n int) error {
	if n < 0 {
		return NewValidationError("tick_budget", fmt.Sprintf("must not be negative (got %d)", n))
	}
	return nil
}
