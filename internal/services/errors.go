package services

import (
	"errors"
	"strings"

	"github.com/sjperalta/marketplace-admin-api/internal/models"
)

// Common service errors
var (
	ErrInvalidSellerID      = errors.New("identificador de vendedor inválido")
	ErrEmptyOverride        = errors.New("no stats provided")
	ErrStorageUnavailable   = errors.New("storage unavailable")
	ErrRealStatsUnavailable = errors.New("real stats unavailable")
)

// ValidationError lists every field rejected by an override write
type ValidationError struct {
	Fields []models.FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a ValidationError with fields in a stable order
func NewValidationError(fields []models.FieldError) *ValidationError {
	sortFieldErrors(fields)
	return &ValidationError{Fields: fields}
}
