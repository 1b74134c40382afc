package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sjperalta/marketplace-admin-api/internal/models"
	"github.com/sjperalta/marketplace-admin-api/internal/services"
)

// respondError maps service errors to HTTP responses
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": ve.Fields})
	case errors.Is(err, models.ErrInvalidTimeframe),
		errors.Is(err, services.ErrInvalidSellerID),
		errors.Is(err, services.ErrEmptyOverride):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrStorageUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable, try again later", "retryable": true})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// bindingFieldErrors converts struct validation failures into the same shape as stat validation errors
func bindingFieldErrors(err error) []models.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]models.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg := "is invalid"
		switch fe.Tag() {
		case "required":
			msg = "is required"
		case "oneof":
			msg = "must be one of: " + fe.Param()
		}
		out = append(out, models.FieldError{Field: models.StatField(strings.ToLower(fe.Field())), Message: msg})
	}
	return out
}
