package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "transcribe-relay/internal/api/errors"
)

// ValidateForm binds a form or multipart request into req and validates its
// struct tags.
func ValidateForm(c *gin.Context, req interface{}) error {
	if err := c.ShouldBind(req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return apierrors.NewPayloadTooLargeError(UploadLimit(c, maxBytesErr.Limit))
		}

		validationErrors := make(map[string]string)

		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			for _, fieldError := range validationErrs {
				field := strings.ToLower(fieldError.Field())

				switch fieldError.Tag() {
				case "required":
					validationErrors[field] = "is required"
				case "min":
					validationErrors[field] = "is too short"
				case "max":
					validationErrors[field] = "is too long"
				case "oneof":
					validationErrors[field] = "must be one of the allowed values"
				default:
					validationErrors[field] = "is invalid"
				}
			}
		} else {
			validationErrors["request"] = "invalid multipart form"
		}

		return apierrors.NewValidationError("Validation failed", validationErrors)
	}

	return nil
}
