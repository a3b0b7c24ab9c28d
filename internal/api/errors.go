package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phyraph/gemki/internal/domain"
	"github.com/phyraph/gemki/internal/export"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrMissingCredential):
		return http.StatusUnauthorized

	case errors.Is(err, domain.ErrGenerationFailed):
		return http.StatusBadGateway

	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusUnsupportedMediaType

	case errors.Is(err, domain.ErrInvalidModelTier),
		errors.Is(err, export.ErrInvalidFilename):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the message a client may see for err.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return domain.MsgUnexpected
	case errors.Is(err, domain.ErrInvalidModelTier):
		return "Invalid model"
	case errors.Is(err, export.ErrInvalidFilename):
		return "Invalid filename"
	default:
		return domain.UserMessage(err)
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'GenerateRequest.Model' Error:Field validation for 'Model' failed on the 'oneof' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
