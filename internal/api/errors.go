package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/memoro-app/memoro-api/internal/domain"
	"github.com/memoro-app/memoro-api/internal/domain/match"
	"github.com/memoro-app/memoro-api/internal/domain/srs"
	"github.com/memoro-app/memoro-api/internal/service/quiz"
	"github.com/memoro-app/memoro-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, quiz.ErrSessionNotFound):
		return http.StatusNotFound

	// Conflict errors: duplicates and session state violations
	case errors.Is(err, store.ErrDuplicate),
		errors.Is(err, quiz.ErrSessionFinished),
		errors.Is(err, quiz.ErrQuestionPending),
		errors.Is(err, quiz.ErrNoCurrentQuestion):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidAnswerSet),
		errors.Is(err, domain.ErrEmptyPrompt),
		errors.Is(err, domain.ErrInvalidConfidence),
		errors.Is(err, match.ErrUnknownSensitivity),
		errors.Is(err, srs.ErrInvalidQuality),
		errors.Is(err, srs.ErrInvalidDays),
		errors.Is(err, quiz.ErrInvalidMode),
		errors.Is(err, quiz.ErrInvalidLimit),
		errors.Is(err, quiz.ErrNoItems):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Not found errors
	case errors.Is(err, store.ErrItemNotFound):
		return "Item not found"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, quiz.ErrSessionNotFound):
		return "Session not found"

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return "Item already exists"

	case errors.Is(err, quiz.ErrSessionFinished):
		return "Session already finished"

	case errors.Is(err, quiz.ErrQuestionPending):
		return "Current question has not been answered yet"

	case errors.Is(err, quiz.ErrNoCurrentQuestion):
		return "No question is currently presented"

	// Bad request errors
	case errors.Is(err, domain.ErrInvalidAnswerSet):
		return "Invalid accepted answer set"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, domain.ErrInvalidConfidence):
		return "Confidence rating must be between 1 and 5"

	case errors.Is(err, srs.ErrInvalidQuality):
		return "Quality score must be between 0 and 5"

	case errors.Is(err, srs.ErrInvalidDays):
		return "Postpone days must be at least 1"

	case errors.Is(err, match.ErrUnknownSensitivity):
		return "Unknown sensitivity preset"

	case errors.Is(err, quiz.ErrInvalidMode):
		return "Invalid session mode"

	case errors.Is(err, quiz.ErrInvalidLimit):
		return "Question limit cannot be negative"

	case errors.Is(err, quiz.ErrNoItems):
		return "No items available for a session"

	// Default case for unknown errors
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Example format: "Key: 'CreateItemRequest.Prompt' Error:Field validation for 'Prompt' failed on the 'required' tag"
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

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "gte", "gt":
		return "value too small"
	case "lte", "lt":
		return "value too large"
	default:
		return "validation failed"
	}
}
