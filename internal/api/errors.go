package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/aimock/aimock-api/internal/api/shared"
	"github.com/aimock/aimock-api/internal/domain"
	"github.com/aimock/aimock-api/internal/generation"
	"github.com/aimock/aimock-api/internal/normalize"
	"github.com/aimock/aimock-api/internal/service"
	"github.com/aimock/aimock-api/internal/service/auth"
	"github.com/aimock/aimock-api/internal/store"
)

// Retry-After values, in seconds, sent with 429 responses.
const (
	ClientThrottleRetryAfter = 1
	RateLimitRetryAfter      = 30
)

// MapErrorToStatusCode maps internal errors to HTTP status codes based on
// the error type. This prevents leaking internal error types or messages to
// clients.
func MapErrorToStatusCode(err error) int {
	if kind, ok := generation.KindOf(err); ok {
		switch kind {
		case generation.KindClientThrottle, generation.KindRateLimit:
			return http.StatusTooManyRequests
		}
	}

	var validationErrs validator.ValidationErrors
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrMissingSubject),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, service.ErrInterviewNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, service.ErrAlreadyAnswered),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, service.ErrQuestionNotFound),
		errors.Is(err, shared.ErrEmptyBody),
		errors.Is(err, store.ErrInvalidEntity),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest

	// Model output errors
	case errors.Is(err, generation.ErrContentBlocked):
		return http.StatusUnprocessableEntity
	case errors.Is(err, normalize.ErrParse),
		errors.Is(err, generation.ErrInvalidResponse):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	if kind, ok := generation.KindOf(err); ok {
		switch kind {
		case generation.KindClientThrottle:
			return generation.ClientThrottleMessage
		case generation.KindRateLimit:
			return generation.RateLimitMessage
		}
	}

	var domainValidation *domain.ValidationError
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrMissingSubject),
		errors.Is(err, domain.ErrUnauthorized):
		return "Authentication required"

	case errors.Is(err, service.ErrNotOwned):
		return "You do not have access to this interview"

	case errors.Is(err, service.ErrInterviewNotFound),
		errors.Is(err, store.ErrNotFound):
		return "Interview not found"

	case errors.Is(err, service.ErrAlreadyAnswered),
		errors.Is(err, store.ErrDuplicate):
		return "This question has already been answered"

	case errors.Is(err, service.ErrQuestionNotFound):
		return "Question is not part of this interview"

	case errors.As(err, &domainValidation):
		return fmt.Sprintf("Invalid %s: %s", domainValidation.Field, domainValidation.Message)

	case errors.As(err, &validationErrs):
		return SanitizeValidationError(validationErrs)

	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"

	case errors.Is(err, domain.ErrValidation), errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"

	case errors.Is(err, generation.ErrContentBlocked):
		return "The AI declined to generate content for this request"

	case errors.Is(err, normalize.ErrParse),
		errors.Is(err, generation.ErrInvalidResponse):
		return "The AI returned a response that could not be read. Please try again."

	default:
		return "An unexpected error occurred"
	}
}

// RetryAfterSeconds returns the Retry-After value for err, or 0 when the
// response should carry none.
func RetryAfterSeconds(err error) int {
	kind, ok := generation.KindOf(err)
	if !ok {
		return 0
	}
	switch kind {
	case generation.KindClientThrottle:
		return ClientThrottleRetryAfter
	case generation.KindRateLimit:
		return RateLimitRetryAfter
	default:
		return 0
	}
}

// SanitizeValidationError turns validator output into a short message that
// names the first failing field and rule.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "Validation error"
	}

	fe := validationErrs[0]
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
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
	case "gte", "lte":
		return "out of range"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the error response for err. fallback replaces the
// generic message of a 500 when it is non-empty.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}

	var opts []shared.ResponseOption
	if seconds := RetryAfterSeconds(err); seconds > 0 {
		opts = append(opts, shared.WithRetryAfter(seconds))
	}
	if status == http.StatusForbidden {
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}
