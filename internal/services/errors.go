package services

import (
	"errors"

	apperrors "github.com/formforge/formbuilder-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	ErrValidationFailed = errors.New("validation failed")

	// Form specific errors
	ErrFormNotFound         = errors.New("form not found")
	ErrFormNotPublished     = errors.New("form is not published")
	ErrQuestionIndexInvalid = errors.New("invalid question index")

	// Response specific errors
	ErrResponseNotFound = errors.New("response not found")
)

// ===== ERROR HELPERS =====

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrFormNotFound) ||
		errors.Is(err, ErrResponseNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrQuestionIndexInvalid) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsBusinessRule checks if error represents a business rule violation,
// such as submitting against an unpublished form
func IsBusinessRule(err error) bool {
	return errors.Is(err, ErrFormNotPublished)
}
