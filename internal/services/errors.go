package services

import (
	"errors"
	"fmt"

	apperrors "github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/errors"
	"gorm.io/gorm"
)

// ===== COMMON SERVICE ERRORS =====

var (
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Section specific errors
	ErrSectionNotFound     = errors.New("section not found")
	ErrSectionTypeMismatch = errors.New("question format does not belong in this section type")

	// Question specific errors
	ErrQuestionNotFound      = errors.New("question not found")
	ErrQuestionInvalidFormat = errors.New("invalid question format")
	ErrQuestionInUse         = errors.New("question cannot be deleted - referenced by question groups")

	// Group / content block errors
	ErrGroupNotFound        = errors.New("question group not found")
	ErrContentBlockNotFound = errors.New("content block not found")

	// Assignment specific errors
	ErrAssignmentNotFound      = errors.New("assignment not found")
	ErrAssignmentNotEditable   = errors.New("assignment cannot be edited in current status")
	ErrAssignmentEmptyPublish  = errors.New("assignment cannot be published without sections")
	ErrAssignmentInvalidStatus = errors.New("invalid assignment status transition")

	// Preview specific errors
	ErrPreviewSessionNotFound = errors.New("preview session not found or expired")
	ErrPreviewUnknownEvent    = errors.New("unknown preview event type")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

type BusinessRuleError struct {
	Rule    string                 `json:"rule"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (bre *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule violation (%s): %s", bre.Rule, bre.Message)
}

func NewBusinessRuleError(rule, message string, context map[string]interface{}) *BusinessRuleError {
	return &BusinessRuleError{Rule: rule, Message: message, Context: context}
}

// ===== ERROR HELPERS =====

func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// IsNotFound reports whether an error should map to a 404.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrSectionNotFound) ||
		errors.Is(err, ErrQuestionNotFound) ||
		errors.Is(err, ErrGroupNotFound) ||
		errors.Is(err, ErrContentBlockNotFound) ||
		errors.Is(err, ErrAssignmentNotFound) ||
		errors.Is(err, ErrPreviewSessionNotFound)
}

// IsValidation reports whether an error should map to a 400.
func IsValidation(err error) bool {
	var ve ValidationErrors
	var single *ValidationError
	var rule *BusinessRuleError
	return errors.As(err, &ve) || errors.As(err, &single) || errors.As(err, &rule) ||
		errors.Is(err, ErrValidationFailed) || errors.Is(err, ErrBadRequest)
}
