package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/models"
)

// Validator is the main validator instance combining struct-tag validation
// with question payload validation.
type Validator struct {
	structValidator   *validator.Validate
	questionValidator *QuestionValidator
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator:   structValidator,
		questionValidator: NewQuestionValidator(),
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Validate performs struct-tag validation and converts field errors to the
// shared ValidationErrors type.
func (v *Validator) Validate(s interface{}) error {
	if err := v.structValidator.Struct(s); err != nil {
		if ve := ToValidationErrors(err); len(ve) > 0 {
			return ve
		}
		return err
	}
	return nil
}

// Question returns the question payload validator
func (v *Validator) Question() *QuestionValidator {
	return v.questionValidator
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("question_format", validateQuestionFormat)
	validate.RegisterValidation("section_type", validateSectionType)
	validate.RegisterValidation("content_type", validateContentType)
	validate.RegisterValidation("input_mode", validateInputMode)

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateQuestionFormat(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, format := range models.AllQuestionFormats {
		if string(format) == value {
			return true
		}
	}
	// Unknown speaking_* variants are accepted: the router dispatches the
	// whole family by prefix.
	return strings.HasPrefix(value, "speaking_")
}

func validateSectionType(fl validator.FieldLevel) bool {
	validTypes := []models.SectionType{
		models.SectionReading,
		models.SectionListening,
		models.SectionWriting,
		models.SectionSpeaking,
	}

	value := fl.Field().String()
	for _, validType := range validTypes {
		if string(validType) == value {
			return true
		}
	}
	return false
}

func validateContentType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == string(models.ContentPassage) || value == string(models.ContentAudio)
}

func validateInputMode(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == string(models.InputModeTyping) || value == string(models.InputModeDrag)
}
