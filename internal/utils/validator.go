package utils

import (
	"reflect"
	"strings"

	apperrors "github.com/formforge/formbuilder-service/internal/errors"
	"github.com/formforge/formbuilder-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground struct validation with the project's custom
// rules and error conversion.
type Validator struct {
	structValidator *validator.Validate
}

// NewValidator creates the shared validator instance
func NewValidator() *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator)

	return &Validator{structValidator: structValidator}
}

// Validate validates struct tags and converts failures to ValidationErrors
func (v *Validator) Validate(s interface{}) error {
	if err := v.structValidator.Struct(s); err != nil {
		if converted := apperrors.ToValidationErrors(err); len(converted) > 0 {
			return converted
		}
		return err
	}
	return nil
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("question_type", validateQuestionType)
	validate.RegisterValidation("sub_question_type", validateSubQuestionType)

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateQuestionType(fl validator.FieldLevel) bool {
	validTypes := []models.QuestionType{
		models.QuestionCategorize,
		models.QuestionCloze,
		models.QuestionComprehension,
	}

	value := fl.Field().String()
	for _, validType := range validTypes {
		if string(validType) == value {
			return true
		}
	}
	return false
}

func validateSubQuestionType(fl validator.FieldLevel) bool {
	validTypes := []models.SubQuestionType{
		models.SubQuestionMultipleChoice,
		models.SubQuestionTrueFalse,
		models.SubQuestionShortAnswer,
	}

	value := fl.Field().String()
	for _, validType := range validTypes {
		if string(validType) == value {
			return true
		}
	}
	return false
}
