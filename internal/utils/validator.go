package utils

import (
	"reflect"
	"strings"

	apperrors "github.com/edvora/exam-service/internal/errors"
	"github.com/edvora/exam-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator wraps the struct validator with the custom rules the exam
// service registers.
type Validator struct {
	structValidator *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	registerCustomValidators(v)
	return &Validator{structValidator: v}
}

// Validate checks struct tags and converts failures into the shared
// ValidationErrors type.
func (v *Validator) Validate(s interface{}) error {
	if err := v.structValidator.Struct(s); err != nil {
		if converted := apperrors.ToValidationErrors(err); len(converted) > 0 {
			return converted
		}
		return err
	}
	return nil
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("question_type", validateQuestionType)
	validate.RegisterValidation("result_visibility", validateResultVisibility)

	// Report json field names in error messages.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateQuestionType(fl validator.FieldLevel) bool {
	switch models.QuestionType(fl.Field().String()) {
	case models.MCQ, models.MSQ, models.NAT:
		return true
	}
	return false
}

func validateResultVisibility(fl validator.FieldLevel) bool {
	switch models.ResultVisibility(fl.Field().String()) {
	case models.VisibilityImmediate, models.VisibilityManual, models.VisibilityScheduled:
		return true
	}
	return false
}
