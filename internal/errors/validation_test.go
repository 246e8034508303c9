package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("question_id", "is required", nil)

	assert.Equal(t, "question_id", err.Field)
	assert.Equal(t, "is required", err.Message)
	assert.Equal(t, "validation error on field 'question_id': is required", err.Error())
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	assert.Equal(t, "validation failed", errs.Error())

	errs = append(errs, *NewValidationError("answer", "is required", nil))
	assert.Equal(t, "validation failed: answer is required", errs.Error())

	errs = append(errs, *NewValidationError("seq", "must be at least 0", nil))
	assert.Equal(t, "validation failed: 2 field errors", errs.Error())
}

func TestNewValidationErrorWithRule(t *testing.T) {
	err := NewValidationErrorWithRule("type", "must be a valid question type (MCQ, MSQ, NAT)", "question_type", "ESSAY")

	assert.Equal(t, "question_type", err.Rule)
	assert.Equal(t, "type", err.Field)
}
