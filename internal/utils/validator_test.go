package utils

import (
	"testing"

	apperrors "github.com/edvora/exam-service/internal/errors"
	"github.com/edvora/exam-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_QuestionType(t *testing.T) {
	v := NewValidator()

	for _, qType := range []models.QuestionType{models.MCQ, models.MSQ, models.NAT} {
		question := models.Question{
			Type:  qType,
			Marks: 4,
		}
		assert.NoError(t, v.Validate(&question), "type %s should pass", qType)
	}

	question := models.Question{
		Type:  "ESSAY",
		Marks: 4,
	}
	err := v.Validate(&question)
	require.Error(t, err)

	var validationErrs apperrors.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Equal(t, "type", validationErrs[0].Field)
}

func TestValidate_ResultVisibility(t *testing.T) {
	v := NewValidator()

	exam := models.Exam{
		Title:            "Midterm",
		Duration:         60,
		ResultVisibility: models.VisibilityScheduled,
	}
	assert.NoError(t, v.Validate(&exam))

	exam.ResultVisibility = "on_request"
	err := v.Validate(&exam)
	require.Error(t, err)

	var validationErrs apperrors.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Equal(t, "result_visibility", validationErrs[0].Field)
}
