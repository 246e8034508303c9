package services

import (
	"errors"
	"fmt"
)

// ===== COMMON SERVICE ERRORS =====

var (
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")

	// Exam specific errors
	ErrExamNotFound = errors.New("exam not found")

	// Attempt specific errors
	ErrAttemptNotFound         = errors.New("attempt not found")
	ErrAttemptNotActive        = errors.New("attempt is not active")
	ErrAttemptAlreadySubmitted = errors.New("attempt already submitted")
	ErrAttemptCannotStart      = errors.New("cannot start new attempt")

	// Response specific errors
	ErrQuestionNotInExam    = errors.New("question does not belong to the attempted exam")
	ErrInvalidAnswerPayload = errors.New("answer payload does not match question type")

	// Result specific errors
	ErrResultNotVisible = errors.New("result is not visible yet")
	ErrResultPending    = errors.New("result is still being generated")
)

// PermissionError reports an access attempt on a resource the student
// does not own.
type PermissionError struct {
	StudentID  string `json:"student_id"`
	ResourceID uint   `json:"resource_id"`
	Resource   string `json:"resource"`
	Action     string `json:"action"`
	Reason     string `json:"reason"`
}

func (pe *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: student %s cannot %s %s %d - %s",
		pe.StudentID, pe.Action, pe.Resource, pe.ResourceID, pe.Reason)
}

func NewPermissionError(studentID string, resourceID uint, resource, action, reason string) *PermissionError {
	return &PermissionError{
		StudentID:  studentID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}

// IneligibleError carries a structured verdict for a start that was
// refused by the eligibility evaluator. It is expected and user-facing,
// never a server fault.
type IneligibleError struct {
	Verdict *EligibilityVerdict
}

func (ie *IneligibleError) Error() string {
	return fmt.Sprintf("not eligible: %s", ie.Verdict.Reason)
}
