package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/edvora/exam-service/internal/models"
)

// ===== ELIGIBILITY =====

type IneligibilityReason string

const (
	ReasonUpcoming       IneligibilityReason = "upcoming"
	ReasonExpired        IneligibilityReason = "expired"
	ReasonPrerequisite   IneligibilityReason = "prerequisite"
	ReasonQuotaExhausted IneligibilityReason = "quota_exhausted"
)

// EligibilityVerdict is the structured outcome of the eligibility check.
// Ineligibility is a verdict, not an error.
type EligibilityVerdict struct {
	Eligible bool                `json:"eligible"`
	Reason   IneligibilityReason `json:"reason,omitempty"`
	Message  string              `json:"message,omitempty"`

	// RemainingAttempts is nil when the exam allows unlimited attempts.
	RemainingAttempts *int `json:"remaining_attempts,omitempty"`

	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`

	PrerequisiteTitle string `json:"prerequisite_title,omitempty"`
}

type EligibilityService interface {
	// Evaluate is read-only and safe to retry. It is consulted before a
	// fresh start only; resuming a stored in_progress attempt bypasses it.
	Evaluate(ctx context.Context, studentID string, examID uint) (*EligibilityVerdict, error)
}

// ===== ATTEMPTS =====

type SaveResponseRequest struct {
	QuestionID uint            `json:"question_id" validate:"required"`
	Answer     json.RawMessage `json:"answer" validate:"required"`
	// MarkedForReview is applied only when provided.
	MarkedForReview *bool `json:"marked_for_review"`
	// Seq breaks ties between racing writes for the same question. Zero
	// lets the server assign one from its clock.
	Seq int64 `json:"seq"`
}

// AttemptView is an attempt enriched with the wall-clock remaining time
// reconstructed at read time.
type AttemptView struct {
	*models.ExamAttempt
	RemainingSeconds int  `json:"remaining_seconds"`
	CanSubmit        bool `json:"can_submit"`
}

type AttemptService interface {
	// Start is idempotent per (student, exam): an existing in_progress
	// attempt is returned instead of creating a duplicate.
	Start(ctx context.Context, examID uint, studentID string) (*AttemptView, error)

	// Resume reconstructs the remaining time from started_at. An attempt
	// whose time has already run out is auto-submitted before returning.
	Resume(ctx context.Context, attemptID uint, studentID string) (*AttemptView, error)

	SaveResponse(ctx context.Context, attemptID uint, studentID string, req *SaveResponseRequest) error

	// Submit is idempotent: a second call short-circuits to the stored
	// result instead of re-scoring.
	Submit(ctx context.Context, attemptID uint, studentID string, reason models.SubmitReason) (*AttemptView, error)

	// HandleTimeout force-submits an expired in_progress attempt. Used by
	// the resume path and the server-side sweep.
	HandleTimeout(ctx context.Context, attemptID uint) error

	// ScoreAttempt generates (or returns) the result for a submitted
	// attempt. Used by the fetch path to retry a failed scoring run.
	ScoreAttempt(ctx context.Context, attemptID uint) (*models.ExamResult, error)

	// RetryPendingResults re-scores submitted attempts whose result
	// generation previously failed.
	RetryPendingResults(ctx context.Context, limit int) int
}

// ===== RESULTS =====

type ResultStatus string

const (
	// ResultReady means the result exists and the visibility policy
	// allows the student to see it.
	ResultReady ResultStatus = "ready"
	// ResultProcessing means the attempt is submitted but scoring has not
	// produced a result yet.
	ResultProcessing ResultStatus = "processing"
	// ResultWithheld means the result exists but the visibility policy
	// denies access for now.
	ResultWithheld ResultStatus = "withheld"
)

type ResultView struct {
	Status      ResultStatus       `json:"status"`
	Result      *models.ExamResult `json:"result,omitempty"`
	ReleaseTime *time.Time         `json:"release_time,omitempty"`
}

type ResultService interface {
	Fetch(ctx context.Context, attemptID uint, studentID string) (*ResultView, error)
}

// ServiceManager bundles the services for handler wiring.
type ServiceManager interface {
	Eligibility() EligibilityService
	Attempt() AttemptService
	Result() ResultService
}
