package events

import (
	"time"

	"github.com/edvora/exam-service/internal/models"
	"github.com/google/uuid"
)

const eventSource = "exam-service"

// EventType identifies the lifecycle milestone an event reports.
type EventType string

const (
	EventAttemptStarted   EventType = "attempt.started"
	EventAttemptSubmitted EventType = "attempt.submitted"
	EventResultReady      EventType = "result.ready"
)

// Event is the envelope published to the notification sink. The sink is
// informed of completions; it is never consulted for correctness.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Data      interface{} `json:"data"`
}

func newEvent(eventType EventType, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   "1.0",
		Data:      data,
	}
}

type AttemptStartedEvent struct {
	AttemptID     uint      `json:"attempt_id"`
	ExamID        uint      `json:"exam_id"`
	StudentID     string    `json:"student_id"`
	AttemptNumber int       `json:"attempt_number"`
	StartedAt     time.Time `json:"started_at"`
}

func NewAttemptStartedEvent(attempt *models.ExamAttempt) *Event {
	return newEvent(EventAttemptStarted, AttemptStartedEvent{
		AttemptID:     attempt.ID,
		ExamID:        attempt.ExamID,
		StudentID:     attempt.StudentID,
		AttemptNumber: attempt.AttemptNumber,
		StartedAt:     attempt.StartedAt,
	})
}

type AttemptSubmittedEvent struct {
	AttemptID   uint                `json:"attempt_id"`
	ExamID      uint                `json:"exam_id"`
	StudentID   string              `json:"student_id"`
	SubmittedAt *time.Time          `json:"submitted_at"`
	EndReason   models.SubmitReason `json:"end_reason"`
	// Scored reports whether result generation succeeded synchronously.
	Scored bool `json:"scored"`
}

func NewAttemptSubmittedEvent(attempt *models.ExamAttempt, result *models.ExamResult) *Event {
	reason := models.SubmitReasonManual
	if attempt.EndReason != nil {
		reason = *attempt.EndReason
	}
	return newEvent(EventAttemptSubmitted, AttemptSubmittedEvent{
		AttemptID:   attempt.ID,
		ExamID:      attempt.ExamID,
		StudentID:   attempt.StudentID,
		SubmittedAt: attempt.SubmittedAt,
		EndReason:   reason,
		Scored:      result != nil,
	})
}

type ResultReadyEvent struct {
	AttemptID     uint    `json:"attempt_id"`
	ExamID        uint    `json:"exam_id"`
	StudentID     string  `json:"student_id"`
	ObtainedMarks float64 `json:"obtained_marks"`
	TotalMarks    float64 `json:"total_marks"`
	Percentage    float64 `json:"percentage"`
}

func NewResultReadyEvent(attempt *models.ExamAttempt, result *models.ExamResult) *Event {
	return newEvent(EventResultReady, ResultReadyEvent{
		AttemptID:     attempt.ID,
		ExamID:        attempt.ExamID,
		StudentID:     attempt.StudentID,
		ObtainedMarks: result.ObtainedMarks,
		TotalMarks:    result.TotalMarks,
		Percentage:    result.Percentage,
	})
}
