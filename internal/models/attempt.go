package models

import (
	"time"
)

type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "in_progress"
	AttemptSubmitted  AttemptStatus = "submitted"
)

type SubmitReason string

const (
	SubmitReasonManual  SubmitReason = "manual"
	SubmitReasonTimeout SubmitReason = "timeout"
)

// ExamAttempt is one instance of a student taking an exam. The partial
// unique index enforces at most one in_progress attempt per
// (student, exam) pair; a concurrent double-start loses the insert race
// and is resolved by returning the existing row.
type ExamAttempt struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	ExamID        uint          `json:"exam_id" gorm:"not null;index;uniqueIndex:idx_one_active_attempt,where:status = 'in_progress'"`
	StudentID     string        `json:"student_id" gorm:"not null;index;size:255;uniqueIndex:idx_one_active_attempt,where:status = 'in_progress'"`
	AttemptNumber int           `json:"attempt_number" gorm:"not null"`
	Status        AttemptStatus `json:"status" gorm:"default:in_progress;index"`

	// StartedAt is authoritative for timer reconstruction.
	StartedAt   time.Time     `json:"started_at"`
	SubmittedAt *time.Time    `json:"submitted_at"`
	EndReason   *SubmitReason `json:"end_reason" gorm:"size:20"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Exam      Exam               `json:"exam" gorm:"foreignKey:ExamID"`
	Responses []QuestionResponse `json:"responses" gorm:"foreignKey:AttemptID"`
	Result    *ExamResult        `json:"result,omitempty" gorm:"foreignKey:AttemptID"`
}

func (ExamAttempt) TableName() string {
	return "exam_attempts"
}

func (a *ExamAttempt) IsActive() bool {
	return a.Status == AttemptInProgress
}
