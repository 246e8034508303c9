package models

import (
	"time"

	"gorm.io/gorm"
)

type ResultVisibility string

const (
	VisibilityImmediate ResultVisibility = "immediate"
	VisibilityManual    ResultVisibility = "manual"
	VisibilityScheduled ResultVisibility = "scheduled"
)

type Exam struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Title       string  `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description *string `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`
	Duration    int     `json:"duration" gorm:"not null" validate:"required,min=1,max=600"` // minutes
	TotalMarks  float64 `json:"total_marks" gorm:"not null"`

	// Attempt limits. Nil means unlimited attempts.
	MaxAttempts *int `json:"max_attempts" validate:"omitempty,min=1,max=20"`

	// Availability window. Nil bounds are unbounded.
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`

	NegativeMarking bool `json:"negative_marking" gorm:"default:false"`

	// Result policy
	ResultVisibility  ResultVisibility `json:"result_visibility" gorm:"default:immediate" validate:"omitempty,result_visibility"`
	ResultReleaseTime *time.Time       `json:"result_release_time"`
	ShowAnswers       bool             `json:"show_answers" gorm:"default:false"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Sections []Section `json:"sections" gorm:"foreignKey:ExamID"`
}

func (Exam) TableName() string {
	return "exams"
}

// IsOpenAt reports whether the exam's availability window contains t.
func (e *Exam) IsOpenAt(t time.Time) bool {
	if e.StartTime != nil && t.Before(*e.StartTime) {
		return false
	}
	if e.EndTime != nil && t.After(*e.EndTime) {
		return false
	}
	return true
}

type Section struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	ExamID     uint    `json:"exam_id" gorm:"not null;index"`
	Title      string  `json:"title" gorm:"not null;size:200"`
	Order      int     `json:"order" gorm:"not null;column:display_order"`
	TotalMarks float64 `json:"total_marks"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Questions []Question `json:"questions" gorm:"foreignKey:SectionID"`
}

func (Section) TableName() string {
	return "exam_sections"
}
