package models

import (
	"time"
)

// ExamResult is created exactly once per submitted attempt by the scoring
// engine and is immutable thereafter.
type ExamResult struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	AttemptID uint `json:"attempt_id" gorm:"not null;uniqueIndex"`

	TotalMarks    float64 `json:"total_marks"`
	ObtainedMarks float64 `json:"obtained_marks"` // clamped at 0
	Percentage    float64 `json:"percentage"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	SectionResults []SectionResult `json:"section_results" gorm:"foreignKey:ResultID"`
}

func (ExamResult) TableName() string {
	return "exam_results"
}

type SectionResult struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	ResultID  uint `json:"result_id" gorm:"not null;index"`
	SectionID uint `json:"section_id" gorm:"not null"`

	Title         string  `json:"title" gorm:"size:200"`
	Order         int     `json:"order" gorm:"column:display_order"`
	TotalMarks    float64 `json:"total_marks"`
	ObtainedMarks float64 `json:"obtained_marks"` // clamped at 0 per section

	CorrectAnswers int `json:"correct_answers"`
	WrongAnswers   int `json:"wrong_answers"`
	Unanswered     int `json:"unanswered"`
}

func (SectionResult) TableName() string {
	return "section_results"
}
