package models

import (
	"time"
)

type QuestionType string

const (
	// MCQ has exactly one correct option.
	MCQ QuestionType = "MCQ"
	// MSQ is graded by set equality over the selected options.
	MSQ QuestionType = "MSQ"
	// NAT is a free-text numerical answer compared by exact trimmed match.
	NAT QuestionType = "NAT"
)

type Question struct {
	ID        uint         `json:"id" gorm:"primaryKey"`
	SectionID uint         `json:"section_id" gorm:"not null;index"`
	Type      QuestionType `json:"type" gorm:"not null;size:10" validate:"required,question_type"`
	Text      string       `json:"text" gorm:"type:text;not null"`
	Order     int          `json:"order" gorm:"not null;column:display_order"`

	Marks float64 `json:"marks" gorm:"not null" validate:"required,gt=0"`
	// NegativeMarks is deducted on a wrong (not blank) answer. Zero disables
	// the deduction for this question regardless of the exam-level flag.
	NegativeMarks float64 `json:"negative_marks" gorm:"default:0" validate:"min=0"`

	// CorrectAnswer holds the expected value for NAT questions.
	CorrectAnswer *string `json:"correct_answer,omitempty" gorm:"size:255"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Options []QuestionOption `json:"options" gorm:"foreignKey:QuestionID"`
}

func (Question) TableName() string {
	return "questions"
}

// CorrectOptionIDs returns the ids of the options flagged correct, for
// MCQ/MSQ grading.
func (q *Question) CorrectOptionIDs() []uint {
	var ids []uint
	for _, opt := range q.Options {
		if opt.IsCorrect {
			ids = append(ids, opt.ID)
		}
	}
	return ids
}

type QuestionOption struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	QuestionID uint   `json:"question_id" gorm:"not null;index"`
	Text       string `json:"text" gorm:"type:text;not null"`
	Order      int    `json:"order" gorm:"not null;column:display_order"`
	IsCorrect  bool   `json:"is_correct" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (QuestionOption) TableName() string {
	return "question_options"
}
