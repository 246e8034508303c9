package models

import (
	"time"

	"gorm.io/datatypes"
)

// QuestionResponse stores a student's answer for one question of one
// attempt. Rows are upserted in place keyed by (attempt_id, question_id);
// Seq orders racing writes for the same question so an older write can
// never overwrite a newer one.
type QuestionResponse struct {
	ID         uint `json:"id" gorm:"primaryKey"`
	AttemptID  uint `json:"attempt_id" gorm:"not null;index;uniqueIndex:idx_attempt_question"`
	QuestionID uint `json:"question_id" gorm:"not null;index;uniqueIndex:idx_attempt_question"`

	// Answer is the serialized tagged payload: SingleChoiceAnswer for MCQ,
	// MultiChoiceAnswer (sorted option ids) for MSQ, TextAnswer for NAT.
	Answer datatypes.JSON `json:"answer" gorm:"type:jsonb"`

	IsMarkedForReview bool  `json:"is_marked_for_review" gorm:"default:false"`
	Seq               int64 `json:"seq" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (QuestionResponse) TableName() string {
	return "question_responses"
}
