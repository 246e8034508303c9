package postgres

import (
	"context"

	"github.com/edvora/exam-service/internal/models"
	"github.com/edvora/exam-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResponsePostgreSQL struct {
	db *gorm.DB
}

func NewResponsePostgreSQL(db *gorm.DB) repositories.ResponseRepository {
	return &ResponsePostgreSQL{db: db}
}

// Upsert writes the response with ON CONFLICT on (attempt_id,
// question_id). The seq guard keeps last-write-wins semantics even when
// writes arrive out of order: an update only applies when the incoming
// seq is newer than the stored one.
func (r *ResponsePostgreSQL) Upsert(ctx context.Context, response *models.QuestionResponse) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "attempt_id"}, {Name: "question_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"answer":               response.Answer,
				"is_marked_for_review": response.IsMarkedForReview,
				"seq":                  response.Seq,
				"updated_at":           gorm.Expr("NOW()"),
			}),
			Where: clause.Where{
				Exprs: []clause.Expression{
					gorm.Expr("question_responses.seq < excluded.seq"),
				},
			},
		}).
		Create(response).Error
}

func (r *ResponsePostgreSQL) GetByAttempt(ctx context.Context, attemptID uint) ([]*models.QuestionResponse, error) {
	var responses []*models.QuestionResponse
	if err := r.db.WithContext(ctx).
		Where("attempt_id = ?", attemptID).
		Order("question_id ASC").
		Find(&responses).Error; err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *ResponsePostgreSQL) GetByAttemptAndQuestion(ctx context.Context, attemptID, questionID uint) (*models.QuestionResponse, error) {
	var response models.QuestionResponse
	if err := r.db.WithContext(ctx).
		Where("attempt_id = ? AND question_id = ?", attemptID, questionID).
		First(&response).Error; err != nil {
		return nil, err
	}
	return &response, nil
}
