package postgres

import (
	"context"

	"github.com/edvora/exam-service/internal/models"
	"github.com/edvora/exam-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResultPostgreSQL struct {
	db *gorm.DB
}

func NewResultPostgreSQL(db *gorm.DB) repositories.ResultRepository {
	return &ResultPostgreSQL{db: db}
}

// Create inserts the result and its section children. The DO NOTHING
// conflict clause on attempt_id makes a racing duplicate insert a no-op
// instead of an error; callers re-read the winner's row.
func (r *ResultPostgreSQL) Create(ctx context.Context, result *models.ExamResult) error {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "attempt_id"}},
			DoNothing: true,
		}).
		Create(result)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrDuplicatedKey
	}
	return nil
}

func (r *ResultPostgreSQL) GetByAttempt(ctx context.Context, attemptID uint) (*models.ExamResult, error) {
	var result models.ExamResult
	if err := r.db.WithContext(ctx).
		Preload("SectionResults", func(db *gorm.DB) *gorm.DB {
			return db.Order("section_results.display_order ASC")
		}).
		Where("attempt_id = ?", attemptID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}
