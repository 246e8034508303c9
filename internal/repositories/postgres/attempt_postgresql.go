package postgres

import (
	"context"
	"time"

	"github.com/edvora/exam-service/internal/models"
	"github.com/edvora/exam-service/internal/repositories"
	"gorm.io/gorm"
)

type AttemptPostgreSQL struct {
	db *gorm.DB
}

func NewAttemptPostgreSQL(db *gorm.DB) repositories.AttemptRepository {
	return &AttemptPostgreSQL{db: db}
}

func (a *AttemptPostgreSQL) Create(ctx context.Context, attempt *models.ExamAttempt) error {
	return a.db.WithContext(ctx).Create(attempt).Error
}

func (a *AttemptPostgreSQL) GetByID(ctx context.Context, id uint) (*models.ExamAttempt, error) {
	var attempt models.ExamAttempt
	if err := a.db.WithContext(ctx).Preload("Exam").First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (a *AttemptPostgreSQL) GetByIDWithResult(ctx context.Context, id uint) (*models.ExamAttempt, error) {
	var attempt models.ExamAttempt
	if err := a.db.WithContext(ctx).
		Preload("Exam").
		Preload("Result").
		Preload("Result.SectionResults", func(db *gorm.DB) *gorm.DB {
			return db.Order("section_results.display_order ASC")
		}).
		First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (a *AttemptPostgreSQL) GetActiveAttempt(ctx context.Context, studentID string, examID uint) (*models.ExamAttempt, error) {
	var attempt models.ExamAttempt
	if err := a.db.WithContext(ctx).
		Where("student_id = ? AND exam_id = ? AND status = ?", studentID, examID, models.AttemptInProgress).
		Preload("Exam").
		First(&attempt).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (a *AttemptPostgreSQL) CountSubmitted(ctx context.Context, studentID string, examID uint) (int, error) {
	var count int64
	if err := a.db.WithContext(ctx).
		Model(&models.ExamAttempt{}).
		Where("student_id = ? AND exam_id = ? AND status = ?", studentID, examID, models.AttemptSubmitted).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (a *AttemptPostgreSQL) HasSubmitted(ctx context.Context, studentID string, examID uint) (bool, error) {
	count, err := a.CountSubmitted(ctx, studentID, examID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (a *AttemptPostgreSQL) NextAttemptNumber(ctx context.Context, studentID string, examID uint) (int, error) {
	var count int64
	if err := a.db.WithContext(ctx).
		Model(&models.ExamAttempt{}).
		Where("student_id = ? AND exam_id = ?", studentID, examID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count) + 1, nil
}

// MarkSubmitted performs the terminal transition with a conditional
// update. Exactly one caller observes RowsAffected == 1; a concurrent
// duplicate submit sees 0 and short-circuits to result retrieval.
func (a *AttemptPostgreSQL) MarkSubmitted(ctx context.Context, id uint, submittedAt time.Time, reason models.SubmitReason) (bool, error) {
	res := a.db.WithContext(ctx).
		Model(&models.ExamAttempt{}).
		Where("id = ? AND status = ?", id, models.AttemptInProgress).
		Updates(map[string]interface{}{
			"status":       models.AttemptSubmitted,
			"submitted_at": submittedAt,
			"end_reason":   reason,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (a *AttemptPostgreSQL) GetExpiredInProgress(ctx context.Context, now time.Time, limit int) ([]*models.ExamAttempt, error) {
	var attempts []*models.ExamAttempt
	if err := a.db.WithContext(ctx).
		Joins("JOIN exams ON exams.id = exam_attempts.exam_id").
		Where("exam_attempts.status = ?", models.AttemptInProgress).
		Where("exam_attempts.started_at + make_interval(mins => exams.duration) <= ?", now).
		Limit(limit).
		Preload("Exam").
		Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

func (a *AttemptPostgreSQL) GetSubmittedWithoutResult(ctx context.Context, limit int) ([]*models.ExamAttempt, error) {
	var attempts []*models.ExamAttempt
	if err := a.db.WithContext(ctx).
		Where("status = ?", models.AttemptSubmitted).
		Where("NOT EXISTS (SELECT 1 FROM exam_results WHERE exam_results.attempt_id = exam_attempts.id)").
		Limit(limit).
		Preload("Exam").
		Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}
