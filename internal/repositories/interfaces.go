package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/edvora/exam-service/internal/models"
	"gorm.io/gorm"
)

// Repository aggregates the per-entity repositories. Services obtain
// sub-repositories through it so a transactional variant can be swapped
// in without changing call sites.
type Repository interface {
	Exam() ExamRepository
	Attempt() AttemptRepository
	Response() ResponseRepository
	Result() ResultRepository
}

// TransactionRepository is implemented by repositories that can open a
// transaction-scoped view. Begin returns a view whose Commit and
// Rollback close that transaction.
type TransactionRepository interface {
	Repository
	Begin(ctx context.Context) (TransactionRepository, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// ExamRepository reads externally authored exam content. The exam service
// never writes through it.
type ExamRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Exam, error)
	// GetByIDWithContent loads the exam with sections, questions and
	// options, ordered for delivery.
	GetByIDWithContent(ctx context.Context, id uint) (*models.Exam, error)

	// Prerequisite lookups for sequential-unlock courses.
	GetLessonByExam(ctx context.Context, examID uint) (*models.Lesson, error)
	GetPrecedingLessonWithExam(ctx context.Context, courseID uint, order int) (*models.Lesson, error)
}

type AttemptRepository interface {
	Create(ctx context.Context, attempt *models.ExamAttempt) error
	GetByID(ctx context.Context, id uint) (*models.ExamAttempt, error)
	GetByIDWithResult(ctx context.Context, id uint) (*models.ExamAttempt, error)

	GetActiveAttempt(ctx context.Context, studentID string, examID uint) (*models.ExamAttempt, error)
	CountSubmitted(ctx context.Context, studentID string, examID uint) (int, error)
	HasSubmitted(ctx context.Context, studentID string, examID uint) (bool, error)
	NextAttemptNumber(ctx context.Context, studentID string, examID uint) (int, error)

	// MarkSubmitted transitions the attempt to submitted only if it is
	// still in progress and reports whether this call won the transition.
	MarkSubmitted(ctx context.Context, id uint, submittedAt time.Time, reason models.SubmitReason) (bool, error)

	// Sweep queries.
	GetExpiredInProgress(ctx context.Context, now time.Time, limit int) ([]*models.ExamAttempt, error)
	GetSubmittedWithoutResult(ctx context.Context, limit int) ([]*models.ExamAttempt, error)
}

type ResponseRepository interface {
	// Upsert inserts or updates the response keyed by
	// (attempt_id, question_id). A row with a newer seq is never
	// overwritten by an older write.
	Upsert(ctx context.Context, response *models.QuestionResponse) error
	GetByAttempt(ctx context.Context, attemptID uint) ([]*models.QuestionResponse, error)
	GetByAttemptAndQuestion(ctx context.Context, attemptID, questionID uint) (*models.QuestionResponse, error)
}

type ResultRepository interface {
	Create(ctx context.Context, result *models.ExamResult) error
	GetByAttempt(ctx context.Context, attemptID uint) (*models.ExamResult, error)
}

// IsNotFoundError reports whether err represents a missing row.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateKeyError reports whether err represents a unique constraint
// violation, the signal Start uses to resolve a concurrent double-start.
func IsDuplicateKeyError(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
