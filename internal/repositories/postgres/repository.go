package postgres

import (
	"context"
	"fmt"

	"github.com/edvora/exam-service/internal/repositories"
	"gorm.io/gorm"
)

// GormRepository is the PostgreSQL-backed aggregate repository. Begin
// returns a view bound to a transaction; the sub-repositories of that
// view all run against the same *gorm.DB.
type GormRepository struct {
	db       *gorm.DB
	exam     repositories.ExamRepository
	attempt  repositories.AttemptRepository
	response repositories.ResponseRepository
	result   repositories.ResultRepository
}

func NewRepository(db *gorm.DB) repositories.TransactionRepository {
	return &GormRepository{
		db:       db,
		exam:     NewExamPostgreSQL(db),
		attempt:  NewAttemptPostgreSQL(db),
		response: NewResponsePostgreSQL(db),
		result:   NewResultPostgreSQL(db),
	}
}

func (r *GormRepository) Exam() repositories.ExamRepository         { return r.exam }
func (r *GormRepository) Attempt() repositories.AttemptRepository   { return r.attempt }
func (r *GormRepository) Response() repositories.ResponseRepository { return r.response }
func (r *GormRepository) Result() repositories.ResultRepository     { return r.result }

func (r *GormRepository) Begin(ctx context.Context) (repositories.TransactionRepository, error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	return NewRepository(tx), nil
}

func (r *GormRepository) Commit(ctx context.Context) error {
	return r.db.Commit().Error
}

func (r *GormRepository) Rollback(ctx context.Context) error {
	return r.db.Rollback().Error
}
