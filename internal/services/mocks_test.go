package services

import (
	"context"
	"time"

	"github.com/edvora/exam-service/internal/models"
	"github.com/edvora/exam-service/internal/repositories"
	"github.com/stretchr/testify/mock"
)

// MockExamRepository is a mock implementation of ExamRepository
type MockExamRepository struct {
	mock.Mock
}

func (m *MockExamRepository) GetByID(ctx context.Context, id uint) (*models.Exam, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Exam), args.Error(1)
}

func (m *MockExamRepository) GetByIDWithContent(ctx context.Context, id uint) (*models.Exam, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Exam), args.Error(1)
}

func (m *MockExamRepository) GetLessonByExam(ctx context.Context, examID uint) (*models.Lesson, error) {
	args := m.Called(ctx, examID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lesson), args.Error(1)
}

func (m *MockExamRepository) GetPrecedingLessonWithExam(ctx context.Context, courseID uint, order int) (*models.Lesson, error) {
	args := m.Called(ctx, courseID, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lesson), args.Error(1)
}

// MockAttemptRepository is a mock implementation of AttemptRepository
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) Create(ctx context.Context, attempt *models.ExamAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockAttemptRepository) GetByID(ctx context.Context, id uint) (*models.ExamAttempt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExamAttempt), args.Error(1)
}

func (m *MockAttemptRepository) GetByIDWithResult(ctx context.Context, id uint) (*models.ExamAttempt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExamAttempt), args.Error(1)
}

func (m *MockAttemptRepository) GetActiveAttempt(ctx context.Context, studentID string, examID uint) (*models.ExamAttempt, error) {
	args := m.Called(ctx, studentID, examID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExamAttempt), args.Error(1)
}

func (m *MockAttemptRepository) CountSubmitted(ctx context.Context, studentID string, examID uint) (int, error) {
	args := m.Called(ctx, studentID, examID)
	return args.Int(0), args.Error(1)
}

func (m *MockAttemptRepository) HasSubmitted(ctx context.Context, studentID string, examID uint) (bool, error) {
	args := m.Called(ctx, studentID, examID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAttemptRepository) NextAttemptNumber(ctx context.Context, studentID string, examID uint) (int, error) {
	args := m.Called(ctx, studentID, examID)
	return args.Int(0), args.Error(1)
}

func (m *MockAttemptRepository) MarkSubmitted(ctx context.Context, id uint, submittedAt time.Time, reason models.SubmitReason) (bool, error) {
	args := m.Called(ctx, id, submittedAt, reason)
	return args.Bool(0), args.Error(1)
}

func (m *MockAttemptRepository) GetExpiredInProgress(ctx context.Context, now time.Time, limit int) ([]*models.ExamAttempt, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ExamAttempt), args.Error(1)
}

func (m *MockAttemptRepository) GetSubmittedWithoutResult(ctx context.Context, limit int) ([]*models.ExamAttempt, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ExamAttempt), args.Error(1)
}

// MockResponseRepository is a mock implementation of ResponseRepository
type MockResponseRepository struct {
	mock.Mock
}

func (m *MockResponseRepository) Upsert(ctx context.Context, response *models.QuestionResponse) error {
	args := m.Called(ctx, response)
	return args.Error(0)
}

func (m *MockResponseRepository) GetByAttempt(ctx context.Context, attemptID uint) ([]*models.QuestionResponse, error) {
	args := m.Called(ctx, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.QuestionResponse), args.Error(1)
}

func (m *MockResponseRepository) GetByAttemptAndQuestion(ctx context.Context, attemptID, questionID uint) (*models.QuestionResponse, error) {
	args := m.Called(ctx, attemptID, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuestionResponse), args.Error(1)
}

// MockResultRepository is a mock implementation of ResultRepository
type MockResultRepository struct {
	mock.Mock
}

func (m *MockResultRepository) Create(ctx context.Context, result *models.ExamResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockResultRepository) GetByAttempt(ctx context.Context, attemptID uint) (*models.ExamResult, error) {
	args := m.Called(ctx, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExamResult), args.Error(1)
}

// mockRepository aggregates the mocks behind the TransactionRepository
// interface. Begin hands back the same view and counts the calls so
// tests can assert transaction boundaries.
type mockRepository struct {
	exam     *MockExamRepository
	attempt  *MockAttemptRepository
	response *MockResponseRepository
	result   *MockResultRepository

	begun      int
	committed  int
	rolledBack int
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		exam:     &MockExamRepository{},
		attempt:  &MockAttemptRepository{},
		response: &MockResponseRepository{},
		result:   &MockResultRepository{},
	}
}

func (r *mockRepository) Begin(ctx context.Context) (repositories.TransactionRepository, error) {
	r.begun++
	return r, nil
}

func (r *mockRepository) Commit(ctx context.Context) error {
	r.committed++
	return nil
}

func (r *mockRepository) Rollback(ctx context.Context) error {
	r.rolledBack++
	return nil
}

func (r *mockRepository) Exam() repositories.ExamRepository         { return r.exam }
func (r *mockRepository) Attempt() repositories.AttemptRepository   { return r.attempt }
func (r *mockRepository) Response() repositories.ResponseRepository { return r.response }
func (r *mockRepository) Result() repositories.ResultRepository     { return r.result }

func (r *mockRepository) assertExpectations(t mock.TestingT) {
	r.exam.AssertExpectations(t)
	r.attempt.AssertExpectations(t)
	r.response.AssertExpectations(t)
	r.result.AssertExpectations(t)
}
