package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/edvora/exam-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockAttemptService is a mock implementation of AttemptService
type MockAttemptService struct {
	mock.Mock
}

func (m *MockAttemptService) Start(ctx context.Context, examID uint, studentID string) (*AttemptView, error) {
	args := m.Called(ctx, examID, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AttemptView), args.Error(1)
}

func (m *MockAttemptService) Resume(ctx context.Context, attemptID uint, studentID string) (*AttemptView, error) {
	args := m.Called(ctx, attemptID, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AttemptView), args.Error(1)
}

func (m *MockAttemptService) SaveResponse(ctx context.Context, attemptID uint, studentID string, req *SaveResponseRequest) error {
	args := m.Called(ctx, attemptID, studentID, req)
	return args.Error(0)
}

func (m *MockAttemptService) Submit(ctx context.Context, attemptID uint, studentID string, reason models.SubmitReason) (*AttemptView, error) {
	args := m.Called(ctx, attemptID, studentID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AttemptView), args.Error(1)
}

func (m *MockAttemptService) HandleTimeout(ctx context.Context, attemptID uint) error {
	args := m.Called(ctx, attemptID)
	return args.Error(0)
}

func (m *MockAttemptService) ScoreAttempt(ctx context.Context, attemptID uint) (*models.ExamResult, error) {
	args := m.Called(ctx, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExamResult), args.Error(1)
}

func (m *MockAttemptService) RetryPendingResults(ctx context.Context, limit int) int {
	args := m.Called(ctx, limit)
	return args.Int(0)
}

func newTestResultService(repo *mockRepository, attempt AttemptService) *resultService {
	return &resultService{
		repo:    repo,
		attempt: attempt,
		logger:  slog.New(slog.NewTextHandler(testWriter{}, nil)),
		now:     func() time.Time { return testClock },
	}
}

func submittedAttempt(visibility models.ResultVisibility, releaseTime *time.Time) *models.ExamAttempt {
	submittedAt := testClock.Add(-time.Hour)
	exam := models.Exam{
		Title:             "Midterm",
		Duration:          60,
		ResultVisibility:  visibility,
		ResultReleaseTime: releaseTime,
	}
	exam.ID = 1
	return &models.ExamAttempt{
		ID:          7,
		ExamID:      1,
		StudentID:   "student-1",
		Status:      models.AttemptSubmitted,
		SubmittedAt: &submittedAt,
		Exam:        exam,
		Result:      &models.ExamResult{AttemptID: 7, ObtainedMarks: 12, Percentage: 60},
	}
}

func TestFetch_ImmediateVisibility(t *testing.T) {
	repo := newMockRepository()
	repo.attempt.On("GetByIDWithResult", mock.Anything, uint(7)).
		Return(submittedAttempt(models.VisibilityImmediate, nil), nil)

	svc := newTestResultService(repo, &MockAttemptService{})
	view, err := svc.Fetch(context.Background(), 7, "student-1")

	require.NoError(t, err)
	assert.Equal(t, ResultReady, view.Status)
	require.NotNil(t, view.Result)
	assert.Equal(t, 12.0, view.Result.ObtainedMarks)
}

func TestFetch_ManualVisibilityWithheld(t *testing.T) {
	repo := newMockRepository()
	repo.attempt.On("GetByIDWithResult", mock.Anything, uint(7)).
		Return(submittedAttempt(models.VisibilityManual, nil), nil)

	svc := newTestResultService(repo, &MockAttemptService{})
	view, err := svc.Fetch(context.Background(), 7, "student-1")

	require.NoError(t, err)
	assert.Equal(t, ResultWithheld, view.Status)
	assert.Nil(t, view.Result)
}

func TestFetch_ScheduledBeforeRelease(t *testing.T) {
	release := testClock.Add(24 * time.Hour)
	repo := newMockRepository()
	repo.attempt.On("GetByIDWithResult", mock.Anything, uint(7)).
		Return(submittedAttempt(models.VisibilityScheduled, &release), nil)

	svc := newTestResultService(repo, &MockAttemptService{})
	view, err := svc.Fetch(context.Background(), 7, "student-1")

	require.NoError(t, err)
	assert.Equal(t, ResultWithheld, view.Status)
	require.NotNil(t, view.ReleaseTime)
	assert.Equal(t, release, *view.ReleaseTime)
}

func TestFetch_ScheduledAfterRelease(t *testing.T) {
	release := testClock.Add(-time.Minute)
	repo := newMockRepository()
	repo.attempt.On("GetByIDWithResult", mock.Anything, uint(7)).
		Return(submittedAttempt(models.VisibilityScheduled, &release), nil)

	svc := newTestResultService(repo, &MockAttemptService{})
	view, err := svc.Fetch(context.Background(), 7, "student-1")

	require.NoError(t, err)
	assert.Equal(t, ResultReady, view.Status)
	require.NotNil(t, view.Result)
}

func TestFetch_MissingResultRetriesScoring(t *testing.T) {
	attempt := submittedAttempt(models.VisibilityImmediate, nil)
	attempt.Result = nil

	repo := newMockRepository()
	repo.attempt.On("GetByIDWithResult", mock.Anything, uint(7)).Return(attempt, nil)

	attemptSvc := &MockAttemptService{}
	attemptSvc.On("ScoreAttempt", mock.Anything, uint(7)).
		Return(&models.ExamResult{AttemptID: 7, ObtainedMarks: 8}, nil)

	svc := newTestResultService(repo, attemptSvc)
	view, err := svc.Fetch(context.Background(), 7, "student-1")

	require.NoError(t, err)
	assert.Equal(t, ResultReady, view.Status)
	require.NotNil(t, view.Result)
	assert.Equal(t, 8.0, view.Result.ObtainedMarks)
	attemptSvc.AssertExpectations(t)
}

func TestFetch_ScoringStillFailingReportsProcessing(t *testing.T) {
	attempt := submittedAttempt(models.VisibilityImmediate, nil)
	attempt.Result = nil

	repo := newMockRepository()
	repo.attempt.On("GetByIDWithResult", mock.Anything, uint(7)).Return(attempt, nil)

	attemptSvc := &MockAttemptService{}
	attemptSvc.On("ScoreAttempt", mock.Anything, uint(7)).
		Return(nil, errors.New("connection refused"))

	svc := newTestResultService(repo, attemptSvc)
	view, err := svc.Fetch(context.Background(), 7, "student-1")

	require.NoError(t, err)
	assert.Equal(t, ResultProcessing, view.Status)
	assert.Nil(t, view.Result)
}

func TestFetch_AttemptStillInProgress(t *testing.T) {
	attempt := submittedAttempt(models.VisibilityImmediate, nil)
	attempt.Status = models.AttemptInProgress
	attempt.SubmittedAt = nil
	attempt.Result = nil

	repo := newMockRepository()
	repo.attempt.On("GetByIDWithResult", mock.Anything, uint(7)).Return(attempt, nil)

	svc := newTestResultService(repo, &MockAttemptService{})
	_, err := svc.Fetch(context.Background(), 7, "student-1")

	assert.ErrorIs(t, err, ErrAttemptNotActive)
}

func TestFetch_NotOwner(t *testing.T) {
	repo := newMockRepository()
	repo.attempt.On("GetByIDWithResult", mock.Anything, uint(7)).
		Return(submittedAttempt(models.VisibilityImmediate, nil), nil)

	svc := newTestResultService(repo, &MockAttemptService{})
	_, err := svc.Fetch(context.Background(), 7, "student-2")

	var permErr *PermissionError
	assert.ErrorAs(t, err, &permErr)
}

func TestFetch_AttemptNotFound(t *testing.T) {
	repo := newMockRepository()
	repo.attempt.On("GetByIDWithResult", mock.Anything, uint(99)).
		Return(nil, gorm.ErrRecordNotFound)

	svc := newTestResultService(repo, &MockAttemptService{})
	_, err := svc.Fetch(context.Background(), 99, "student-1")

	assert.ErrorIs(t, err, ErrAttemptNotFound)
}

func TestCanView(t *testing.T) {
	release := testClock.Add(time.Hour)

	tests := []struct {
		name string
		exam models.Exam
		want bool
	}{
		{"immediate", models.Exam{ResultVisibility: models.VisibilityImmediate}, true},
		{"unset defaults to immediate", models.Exam{}, true},
		{"manual", models.Exam{ResultVisibility: models.VisibilityManual}, false},
		{"scheduled before release", models.Exam{ResultVisibility: models.VisibilityScheduled, ResultReleaseTime: &release}, false},
		{"scheduled without release time", models.Exam{ResultVisibility: models.VisibilityScheduled}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanView(&tt.exam, testClock))
		})
	}
}
