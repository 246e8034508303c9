package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/edvora/exam-service/internal/models"
	"github.com/edvora/exam-service/internal/repositories"
)

type resultService struct {
	repo    repositories.Repository
	attempt AttemptService
	logger  *slog.Logger
	now     func() time.Time
}

func NewResultService(repo repositories.Repository, attempt AttemptService, logger *slog.Logger) ResultService {
	return &resultService{
		repo:    repo,
		attempt: attempt,
		logger:  logger,
		now:     time.Now,
	}
}

// Fetch returns the attempt's result subject to the exam's visibility
// policy. A submitted attempt with no result yet reports "processing",
// which is distinct from a result that exists but is withheld.
func (s *resultService) Fetch(ctx context.Context, attemptID uint, studentID string) (*ResultView, error) {
	attempt, err := s.repo.Attempt().GetByIDWithResult(ctx, attemptID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}

	if attempt.StudentID != studentID {
		return nil, NewPermissionError(studentID, attemptID, "result", "fetch", "not owned by student")
	}

	if attempt.Status != models.AttemptSubmitted {
		return nil, ErrAttemptNotActive
	}

	result := attempt.Result
	if result == nil {
		// Scoring failed or has not run; retry it on the fetch path
		// before reporting "processing".
		s.logger.Info("Result missing on fetch, retrying scoring", "attempt_id", attemptID)
		r, err := s.attempt.ScoreAttempt(ctx, attemptID)
		if err != nil {
			s.logger.Error("Scoring retry failed", "attempt_id", attemptID, "error", err)
			return &ResultView{Status: ResultProcessing}, nil
		}
		result = r
	}

	if !CanView(&attempt.Exam, s.now()) {
		return &ResultView{
			Status:      ResultWithheld,
			ReleaseTime: attempt.Exam.ResultReleaseTime,
		}, nil
	}

	return &ResultView{Status: ResultReady, Result: result}, nil
}

// CanView applies the exam's result-visibility policy. Manual release is
// flipped by an external admin action; this service always reports false
// for it.
func CanView(exam *models.Exam, now time.Time) bool {
	switch exam.ResultVisibility {
	case models.VisibilityImmediate, "":
		return true
	case models.VisibilityManual:
		return false
	case models.VisibilityScheduled:
		return exam.ResultReleaseTime != nil && !now.Before(*exam.ResultReleaseTime)
	default:
		return false
	}
}
