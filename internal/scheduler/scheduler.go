package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/edvora/exam-service/internal/repositories"
	"github.com/edvora/exam-service/internal/services"
	"github.com/go-co-op/gocron"
)

// Scheduler runs the background jobs that keep attempts honest when no
// client is connected: force-submitting attempts whose clock ran out,
// and retrying score generation for attempts that were submitted but
// never got a result.
type Scheduler struct {
	scheduler      *gocron.Scheduler
	repo           repositories.Repository
	attemptService services.AttemptService
	logger         *slog.Logger
	batchSize      int
}

func New(repo repositories.Repository, attemptService services.AttemptService, logger *slog.Logger, batchSize int) *Scheduler {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Scheduler{
		scheduler:      gocron.NewScheduler(time.UTC),
		repo:           repo,
		attemptService: attemptService,
		logger:         logger,
		batchSize:      batchSize,
	}
}

// Start begins running all scheduled tasks in the background.
func (s *Scheduler) Start(interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	s.scheduler.Every(interval).Do(s.sweepExpiredAttempts)
	s.scheduler.Every(interval).Do(s.retryPendingResults)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// sweepExpiredAttempts finds in_progress attempts past their deadline
// and submits them with the timeout reason. Auto-submit on resume
// already covers the common case; the sweep covers students who never
// come back.
func (s *Scheduler) sweepExpiredAttempts() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	attempts, err := s.repo.Attempt().GetExpiredInProgress(ctx, time.Now(), s.batchSize)
	if err != nil {
		s.logger.Error("expired attempt sweep failed", "error", err)
		return
	}

	for _, attempt := range attempts {
		if err := s.attemptService.HandleTimeout(ctx, attempt.ID); err != nil {
			s.logger.Error("failed to time out attempt",
				"attempt_id", attempt.ID,
				"exam_id", attempt.ExamID,
				"error", err)
			continue
		}
		s.logger.Info("attempt timed out by sweep",
			"attempt_id", attempt.ID,
			"exam_id", attempt.ExamID,
			"student_id", attempt.StudentID)
	}
}

// retryPendingResults re-runs scoring for submitted attempts whose
// result generation failed at submit time.
func (s *Scheduler) retryPendingResults() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if scored := s.attemptService.RetryPendingResults(ctx, s.batchSize); scored > 0 {
		s.logger.Info("rescored pending attempts", "count", scored)
	}
}
