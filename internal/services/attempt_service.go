package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/edvora/exam-service/internal/cache"
	"github.com/edvora/exam-service/internal/events"
	"github.com/edvora/exam-service/internal/models"
	"github.com/edvora/exam-service/internal/repositories"
	"github.com/edvora/exam-service/internal/utils"
)

type attemptService struct {
	repo        repositories.Repository
	eligibility EligibilityService
	publisher   events.EventPublisher
	cache       cache.CacheService
	logger      *slog.Logger
	validator   *utils.Validator
	now         func() time.Time
}

func NewAttemptService(
	repo repositories.Repository,
	eligibility EligibilityService,
	publisher events.EventPublisher,
	cacheService cache.CacheService,
	logger *slog.Logger,
	validator *utils.Validator,
) AttemptService {
	return &attemptService{
		repo:        repo,
		eligibility: eligibility,
		publisher:   publisher,
		cache:       cacheService,
		logger:      logger,
		validator:   validator,
		now:         time.Now,
	}
}

// ===== CORE ATTEMPT OPERATIONS =====

func (s *attemptService) Start(ctx context.Context, examID uint, studentID string) (*AttemptView, error) {
	s.logger.Info("Starting exam attempt",
		"exam_id", examID,
		"student_id", studentID)

	// An existing in_progress attempt is returned as-is. Resumption
	// trusts the stored attempt and skips the eligibility re-check.
	existing, err := s.repo.Attempt().GetActiveAttempt(ctx, studentID, examID)
	if err != nil && !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to check active attempt: %w", err)
	}
	if existing != nil {
		s.logger.Info("Resuming existing attempt", "attempt_id", existing.ID)
		return s.resumeAttempt(ctx, existing)
	}

	verdict, err := s.eligibility.Evaluate(ctx, studentID, examID)
	if err != nil {
		return nil, err
	}
	if !verdict.Eligible {
		return nil, &IneligibleError{Verdict: verdict}
	}

	attempt := &models.ExamAttempt{
		ExamID:    examID,
		StudentID: studentID,
		Status:    models.AttemptInProgress,
		StartedAt: s.now(),
	}

	if err := s.createAttempt(ctx, attempt); err != nil {
		// A concurrent double-start loses the insert against the partial
		// unique index; resolve it by returning the winner's attempt.
		if repositories.IsDuplicateKeyError(err) {
			s.logger.Info("Concurrent start detected, returning existing attempt",
				"exam_id", examID,
				"student_id", studentID)
			winner, getErr := s.repo.Attempt().GetActiveAttempt(ctx, studentID, examID)
			if getErr != nil {
				return nil, fmt.Errorf("failed to resolve concurrent start: %w", getErr)
			}
			return s.resumeAttempt(ctx, winner)
		}
		return nil, fmt.Errorf("failed to create attempt: %w", err)
	}

	s.logger.Info("Exam attempt started",
		"attempt_id", attempt.ID,
		"exam_id", examID,
		"student_id", studentID,
		"attempt_number", attempt.AttemptNumber)

	s.publishAsync(events.NewAttemptStartedEvent(attempt))

	return s.buildAttemptView(ctx, attempt), nil
}

// createAttempt allocates the next attempt number and inserts the row
// in one transaction so the numbering query and the insert see the same
// state. The duplicate-key error from the partial unique index is
// passed through for the caller to resolve.
func (s *attemptService) createAttempt(ctx context.Context, attempt *models.ExamAttempt) error {
	txRepo, ok := s.repo.(repositories.TransactionRepository)
	if !ok {
		return s.createAttemptIn(ctx, s.repo, attempt)
	}

	tx, err := txRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := s.createAttemptIn(ctx, tx, attempt); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			s.logger.Error("Failed to roll back attempt creation",
				"exam_id", attempt.ExamID,
				"error", rbErr)
		}
		return err
	}
	return tx.Commit(ctx)
}

func (s *attemptService) createAttemptIn(ctx context.Context, repo repositories.Repository, attempt *models.ExamAttempt) error {
	number, err := repo.Attempt().NextAttemptNumber(ctx, attempt.StudentID, attempt.ExamID)
	if err != nil {
		return fmt.Errorf("failed to compute attempt number: %w", err)
	}
	attempt.AttemptNumber = number
	return repo.Attempt().Create(ctx, attempt)
}

func (s *attemptService) Resume(ctx context.Context, attemptID uint, studentID string) (*AttemptView, error) {
	attempt, err := s.getOwnedAttempt(ctx, attemptID, studentID, "resume")
	if err != nil {
		return nil, err
	}

	if !attempt.IsActive() {
		return s.buildSubmittedView(ctx, attempt), nil
	}

	return s.resumeAttempt(ctx, attempt)
}

// resumeAttempt recomputes remaining time from the wall clock. An
// attempt that expired while the client was away is auto-submitted here
// instead of being granted a fresh duration.
func (s *attemptService) resumeAttempt(ctx context.Context, attempt *models.ExamAttempt) (*AttemptView, error) {
	remaining := RemainingSeconds(attempt.StartedAt, attempt.Exam.Duration*60, s.now())
	if remaining <= 0 {
		s.logger.Info("Attempt expired while absent, auto-submitting",
			"attempt_id", attempt.ID)
		if err := s.HandleTimeout(ctx, attempt.ID); err != nil {
			return nil, fmt.Errorf("failed to auto-submit expired attempt: %w", err)
		}
		refreshed, err := s.repo.Attempt().GetByIDWithResult(ctx, attempt.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to reload attempt: %w", err)
		}
		return &AttemptView{ExamAttempt: refreshed}, nil
	}

	return &AttemptView{
		ExamAttempt:      attempt,
		RemainingSeconds: remaining,
		CanSubmit:        true,
	}, nil
}

func (s *attemptService) SaveResponse(ctx context.Context, attemptID uint, studentID string, req *SaveResponseRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	attempt, err := s.getOwnedAttempt(ctx, attemptID, studentID, "save_response")
	if err != nil {
		return err
	}
	if !attempt.IsActive() {
		return ErrAttemptNotActive
	}
	if RemainingSeconds(attempt.StartedAt, attempt.Exam.Duration*60, s.now()) <= 0 {
		return ErrAttemptNotActive
	}

	question, err := s.findQuestion(ctx, attempt.ExamID, req.QuestionID)
	if err != nil {
		return err
	}

	// Reject mismatched payload shapes here, before anything is stored.
	// MSQ selections come back sorted so the row always holds the
	// canonical set form.
	canonical, err := models.EncodeAnswer(question.Type, req.Answer)
	if err != nil {
		s.logger.Warn("Rejected answer payload",
			"attempt_id", attemptID,
			"question_id", req.QuestionID,
			"question_type", question.Type,
			"error", err)
		return fmt.Errorf("%w: %v", ErrInvalidAnswerPayload, err)
	}

	seq := req.Seq
	if seq == 0 {
		seq = s.now().UnixNano()
	}

	response := &models.QuestionResponse{
		AttemptID:  attemptID,
		QuestionID: req.QuestionID,
		Answer:     canonical,
		Seq:        seq,
	}
	if req.MarkedForReview != nil {
		response.IsMarkedForReview = *req.MarkedForReview
	} else if prev, err := s.repo.Response().GetByAttemptAndQuestion(ctx, attemptID, req.QuestionID); err == nil {
		response.IsMarkedForReview = prev.IsMarkedForReview
	}

	if err := s.repo.Response().Upsert(ctx, response); err != nil {
		// Surfaced so silent data loss is detectable; the client may
		// retry with the same seq.
		s.logger.Error("Failed to save response",
			"attempt_id", attemptID,
			"question_id", req.QuestionID,
			"error", err)
		return fmt.Errorf("failed to save response: %w", err)
	}

	return nil
}

func (s *attemptService) Submit(ctx context.Context, attemptID uint, studentID string, reason models.SubmitReason) (*AttemptView, error) {
	s.logger.Info("Submitting exam attempt",
		"attempt_id", attemptID,
		"student_id", studentID,
		"reason", reason)

	attempt, err := s.getOwnedAttempt(ctx, attemptID, studentID, "submit")
	if err != nil {
		return nil, err
	}

	// Idempotent submit: short-circuit to the stored result.
	if attempt.Status == models.AttemptSubmitted {
		s.logger.Info("Attempt already submitted", "attempt_id", attemptID)
		return s.buildSubmittedView(ctx, attempt), nil
	}

	return s.finalize(ctx, attempt, reason)
}

// HandleTimeout force-submits an expired attempt. Safe to call
// concurrently with a student-initiated submit; the conditional status
// update lets exactly one caller through.
func (s *attemptService) HandleTimeout(ctx context.Context, attemptID uint) error {
	attempt, err := s.repo.Attempt().GetByID(ctx, attemptID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrAttemptNotFound
		}
		return fmt.Errorf("failed to get attempt: %w", err)
	}

	if !attempt.IsActive() {
		return nil // already handled
	}

	_, err = s.finalize(ctx, attempt, models.SubmitReasonTimeout)
	return err
}

// finalize performs the terminal transition and scores the attempt. A
// scoring failure is logged but never rolls the submission back; result
// generation is retried by the sweep and by FetchResult.
func (s *attemptService) finalize(ctx context.Context, attempt *models.ExamAttempt, reason models.SubmitReason) (*AttemptView, error) {
	submittedAt := s.now()
	won, err := s.repo.Attempt().MarkSubmitted(ctx, attempt.ID, submittedAt, reason)
	if err != nil {
		return nil, fmt.Errorf("failed to submit attempt: %w", err)
	}
	if !won {
		// Lost the race against another device's submit. The attempt is
		// submitted either way; return the winner's state.
		s.logger.Info("Concurrent submit detected", "attempt_id", attempt.ID)
		refreshed, err := s.repo.Attempt().GetByID(ctx, attempt.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to reload attempt: %w", err)
		}
		return s.buildSubmittedView(ctx, refreshed), nil
	}

	attempt.Status = models.AttemptSubmitted
	attempt.SubmittedAt = &submittedAt
	attempt.EndReason = &reason

	s.logger.Info("Exam attempt submitted",
		"attempt_id", attempt.ID,
		"exam_id", attempt.ExamID,
		"reason", reason)

	result, err := s.generateResult(ctx, attempt)
	if err != nil {
		s.logger.Error("Result generation failed, submission stands",
			"attempt_id", attempt.ID,
			"error", err)
	}

	s.publishAsync(events.NewAttemptSubmittedEvent(attempt, result))

	view := &AttemptView{ExamAttempt: attempt}
	return view, nil
}
