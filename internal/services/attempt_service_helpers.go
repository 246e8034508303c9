package services

import (
	"context"
	"fmt"
	"time"

	"github.com/edvora/exam-service/internal/events"
	"github.com/edvora/exam-service/internal/models"
	"github.com/edvora/exam-service/internal/repositories"
	"github.com/edvora/exam-service/internal/scoring"
)

const examContentCacheTTL = 5 * time.Minute

func (s *attemptService) getOwnedAttempt(ctx context.Context, attemptID uint, studentID string, action string) (*models.ExamAttempt, error) {
	attempt, err := s.repo.Attempt().GetByID(ctx, attemptID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}

	if attempt.StudentID != studentID {
		return nil, NewPermissionError(studentID, attemptID, "attempt", action, "not owned by student")
	}
	return attempt, nil
}

// getExamContent loads the full exam (sections, questions, options)
// through the read-side cache. Content is immutable during an attempt,
// so a short TTL is safe.
func (s *attemptService) getExamContent(ctx context.Context, examID uint) (*models.Exam, error) {
	cacheKey := fmt.Sprintf("exam:content:%d", examID)

	var cached models.Exam
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	exam, err := s.repo.Exam().GetByIDWithContent(ctx, examID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("failed to load exam content: %w", err)
	}

	if err := s.cache.Set(ctx, cacheKey, exam, examContentCacheTTL); err != nil {
		s.logger.Warn("Failed to cache exam content", "exam_id", examID, "error", err)
	}
	return exam, nil
}

func (s *attemptService) findQuestion(ctx context.Context, examID, questionID uint) (*models.Question, error) {
	exam, err := s.getExamContent(ctx, examID)
	if err != nil {
		return nil, err
	}
	for si := range exam.Sections {
		for qi := range exam.Sections[si].Questions {
			if exam.Sections[si].Questions[qi].ID == questionID {
				return &exam.Sections[si].Questions[qi], nil
			}
		}
	}
	return nil, ErrQuestionNotInExam
}

// generateResult scores the attempt from its stored responses and
// persists the result. Idempotent: a result that already exists (from a
// racing scorer) is returned as-is.
func (s *attemptService) generateResult(ctx context.Context, attempt *models.ExamAttempt) (*models.ExamResult, error) {
	if existing, err := s.repo.Result().GetByAttempt(ctx, attempt.ID); err == nil {
		return existing, nil
	}

	exam, err := s.getExamContent(ctx, attempt.ExamID)
	if err != nil {
		return nil, err
	}

	responses, err := s.repo.Response().GetByAttempt(ctx, attempt.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load responses: %w", err)
	}

	answerByQuestion := make(map[uint][]byte, len(responses))
	for _, r := range responses {
		answerByQuestion[r.QuestionID] = r.Answer
	}

	result := scoring.Score(exam, answerByQuestion)
	result.AttemptID = attempt.ID

	if err := s.repo.Result().Create(ctx, result); err != nil {
		if repositories.IsDuplicateKeyError(err) {
			return s.repo.Result().GetByAttempt(ctx, attempt.ID)
		}
		return nil, fmt.Errorf("failed to persist result: %w", err)
	}

	s.logger.Info("Result generated",
		"attempt_id", attempt.ID,
		"obtained_marks", result.ObtainedMarks,
		"percentage", result.Percentage)

	s.publishAsync(events.NewResultReadyEvent(attempt, result))

	return result, nil
}

// ScoreAttempt generates the result for a submitted attempt, returning
// the stored one when scoring already succeeded.
func (s *attemptService) ScoreAttempt(ctx context.Context, attemptID uint) (*models.ExamResult, error) {
	attempt, err := s.repo.Attempt().GetByID(ctx, attemptID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}
	if attempt.Status != models.AttemptSubmitted {
		return nil, ErrAttemptNotActive
	}
	return s.generateResult(ctx, attempt)
}

// RetryPendingResults re-scores submitted attempts that still have no
// result row. Returns the number of attempts recovered.
func (s *attemptService) RetryPendingResults(ctx context.Context, limit int) int {
	attempts, err := s.repo.Attempt().GetSubmittedWithoutResult(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to list attempts pending scoring", "error", err)
		return 0
	}

	recovered := 0
	for _, attempt := range attempts {
		if _, err := s.generateResult(ctx, attempt); err != nil {
			s.logger.Error("Retry scoring failed",
				"attempt_id", attempt.ID,
				"error", err)
			continue
		}
		recovered++
	}
	if recovered > 0 {
		s.logger.Info("Recovered pending results", "count", recovered)
	}
	return recovered
}

func (s *attemptService) buildAttemptView(ctx context.Context, attempt *models.ExamAttempt) *AttemptView {
	remaining := 0
	if attempt.IsActive() {
		duration := attempt.Exam.Duration
		if duration == 0 {
			if exam, err := s.repo.Exam().GetByID(ctx, attempt.ExamID); err == nil {
				attempt.Exam = *exam
				duration = exam.Duration
			}
		}
		remaining = RemainingSeconds(attempt.StartedAt, duration*60, s.now())
	}
	return &AttemptView{
		ExamAttempt:      attempt,
		RemainingSeconds: remaining,
		CanSubmit:        attempt.IsActive() && remaining > 0,
	}
}

func (s *attemptService) buildSubmittedView(ctx context.Context, attempt *models.ExamAttempt) *AttemptView {
	if attempt.Result == nil {
		if result, err := s.repo.Result().GetByAttempt(ctx, attempt.ID); err == nil {
			attempt.Result = result
		}
	}
	return &AttemptView{ExamAttempt: attempt}
}

// publishAsync fires the completion event without blocking the caller.
// The notification sink is informed, never consulted for correctness.
func (s *attemptService) publishAsync(event *events.Event) {
	if s.publisher == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Error("Failed to publish event",
				"event_type", event.Type,
				"error", err)
		}
	}()
}
