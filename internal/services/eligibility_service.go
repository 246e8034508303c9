package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/edvora/exam-service/internal/models"
	"github.com/edvora/exam-service/internal/repositories"
)

type eligibilityService struct {
	repo   repositories.Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewEligibilityService(repo repositories.Repository, logger *slog.Logger) EligibilityService {
	return &eligibilityService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Evaluate runs the checks in order, short-circuiting on the first
// failure: availability window, lesson prerequisite, attempt quota.
func (s *eligibilityService) Evaluate(ctx context.Context, studentID string, examID uint) (*EligibilityVerdict, error) {
	exam, err := s.repo.Exam().GetByID(ctx, examID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("failed to get exam: %w", err)
	}

	now := s.now()

	if verdict := s.checkTimeWindow(exam, now); verdict != nil {
		return verdict, nil
	}

	verdict, err := s.checkPrerequisite(ctx, studentID, exam)
	if err != nil {
		return nil, err
	}
	if verdict != nil {
		return verdict, nil
	}

	return s.checkAttemptQuota(ctx, studentID, exam)
}

func (s *eligibilityService) checkTimeWindow(exam *models.Exam, now time.Time) *EligibilityVerdict {
	if exam.IsOpenAt(now) {
		return nil
	}
	if exam.StartTime != nil && now.Before(*exam.StartTime) {
		return &EligibilityVerdict{
			Eligible:  false,
			Reason:    ReasonUpcoming,
			Message:   "exam has not started yet",
			StartTime: exam.StartTime,
			EndTime:   exam.EndTime,
		}
	}
	return &EligibilityVerdict{
		Eligible: false,
		Reason:   ReasonExpired,
		Message:  "exam window has closed",
		EndTime:  exam.EndTime,
	}
}

// checkPrerequisite requires a submitted attempt on the preceding
// lesson's exam when the course uses sequential unlock. A prerequisite
// pointing back at the same exam is ignored; that guards against
// misconfigured cycles.
func (s *eligibilityService) checkPrerequisite(ctx context.Context, studentID string, exam *models.Exam) (*EligibilityVerdict, error) {
	lesson, err := s.repo.Exam().GetLessonByExam(ctx, exam.ID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, nil // exam not attached to a lesson
		}
		return nil, fmt.Errorf("failed to get lesson for exam: %w", err)
	}

	if !lesson.Course.SequentialUnlock {
		return nil, nil
	}

	prereq, err := s.repo.Exam().GetPrecedingLessonWithExam(ctx, lesson.CourseID, lesson.Order)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, nil // first lesson with an exam in the course
		}
		return nil, fmt.Errorf("failed to get prerequisite lesson: %w", err)
	}

	if prereq.ExamID == nil || *prereq.ExamID == exam.ID {
		return nil, nil
	}

	done, err := s.repo.Attempt().HasSubmitted(ctx, studentID, *prereq.ExamID)
	if err != nil {
		return nil, fmt.Errorf("failed to check prerequisite attempts: %w", err)
	}
	if done {
		return nil, nil
	}

	s.logger.Info("Eligibility denied by prerequisite",
		"exam_id", exam.ID,
		"student_id", studentID,
		"prerequisite_lesson_id", prereq.ID)

	return &EligibilityVerdict{
		Eligible:          false,
		Reason:            ReasonPrerequisite,
		Message:           "complete the previous lesson's exam first",
		PrerequisiteTitle: prereq.Title,
	}, nil
}

func (s *eligibilityService) checkAttemptQuota(ctx context.Context, studentID string, exam *models.Exam) (*EligibilityVerdict, error) {
	if exam.MaxAttempts == nil {
		return &EligibilityVerdict{Eligible: true}, nil
	}

	used, err := s.repo.Attempt().CountSubmitted(ctx, studentID, exam.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count submitted attempts: %w", err)
	}

	if used >= *exam.MaxAttempts {
		zero := 0
		return &EligibilityVerdict{
			Eligible:          false,
			Reason:            ReasonQuotaExhausted,
			Message:           "maximum attempts reached",
			RemainingAttempts: &zero,
		}, nil
	}

	remaining := *exam.MaxAttempts - used
	return &EligibilityVerdict{
		Eligible:          true,
		RemainingAttempts: &remaining,
	}, nil
}
