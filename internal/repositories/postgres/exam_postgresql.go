package postgres

import (
	"context"

	"github.com/edvora/exam-service/internal/models"
	"github.com/edvora/exam-service/internal/repositories"
	"gorm.io/gorm"
)

type ExamPostgreSQL struct {
	db *gorm.DB
}

func NewExamPostgreSQL(db *gorm.DB) repositories.ExamRepository {
	return &ExamPostgreSQL{db: db}
}

func (e *ExamPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Exam, error) {
	var exam models.Exam
	if err := e.db.WithContext(ctx).First(&exam, id).Error; err != nil {
		return nil, err
	}
	return &exam, nil
}

func (e *ExamPostgreSQL) GetByIDWithContent(ctx context.Context, id uint) (*models.Exam, error) {
	var exam models.Exam
	if err := e.db.WithContext(ctx).
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("exam_sections.display_order ASC")
		}).
		Preload("Sections.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.display_order ASC")
		}).
		Preload("Sections.Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_options.display_order ASC")
		}).
		First(&exam, id).Error; err != nil {
		return nil, err
	}
	return &exam, nil
}

func (e *ExamPostgreSQL) GetLessonByExam(ctx context.Context, examID uint) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := e.db.WithContext(ctx).
		Preload("Course").
		Where("exam_id = ?", examID).
		First(&lesson).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (e *ExamPostgreSQL) GetPrecedingLessonWithExam(ctx context.Context, courseID uint, order int) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := e.db.WithContext(ctx).
		Where("course_id = ? AND display_order < ? AND exam_id IS NOT NULL", courseID, order).
		Order("display_order DESC").
		First(&lesson).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}
