package models

import (
	"time"
)

// Course and Lesson are read models owned by the content store. The exam
// service reads them only to evaluate sequential-unlock prerequisites.

type Course struct {
	ID               uint   `json:"id" gorm:"primaryKey"`
	Title            string `json:"title" gorm:"not null;size:200"`
	SequentialUnlock bool   `json:"sequential_unlock" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Course) TableName() string {
	return "courses"
}

type Lesson struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	CourseID uint   `json:"course_id" gorm:"not null;index"`
	Title    string `json:"title" gorm:"not null;size:200"`
	Order    int    `json:"order" gorm:"not null;column:display_order"`

	// ExamID links the lesson to its exam, when it has one.
	ExamID *uint `json:"exam_id" gorm:"index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Course Course `json:"course" gorm:"foreignKey:CourseID"`
}

func (Lesson) TableName() string {
	return "lessons"
}
