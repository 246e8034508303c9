package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExam_IsOpenAt(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	before := now.Add(-time.Hour)
	after := now.Add(time.Hour)

	tests := []struct {
		name  string
		start *time.Time
		end   *time.Time
		want  bool
	}{
		{"unbounded", nil, nil, true},
		{"inside window", &before, &after, true},
		{"before start", &after, nil, false},
		{"after end", nil, &before, false},
		{"at start", &now, nil, true},
		{"at end", nil, &now, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exam := Exam{StartTime: tt.start, EndTime: tt.end}
			assert.Equal(t, tt.want, exam.IsOpenAt(now))
		})
	}
}
