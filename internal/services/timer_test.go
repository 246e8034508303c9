package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRemainingSeconds(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		startedAt time.Time
		duration  int
		want      int
	}{
		{
			name:      "just started",
			startedAt: now,
			duration:  3600,
			want:      3600,
		},
		{
			name:      "halfway through",
			startedAt: now.Add(-30 * time.Minute),
			duration:  3600,
			want:      1800,
		},
		{
			name:      "exactly at deadline",
			startedAt: now.Add(-60 * time.Minute),
			duration:  3600,
			want:      0,
		},
		{
			name:      "expired while absent",
			startedAt: now.Add(-70 * time.Minute),
			duration:  3600,
			want:      0,
		},
		{
			name:      "missing start falls open to full duration",
			startedAt: time.Time{},
			duration:  3600,
			want:      3600,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemainingSeconds(tt.startedAt, tt.duration, now)
			assert.Equal(t, tt.want, got)
		})
	}
}
