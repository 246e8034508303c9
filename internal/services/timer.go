package services

import (
	"time"
)

// RemainingSeconds reconstructs the remaining time of an attempt from
// wall clock alone. Elapsed time since started_at is authoritative; no
// client-side countdown state is consulted. A zero started_at falls open
// to the full configured duration rather than failing the resume.
func RemainingSeconds(startedAt time.Time, durationSeconds int, now time.Time) int {
	if startedAt.IsZero() {
		return durationSeconds
	}
	elapsed := int(now.Sub(startedAt).Seconds())
	remaining := durationSeconds - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}
