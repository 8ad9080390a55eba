package domain

import (
	"fmt"
	"time"
)

// TimerState represents the state of the active timer
type TimerState string

const (
	TimerIdle    TimerState = "idle"
	TimerRunning TimerState = "running"
	TimerPaused  TimerState = "paused"
)

// Active reports whether the state carries an in-progress time record
func (s TimerState) Active() bool {
	return s == TimerRunning || s == TimerPaused
}

// ActiveTimer is the single in-progress time record tracked locally.
// PropertyID and WorkerIDs are fixed for the lifetime of one timer instance.
type ActiveTimer struct {
	ID         int64
	PropertyID int64
	WorkerIDs  []int64
	StartedAt  time.Time
}

// FormatElapsed renders elapsed seconds as zero-padded HH:MM:SS. The hours
// field grows beyond two digits rather than wrapping.
func FormatElapsed(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
