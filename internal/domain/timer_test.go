package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{60, "00:01:00"},
		{3599, "00:59:59"},
		{3661, "01:01:01"},
		{86400, "24:00:00"},
		{360000, "100:00:00"},
		{-5, "00:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatElapsed(tt.seconds))
		})
	}
}

func TestTimerStateActive(t *testing.T) {
	assert.False(t, TimerIdle.Active())
	assert.True(t, TimerRunning.Active())
	assert.True(t, TimerPaused.Active())
}

func TestUserIsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleWorker}).IsAdmin())
}

func TestResultHelpers(t *testing.T) {
	ok := OK()
	assert.True(t, ok.Success)
	assert.Empty(t, ok.Error)

	fail := Fail("Timer already running")
	assert.False(t, fail.Success)
	assert.Equal(t, "Timer already running", fail.Error)
}
