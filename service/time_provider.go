package service

import (
	"time"

	"github.com/ansys/pypim/helpers"
	"github.com/ansys/pypim/interfaces"
)

// timeProvider implements interfaces.TimeProvider with injected now and sleep functions.
type timeProvider struct {
	now   func() time.Time
	sleep func(time.Duration)
}

// NewTimeProvider creates a TimeProvider from now and sleep. Panics on nil now or sleep.
//
// Parameters: now - current time (time.Now in production); sleep - blocking wait (time.Sleep in production).
//
// Returns: interfaces.TimeProvider.
//
// Called from newOptions for the default clock and from tests with a fake clock.
func NewTimeProvider(now func() time.Time, sleep func(time.Duration)) interfaces.TimeProvider {
	return &timeProvider{
		now:   helpers.NilPanic(now, "service.time_provider.go: now is required"),
		sleep: helpers.NilPanic(sleep, "service.time_provider.go: sleep is required"),
	}
}

func (t *timeProvider) Now() time.Time {
	return t.now()
}

// Sleep returns immediately for non-positive durations.
func (t *timeProvider) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	t.sleep(d)
}
