package service

import (
	"testing"
	"time"

	"github.com/ansys/pypim/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeProvider_Panics(t *testing.T) {
	assert.PanicsWithValue(t, "service.time_provider.go: now is required", func() {
		NewTimeProvider(nil, time.Sleep)
	})
	assert.PanicsWithValue(t, "service.time_provider.go: sleep is required", func() {
		NewTimeProvider(time.Now, nil)
	})
}

func TestTimeProvider_Now(t *testing.T) {
	tp := NewTimeProvider(helpers.TestNow, func(time.Duration) {})
	require.NotNil(t, tp)
	assert.Equal(t, helpers.TestNow(), tp.Now())
}

func TestTimeProvider_SleepSkipsNonPositive(t *testing.T) {
	var slept []time.Duration
	tp := NewTimeProvider(time.Now, func(d time.Duration) { slept = append(slept, d) })
	tp.Sleep(0)
	tp.Sleep(-time.Second)
	tp.Sleep(time.Millisecond)
	assert.Equal(t, []time.Duration{time.Millisecond}, slept)
}

// fakeClock advances only when Sleep is called.
type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock { return &fakeClock{now: helpers.TestNow()} }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}

func (c *fakeClock) elapsed() time.Duration { return c.now.Sub(helpers.TestNow()) }
