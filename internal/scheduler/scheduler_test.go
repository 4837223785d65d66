package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEveryRunsImmediatelyAndRepeats(t *testing.T) {
	s := New()
	var runs int64
	s.Every("count", 20*time.Millisecond, func() {
		atomic.AddInt64(&runs, 1)
	})

	time.Sleep(110 * time.Millisecond)
	s.Stop()

	got := atomic.LoadInt64(&runs)
	assert.GreaterOrEqual(t, got, int64(3), "expected the job to run at least three times")
}

func TestStopPreventsFurtherRuns(t *testing.T) {
	s := New()
	var runs int64
	s.Every("count", 10*time.Millisecond, func() {
		atomic.AddInt64(&runs, 1)
	})

	time.Sleep(35 * time.Millisecond)
	s.Stop()
	after := atomic.LoadInt64(&runs)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, atomic.LoadInt64(&runs), "job ran after Stop")
}

func TestStopIsIdempotent(t *testing.T) {
	s := New()
	s.Every("noop", time.Hour, func() {})
	s.Stop()
	s.Stop()
}

func TestPanickingJobDoesNotKillScheduler(t *testing.T) {
	s := New()
	var runs int64
	s.Every("panics", 15*time.Millisecond, func() {
		atomic.AddInt64(&runs, 1)
		panic("boom")
	})

	time.Sleep(60 * time.Millisecond)
	s.Stop()
	assert.GreaterOrEqual(t, atomic.LoadInt64(&runs), int64(2), "job should keep being scheduled after a panic")
}

func TestUntilNextHour(t *testing.T) {
	base := time.Date(2025, 3, 10, 1, 30, 0, 0, time.UTC)

	assert.Equal(t, 30*time.Minute, untilNextHour(base, 2))

	// already past today's slot: wait for tomorrow
	assert.Equal(t, 23*time.Hour+30*time.Minute, untilNextHour(base, 1))

	// exactly at the slot: schedule a full day ahead, never zero
	exact := time.Date(2025, 3, 10, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, 24*time.Hour, untilNextHour(exact, 2))
}
