package circuit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock lets tests advance time manually.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func TestBreaker_InitialState(t *testing.T) {
	b := New("catalog")
	assert.False(t, b.IsOpen())
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, "catalog", b.Name())
	assert.True(t, b.Allow())
}

func TestBreaker_OpensAfterThreshold(t *testing.T) {
	b := New("catalog", WithFailureThreshold(3))

	// First two failures don't open
	assert.False(t, b.RecordFailure())
	assert.False(t, b.RecordFailure())
	assert.False(t, b.IsOpen())

	// Third failure opens the circuit
	assert.True(t, b.RecordFailure())
	assert.True(t, b.IsOpen())
	assert.False(t, b.Allow())
}

func TestBreaker_SuccessResetsFailureCount(t *testing.T) {
	b := New("catalog", WithFailureThreshold(3))

	b.RecordFailure()
	b.RecordFailure()
	assert.False(t, b.IsOpen())

	// Success resets count
	b.RecordSuccess()

	// Two more failures don't open (count was reset)
	b.RecordFailure()
	b.RecordFailure()
	assert.False(t, b.IsOpen())

	// Third failure opens
	b.RecordFailure()
	assert.True(t, b.IsOpen())
}

func TestBreaker_ClosesAfterCooldown(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	b := New("catalog",
		WithFailureThreshold(1),
		WithCooldown(time.Minute),
		WithClock(clock.Now),
	)

	b.RecordFailure()
	assert.False(t, b.Allow())

	// Still open just before the cooldown elapses
	clock.Advance(59 * time.Second)
	assert.False(t, b.Allow())

	// Cooldown elapsed: the next Allow closes the breaker and clears counters
	clock.Advance(time.Second)
	assert.True(t, b.Allow())
	assert.Equal(t, StateClosed, b.State())

	// Counter was cleared: a single failure is needed again to re-open
	assert.True(t, b.RecordFailure())
	assert.True(t, b.IsOpen())
}

func TestBreaker_FailureWhileOpenDoesNotReopen(t *testing.T) {
	b := New("catalog", WithFailureThreshold(1))

	assert.True(t, b.RecordFailure())
	// Additional failures while open report no transition
	assert.False(t, b.RecordFailure())
	assert.True(t, b.IsOpen())
}

func TestBreaker_Reset(t *testing.T) {
	b := New("catalog", WithFailureThreshold(1))

	b.RecordFailure()
	assert.True(t, b.IsOpen())

	b.Reset()
	assert.False(t, b.IsOpen())
	assert.True(t, b.Allow())
}
