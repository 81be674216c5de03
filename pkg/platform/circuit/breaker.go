// Package circuit implements a consecutive-failure circuit breaker.
//
// The breaker is an explicit object owned by whoever guards a dependency,
// never package-global state: each client holds its own instance so tests
// stay isolated and independent breakers can guard independent targets.
package circuit

import (
	"sync"
	"time"
)

// State describes the breaker position.
type State int

const (
	// StateClosed allows calls through.
	StateClosed State = iota
	// StateOpen rejects calls without attempting the dependency.
	StateOpen
)

// Clock returns the current time; injectable for tests.
type Clock func() time.Time

const (
	defaultFailureThreshold = 5
	defaultCooldown         = 30 * time.Second
)

// Breaker tracks consecutive failures against a named dependency. Once the
// failure count reaches the threshold the breaker opens and Allow reports
// false until the cooldown window elapses, at which point the breaker closes
// and the counter clears. A single success while closed resets the counter.
type Breaker struct {
	name string

	mu               sync.Mutex
	state            State
	failures         int
	openedAt         time.Time
	failureThreshold int
	cooldown         time.Duration
	clock            Clock
}

// Option configures a Breaker.
type Option func(*Breaker)

// WithFailureThreshold sets how many consecutive failures open the circuit.
func WithFailureThreshold(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.failureThreshold = n
		}
	}
}

// WithCooldown sets how long the circuit stays open before resetting.
func WithCooldown(d time.Duration) Option {
	return func(b *Breaker) {
		if d > 0 {
			b.cooldown = d
		}
	}
}

// WithClock sets the time source for testability.
func WithClock(clock Clock) Option {
	return func(b *Breaker) {
		if clock != nil {
			b.clock = clock
		}
	}
}

// New constructs a closed breaker for the named dependency.
func New(name string, opts ...Option) *Breaker {
	b := &Breaker{
		name:             name,
		state:            StateClosed,
		failureThreshold: defaultFailureThreshold,
		cooldown:         defaultCooldown,
		clock:            time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Name returns the dependency name the breaker guards.
func (b *Breaker) Name() string {
	return b.name
}

// Allow reports whether a call may proceed. An open breaker whose cooldown
// has elapsed closes itself here, clearing the failure counter, so the next
// call attempts real I/O again.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateClosed {
		return true
	}
	if b.clock().Sub(b.openedAt) >= b.cooldown {
		b.state = StateClosed
		b.failures = 0
		return true
	}
	return false
}

// RecordFailure counts a failed call. Returns true when this failure
// transitioned the breaker from closed to open.
func (b *Breaker) RecordFailure() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen {
		return false
	}
	b.failures++
	if b.failures >= b.failureThreshold {
		b.state = StateOpen
		b.openedAt = b.clock()
		return true
	}
	return false
}

// RecordSuccess clears the failure counter. Fast recovery: one success while
// closed forgets all prior failures.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateClosed {
		b.failures = 0
	}
}

// IsOpen reports whether the breaker currently rejects calls. It does not
// consult the cooldown; Allow owns that transition.
func (b *Breaker) IsOpen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state == StateOpen
}

// State returns the current breaker state.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Reset force-closes the breaker and clears its counters.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = StateClosed
	b.failures = 0
}
