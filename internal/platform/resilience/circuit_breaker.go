// Package resilience guards calls to a flaky dependency with a circuit breaker.
package resilience

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

var ErrOpen = errors.New("circuit breaker is open")

type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half_open"
)

// Option customises a Breaker.
type Option func(*Breaker)

// WithStateChange registers fn to run after every state transition, outside
// the breaker's lock.
func WithStateChange(fn func(name string, from, to State)) Option {
	return func(b *Breaker) {
		b.onChange = fn
	}
}

// Breaker counts consecutive failures of one dependency and short-circuits
// calls while open. Only errors accepted by trips count as failures; any other
// outcome proves the dependency answered and counts as a success.
type Breaker struct {
	cfg      BreakerConfig
	trips    func(error) bool
	onChange func(name string, from, to State)
	now      func() time.Time

	mu                  sync.Mutex
	state               State
	consecutiveFailures int
	openedAt            time.Time
	halfOpenInFlight    int
	halfOpenSuccesses   int
}

// NewBreaker builds a closed breaker. A nil trips counts every error.
func NewBreaker(cfg BreakerConfig, trips func(error) bool, opts ...Option) *Breaker {
	if trips == nil {
		trips = func(err error) bool { return err != nil }
	}
	b := &Breaker{
		cfg:   cfg.withDefaults(),
		trips: trips,
		now:   time.Now,
		state: StateClosed,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Breaker) Name() string {
	return b.cfg.Name
}

// Run calls fn unless the circuit is open, in which case it returns an error
// wrapping ErrOpen without calling fn. A nil Breaker always calls fn.
func (b *Breaker) Run(fn func() error) error {
	if b == nil {
		return fn()
	}
	if err := b.allow(); err != nil {
		return err
	}

	err := fn()
	if err != nil && b.trips(err) {
		b.record(false)
		return err
	}
	b.record(true)
	return err
}

// State reports the current state. An open circuit whose timeout elapsed
// reports half-open, since the next call will be let through.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen && b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout {
		return StateHalfOpen
	}
	return b.state
}

func (b *Breaker) allow() error {
	b.mu.Lock()
	from := b.state
	if b.state == StateOpen {
		if b.now().Sub(b.openedAt) < b.cfg.OpenTimeout {
			b.mu.Unlock()
			return fmt.Errorf("%w: %s", ErrOpen, b.cfg.Name)
		}
		b.moveTo(StateHalfOpen)
	}
	if b.state == StateHalfOpen {
		if b.halfOpenInFlight >= b.cfg.HalfOpenMaxReq {
			b.mu.Unlock()
			b.notify(from, StateHalfOpen)
			return fmt.Errorf("%w: %s", ErrOpen, b.cfg.Name)
		}
		b.halfOpenInFlight++
	}
	to := b.state
	b.mu.Unlock()

	b.notify(from, to)
	return nil
}

func (b *Breaker) record(ok bool) {
	b.mu.Lock()
	from := b.state
	switch b.state {
	case StateClosed:
		if ok {
			b.consecutiveFailures = 0
			break
		}
		b.consecutiveFailures++
		if b.consecutiveFailures >= b.cfg.FailureThreshold {
			b.moveTo(StateOpen)
		}
	case StateHalfOpen:
		if b.halfOpenInFlight > 0 {
			b.halfOpenInFlight--
		}
		if !ok {
			b.moveTo(StateOpen)
			break
		}
		b.halfOpenSuccesses++
		if b.halfOpenSuccesses >= b.cfg.HalfOpenMaxReq && b.halfOpenInFlight == 0 {
			b.moveTo(StateClosed)
		}
	case StateOpen:
		if !ok {
			b.openedAt = b.now()
		}
	}
	to := b.state
	b.mu.Unlock()

	b.notify(from, to)
}

// moveTo must be called with mu held.
func (b *Breaker) moveTo(state State) {
	b.state = state
	b.halfOpenInFlight = 0
	b.halfOpenSuccesses = 0
	switch state {
	case StateClosed:
		b.consecutiveFailures = 0
		b.openedAt = time.Time{}
	case StateOpen:
		b.openedAt = b.now()
	}
}

func (b *Breaker) notify(from, to State) {
	if from != to && b.onChange != nil {
		b.onChange(b.cfg.Name, from, to)
	}
}
