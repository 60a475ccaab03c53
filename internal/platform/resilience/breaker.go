package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

const (
	defaultFailureThreshold = 5
	defaultOpenTimeout      = 15 * time.Second
	defaultHalfOpenMaxReq   = 2
)

type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

func (c CircuitBreakerConfig) withDefaults() CircuitBreakerConfig {
	if c.FailureThreshold < 1 {
		c.FailureThreshold = defaultFailureThreshold
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = defaultOpenTimeout
	}
	if c.HalfOpenMaxReq < 1 {
		c.HalfOpenMaxReq = defaultHalfOpenMaxReq
	}
	return c
}

type Option func(*CircuitBreaker)

// WithStateHook is called, outside the breaker lock, on every transition.
func WithStateHook(fn func(from, to CircuitState)) Option {
	return func(b *CircuitBreaker) { b.onChange = fn }
}

// CircuitBreaker guards the database. It opens after FailureThreshold
// consecutive failures, lets HalfOpenMaxReq probes through once OpenTimeout
// has passed, and closes again when all of them succeed.
//
// Every transition starts a new generation; an outcome reported for an older
// generation is ignored, so a slow call cannot reopen a recovered breaker.
type CircuitBreaker struct {
	cfg      CircuitBreakerConfig
	now      func() time.Time
	onChange func(from, to CircuitState)

	mu         sync.Mutex
	state      CircuitState
	generation uint64
	failures   int
	openUntil  time.Time
	probes     int
	successes  int
}

// NewCircuitBreaker returns nil when cfg is disabled. A nil breaker runs
// every call.
func NewCircuitBreaker(cfg CircuitBreakerConfig, opts ...Option) *CircuitBreaker {
	if !cfg.Enabled {
		return nil
	}
	b := &CircuitBreaker{
		cfg:   cfg.withDefaults(),
		now:   time.Now,
		state: CircuitStateClosed,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Execute runs fn if the breaker admits it and records the outcome.
// Cancellation and deadline errors are not held against the dependency.
func (b *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if b == nil {
		return fn(ctx)
	}

	gen, err := b.admit()
	if err != nil {
		return err
	}

	err = fn(ctx)
	b.report(gen, err)
	return err
}

func (b *CircuitBreaker) State() CircuitState {
	if b == nil {
		return CircuitStateClosed
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == CircuitStateOpen && !b.now().Before(b.openUntil) {
		return CircuitStateHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) admit() (uint64, error) {
	b.mu.Lock()
	var from CircuitState
	changed := false
	if b.state == CircuitStateOpen {
		if b.now().Before(b.openUntil) {
			b.mu.Unlock()
			return 0, ErrCircuitOpen
		}
		from, changed = b.state, true
		b.moveTo(CircuitStateHalfOpen)
	}
	if b.state == CircuitStateHalfOpen {
		if b.probes >= b.cfg.HalfOpenMaxReq {
			b.mu.Unlock()
			b.notify(changed, from, CircuitStateHalfOpen)
			return 0, ErrCircuitOpen
		}
		b.probes++
	}
	gen := b.generation
	b.mu.Unlock()

	b.notify(changed, from, CircuitStateHalfOpen)
	return gen, nil
}

func (b *CircuitBreaker) report(gen uint64, err error) {
	b.mu.Lock()
	if gen != b.generation {
		b.mu.Unlock()
		return
	}

	from := b.state
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		if b.state == CircuitStateHalfOpen {
			b.probes--
		}
	case err == nil:
		b.failures = 0
		if b.state == CircuitStateHalfOpen {
			b.successes++
			if b.successes >= b.cfg.HalfOpenMaxReq {
				b.moveTo(CircuitStateClosed)
			}
		}
	default:
		b.failures++
		if b.state == CircuitStateHalfOpen || b.failures >= b.cfg.FailureThreshold {
			b.moveTo(CircuitStateOpen)
		}
	}
	to := b.state
	b.mu.Unlock()

	b.notify(from != to, from, to)
}

// moveTo must be called with mu held.
func (b *CircuitBreaker) moveTo(state CircuitState) {
	b.state = state
	b.generation++
	b.failures = 0
	b.probes = 0
	b.successes = 0
	b.openUntil = time.Time{}
	if state == CircuitStateOpen {
		b.openUntil = b.now().Add(b.cfg.OpenTimeout)
	}
}

func (b *CircuitBreaker) notify(changed bool, from, to CircuitState) {
	if changed && b.onChange != nil {
		b.onChange(from, to)
	}
}
