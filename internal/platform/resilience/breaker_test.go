package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errDB = errors.New("connection refused")

func failing(context.Context) error { return errDB }
func passing(context.Context) error { return nil }

type transition struct{ from, to CircuitState }

func newTestBreaker(t *testing.T, cfg CircuitBreakerConfig) (*CircuitBreaker, *time.Time, *[]transition) {
	t.Helper()

	cfg.Enabled = true
	var seen []transition
	b := NewCircuitBreaker(cfg, WithStateHook(func(from, to CircuitState) {
		seen = append(seen, transition{from, to})
	}))
	now := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }
	return b, &now, &seen
}

func TestCircuitBreaker_OpensAndRecovers(t *testing.T) {
	b, now, seen := newTestBreaker(t, CircuitBreakerConfig{FailureThreshold: 2, OpenTimeout: 5 * time.Second, HalfOpenMaxReq: 1})
	ctx := context.Background()

	_ = b.Execute(ctx, failing)
	if got := b.State(); got != CircuitStateClosed {
		t.Fatalf("expected closed after one failure, got %s", got)
	}
	_ = b.Execute(ctx, failing)
	if got := b.State(); got != CircuitStateOpen {
		t.Fatalf("expected open after threshold, got %s", got)
	}

	called := false
	err := b.Execute(ctx, func(context.Context) error { called = true; return nil })
	if !errors.Is(err, ErrCircuitOpen) || called {
		t.Fatalf("expected short-circuit, err=%v called=%v", err, called)
	}

	*now = now.Add(6 * time.Second)
	if got := b.State(); got != CircuitStateHalfOpen {
		t.Fatalf("expected half-open after timeout, got %s", got)
	}
	if err := b.Execute(ctx, passing); err != nil {
		t.Fatalf("probe: %v", err)
	}
	if got := b.State(); got != CircuitStateClosed {
		t.Fatalf("expected closed after probe succeeded, got %s", got)
	}

	want := []transition{
		{CircuitStateClosed, CircuitStateOpen},
		{CircuitStateOpen, CircuitStateHalfOpen},
		{CircuitStateHalfOpen, CircuitStateClosed},
	}
	if len(*seen) != len(want) {
		t.Fatalf("transitions = %v, want %v", *seen, want)
	}
	for i := range want {
		if (*seen)[i] != want[i] {
			t.Fatalf("transition %d = %v, want %v", i, (*seen)[i], want[i])
		}
	}
}

func TestCircuitBreaker_FailedProbeReopens(t *testing.T) {
	b, now, _ := newTestBreaker(t, CircuitBreakerConfig{FailureThreshold: 1, OpenTimeout: time.Second, HalfOpenMaxReq: 1})
	ctx := context.Background()

	_ = b.Execute(ctx, failing)
	*now = now.Add(2 * time.Second)
	_ = b.Execute(ctx, failing)
	if got := b.State(); got != CircuitStateOpen {
		t.Fatalf("expected reopen after failed probe, got %s", got)
	}
}

func TestCircuitBreaker_CancellationIsNotAFailure(t *testing.T) {
	b, _, _ := newTestBreaker(t, CircuitBreakerConfig{FailureThreshold: 1})

	err := b.Execute(context.Background(), func(context.Context) error { return context.Canceled })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation to pass through, got %v", err)
	}
	if got := b.State(); got != CircuitStateClosed {
		t.Fatalf("cancellation must not open the breaker, got %s", got)
	}
}

func TestCircuitBreaker_StaleOutcomeIgnored(t *testing.T) {
	b, _, _ := newTestBreaker(t, CircuitBreakerConfig{FailureThreshold: 1})

	gen, err := b.admit()
	if err != nil {
		t.Fatalf("admit: %v", err)
	}
	_ = b.Execute(context.Background(), failing)
	if got := b.State(); got != CircuitStateOpen {
		t.Fatalf("expected open, got %s", got)
	}

	b.report(gen, nil)
	if got := b.State(); got != CircuitStateOpen {
		t.Fatalf("outcome from an older generation changed the state to %s", got)
	}
}

func TestCircuitBreaker_DisabledAndNil(t *testing.T) {
	if b := NewCircuitBreaker(CircuitBreakerConfig{}); b != nil {
		t.Fatalf("expected nil breaker when disabled")
	}

	var b *CircuitBreaker
	called := false
	if err := b.Execute(context.Background(), func(context.Context) error { called = true; return nil }); err != nil || !called {
		t.Fatalf("nil breaker must run fn, err=%v called=%v", err, called)
	}
	if got := b.State(); got != CircuitStateClosed {
		t.Fatalf("nil breaker reports %s", got)
	}
}

func TestCircuitBreakerConfig_Defaults(t *testing.T) {
	cfg := CircuitBreakerConfig{Enabled: true}.withDefaults()
	if cfg.FailureThreshold != defaultFailureThreshold || cfg.OpenTimeout != defaultOpenTimeout || cfg.HalfOpenMaxReq != defaultHalfOpenMaxReq {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}
