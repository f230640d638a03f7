package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errTransient = errors.New("transient failure")

func fastConfig() Config {
	return Config{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
		BreakerEnabled: false,
	}
}

func TestExecuteSucceedsFirstAttempt(t *testing.T) {
	ex := NewExecutor(fastConfig())

	calls := 0
	err := ex.Execute(context.Background(), "op", func(context.Context) error {
		calls++
		return nil
	}, func(error) bool { return true })
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestExecuteRetriesTransientErrors(t *testing.T) {
	ex := NewExecutor(fastConfig())

	calls := 0
	err := ex.Execute(context.Background(), "op", func(context.Context) error {
		calls++
		if calls < 3 {
			return errTransient
		}
		return nil
	}, func(err error) bool { return errors.Is(err, errTransient) })
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestExecuteStopsAtMaxAttempts(t *testing.T) {
	ex := NewExecutor(fastConfig())

	calls := 0
	err := ex.Execute(context.Background(), "op", func(context.Context) error {
		calls++
		return errTransient
	}, func(error) bool { return true })
	if !errors.Is(err, errTransient) {
		t.Fatalf("Execute() error = %v, want transient", err)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestExecuteDoesNotRetryPermanentErrors(t *testing.T) {
	ex := NewExecutor(fastConfig())
	permanent := errors.New("bad request")

	calls := 0
	err := ex.Execute(context.Background(), "op", func(context.Context) error {
		calls++
		return permanent
	}, func(err error) bool { return errors.Is(err, errTransient) })
	if !errors.Is(err, permanent) {
		t.Fatalf("Execute() error = %v, want permanent", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestExecuteNilClassifierRetriesNothing(t *testing.T) {
	ex := NewExecutor(fastConfig())

	calls := 0
	err := ex.Execute(context.Background(), "op", func(context.Context) error {
		calls++
		return errTransient
	}, nil)
	if !errors.Is(err, errTransient) {
		t.Fatalf("Execute() error = %v", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestExecuteHonorsContextCancellation(t *testing.T) {
	ex := NewExecutor(Config{
		MaxAttempts:    5,
		InitialBackoff: 50 * time.Millisecond,
		MaxBackoff:     50 * time.Millisecond,
		BreakerEnabled: false,
	})

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	err := ex.Execute(ctx, "op", func(context.Context) error {
		calls++
		return errTransient
	}, func(error) bool { return true })
	if err == nil {
		t.Fatal("Execute() succeeded after cancellation")
	}
	if calls >= 5 {
		t.Fatalf("calls = %d, cancellation did not stop the retry loop", calls)
	}
}

func TestBreakerOpensAfterFailureRun(t *testing.T) {
	ex := NewExecutor(Config{
		MaxAttempts:         1,
		InitialBackoff:      time.Millisecond,
		MaxBackoff:          time.Millisecond,
		BreakerEnabled:      true,
		BreakerMinRequests:  3,
		BreakerFailureRatio: 0.5,
		BreakerOpenTimeout:  time.Minute,
	})

	for i := 0; i < 3; i++ {
		_ = ex.Execute(context.Background(), "flaky", func(context.Context) error {
			return errTransient
		}, nil)
	}

	err := ex.Execute(context.Background(), "flaky", func(context.Context) error {
		t.Fatal("operation must not run while the breaker is open")
		return nil
	}, nil)
	if !IsCircuitOpen(err) {
		t.Fatalf("Execute() error = %v, want open circuit", err)
	}
}

func TestBreakersAreIsolatedPerOperation(t *testing.T) {
	ex := NewExecutor(Config{
		MaxAttempts:         1,
		BreakerEnabled:      true,
		BreakerMinRequests:  2,
		BreakerFailureRatio: 0.5,
		BreakerOpenTimeout:  time.Minute,
	})

	for i := 0; i < 2; i++ {
		_ = ex.Execute(context.Background(), "broken", func(context.Context) error {
			return errTransient
		}, nil)
	}

	if err := ex.Execute(context.Background(), "healthy", func(context.Context) error {
		return nil
	}, nil); err != nil {
		t.Fatalf("healthy operation failed: %v", err)
	}
}
