package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStore = errors.New("store unavailable")

func failN(cb *CircuitBreaker, n int) {
	for i := 0; i < n; i++ {
		_ = cb.Execute(func() error { return errStore })
	}
}

func TestCircuitBreaker_StateTransitions(t *testing.T) {
	tests := []struct {
		name          string
		config        CircuitBreakerConfig
		setup         func(cb *CircuitBreaker)
		expectedState State
	}{
		{
			name:          "successful execution stays closed",
			config:        CircuitBreakerConfig{MaxFailures: 3, Timeout: 5 * time.Second},
			setup:         func(cb *CircuitBreaker) { _ = cb.Execute(func() error { return nil }) },
			expectedState: StateClosed,
		},
		{
			name:          "transition to open after max failures",
			config:        CircuitBreakerConfig{MaxFailures: 3, Timeout: 5 * time.Second},
			setup:         func(cb *CircuitBreaker) { failN(cb, 3) },
			expectedState: StateOpen,
		},
		{
			name:   "success resets failure count",
			config: CircuitBreakerConfig{MaxFailures: 3, Timeout: 5 * time.Second},
			setup: func(cb *CircuitBreaker) {
				failN(cb, 2)
				_ = cb.Execute(func() error { return nil })
				failN(cb, 2)
			},
			expectedState: StateClosed,
		},
		{
			name:   "transition to half-open after timeout",
			config: CircuitBreakerConfig{MaxFailures: 3, Timeout: 50 * time.Millisecond},
			setup: func(cb *CircuitBreaker) {
				failN(cb, 3)
				time.Sleep(100 * time.Millisecond)
				_ = cb.Execute(func() error { return nil })
			},
			expectedState: StateHalfOpen,
		},
		{
			name:   "transition from half-open to closed on success",
			config: CircuitBreakerConfig{MaxFailures: 3, Timeout: 50 * time.Millisecond, HalfOpenMax: 2},
			setup: func(cb *CircuitBreaker) {
				failN(cb, 3)
				time.Sleep(100 * time.Millisecond)
				for i := 0; i < 2; i++ {
					_ = cb.Execute(func() error { return nil })
				}
			},
			expectedState: StateClosed,
		},
		{
			name:   "reset returns to closed",
			config: CircuitBreakerConfig{MaxFailures: 3, Timeout: time.Hour},
			setup: func(cb *CircuitBreaker) {
				failN(cb, 3)
				cb.Reset()
			},
			expectedState: StateClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb := NewCircuitBreaker(tt.config)

			tt.setup(cb)

			assert.Equal(t, tt.expectedState, cb.State())
		})
	}
}

func TestCircuitBreaker_OpenState_RejectsRequest(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{MaxFailures: 3, Timeout: time.Hour})
	failN(cb, 3)

	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestCircuitBreaker_IsFailureFilter(t *testing.T) {
	errNotFound := errors.New("not found")
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		MaxFailures: 1,
		Timeout:     time.Hour,
		IsFailure:   func(err error) bool { return !errors.Is(err, errNotFound) },
	})

	err := cb.Execute(func() error { return errNotFound })

	assert.ErrorIs(t, err, errNotFound)
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_ExecuteContext_Timeout(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		MaxFailures: 1,
		Timeout:     time.Hour,
		CallTimeout: 10 * time.Millisecond,
	})

	err := cb.ExecuteContext(context.Background(), func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCircuitTimeout)
	assert.Equal(t, StateOpen, cb.State())
}

func TestCircuitBreaker_ExecuteContext_CallerCancel(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{MaxFailures: 1, Timeout: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := cb.ExecuteContext(ctx, func(ctx context.Context) error {
		return ctx.Err()
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_OnStateChange(t *testing.T) {
	changes := make(chan State, 1)
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		Name:        "store",
		MaxFailures: 1,
		Timeout:     time.Hour,
		OnStateChange: func(name string, from, to State) {
			assert.Equal(t, "store", name)
			changes <- to
		},
	})

	failN(cb, 1)

	select {
	case to := <-changes:
		assert.Equal(t, StateOpen, to)
	case <-time.After(time.Second):
		t.Fatal("state change callback not invoked")
	}
}
