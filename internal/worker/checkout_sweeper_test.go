package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/goleak"
)

type mockSweeper struct {
	mock.Mock
}

func (m *mockSweeper) SweepStale(ctx context.Context, ttl time.Duration) (int64, error) {
	args := m.Called(ctx, ttl)
	return args.Get(0).(int64), args.Error(1)
}

func TestNewCheckoutSweeper(t *testing.T) {
	w := NewCheckoutSweeper(new(mockSweeper), time.Minute, 30*time.Minute)
	assert.Equal(t, time.Minute, w.interval)
	assert.Equal(t, 30*time.Minute, w.ttl)
	assert.NotNil(t, w.stopCh)
	assert.NotNil(t, w.doneCh)
}

func TestNewCheckoutSweeper_NonPositiveInterval(t *testing.T) {
	for _, d := range []time.Duration{0, -time.Second} {
		w := NewCheckoutSweeper(new(mockSweeper), d, time.Minute)
		assert.Equal(t, DefaultSweepInterval, w.interval)
	}
}

func TestCheckoutSweeper_Sweep(t *testing.T) {
	t.Run("deletes stale orders", func(t *testing.T) {
		m := new(mockSweeper)
		m.On("SweepStale", mock.Anything, 30*time.Minute).Return(int64(3), nil).Once()
		NewCheckoutSweeper(m, time.Minute, 30*time.Minute).sweep(context.Background())
		m.AssertExpectations(t)
	})

	t.Run("error is logged, not fatal", func(t *testing.T) {
		m := new(mockSweeper)
		m.On("SweepStale", mock.Anything, 30*time.Minute).Return(int64(0), errors.New("db gone")).Once()
		NewCheckoutSweeper(m, time.Minute, 30*time.Minute).sweep(context.Background())
		m.AssertExpectations(t)
	})
}

func TestCheckoutSweeper_StartTicksUntilStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := new(mockSweeper)
	swept := make(chan struct{}, 8)
	m.On("SweepStale", mock.Anything, time.Hour).Return(int64(0), nil).
		Run(func(mock.Arguments) {
			select {
			case swept <- struct{}{}:
			default:
			}
		})

	w := NewCheckoutSweeper(m, 10*time.Millisecond, time.Hour)
	go w.Start(context.Background())

	select {
	case <-swept:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper never ran")
	}
	w.Stop()
}

func TestCheckoutSweeper_StopsOnContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	w := NewCheckoutSweeper(new(mockSweeper), time.Hour, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop")
	}
}
