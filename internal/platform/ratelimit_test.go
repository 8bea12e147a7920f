package platform_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/marketplace-gateway/internal/platform"
)

func TestRateLimiter_Wait(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rate    float64
		burst   int
		daily   int64
		calls   int
		wantErr bool
	}{
		{
			name:  "allows calls within rate",
			rate:  100,
			burst: 10,
			daily: 5000,
			calls: 3,
		},
		{
			name:  "allows burst",
			rate:  100,
			burst: 5,
			daily: 5000,
			calls: 5,
		},
		{
			name:  "zero daily limit is unlimited",
			rate:  1000,
			burst: 20,
			daily: 0,
			calls: 20,
		},
		{
			name:    "rejects when daily limit reached",
			rate:    100,
			burst:   10,
			daily:   2,
			calls:   3,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rl := platform.NewRateLimiter(tt.rate, tt.burst, tt.daily)

			var lastErr error
			for range tt.calls {
				lastErr = rl.Wait(context.Background())
				if lastErr != nil {
					break
				}
			}

			if tt.wantErr {
				require.ErrorIs(t, lastErr, platform.ErrDailyLimitReached)
				return
			}
			require.NoError(t, lastErr)
		})
	}
}

func TestRateLimiter_Snapshot(t *testing.T) {
	t.Parallel()

	rl := platform.NewRateLimiter(100, 10, 3)
	q := rl.Snapshot()
	assert.InDelta(t, 100.0, q.PerSecond, 0.001)
	assert.Equal(t, 10, q.Burst)
	assert.InDelta(t, 10.0, q.Available, 0.5)
	assert.Equal(t, int64(3), q.DailyLimit)
	assert.Equal(t, int64(3), q.Remaining)
	assert.False(t, q.Unlimited())

	require.NoError(t, rl.Wait(context.Background()))
	q = rl.Snapshot()
	assert.Equal(t, int64(1), q.DailyUsed)
	assert.Equal(t, int64(2), q.Remaining)
	assert.Less(t, q.Available, 10.0)

	unlimited := platform.NewRateLimiter(100, 10, 0).Snapshot()
	assert.Equal(t, int64(-1), unlimited.Remaining)
	assert.True(t, unlimited.Unlimited())
}

func TestRateLimiter_CountsRejections(t *testing.T) {
	t.Parallel()

	rl := platform.NewRateLimiter(100, 10, 1)
	require.NoError(t, rl.Wait(context.Background()))
	require.ErrorIs(t, rl.Wait(context.Background()), platform.ErrDailyLimitReached)
	require.ErrorIs(t, rl.Wait(context.Background()), platform.ErrDailyLimitReached)

	q := rl.Snapshot()
	assert.Equal(t, int64(1), q.DailyUsed)
	assert.Equal(t, int64(2), q.Rejected)
	assert.Equal(t, int64(0), q.Remaining)
}

func TestRateLimiter_ConcurrentCallersNeverExceedDailyLimit(t *testing.T) {
	t.Parallel()

	const (
		limit   = 5
		callers = 32
	)
	rl := platform.NewRateLimiter(1000, callers, limit)

	var (
		wg       sync.WaitGroup
		admitted atomic.Int64
		rejected atomic.Int64
		start    = make(chan struct{})
	)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			err := rl.Wait(context.Background())
			switch {
			case err == nil:
				admitted.Add(1)
			case errors.Is(err, platform.ErrDailyLimitReached):
				rejected.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int64(limit), admitted.Load())
	assert.Equal(t, int64(callers-limit), rejected.Load())
	assert.Equal(t, int64(limit), rl.Snapshot().DailyUsed)
}

func TestRateLimiter_DailyReset(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	currentTime := now

	rl := platform.NewRateLimiter(
		100, 10, 2,
		platform.WithRateLimiterNowFunc(func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			return currentTime
		}),
	)

	require.NoError(t, rl.Wait(context.Background()))
	require.NoError(t, rl.Wait(context.Background()))
	require.ErrorIs(t, rl.Wait(context.Background()), platform.ErrDailyLimitReached)

	q := rl.Snapshot()
	assert.Equal(t, int64(2), q.DailyUsed)
	assert.Equal(t, int64(1), q.Rejected)
	assert.Equal(t, now.Add(24*time.Hour), q.ResetAt)

	// Advance past the 24-hour window.
	mu.Lock()
	currentTime = now.Add(25 * time.Hour)
	mu.Unlock()

	require.NoError(t, rl.Wait(context.Background()))
	q = rl.Snapshot()
	assert.Equal(t, int64(1), q.DailyUsed)
	assert.Zero(t, q.Rejected)
	assert.Equal(t, now.Add(49*time.Hour), q.ResetAt)
}

func TestRateLimiter_ContextCanceled(t *testing.T) {
	t.Parallel()

	// Very slow rate limiter: 1 per 10 seconds, burst 1.
	rl := platform.NewRateLimiter(0.1, 1, 5000)

	// First call should succeed (uses burst).
	require.NoError(t, rl.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := rl.Wait(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limiter wait")

	// The canceled call never went out, so it does not count.
	assert.Equal(t, int64(1), rl.Snapshot().DailyUsed)
}
