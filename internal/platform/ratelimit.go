package platform

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/donaldgifford/marketplace-gateway/internal/metrics"
)

// ErrDailyLimitReached is returned when the daily API call limit has been exhausted.
var ErrDailyLimitReached = errors.New("daily API limit reached")

const quotaWindow = 24 * time.Hour

// Quota is a point-in-time view of a RateLimiter.
type Quota struct {
	// PerSecond is 0 when the bucket is unlimited.
	PerSecond float64
	Burst     int
	// Available is the number of calls the per-second bucket would admit
	// right now without waiting.
	Available float64

	DailyLimit int64
	DailyUsed  int64
	// Remaining is -1 when the daily quota is disabled.
	Remaining int64
	// Rejected counts calls refused by the daily quota in the current window.
	Rejected int64
	ResetAt  time.Time
}

// Unlimited reports whether the daily quota is disabled.
func (q Quota) Unlimited() bool {
	return q.DailyLimit <= 0
}

// RateLimiter paces calls to the platform. A token bucket bounds the
// per-second rate, and a 24-hour window caps the number of calls admitted
// per day. The window starts when the limiter is built and restarts on the
// first call after it expires. A maxDaily of zero or less disables the cap.
type RateLimiter struct {
	bucket   *rate.Limiter
	maxDaily int64
	nowFunc  func() time.Time

	mu       sync.Mutex
	used     int64
	rejected int64
	resetAt  time.Time
}

// RateLimiterOption configures the RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithRateLimiterNowFunc overrides the clock used for the daily window.
func WithRateLimiterNowFunc(f func() time.Time) RateLimiterOption {
	return func(r *RateLimiter) {
		r.nowFunc = f
	}
}

// NewRateLimiter creates a rate limiter with the given per-second rate,
// burst size and daily limit.
func NewRateLimiter(
	perSecond float64,
	burst int,
	maxDaily int64,
	opts ...RateLimiterOption,
) *RateLimiter {
	r := &RateLimiter{
		bucket:   rate.NewLimiter(rate.Limit(perSecond), burst),
		maxDaily: maxDaily,
		nowFunc:  time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.resetAt = r.nowFunc().Add(quotaWindow)
	return r
}

// Wait claims one call from the daily quota and then blocks until the
// per-second bucket admits it. The claim is returned when the wait is
// canceled, so only calls that actually go out are counted.
func (r *RateLimiter) Wait(ctx context.Context) error {
	window, err := r.claim()
	if err != nil {
		return err
	}

	if err := r.bucket.Wait(ctx); err != nil {
		r.release(window)
		return fmt.Errorf("rate limiter wait: %w", err)
	}
	return nil
}

// Snapshot returns the limiter's current state.
func (r *RateLimiter) Snapshot() Quota {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rollWindowLocked()

	perSecond := float64(r.bucket.Limit())
	if math.IsInf(perSecond, 1) {
		perSecond = 0
	}

	q := Quota{
		PerSecond:  perSecond,
		Burst:      r.bucket.Burst(),
		Available:  max(r.bucket.Tokens(), 0),
		DailyLimit: max(r.maxDaily, 0),
		DailyUsed:  r.used,
		Remaining:  -1,
		Rejected:   r.rejected,
		ResetAt:    r.resetAt,
	}
	if r.maxDaily > 0 {
		q.Remaining = max(r.maxDaily-r.used, 0)
	}
	return q
}

// claim checks and increments the daily counter in one step, so concurrent
// callers can never push it past maxDaily. It returns the window the claim
// was made in.
func (r *RateLimiter) claim() (time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rollWindowLocked()

	if r.maxDaily > 0 && r.used >= r.maxDaily {
		r.rejected++
		metrics.PlatformDailyLimitHits.Inc()
		return time.Time{}, fmt.Errorf("%w (%d/%d)", ErrDailyLimitReached, r.used, r.maxDaily)
	}

	r.used++
	metrics.PlatformDailyUsage.Set(float64(r.used))
	return r.resetAt, nil
}

// release hands back a claim unless the window has rolled over since.
func (r *RateLimiter) release(window time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.resetAt.Equal(window) && r.used > 0 {
		r.used--
		metrics.PlatformDailyUsage.Set(float64(r.used))
	}
}

func (r *RateLimiter) rollWindowLocked() {
	now := r.nowFunc()
	if !now.Before(r.resetAt) {
		r.used = 0
		r.rejected = 0
		r.resetAt = now.Add(quotaWindow)
		metrics.PlatformDailyUsage.Set(0)
	}
}
