package translation

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// budget allows at most limit provider calls in any window long interval.
// The token bucket paces refills; the call log enforces the window.
type budget struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	calls  []time.Time // oldest first
	bucket *rate.Limiter
}

func newBudget(limit int, window time.Duration) *budget {
	return &budget{
		limit:  limit,
		window: window,
		calls:  make([]time.Time, 0, limit),
		bucket: rate.NewLimiter(rate.Every(window/time.Duration(limit)), limit),
	}
}

// allow spends one call at now if the window has room.
func (b *budget) allow(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	cutoff := now.Add(-b.window)
	expired := 0
	for expired < len(b.calls) && !b.calls[expired].After(cutoff) {
		expired++
	}
	b.calls = append(b.calls[:0], b.calls[expired:]...)

	if len(b.calls) >= b.limit || !b.bucket.AllowN(now, 1) {
		return false
	}
	b.calls = append(b.calls, now)
	return true
}
