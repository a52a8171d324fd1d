package ratelimit

import (
	"sync"
	"time"

	"storefront-checkout/internal/pkg/clock"
)

type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	// ResetAt is when the oldest request in the window expires.
	ResetAt time.Time
}

// RetryAfter is zero when the request was allowed.
func (d Decision) RetryAfter(now time.Time) time.Duration {
	if d.Allowed || !d.ResetAt.After(now) {
		return 0
	}
	return d.ResetAt.Sub(now)
}

// SlidingWindow keeps a log of request times per key. State is per process.
type SlidingWindow struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	clock  clock.Clock
	hits   map[string][]time.Time
}

func NewSlidingWindow(limit int, window time.Duration, clk clock.Clock) *SlidingWindow {
	return &SlidingWindow{
		limit:  limit,
		window: window,
		clock:  clk,
		hits:   make(map[string][]time.Time),
	}
}

// Allow records the request when it is within the limit; rejected requests do not extend the window.
func (l *SlidingWindow) Allow(key string) Decision {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	hits := l.prune(key, now)
	if len(hits) >= l.limit {
		return Decision{
			Allowed:   false,
			Limit:     l.limit,
			Remaining: 0,
			ResetAt:   hits[0].Add(l.window),
		}
	}

	hits = append(hits, now)
	l.hits[key] = hits
	return Decision{
		Allowed:   true,
		Limit:     l.limit,
		Remaining: l.limit - len(hits),
		ResetAt:   hits[0].Add(l.window),
	}
}

// Sweep drops keys with no requests inside the window.
func (l *SlidingWindow) Sweep() int {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key := range l.hits {
		if len(l.prune(key, now)) == 0 {
			delete(l.hits, key)
			removed++
		}
	}
	return removed
}

func (l *SlidingWindow) prune(key string, now time.Time) []time.Time {
	hits := l.hits[key]
	cutoff := now.Add(-l.window)
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	if i > 0 {
		hits = append(hits[:0], hits[i:]...)
		l.hits[key] = hits
	}
	return hits
}
