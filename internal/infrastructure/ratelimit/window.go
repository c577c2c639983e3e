// Package ratelimit implements the advisory sliding-window request tracker.
package ratelimit

import (
	"sync"
	"time"

	"github.com/DingxDon/Task-Automate/internal/domain"
	"github.com/DingxDon/Task-Automate/internal/ports"
)

// Window tracks request timestamps over a trailing interval plus a lifetime
// counter. It is advisory: Admit always records, it never refuses. At the
// request volumes involved (tens per minute) a lazily pruned slice is exact
// and cheap enough; there is no background sweep.
type Window struct {
	mu     sync.Mutex
	stamps []time.Time
	total  uint64

	span  time.Duration
	limit int
	now   func() time.Time
}

// Option customizes a Window.
type Option func(*Window)

// WithClock injects a time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(w *Window) { w.now = now }
}

// WithSpan overrides the trailing window duration.
func WithSpan(span time.Duration) Option {
	return func(w *Window) { w.span = span }
}

// New builds a Window with the given advisory per-window budget.
func New(limit int, opts ...Option) *Window {
	w := &Window{
		span:  domain.RateWindowDuration,
		limit: limit,
		now:   time.Now,
	}
	if w.limit <= 0 {
		w.limit = domain.DefaultRequestsPerMinute
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Admit records a request at the current instant and bumps the lifetime counter.
func (w *Window) Admit() {
	now := w.now()
	w.mu.Lock()
	defer w.mu.Unlock()
	w.prune(now)
	w.stamps = append(w.stamps, now)
	w.total++
}

// CurrentLoad returns the number of admissions within the trailing window.
func (w *Window) CurrentLoad() int {
	now := w.now()
	w.mu.Lock()
	defer w.mu.Unlock()
	w.prune(now)
	return len(w.stamps)
}

// TotalCount returns the lifetime admission count. Never reset by pruning.
func (w *Window) TotalCount() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.total
}

// Limit returns the advisory per-window budget for display.
func (w *Window) Limit() int {
	return w.limit
}

// prune discards timestamps older than the window. Caller holds the mutex.
func (w *Window) prune(now time.Time) {
	cutoff := now.Add(-w.span)
	keep := 0
	for keep < len(w.stamps) && !w.stamps[keep].After(cutoff) {
		keep++
	}
	if keep > 0 {
		w.stamps = append(w.stamps[:0], w.stamps[keep:]...)
	}
}

var _ ports.RateLimiter = (*Window)(nil)
