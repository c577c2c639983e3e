package ratelimit

import (
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestWindow() (*Window, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	return New(15, WithClock(clock.Now)), clock
}

func TestWindowSlidingLoad(t *testing.T) {
	w, clock := newTestWindow()

	// Three admissions spread over 30 seconds.
	w.Admit()
	clock.Advance(10 * time.Second)
	w.Admit()
	clock.Advance(20 * time.Second)
	w.Admit()

	if got := w.CurrentLoad(); got != 3 {
		t.Fatalf("CurrentLoad() = %d, want 3", got)
	}

	// 31 seconds later the first admission (age 61s) falls out of the window.
	clock.Advance(31 * time.Second)
	if got := w.CurrentLoad(); got != 2 {
		t.Fatalf("CurrentLoad() after first expiry = %d, want 2", got)
	}

	// Far in the future the window is empty.
	clock.Advance(2 * time.Minute)
	if got := w.CurrentLoad(); got != 0 {
		t.Fatalf("CurrentLoad() after full expiry = %d, want 0", got)
	}
}

func TestWindowExactBoundary(t *testing.T) {
	w, clock := newTestWindow()

	w.Admit()
	clock.Advance(60*time.Second - time.Millisecond)
	if got := w.CurrentLoad(); got != 1 {
		t.Fatalf("admission aged just under 60s should count, CurrentLoad() = %d", got)
	}
	clock.Advance(time.Millisecond)
	if got := w.CurrentLoad(); got != 0 {
		t.Fatalf("admission aged exactly 60s should be pruned, CurrentLoad() = %d", got)
	}
}

func TestWindowTotalCountSurvivesPruning(t *testing.T) {
	w, clock := newTestWindow()

	for i := 0; i < 5; i++ {
		w.Admit()
		clock.Advance(30 * time.Second)
	}

	if got := w.TotalCount(); got != 5 {
		t.Fatalf("TotalCount() = %d, want 5", got)
	}
	if got := w.CurrentLoad(); got != 2 {
		t.Fatalf("CurrentLoad() = %d, want 2 (only the last two are inside the window)", got)
	}

	// TotalCount is monotone: further reads after pruning do not reset it.
	clock.Advance(10 * time.Minute)
	if got := w.CurrentLoad(); got != 0 {
		t.Fatalf("CurrentLoad() = %d, want 0", got)
	}
	if got := w.TotalCount(); got != 5 {
		t.Fatalf("TotalCount() after pruning = %d, want 5", got)
	}
}

func TestWindowConcurrentAdmit(t *testing.T) {
	w := New(15)

	const goroutines = 8
	const perGoroutine = 50

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				w.Admit()
				_ = w.CurrentLoad()
			}
		}()
	}
	wg.Wait()

	if got := w.TotalCount(); got != goroutines*perGoroutine {
		t.Fatalf("TotalCount() = %d, want %d", got, goroutines*perGoroutine)
	}
	if got := w.CurrentLoad(); got != goroutines*perGoroutine {
		t.Fatalf("CurrentLoad() = %d, want %d", got, goroutines*perGoroutine)
	}
}

func TestWindowDefaultLimit(t *testing.T) {
	w := New(0)
	if w.Limit() <= 0 {
		t.Fatalf("Limit() = %d, want positive default", w.Limit())
	}
}
