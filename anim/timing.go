package anim

import (
	"sync"
	"time"
)

// now is swapped in tests.
var now = time.Now

// Throttle returns a wrapper that calls fn immediately on the first call
// and then ignores every call until interval has elapsed since the last
// accepted one. Ignored calls are dropped, not queued.
//
// The returned function is safe for concurrent use; fn runs on the
// calling goroutine.
func Throttle[T any](fn func(T), interval time.Duration) func(T) {
	var (
		mu       sync.Mutex
		accepted bool
		last     time.Time
	)
	return func(v T) {
		mu.Lock()
		t := now()
		if accepted && t.Sub(last) < interval {
			mu.Unlock()
			return
		}
		accepted = true
		last = t
		mu.Unlock()
		fn(v)
	}
}

// Debouncer delays a call until no newer call arrived for a full wait
// period. Only the last value passed to Call within any wait window is
// delivered. The callback runs on a timer goroutine.
type Debouncer[T any] struct {
	mu      sync.Mutex
	fn      func(T)
	wait    time.Duration
	timer   *time.Timer
	seq     uint64
	stopped bool
}

// Debounce creates a trailing-edge Debouncer for fn.
func Debounce[T any](fn func(T), wait time.Duration) *Debouncer[T] {
	return &Debouncer[T]{fn: fn, wait: wait}
}

// Call cancels any pending invocation and schedules fn(v) one wait
// period from now. Calls after Stop are ignored.
func (d *Debouncer[T]) Call(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.timer = time.AfterFunc(d.wait, func() {
		d.mu.Lock()
		// A timer that already fired can lose the race against Stop or a
		// newer Call; the sequence number tells it apart.
		if d.stopped || seq != d.seq {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		d.fn(v)
	})
}

// Pending reports whether an invocation is scheduled.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Cancel drops the pending invocation, if any. Later calls to Call work
// as usual.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Stop cancels the pending invocation, if any, and detaches the
// debouncer. It is safe to call Stop more than once.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
