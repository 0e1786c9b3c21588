package laserflow

import (
	"slices"
	"sync"
	"time"
)

// FrameFunc is a frame callback. now is the host's frame timestamp,
// measured from an arbitrary but fixed origin.
type FrameFunc func(now time.Duration)

// FrameHandle identifies a scheduled frame callback. The zero handle
// never refers to a pending callback.
type FrameHandle uint64

// Scheduler requests callbacks in step with the host's display refresh.
// It is the only way a Controller learns about time.
type Scheduler interface {
	// Schedule arranges for fn to run once, on the next refresh.
	Schedule(fn FrameFunc) FrameHandle
	// Cancel withdraws a pending callback. Cancelling a handle that is
	// unknown or already ran is a no-op.
	Cancel(h FrameHandle)
}

// Dispatcher is implemented by schedulers that can run arbitrary work on
// the frame thread. Controller uses it to apply debounced resizes, which
// are triggered from a timer goroutine.
type Dispatcher interface {
	Dispatch(fn func())
}

// FrameQueue is a Scheduler driven by an explicit pulse: the host calls
// Fire once per display refresh from its render loop. It is the
// scheduler used by all hosts in this module and by tests.
//
// Callbacks run on the goroutine calling Fire. Schedule, Cancel and
// Dispatch may be called from any goroutine.
type FrameQueue struct {
	mu     sync.Mutex
	last   FrameHandle
	frames []queuedFrame
	tasks  []func()

	// Handles cancelled while Fire runs its detached batch.
	firing    bool
	cancelled map[FrameHandle]struct{}
}

type queuedFrame struct {
	handle FrameHandle
	fn     FrameFunc
}

var (
	_ Scheduler  = (*FrameQueue)(nil)
	_ Dispatcher = (*FrameQueue)(nil)
)

// NewFrameQueue returns an empty FrameQueue.
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

// Schedule implements Scheduler.
func (q *FrameQueue) Schedule(fn FrameFunc) FrameHandle {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.last++
	q.frames = append(q.frames, queuedFrame{handle: q.last, fn: fn})
	return q.last
}

// Cancel implements Scheduler. A callback cancelled before Fire reaches
// it is guaranteed not to run.
func (q *FrameQueue) Cancel(h FrameHandle) {
	if h == 0 {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.frames = slices.DeleteFunc(q.frames, func(f queuedFrame) bool {
		return f.handle == h
	})
	if q.firing {
		if q.cancelled == nil {
			q.cancelled = make(map[FrameHandle]struct{})
		}
		q.cancelled[h] = struct{}{}
	}
}

// Dispatch implements Dispatcher. fn runs at the start of the next Fire.
func (q *FrameQueue) Dispatch(fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, fn)
}

// Pending returns the number of frame callbacks waiting for Fire.
func (q *FrameQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.frames)
}

// Fire runs dispatched tasks, then every frame callback that was pending
// when Fire was called, in scheduling order. Callbacks scheduled while
// Fire runs wait for the next call. It returns the number of frame
// callbacks run.
func (q *FrameQueue) Fire(now time.Duration) int {
	q.mu.Lock()
	tasks := q.tasks
	q.tasks = nil
	q.mu.Unlock()
	for _, task := range tasks {
		task()
	}

	q.mu.Lock()
	batch := q.frames
	q.frames = nil
	q.firing = true
	q.mu.Unlock()

	defer func() {
		q.mu.Lock()
		q.firing = false
		q.cancelled = nil
		q.mu.Unlock()
	}()

	ran := 0
	for _, f := range batch {
		if q.wasCancelled(f.handle) {
			continue
		}
		f.fn(now)
		ran++
	}
	return ran
}

func (q *FrameQueue) wasCancelled(h FrameHandle) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.cancelled[h]
	return ok
}
