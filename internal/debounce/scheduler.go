package debounce

import (
	"sort"
	"sync"
	"time"
)

// Timer is a cancellable scheduled callback
type Timer interface {
	// Stop cancels the callback and reports whether it was still pending
	Stop() bool
}

// Scheduler runs a callback once after a delay
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// TimerScheduler schedules on the runtime timer. Callbacks run on their
// own goroutine.
type TimerScheduler struct{}

var _ Scheduler = TimerScheduler{}

// AfterFunc wraps time.AfterFunc
func (TimerScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// FrameScheduler keeps deadlines in a list and runs the due callbacks
// when Advance is called, normally once per rendered frame. Callbacks run
// on the goroutine calling Advance.
type FrameScheduler struct {
	mu      sync.Mutex
	now     time.Time
	seq     uint64
	pending []*frameTimer
}

var _ Scheduler = (*FrameScheduler)(nil)

type frameTimer struct {
	owner    *FrameScheduler
	deadline time.Time
	seq      uint64
	fn       func()
}

// NewFrameScheduler creates a scheduler whose clock starts at start
func NewFrameScheduler(start time.Time) *FrameScheduler {
	return &FrameScheduler{now: start}
}

// Now returns the time of the last Advance
func (s *FrameScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending returns the number of scheduled callbacks
func (s *FrameScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// AfterFunc schedules f at the current frame time plus d
func (s *FrameScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	t := &frameTimer{owner: s, deadline: s.now.Add(d), seq: s.seq, fn: f}
	s.pending = append(s.pending, t)
	return t
}

// Advance moves the clock to now and runs every callback that is due, in
// deadline order. Callbacks scheduled by a callback run in the same call
// if they are already due. It returns the number of callbacks run.
func (s *FrameScheduler) Advance(now time.Time) int {
	s.mu.Lock()
	if now.After(s.now) {
		s.now = now
	}
	s.mu.Unlock()

	fired := 0
	for {
		t := s.popDue()
		if t == nil {
			return fired
		}
		t.fn()
		fired++
	}
}

// Step advances the clock by d
func (s *FrameScheduler) Step(d time.Duration) int {
	return s.Advance(s.Now().Add(d))
}

func (s *FrameScheduler) popDue() *frameTimer {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) == 0 {
		return nil
	}
	sort.Slice(s.pending, func(i, j int) bool {
		a, b := s.pending[i], s.pending[j]
		if !a.deadline.Equal(b.deadline) {
			return a.deadline.Before(b.deadline)
		}
		return a.seq < b.seq
	})

	first := s.pending[0]
	if first.deadline.After(s.now) {
		return nil
	}
	s.pending = s.pending[1:]
	return first
}

func (t *frameTimer) Stop() bool {
	s := t.owner
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.pending {
		if p == t {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return true
		}
	}
	return false
}
