package camera

import (
	"time"

	"github.com/philipparndt/gopipe/internal/debounce"
)

// Session is the rig and tracker pair owned by one preview
type Session struct {
	Rig     *Rig
	Tracker *Tracker
}

// NewSession creates the pair. The returned pose is the saved pose to
// apply immediately, when ok is true.
func NewSession(saved *Pose, scheduler debounce.Scheduler, delay time.Duration, onSave func(Pose), opts ...TrackerOption) (*Session, Pose, bool) {
	tracker := NewTracker(scheduler, delay, onSave, opts...)
	pose, ok := tracker.Mount(saved)
	return &Session{Rig: NewRig(ok), Tracker: tracker}, pose, ok
}

// Frame runs one render tick: the rig moves the pose, the tracker
// observes the result.
func (s *Session) Frame(live Pose, lengthM float64) Pose {
	next := s.Rig.Tick(live, lengthM)
	s.Tracker.Tick(next)
	return next
}

// Close cancels outstanding saves
func (s *Session) Close() {
	s.Tracker.Dispose()
}
