package camera

import (
	"log/slog"
	"sync"
	"time"

	"github.com/philipparndt/gopipe/internal/debounce"
)

// SaveDelay is how long the pose must stay put before it is persisted
const SaveDelay = 500 * time.Millisecond

// TrackerOption configures a Tracker
type TrackerOption func(*Tracker)

// WithTrackerLogger sets the logger for debug traces
func WithTrackerLogger(l *slog.Logger) TrackerOption {
	return func(t *Tracker) {
		t.logger = l
	}
}

// Tracker watches the live pose every tick and calls onSave once the pose
// has settled on a new position. It restores a saved pose at most once.
type Tracker struct {
	mu        sync.Mutex
	scheduler debounce.Scheduler
	delay     time.Duration
	onSave    func(Pose)
	logger    *slog.Logger

	restored     bool
	lastSavedKey string
	pendingKey   string
	pending      debounce.Timer
	generation   uint64
	disposed     bool
}

// NewTracker creates a tracker. A zero delay selects SaveDelay.
func NewTracker(scheduler debounce.Scheduler, delay time.Duration, onSave func(Pose), opts ...TrackerOption) *Tracker {
	if scheduler == nil {
		scheduler = debounce.TimerScheduler{}
	}
	if delay <= 0 {
		delay = SaveDelay
	}
	if onSave == nil {
		onSave = func(Pose) {}
	}
	t := &Tracker{
		scheduler: scheduler,
		delay:     delay,
		onSave:    onSave,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Mount returns the saved pose to apply directly to the camera. Only the
// first non-nil pose in the tracker's lifetime is returned; it becomes the
// last-saved baseline so it is not written back unchanged.
func (t *Tracker) Mount(saved *Pose) (Pose, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.disposed || t.restored || saved == nil || !saved.IsFinite() {
		return Pose{}, false
	}
	t.restored = true
	t.lastSavedKey = saved.Key()
	t.logger.Debug("restored camera pose", "key", t.lastSavedKey)
	return *saved, true
}

// Tick observes the live pose. A position whose key differs from both the
// last saved and the pending key replaces any pending save.
func (t *Tracker) Tick(live Pose) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.disposed {
		return
	}
	key := live.Key()
	if key == t.lastSavedKey || key == t.pendingKey {
		return
	}

	if t.pending != nil {
		t.pending.Stop()
	}
	t.generation++
	gen := t.generation
	t.pendingKey = key
	captured := live
	t.pending = t.scheduler.AfterFunc(t.delay, func() {
		t.fire(gen, key, captured)
	})
}

func (t *Tracker) fire(gen uint64, key string, pose Pose) {
	t.mu.Lock()
	if t.disposed || gen != t.generation {
		t.mu.Unlock()
		return
	}
	t.lastSavedKey = key
	t.pendingKey = ""
	t.pending = nil
	onSave := t.onSave
	t.mu.Unlock()

	t.logger.Debug("saving camera pose", "key", key)
	onSave(pose)
}

// Pending reports whether a save is scheduled
func (t *Tracker) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending != nil
}

// LastSavedKey returns the key of the last saved or restored pose
func (t *Tracker) LastSavedKey() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastSavedKey
}

// Dispose cancels the pending save. Later ticks do nothing.
func (t *Tracker) Dispose() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
	t.pendingKey = ""
	t.generation++
	t.disposed = true
}
