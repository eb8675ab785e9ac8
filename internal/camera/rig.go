package camera

import (
	"math"

	"github.com/philipparndt/gopipe/pkg/geometry"
)

// ApproachFactor is the share of the remaining distance covered per tick
const ApproachFactor = 0.05

// Orbit distance limits, in metres
const (
	MinDistance = 0.5
	MaxDistance = 20.0
)

const (
	overviewLengthFactor = 0.8
	overviewMinDistance  = 2.5
	overviewHeightFactor = 0.4
	endViewLengthFactor  = 0.3
)

// Presets holds the target pose of every automatic view
type Presets struct {
	Overview Pose
	EndA     Pose
	EndB     Pose
}

// PresetsFor computes the preset poses for a pipe of the given length in
// metres. Invalid lengths are treated as 1 m.
func PresetsFor(lengthM float64) Presets {
	if math.IsNaN(lengthM) || math.IsInf(lengthM, 0) || lengthM <= 0 {
		lengthM = 1
	}
	half := lengthM / 2

	distance := math.Max(overviewLengthFactor*lengthM, overviewMinDistance)
	height := overviewHeightFactor * distance
	offset := endViewLengthFactor * lengthM

	return Presets{
		Overview: Pose{
			Position: geometry.NewVector3(0, height, distance),
		},
		EndA: Pose{
			Position: geometry.NewVector3(-half-offset, 0, 0),
			Target:   geometry.NewVector3(-half, 0, 0),
		},
		EndB: Pose{
			Position: geometry.NewVector3(half+offset, 0, 0),
			Target:   geometry.NewVector3(half, 0, 0),
		},
	}
}

// MaxDistanceFor is the zoom-out limit for a pipe of the given length.
// It never cuts below the overview preset, so long pipes can still be
// seen whole.
func MaxDistanceFor(lengthM float64) float64 {
	return math.Max(MaxDistance, PresetsFor(lengthM).Overview.Distance())
}

// For returns the preset of an automatic mode; ok is false for Free
func (p Presets) For(mode ViewMode) (Pose, bool) {
	switch mode {
	case Overview:
		return p.Overview, true
	case ViewEndA:
		return p.EndA, true
	case ViewEndB:
		return p.EndB, true
	default:
		return Pose{}, false
	}
}

// Rig is the view mode state machine. It is driven from the render loop
// and is not safe for concurrent use.
type Rig struct {
	mode ViewMode
}

// NewRig starts in Free when a saved pose will be restored, otherwise in
// Overview.
func NewRig(hasSavedPose bool) *Rig {
	if hasSavedPose {
		return &Rig{mode: Free}
	}
	return &Rig{mode: Overview}
}

// Mode returns the active mode
func (r *Rig) Mode() ViewMode {
	return r.mode
}

// SetMode selects a mode, normally from a preset button
func (r *Rig) SetMode(mode ViewMode) {
	switch mode {
	case Overview, ViewEndA, ViewEndB, Free:
		r.mode = mode
	}
}

// BeginInteraction is called when the user starts dragging, panning or
// zooming. It always switches to Free.
func (r *Rig) BeginInteraction() {
	r.mode = Free
}

// Tick moves the live pose a fixed share of the way toward the active
// preset. In Free mode the pose is returned unchanged.
func (r *Rig) Tick(live Pose, lengthM float64) Pose {
	target, ok := PresetsFor(lengthM).For(r.mode)
	if !ok {
		return live
	}
	return Pose{
		Position: live.Position.Lerp(target.Position, ApproachFactor),
		Target:   live.Target.Lerp(target.Target, ApproachFactor),
	}
}
