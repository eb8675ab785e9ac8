// Package camera drives the preview viewpoint: preset views with a smooth
// approach, and debounced persistence of the pose the user ends up with.
package camera

import (
	"fmt"
	"strings"

	"github.com/philipparndt/gopipe/pkg/geometry"
)

// Pose is a camera position and the point it looks at
type Pose struct {
	Position geometry.Vector3 `json:"position"`
	Target   geometry.Vector3 `json:"target"`
}

// Key is the coarse identity of the pose used to skip redundant saves.
// Only the position is compared, rounded to two decimals.
func (p Pose) Key() string {
	return fmt.Sprintf("%.2f,%.2f,%.2f", p.Position.X, p.Position.Y, p.Position.Z)
}

// Distance is the distance between position and target
func (p Pose) Distance() float64 {
	return p.Position.Distance(p.Target)
}

// IsFinite reports whether both vectors are finite
func (p Pose) IsFinite() bool {
	return p.Position.IsFinite() && p.Target.IsFinite()
}

// ViewMode selects what drives the camera
type ViewMode string

const (
	Overview ViewMode = "overview"
	ViewEndA ViewMode = "viewEndA"
	ViewEndB ViewMode = "viewEndB"
	// Free leaves the camera to the user
	Free ViewMode = "free"
)

// ParseViewMode accepts the mode names case-insensitively, plus the
// short forms "a", "b" and "iso".
func ParseViewMode(s string) (ViewMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "overview", "iso", "default":
		return Overview, nil
	case "viewenda", "enda", "a", "inlet":
		return ViewEndA, nil
	case "viewendb", "endb", "b", "outlet":
		return ViewEndB, nil
	case "free":
		return Free, nil
	default:
		return "", fmt.Errorf("unknown view mode %q", s)
	}
}

// Label is the button caption for the mode
func (m ViewMode) Label() string {
	switch m {
	case Overview:
		return "Default View"
	case ViewEndA:
		return "View End A"
	case ViewEndB:
		return "View End B"
	default:
		return "Free"
	}
}
