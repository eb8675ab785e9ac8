package camera

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gopipe/pkg/geometry"
)

func TestInitialMode(t *testing.T) {
	assert.Equal(t, Overview, NewRig(false).Mode())
	assert.Equal(t, Free, NewRig(true).Mode())
}

func TestPresets(t *testing.T) {
	p := PresetsFor(6)
	assert.InDelta(t, 4.8, p.Overview.Position.Z, 1e-12)
	assert.InDelta(t, 1.92, p.Overview.Position.Y, 1e-12)
	assert.Equal(t, geometry.Vector3{}, p.Overview.Target)

	assert.InDelta(t, -4.8, p.EndA.Position.X, 1e-12)
	assert.InDelta(t, -3.0, p.EndA.Target.X, 1e-12)
	assert.InDelta(t, 4.8, p.EndB.Position.X, 1e-12)
	assert.InDelta(t, 3.0, p.EndB.Target.X, 1e-12)

	short := PresetsFor(1)
	assert.InDelta(t, 2.5, short.Overview.Position.Z, 1e-12, "overview distance has a floor")
	assert.InDelta(t, 1.0, short.Overview.Position.Y, 1e-12)

	assert.Equal(t, PresetsFor(1), PresetsFor(math.NaN()))
	assert.Equal(t, PresetsFor(1), PresetsFor(-3))

	_, ok := p.For(Free)
	assert.False(t, ok)
}

func TestMaxDistanceFor(t *testing.T) {
	assert.Equal(t, MaxDistance, MaxDistanceFor(6))
	assert.Equal(t, MaxDistance, MaxDistanceFor(18))

	long := MaxDistanceFor(40)
	assert.InDelta(t, PresetsFor(40).Overview.Distance(), long, 1e-12)
	assert.Greater(t, long, MaxDistance)
}

func TestTickApproachesExponentially(t *testing.T) {
	rig := NewRig(false)
	rig.SetMode(ViewEndB)
	target := PresetsFor(6).EndB

	live := Pose{Position: geometry.NewVector3(0, 5, 5)}
	prev := live.Position.Distance(target.Position)

	next := rig.Tick(live, 6)
	dist := next.Position.Distance(target.Position)
	assert.InDelta(t, prev*0.95, dist, 1e-9, "one tick covers 5%% of the remaining distance")

	for i := 0; i < 200; i++ {
		next = rig.Tick(next, 6)
		d := next.Position.Distance(target.Position)
		assert.Less(t, d, dist)
		dist = d
	}
	assert.Less(t, dist, 1e-3)
	assert.True(t, next.Target.ApproxEqual(target.Target, 1e-3))
	assert.Equal(t, ViewEndB, rig.Mode(), "arrival does not change the mode")
}

func TestFreeModeDoesNotMove(t *testing.T) {
	rig := NewRig(false)
	live := Pose{Position: geometry.NewVector3(1, 2, 3), Target: geometry.NewVector3(0, 1, 0)}

	rig.BeginInteraction()
	assert.Equal(t, Free, rig.Mode())
	for i := 0; i < 10; i++ {
		assert.Equal(t, live, rig.Tick(live, 6))
	}

	rig.SetMode(Overview)
	assert.NotEqual(t, live, rig.Tick(live, 6))

	rig.SetMode("bogus")
	assert.Equal(t, Overview, rig.Mode())
}

func TestParseViewMode(t *testing.T) {
	tests := map[string]ViewMode{
		"overview": Overview,
		"ISO":      Overview,
		"viewEndA": ViewEndA,
		"b":        ViewEndB,
		"free":     Free,
	}
	for input, want := range tests {
		got, err := ParseViewMode(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseViewMode("top")
	assert.Error(t, err)
	assert.Equal(t, "View End A", ViewEndA.Label())
}

func TestPoseKey(t *testing.T) {
	p := Pose{Position: geometry.NewVector3(1.234, -0.001, 2.005)}
	assert.Equal(t, "1.23,-0.00,2.00", p.Key())

	moved := p
	moved.Position.X += 0.001
	moved.Target = geometry.NewVector3(9, 9, 9)
	assert.Equal(t, p.Key(), moved.Key(), "sub-centimetre moves and target changes share a key")
}
