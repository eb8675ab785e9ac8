package mesh

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gopipe/pkg/geometry"
	"github.com/philipparndt/gopipe/pkg/pipe"
	"github.com/philipparndt/gopipe/pkg/scene"
	"github.com/philipparndt/gopipe/pkg/units"
)

func testScene(cfg pipe.EndConfiguration) scene.Scene {
	return scene.Assemble(pipe.Parameters{
		Length:           units.Meters(2),
		OuterDiameterMm:  114.3,
		WallThicknessMm:  4.5,
		EndConfiguration: cfg,
		BlankFlanges:     []pipe.End{pipe.EndB},
	}, nil)
}

func TestHollowCylinderCounts(t *testing.T) {
	opts := Options{Segments: 16, HoleSegments: 6, TubeSegments: 6}
	p := scene.Primitive{Kind: scene.HollowCylinder, Length: 1, OuterRadius: 0.1, InnerRadius: 0.09}

	faces := Primitive(p, opts)
	assert.Len(t, faces, 2*16*2)
}

func TestNormalsPointOutward(t *testing.T) {
	opts := Options{Segments: 12, HoleSegments: 6, TubeSegments: 6}
	p := scene.Primitive{Kind: scene.HollowCylinder, Length: 1, OuterRadius: 0.1, InnerRadius: 0.09, Color: scene.FlangeColor}

	for _, f := range Primitive(p, opts) {
		c := f.Center()
		radial := geometry.NewVector3(0, c.Y, c.Z)
		if f.Color == scene.BoreColor {
			assert.Less(t, f.Normal.Dot(radial), 0.0, "bore faces point inward")
		} else {
			assert.Greater(t, f.Normal.Dot(radial), 0.0, "outer faces point outward")
		}
	}
}

func TestFlatCapIsDoubleSided(t *testing.T) {
	opts := Options{Segments: 8}
	p := scene.Primitive{Kind: scene.Ring, CenterX: 1, OuterRadius: 0.1, InnerRadius: 0.05}

	var forward, backward int
	for _, f := range Primitive(p, opts) {
		if f.Normal.X > 0 {
			forward++
		} else {
			backward++
		}
	}
	assert.Equal(t, 16, forward)
	assert.Equal(t, 16, backward)
}

func TestTorusNormals(t *testing.T) {
	opts := Options{Segments: 16, TubeSegments: 8}
	p := scene.Primitive{Kind: scene.Torus, CenterX: 0.5, OuterRadius: 0.1, TubeRadius: 0.01}

	faces := Primitive(p, opts)
	assert.Len(t, faces, 16*8*2)
	for _, f := range faces {
		assert.InDelta(t, 0.5, f.Center().X, 0.011)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	for _, cfg := range pipe.AllEndConfigurations {
		s := testScene(cfg)
		a := Build(s, DefaultOptions())
		b := Build(s, DefaultOptions())
		require.NotEmpty(t, a.Faces, cfg)
		assert.True(t, reflect.DeepEqual(a, b), "%s: mesh is not deterministic", cfg)
	}
}

func TestBuildBoundsMatchScene(t *testing.T) {
	s := testScene(pipe.FlangedBothEnds)
	m := Build(s, DefaultOptions())

	assert.LessOrEqual(t, m.Bounds.Max.X, s.Bounds.Max.X+1e-9)
	assert.GreaterOrEqual(t, m.Bounds.Min.X, s.Bounds.Min.X-1e-9)
}

func TestDegenerateOptionsAreRaised(t *testing.T) {
	faces := Primitive(scene.Primitive{Kind: scene.BlankDisc, Length: 0.01, OuterRadius: 0.1}, Options{})
	assert.NotEmpty(t, faces)
}

func TestShade(t *testing.T) {
	light := DefaultLight()
	col := scene.FlangeColor

	facing := light.ShadeColor(col, light.Direction.Mul(-1))
	assert.Equal(t, col, facing)

	away := light.ShadeColor(col, light.Direction)
	assert.Equal(t, uint8(float64(col.R)*0.3), away.R)
	assert.Equal(t, col.A, away.A)
}
