// Package mesh tessellates scene primitives into coloured triangles that
// both the interactive viewer and the snapshot rasteriser draw.
package mesh

import (
	"image/color"
	"math"

	"github.com/philipparndt/gopipe/pkg/geometry"
	"github.com/philipparndt/gopipe/pkg/scene"
)

// Face is a triangle with its base colour
type Face struct {
	geometry.Triangle
	Color color.NRGBA
	// Role of the primitive the face belongs to
	Role string
}

// Mesh is the tessellated scene
type Mesh struct {
	Faces  []Face
	Bounds geometry.BoundingBox
}

// Options controls the tessellation density
type Options struct {
	// Segments around the pipe axis
	Segments int
	// HoleSegments around each bolt hole
	HoleSegments int
	// TubeSegments around the cross section of a weld bead
	TubeSegments int
}

// DefaultOptions is the density used by the viewers
func DefaultOptions() Options {
	return Options{Segments: 48, HoleSegments: 8, TubeSegments: 8}
}

func (o Options) sanitized() Options {
	if o.Segments < 3 {
		o.Segments = 3
	}
	if o.HoleSegments < 3 {
		o.HoleSegments = 3
	}
	if o.TubeSegments < 3 {
		o.TubeSegments = 3
	}
	return o
}

// holeProtrusion makes hole plugs stick out of the flange faces so they
// read as dark holes from either side.
const holeProtrusion = 1.05

// Build tessellates every primitive of the scene
func Build(s scene.Scene, opts Options) Mesh {
	opts = opts.sanitized()

	m := Mesh{Bounds: geometry.NewBoundingBox()}
	for _, p := range s.Primitives {
		m.Faces = append(m.Faces, Primitive(p, opts)...)
	}
	for _, f := range m.Faces {
		m.Bounds.Extend(f.V1)
		m.Bounds.Extend(f.V2)
		m.Bounds.Extend(f.V3)
	}
	return m
}

// Primitive tessellates a single primitive
func Primitive(p scene.Primitive, opts Options) []Face {
	opts = opts.sanitized()
	t := tessellator{role: p.Role, segments: opts.Segments}

	x0, x1 := p.MinX(), p.MaxX()
	switch p.Kind {
	case scene.HollowCylinder:
		t.tube(x0, x1, p.OuterRadius, true, p.Color)
		t.tube(x0, x1, p.InnerRadius, false, scene.BoreColor)

	case scene.Ring:
		if p.Length == 0 {
			t.annulus(x0, p.InnerRadius, p.OuterRadius, -1, p.Color)
			t.annulus(x0, p.InnerRadius, p.OuterRadius, 1, p.Color)
			break
		}
		t.annulus(x0, p.InnerRadius, p.OuterRadius, -1, p.Color)
		t.annulus(x1, p.InnerRadius, p.OuterRadius, 1, p.Color)
		t.tube(x0, x1, p.OuterRadius, true, p.Color)
		t.tube(x0, x1, p.InnerRadius, false, p.Color)

	case scene.FlangeDisc:
		t.annulus(x0, p.InnerRadius, p.OuterRadius, -1, p.Color)
		t.annulus(x1, p.InnerRadius, p.OuterRadius, 1, p.Color)
		t.tube(x0, x1, p.OuterRadius, true, p.Color)
		t.tube(x0, x1, p.InnerRadius, false, scene.BoreColor)
		t.boltHoles(p, opts.HoleSegments)

	case scene.BlankDisc:
		t.disc(x0, p.OuterRadius, -1, p.Color)
		t.disc(x1, p.OuterRadius, 1, p.Color)
		t.tube(x0, x1, p.OuterRadius, true, p.Color)
		t.boltHoles(p, opts.HoleSegments)

	case scene.Torus:
		t.torus(p.CenterX, p.OuterRadius, p.TubeRadius, opts.TubeSegments, p.Color)
	}
	return t.faces
}

type tessellator struct {
	role     string
	segments int
	faces    []Face
}

// ring returns the point at radius r and angle theta around the X axis
func ring(x, r, theta float64) geometry.Vector3 {
	s, c := math.Sincos(theta)
	return geometry.NewVector3(x, r*c, r*s)
}

// emit adds a triangle wound so its normal points along want
func (t *tessellator) emit(a, b, c geometry.Vector3, want geometry.Vector3, col color.NRGBA) {
	tri := geometry.NewTriangle(a, b, c)
	if tri.Area() == 0 {
		return
	}
	if tri.Normal.Dot(want) < 0 {
		tri = tri.Flip()
	}
	t.faces = append(t.faces, Face{Triangle: tri, Color: col, Role: t.role})
}

func (t *tessellator) quad(a, b, c, d geometry.Vector3, want geometry.Vector3, col color.NRGBA) {
	t.emit(a, b, c, want, col)
	t.emit(a, c, d, want, col)
}

func (t *tessellator) angle(i int) float64 {
	return 2 * math.Pi * float64(i) / float64(t.segments)
}

// tube emits the side surface of a cylinder between x0 and x1
func (t *tessellator) tube(x0, x1, r float64, outward bool, col color.NRGBA) {
	if r <= 0 || x1 <= x0 {
		return
	}
	for i := 0; i < t.segments; i++ {
		a0, a1 := t.angle(i), t.angle(i+1)
		mid := ring(0, 1, (a0+a1)/2)
		want := geometry.NewVector3(0, mid.Y, mid.Z)
		if !outward {
			want = want.Mul(-1)
		}
		t.quad(ring(x0, r, a0), ring(x1, r, a0), ring(x1, r, a1), ring(x0, r, a1), want, col)
	}
}

// annulus emits a flat ring at x facing dir along X
func (t *tessellator) annulus(x, inner, outer, dir float64, col color.NRGBA) {
	if outer <= inner {
		return
	}
	want := geometry.NewVector3(dir, 0, 0)
	for i := 0; i < t.segments; i++ {
		a0, a1 := t.angle(i), t.angle(i+1)
		t.quad(ring(x, inner, a0), ring(x, outer, a0), ring(x, outer, a1), ring(x, inner, a1), want, col)
	}
}

// disc emits a solid disc at x facing dir along X
func (t *tessellator) disc(x, r, dir float64, col color.NRGBA) {
	center := geometry.NewVector3(x, 0, 0)
	want := geometry.NewVector3(dir, 0, 0)
	for i := 0; i < t.segments; i++ {
		t.emit(center, ring(x, r, t.angle(i)), ring(x, r, t.angle(i+1)), want, col)
	}
}

// boltHoles draws each hole as a short dark plug through the disc
func (t *tessellator) boltHoles(p scene.Primitive, segments int) {
	if p.BoltHoles <= 0 || p.BoltHoleRadius <= 0 {
		return
	}
	half := p.Length * holeProtrusion / 2
	x0, x1 := p.CenterX-half, p.CenterX+half

	for h := 0; h < p.BoltHoles; h++ {
		center := ring(0, p.BoltCircleRadius, 2*math.Pi*float64(h)/float64(p.BoltHoles))
		hole := func(x, a float64) geometry.Vector3 {
			s, c := math.Sincos(a)
			return geometry.NewVector3(x, center.Y+p.BoltHoleRadius*c, center.Z+p.BoltHoleRadius*s)
		}
		for i := 0; i < segments; i++ {
			a0 := 2 * math.Pi * float64(i) / float64(segments)
			a1 := 2 * math.Pi * float64(i+1) / float64(segments)
			s, c := math.Sincos((a0 + a1) / 2)
			side := geometry.NewVector3(0, c, s)
			t.quad(hole(x0, a0), hole(x1, a0), hole(x1, a1), hole(x0, a1), side, scene.BoreColor)
			t.emit(geometry.NewVector3(x0, center.Y, center.Z), hole(x0, a0), hole(x0, a1), geometry.NewVector3(-1, 0, 0), scene.BoreColor)
			t.emit(geometry.NewVector3(x1, center.Y, center.Z), hole(x1, a0), hole(x1, a1), geometry.NewVector3(1, 0, 0), scene.BoreColor)
		}
	}
}

// torus emits a bead of tube radius r around the X axis at distance R
func (t *tessellator) torus(cx, R, r float64, tubeSegments int, col color.NRGBA) {
	if R <= 0 || r <= 0 {
		return
	}
	point := func(phi, psi float64) geometry.Vector3 {
		sp, cp := math.Sincos(phi)
		ss, cs := math.Sincos(psi)
		d := R + r*cs
		return geometry.NewVector3(cx+r*ss, d*cp, d*sp)
	}
	for i := 0; i < t.segments; i++ {
		p0, p1 := t.angle(i), t.angle(i+1)
		for j := 0; j < tubeSegments; j++ {
			q0 := 2 * math.Pi * float64(j) / float64(tubeSegments)
			q1 := 2 * math.Pi * float64(j+1) / float64(tubeSegments)
			a, b, c, d := point(p0, q0), point(p1, q0), point(p1, q1), point(p0, q1)

			centroid := a.Add(b).Add(c).Add(d).Mul(0.25)
			pm := (p0 + p1) / 2
			axis := ring(cx, R, pm)
			t.quad(a, b, c, d, centroid.Sub(axis), col)
		}
	}
}
