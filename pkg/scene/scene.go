// Package scene assembles the display scene for a straight pipe: the
// pipe body, end treatments, blank flanges, dimension lines and labels.
//
// Scene coordinates are metres. The pipe axis is X, centred on the
// origin; end A sits at -X and end B at +X. Y is up.
package scene

import (
	"image/color"

	"github.com/philipparndt/gopipe/pkg/annotation"
	"github.com/philipparndt/gopipe/pkg/geometry"
	"github.com/philipparndt/gopipe/pkg/pipe"
)

// Kind is the shape of a primitive
type Kind int

const (
	// HollowCylinder is a tube with an outer and an inner surface
	HollowCylinder Kind = iota
	// Ring is a flat or thin annulus; Length may be zero
	Ring
	// FlangeDisc is an annular disc with bolt holes
	FlangeDisc
	// BlankDisc is a solid disc with bolt holes and no bore
	BlankDisc
	// Torus is a weld bead around the pipe
	Torus
)

func (k Kind) String() string {
	switch k {
	case HollowCylinder:
		return "hollow-cylinder"
	case Ring:
		return "ring"
	case FlangeDisc:
		return "flange"
	case BlankDisc:
		return "blank"
	case Torus:
		return "torus"
	default:
		return "unknown"
	}
}

// Primitive is one solid of the scene. Every primitive is rotationally
// symmetric about the X axis.
type Primitive struct {
	Kind Kind
	// Role names the part, e.g. "pipe", "flange-a", "closure-b"
	Role string
	// End is empty for the pipe body
	End     pipe.End
	CenterX float64
	// Length is the extent along X
	Length      float64
	OuterRadius float64
	// InnerRadius is zero for blank discs; for a torus it is unused
	InnerRadius float64
	// TubeRadius is the cross-section radius of a torus
	TubeRadius       float64
	BoltHoles        int
	BoltCircleRadius float64
	BoltHoleRadius   float64
	Color            color.NRGBA
	Metalness        float64
	Roughness        float64
}

// MinX is the axial start of the primitive
func (p Primitive) MinX() float64 {
	if p.Kind == Torus {
		return p.CenterX - p.TubeRadius
	}
	return p.CenterX - p.Length/2
}

// MaxX is the axial end of the primitive
func (p Primitive) MaxX() float64 {
	if p.Kind == Torus {
		return p.CenterX + p.TubeRadius
	}
	return p.CenterX + p.Length/2
}

// Bounds returns the axis-aligned box enclosing the primitive
func (p Primitive) Bounds() geometry.BoundingBox {
	r := p.OuterRadius
	if p.Kind == Torus {
		r += p.TubeRadius
	}
	box := geometry.NewBoundingBox()
	box.Extend(geometry.NewVector3(p.MinX(), -r, -r))
	box.Extend(geometry.NewVector3(p.MaxX(), r, r))
	return box
}

// DimensionKind classifies an annotation line
type DimensionKind int

const (
	OverallLength DimensionKind = iota
	Projector
	ClosureLength
	LooseGap
	RotatingGap
)

// Dimension is a measured line drawn in the scene
type Dimension struct {
	Kind  DimensionKind
	End   pipe.End
	Start geometry.Vector3
	Stop  geometry.Vector3
	Text  string
	// LabelAt is where Text is anchored; ignored when Text is empty
	LabelAt geometry.Vector3
	Color   color.NRGBA
	Dashed  bool
	// Arrows draws arrow heads at both ends
	Arrows bool
	// Ticks draws short perpendicular marks at both ends
	Ticks bool
}

// Length returns the measured distance
func (d Dimension) Length() float64 {
	return d.Start.Distance(d.Stop)
}

// Label is free text anchored in the scene
type Label struct {
	Position geometry.Vector3
	Text     string
	Color    color.NRGBA
}

// Scene is the assembled output. It holds no references to the inputs.
type Scene struct {
	Primitives []Primitive
	Dimensions []Dimension
	Labels     []Label
	Summary    annotation.Summary
	// LengthM is the pipe body length after normalisation
	LengthM float64
	// Radius is the pipe outer radius in metres
	Radius float64
	Bounds geometry.BoundingBox
}

// Find returns the first primitive with the role
func (s Scene) Find(role string) (Primitive, bool) {
	for _, p := range s.Primitives {
		if p.Role == role {
			return p, true
		}
	}
	return Primitive{}, false
}

// Colours used for non-material parts
var (
	BoreColor          = color.NRGBA{0x1a, 0x1a, 0x1a, 0xff}
	FlangeColor        = color.NRGBA{0x66, 0x66, 0x66, 0xff}
	WeldColor          = color.NRGBA{0x33, 0x33, 0x33, 0xff}
	RetainingRingColor = color.NRGBA{0x60, 0x60, 0x60, 0xff}
	BlankColor         = color.NRGBA{0xcc, 0x33, 0x00, 0xff}
	DimensionColor     = color.NRGBA{0x00, 0x00, 0x00, 0xff}
	ProjectorColor     = color.NRGBA{0x99, 0x99, 0x99, 0xff}
	LooseColor         = color.NRGBA{0x25, 0x63, 0xeb, 0xff}
	GapColor           = color.NRGBA{0x93, 0x33, 0xea, 0xff}
	RotatingColor      = color.NRGBA{0xea, 0x58, 0x0c, 0xff}
)
