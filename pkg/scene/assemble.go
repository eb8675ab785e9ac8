package scene

import (
	"fmt"
	"math"
	"strconv"

	"github.com/philipparndt/gopipe/pkg/annotation"
	"github.com/philipparndt/gopipe/pkg/flange"
	"github.com/philipparndt/gopipe/pkg/geometry"
	"github.com/philipparndt/gopipe/pkg/pipe"
	"github.com/philipparndt/gopipe/pkg/units"
)

// Placement constants in metres unless noted
const (
	LooseGapM           = 0.100
	RotatingGapM        = 0.080
	BlankStandOffM      = 0.100
	DimensionOffsetM    = 0.3
	RetainingRingFactor = 1.15
	RotatingBoreFactor  = 1.05
	WeldBeadFactor      = 0.02

	fallbackOuterDiameterMm = 100.0
	fallbackWallThicknessMm = 5.0
	fallbackLengthM         = 1.0

	// Proportions used when no flange spec is available
	approxFlangeODFactor   = 1.6
	approxThicknessFactor  = 0.15
	approxHoleRadiusFactor = 0.4

	minimumInnerRadiusM = 1e-4
	endDimensionOffsetM = 0.1
	gapDimensionOffsetM = 0.25
	endLabelOffsetM     = 0.22
	gapLabelOffsetM     = 0.35
	blankLabelOffsetM   = 0.15
	overallLabelLiftM   = 0.15
)

func positiveFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// normalize applies the safe defaults for malformed numbers and returns the
// parameters with Length tagged in metres.
func normalize(p pipe.Parameters) pipe.Parameters {
	p = p.Clone().WithDefaults()

	lengthM := p.Length.Meters()
	if !positiveFinite(lengthM) {
		lengthM = fallbackLengthM
	}
	p.Length = units.Meters(lengthM)

	if !positiveFinite(p.OuterDiameterMm) {
		p.OuterDiameterMm = fallbackOuterDiameterMm
	}
	if !positiveFinite(p.WallThicknessMm) {
		p.WallThicknessMm = fallbackWallThicknessMm
	}
	if !positiveFinite(p.ClosureLengthMm) {
		p.ClosureLengthMm = pipe.DefaultClosureLengthMm
	}
	return p
}

// flangeGeometry is a flange spec expressed in scene units
type flangeGeometry struct {
	outerRadius      float64
	thickness        float64
	holes            int
	boltCircleRadius float64
	holeRadius       float64
}

func usableSpec(spec *flange.Spec, pipeRadius float64) bool {
	if spec == nil {
		return false
	}
	return positiveFinite(spec.OuterDiameterMm) &&
		positiveFinite(spec.ThicknessMm) &&
		spec.OuterDiameterMm/2000 > pipeRadius*RotatingBoreFactor
}

func flangeGeometryFor(spec *flange.Spec, pipeOD float64) flangeGeometry {
	if usableSpec(spec, pipeOD/2) {
		g := flangeGeometry{
			outerRadius:      spec.OuterDiameterMm / 2000,
			thickness:        spec.ThicknessMm / 1000,
			holes:            spec.BoltHoleCount,
			boltCircleRadius: spec.PitchCircleDiameterMm / 2000,
			holeRadius:       spec.BoltHoleDiameterMm / 2000,
		}
		if g.holes < 0 || !positiveFinite(g.boltCircleRadius) || !positiveFinite(g.holeRadius) {
			g.holes = 0
		}
		return g
	}

	flangeOD := pipeOD * approxFlangeODFactor
	thickness := pipeOD * approxThicknessFactor
	holes := 12
	switch {
	case pipeOD < 0.1:
		holes = 4
	case pipeOD < 0.25:
		holes = 8
	}
	return flangeGeometry{
		outerRadius:      flangeOD / 2,
		thickness:        thickness,
		holes:            holes,
		boltCircleRadius: (flangeOD + pipeOD) / 4,
		holeRadius:       thickness * approxHoleRadiusFactor,
	}
}

// builder accumulates primitives for one assembly
type builder struct {
	p        pipe.Parameters
	material pipe.DisplayMaterial
	lengthM  float64
	radius   float64
	inner    float64
	wall     float64
	closure  float64
	flange   flangeGeometry
	scene    Scene
}

// Assemble builds the scene for the parameters and an optional flange spec.
// It never fails: malformed numbers degrade to placeholder defaults.
// Identical inputs produce identical scenes.
func Assemble(params pipe.Parameters, spec *flange.Spec) Scene {
	p := normalize(params)

	b := &builder{
		p:        p,
		material: pipe.MaterialFor(p.MaterialName),
		lengthM:  p.Length.Meters(),
		radius:   p.OuterDiameterMm / 2000,
		wall:     p.WallThicknessMm / 1000,
		closure:  p.ClosureLengthMm / 1000,
	}
	b.inner = clampInnerRadius(b.radius-b.wall, b.radius)
	b.flange = flangeGeometryFor(spec, p.OuterDiameterMm/1000)

	b.body()

	sides := p.EndConfiguration.Sides()
	b.end(pipe.EndA, -1, sides.Left, sides.LooseLeft, sides.RotatingLeft)
	b.end(pipe.EndB, 1, sides.Right, sides.LooseRight, sides.RotatingRight)

	b.overallDimension()

	// The drawing may fall back to proportional flanges but the summary
	// always reports the resolved values
	b.scene.Summary = annotation.Summarize(p, spec)
	b.scene.LengthM = b.lengthM
	b.scene.Radius = b.radius
	b.scene.Bounds = b.bounds()
	return b.scene
}

// clampInnerRadius keeps the bore strictly inside (0, outer)
func clampInnerRadius(inner, outer float64) float64 {
	floor := math.Min(minimumInnerRadiusM, outer/2)
	if !(inner > floor) {
		inner = floor
	}
	if inner >= outer {
		inner = outer * 0.999
	}
	return inner
}

func suffix(end pipe.End) string {
	if end == pipe.EndA {
		return "-a"
	}
	return "-b"
}

func (b *builder) add(p Primitive) {
	b.scene.Primitives = append(b.scene.Primitives, p)
}

func (b *builder) materialPrimitive(kind Kind, role string, end pipe.End, centerX, length float64) Primitive {
	return Primitive{
		Kind:        kind,
		Role:        role,
		End:         end,
		CenterX:     centerX,
		Length:      length,
		OuterRadius: b.radius,
		InnerRadius: b.inner,
		Color:       b.material.Color,
		Metalness:   b.material.Metalness,
		Roughness:   b.material.Roughness,
	}
}

func (b *builder) body() {
	b.add(b.materialPrimitive(HollowCylinder, "pipe", "", 0, b.lengthM))
}

func (b *builder) endCap(role string, end pipe.End, x float64) {
	b.add(b.materialPrimitive(Ring, role, end, x, 0))
}

func (b *builder) flangeDisc(role string, end pipe.End, centerX, boreRadius float64) {
	b.add(Primitive{
		Kind:             FlangeDisc,
		Role:             role,
		End:              end,
		CenterX:          centerX,
		Length:           b.flange.thickness,
		OuterRadius:      b.flange.outerRadius,
		InnerRadius:      boreRadius,
		BoltHoles:        b.flange.holes,
		BoltCircleRadius: b.flange.boltCircleRadius,
		BoltHoleRadius:   b.flange.holeRadius,
		Color:            FlangeColor,
		Metalness:        0.7,
		Roughness:        0.4,
	})
}

// end builds one pipe end. sign is -1 for end A and +1 for end B.
func (b *builder) end(end pipe.End, sign float64, hasFlange, loose, rotating bool) {
	endX := sign * b.lengthM / 2
	sfx := suffix(end)

	if !hasFlange {
		b.endCap("end-cap"+sfx, end, endX)
		return
	}

	t := b.flange.thickness
	var stackFace float64

	switch {
	case loose:
		closureEnd := endX + sign*b.closure
		b.add(b.materialPrimitive(HollowCylinder, "closure"+sfx, end, endX+sign*b.closure/2, b.closure))
		b.endCap("closure-cap"+sfx, end, closureEnd)

		flangeNear := closureEnd + sign*LooseGapM
		b.flangeDisc("flange"+sfx, end, flangeNear+sign*t/2, b.inner)
		stackFace = flangeNear + sign*t

		y := -b.radius - endDimensionOffsetM
		b.scene.Dimensions = append(b.scene.Dimensions, Dimension{
			Kind:    ClosureLength,
			End:     end,
			Start:   geometry.NewVector3(endX, y, 0),
			Stop:    geometry.NewVector3(closureEnd, y, 0),
			Text:    "L/F " + strconv.FormatFloat(b.p.ClosureLengthMm, 'f', -1, 64) + "mm",
			LabelAt: geometry.NewVector3(endX+sign*b.closure/2, -b.radius-endLabelOffsetM, 0),
			Color:   LooseColor,
			Ticks:   true,
		})

		gy := -b.radius - gapDimensionOffsetM
		b.scene.Dimensions = append(b.scene.Dimensions, Dimension{
			Kind:    LooseGap,
			End:     end,
			Start:   geometry.NewVector3(closureEnd, gy, 0),
			Stop:    geometry.NewVector3(flangeNear, gy, 0),
			Text:    fmt.Sprintf("%.0fmm gap", LooseGapM*1000),
			LabelAt: geometry.NewVector3(closureEnd+sign*LooseGapM/2, -b.radius-gapLabelOffsetM, 0),
			Color:   GapColor,
			Dashed:  true,
		})

	case rotating:
		b.add(Primitive{
			Kind:        Ring,
			Role:        "retaining-ring" + sfx,
			End:         end,
			CenterX:     endX - sign*b.wall/2,
			Length:      b.wall,
			OuterRadius: b.radius * RetainingRingFactor,
			InnerRadius: b.inner,
			Color:       RetainingRingColor,
			Metalness:   0.6,
			Roughness:   0.4,
		})

		flangeFace := endX - sign*RotatingGapM
		b.flangeDisc("flange"+sfx, end, flangeFace-sign*t/2, b.radius*RotatingBoreFactor)
		stackFace = endX

		y := -b.radius - endDimensionOffsetM
		b.scene.Dimensions = append(b.scene.Dimensions, Dimension{
			Kind:    RotatingGap,
			End:     end,
			Start:   geometry.NewVector3(flangeFace, y, 0),
			Stop:    geometry.NewVector3(endX, y, 0),
			Text:    fmt.Sprintf("R/F %.0fmm", RotatingGapM*1000),
			LabelAt: geometry.NewVector3(endX-sign*RotatingGapM/2, -b.radius-endLabelOffsetM, 0),
			Color:   RotatingColor,
			Ticks:   true,
		})

	default:
		// Slip-on flange: the flange face is flush with the pipe end and
		// the bead sits where the pipe enters the back of the flange.
		b.flangeDisc("flange"+sfx, end, endX-sign*t/2, b.inner)
		b.add(Primitive{
			Kind:        Torus,
			Role:        "weld" + sfx,
			End:         end,
			CenterX:     endX - sign*t,
			OuterRadius: b.radius,
			TubeRadius:  2 * b.radius * WeldBeadFactor,
			Color:       WeldColor,
			Metalness:   0.4,
			Roughness:   0.9,
		})
		stackFace = endX
	}

	if b.p.HasBlankFlange(end) {
		b.blank(end, sign, stackFace)
	}
}

func (b *builder) blank(end pipe.End, sign, stackFace float64) {
	t := b.flange.thickness
	center := stackFace + sign*(t+BlankStandOffM)

	b.add(Primitive{
		Kind:             BlankDisc,
		Role:             "blank" + suffix(end),
		End:              end,
		CenterX:          center,
		Length:           t,
		OuterRadius:      b.flange.outerRadius,
		BoltHoles:        b.flange.holes,
		BoltCircleRadius: b.flange.boltCircleRadius,
		BoltHoleRadius:   b.flange.holeRadius,
		Color:            BlankColor,
		Metalness:        0.6,
		Roughness:        0.4,
	})
	b.scene.Labels = append(b.scene.Labels, Label{
		Position: geometry.NewVector3(center, -b.radius-blankLabelOffsetM, 0),
		Text:     "BLANK",
		Color:    BlankColor,
	})
}

func (b *builder) overallDimension() {
	half := b.lengthM / 2
	offset := b.radius + DimensionOffsetM

	b.scene.Dimensions = append(b.scene.Dimensions,
		Dimension{
			Kind:    OverallLength,
			Start:   geometry.NewVector3(-half, offset, 0),
			Stop:    geometry.NewVector3(half, offset, 0),
			Text:    fmt.Sprintf("%.2fm", b.lengthM),
			LabelAt: geometry.NewVector3(0, offset+overallLabelLiftM, 0),
			Color:   DimensionColor,
			Arrows:  true,
		},
		Dimension{
			Kind:   Projector,
			End:    pipe.EndA,
			Start:  geometry.NewVector3(-half, 0, 0),
			Stop:   geometry.NewVector3(-half, offset, 0),
			Color:  ProjectorColor,
			Dashed: true,
		},
		Dimension{
			Kind:   Projector,
			End:    pipe.EndB,
			Start:  geometry.NewVector3(half, 0, 0),
			Stop:   geometry.NewVector3(half, offset, 0),
			Color:  ProjectorColor,
			Dashed: true,
		},
	)
}

func (b *builder) bounds() geometry.BoundingBox {
	box := geometry.NewBoundingBox()
	for _, p := range b.scene.Primitives {
		box.Union(p.Bounds())
	}
	for _, d := range b.scene.Dimensions {
		box.Extend(d.Start)
		box.Extend(d.Stop)
	}
	return box
}
