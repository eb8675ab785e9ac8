// Package annotation builds the textual specification summary shown next
// to the pipe preview.
package annotation

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/philipparndt/gopipe/pkg/flange"
	"github.com/philipparndt/gopipe/pkg/pipe"
)

const (
	// BackingRingThicknessMm is added to the bolt length of rotating flanges
	BackingRingThicknessMm = 10.0
	// SteelDensity in g/cm³
	SteelDensity = 7.85
)

// PipeSummary describes the pipe cross section
type PipeSummary struct {
	OuterDiameterMm float64
	InnerDiameterMm float64
	WallThicknessMm float64
	LengthM         float64
	Material        string
}

// FlangeSummary describes the flanges. Spec is nil when no nominal bore
// was given and only the configuration can be shown.
type FlangeSummary struct {
	Configuration        pipe.EndConfiguration
	Label                string
	Spec                 *flange.Spec
	AdjustedBoltLengthMm float64
	Designation          string
}

// BackingRing reports the rings needed by rotating flanges
type BackingRing struct {
	Count  int
	MassKg float64
}

// Summary is everything the overlay displays
type Summary struct {
	Pipe        PipeSummary
	Flange      *FlangeSummary
	BackingRing *BackingRing
	Caveat      string
	Notes       []string
}

// AdjustedBoltLength adds the backing ring allowance for rotating flanges
func AdjustedBoltLength(baseMm float64, cfg pipe.EndConfiguration) float64 {
	if cfg.HasRotating() {
		return baseMm + BackingRingThicknessMm
	}
	return baseMm
}

// BackingRingMassKg is the mass of one annular ring with outer diameter
// flangeOD-10 mm, inner diameter pipeOD and thickness 10 mm.
func BackingRingMassKg(flangeODMm, pipeODMm float64) float64 {
	outer := (flangeODMm - 10) / 20
	inner := pipeODMm / 20
	volumeCm3 := math.Pi * (outer*outer - inner*inner) * (BackingRingThicknessMm / 10)
	if volumeCm3 < 0 {
		return 0
	}
	return volumeCm3 * SteelDensity / 1000
}

// Summarize derives the summary from the parameters used for the scene
// and the resolved flange spec, which may be nil.
func Summarize(p pipe.Parameters, spec *flange.Spec) Summary {
	s := Summary{
		Pipe: PipeSummary{
			OuterDiameterMm: p.OuterDiameterMm,
			InnerDiameterMm: p.InnerDiameterMm(),
			WallThicknessMm: p.WallThicknessMm,
			LengthM:         p.Length.Meters(),
			Material:        pipe.MaterialFor(p.MaterialName).Name,
		},
		Notes: append([]string(nil), p.Notes...),
	}

	cfg := p.EndConfiguration
	if !cfg.Sides().Any() {
		return s
	}

	s.Flange = &FlangeSummary{
		Configuration: cfg,
		Label:         cfg.Label(),
		Designation:   flange.Designation(p.FlangeStandard, p.PressureClass, p.FlangeTypeCode),
	}
	if spec == nil {
		return s
	}

	specCopy := *spec
	s.Flange.Spec = &specCopy
	s.Flange.AdjustedBoltLengthMm = AdjustedBoltLength(spec.BoltLengthMm, cfg)
	s.Caveat = flange.Caveat(p.FlangeStandard, spec.FromCatalog)

	if count := cfg.BackingRingCount(); count > 0 {
		s.BackingRing = &BackingRing{
			Count:  count,
			MassKg: BackingRingMassKg(spec.OuterDiameterMm, p.OuterDiameterMm),
		}
	}
	return s
}

// Style selects how a line is rendered
type Style int

const (
	Heading Style = iota
	Body
	Secondary
	Accent
	Highlight
	Warning
	Note
)

func (s Style) String() string {
	switch s {
	case Heading:
		return "heading"
	case Body:
		return "body"
	case Secondary:
		return "secondary"
	case Accent:
		return "accent"
	case Highlight:
		return "highlight"
	case Warning:
		return "warning"
	case Note:
		return "note"
	default:
		return "unknown"
	}
}

// Color is the text colour of the style on a light panel
func (s Style) Color() color.NRGBA {
	switch s {
	case Heading:
		return color.NRGBA{0x11, 0x18, 0x27, 0xff}
	case Secondary:
		return color.NRGBA{0x6b, 0x72, 0x80, 0xff}
	case Accent:
		return color.NRGBA{0x25, 0x63, 0xeb, 0xff}
	case Highlight:
		return color.NRGBA{0x05, 0x96, 0x69, 0xff}
	case Warning:
		return color.NRGBA{0xd9, 0x77, 0x06, 0xff}
	case Note:
		return color.NRGBA{0x4b, 0x55, 0x63, 0xff}
	default:
		return color.NRGBA{0x37, 0x41, 0x51, 0xff}
	}
}

// Line is one row of overlay text
type Line struct {
	Text  string
	Style Style
}

// mm formats a millimetre value without trailing zeros
func mm(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "mm"
}

// Lines renders the summary as overlay rows. Text is ASCII only so every
// renderer's built-in font can draw it.
func (s Summary) Lines() []Line {
	lines := []Line{
		{Text: "PIPE", Style: Heading},
		{Text: fmt.Sprintf("OD: %.0fmm | ID: %.0fmm", s.Pipe.OuterDiameterMm, s.Pipe.InnerDiameterMm), Style: Body},
		{Text: "WT: " + mm(s.Pipe.WallThicknessMm), Style: Secondary},
		{Text: fmt.Sprintf("Length: %.2fm", s.Pipe.LengthM), Style: Secondary},
		{Text: s.Pipe.Material, Style: Accent},
	}

	if f := s.Flange; f != nil {
		lines = append(lines,
			Line{Text: fmt.Sprintf("FLANGE (%s)", f.Configuration), Style: Heading},
			Line{Text: f.Label, Style: Secondary},
		)
		if spec := f.Spec; spec != nil {
			lines = append(lines,
				Line{Text: fmt.Sprintf("OD: %s | PCD: %s", mm(spec.OuterDiameterMm), mm(spec.PitchCircleDiameterMm)), Style: Body},
				Line{Text: fmt.Sprintf("Holes: %d x %s dia", spec.BoltHoleCount, mm(spec.BoltHoleDiameterMm)), Style: Secondary},
				Line{Text: fmt.Sprintf("Bolts: %d x M%s x %s", spec.BoltHoleCount, strconv.FormatFloat(spec.BoltDiameterMm, 'f', -1, 64), mm(f.AdjustedBoltLengthMm)), Style: Secondary},
				Line{Text: "Thickness: " + mm(spec.ThicknessMm), Style: Secondary},
				Line{Text: f.Designation, Style: Highlight},
			)
		}
	}

	if r := s.BackingRing; r != nil {
		lines = append(lines, Line{Text: fmt.Sprintf("Backing Ring: %d x %.2fkg", r.Count, r.MassKg), Style: Accent})
	}
	if s.Caveat != "" {
		lines = append(lines, Line{Text: s.Caveat, Style: Warning})
	}
	if len(s.Notes) > 0 {
		lines = append(lines, Line{Text: "NOTES", Style: Heading})
		for i, n := range s.Notes {
			lines = append(lines, Line{Text: fmt.Sprintf("%d. %s", i+1, n), Style: Note})
		}
	}
	return lines
}
