// Package pipe holds the pipe parameter model consumed by the scene
// assembler and the annotation overlay.
package pipe

import (
	"fmt"
	"strings"
)

// EndConfiguration is the closed set of pipe end treatments
type EndConfiguration string

const (
	PlainEnds            EndConfiguration = "PE"
	FlangedOneEnd        EndConfiguration = "FOE"
	FlangedBothEnds      EndConfiguration = "FBE"
	FixedAndLooseFlange  EndConfiguration = "FOE_LF"
	LooseFlangesBothEnds EndConfiguration = "2xLF"
	FixedAndRotating     EndConfiguration = "FOE_RF"
	RotatingFlangesBoth  EndConfiguration = "2X_RF"
)

// legacyLooseBothEnds is the older spelling of LooseFlangesBothEnds
const legacyLooseBothEnds = "LF_BE"

// AllEndConfigurations lists every configuration in display order
var AllEndConfigurations = []EndConfiguration{
	PlainEnds,
	FlangedOneEnd,
	FlangedBothEnds,
	FixedAndLooseFlange,
	LooseFlangesBothEnds,
	FixedAndRotating,
	RotatingFlangesBoth,
}

// Sides describes which ends carry a flange and how it is mounted.
// End A is the left (-X) end, end B the right (+X) end.
type Sides struct {
	Left          bool
	Right         bool
	LooseLeft     bool
	LooseRight    bool
	RotatingLeft  bool
	RotatingRight bool
}

// Any reports whether at least one end carries a flange
func (s Sides) Any() bool {
	return s.Left || s.Right
}

// Flanged reports whether the end carries a flange. End A is the left side.
func (s Sides) Flanged(end End) bool {
	if end == EndA {
		return s.Left
	}
	return s.Right
}

// ParseEndConfiguration parses a configuration code case-insensitively.
// Unknown codes yield PlainEnds and ok=false.
func ParseEndConfiguration(code string) (EndConfiguration, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return PlainEnds, true
	}
	if normalized == legacyLooseBothEnds {
		return LooseFlangesBothEnds, true
	}
	for _, c := range AllEndConfigurations {
		if strings.ToUpper(string(c)) == normalized {
			return c, true
		}
	}
	return PlainEnds, false
}

// Sides maps the configuration to its flange flags. Unknown values map to
// plain ends.
func (c EndConfiguration) Sides() Sides {
	switch c {
	case FlangedOneEnd:
		return Sides{Right: true}
	case FlangedBothEnds:
		return Sides{Left: true, Right: true}
	case FixedAndLooseFlange:
		return Sides{Left: true, Right: true, LooseLeft: true}
	case LooseFlangesBothEnds:
		return Sides{Left: true, Right: true, LooseLeft: true, LooseRight: true}
	case FixedAndRotating:
		return Sides{Left: true, Right: true, RotatingLeft: true}
	case RotatingFlangesBoth:
		return Sides{Left: true, Right: true, RotatingLeft: true, RotatingRight: true}
	default:
		return Sides{}
	}
}

// Label returns the human readable description
func (c EndConfiguration) Label() string {
	switch c {
	case FlangedOneEnd:
		return "Fixed One End"
	case FlangedBothEnds:
		return "Flanged Both Ends"
	case FixedAndLooseFlange:
		return "Fixed + Loose Flange"
	case LooseFlangesBothEnds:
		return "Loose Flanges Both Ends"
	case FixedAndRotating:
		return "Fixed + Rotating Flange"
	case RotatingFlangesBoth:
		return "2x Rotating Flanges"
	default:
		return "Plain Ended"
	}
}

// HasRotating reports whether any end uses a rotating flange
func (c EndConfiguration) HasRotating() bool {
	s := c.Sides()
	return s.RotatingLeft || s.RotatingRight
}

// BackingRingCount is the number of backing rings the configuration needs
func (c EndConfiguration) BackingRingCount() int {
	switch c {
	case FixedAndRotating:
		return 1
	case RotatingFlangesBoth:
		return 2
	default:
		return 0
	}
}

// UnmarshalText accepts any spelling ParseEndConfiguration does
func (c *EndConfiguration) UnmarshalText(text []byte) error {
	parsed, ok := ParseEndConfiguration(string(text))
	if !ok {
		return fmt.Errorf("unknown end configuration %q", string(text))
	}
	*c = parsed
	return nil
}

// End identifies one pipe end
type End string

const (
	EndA End = "A"
	EndB End = "B"
)

// ParseEnd accepts "A"/"B" and the older "inlet"/"outlet" names
func ParseEnd(s string) (End, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a", "inlet", "left":
		return EndA, nil
	case "b", "outlet", "right":
		return EndB, nil
	default:
		return "", fmt.Errorf("unknown pipe end %q", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler
func (e *End) UnmarshalText(text []byte) error {
	parsed, err := ParseEnd(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}
