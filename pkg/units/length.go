// Package units provides unit-tagged lengths for pipe parameters.
//
// A Length carries an explicit unit whenever the source supplied one. Bare
// numbers are still accepted for compatibility with older parameter files;
// those are resolved with the below-50-means-metres rule and reported by
// IsAmbiguous so callers can warn about them.
package units

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Unit identifies the unit a length value was expressed in
type Unit string

const (
	// Unspecified marks a bare number whose unit must be guessed
	Unspecified Unit = ""
	// Metre is the scene unit
	Metre Unit = "m"
	// Millimetre is the unit used for all cross-section dimensions
	Millimetre Unit = "mm"
)

// AmbiguityThreshold splits untagged values: below it the value is taken as
// metres, at or above it as millimetres.
const AmbiguityThreshold = 50.0

// ParseUnit parses a unit suffix
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return Unspecified, nil
	case "m", "meter", "meters", "metre", "metres":
		return Metre, nil
	case "mm", "millimeter", "millimeters", "millimetre", "millimetres":
		return Millimetre, nil
	default:
		return Unspecified, fmt.Errorf("unknown length unit %q", s)
	}
}

// Length is a numeric length with an optional unit tag
type Length struct {
	Value float64
	Unit  Unit
}

// Meters creates a length tagged in metres
func Meters(v float64) Length {
	return Length{Value: v, Unit: Metre}
}

// Millimetres creates a length tagged in millimetres
func Millimetres(v float64) Length {
	return Length{Value: v, Unit: Millimetre}
}

// Untagged creates a length whose unit is resolved by the legacy rule
func Untagged(v float64) Length {
	return Length{Value: v}
}

// IsAmbiguous reports whether the unit had to be guessed
func (l Length) IsAmbiguous() bool {
	return l.Unit == Unspecified
}

// ResolvedUnit returns the unit the value is interpreted in
func (l Length) ResolvedUnit() Unit {
	if l.Unit != Unspecified {
		return l.Unit
	}
	if l.Value < AmbiguityThreshold {
		return Metre
	}
	return Millimetre
}

// Meters returns the length in metres. Non-finite values pass through.
func (l Length) Meters() float64 {
	if l.ResolvedUnit() == Millimetre {
		return l.Value / 1000
	}
	return l.Value
}

// Millimetres returns the length in millimetres
func (l Length) Millimetres() float64 {
	return l.Meters() * 1000
}

// String formats the length in metres with two decimals
func (l Length) String() string {
	return fmt.Sprintf("%.2fm", l.Meters())
}

// ParseLength parses "6", "6m", "6000mm" or "6.1 m"
func ParseLength(s string) (Length, error) {
	text := strings.ToLower(strings.TrimSpace(s))
	if text == "" {
		return Length{}, fmt.Errorf("empty length")
	}

	split := strings.IndexFunc(text, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.' && r != '-' && r != '+' && r != 'e'
	})
	number, suffix := text, ""
	if split >= 0 {
		number, suffix = text[:split], text[split:]
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(number), 64)
	if err != nil {
		return Length{}, fmt.Errorf("invalid length %q: %w", s, err)
	}
	unit, err := ParseUnit(suffix)
	if err != nil {
		return Length{}, fmt.Errorf("invalid length %q: %w", s, err)
	}
	return Length{Value: value, Unit: unit}, nil
}

type taggedLength struct {
	Value float64 `json:"value" yaml:"value"`
	Unit  string  `json:"unit,omitempty" yaml:"unit,omitempty"`
}

func (t taggedLength) toLength() (Length, error) {
	unit, err := ParseUnit(t.Unit)
	if err != nil {
		return Length{}, err
	}
	return Length{Value: t.Value, Unit: unit}, nil
}

// UnmarshalJSON accepts a number, a string with suffix or {value, unit}
func (l *Length) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0:
		return fmt.Errorf("empty length")
	case data[0] == '{':
		var t taggedLength
		if err := json.Unmarshal(data, &t); err != nil {
			return fmt.Errorf("failed to decode length: %w", err)
		}
		parsed, err := t.toLength()
		if err != nil {
			return err
		}
		*l = parsed
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("failed to decode length: %w", err)
		}
		parsed, err := ParseLength(s)
		if err != nil {
			return err
		}
		*l = parsed
	default:
		var v float64
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("failed to decode length: %w", err)
		}
		*l = Untagged(v)
	}
	return nil
}

// MarshalJSON writes tagged lengths as {value, unit} and untagged ones as numbers
func (l Length) MarshalJSON() ([]byte, error) {
	if l.Unit == Unspecified {
		return json.Marshal(l.Value)
	}
	return json.Marshal(taggedLength{Value: l.Value, Unit: string(l.Unit)})
}

// UnmarshalYAML accepts the same three forms as UnmarshalJSON
func (l *Length) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		var t taggedLength
		if err := node.Decode(&t); err != nil {
			return fmt.Errorf("failed to decode length: %w", err)
		}
		parsed, err := t.toLength()
		if err != nil {
			return err
		}
		*l = parsed
	case yaml.ScalarNode:
		parsed, err := ParseLength(node.Value)
		if err != nil {
			return err
		}
		*l = parsed
	default:
		return fmt.Errorf("line %d: length must be a number, string or mapping", node.Line)
	}
	return nil
}

// MarshalYAML mirrors MarshalJSON
func (l Length) MarshalYAML() (interface{}, error) {
	if l.Unit == Unspecified {
		return l.Value, nil
	}
	return taggedLength{Value: l.Value, Unit: string(l.Unit)}, nil
}

// IsValid reports whether the value is finite and strictly positive
func (l Length) IsValid() bool {
	return !math.IsNaN(l.Value) && !math.IsInf(l.Value, 0) && l.Value > 0
}
