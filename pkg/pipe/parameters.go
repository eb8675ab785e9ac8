package pipe

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/philipparndt/gopipe/pkg/units"
)

const (
	// DefaultClosureLengthMm is the closure piece length used for loose flanges
	DefaultClosureLengthMm = 150.0
	// DefaultFlangeStandard is the standard the embedded reference table follows
	DefaultFlangeStandard = "SABS 1123"
)

// Parameters describe one straight pipe with its end treatments.
// Values are immutable per recompute and passed by value.
type Parameters struct {
	Length           units.Length     `json:"length" yaml:"length"`
	OuterDiameterMm  float64          `json:"outerDiameterMm" yaml:"outerDiameterMm"`
	WallThicknessMm  float64          `json:"wallThicknessMm" yaml:"wallThicknessMm"`
	EndConfiguration EndConfiguration `json:"endConfiguration" yaml:"endConfiguration"`
	MaterialName     string           `json:"materialName,omitempty" yaml:"materialName,omitempty"`
	ClosureLengthMm  float64          `json:"closureLengthMm,omitempty" yaml:"closureLengthMm,omitempty"`
	NominalBoreMm    float64          `json:"nominalBoreMm,omitempty" yaml:"nominalBoreMm,omitempty"`
	Notes            []string         `json:"notes,omitempty" yaml:"notes,omitempty"`
	BlankFlanges     []End            `json:"blankFlanges,omitempty" yaml:"blankFlanges,omitempty"`
	FlangeStandard   string           `json:"flangeStandard,omitempty" yaml:"flangeStandard,omitempty"`
	PressureClass    string           `json:"pressureClass,omitempty" yaml:"pressureClass,omitempty"`
	FlangeTypeCode   string           `json:"flangeTypeCode,omitempty" yaml:"flangeTypeCode,omitempty"`
}

// WithDefaults fills in the optional fields that have a documented default
func (p Parameters) WithDefaults() Parameters {
	if p.EndConfiguration == "" {
		p.EndConfiguration = PlainEnds
	}
	if p.ClosureLengthMm <= 0 {
		p.ClosureLengthMm = DefaultClosureLengthMm
	}
	if strings.TrimSpace(p.FlangeStandard) == "" {
		p.FlangeStandard = DefaultFlangeStandard
	}
	return p
}

// Clone returns a copy that shares no slices with p
func (p Parameters) Clone() Parameters {
	p.Notes = slices.Clone(p.Notes)
	p.BlankFlanges = slices.Clone(p.BlankFlanges)
	return p
}

// InnerDiameterMm is the bore implied by OD and wall thickness
func (p Parameters) InnerDiameterMm() float64 {
	return p.OuterDiameterMm - 2*p.WallThicknessMm
}

// HasBlankFlange reports whether a blank flange was requested on the end
func (p Parameters) HasBlankFlange(end End) bool {
	return slices.Contains(p.BlankFlanges, end)
}

// Load reads parameters from a JSON or YAML file
func Load(path string) (Parameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Parameters{}, fmt.Errorf("failed to read parameters: %w", err)
	}

	params, err := Parse(data)
	if err != nil {
		return Parameters{}, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return params, nil
}

// Parse decodes a JSON or YAML document. JSON is accepted as YAML.
func Parse(data []byte) (Parameters, error) {
	var params Parameters
	if err := yaml.Unmarshal(data, &params); err != nil {
		return Parameters{}, err
	}
	return params.WithDefaults(), nil
}

// Save writes parameters to path, choosing JSON or YAML by extension
func Save(path string, params Parameters) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(params, "", "  ")
	default:
		data, err = yaml.Marshal(params)
	}
	if err != nil {
		return fmt.Errorf("failed to encode parameters: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write parameters: %w", err)
	}
	return nil
}
