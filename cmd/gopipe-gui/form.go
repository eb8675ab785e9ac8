package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/philipparndt/gopipe/pkg/pipe"
	"github.com/philipparndt/gopipe/pkg/units"
)

// geometryInput is the raw text of the fields that change the geometry
type geometryInput struct {
	Length        string
	OuterDiameter string
	WallThickness string
	NominalBore   string
	Configuration pipe.EndConfiguration
	BlankA        bool
	BlankB        bool
}

// secondaryInput holds the fields that only change the annotations
type secondaryInput struct {
	Material string
	Notes    string
}

// parsePositive parses a required positive number
func parsePositive(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%s must be a positive number", name)
	}
	return v, nil
}

// apply merges the geometry fields into base. The nominal bore may be
// left empty.
func (in geometryInput) apply(base pipe.Parameters) (pipe.Parameters, error) {
	length, err := units.ParseLength(in.Length)
	if err != nil {
		return base, fmt.Errorf("length: %w", err)
	}
	if !length.IsValid() {
		return base, fmt.Errorf("length must be positive")
	}
	od, err := parsePositive("outer diameter", in.OuterDiameter)
	if err != nil {
		return base, err
	}
	wt, err := parsePositive("wall thickness", in.WallThickness)
	if err != nil {
		return base, err
	}
	if 2*wt >= od {
		return base, fmt.Errorf("wall thickness must be less than half the outer diameter")
	}
	nb := 0.0
	if strings.TrimSpace(in.NominalBore) != "" {
		if nb, err = parsePositive("nominal bore", in.NominalBore); err != nil {
			return base, err
		}
	}

	p := base.Clone()
	p.Length = length
	p.OuterDiameterMm = od
	p.WallThicknessMm = wt
	p.NominalBoreMm = nb
	p.EndConfiguration = in.Configuration

	sides := in.Configuration.Sides()
	p.BlankFlanges = nil
	if in.BlankA && sides.Flanged(pipe.EndA) {
		p.BlankFlanges = append(p.BlankFlanges, pipe.EndA)
	}
	if in.BlankB && sides.Flanged(pipe.EndB) {
		p.BlankFlanges = append(p.BlankFlanges, pipe.EndB)
	}
	return p, nil
}

// apply merges the annotation fields into base. Notes are one per line;
// blank lines are dropped.
func (in secondaryInput) apply(base pipe.Parameters) pipe.Parameters {
	p := base.Clone()
	p.MaterialName = strings.TrimSpace(in.Material)
	p.Notes = nil
	for _, line := range strings.Split(in.Notes, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			p.Notes = append(p.Notes, line)
		}
	}
	return p
}

// inputsFrom fills the form text from loaded parameters
func inputsFrom(p pipe.Parameters) (geometryInput, secondaryInput) {
	g := geometryInput{
		Length:        formatLength(p.Length),
		OuterDiameter: strconv.FormatFloat(p.OuterDiameterMm, 'f', -1, 64),
		WallThickness: strconv.FormatFloat(p.WallThicknessMm, 'f', -1, 64),
		Configuration: p.EndConfiguration,
		BlankA:        p.HasBlankFlange(pipe.EndA),
		BlankB:        p.HasBlankFlange(pipe.EndB),
	}
	if p.NominalBoreMm > 0 {
		g.NominalBore = strconv.FormatFloat(p.NominalBoreMm, 'f', -1, 64)
	}
	if g.Configuration == "" {
		g.Configuration = pipe.PlainEnds
	}
	return g, secondaryInput{Material: p.MaterialName, Notes: strings.Join(p.Notes, "\n")}
}

// formatLength keeps the unit the length was given in
func formatLength(l units.Length) string {
	v := strconv.FormatFloat(l.Value, 'f', -1, 64)
	if l.ResolvedUnit() == units.Millimetre {
		return v + "mm"
	}
	return v + "m"
}

// defaultParameters is the spool shown when no file is given
func defaultParameters() pipe.Parameters {
	return pipe.Parameters{
		Length:           units.Meters(6),
		OuterDiameterMm:  114.3,
		WallThicknessMm:  4.5,
		NominalBoreMm:    100,
		EndConfiguration: pipe.FlangedBothEnds,
		MaterialName:     "Carbon Steel",
	}.WithDefaults()
}
