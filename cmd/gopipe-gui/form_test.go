package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gopipe/pkg/pipe"
	"github.com/philipparndt/gopipe/pkg/units"
)

func validInput() geometryInput {
	return geometryInput{
		Length:        "6000mm",
		OuterDiameter: "168.3",
		WallThickness: "6",
		NominalBore:   "150",
		Configuration: pipe.FlangedBothEnds,
	}
}

func TestGeometryInputApply(t *testing.T) {
	base := defaultParameters()
	p, err := validInput().apply(base)
	require.NoError(t, err)

	assert.Equal(t, units.Millimetres(6000), p.Length)
	assert.Equal(t, 168.3, p.OuterDiameterMm)
	assert.Equal(t, 6.0, p.WallThicknessMm)
	assert.Equal(t, 150.0, p.NominalBoreMm)
	assert.Equal(t, pipe.FlangedBothEnds, p.EndConfiguration)
	assert.Equal(t, base.FlangeStandard, p.FlangeStandard, "fields outside the form are kept")
}

func TestGeometryInputRejectsInvalid(t *testing.T) {
	cases := map[string]func(*geometryInput){
		"empty length": func(in *geometryInput) { in.Length = "" },
		"negative od":  func(in *geometryInput) { in.OuterDiameter = "-1" },
		"text wall":    func(in *geometryInput) { in.WallThickness = "thick" },
		"wall too big": func(in *geometryInput) { in.WallThickness = "90" },
		"bad bore":     func(in *geometryInput) { in.NominalBore = "0" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			mutate(&in)
			_, err := in.apply(defaultParameters())
			assert.Error(t, err)
		})
	}
}

func TestGeometryInputOptionalBore(t *testing.T) {
	in := validInput()
	in.NominalBore = "  "
	p, err := in.apply(defaultParameters())
	require.NoError(t, err)
	assert.Zero(t, p.NominalBoreMm)
}

func TestBlankOnlyOnFlangedEnd(t *testing.T) {
	in := validInput()
	in.Configuration = pipe.FlangedOneEnd
	in.BlankA, in.BlankB = true, true

	p, err := in.apply(defaultParameters())
	require.NoError(t, err)
	assert.Equal(t, []pipe.End{pipe.EndB}, p.BlankFlanges)
}

func TestSecondaryInputApply(t *testing.T) {
	p := secondaryInput{Material: " SABS 62 ", Notes: "Hydro test\n\n  Paint red  \n"}.apply(defaultParameters())
	assert.Equal(t, "SABS 62", p.MaterialName)
	assert.Equal(t, []string{"Hydro test", "Paint red"}, p.Notes)
}

func TestInputsRoundTrip(t *testing.T) {
	base := defaultParameters()
	base.BlankFlanges = []pipe.End{pipe.EndA}
	base.Notes = []string{"one", "two"}

	g, sec := inputsFrom(base)
	assert.Equal(t, "6m", g.Length)
	assert.True(t, g.BlankA)
	assert.False(t, g.BlankB)

	p, err := g.apply(base)
	require.NoError(t, err)
	p = sec.apply(p)
	assert.Equal(t, base.Length, p.Length)
	assert.Equal(t, base.OuterDiameterMm, p.OuterDiameterMm)
	assert.Equal(t, base.BlankFlanges, p.BlankFlanges)
	assert.Equal(t, base.Notes, p.Notes)
	assert.Equal(t, base.MaterialName, p.MaterialName)
}

func TestFormatLengthKeepsUnit(t *testing.T) {
	assert.Equal(t, "6123mm", formatLength(units.Millimetres(6123)))
	assert.Equal(t, "2.5m", formatLength(units.Meters(2.5)))
	assert.Equal(t, "6000mm", formatLength(units.Untagged(6000)))
}
