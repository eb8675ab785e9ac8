package pipe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gopipe/pkg/units"
)

func TestSidesTable(t *testing.T) {
	tests := []struct {
		config EndConfiguration
		want   Sides
	}{
		{PlainEnds, Sides{}},
		{FlangedOneEnd, Sides{Right: true}},
		{FlangedBothEnds, Sides{Left: true, Right: true}},
		{FixedAndLooseFlange, Sides{Left: true, Right: true, LooseLeft: true}},
		{LooseFlangesBothEnds, Sides{Left: true, Right: true, LooseLeft: true, LooseRight: true}},
		{FixedAndRotating, Sides{Left: true, Right: true, RotatingLeft: true}},
		{RotatingFlangesBoth, Sides{Left: true, Right: true, RotatingLeft: true, RotatingRight: true}},
	}

	require.Len(t, tests, len(AllEndConfigurations), "every configuration needs a row")
	for _, tt := range tests {
		t.Run(string(tt.config), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.config.Sides())
		})
	}
}

func TestSidesInvariants(t *testing.T) {
	for _, c := range AllEndConfigurations {
		s := c.Sides()
		if s.LooseLeft || s.RotatingLeft {
			assert.True(t, s.Left, "%s: left mount flag without left flange", c)
		}
		if s.LooseRight || s.RotatingRight {
			assert.True(t, s.Right, "%s: right mount flag without right flange", c)
		}
		assert.False(t, s.LooseLeft && s.RotatingLeft, "%s: left end both loose and rotating", c)
		assert.False(t, s.LooseRight && s.RotatingRight, "%s: right end both loose and rotating", c)

		if c != PlainEnds {
			assert.True(t, s.Right, "%s must flange end B", c)
		}
	}

	assert.False(t, PlainEnds.Sides().Any())
	assert.Equal(t, Sides{}, EndConfiguration("BOGUS").Sides())
}

func TestParseEndConfiguration(t *testing.T) {
	tests := []struct {
		input string
		want  EndConfiguration
		ok    bool
	}{
		{"pe", PlainEnds, true},
		{"", PlainEnds, true},
		{"foe_rf", FixedAndRotating, true},
		{"2XLF", LooseFlangesBothEnds, true},
		{"2x_rf", RotatingFlangesBoth, true},
		{"LF_BE", LooseFlangesBothEnds, true},
		{" FBE ", FlangedBothEnds, true},
		{"FOE_XX", PlainEnds, false},
	}

	for _, tt := range tests {
		got, ok := ParseEndConfiguration(tt.input)
		assert.Equal(t, tt.want, got, tt.input)
		assert.Equal(t, tt.ok, ok, tt.input)
	}
}

func TestBackingRingCount(t *testing.T) {
	assert.Equal(t, 1, FixedAndRotating.BackingRingCount())
	assert.Equal(t, 2, RotatingFlangesBoth.BackingRingCount())
	for _, c := range []EndConfiguration{PlainEnds, FlangedOneEnd, FlangedBothEnds, FixedAndLooseFlange, LooseFlangesBothEnds} {
		assert.Zero(t, c.BackingRingCount(), c)
		assert.False(t, c.HasRotating(), c)
	}
	assert.True(t, FixedAndRotating.HasRotating())
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Fixed + Rotating Flange", FixedAndRotating.Label())
	assert.Equal(t, "Loose Flanges Both Ends", LooseFlangesBothEnds.Label())
	assert.Equal(t, "Plain Ended", EndConfiguration("??").Label())
}

func TestMaterialFor(t *testing.T) {
	assert.Equal(t, "Galvanized Steel", MaterialFor("SABS 62 ERW").Name)
	assert.Equal(t, "Stainless Steel", MaterialFor("ASTM A312 316L").Name)
	assert.Equal(t, "Stainless Steel", MaterialFor("stainless").Name)
	assert.Equal(t, "PVC/Plastic", MaterialFor("uPVC class 9").Name)
	assert.Equal(t, "Carbon Steel", MaterialFor("SABS 719").Name)
	assert.Equal(t, "Carbon Steel", MaterialFor("").Name)
}

func TestParseAppliesDefaults(t *testing.T) {
	params, err := Parse([]byte(`
length: 6000mm
outerDiameterMm: 168.3
wallThicknessMm: 6.4
endConfiguration: foe_rf
nominalBoreMm: 150
blankFlanges: [outlet]
notes:
  - Hydro test to 16 bar
`))
	require.NoError(t, err)

	assert.Equal(t, units.Millimetres(6000), params.Length)
	assert.Equal(t, FixedAndRotating, params.EndConfiguration)
	assert.Equal(t, DefaultClosureLengthMm, params.ClosureLengthMm)
	assert.Equal(t, DefaultFlangeStandard, params.FlangeStandard)
	assert.True(t, params.HasBlankFlange(EndB))
	assert.False(t, params.HasBlankFlange(EndA))
	assert.Equal(t, []string{"Hydro test to 16 bar"}, params.Notes)
	assert.InDelta(t, 155.5, params.InnerDiameterMm(), 1e-9)
}

func TestParseRejectsUnknownConfiguration(t *testing.T) {
	_, err := Parse([]byte(`endConfiguration: FOE_ZZ`))
	assert.Error(t, err)
}

func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	original := Parameters{
		Length:           units.Meters(12),
		OuterDiameterMm:  219.1,
		WallThicknessMm:  8.2,
		EndConfiguration: LooseFlangesBothEnds,
		MaterialName:     "SABS 62",
		NominalBoreMm:    200,
		BlankFlanges:     []End{EndA},
	}.WithDefaults()

	for _, name := range []string{"pipe.json", "pipe.yaml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Save(path, original))

		loaded, err := Load(path)
		require.NoError(t, err, name)
		assert.Equal(t, original, loaded, name)
	}

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCloneDoesNotShareSlices(t *testing.T) {
	p := Parameters{Notes: []string{"a"}, BlankFlanges: []End{EndA}}
	c := p.Clone()
	c.Notes[0] = "b"
	c.BlankFlanges[0] = EndB
	assert.Equal(t, "a", p.Notes[0])
	assert.Equal(t, EndA, p.BlankFlanges[0])
}

func TestSidesFlanged(t *testing.T) {
	assert.False(t, FlangedOneEnd.Sides().Flanged(EndA))
	assert.True(t, FlangedOneEnd.Sides().Flanged(EndB))
	assert.True(t, LooseFlangesBothEnds.Sides().Flanged(EndA))
	assert.False(t, PlainEnds.Sides().Flanged(EndB))
}
