package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/philipparndt/gopipe/pkg/pipe"
	"github.com/philipparndt/gopipe/pkg/units"
)

func TestCycleEndConfiguration(t *testing.T) {
	all := pipe.AllEndConfigurations
	last := all[len(all)-1]

	assert.Equal(t, all[1], cycleEndConfiguration(all[0], 1))
	assert.Equal(t, all[0], cycleEndConfiguration(last, 1), "wraps forwards")
	assert.Equal(t, last, cycleEndConfiguration(all[0], -1), "wraps backwards")
	assert.Equal(t, all[0], cycleEndConfiguration("bogus", 1), "unknown restarts at the first entry")
}

func TestAdjustLengthKeepsUnit(t *testing.T) {
	metres := pipe.Parameters{Length: units.Meters(2)}
	got := adjustLength(metres, lengthStepM)
	assert.Equal(t, units.Metre, got.Length.Unit)
	assert.InDelta(t, 2.1, got.Length.Value, 1e-9)

	millis := pipe.Parameters{Length: units.Millimetres(2000)}
	got = adjustLength(millis, -lengthStepM)
	assert.Equal(t, units.Millimetre, got.Length.Unit)
	assert.InDelta(t, 1900, got.Length.Value, 1e-6)

	// Untagged values above the threshold are millimetres and stay that way
	legacy := pipe.Parameters{Length: units.Untagged(6000)}
	got = adjustLength(legacy, lengthStepM)
	assert.Equal(t, units.Millimetre, got.Length.Unit)
	assert.InDelta(t, 6100, got.Length.Value, 1e-6)
}

func TestAdjustLengthClampsAtMinimum(t *testing.T) {
	p := pipe.Parameters{Length: units.Meters(0.15)}
	got := adjustLength(adjustLength(p, -lengthStepM), -lengthStepM)
	assert.InDelta(t, minLengthM, got.Length.Meters(), 1e-9)
}

func TestAdjustLengthDoesNotAliasNotes(t *testing.T) {
	p := pipe.Parameters{Length: units.Meters(1), Notes: []string{"a"}}
	got := adjustLength(p, lengthStepM)
	got.Notes[0] = "b"
	assert.Equal(t, "a", p.Notes[0])
}

func TestToggleBlank(t *testing.T) {
	p := pipe.Parameters{EndConfiguration: pipe.FlangedBothEnds}

	p = toggleBlank(p, pipe.EndA)
	assert.Equal(t, []pipe.End{pipe.EndA}, p.BlankFlanges)

	p = toggleBlank(p, pipe.EndB)
	assert.ElementsMatch(t, []pipe.End{pipe.EndA, pipe.EndB}, p.BlankFlanges)

	p = toggleBlank(p, pipe.EndA)
	assert.Equal(t, []pipe.End{pipe.EndB}, p.BlankFlanges)
}

func TestToggleBlankRequiresFlange(t *testing.T) {
	// FOE only flanges end B
	p := pipe.Parameters{EndConfiguration: pipe.FlangedOneEnd}
	assert.Empty(t, toggleBlank(p, pipe.EndA).BlankFlanges)
	assert.Equal(t, []pipe.End{pipe.EndB}, toggleBlank(p, pipe.EndB).BlankFlanges)

	plain := pipe.Parameters{EndConfiguration: pipe.PlainEnds}
	assert.Empty(t, toggleBlank(plain, pipe.EndB).BlankFlanges)
}
