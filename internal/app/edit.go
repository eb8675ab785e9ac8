package app

import (
	"math"
	"slices"

	"github.com/philipparndt/gopipe/pkg/pipe"
	"github.com/philipparndt/gopipe/pkg/units"
)

const (
	lengthStepM = 0.1
	minLengthM  = 0.1
)

// cycleEndConfiguration steps through the known configurations
func cycleEndConfiguration(current pipe.EndConfiguration, step int) pipe.EndConfiguration {
	all := pipe.AllEndConfigurations
	i := slices.Index(all, current)
	if i < 0 {
		return all[0]
	}
	n := len(all)
	return all[((i+step)%n+n)%n]
}

// adjustLength changes the pipe length, keeping the unit it was given in
func adjustLength(p pipe.Parameters, deltaM float64) pipe.Parameters {
	m := math.Max(minLengthM, p.Length.Meters()+deltaM)
	m = math.Round(m*1000) / 1000

	p = p.Clone()
	if p.Length.ResolvedUnit() == units.Millimetre {
		p.Length = units.Millimetres(m * 1000)
	} else {
		p.Length = units.Meters(m)
	}
	return p
}

// toggleBlank adds or removes a blank flange. Ends without a flange
// cannot carry a blank.
func toggleBlank(p pipe.Parameters, end pipe.End) pipe.Parameters {
	p = p.Clone()
	if i := slices.Index(p.BlankFlanges, end); i >= 0 {
		p.BlankFlanges = slices.Delete(p.BlankFlanges, i, i+1)
		return p
	}
	if p.EndConfiguration.Sides().Flanged(end) {
		p.BlankFlanges = append(p.BlankFlanges, end)
	}
	return p
}
