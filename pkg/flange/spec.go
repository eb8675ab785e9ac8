// Package flange resolves nominal bore sizes to flange dimensions.
//
// A record supplied by the flange catalog always wins. Without one the
// embedded SABS 1123 reference table is consulted with a floor match, so a
// bore between two standard sizes rounds down to the smaller flange.
package flange

// Default bolt dimensions used when a catalog record omits them
const (
	DefaultBoltDiameterMm = 16.0
	DefaultBoltLengthMm   = 70.0
)

// Spec holds the dimensions needed to draw and annotate one flange
type Spec struct {
	OuterDiameterMm       float64
	PitchCircleDiameterMm float64
	BoltHoleCount         int
	BoltHoleDiameterMm    float64
	ThicknessMm           float64
	BoltDiameterMm        float64
	BoltLengthMm          float64
	// FromCatalog is true when the dimensions came from the catalog service
	// rather than the embedded reference table.
	FromCatalog bool
}

// CatalogRecord is the flange record supplied by the catalog service.
// Zero bolt dimensions mean the catalog did not provide them.
type CatalogRecord struct {
	FlangeOuterDiameterMm float64 `json:"flangeOdMm" yaml:"flangeOdMm"`
	PitchCircleDiameterMm float64 `json:"flangePcdMm" yaml:"flangePcdMm"`
	HoleCount             int     `json:"flangeNumHoles" yaml:"flangeNumHoles"`
	HoleDiameterMm        float64 `json:"flangeBoltHoleDiameterMm" yaml:"flangeBoltHoleDiameterMm"`
	ThicknessMm           float64 `json:"flangeThicknessMm" yaml:"flangeThicknessMm"`
	BoltDiameterMm        float64 `json:"boltDiameterMm,omitempty" yaml:"boltDiameterMm,omitempty"`
	BoltLengthMm          float64 `json:"boltLengthMm,omitempty" yaml:"boltLengthMm,omitempty"`
}

// Spec maps the record to a Spec, filling default bolt dimensions
func (r CatalogRecord) Spec() Spec {
	spec := Spec{
		OuterDiameterMm:       r.FlangeOuterDiameterMm,
		PitchCircleDiameterMm: r.PitchCircleDiameterMm,
		BoltHoleCount:         r.HoleCount,
		BoltHoleDiameterMm:    r.HoleDiameterMm,
		ThicknessMm:           r.ThicknessMm,
		BoltDiameterMm:        r.BoltDiameterMm,
		BoltLengthMm:          r.BoltLengthMm,
		FromCatalog:           true,
	}
	if spec.BoltDiameterMm <= 0 {
		spec.BoltDiameterMm = DefaultBoltDiameterMm
	}
	if spec.BoltLengthMm <= 0 {
		spec.BoltLengthMm = DefaultBoltLengthMm
	}
	return spec
}

// Resolution is the outcome of resolving a nominal bore
type Resolution struct {
	Spec Spec
	// NominalBoreMm is the table key that was matched, or the requested
	// bore when the spec came from the catalog.
	NominalBoreMm float64
}

// FromCatalog reports the provenance of the resolved spec
func (r Resolution) FromCatalog() bool {
	return r.Spec.FromCatalog
}
