package flange

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceTableShape(t *testing.T) {
	table := ReferenceTable()

	sizes := table.Sizes()
	require.Len(t, sizes, 19)
	assert.Equal(t, 15.0, sizes[0])
	assert.Equal(t, 600.0, sizes[len(sizes)-1])
	for i := 1; i < len(sizes); i++ {
		assert.Less(t, sizes[i-1], sizes[i])
	}
}

func TestResolveExactMatchReturnsRow(t *testing.T) {
	r := NewResolver()
	for _, row := range r.Table().Rows {
		res := r.Resolve(row.NominalBoreMm, nil)
		assert.Equal(t, row.Spec(), res.Spec, "nb %v", row.NominalBoreMm)
		assert.False(t, res.FromCatalog())
		assert.Equal(t, row.NominalBoreMm, res.NominalBoreMm)
	}

	res := r.Resolve(80, nil)
	assert.Equal(t, Spec{
		OuterDiameterMm:       200,
		PitchCircleDiameterMm: 160,
		BoltHoleCount:         8,
		BoltHoleDiameterMm:    18,
		ThicknessMm:           18,
		BoltDiameterMm:        16,
		BoltLengthMm:          70,
	}, res.Spec)
}

func TestResolveFloorMatch(t *testing.T) {
	r := NewResolver()

	tests := []struct {
		bore float64
		want float64
	}{
		{0, 15},
		{-40, 15},
		{14.9, 15},
		{19.99, 15},
		{99, 80},
		{160, 150},
		{599, 500},
		{600, 600},
		{2000, 600},
		{math.Inf(1), 600},
		{math.Inf(-1), 15},
		{math.NaN(), 15},
	}

	for _, tt := range tests {
		res := r.Resolve(tt.bore, nil)
		assert.Equal(t, tt.want, res.NominalBoreMm, "bore %v", tt.bore)
		assert.False(t, res.FromCatalog())
	}
}

func TestResolveExternalRecord(t *testing.T) {
	r := NewResolver()

	record := &CatalogRecord{
		FlangeOuterDiameterMm: 210,
		PitchCircleDiameterMm: 170,
		HoleCount:             8,
		HoleDiameterMm:        19,
		ThicknessMm:           21,
	}
	res := r.Resolve(80, record)

	assert.True(t, res.FromCatalog())
	assert.Equal(t, 210.0, res.Spec.OuterDiameterMm)
	assert.Equal(t, DefaultBoltDiameterMm, res.Spec.BoltDiameterMm)
	assert.Equal(t, DefaultBoltLengthMm, res.Spec.BoltLengthMm)

	record.BoltDiameterMm = 20
	record.BoltLengthMm = 90
	res = r.Resolve(80, record)
	assert.Equal(t, 20.0, res.Spec.BoltDiameterMm)
	assert.Equal(t, 90.0, res.Spec.BoltLengthMm)
}

func TestParseTableErrors(t *testing.T) {
	_, err := ParseTable([]byte("rows: []"))
	assert.Error(t, err)

	_, err = ParseTable([]byte("rows:\n  - {nb: 15}\n  - {nb: 15}\n"))
	assert.Error(t, err)

	_, err = ParseTable([]byte("rows: {"))
	assert.Error(t, err)

	custom, err := ParseTable([]byte("table: custom\nrows:\n  - {nb: 50, flangeOD: 1}\n  - {nb: 25, flangeOD: 2}\n"))
	require.NoError(t, err)
	assert.Equal(t, []float64{25, 50}, custom.Sizes())

	r := NewResolver(WithTable(custom))
	assert.Equal(t, 2.0, r.Resolve(30, nil).Spec.OuterDiameterMm)
}

func TestDesignation(t *testing.T) {
	tests := []struct {
		standard, pressure, typeCode string
		want                         string
	}{
		{"SABS 1123", "1000/3", "/3", "SABS 1123 T1000/3"},
		{"SABS 1123", "1600", "/4", "SABS 1123 T1600/4"},
		{"", "1000/3", "/3", "SABS 1123 T1000/3"},
		{"BS 4504", "PN16/3", "/3", "BS 4504 TPN16/3"},
		{"ASME B16.5", "", "", "ASME B16.5"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Designation(tt.standard, tt.pressure, tt.typeCode))
	}
}

func TestCaveat(t *testing.T) {
	assert.True(t, IsFallbackFriendly("SABS 1123"))
	assert.True(t, IsFallbackFriendly("sans 1123"))
	assert.False(t, IsFallbackFriendly("ASME B16.5"))

	assert.Empty(t, Caveat("SABS 1123", false))
	assert.Empty(t, Caveat("ASME B16.5", true))
	assert.Equal(t, "Data not available for ASME B16.5 - showing SABS 1123 reference values", Caveat("ASME B16.5", false))
}

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const catalogYAML = `
- nominalBoreMm: 100
  standard: ASME B16.5
  pressureClass: "150"
  flangeOdMm: 229
  flangePcdMm: 190.5
  flangeNumHoles: 8
  flangeBoltHoleDiameterMm: 19
  flangeThicknessMm: 24
- nominalBoreMm: 100
  standard: ASME B16.5
  pressureClass: "300"
  flangeOdMm: 254
  flangePcdMm: 200
  flangeNumHoles: 8
  flangeBoltHoleDiameterMm: 22
  flangeThicknessMm: 32
  boltDiameterMm: 20
  boltLengthMm: 110
`

func TestFileCatalogLookup(t *testing.T) {
	catalog, err := LoadFileCatalog(writeCatalog(t, catalogYAML))
	require.NoError(t, err)
	assert.Equal(t, 2, catalog.Len())

	ctx := context.Background()
	record, err := catalog.Lookup(ctx, Query{NominalBoreMm: 100, Standard: "asme b16.5", PressureClass: "300"})
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, 254.0, record.FlangeOuterDiameterMm)
	assert.Equal(t, 110.0, record.BoltLengthMm)

	record, err = catalog.Lookup(ctx, Query{NominalBoreMm: 100, Standard: "ASME B16.5"})
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, 229.0, record.FlangeOuterDiameterMm)

	record, err = catalog.Lookup(ctx, Query{NominalBoreMm: 150, Standard: "ASME B16.5"})
	require.NoError(t, err)
	assert.Nil(t, record)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = catalog.Lookup(cancelled, Query{NominalBoreMm: 100})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileCatalogReloadKeepsEntriesOnError(t *testing.T) {
	path := writeCatalog(t, catalogYAML)
	catalog, err := LoadFileCatalog(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("- {nominalBoreMm: ["), 0644))
	assert.Error(t, catalog.Reload())
	assert.Equal(t, 2, catalog.Len())

	_, err = LoadFileCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

type failingCatalog struct{ err error }

func (f failingCatalog) Lookup(context.Context, Query) (*CatalogRecord, error) {
	return nil, f.err
}

func TestResolveFromFallsBackOnError(t *testing.T) {
	r := NewResolver()
	boom := errors.New("catalog offline")

	res, err := r.ResolveFrom(context.Background(), failingCatalog{err: boom}, Query{NominalBoreMm: 100})
	assert.ErrorIs(t, err, boom)
	assert.False(t, res.FromCatalog())
	assert.Equal(t, 220.0, res.Spec.OuterDiameterMm)

	res, err = r.ResolveFrom(context.Background(), nil, Query{NominalBoreMm: 100})
	require.NoError(t, err)
	assert.False(t, res.FromCatalog())

	catalog, err := LoadFileCatalog(writeCatalog(t, catalogYAML))
	require.NoError(t, err)
	res, err = r.ResolveFrom(context.Background(), catalog, Query{NominalBoreMm: 100, Standard: "ASME B16.5", PressureClass: "150"})
	require.NoError(t, err)
	assert.True(t, res.FromCatalog())
	assert.Equal(t, 229.0, res.Spec.OuterDiameterMm)
}
