package units

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestUntaggedHeuristic(t *testing.T) {
	tests := []struct {
		value  float64
		meters float64
		unit   Unit
	}{
		{6, 6, Metre},
		{49.9, 49.9, Metre},
		{50, 0.05, Millimetre},
		{6000, 6, Millimetre},
	}

	for _, tt := range tests {
		l := Untagged(tt.value)
		assert.True(t, l.IsAmbiguous())
		assert.Equal(t, tt.unit, l.ResolvedUnit(), "value %v", tt.value)
		assert.InDelta(t, tt.meters, l.Meters(), 1e-12, "value %v", tt.value)
	}
}

func TestTaggedLengthIgnoresHeuristic(t *testing.T) {
	// A 40 m pipe must not be mistaken for 40 mm once tagged.
	forty := Meters(40)
	assert.False(t, forty.IsAmbiguous())
	assert.InDelta(t, 40, forty.Meters(), 1e-12)

	small := Millimetres(30)
	assert.InDelta(t, 0.03, small.Meters(), 1e-12)
	assert.InDelta(t, 30, small.Millimetres(), 1e-9)
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		input string
		want  Length
	}{
		{"6", Untagged(6)},
		{"6m", Meters(6)},
		{"6000mm", Millimetres(6000)},
		{"6.1 m", Meters(6.1)},
		{" 2500 MM ", Millimetres(2500)},
		{"12 metres", Meters(12)},
	}

	for _, tt := range tests {
		got, err := ParseLength(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}

	for _, bad := range []string{"", "m", "6 furlongs", "abc"} {
		_, err := ParseLength(bad)
		assert.Error(t, err, bad)
	}
}

func TestLengthJSON(t *testing.T) {
	var doc struct {
		A Length `json:"a"`
		B Length `json:"b"`
		C Length `json:"c"`
	}
	input := `{"a": 6000, "b": "6m", "c": {"value": 40, "unit": "m"}}`
	require.NoError(t, json.Unmarshal([]byte(input), &doc))

	assert.Equal(t, Untagged(6000), doc.A)
	assert.Equal(t, Meters(6), doc.B)
	assert.Equal(t, Meters(40), doc.C)

	out, err := json.Marshal(doc.C)
	require.NoError(t, err)
	assert.JSONEq(t, `{"value": 40, "unit": "m"}`, string(out))

	out, err = json.Marshal(doc.A)
	require.NoError(t, err)
	assert.Equal(t, "6000", string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"value": 1, "unit": "ft"}`), &doc.A))
}

func TestLengthYAML(t *testing.T) {
	var doc struct {
		A Length `yaml:"a"`
		B Length `yaml:"b"`
		C Length `yaml:"c"`
	}
	input := "a: 12\nb: 3200mm\nc:\n  value: 1.5\n  unit: m\n"
	require.NoError(t, yaml.Unmarshal([]byte(input), &doc))

	assert.Equal(t, Untagged(12), doc.A)
	assert.Equal(t, Millimetres(3200), doc.B)
	assert.Equal(t, Meters(1.5), doc.C)

	assert.Error(t, yaml.Unmarshal([]byte("a: [1, 2]\n"), &doc))
}

func TestLengthIsValid(t *testing.T) {
	assert.True(t, Meters(1).IsValid())
	assert.False(t, Meters(0).IsValid())
	assert.False(t, Meters(-1).IsValid())
	assert.False(t, Meters(math.NaN()).IsValid())
	assert.False(t, Meters(math.Inf(1)).IsValid())
	assert.Equal(t, "6.00m", Millimetres(6000).String())
}
