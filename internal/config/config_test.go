package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gopipe/pkg/flange"
	"github.com/philipparndt/gopipe/pkg/pipe"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestResolveEmptyGivesDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})
	assert.Equal(t, Default(), cfg)
}

func TestLoadAndResolve(t *testing.T) {
	path := writeConfig(t, `
[window]
width = 1600
fps = 30

[debounce]
geometry = "250ms"
camera_save = "1s"

[flange]
standard = "ASME B16.5"
catalog = "flanges.yaml"

[snapshot]
format = "webp"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	cfg.Resolve(Flags{})

	assert.Equal(t, 1600, cfg.Window.Width)
	assert.Equal(t, 800, cfg.Window.Height)
	assert.Equal(t, 30, cfg.Window.FPS)
	assert.Equal(t, 250*time.Millisecond, cfg.Debounce.Geometry)
	assert.Equal(t, 150*time.Millisecond, cfg.Debounce.Secondary)
	assert.Equal(t, time.Second, cfg.Debounce.CameraSave)
	assert.Equal(t, "ASME B16.5", cfg.Flange.Standard)
	assert.Equal(t, "1000/3", cfg.Flange.PressureClass)
	assert.Equal(t, "flanges.yaml", cfg.Flange.CatalogPath)
	assert.Equal(t, "webp", cfg.Snapshot.Format)
	assert.Equal(t, 2, cfg.Snapshot.Supersample)
}

func TestFlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, `
[window]
width = 1600

[flange]
standard = "ASME B16.5"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	cfg.Resolve(Flags{Width: 640, Standard: "SANS 1123", Format: "webp", Supersample: 4})

	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 640, cfg.Snapshot.Width)
	assert.Equal(t, "SANS 1123", cfg.Flange.Standard)
	assert.Equal(t, "webp", cfg.Snapshot.Format)
	assert.Equal(t, 4, cfg.Snapshot.Supersample)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "[window\nwidth = 1"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "[window]\nwdith = 1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "window.wdith")

	_, err = Load(writeConfig(t, "[debounce]\ngeometry = \"soon\"\n"))
	assert.Error(t, err)
}

func TestLoadOrDefault(t *testing.T) {
	_, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err, "an explicit path must exist")

	cfg, err := LoadOrDefault(writeConfig(t, "[window]\nfps = 24\n"))
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.Window.FPS)
}

func TestFlangeApply(t *testing.T) {
	f := Default().Flange

	p := f.Apply(pipe.Parameters{})
	assert.Equal(t, flange.ReferenceStandard, p.FlangeStandard)
	assert.Equal(t, "SABS 1123 T1000/3", flange.Designation(p.FlangeStandard, p.PressureClass, p.FlangeTypeCode))

	p = f.Apply(pipe.Parameters{FlangeStandard: "ASME B16.5", PressureClass: "150"})
	assert.Equal(t, "ASME B16.5", p.FlangeStandard)
	assert.Equal(t, "150", p.PressureClass)
	assert.Equal(t, "/3", p.FlangeTypeCode)
}

func TestFlangeCatalog(t *testing.T) {
	c, err := Flange{}.Catalog()
	require.NoError(t, err)
	assert.Nil(t, c)

	_, err = Flange{CatalogPath: filepath.Join(t.TempDir(), "missing.yaml")}.Catalog()
	assert.Error(t, err)
}
