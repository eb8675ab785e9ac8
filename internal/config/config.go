// Package config loads the gopipe TOML configuration and merges command
// line overrides into it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/philipparndt/gopipe/internal/camera"
	"github.com/philipparndt/gopipe/internal/debounce"
	"github.com/philipparndt/gopipe/pkg/flange"
	"github.com/philipparndt/gopipe/pkg/pipe"
)

// Config holds all configurable settings
type Config struct {
	Window   Window   `toml:"window"`
	Debounce Debounce `toml:"debounce"`
	Flange   Flange   `toml:"flange"`
	Snapshot Snapshot `toml:"snapshot"`
}

// Window settings of the interactive viewer
type Window struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
	FPS    int `toml:"fps"`
}

// Debounce delays. TOML values are duration strings such as "100ms".
type Debounce struct {
	Geometry   time.Duration `toml:"geometry"`
	Secondary  time.Duration `toml:"secondary"`
	CameraSave time.Duration `toml:"camera_save"`
	Watch      time.Duration `toml:"watch"`
}

// Flange defaults applied to parameters that leave them empty
type Flange struct {
	Standard      string `toml:"standard"`
	PressureClass string `toml:"pressure_class"`
	TypeCode      string `toml:"type_code"`
	CatalogPath   string `toml:"catalog"`
}

// Snapshot render settings
type Snapshot struct {
	Width       int    `toml:"width"`
	Height      int    `toml:"height"`
	Supersample int    `toml:"supersample"`
	Format      string `toml:"format"`
}

// Flags holds CLI flag values that override config file settings
type Flags struct {
	Width         int
	Height        int
	FPS           int
	Standard      string
	PressureClass string
	CatalogPath   string
	Supersample   int
	Format        string
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Window: Window{Width: 1280, Height: 800, FPS: 60},
		Debounce: Debounce{
			Geometry:   debounce.GeometryDelay,
			Secondary:  debounce.SecondaryDelay,
			CameraSave: camera.SaveDelay,
			Watch:      200 * time.Millisecond,
		},
		Flange: Flange{
			Standard:      flange.ReferenceStandard,
			PressureClass: "1000/3",
			TypeCode:      "/3",
		},
		Snapshot: Snapshot{Width: 1280, Height: 720, Supersample: 2, Format: "png"},
	}
}

// DefaultPath is config.toml in the user's gopipe config directory
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "gopipe", "config.toml")
}

// Load reads a TOML config file. Fields not set in the file keep their
// zero values until Resolve fills them.
func Load(path string) (Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config: unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// LoadOrDefault loads path, or DefaultPath when path is empty. A missing
// default file is not an error; a missing explicit file is.
func LoadOrDefault(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return Config{}, nil
		}
	}

	cfg, err := Load(path)
	if err != nil && !explicit && errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	return cfg, err
}

// Resolve applies the flags and fills every zero field with its default.
// CLI flags take priority when non-zero.
func (c *Config) Resolve(flags Flags) {
	if flags.Width > 0 {
		c.Window.Width = flags.Width
		c.Snapshot.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Window.Height = flags.Height
		c.Snapshot.Height = flags.Height
	}
	if flags.FPS > 0 {
		c.Window.FPS = flags.FPS
	}
	if flags.Standard != "" {
		c.Flange.Standard = flags.Standard
	}
	if flags.PressureClass != "" {
		c.Flange.PressureClass = flags.PressureClass
	}
	if flags.CatalogPath != "" {
		c.Flange.CatalogPath = flags.CatalogPath
	}
	if flags.Supersample > 0 {
		c.Snapshot.Supersample = flags.Supersample
	}
	if flags.Format != "" {
		c.Snapshot.Format = flags.Format
	}

	d := Default()
	fillInt(&c.Window.Width, d.Window.Width)
	fillInt(&c.Window.Height, d.Window.Height)
	fillInt(&c.Window.FPS, d.Window.FPS)
	fillDuration(&c.Debounce.Geometry, d.Debounce.Geometry)
	fillDuration(&c.Debounce.Secondary, d.Debounce.Secondary)
	fillDuration(&c.Debounce.CameraSave, d.Debounce.CameraSave)
	fillDuration(&c.Debounce.Watch, d.Debounce.Watch)
	fillString(&c.Flange.Standard, d.Flange.Standard)
	fillString(&c.Flange.PressureClass, d.Flange.PressureClass)
	fillString(&c.Flange.TypeCode, d.Flange.TypeCode)
	fillInt(&c.Snapshot.Width, d.Snapshot.Width)
	fillInt(&c.Snapshot.Height, d.Snapshot.Height)
	fillInt(&c.Snapshot.Supersample, d.Snapshot.Supersample)
	fillString(&c.Snapshot.Format, d.Snapshot.Format)
}

func fillInt(v *int, def int) {
	if *v <= 0 {
		*v = def
	}
}

func fillDuration(v *time.Duration, def time.Duration) {
	if *v <= 0 {
		*v = def
	}
}

func fillString(v *string, def string) {
	if strings.TrimSpace(*v) == "" {
		*v = def
	}
}

// Apply fills the flange fields the parameters leave empty
func (f Flange) Apply(p pipe.Parameters) pipe.Parameters {
	if p.FlangeStandard == "" {
		p.FlangeStandard = f.Standard
	}
	if p.PressureClass == "" {
		p.PressureClass = f.PressureClass
	}
	if p.FlangeTypeCode == "" {
		p.FlangeTypeCode = f.TypeCode
	}
	return p
}

// Catalog opens the configured catalog file, or returns nil when none is
// configured.
func (f Flange) Catalog() (*flange.FileCatalog, error) {
	if f.CatalogPath == "" {
		return nil, nil
	}
	return flange.LoadFileCatalog(f.CatalogPath)
}
