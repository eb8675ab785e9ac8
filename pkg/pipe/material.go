package pipe

import (
	"image/color"
	"strings"
)

// DisplayMaterial is the shading used for the pipe body
type DisplayMaterial struct {
	Name      string
	Color     color.NRGBA
	Metalness float64
	Roughness float64
}

var (
	galvanized = DisplayMaterial{Name: "Galvanized Steel", Color: color.NRGBA{0xC0, 0xC0, 0xC0, 0xFF}, Metalness: 0.4, Roughness: 0.5}
	stainless  = DisplayMaterial{Name: "Stainless Steel", Color: color.NRGBA{0xE0, 0xE0, 0xE0, 0xFF}, Metalness: 0.9, Roughness: 0.15}
	plastic    = DisplayMaterial{Name: "PVC/Plastic", Color: color.NRGBA{0xE6, 0xF2, 0xFF, 0xFF}, Metalness: 0.1, Roughness: 0.9}
	carbon     = DisplayMaterial{Name: "Carbon Steel", Color: color.NRGBA{0x4A, 0x4A, 0x4A, 0xFF}, Metalness: 0.6, Roughness: 0.7}
)

// MaterialFor maps a free text material specification to a display material
func MaterialFor(name string) DisplayMaterial {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "sabs 62"):
		return galvanized
	case strings.Contains(n, "stainless"), strings.Contains(n, "304"), strings.Contains(n, "316"):
		return stainless
	case strings.Contains(n, "pvc"), strings.Contains(n, "plastic"):
		return plastic
	default:
		return carbon
	}
}
