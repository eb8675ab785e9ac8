package mesh

import (
	"image/color"
	"math"

	"github.com/philipparndt/gopipe/pkg/geometry"
)

// Light is a directional light with an ambient floor
type Light struct {
	Direction geometry.Vector3
	Ambient   float64
}

// DefaultLight shines down and away from the viewer
func DefaultLight() Light {
	return Light{Direction: geometry.NewVector3(-0.5, -1.0, -0.5).Normalize(), Ambient: 0.3}
}

// Shade applies diffuse lighting to the face colour
func (l Light) Shade(f Face) color.NRGBA {
	return l.ShadeColor(f.Color, f.Normal)
}

// ShadeColor applies diffuse lighting to col for a surface with normal n
func (l Light) ShadeColor(col color.NRGBA, n geometry.Vector3) color.NRGBA {
	intensity := math.Max(l.Ambient, -n.Dot(l.Direction))
	intensity = math.Min(1, intensity)
	return color.NRGBA{
		R: uint8(float64(col.R) * intensity),
		G: uint8(float64(col.G) * intensity),
		B: uint8(float64(col.B) * intensity),
		A: col.A,
	}
}
