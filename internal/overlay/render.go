// Package overlay draws the 2D annotation layer of the interactive
// viewer: dimension lines, scene labels and the specification panel.
package overlay

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/gopipe/pkg/annotation"
	"github.com/philipparndt/gopipe/pkg/geometry"
	"github.com/philipparndt/gopipe/pkg/scene"
)

// RenderContext holds everything needed to draw the overlay
type RenderContext struct {
	Camera   rl.Camera3D
	Font     rl.Font
	FontSize float32
}

const (
	lineThickness = 2
	arrowSize     = 9
	tickSize      = 8
	dashLength    = 6
)

// Vec3 converts a scene vector to raylib
func Vec3(v geometry.Vector3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

// Color converts a scene colour to raylib
func Color(c color.NRGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

// InFront reports whether p lies in front of the camera
func InFront(cam rl.Camera3D, p geometry.Vector3) bool {
	forward := geometry.NewVector3(
		float64(cam.Target.X-cam.Position.X),
		float64(cam.Target.Y-cam.Position.Y),
		float64(cam.Target.Z-cam.Position.Z),
	)
	eye := geometry.NewVector3(float64(cam.Position.X), float64(cam.Position.Y), float64(cam.Position.Z))
	return p.Sub(eye).Dot(forward) > 0
}

// DashSegments splits a-b into drawn runs of dash pixels separated by gaps
// of the same length.
func DashSegments(a, b rl.Vector2, dash float32) [][2]rl.Vector2 {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if dash <= 0 || length <= dash {
		return [][2]rl.Vector2{{a, b}}
	}

	ux, uy := dx/length, dy/length
	var segments [][2]rl.Vector2
	for start := float32(0); start < length; start += 2 * dash {
		end := min(start+dash, length)
		segments = append(segments, [2]rl.Vector2{
			{X: a.X + ux*start, Y: a.Y + uy*start},
			{X: a.X + ux*end, Y: a.Y + uy*end},
		})
	}
	return segments
}

// DrawDimensions draws every dimension line in screen space
func DrawDimensions(ctx RenderContext, dims []scene.Dimension) {
	for _, d := range dims {
		if !InFront(ctx.Camera, d.Start) || !InFront(ctx.Camera, d.Stop) {
			continue
		}
		a := rl.GetWorldToScreen(Vec3(d.Start), ctx.Camera)
		b := rl.GetWorldToScreen(Vec3(d.Stop), ctx.Camera)
		col := Color(d.Color)

		if d.Dashed {
			for _, s := range DashSegments(a, b, dashLength) {
				rl.DrawLineEx(s[0], s[1], lineThickness, col)
			}
		} else {
			rl.DrawLineEx(a, b, lineThickness, col)
		}

		dir := rl.Vector2Normalize(rl.Vector2Subtract(b, a))
		normal := rl.Vector2{X: -dir.Y, Y: dir.X}
		if d.Arrows {
			drawArrowHead(a, dir, normal, col)
			drawArrowHead(b, rl.Vector2Negate(dir), normal, col)
		}
		if d.Ticks {
			for _, p := range []rl.Vector2{a, b} {
				rl.DrawLineEx(
					rl.Vector2Add(p, rl.Vector2Scale(normal, tickSize/2)),
					rl.Vector2Subtract(p, rl.Vector2Scale(normal, tickSize/2)),
					lineThickness, col)
			}
		}
	}
}

// drawArrowHead draws a filled arrow at tip pointing against dir
func drawArrowHead(tip, dir, normal rl.Vector2, col rl.Color) {
	base := rl.Vector2Add(tip, rl.Vector2Scale(dir, arrowSize))
	left := rl.Vector2Add(base, rl.Vector2Scale(normal, arrowSize/2))
	right := rl.Vector2Subtract(base, rl.Vector2Scale(normal, arrowSize/2))
	// raylib wants counter-clockwise vertices
	rl.DrawTriangle(tip, right, left, col)
	rl.DrawTriangle(tip, left, right, col)
}

// DrawLabels draws dimension texts and free scene labels
func DrawLabels(ctx RenderContext, dims []scene.Dimension, labels []scene.Label) {
	draw := func(at geometry.Vector3, text string, c color.NRGBA, border bool) {
		if text == "" || !InFront(ctx.Camera, at) {
			return
		}
		l := Label{
			Text:      text,
			ScreenPos: rl.GetWorldToScreen(Vec3(at), ctx.Camera),
			Color:     Color(c),
			Border:    border,
		}
		l.Draw(ctx.Font, ctx.FontSize, 3)
	}

	for _, d := range dims {
		draw(d.LabelAt, d.Text, d.Color, false)
	}
	for _, l := range labels {
		draw(l.Position, l.Text, l.Color, true)
	}
}

// DrawSummary draws the specification panel with its top left corner at
// (x, y) and returns the panel bounds.
func DrawSummary(ctx RenderContext, lines []annotation.Line, x, y float32) rl.Rectangle {
	const padding = 10
	lineHeight := ctx.FontSize + 4

	width := float32(0)
	for _, l := range lines {
		size := ctx.FontSize
		if l.Style == annotation.Heading {
			size += 2
		}
		width = max(width, rl.MeasureTextEx(ctx.Font, l.Text, size, 1).X)
	}

	panel := rl.Rectangle{
		X:      x,
		Y:      y,
		Width:  width + 2*padding,
		Height: float32(len(lines))*lineHeight + 2*padding,
	}
	rl.DrawRectangleRec(panel, rl.NewColor(255, 255, 255, 235))
	rl.DrawRectangleLinesEx(panel, 1, rl.NewColor(209, 213, 219, 255))

	ty := y + padding
	for _, l := range lines {
		size := ctx.FontSize
		if l.Style == annotation.Heading {
			size += 2
		}
		rl.DrawTextEx(ctx.Font, l.Text, rl.Vector2{X: x + padding, Y: ty}, size, 1, Color(l.Style.Color()))
		ty += lineHeight
	}
	return panel
}
