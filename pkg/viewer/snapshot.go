package viewer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"

	"github.com/philipparndt/gopipe/internal/camera"
	"github.com/philipparndt/gopipe/pkg/annotation"
	"github.com/philipparndt/gopipe/pkg/geometry"
	"github.com/philipparndt/gopipe/pkg/mesh"
	"github.com/philipparndt/gopipe/pkg/scene"
)

// Format is an image output format
type Format string

const (
	PNG  Format = "png"
	WebP Format = "webp"
)

// ParseFormat accepts "png" and "webp" in any case
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return PNG, nil
	case "webp":
		return WebP, nil
	default:
		return "", fmt.Errorf("unsupported image format %q", s)
	}
}

// FormatFromPath picks the format from the file extension
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// SnapshotOptions controls offline rendering
type SnapshotOptions struct {
	Width  int
	Height int
	// Supersample renders at this multiple of the output size and
	// downscales, smoothing triangle edges
	Supersample int
	Background  color.Color
	Light       mesh.Light
	Mesh        mesh.Options
	// Overlay draws the specification summary panel
	Overlay bool
}

// DefaultSnapshotOptions renders 1280x720 at 2x supersampling
func DefaultSnapshotOptions() SnapshotOptions {
	return SnapshotOptions{
		Width:       1280,
		Height:      720,
		Supersample: 2,
		Background:  color.NRGBA{0xf0, 0xf0, 0xf0, 0xff},
		Light:       mesh.DefaultLight(),
		Mesh:        mesh.DefaultOptions(),
		Overlay:     true,
	}
}

func toRGBA(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}

// Renderer draws one scene from arbitrary poses. The mesh is tessellated
// once in NewRenderer.
type Renderer struct {
	scene scene.Scene
	mesh  mesh.Mesh
	opts  SnapshotOptions
}

// NewRenderer tessellates the scene and fills unset options with defaults
func NewRenderer(s scene.Scene, opts SnapshotOptions) *Renderer {
	d := DefaultSnapshotOptions()
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = d.Width, d.Height
	}
	if opts.Supersample < 1 {
		opts.Supersample = 1
	}
	if opts.Background == nil {
		opts.Background = d.Background
	}
	if opts.Light.Direction.Length() == 0 {
		opts.Light = d.Light
	}
	if opts.Mesh.Segments == 0 {
		opts.Mesh = d.Mesh
	}
	return &Renderer{scene: s, mesh: mesh.Build(s, opts.Mesh), opts: opts}
}

// Scene returns the scene being drawn
func (r *Renderer) Scene() scene.Scene {
	return r.scene
}

// Render draws the scene at the configured size
func (r *Renderer) Render(pose camera.Pose) *image.RGBA {
	return r.RenderSize(pose, r.opts.Width, r.opts.Height)
}

// RenderSize draws the scene at width x height pixels
func (r *Renderer) RenderSize(pose camera.Pose, width, height int) *image.RGBA {
	width, height = max(width, 1), max(height, 1)
	ss := r.opts.Supersample
	cam := NewCamera(pose)

	frame := NewFrame(width*ss, height*ss, r.opts.Background)
	drawMesh(frame, cam, r.mesh, r.opts.Light)
	for _, d := range r.scene.Dimensions {
		drawDimension(frame, cam, d, ss)
	}

	img := frame.Image
	if ss > 1 {
		img = image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(img, img.Bounds(), frame.Image, frame.Image.Bounds(), draw.Src, nil)
	}

	// Text is drawn at output resolution so the bitmap font stays crisp
	project := func(p geometry.Vector3) (int, int, bool) {
		x, y, z := cam.Project(p, float64(width), float64(height))
		return round(x), round(y), z > 0
	}
	for _, d := range r.scene.Dimensions {
		if d.Text == "" {
			continue
		}
		if x, y, ok := project(d.LabelAt); ok {
			drawCenteredText(img, x, y, d.Text, d.Color)
		}
	}
	for _, l := range r.scene.Labels {
		if x, y, ok := project(l.Position); ok {
			drawCenteredText(img, x, y, l.Text, l.Color)
		}
	}
	if r.opts.Overlay {
		drawSummary(img, r.scene.Summary.Lines())
	}
	return img
}

// Snapshot renders the scene as seen from pose
func Snapshot(s scene.Scene, pose camera.Pose, opts SnapshotOptions) *image.RGBA {
	return NewRenderer(s, opts).Render(pose)
}

// drawMesh rasterises every face that faces the camera
func drawMesh(f *Frame, cam *Camera, m mesh.Mesh, light mesh.Light) {
	w, h := float64(f.Image.Bounds().Dx()), float64(f.Image.Bounds().Dy())
	for _, tri := range m.Faces {
		if tri.Normal.Dot(tri.Center().Sub(cam.Position)) > 0 {
			continue
		}

		var v [3]vertex
		visible := true
		for i, p := range []geometry.Vector3{tri.V1, tri.V2, tri.V3} {
			x, y, z := cam.Project(p, w, h)
			if z <= 0.01 {
				visible = false
				break
			}
			v[i] = vertex{x, y, z}
		}
		if !visible {
			continue
		}
		f.FillTriangle(v[0], v[1], v[2], toRGBA(light.Shade(tri)))
	}
}

// drawDimension draws a dimension line with its arrow heads or ticks
func drawDimension(f *Frame, cam *Camera, d scene.Dimension, scale int) {
	w, h := float64(f.Image.Bounds().Dx()), float64(f.Image.Bounds().Dy())
	x1, y1, z1 := cam.Project(d.Start, w, h)
	x2, y2, z2 := cam.Project(d.Stop, w, h)
	if z1 <= 0 || z2 <= 0 {
		return
	}

	col := toRGBA(d.Color)
	dash := 0
	if d.Dashed {
		dash = 6 * scale
	}
	f.ThickLine(x1, y1, x2, y2, col, 2*scale, dash)

	dx, dy := x2-x1, y2-y1
	l := math.Hypot(dx, dy)
	if l < 1 {
		return
	}
	ux, uy := dx/l, dy/l
	size := 8 * float64(scale)

	if d.Arrows {
		for _, end := range []struct{ x, y, dir float64 }{{x1, y1, 1}, {x2, y2, -1}} {
			bx, by := end.x+ux*size*end.dir, end.y+uy*size*end.dir
			f.ThickLine(end.x, end.y, bx-uy*size/2, by+ux*size/2, col, scale, 0)
			f.ThickLine(end.x, end.y, bx+uy*size/2, by-ux*size/2, col, scale, 0)
		}
	}
	if d.Ticks {
		for _, p := range [][2]float64{{x1, y1}, {x2, y2}} {
			f.ThickLine(p[0]-uy*size/2, p[1]+ux*size/2, p[0]+uy*size/2, p[1]-ux*size/2, col, scale, 0)
		}
	}
}

// drawSummary draws the specification panel in the top left corner
func drawSummary(img draw.Image, lines []annotation.Line) {
	if len(lines) == 0 {
		return
	}
	const pad = 8

	width := 0
	for _, l := range lines {
		width = max(width, textWidth(l.Text))
	}
	panel := image.Rect(pad, pad, pad+width+2*pad, pad+len(lines)*lineHeight+2*pad)
	draw.Draw(img, panel, image.NewUniform(color.NRGBA{0xff, 0xff, 0xff, 0xf0}), image.Point{}, draw.Over)

	y := panel.Min.Y + pad + face.Ascent
	for _, l := range lines {
		drawText(img, panel.Min.X+pad, y, l.Text, l.Style.Color())
		y += lineHeight
	}
}

// Encode writes img in the given format. WebP output is lossless.
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case PNG:
		return png.Encode(w, img)
	case WebP:
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("WebP encode: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
}

// WriteFile encodes img to path, picking the format from the extension
func WriteFile(path string, img image.Image) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Encode(f, img, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
