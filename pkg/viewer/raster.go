package viewer

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// Frame is a colour image with a depth buffer
type Frame struct {
	Image *image.RGBA
	depth []float64
}

// NewFrame allocates a frame filled with the background colour
func NewFrame(width, height int, background color.Color) *Frame {
	f := &Frame{
		Image: image.NewRGBA(image.Rect(0, 0, width, height)),
		depth: make([]float64, width*height),
	}
	draw.Draw(f.Image, f.Image.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	for i := range f.depth {
		f.depth[i] = math.Inf(1)
	}
	return f
}

// vertex is a projected point: screen x, y and view depth z
type vertex struct {
	x, y, z float64
}

// edgeAt intersects scanline fy with edge a-b
func edgeAt(a, b vertex, fy float64) (float64, float64, bool) {
	if a.y == b.y || fy < a.y || fy > b.y {
		return 0, 0, false
	}
	t := (fy - a.y) / (b.y - a.y)
	return a.x + t*(b.x-a.x), a.z + t*(b.z-a.z), true
}

// FillTriangle fills a triangle with depth testing; smaller z is closer
func (f *Frame) FillTriangle(a, b, c vertex, col color.RGBA) {
	// Sort by y, top to bottom
	if a.y > b.y {
		a, b = b, a
	}
	if b.y > c.y {
		b, c = c, b
	}
	if a.y > b.y {
		a, b = b, a
	}

	bounds := f.Image.Bounds()
	width := bounds.Dx()

	for y := int(math.Max(0, math.Ceil(a.y))); y <= int(math.Min(float64(bounds.Max.Y-1), c.y)); y++ {
		fy := float64(y)

		// The long edge always spans the scanline; pair it with whichever
		// short edge does.
		xLong, zLong, ok := edgeAt(a, c, fy)
		if !ok {
			continue
		}
		xShort, zShort, ok := edgeAt(a, b, fy)
		if !ok {
			if xShort, zShort, ok = edgeAt(b, c, fy); !ok {
				continue
			}
		}

		xStart, zStart, xEnd, zEnd := xLong, zLong, xShort, zShort
		if xStart > xEnd {
			xStart, xEnd = xEnd, xStart
			zStart, zEnd = zEnd, zStart
		}

		for x := int(math.Max(0, math.Ceil(xStart))); x <= int(math.Min(float64(width-1), xEnd)); x++ {
			t := 0.0
			if xEnd != xStart {
				t = (float64(x) - xStart) / (xEnd - xStart)
			}
			z := zStart + t*(zEnd-zStart)

			idx := y*width + x
			if z < f.depth[idx] {
				f.depth[idx] = z
				f.Image.SetRGBA(x, y, col)
			}
		}
	}
}

// Line draws a line with Bresenham's algorithm, ignoring depth. A dash
// length above zero alternates drawn and skipped runs of that many pixels.
func (f *Frame) Line(x1, y1, x2, y2 int, col color.RGBA, dash int) {
	bounds := f.Image.Bounds()

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for step := 0; ; step++ {
		visible := dash <= 0 || (step/dash)%2 == 0
		if visible && x1 >= 0 && x1 < bounds.Max.X && y1 >= 0 && y1 < bounds.Max.Y {
			f.Image.SetRGBA(x1, y1, col)
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// ThickLine draws a line of the given pixel width
func (f *Frame) ThickLine(x1, y1, x2, y2 float64, col color.RGBA, width, dash int) {
	if width <= 1 {
		f.Line(round(x1), round(y1), round(x2), round(y2), col, dash)
		return
	}
	nx, ny := -(y2 - y1), x2-x1
	l := math.Hypot(nx, ny)
	if l == 0 {
		return
	}
	nx, ny = nx/l, ny/l
	for i := 0; i < width; i++ {
		o := float64(i) - float64(width-1)/2
		f.Line(round(x1+nx*o), round(y1+ny*o), round(x2+nx*o), round(y2+ny*o), col, dash)
	}
}

func round(v float64) int {
	return int(math.Round(v))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
