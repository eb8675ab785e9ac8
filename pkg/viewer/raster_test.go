package viewer

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	red  = color.RGBA{255, 0, 0, 255}
	blue = color.RGBA{0, 0, 255, 255}
	bg   = color.RGBA{255, 255, 255, 255}
)

func TestFillTriangleCoversInterior(t *testing.T) {
	f := NewFrame(20, 20, bg)
	f.FillTriangle(vertex{2, 2, 1}, vertex{18, 2, 1}, vertex{2, 18, 1}, red)

	assert.Equal(t, red, f.Image.RGBAAt(4, 4))
	assert.Equal(t, bg, f.Image.RGBAAt(17, 17))
}

func TestDepthTest(t *testing.T) {
	f := NewFrame(10, 10, bg)
	f.FillTriangle(vertex{0, 0, 2}, vertex{9, 0, 2}, vertex{0, 9, 2}, red)
	f.FillTriangle(vertex{0, 0, 1}, vertex{9, 0, 1}, vertex{0, 9, 1}, blue)
	f.FillTriangle(vertex{0, 0, 3}, vertex{9, 0, 3}, vertex{0, 9, 3}, red)

	assert.Equal(t, blue, f.Image.RGBAAt(2, 2))
}

func TestFillTriangleOffscreen(t *testing.T) {
	f := NewFrame(10, 10, bg)
	f.FillTriangle(vertex{-100, -100, 1}, vertex{200, -100, 1}, vertex{-100, 200, 1}, red)
	assert.Equal(t, red, f.Image.RGBAAt(0, 0))

	f = NewFrame(10, 10, bg)
	f.FillTriangle(vertex{20, 20, 1}, vertex{30, 20, 1}, vertex{20, 30, 1}, red)
	assert.Equal(t, bg, f.Image.RGBAAt(9, 9))
}

func TestDashedLine(t *testing.T) {
	f := NewFrame(20, 3, bg)
	f.Line(0, 1, 19, 1, red, 4)

	assert.Equal(t, red, f.Image.RGBAAt(0, 1))
	assert.Equal(t, red, f.Image.RGBAAt(3, 1))
	assert.Equal(t, bg, f.Image.RGBAAt(4, 1))
	assert.Equal(t, bg, f.Image.RGBAAt(7, 1))
	assert.Equal(t, red, f.Image.RGBAAt(8, 1))
}

func TestThickLine(t *testing.T) {
	f := NewFrame(20, 20, bg)
	f.ThickLine(0, 10, 19, 10, red, 3, 0)

	for y := 9; y <= 11; y++ {
		assert.Equal(t, red, f.Image.RGBAAt(10, y), "row %d", y)
	}
	assert.Equal(t, bg, f.Image.RGBAAt(10, 13))
}
