package viewer

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// face is the built-in ASCII bitmap font used for snapshot text
var face = basicfont.Face7x13

// lineHeight is the distance between text baselines in pixels
const lineHeight = 15

// textWidth measures s in pixels
func textWidth(s string) int {
	return font.MeasureString(face, s).Ceil()
}

// drawText draws s with its baseline starting at (x, y)
func drawText(dst draw.Image, x, y int, s string, col color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// drawCenteredText draws s centred horizontally and vertically on (x, y)
// over a translucent plate so it stays legible on top of geometry.
func drawCenteredText(dst draw.Image, x, y int, s string, col color.Color) {
	w := textWidth(s)
	left := x - w/2
	top := y - lineHeight/2

	plate := image.Rect(left-3, top-1, left+w+3, top+lineHeight+1)
	draw.Draw(dst, plate, image.NewUniform(color.NRGBA{0xff, 0xff, 0xff, 0xc0}), image.Point{}, draw.Over)
	drawText(dst, left, top+face.Ascent+1, s, col)
}
