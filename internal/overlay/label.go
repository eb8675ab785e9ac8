package overlay

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Label is text drawn on a plate centred on a screen position
type Label struct {
	Text      string
	ScreenPos rl.Vector2
	Color     rl.Color
	// Border draws an outline in the text colour
	Border bool
}

// Draw renders the label and returns its bounding rectangle
func (l *Label) Draw(font rl.Font, fontSize float32, padding float32) rl.Rectangle {
	textSize := rl.MeasureTextEx(font, l.Text, fontSize, 1)

	rect := rl.Rectangle{
		X:      l.ScreenPos.X - textSize.X/2 - padding,
		Y:      l.ScreenPos.Y - textSize.Y/2 - padding,
		Width:  textSize.X + 2*padding,
		Height: textSize.Y + 2*padding,
	}

	rl.DrawRectangleRec(rect, rl.NewColor(255, 255, 255, 210))
	if l.Border {
		rl.DrawRectangleLinesEx(rect, 1.5, l.Color)
	}

	textPos := rl.Vector2{
		X: l.ScreenPos.X - textSize.X/2,
		Y: l.ScreenPos.Y - textSize.Y/2,
	}
	rl.DrawTextEx(font, l.Text, textPos, fontSize, 1, l.Color)

	return rect
}
