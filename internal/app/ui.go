package app

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/gopipe/internal/overlay"
	"github.com/philipparndt/gopipe/version"
)

var (
	textColor    = rl.NewColor(55, 65, 81, 255)
	mutedColor   = rl.NewColor(107, 114, 128, 255)
	activeColor  = rl.NewColor(37, 99, 235, 255)
	warningColor = rl.NewColor(217, 119, 6, 255)
)

var helpLines = []string{
	"1 / 2 / 3   Default view / End A / End B",
	"Drag        Orbit (Shift: pan)",
	"Wheel       Zoom",
	"E           Next end configuration (Shift: previous)",
	"[ / ]       Shorter / longer by 0.1 m",
	"Shift+A/B   Toggle blank flange on end A / B",
	"I / D       Toggle summary / dimensions",
	"R           Reload parameter file",
	"H           Toggle this help",
}

// drawUI draws the user interface
func (app *App) drawUI(ctx overlay.RenderContext) {
	screenWidth := float32(rl.GetScreenWidth())
	screenHeight := float32(rl.GetScreenHeight())
	fontSize14 := float32(14)
	fontSize16 := float32(16)

	// Specification summary (top-left corner)
	if app.View.showSummary {
		panel := overlay.DrawSummary(ctx, app.Scene.scene.Summary.Lines(), 10, 10)

		y := panel.Y + panel.Height + 8
		if app.Scene.lookupErr != nil {
			rl.DrawTextEx(app.UI.font, "Catalog unavailable, showing reference values", rl.Vector2{X: 10, Y: y}, fontSize14, 1, warningColor)
			y += 18
		}
		if app.Edit.geometry.Pending() {
			rl.DrawTextEx(app.UI.font, "Updating...", rl.Vector2{X: 10, Y: y}, fontSize14, 1, mutedColor)
		}
	}

	app.drawViewButtons(screenWidth, fontSize16)
	overlay.DrawGizmo(ctx, screenWidth-60, 110, 30)

	// Loading indicator
	if app.FileWatch.isLoading {
		elapsed := time.Since(app.FileWatch.loadingStartTime).Seconds()
		loadingText := fmt.Sprintf("Loading... (%.1fs)", elapsed)
		textSize := rl.MeasureTextEx(app.UI.font, loadingText, fontSize16, 1)
		rl.DrawTextEx(app.UI.font, loadingText, rl.Vector2{X: screenWidth - textSize.X - 20, Y: 60}, fontSize16, 1, activeColor)
	}
	if app.FileWatch.lastError != "" {
		rl.DrawTextEx(app.UI.font, "Reload failed: "+app.FileWatch.lastError, rl.Vector2{X: 10, Y: screenHeight - 48}, fontSize14, 1, warningColor)
	}

	if app.View.showHelp {
		app.drawHelp(screenWidth, screenHeight, fontSize14)
	}

	// Footer: version, triangle count and FPS
	footer := fmt.Sprintf("GoPipe %s | %s | %d triangles | %d FPS | H for help",
		version.Version, app.Edit.draft.EndConfiguration, app.Scene.triangles, rl.GetFPS())
	rl.DrawTextEx(app.UI.font, footer, rl.Vector2{X: 10, Y: screenHeight - 24}, fontSize14, 1, mutedColor)
}

// drawViewButtons draws the preset view buttons in the top-right corner
// and records their bounds for click handling.
func (app *App) drawViewButtons(screenWidth, fontSize float32) {
	const padding = 8
	const gap = 6
	mode := app.Camera.session.Rig.Mode()

	x := screenWidth - 10
	for i := len(app.UI.buttons) - 1; i >= 0; i-- {
		b := &app.UI.buttons[i]
		label := b.mode.Label()
		size := rl.MeasureTextEx(app.UI.font, label, fontSize, 1)

		x -= size.X + 2*padding
		b.bounds = rl.Rectangle{X: x, Y: 10, Width: size.X + 2*padding, Height: size.Y + 2*padding}
		x -= gap

		bg := rl.NewColor(255, 255, 255, 230)
		fg := textColor
		if b.mode == mode {
			bg = activeColor
			fg = rl.White
		} else if rl.CheckCollisionPointRec(rl.GetMousePosition(), b.bounds) {
			bg = rl.NewColor(229, 231, 235, 255)
		}
		rl.DrawRectangleRec(b.bounds, bg)
		rl.DrawRectangleLinesEx(b.bounds, 1, rl.NewColor(209, 213, 219, 255))
		rl.DrawTextEx(app.UI.font, label, rl.Vector2{X: b.bounds.X + padding, Y: b.bounds.Y + padding}, fontSize, 1, fg)
	}
}

// drawHelp draws the key bindings in the bottom-right corner
func (app *App) drawHelp(screenWidth, screenHeight, fontSize float32) {
	const padding = 10
	lineHeight := fontSize + 4

	width := float32(0)
	for _, l := range helpLines {
		width = max(width, rl.MeasureTextEx(app.UI.font, l, fontSize, 1).X)
	}
	height := float32(len(helpLines))*lineHeight + 2*padding
	box := rl.Rectangle{
		X:      screenWidth - width - 2*padding - 10,
		Y:      screenHeight - height - 40,
		Width:  width + 2*padding,
		Height: height,
	}
	rl.DrawRectangleRec(box, rl.NewColor(255, 255, 255, 235))
	rl.DrawRectangleLinesEx(box, 1, rl.NewColor(209, 213, 219, 255))

	y := box.Y + padding
	for _, l := range helpLines {
		rl.DrawTextEx(app.UI.font, l, rl.Vector2{X: box.X + padding, Y: y}, fontSize, 1, textColor)
		y += lineHeight
	}
}
