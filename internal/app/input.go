package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/gopipe/pkg/pipe"
)

// handleInput processes user input
func (app *App) handleInput() {
	rig := app.Camera.session.Rig
	mouse := rl.GetMousePosition()
	shiftPressed := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)

	// Camera view preset shortcuts and buttons
	for _, b := range app.UI.buttons {
		if rl.IsKeyPressed(b.key) {
			rig.SetMode(b.mode)
		}
		if rl.IsMouseButtonPressed(rl.MouseLeftButton) && rl.CheckCollisionPointRec(mouse, b.bounds) {
			rig.SetMode(b.mode)
			return
		}
	}

	// Display toggles
	if rl.IsKeyPressed(rl.KeyI) {
		app.View.showSummary = !app.View.showSummary
	}
	if rl.IsKeyPressed(rl.KeyD) {
		app.View.showDimensions = !app.View.showDimensions
	}
	if rl.IsKeyPressed(rl.KeyH) {
		app.View.showHelp = !app.View.showHelp
	}
	if rl.IsKeyPressed(rl.KeyR) {
		app.FileWatch.needsReload.Store(true)
	}

	app.handleEdits(shiftPressed)

	// Pan with Shift + left drag or middle drag, orbit with left drag
	delta := rl.GetMouseDelta()
	moved := delta.X != 0 || delta.Y != 0
	panning := (rl.IsMouseButtonDown(rl.MouseLeftButton) && shiftPressed) || rl.IsMouseButtonDown(rl.MouseMiddleButton)

	switch {
	case panning && moved:
		rig.BeginInteraction()
		app.doPan(delta)
	case rl.IsMouseButtonDown(rl.MouseLeftButton) && moved:
		rig.BeginInteraction()
		app.orbit(delta)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		rig.BeginInteraction()
		app.zoom(wheel)
	}
}

// handleEdits applies parameter edits from the keyboard. Each edit goes
// through the geometry gate, so holding a key rebuilds only once it is
// released.
func (app *App) handleEdits(shiftPressed bool) {
	draft := app.Edit.draft
	changed := true

	switch {
	case rl.IsKeyPressed(rl.KeyE):
		step := 1
		if shiftPressed {
			step = -1
		}
		draft.EndConfiguration = cycleEndConfiguration(draft.EndConfiguration, step)
	case rl.IsKeyPressed(rl.KeyRightBracket) || rl.IsKeyPressedRepeat(rl.KeyRightBracket):
		draft = adjustLength(draft, lengthStepM)
	case rl.IsKeyPressed(rl.KeyLeftBracket) || rl.IsKeyPressedRepeat(rl.KeyLeftBracket):
		draft = adjustLength(draft, -lengthStepM)
	case rl.IsKeyPressed(rl.KeyA) && shiftPressed:
		draft = toggleBlank(draft, pipe.EndA)
	case rl.IsKeyPressed(rl.KeyB) && shiftPressed:
		draft = toggleBlank(draft, pipe.EndB)
	default:
		changed = false
	}

	if changed {
		app.Edit.draft = draft
		app.Edit.geometry.Stabilize(draft)
	}
}
