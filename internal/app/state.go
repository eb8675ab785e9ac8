package app

import (
	"sync/atomic"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/gopipe/internal/camera"
	"github.com/philipparndt/gopipe/internal/debounce"
	"github.com/philipparndt/gopipe/pkg/flange"
	"github.com/philipparndt/gopipe/pkg/pipe"
	"github.com/philipparndt/gopipe/pkg/scene"
	"github.com/philipparndt/gopipe/pkg/watcher"
)

// CameraState holds all camera-related state
type CameraState struct {
	camera  rl.Camera3D
	session *camera.Session
	frames  *debounce.FrameScheduler
	sidecar string // Pose file next to the parameter file
}

// SceneData holds the assembled scene and its GPU mesh
type SceneData struct {
	scene      scene.Scene
	resolution *flange.Resolution
	lookupErr  error // Last catalog lookup failure, reported in the UI
	mesh       rl.Mesh
	material   rl.Material
	hasMesh    bool
	triangles  int
}

// EditState holds keyboard parameter edits
type EditState struct {
	draft    pipe.Parameters                 // Newest parameters, possibly not yet propagated
	geometry *debounce.Gate[pipe.Parameters] // Coalesces edits before reassembly
}

// ViewSettings holds display settings
type ViewSettings struct {
	showSummary    bool
	showDimensions bool
	showHelp       bool
}

// FileWatchState holds file watching and reload state
type FileWatchState struct {
	sourceFile       string
	catalogFile      string
	fileWatcher      *watcher.FileWatcher
	needsReload      atomic.Bool // Set from the watcher goroutine
	catalogChanged   atomic.Bool // Set from the watcher goroutine
	isLoading        bool
	loadingStartTime time.Time
	loaded           chan loadResult
	lastError        string
}

// loadResult is handed from the background loader to the render loop
type loadResult struct {
	params pipe.Parameters
	err    error
}

// UIState holds UI-related state
type UIState struct {
	font    rl.Font
	buttons []viewButton
}

// viewButton is one of the preset view buttons
type viewButton struct {
	mode   camera.ViewMode
	key    int32
	bounds rl.Rectangle
}
