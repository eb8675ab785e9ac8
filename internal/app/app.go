// Package app is the interactive raylib pipe viewer.
package app

import (
	"fmt"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/gopipe/internal/camera"
	"github.com/philipparndt/gopipe/internal/config"
	"github.com/philipparndt/gopipe/internal/debounce"
	"github.com/philipparndt/gopipe/internal/overlay"
	"github.com/philipparndt/gopipe/pkg/flange"
	"github.com/philipparndt/gopipe/pkg/pipe"
	"github.com/philipparndt/gopipe/pkg/scene"
)

// Options configures the viewer
type Options struct {
	ParamsPath string
	Config     config.Config
	// Mode is the initial view; empty keeps the saved pose or the overview
	Mode   camera.ViewMode
	Logger *slog.Logger
}

type App struct {
	Camera    CameraState
	Scene     SceneData
	Edit      EditState
	View      ViewSettings
	FileWatch FileWatchState
	UI        UIState

	cfg       config.Config
	logger    *slog.Logger
	catalog   *flange.FileCatalog
	assembler *scene.Assembler
}

// newApp loads the parameters and catalog without touching the window
func newApp(opts Options) (*App, pipe.Parameters, error) {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	params, err := pipe.Load(opts.ParamsPath)
	if err != nil {
		return nil, pipe.Parameters{}, err
	}
	params = cfg.Flange.Apply(params)

	app := &App{
		cfg:    cfg,
		logger: logger,
		View:   ViewSettings{showSummary: true, showDimensions: true},
		FileWatch: FileWatchState{
			sourceFile: opts.ParamsPath,
			loaded:     make(chan loadResult, 1),
		},
	}

	catalog, err := cfg.Flange.Catalog()
	if err != nil {
		return nil, pipe.Parameters{}, err
	}
	var lookup flange.Catalog
	if catalog != nil {
		app.catalog = catalog
		app.FileWatch.catalogFile = catalog.Path()
		lookup = catalog
	}
	app.assembler = scene.NewAssembler(flange.NewResolver(flange.WithLogger(logger)), lookup)
	return app, params, nil
}

// Run opens the viewer window and blocks until it is closed
func Run(opts Options) error {
	app, params, err := newApp(opts)
	if err != nil {
		return err
	}
	cfg := app.cfg

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), "GoPipe")
	rl.SetTargetFPS(int32(cfg.Window.FPS))

	// The built-in font only covers ASCII; all overlay text is ASCII
	app.UI.font = rl.GetFontDefault()
	app.Scene.material = rl.LoadMaterialDefault()
	app.UI.buttons = []viewButton{
		{mode: camera.Overview, key: rl.KeyOne},
		{mode: camera.ViewEndA, key: rl.KeyTwo},
		{mode: camera.ViewEndB, key: rl.KeyThree},
	}

	// Gates and the tracker run their callbacks from the render loop
	frames := debounce.NewFrameScheduler(time.Now())
	app.Camera.frames = frames

	app.Edit.draft = params
	app.Edit.geometry = debounce.New(params, cfg.Debounce.Geometry, frames,
		debounce.WithName("geometry"), debounce.WithLogger(app.logger))
	app.Edit.geometry.OnChange(app.rebuild)
	app.rebuild(params)

	app.setupCamera(opts.Mode)

	if err := app.setupFileWatcher(); err != nil {
		fmt.Printf("Warning: Failed to set up file watching: %v\n", err)
		fmt.Println("Auto-reload will not be available")
	} else {
		defer app.FileWatch.fileWatcher.Close()
	}

	for !rl.WindowShouldClose() {
		// Check for Ctrl+C to exit
		ctrlPressed := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
		if ctrlPressed && rl.IsKeyPressed(rl.KeyC) {
			break
		}

		// Due debounce and save timers fire here, on the render thread
		frames.Advance(time.Now())

		if app.FileWatch.needsReload.Swap(false) {
			app.reloadParams()
		}
		if app.FileWatch.catalogChanged.Swap(false) {
			app.reloadCatalog()
		}
		app.applyLoadedParams()

		app.handleInput()
		app.updateCamera()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(240, 240, 240, 255))

		rl.BeginMode3D(app.Camera.camera)
		if app.Scene.hasMesh {
			rl.DrawMesh(app.Scene.mesh, app.Scene.material, rl.MatrixIdentity())
		}
		rl.EndMode3D()

		ctx := overlay.RenderContext{Camera: app.Camera.camera, Font: app.UI.font, FontSize: 16}
		if app.View.showDimensions {
			overlay.DrawDimensions(ctx, app.Scene.scene.Dimensions)
			overlay.DrawLabels(ctx, app.Scene.scene.Dimensions, app.Scene.scene.Labels)
		}
		app.drawUI(ctx)

		rl.EndDrawing()
	}

	// Cleanup
	app.Camera.session.Close()
	app.Edit.geometry.Stop()
	if app.Scene.hasMesh {
		rl.UnloadMesh(&app.Scene.mesh)
	}
	rl.CloseWindow()
	return nil
}
