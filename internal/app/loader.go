package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/gopipe/pkg/mesh"
	"github.com/philipparndt/gopipe/pkg/pipe"
	"github.com/philipparndt/gopipe/pkg/watcher"
)

// catalogTimeout bounds a single catalog lookup
const catalogTimeout = 2 * time.Second

// setupFileWatcher watches the parameter file and the flange catalog
func (app *App) setupFileWatcher() error {
	fw, err := watcher.NewFileWatcher(app.cfg.Debounce.Watch, watcher.WithLogger(app.logger))
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	filesToWatch := []string{app.FileWatch.sourceFile}
	if app.FileWatch.catalogFile != "" {
		filesToWatch = append(filesToWatch, app.FileWatch.catalogFile)
	}
	for _, f := range filesToWatch {
		fmt.Printf("Watching file for changes: %s\n", f)
	}

	catalogAbs := ""
	if app.FileWatch.catalogFile != "" {
		catalogAbs, _ = filepath.Abs(app.FileWatch.catalogFile)
	}

	// Set up callback for file changes
	callback := func(changedFile string) {
		fmt.Printf("\nFile changed: %s\n", changedFile)
		if changedFile == catalogAbs {
			app.FileWatch.catalogChanged.Store(true)
			return
		}
		app.FileWatch.needsReload.Store(true)
	}

	if err := fw.Watch(filesToWatch, callback); err != nil {
		fw.Close()
		return fmt.Errorf("failed to watch files: %w", err)
	}

	fw.Start()
	app.FileWatch.fileWatcher = fw
	return nil
}

// reloadParams reads the parameter file in the background
func (app *App) reloadParams() {
	if app.FileWatch.isLoading {
		return
	}

	app.FileWatch.isLoading = true
	app.FileWatch.loadingStartTime = time.Now()
	fmt.Println("Reloading parameters...")

	path := app.FileWatch.sourceFile
	go func() {
		params, err := pipe.Load(path)
		app.FileWatch.loaded <- loadResult{params: params, err: err}
	}()
}

// applyLoadedParams hands reloaded parameters to the geometry gate. It
// runs on the render thread.
func (app *App) applyLoadedParams() {
	var result loadResult
	select {
	case result = <-app.FileWatch.loaded:
	default:
		return
	}
	app.FileWatch.isLoading = false

	if result.err != nil {
		app.FileWatch.lastError = result.err.Error()
		fmt.Printf("Error reloading parameters: %v\n", result.err)
		return
	}
	app.FileWatch.lastError = ""

	elapsed := time.Since(app.FileWatch.loadingStartTime)
	fmt.Printf("Parameters reloaded in %.2fs\n", elapsed.Seconds())

	params := app.cfg.Flange.Apply(result.params)
	app.Edit.draft = params
	app.Edit.geometry.Stabilize(params)
}

// reloadCatalog re-reads the flange catalog and reassembles
func (app *App) reloadCatalog() {
	if app.catalog == nil {
		return
	}
	if err := app.catalog.Reload(); err != nil {
		app.FileWatch.lastError = err.Error()
		fmt.Printf("Error reloading catalog: %v\n", err)
		return
	}
	fmt.Printf("Catalog reloaded: %d records\n", app.catalog.Len())
	app.rebuild(app.Edit.geometry.Value())
}

// rebuild assembles the scene and swaps the GPU mesh. The camera is not
// touched, so the view survives reloads and edits.
func (app *App) rebuild(params pipe.Parameters) {
	ctx, cancel := context.WithTimeout(context.Background(), catalogTimeout)
	defer cancel()

	start := time.Now()
	s, res, err := app.assembler.BuildContext(ctx, params)
	app.Scene.lookupErr = err
	if err != nil {
		app.logger.Warn("catalog lookup failed, using reference table", "err", err)
	}

	m := mesh.Build(s, mesh.DefaultOptions())
	newMesh := sceneToRaylibMesh(m)

	oldMesh, hadMesh := app.Scene.mesh, app.Scene.hasMesh
	app.Scene.scene = s
	app.Scene.resolution = res
	app.Scene.mesh = newMesh
	app.Scene.hasMesh = true
	app.Scene.triangles = len(m.Faces)

	// Unload old mesh after switching
	if hadMesh {
		rl.UnloadMesh(&oldMesh)
	}

	fmt.Printf("Scene assembled: %d primitives, %d triangles in %v\n",
		len(s.Primitives), len(m.Faces), time.Since(start).Round(time.Millisecond))
}
