package viewer

import (
	"image"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/gopipe/internal/camera"
	"github.com/philipparndt/gopipe/internal/debounce"
	"github.com/philipparndt/gopipe/pkg/scene"
)

// PipePreview is a fyne widget showing a scene through a camera rig.
// All methods must be called on the fyne main goroutine.
type PipePreview struct {
	widget.BaseWidget

	renderer  *Renderer
	camera    *Camera
	session   *camera.Session
	frames    *debounce.FrameScheduler
	animation *fyne.Animation
	raster    *canvas.Raster
	dragStart *fyne.Position
}

// PreviewOptions configures a PipePreview
type PreviewOptions struct {
	// SavedPose is restored on creation when non-nil
	SavedPose *camera.Pose
	// SaveDelay is how long the camera must rest before OnSave runs
	SaveDelay time.Duration
	OnSave    func(camera.Pose)
	Snapshot  SnapshotOptions
}

// NewPipePreview creates the widget for an initial scene
func NewPipePreview(s scene.Scene, opts PreviewOptions) *PipePreview {
	if opts.SaveDelay <= 0 {
		opts.SaveDelay = camera.SaveDelay
	}
	onSave := opts.OnSave
	if onSave == nil {
		onSave = func(camera.Pose) {}
	}
	snap := opts.Snapshot
	if snap.Width == 0 {
		snap = DefaultSnapshotOptions()
		snap.Supersample = 1
		snap.Overlay = false
	}

	p := &PipePreview{
		renderer: NewRenderer(s, snap),
		frames:   debounce.NewFrameScheduler(time.Now()),
	}

	session, pose, restored := camera.NewSession(opts.SavedPose, p.frames, opts.SaveDelay, onSave)
	if !restored {
		pose = camera.PresetsFor(s.LengthM).Overview
	}
	p.session = session
	p.camera = NewCamera(pose)
	p.camera.MaxDistance = camera.MaxDistanceFor(s.LengthM)

	p.raster = canvas.NewRaster(p.draw)
	p.animation = &fyne.Animation{
		Duration:    time.Second,
		RepeatCount: fyne.AnimationRepeatForever,
		Tick:        func(float32) { p.Tick(time.Now()) },
	}
	p.ExtendBaseWidget(p)
	return p
}

// Start begins driving the camera from fyne's animation loop
func (p *PipePreview) Start() {
	p.animation.Start()
}

// Stop halts the animation and cancels a pending pose save
func (p *PipePreview) Stop() {
	p.animation.Stop()
	p.session.Close()
}

// SetScene swaps the displayed scene. The camera is left where it is.
func (p *PipePreview) SetScene(s scene.Scene) {
	p.renderer = NewRenderer(s, p.renderer.opts)
	p.camera.MaxDistance = camera.MaxDistanceFor(s.LengthM)
	p.raster.Refresh()
}

// SetMode selects a preset view or Free
func (p *PipePreview) SetMode(mode camera.ViewMode) {
	p.session.Rig.SetMode(mode)
}

// Mode returns the active view mode
func (p *PipePreview) Mode() camera.ViewMode {
	return p.session.Rig.Mode()
}

// Pose returns the current camera pose
func (p *PipePreview) Pose() camera.Pose {
	return p.camera.Pose()
}

// Tick runs one frame: pending saves that are due fire, then the rig and
// tracker observe the camera. The view is redrawn only when it moved.
func (p *PipePreview) Tick(now time.Time) {
	p.frames.Advance(now)

	before := p.camera.Pose()
	next := p.session.Frame(before, p.renderer.Scene().LengthM)
	if next != before {
		p.camera.SetPose(next)
		p.raster.Refresh()
	}
}

// draw is the raster generator
func (p *PipePreview) draw(w, h int) image.Image {
	return p.renderer.RenderSize(p.camera.Pose(), w, h)
}

// Dragged orbits the camera and hands control to the user
func (p *PipePreview) Dragged(event *fyne.DragEvent) {
	p.session.Rig.BeginInteraction()
	if p.dragStart != nil {
		deltaX := event.Position.X - p.dragStart.X
		deltaY := event.Position.Y - p.dragStart.Y
		p.camera.Orbit(float64(-deltaY)*0.01, float64(deltaX)*0.01)
		p.raster.Refresh()
	}
	pos := event.Position
	p.dragStart = &pos
}

// DragEnd handles the end of a drag event
func (p *PipePreview) DragEnd() {
	p.dragStart = nil
}

// Scrolled zooms the camera
func (p *PipePreview) Scrolled(event *fyne.ScrollEvent) {
	p.session.Rig.BeginInteraction()
	p.camera.Zoom(-float64(event.Scrolled.DY) * 0.001)
	p.raster.Refresh()
}

// CreateRenderer creates the renderer for the widget
func (p *PipePreview) CreateRenderer() fyne.WidgetRenderer {
	background := canvas.NewRectangle(color.White)
	return &previewRenderer{preview: p, objects: []fyne.CanvasObject{background, p.raster}}
}

// previewRenderer implements fyne.WidgetRenderer
type previewRenderer struct {
	preview *PipePreview
	objects []fyne.CanvasObject
}

func (r *previewRenderer) Layout(size fyne.Size) {
	for _, o := range r.objects {
		o.Resize(size)
	}
}

func (r *previewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

func (r *previewRenderer) Refresh() {
	r.preview.raster.Refresh()
}

func (r *previewRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *previewRenderer) Destroy() {
	r.preview.Stop()
}
