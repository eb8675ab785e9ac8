package main

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/gopipe/internal/camera"
	"github.com/philipparndt/gopipe/internal/config"
	"github.com/philipparndt/gopipe/internal/debounce"
	"github.com/philipparndt/gopipe/pkg/annotation"
	"github.com/philipparndt/gopipe/pkg/flange"
	"github.com/philipparndt/gopipe/pkg/pipe"
	"github.com/philipparndt/gopipe/pkg/scene"
	"github.com/philipparndt/gopipe/pkg/viewer"
)

const (
	lookupTimeout   = 2 * time.Second
	summaryTextSize = 13
)

type App struct {
	window    fyne.Window
	cfg       config.Config
	path      string
	assembler *scene.Assembler

	preview *viewer.PipePreview
	form    *Form
	summary *fyne.Container
	status  *widget.Label

	// base carries the fields the form does not edit
	base      pipe.Parameters
	geometry  *debounce.Gate[pipe.Parameters]
	secondary *debounce.Gate[secondaryInput]
	rebuilds  rebuildSequence
}

// rebuildSequence orders rebuilds started on different gate goroutines.
// begin may be called from any goroutine; accept only from the fyne main
// goroutine.
type rebuildSequence struct {
	started atomic.Uint64
	shown   uint64
}

// begin numbers a new rebuild
func (r *rebuildSequence) begin() uint64 {
	return r.started.Add(1)
}

// accept reports whether the rebuild is newer than the one on screen and
// marks it shown
func (r *rebuildSequence) accept(gen uint64) bool {
	if gen <= r.shown {
		return false
	}
	r.shown = gen
	return true
}

// Form holds the input widgets
type Form struct {
	length        *widget.Entry
	outerDiameter *widget.Entry
	wallThickness *widget.Entry
	nominalBore   *widget.Entry
	configuration *widget.Select
	blankA        *widget.Check
	blankB        *widget.Check
	material      *widget.Entry
	notes         *widget.Entry
}

func main() {
	a := app.New()
	w := a.NewWindow("GoPipe - Pipe Preview")

	cfg, err := config.LoadOrDefault("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using defaults\n", err)
		cfg = config.Config{}
	}
	cfg.Resolve(config.Flags{})

	appInstance := &App{window: w, cfg: cfg}
	params := defaultParameters()
	if len(os.Args) > 1 {
		appInstance.path = os.Args[1]
		if params, err = pipe.Load(appInstance.path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if err := appInstance.setup(cfg.Flange.Apply(params)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	w.Resize(fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))
	w.SetOnClosed(appInstance.close)
	w.ShowAndRun()
}

func (a *App) setup(params pipe.Parameters) error {
	catalog, err := a.cfg.Flange.Catalog()
	if err != nil {
		return err
	}
	var lookup flange.Catalog
	if catalog != nil {
		lookup = catalog
	}
	a.assembler = scene.NewAssembler(flange.NewResolver(), lookup)
	a.base = params

	geometryIn, secondaryIn := inputsFrom(params)
	a.geometry = debounce.New(params, a.cfg.Debounce.Geometry, debounce.TimerScheduler{}, debounce.WithName("geometry"))
	a.secondary = debounce.New(secondaryIn, a.cfg.Debounce.Secondary, debounce.TimerScheduler{}, debounce.WithName("secondary"))

	// Gate listeners run on timer goroutines
	a.geometry.OnChange(func(pipe.Parameters) { a.rebuild() })
	a.secondary.OnChange(func(secondaryInput) { a.rebuild() })

	s, err := a.assemble()
	if err != nil {
		fmt.Printf("Warning: %v\n", err)
	}

	var saved *camera.Pose
	if a.path != "" {
		if saved, err = camera.LoadSidecar(camera.SidecarPath(a.path)); err != nil {
			fmt.Printf("Warning: ignoring saved camera pose: %v\n", err)
		}
	}
	a.preview = viewer.NewPipePreview(s, viewer.PreviewOptions{
		SavedPose: saved,
		SaveDelay: a.cfg.Debounce.CameraSave,
		OnSave:    a.savePose,
	})

	a.status = widget.NewLabel("")
	a.status.Wrapping = fyne.TextWrapWord
	a.summary = container.NewVBox()
	a.updateSummary(s)

	a.buildForm(geometryIn, secondaryIn)
	a.window.SetContent(a.layout())
	a.preview.Start()
	return nil
}

func (a *App) buildForm(g geometryInput, sec secondaryInput) {
	f := &Form{
		length:        widget.NewEntry(),
		outerDiameter: widget.NewEntry(),
		wallThickness: widget.NewEntry(),
		nominalBore:   widget.NewEntry(),
		material:      widget.NewEntry(),
		notes:         widget.NewMultiLineEntry(),
	}

	labels := make([]string, len(pipe.AllEndConfigurations))
	for i, c := range pipe.AllEndConfigurations {
		labels[i] = c.Label()
	}
	f.configuration = widget.NewSelect(labels, nil)
	f.blankA = widget.NewCheck("Blank flange on end A", nil)
	f.blankB = widget.NewCheck("Blank flange on end B", nil)

	f.length.SetText(g.Length)
	f.length.SetPlaceHolder("6m or 6000mm")
	f.outerDiameter.SetText(g.OuterDiameter)
	f.wallThickness.SetText(g.WallThickness)
	f.nominalBore.SetText(g.NominalBore)
	f.nominalBore.SetPlaceHolder("optional")
	f.configuration.SetSelected(g.Configuration.Label())
	f.blankA.SetChecked(g.BlankA)
	f.blankB.SetChecked(g.BlankB)
	f.material.SetText(sec.Material)
	f.notes.SetText(sec.Notes)
	f.notes.SetMinRowsVisible(4)
	a.form = f
	a.updateBlankChecks(g.Configuration)

	// Handlers are attached after the initial values so loading the
	// form does not schedule a rebuild
	onGeometry := func(string) { a.geometryEdited() }
	for _, e := range []*widget.Entry{f.length, f.outerDiameter, f.wallThickness, f.nominalBore} {
		e.OnChanged = onGeometry
	}
	f.configuration.OnChanged = onGeometry
	f.blankA.OnChanged = func(bool) { a.geometryEdited() }
	f.blankB.OnChanged = func(bool) { a.geometryEdited() }

	onSecondary := func(string) {
		a.secondary.Stabilize(secondaryInput{Material: f.material.Text, Notes: f.notes.Text})
	}
	f.material.OnChanged = onSecondary
	f.notes.OnChanged = onSecondary
}

// configurationValue maps the select label back to its code
func (f *Form) configurationValue() pipe.EndConfiguration {
	i := f.configuration.SelectedIndex()
	if i < 0 {
		return pipe.PlainEnds
	}
	return pipe.AllEndConfigurations[i]
}

func (a *App) updateBlankChecks(cfg pipe.EndConfiguration) {
	if a.form == nil {
		return
	}
	sides := cfg.Sides()
	for _, c := range []struct {
		check   *widget.Check
		flanged bool
	}{{a.form.blankA, sides.Flanged(pipe.EndA)}, {a.form.blankB, sides.Flanged(pipe.EndB)}} {
		if c.flanged {
			c.check.Enable()
		} else {
			c.check.Disable()
		}
	}
}

// geometryEdited validates the form and feeds the geometry gate
func (a *App) geometryEdited() {
	f := a.form
	in := geometryInput{
		Length:        f.length.Text,
		OuterDiameter: f.outerDiameter.Text,
		WallThickness: f.wallThickness.Text,
		NominalBore:   f.nominalBore.Text,
		Configuration: f.configurationValue(),
		BlankA:        f.blankA.Checked,
		BlankB:        f.blankB.Checked,
	}
	a.updateBlankChecks(in.Configuration)

	p, err := in.apply(a.base)
	if err != nil {
		a.status.SetText(err.Error())
		return
	}
	a.status.SetText("")
	a.geometry.Stabilize(p)
}

// assemble builds the scene from the propagated values of both gates
func (a *App) assemble() (scene.Scene, error) {
	params := a.secondary.Value().apply(a.geometry.Value())

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()
	s, _, err := a.assembler.BuildContext(ctx, params)
	if err != nil {
		err = fmt.Errorf("flange catalog lookup failed, showing reference values: %w", err)
	}
	return s, err
}

// rebuild runs on a gate timer goroutine and hands the result to fyne.
// A slow lookup that finishes after a later rebuild is dropped.
func (a *App) rebuild() {
	gen := a.rebuilds.begin()
	s, err := a.assemble()
	fyne.Do(func() {
		if !a.rebuilds.accept(gen) {
			return
		}
		a.preview.SetScene(s)
		a.updateSummary(s)
		if err != nil {
			a.status.SetText(err.Error())
		}
	})
}

func (a *App) updateSummary(s scene.Scene) {
	a.summary.RemoveAll()
	for _, line := range s.Summary.Lines() {
		text := canvas.NewText(line.Text, line.Style.Color())
		if line.Style == annotation.Heading {
			text.TextStyle = fyne.TextStyle{Bold: true}
			text.TextSize = summaryTextSize + 2
		} else {
			text.TextSize = summaryTextSize
		}
		a.summary.Add(text)
	}
	a.summary.Refresh()
}

// savePose runs from the preview's frame tick
func (a *App) savePose(pose camera.Pose) {
	if a.path == "" {
		return
	}
	if err := camera.SaveSidecar(camera.SidecarPath(a.path), pose); err != nil {
		fmt.Printf("Warning: failed to save camera pose: %v\n", err)
	}
}

// saveParams writes the propagated parameters back to the source file
func (a *App) saveParams() {
	a.geometry.Flush()
	a.secondary.Flush()
	params := a.secondary.Value().apply(a.geometry.Value())

	save := func(path string) {
		if err := pipe.Save(path, params); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.path = path
		a.status.SetText("Saved " + path)
	}
	if a.path != "" {
		save(a.path)
		return
	}
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if writer == nil {
			return
		}
		writer.Close()
		save(writer.URI().Path())
	}, a.window)
}

func (a *App) layout() fyne.CanvasObject {
	f := a.form
	form := widget.NewForm(
		widget.NewFormItem("Length", f.length),
		widget.NewFormItem("Outer diameter (mm)", f.outerDiameter),
		widget.NewFormItem("Wall thickness (mm)", f.wallThickness),
		widget.NewFormItem("Nominal bore (mm)", f.nominalBore),
		widget.NewFormItem("Ends", f.configuration),
		widget.NewFormItem("", f.blankA),
		widget.NewFormItem("", f.blankB),
		widget.NewFormItem("Material", f.material),
		widget.NewFormItem("Notes", f.notes),
	)

	views := container.NewGridWithColumns(3,
		widget.NewButton(camera.Overview.Label(), func() { a.preview.SetMode(camera.Overview) }),
		widget.NewButton(camera.ViewEndA.Label(), func() { a.preview.SetMode(camera.ViewEndA) }),
		widget.NewButton(camera.ViewEndB.Label(), func() { a.preview.SetMode(camera.ViewEndB) }),
	)
	saveButton := widget.NewButton("Save Parameters", a.saveParams)

	panel := container.NewVBox(
		widget.NewLabelWithStyle("Pipe", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		form,
		saveButton,
		a.status,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Specification", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewPadded(a.summary),
	)
	scroll := container.NewVScroll(panel)
	scroll.SetMinSize(fyne.NewSize(340, 0))

	background := canvas.NewRectangle(color.NRGBA{0xf0, 0xf0, 0xf0, 0xff})
	return container.NewBorder(
		nil,    // top
		views,  // bottom
		nil,    // left
		scroll, // right
		container.NewStack(background, a.preview),
	)
}

func (a *App) close() {
	a.geometry.Stop()
	a.secondary.Stop()
	a.preview.Stop()
}
