package viewer

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gopipe/internal/camera"
	"github.com/philipparndt/gopipe/pkg/geometry"
)

func TestPreviewStartsAtOverview(t *testing.T) {
	test.NewTempApp(t)
	s := flangedScene()

	p := NewPipePreview(s, PreviewOptions{})
	defer p.Stop()

	assert.Equal(t, camera.Overview, p.Mode())
	assert.Equal(t, camera.PresetsFor(s.LengthM).Overview, p.Pose())
}

func TestPreviewRestoresSavedPose(t *testing.T) {
	test.NewTempApp(t)
	saved := camera.Pose{Position: geometry.NewVector3(1, 2, 3)}

	var saves []camera.Pose
	p := NewPipePreview(flangedScene(), PreviewOptions{
		SavedPose: &saved,
		OnSave:    func(pose camera.Pose) { saves = append(saves, pose) },
	})
	defer p.Stop()

	assert.Equal(t, camera.Free, p.Mode())
	assert.Equal(t, saved, p.Pose())

	// An untouched restored pose is not written back
	now := time.Now()
	for i := 0; i < 60; i++ {
		now = now.Add(16 * time.Millisecond)
		p.Tick(now)
	}
	assert.Empty(t, saves)
}

func TestPreviewPresetApproachAndSave(t *testing.T) {
	test.NewTempApp(t)
	s := flangedScene()

	var saves []camera.Pose
	p := NewPipePreview(s, PreviewOptions{
		SaveDelay: 100 * time.Millisecond,
		OnSave:    func(pose camera.Pose) { saves = append(saves, pose) },
	})
	defer p.Stop()

	p.SetMode(camera.ViewEndA)
	target := camera.PresetsFor(s.LengthM).EndA

	now := time.Now()
	start := p.Pose().Position.Distance(target.Position)
	for i := 0; i < 300; i++ {
		now = now.Add(16 * time.Millisecond)
		p.Tick(now)
	}
	assert.Less(t, p.Pose().Position.Distance(target.Position), start/100)

	// Once the camera rests the last pose is saved
	for i := 0; i < 10; i++ {
		now = now.Add(50 * time.Millisecond)
		p.Tick(now)
	}
	require.NotEmpty(t, saves)
}

func TestPreviewDragSwitchesToFree(t *testing.T) {
	test.NewTempApp(t)
	p := NewPipePreview(flangedScene(), PreviewOptions{})
	defer p.Stop()

	before := p.Pose()
	p.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(10, 10)}})
	p.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(40, 10)}})
	p.DragEnd()

	assert.Equal(t, camera.Free, p.Mode())
	assert.NotEqual(t, before, p.Pose())

	p.Tick(time.Now())
	assert.Equal(t, camera.Free, p.Mode())
}

func TestPreviewRenders(t *testing.T) {
	test.NewTempApp(t)
	p := NewPipePreview(flangedScene(), PreviewOptions{})
	defer p.Stop()

	img := p.draw(64, 48)
	assert.Equal(t, 64, img.Bounds().Dx())
}
