package app

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/gopipe/internal/camera"
	"github.com/philipparndt/gopipe/internal/overlay"
	"github.com/philipparndt/gopipe/pkg/geometry"
)

func fromRaylib(v rl.Vector3) geometry.Vector3 {
	return geometry.NewVector3(float64(v.X), float64(v.Y), float64(v.Z))
}

// poseOf reads the pose of a raylib camera
func poseOf(c rl.Camera3D) camera.Pose {
	return camera.Pose{Position: fromRaylib(c.Position), Target: fromRaylib(c.Target)}
}

// applyPose moves a raylib camera to the pose
func applyPose(c *rl.Camera3D, pose camera.Pose) {
	c.Position = overlay.Vec3(pose.Position)
	c.Target = overlay.Vec3(pose.Target)
}

// setupCamera restores the saved pose or starts at a preset
func (app *App) setupCamera(mode camera.ViewMode) {
	app.Camera.sidecar = camera.SidecarPath(app.FileWatch.sourceFile)
	saved, err := camera.LoadSidecar(app.Camera.sidecar)
	if err != nil {
		fmt.Printf("Warning: %v\n", err)
	}

	session, pose, restored := camera.NewSession(saved, app.Camera.frames, app.cfg.Debounce.CameraSave, app.savePose,
		camera.WithTrackerLogger(app.logger))
	if restored {
		fmt.Printf("Restored camera from: %s\n", app.Camera.sidecar)
	} else {
		pose = camera.PresetsFor(app.Scene.scene.LengthM).Overview
	}
	app.Camera.session = session

	app.Camera.camera = rl.Camera3D{
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       50.0,
		Projection: rl.CameraPerspective,
	}
	applyPose(&app.Camera.camera, pose)

	if mode != "" {
		session.Rig.SetMode(mode)
	}
}

// savePose persists the camera once it has come to rest
func (app *App) savePose(pose camera.Pose) {
	if err := camera.SaveSidecar(app.Camera.sidecar, pose); err != nil {
		fmt.Printf("Warning: %v\n", err)
	}
}

// updateCamera runs the rig and tracker for this frame
func (app *App) updateCamera() {
	live := poseOf(app.Camera.camera)
	next := app.Camera.session.Frame(live, app.Scene.scene.LengthM)
	applyPose(&app.Camera.camera, next)
}

// orbit rotates the camera around its target by mouse delta
func (app *App) orbit(delta rl.Vector2) {
	offset := rl.Vector3Subtract(app.Camera.camera.Position, app.Camera.camera.Target)
	distance := rl.Vector3Length(offset)
	if distance == 0 {
		return
	}

	angleX := math.Asin(math.Max(-1, math.Min(1, float64(offset.Y/distance))))
	angleY := math.Atan2(float64(offset.X), float64(offset.Z))

	angleY -= float64(delta.X) * 0.01
	angleX += float64(delta.Y) * 0.01

	// Clamp X rotation to prevent gimbal lock
	maxAngle := math.Pi/2 - 0.1
	angleX = math.Max(-maxAngle, math.Min(maxAngle, angleX))

	app.placeCamera(distance, angleX, angleY)
}

// zoom scales the camera distance, clamped to the orbit limits
func (app *App) zoom(wheel float32) {
	offset := rl.Vector3Subtract(app.Camera.camera.Position, app.Camera.camera.Target)
	distance := rl.Vector3Length(offset)
	if distance == 0 {
		return
	}

	angleX := math.Asin(math.Max(-1, math.Min(1, float64(offset.Y/distance))))
	angleY := math.Atan2(float64(offset.X), float64(offset.Z))

	app.placeCamera(zoomDistance(distance, wheel, app.Scene.scene.LengthM), angleX, angleY)
}

// zoomDistance applies one wheel step. The far limit grows with the pipe
// so the overview preset stays reachable.
func zoomDistance(distance, wheel float32, lengthM float64) float32 {
	distance *= 1 - wheel*0.1
	return float32(math.Max(camera.MinDistance, math.Min(camera.MaxDistanceFor(lengthM), float64(distance))))
}

func (app *App) placeCamera(distance float32, angleX, angleY float64) {
	x := distance * float32(math.Cos(angleX)*math.Sin(angleY))
	y := distance * float32(math.Sin(angleX))
	z := distance * float32(math.Cos(angleX)*math.Cos(angleY))

	target := app.Camera.camera.Target
	app.Camera.camera.Position = rl.Vector3{X: target.X + x, Y: target.Y + y, Z: target.Z + z}
}

// doPan performs camera panning based on mouse delta
func (app *App) doPan(delta rl.Vector2) {
	cam := &app.Camera.camera

	forward := rl.Vector3Normalize(rl.Vector3Subtract(cam.Target, cam.Position))
	right := rl.Vector3Normalize(rl.Vector3CrossProduct(forward, cam.Up))
	up := rl.Vector3Normalize(rl.Vector3CrossProduct(right, forward))

	// Pan speed based on distance from target
	panSpeed := rl.Vector3Distance(cam.Position, cam.Target) * 0.001

	move := rl.Vector3Add(rl.Vector3Scale(right, -delta.X*panSpeed), rl.Vector3Scale(up, delta.Y*panSpeed))
	cam.Target = rl.Vector3Add(cam.Target, move)
	cam.Position = rl.Vector3Add(cam.Position, move)
}
