package viewer

import (
	"math"

	"github.com/philipparndt/gopipe/internal/camera"
	"github.com/philipparndt/gopipe/pkg/geometry"
)

// Camera is a perspective camera looking from Position at Target
type Camera struct {
	Position geometry.Vector3
	Target   geometry.Vector3
	Up       geometry.Vector3
	FOV      float64 // Field of view in radians
	// MaxDistance caps Zoom
	MaxDistance float64
}

// NewCamera creates a camera at the given pose with a 50 degree field of view
func NewCamera(pose camera.Pose) *Camera {
	c := &Camera{
		Up:          geometry.NewVector3(0, 1, 0),
		FOV:         50 * math.Pi / 180,
		MaxDistance: camera.MaxDistance,
	}
	c.SetPose(pose)
	return c
}

// SetPose moves the camera
func (c *Camera) SetPose(pose camera.Pose) {
	c.Position = pose.Position
	c.Target = pose.Target
}

// Pose returns the current camera pose
func (c *Camera) Pose() camera.Pose {
	return camera.Pose{Position: c.Position, Target: c.Target}
}

// spherical returns distance, elevation and azimuth of Position around Target
func (c *Camera) spherical() (float64, float64, float64) {
	offset := c.Position.Sub(c.Target)
	distance := offset.Length()
	if distance == 0 {
		return 0, 0, 0
	}
	elevation := math.Asin(math.Max(-1, math.Min(1, offset.Y/distance)))
	azimuth := math.Atan2(offset.X, offset.Z)
	return distance, elevation, azimuth
}

func (c *Camera) place(distance, elevation, azimuth float64) {
	x := distance * math.Cos(elevation) * math.Sin(azimuth)
	y := distance * math.Sin(elevation)
	z := distance * math.Cos(elevation) * math.Cos(azimuth)
	c.Position = c.Target.Add(geometry.NewVector3(x, y, z))
}

// Orbit rotates the camera around its target
func (c *Camera) Orbit(deltaElevation, deltaAzimuth float64) {
	distance, elevation, azimuth := c.spherical()
	if distance == 0 {
		return
	}

	// Stay clear of the poles where the up vector degenerates
	maxAngle := math.Pi/2 - 0.1
	elevation = math.Max(-maxAngle, math.Min(maxAngle, elevation+deltaElevation))

	c.place(distance, elevation, azimuth+deltaAzimuth)
}

// Zoom scales the camera distance by (1 + delta), clamped to MinDistance
// and the camera's MaxDistance
func (c *Camera) Zoom(delta float64) {
	distance, elevation, azimuth := c.spherical()
	if distance == 0 {
		return
	}
	maxDistance := math.Max(c.MaxDistance, camera.MinDistance)
	distance = math.Max(camera.MinDistance, math.Min(maxDistance, distance*(1+delta)))
	c.place(distance, elevation, azimuth)
}

// basis returns the camera's forward, right and up vectors
func (c *Camera) basis() (geometry.Vector3, geometry.Vector3, geometry.Vector3) {
	forward := c.Target.Sub(c.Position).Normalize()
	right := forward.Cross(c.Up)
	if right.Length() < 1e-9 {
		// Looking straight along Up
		right = forward.Cross(geometry.NewVector3(0, 0, -1))
	}
	right = right.Normalize()
	up := right.Cross(forward).Normalize()
	return forward, right, up
}

// Project projects a 3D point to screen coordinates. The third value is
// the view depth; points behind the camera have a depth <= 0.
func (c *Camera) Project(point geometry.Vector3, width, height float64) (float64, float64, float64) {
	forward, right, up := c.basis()

	relative := point.Sub(c.Position)
	x := relative.Dot(right)
	y := relative.Dot(up)
	z := relative.Dot(forward)

	depth := math.Max(z, 0.01)
	aspect := width / height
	fovScale := math.Tan(c.FOV / 2)

	screenX := (x/(depth*fovScale*aspect))*(width/2) + (width / 2)
	screenY := (-y/(depth*fovScale))*(height/2) + (height / 2)

	return screenX, screenY, z
}
