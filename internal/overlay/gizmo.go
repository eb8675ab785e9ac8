package overlay

import (
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/gopipe/pkg/geometry"
)

// gizmoPoint is a gizmo cube corner in unit screen space. Depth grows
// towards the viewer.
type gizmoPoint struct {
	X, Y  float32
	Depth float32
}

var cubeCorners = [8]geometry.Vector3{
	{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1},
	{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1},
}

// cubeEdges pairs corner indices; axis 0 marks the pipe axis edges
var cubeEdges = []struct {
	from, to int
	axis     int
}{
	{0, 1, 0}, {3, 2, 0}, {4, 5, 0}, {7, 6, 0},
	{0, 3, 1}, {1, 2, 1}, {4, 7, 1}, {5, 6, 1},
	{0, 4, 2}, {1, 5, 2}, {2, 6, 2}, {3, 7, 2},
}

// viewBasis returns right, up and forward for the camera
func viewBasis(cam rl.Camera3D) (right, up, forward geometry.Vector3) {
	pos := geometry.NewVector3(float64(cam.Position.X), float64(cam.Position.Y), float64(cam.Position.Z))
	target := geometry.NewVector3(float64(cam.Target.X), float64(cam.Target.Y), float64(cam.Target.Z))
	worldUp := geometry.NewVector3(float64(cam.Up.X), float64(cam.Up.Y), float64(cam.Up.Z))

	forward = target.Sub(pos).Normalize()
	right = forward.Cross(worldUp)
	if right.Length() < 1e-9 {
		// Looking straight along the up vector
		right = geometry.NewVector3(1, 0, 0)
	}
	right = right.Normalize()
	up = right.Cross(forward)
	return right, up, forward
}

// projectGizmo rotates the unit cube into the camera's view
func projectGizmo(cam rl.Camera3D) [8]gizmoPoint {
	right, up, forward := viewBasis(cam)
	var out [8]gizmoPoint
	for i, c := range cubeCorners {
		out[i] = gizmoPoint{
			X:     float32(c.Dot(right)),
			Y:     float32(-c.Dot(up)),
			Depth: float32(-c.Dot(forward)),
		}
	}
	return out
}

// DrawGizmo draws an orientation cube centred at (cx, cy). The pipe axis
// edges are highlighted and the A and B faces labelled.
func DrawGizmo(ctx RenderContext, cx, cy, size float32) {
	corners := projectGizmo(ctx.Camera)
	at := func(i int) rl.Vector2 {
		return rl.Vector2{X: cx + corners[i].X*size, Y: cy + corners[i].Y*size}
	}

	order := make([]int, len(cubeEdges))
	for i := range order {
		order[i] = i
	}
	edgeDepth := func(i int) float32 {
		e := cubeEdges[i]
		return min(corners[e.from].Depth, corners[e.to].Depth)
	}
	// Back to front
	sort.Slice(order, func(a, b int) bool { return edgeDepth(order[a]) < edgeDepth(order[b]) })

	for _, i := range order {
		e := cubeEdges[i]
		col := rl.NewColor(120, 120, 120, 140)
		thickness := float32(1)
		if e.axis == 0 {
			col = rl.NewColor(37, 99, 235, 255)
			thickness = 2
		}
		if edgeDepth(i) < -0.5 {
			col.A /= 2
		}
		rl.DrawLineEx(at(e.from), at(e.to), thickness, col)
	}

	// Face centres of the -X and +X faces
	for _, face := range []struct {
		label   string
		corners [4]int
	}{{"A", [4]int{0, 3, 4, 7}}, {"B", [4]int{1, 2, 5, 6}}} {
		var p rl.Vector2
		for _, c := range face.corners {
			q := at(c)
			p.X += q.X / 4
			p.Y += q.Y / 4
		}
		label := Label{Text: face.label, ScreenPos: p, Color: rl.NewColor(17, 24, 39, 255)}
		label.Draw(ctx.Font, 12, 2)
	}
}
