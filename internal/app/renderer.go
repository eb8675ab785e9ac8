package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/gopipe/pkg/mesh"
)

// vertexBuffers holds flat per-vertex arrays ready for upload
type vertexBuffers struct {
	vertices  []float32
	normals   []float32
	texcoords []float32
	colors    []uint8
}

// bakeVertices flattens the mesh and bakes the lighting into vertex colours
func bakeVertices(m mesh.Mesh, light mesh.Light) vertexBuffers {
	vertexCount := len(m.Faces) * 3
	buf := vertexBuffers{
		vertices:  make([]float32, 0, vertexCount*3),
		normals:   make([]float32, 0, vertexCount*3),
		texcoords: make([]float32, vertexCount*2),
		colors:    make([]uint8, 0, vertexCount*4),
	}

	for _, face := range m.Faces {
		col := light.Shade(face)
		n := face.Normal
		for _, v := range [3]struct{ X, Y, Z float64 }{
			{face.V1.X, face.V1.Y, face.V1.Z},
			{face.V2.X, face.V2.Y, face.V2.Z},
			{face.V3.X, face.V3.Y, face.V3.Z},
		} {
			buf.vertices = append(buf.vertices, float32(v.X), float32(v.Y), float32(v.Z))
			buf.normals = append(buf.normals, float32(n.X), float32(n.Y), float32(n.Z))
			buf.colors = append(buf.colors, col.R, col.G, col.B, col.A)
		}
	}
	return buf
}

// sceneToRaylibMesh uploads a tessellated scene with baked lighting
func sceneToRaylibMesh(m mesh.Mesh) rl.Mesh {
	buf := bakeVertices(m, mesh.DefaultLight())

	rlMesh := rl.Mesh{
		VertexCount:   int32(len(m.Faces) * 3),
		TriangleCount: int32(len(m.Faces)),
	}
	if len(buf.vertices) > 0 {
		rlMesh.Vertices = &buf.vertices[0]
		rlMesh.Normals = &buf.normals[0]
		rlMesh.Texcoords = &buf.texcoords[0]
		rlMesh.Colors = &buf.colors[0]
	}

	// Upload mesh data to GPU
	rl.UploadMesh(&rlMesh, false)

	return rlMesh
}
