package core

import (
	"testing"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVertexLayout(t *testing.T) {
	var v Vertex
	assert.Equal(t, uintptr(20), unsafe.Sizeof(v))
	assert.Equal(t, uintptr(12), unsafe.Offsetof(v.TexCoords))
}

func TestMeshIndicesInRange(t *testing.T) {
	for _, m := range []Mesh{QuadMesh(), CubeMesh()} {
		t.Run(m.Name, func(t *testing.T) {
			require.Zero(t, len(m.Indices)%3)
			for _, idx := range m.Indices {
				assert.Less(t, int(idx), len(m.Vertices))
			}
		})
	}
}

func TestCubeFacesPointOutward(t *testing.T) {
	m := CubeMesh()
	require.Len(t, m.Vertices, 8)
	require.Len(t, m.Indices, 36)

	for i := 0; i < len(m.Indices); i += 3 {
		a := mgl32.Vec3(m.Vertices[m.Indices[i]].Position)
		b := mgl32.Vec3(m.Vertices[m.Indices[i+1]].Position)
		c := mgl32.Vec3(m.Vertices[m.Indices[i+2]].Position)

		normal := b.Sub(a).Cross(c.Sub(a))
		centroid := a.Add(b).Add(c).Mul(1.0 / 3.0)
		assert.Greater(t, normal.Dot(centroid), float32(0), "triangle %d winds inward", i/3)
	}
}

func TestQuadFacesCamera(t *testing.T) {
	m := QuadMesh()
	for i := 0; i < len(m.Indices); i += 3 {
		a := mgl32.Vec3(m.Vertices[m.Indices[i]].Position)
		b := mgl32.Vec3(m.Vertices[m.Indices[i+1]].Position)
		c := mgl32.Vec3(m.Vertices[m.Indices[i+2]].Position)
		assert.Greater(t, b.Sub(a).Cross(c.Sub(a)).Z(), float32(0))
	}
}

func TestMeshByName(t *testing.T) {
	assert.Equal(t, "quad", MeshByName("quad").Name)
	assert.Equal(t, "cube", MeshByName("cube").Name)
	assert.Equal(t, "cube", MeshByName("").Name)
}

func TestPaddedIndices(t *testing.T) {
	m := Mesh{Indices: []uint16{0, 1, 2}}
	assert.Equal(t, []uint16{0, 1, 2, 0}, m.PaddedIndices())
	assert.Equal(t, CubeIndices, CubeMesh().PaddedIndices())
}
