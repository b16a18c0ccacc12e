package core

// Vertex matches the vertex buffer layout: position @location(0), tex coords @location(1).
type Vertex struct {
	Position  [3]float32
	TexCoords [2]float32
}

type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint16
}

var QuadVertices = []Vertex{
	{Position: [3]float32{-0.5, 0.5, 0}, TexCoords: [2]float32{0, 0}},
	{Position: [3]float32{-0.5, -0.5, 0}, TexCoords: [2]float32{0, 1}},
	{Position: [3]float32{0.5, -0.5, 0}, TexCoords: [2]float32{1, 1}},
	{Position: [3]float32{0.5, 0.5, 0}, TexCoords: [2]float32{1, 0}},
}

var QuadIndices = []uint16{
	0, 1, 2,
	2, 3, 0,
}

// Unit cube centered on the origin. Corners 0-3 are the +Z face, 4-7 the -Z face.
var CubeVertices = []Vertex{
	{Position: [3]float32{-0.5, 0.5, 0.5}, TexCoords: [2]float32{0, 0}},   // 0
	{Position: [3]float32{-0.5, -0.5, 0.5}, TexCoords: [2]float32{0, 1}},  // 1
	{Position: [3]float32{0.5, -0.5, 0.5}, TexCoords: [2]float32{1, 1}},   // 2
	{Position: [3]float32{0.5, 0.5, 0.5}, TexCoords: [2]float32{1, 0}},    // 3
	{Position: [3]float32{0.5, 0.5, -0.5}, TexCoords: [2]float32{0, 0}},   // 4
	{Position: [3]float32{0.5, -0.5, -0.5}, TexCoords: [2]float32{0, 1}},  // 5
	{Position: [3]float32{-0.5, -0.5, -0.5}, TexCoords: [2]float32{1, 1}}, // 6
	{Position: [3]float32{-0.5, 0.5, -0.5}, TexCoords: [2]float32{1, 0}},  // 7
}

// Counter-clockwise when viewed from outside.
var CubeIndices = []uint16{
	// front (+Z)
	0, 1, 2,
	2, 3, 0,
	// back (-Z)
	4, 5, 6,
	6, 7, 4,
	// right (+X)
	3, 2, 5,
	5, 4, 3,
	// left (-X)
	7, 6, 1,
	1, 0, 7,
	// top (+Y)
	7, 0, 3,
	3, 4, 7,
	// bottom (-Y)
	1, 6, 5,
	5, 2, 1,
}

func QuadMesh() Mesh {
	return Mesh{Name: "quad", Vertices: QuadVertices, Indices: QuadIndices}
}

func CubeMesh() Mesh {
	return Mesh{Name: "cube", Vertices: CubeVertices, Indices: CubeIndices}
}

// MeshByName returns the cube for any name other than "quad".
func MeshByName(name string) Mesh {
	if name == "quad" {
		return QuadMesh()
	}
	return CubeMesh()
}

// PaddedIndices returns the index data padded to an even count, since buffer
// writes must be a multiple of 4 bytes.
func (m Mesh) PaddedIndices() []uint16 {
	if len(m.Indices)%2 == 0 {
		return m.Indices
	}
	out := make([]uint16, len(m.Indices)+1)
	copy(out, m.Indices)
	return out
}
