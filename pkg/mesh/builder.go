package mesh

import "gonum.org/v1/gonum/spatial/r3"

// Builder assembles an indexed mesh from loose triangles, welding vertices
// with identical coordinates into one index.
type Builder struct {
	name     string
	vertices []r3.Vec
	faces    [][3]int
	index    map[r3.Vec]int
}

// NewBuilder creates an empty builder
func NewBuilder() *Builder {
	return &Builder{index: make(map[r3.Vec]int)}
}

// SetName sets the name of the mesh being built
func (b *Builder) SetName(name string) {
	b.name = name
}

// Vertex returns the index of v, adding it if it is new
func (b *Builder) Vertex(v r3.Vec) int {
	if idx, ok := b.index[v]; ok {
		return idx
	}
	idx := len(b.vertices)
	b.vertices = append(b.vertices, v)
	b.index[v] = idx
	return idx
}

// AddTriangle adds a triangle given by its corner positions
func (b *Builder) AddTriangle(v1, v2, v3 r3.Vec) {
	b.faces = append(b.faces, [3]int{b.Vertex(v1), b.Vertex(v2), b.Vertex(v3)})
}

// AddQuad adds the planar quad a-b-c-d as the triangles (a,b,c) and (a,c,d)
func (b *Builder) AddQuad(v1, v2, v3, v4 r3.Vec) {
	b.AddTriangle(v1, v2, v3)
	b.AddTriangle(v1, v3, v4)
}

// FaceCount returns the number of triangles added so far
func (b *Builder) FaceCount() int {
	return len(b.faces)
}

// Build validates the collected geometry and returns the mesh
func (b *Builder) Build() (*TriangleMesh, error) {
	m, err := New(b.vertices, b.faces)
	if err != nil {
		return nil, err
	}
	m.name = b.name
	return m, nil
}
