package mesh

import (
	"github.com/philipparndt/gomold/pkg/geometry"
	"gonum.org/v1/gonum/spatial/r3"
)

// NormalSet holds one unit normal per face. Degenerate faces (zero area)
// carry the zero vector.
type NormalSet struct {
	normals    []r3.Vec
	degenerate int
}

// ComputeNormals derives the face normals of m from the winding order
func ComputeNormals(m *TriangleMesh) NormalSet {
	normals := make([]r3.Vec, m.FaceCount())
	degenerate := 0
	for i := range normals {
		n, ok := m.Triangle(i).Normal()
		if !ok {
			degenerate++
		}
		normals[i] = n
	}
	return NormalSet{normals: normals, degenerate: degenerate}
}

// NewNormalSet builds a normal set from arbitrary vectors, normalizing each
func NewNormalSet(vectors []r3.Vec) NormalSet {
	normals := make([]r3.Vec, len(vectors))
	degenerate := 0
	for i, v := range vectors {
		n, ok := geometry.Normalize(v)
		if !ok {
			degenerate++
		}
		normals[i] = n
	}
	return NormalSet{normals: normals, degenerate: degenerate}
}

// Len returns the number of faces
func (s NormalSet) Len() int {
	return len(s.normals)
}

// At returns the normal of face i
func (s NormalSet) At(i int) r3.Vec {
	return s.normals[i]
}

// Degenerate returns the number of faces without a defined normal
func (s NormalSet) Degenerate() int {
	return s.degenerate
}
