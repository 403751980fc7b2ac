package geometry

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Triangle represents a triangular facet in 3D space. Winding is
// counter-clockwise when seen from the outside of the part.
type Triangle struct {
	V1, V2, V3 r3.Vec
}

// NewTriangle creates a new triangle
func NewTriangle(v1, v2, v3 r3.Vec) Triangle {
	return Triangle{V1: v1, V2: v2, V3: v3}
}

// Normal computes the unit face normal from the winding order.
// Degenerate triangles return the zero vector and false.
func (t Triangle) Normal() (r3.Vec, bool) {
	edge1 := r3.Sub(t.V2, t.V1)
	edge2 := r3.Sub(t.V3, t.V1)
	return Normalize(r3.Cross(edge1, edge2))
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	edge1 := r3.Sub(t.V2, t.V1)
	edge2 := r3.Sub(t.V3, t.V1)
	return r3.Norm(r3.Cross(edge1, edge2)) / 2.0
}

// Center returns the centroid of the triangle
func (t Triangle) Center() r3.Vec {
	return r3.Scale(1.0/3.0, r3.Add(r3.Add(t.V1, t.V2), t.V3))
}

// SignedVolume returns the signed volume of the tetrahedron spanned by the
// origin and the triangle: V1 · (V2 × V3) / 6. Summed over a closed,
// outward-wound mesh this is the enclosed volume.
func (t Triangle) SignedVolume() float64 {
	return r3.Dot(t.V1, r3.Cross(t.V2, t.V3)) / 6.0
}

// Vertices returns the corners in winding order
func (t Triangle) Vertices() [3]r3.Vec {
	return [3]r3.Vec{t.V1, t.V2, t.V3}
}
