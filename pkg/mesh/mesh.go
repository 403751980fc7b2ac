package mesh

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"

	"github.com/philipparndt/gomold/pkg/geometry"
	"gonum.org/v1/gonum/spatial/r3"
)

// TriangleMesh is an immutable indexed triangle mesh. Faces are wound
// counter-clockwise when seen from outside, so the right-hand normal of each
// face points away from the part.
type TriangleMesh struct {
	name     string
	vertices []r3.Vec
	faces    [][3]int
	bounds   geometry.BoundingBox
}

// New validates and copies the given vertices and faces into a mesh
func New(vertices []r3.Vec, faces [][3]int) (*TriangleMesh, error) {
	if len(faces) == 0 {
		return nil, fmt.Errorf("mesh has no faces: %w", ErrInvalidMesh)
	}

	bounds := geometry.NewBoundingBox()
	for i, v := range vertices {
		if !geometry.IsFinite(v) {
			return nil, fmt.Errorf("vertex %d has non-finite coordinates %v: %w", i, v, ErrInvalidMesh)
		}
		bounds.Extend(v)
	}

	for i, f := range faces {
		for _, idx := range f {
			if idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("face %d references vertex %d of %d: %w", i, idx, len(vertices), ErrInvalidMesh)
			}
		}
	}

	m := &TriangleMesh{
		vertices: make([]r3.Vec, len(vertices)),
		faces:    make([][3]int, len(faces)),
		bounds:   bounds,
	}
	copy(m.vertices, vertices)
	copy(m.faces, faces)
	return m, nil
}

// WithName returns a copy of the mesh carrying a display name. Geometry is
// shared, which is safe because meshes are never mutated.
func (m *TriangleMesh) WithName(name string) *TriangleMesh {
	c := *m
	c.name = name
	return &c
}

// Name returns the display name (the STL solid name or file name)
func (m *TriangleMesh) Name() string {
	return m.name
}

// VertexCount returns the number of vertices
func (m *TriangleMesh) VertexCount() int {
	return len(m.vertices)
}

// FaceCount returns the number of triangles
func (m *TriangleMesh) FaceCount() int {
	return len(m.faces)
}

// Vertex returns the position of vertex i
func (m *TriangleMesh) Vertex(i int) r3.Vec {
	return m.vertices[i]
}

// Face returns the vertex indices of face i
func (m *TriangleMesh) Face(i int) [3]int {
	return m.faces[i]
}

// Vertices returns a copy of all vertex positions
func (m *TriangleMesh) Vertices() []r3.Vec {
	out := make([]r3.Vec, len(m.vertices))
	copy(out, m.vertices)
	return out
}

// Triangle returns face i as a triangle
func (m *TriangleMesh) Triangle(i int) geometry.Triangle {
	f := m.faces[i]
	return geometry.NewTriangle(m.vertices[f[0]], m.vertices[f[1]], m.vertices[f[2]])
}

// Triangles returns all faces as triangles, in face order
func (m *TriangleMesh) Triangles() []geometry.Triangle {
	out := make([]geometry.Triangle, len(m.faces))
	for i := range m.faces {
		out[i] = m.Triangle(i)
	}
	return out
}

// BoundingBox returns the axis-aligned bounds of all vertices
func (m *TriangleMesh) BoundingBox() geometry.BoundingBox {
	return m.bounds
}

// Centroid returns the centre of the bounding box. This is the point the
// parting plane candidates pass through; the volumetric centre of mass is
// computed by the feature extractor.
func (m *TriangleMesh) Centroid() r3.Vec {
	return m.bounds.Center()
}

// Fingerprint returns a hash of the geometry, used as a cache key
func (m *TriangleMesh) Fingerprint() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	put := func(x uint64) {
		binary.LittleEndian.PutUint64(buf[:], x)
		h.Write(buf[:])
	}

	put(uint64(len(m.vertices)))
	put(uint64(len(m.faces)))
	for _, v := range m.vertices {
		put(math.Float64bits(v.X))
		put(math.Float64bits(v.Y))
		put(math.Float64bits(v.Z))
	}
	for _, f := range m.faces {
		put(uint64(f[0]))
		put(uint64(f[1]))
		put(uint64(f[2]))
	}
	return h.Sum64()
}
