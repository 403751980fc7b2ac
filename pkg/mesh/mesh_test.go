package mesh_test

import (
	"math"
	"testing"

	"github.com/philipparndt/gomold/internal/sample"
	"github.com/philipparndt/gomold/pkg/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func box(t *testing.T, lo, hi r3.Vec) *mesh.TriangleMesh {
	t.Helper()
	m, err := sample.Box(lo, hi)
	require.NoError(t, err)
	return m
}

func cube(t *testing.T) *mesh.TriangleMesh {
	return box(t, r3.Vec{X: -5, Y: -5, Z: -5}, r3.Vec{X: 5, Y: 5, Z: 5})
}

func TestNewRejectsEmptyMesh(t *testing.T) {
	_, err := mesh.New([]r3.Vec{{X: 1}}, nil)
	assert.ErrorIs(t, err, mesh.ErrInvalidMesh)
}

func TestNewRejectsOutOfRangeIndex(t *testing.T) {
	vertices := []r3.Vec{{}, {X: 1}, {Y: 1}}

	_, err := mesh.New(vertices, [][3]int{{0, 1, 3}})
	assert.ErrorIs(t, err, mesh.ErrInvalidMesh)

	_, err = mesh.New(vertices, [][3]int{{-1, 1, 2}})
	assert.ErrorIs(t, err, mesh.ErrInvalidMesh)
}

func TestNewRejectsNonFiniteVertex(t *testing.T) {
	vertices := []r3.Vec{{}, {X: math.NaN()}, {Y: 1}}

	_, err := mesh.New(vertices, [][3]int{{0, 1, 2}})
	assert.ErrorIs(t, err, mesh.ErrInvalidMesh)
}

func TestNewCopiesInput(t *testing.T) {
	vertices := []r3.Vec{{}, {X: 1}, {Y: 1}}
	faces := [][3]int{{0, 1, 2}}

	m, err := mesh.New(vertices, faces)
	require.NoError(t, err)

	vertices[1] = r3.Vec{X: 100}
	faces[0] = [3]int{2, 1, 0}

	assert.Equal(t, r3.Vec{X: 1}, m.Vertex(1))
	assert.Equal(t, [3]int{0, 1, 2}, m.Face(0))
}

func TestBuilderWeldsVertices(t *testing.T) {
	m := cube(t)

	assert.Equal(t, 8, m.VertexCount())
	assert.Equal(t, 12, m.FaceCount())
}

func TestBoundingBoxAndCentroid(t *testing.T) {
	m := box(t, r3.Vec{X: 0, Y: 0, Z: 0}, r3.Vec{X: 4, Y: 2, Z: 6})

	bbox := m.BoundingBox()
	assert.Equal(t, r3.Vec{X: 0, Y: 0, Z: 0}, bbox.Min)
	assert.Equal(t, r3.Vec{X: 4, Y: 2, Z: 6}, bbox.Max)
	assert.Equal(t, r3.Vec{X: 2, Y: 1, Z: 3}, m.Centroid())
}

func TestComputeNormalsPointOutwards(t *testing.T) {
	m := cube(t)
	normals := mesh.ComputeNormals(m)

	require.Equal(t, m.FaceCount(), normals.Len())
	assert.Zero(t, normals.Degenerate())

	for i := 0; i < m.FaceCount(); i++ {
		n := normals.At(i)
		center := m.Triangle(i).Center()
		assert.InDelta(t, 1.0, r3.Norm(n), 1e-12)
		assert.Greater(t, r3.Dot(n, r3.Sub(center, m.Centroid())), 0.0, "face %d points inwards", i)
	}
}

func TestNewNormalSetCountsDegenerate(t *testing.T) {
	normals := mesh.NewNormalSet([]r3.Vec{{Z: 2}, {}, {X: -3}})

	assert.Equal(t, 3, normals.Len())
	assert.Equal(t, 1, normals.Degenerate())
	assert.Equal(t, r3.Vec{Z: 1}, normals.At(0))
	assert.Equal(t, r3.Vec{}, normals.At(1))
	assert.Equal(t, r3.Vec{X: -1}, normals.At(2))
}

func TestFingerprint(t *testing.T) {
	a := cube(t)
	b := cube(t)
	c := box(t, r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1})

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestWithName(t *testing.T) {
	m := cube(t)
	named := m.WithName("cube")

	assert.Equal(t, "cube", named.Name())
	assert.Equal(t, "box", m.Name())
	assert.Equal(t, m.FaceCount(), named.FaceCount())
}

func TestBuilderAddQuad(t *testing.T) {
	b := mesh.NewBuilder()
	b.AddQuad(r3.Vec{}, r3.Vec{X: 1}, r3.Vec{X: 1, Y: 1}, r3.Vec{Y: 1})

	assert.Equal(t, 2, b.FaceCount())

	m, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, 4, m.VertexCount())
	assert.Equal(t, [3]int{0, 1, 2}, m.Face(0))
	assert.Equal(t, [3]int{0, 2, 3}, m.Face(1))
}

func TestBuilderEmpty(t *testing.T) {
	_, err := mesh.NewBuilder().Build()
	assert.ErrorIs(t, err, mesh.ErrInvalidMesh)
}
