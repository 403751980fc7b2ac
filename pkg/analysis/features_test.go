package analysis

import (
	"math"
	"testing"

	"github.com/philipparndt/gomold/internal/sample"
	"github.com/philipparndt/gomold/pkg/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestExtractFeaturesBox(t *testing.T) {
	m, err := sample.Box(r3.Vec{X: 1, Y: 2, Z: 3}, r3.Vec{X: 5, Y: 4, Z: 4})
	require.NoError(t, err)

	f, err := ExtractFeatures(m)
	require.NoError(t, err)

	assert.InDelta(t, 8.0, f.Volume, 1e-9)       // 4 * 2 * 1
	assert.InDelta(t, 28.0, f.SurfaceArea, 1e-9) // 2 * (8 + 4 + 2)
	assert.InDelta(t, 4.0, f.AspectRatio, 1e-12) // 4 / 1
	assert.Equal(t, r3.Vec{X: 4, Y: 2, Z: 1}, f.Extents)
	assert.InDelta(t, 3.0, f.Centroid.X, 1e-9)
	assert.InDelta(t, 3.0, f.Centroid.Y, 1e-9)
	assert.InDelta(t, 3.5, f.Centroid.Z, 1e-9)
	assert.InDelta(t, 3.0, f.CenterOfMass.X, 1e-9)
	assert.InDelta(t, 3.5, f.CenterOfMass.Z, 1e-9)
	assert.Equal(t, 12, f.TriangleCount)
	assert.Equal(t, 8, f.VertexCount)
}

func TestExtractFeaturesEdges(t *testing.T) {
	m, err := sample.Cube(2)
	require.NoError(t, err)

	f, err := ExtractFeatures(m)
	require.NoError(t, err)

	// 12 box edges plus one diagonal per side
	assert.Equal(t, 18, f.EdgeCount)
	assert.InDelta(t, 2.0, f.MinEdgeLength, 1e-12)
	assert.InDelta(t, 2*math.Sqrt2, f.MaxEdgeLength, 1e-12)
	assert.InDelta(t, (12*2+6*2*math.Sqrt2)/18, f.AvgEdgeLength, 1e-12)
}

func TestExtractFeaturesCentroidOfUnbalancedPart(t *testing.T) {
	big, err := sample.Box(r3.Vec{}, r3.Vec{X: 2, Y: 2, Z: 2})
	require.NoError(t, err)
	small, err := sample.Box(r3.Vec{X: 10}, r3.Vec{X: 11, Y: 1, Z: 1})
	require.NoError(t, err)

	b := mesh.NewBuilder()
	for _, part := range []*mesh.TriangleMesh{big, small} {
		for _, tri := range part.Triangles() {
			b.AddTriangle(tri.V1, tri.V2, tri.V3)
		}
	}
	m, err := b.Build()
	require.NoError(t, err)

	f, err := ExtractFeatures(m)
	require.NoError(t, err)

	assert.InDelta(t, 9.0, f.Volume, 1e-9)
	assert.InDelta(t, 30.0, f.SurfaceArea, 1e-9)

	// Surface centroid weights each box by its area: 24 and 6
	assert.InDelta(t, (24*1.0+6*10.5)/30, f.Centroid.X, 1e-9)
	assert.InDelta(t, (24*1.0+6*0.5)/30, f.Centroid.Y, 1e-9)
	assert.InDelta(t, (24*1.0+6*0.5)/30, f.Centroid.Z, 1e-9)

	// Centre of mass weights each box by its volume: 8 and 1
	assert.InDelta(t, (8*1.0+1*10.5)/9, f.CenterOfMass.X, 1e-9)
	assert.InDelta(t, (8*1.0+1*0.5)/9, f.CenterOfMass.Y, 1e-9)

	assert.InDelta(t, 5.5, m.Centroid().X, 1e-12)
}

func TestExtractFeaturesFlatMesh(t *testing.T) {
	m, err := mesh.New(
		[]r3.Vec{{}, {X: 1}, {Y: 1}},
		[][3]int{{0, 1, 2}},
	)
	require.NoError(t, err)

	_, err = ExtractFeatures(m)
	assert.ErrorIs(t, err, mesh.ErrGeometryDegenerate)
}

func TestExtractFeaturesNilMesh(t *testing.T) {
	_, err := ExtractFeatures(nil)
	assert.ErrorIs(t, err, mesh.ErrInvalidMesh)
}

func TestFormatVector(t *testing.T) {
	assert.Equal(t, "(1.000000, -2.500000, 0.000000)", FormatVector(r3.Vec{X: 1, Y: -2.5}))
}
