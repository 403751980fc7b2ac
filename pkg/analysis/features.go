package analysis

import (
	"fmt"
	"math"

	"github.com/philipparndt/gomold/pkg/geometry"
	"github.com/philipparndt/gomold/pkg/mesh"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// volumeEpsilon is the enclosed volume below which a mesh is treated as open
// and has no centre of mass of its own
const volumeEpsilon = 1e-12

// Features contains the geometric properties of a part
type Features struct {
	Volume        float64              `json:"volume"`
	SurfaceArea   float64              `json:"surface_area"`
	BoundingBox   geometry.BoundingBox `json:"bounding_box"`
	Extents       r3.Vec               `json:"extents"`
	Centroid      r3.Vec               `json:"centroid"`
	CenterOfMass  r3.Vec               `json:"center_of_mass"`
	AspectRatio   float64              `json:"aspect_ratio"`
	TriangleCount int                  `json:"triangle_count"`
	VertexCount   int                  `json:"vertex_count"`
	EdgeCount     int                  `json:"edge_count"`
	MinEdgeLength float64              `json:"min_edge_length"`
	MaxEdgeLength float64              `json:"max_edge_length"`
	AvgEdgeLength float64              `json:"avg_edge_length"`
}

// ExtractFeatures measures the part. Volume is the enclosed volume of the
// closed surface. Centroid is the area-weighted mean of the face centres;
// CenterOfMass is the centre of the enclosed solid and equals Centroid for
// open meshes. A bounding box that is
// flat along any axis has no defined aspect ratio and yields
// ErrGeometryDegenerate.
func ExtractFeatures(m *mesh.TriangleMesh) (Features, error) {
	if m == nil || m.FaceCount() == 0 {
		return Features{}, fmt.Errorf("no faces to measure: %w", mesh.ErrInvalidMesh)
	}

	bbox := m.BoundingBox()
	result := Features{
		BoundingBox:   bbox,
		Extents:       bbox.Size(),
		TriangleCount: m.FaceCount(),
		VertexCount:   m.VertexCount(),
	}

	minExtent := geometry.MinComponent(result.Extents)
	if minExtent <= 0 {
		return Features{}, fmt.Errorf("bounding box %s is flat: %w", FormatVector(result.Extents), mesh.ErrGeometryDegenerate)
	}
	result.AspectRatio = geometry.MaxComponent(result.Extents) / minExtent

	signedVolume := 0.0
	var massMoment, areaMoment r3.Vec
	for i := 0; i < m.FaceCount(); i++ {
		tri := m.Triangle(i)
		area := tri.Area()
		vol := tri.SignedVolume()

		result.SurfaceArea += area
		signedVolume += vol

		// Tetrahedron (origin, V1, V2, V3) has its centroid at the vertex sum / 4
		sum := r3.Add(r3.Add(tri.V1, tri.V2), tri.V3)
		massMoment = r3.Add(massMoment, r3.Scale(vol/4, sum))
		areaMoment = r3.Add(areaMoment, r3.Scale(area, tri.Center()))
	}
	result.Volume = math.Abs(signedVolume)

	result.Centroid = bbox.Center()
	if result.SurfaceArea > 0 {
		result.Centroid = r3.Scale(1/result.SurfaceArea, areaMoment)
	}
	result.CenterOfMass = result.Centroid
	if result.Volume > volumeEpsilon {
		result.CenterOfMass = r3.Scale(1/signedVolume, massMoment)
	}

	lengths := edgeLengths(m)
	result.EdgeCount = len(lengths)
	if len(lengths) > 0 {
		result.MinEdgeLength = floats.Min(lengths)
		result.MaxEdgeLength = floats.Max(lengths)
		result.AvgEdgeLength = floats.Sum(lengths) / float64(len(lengths))
	}

	return result, nil
}

// edgeLengths returns the length of every distinct undirected edge
func edgeLengths(m *mesh.TriangleMesh) []float64 {
	seen := make(map[[2]int]struct{}, m.FaceCount()*3/2)
	lengths := make([]float64, 0, m.FaceCount()*3/2)

	for i := 0; i < m.FaceCount(); i++ {
		f := m.Face(i)
		for k := 0; k < 3; k++ {
			a, b := f[k], f[(k+1)%3]
			if a > b {
				a, b = b, a
			}
			key := [2]int{a, b}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			lengths = append(lengths, r3.Norm(r3.Sub(m.Vertex(b), m.Vertex(a))))
		}
	}
	return lengths
}

// FormatVector formats a 3D vector
func FormatVector(v r3.Vec) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
