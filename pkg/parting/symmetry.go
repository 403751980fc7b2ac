package parting

import (
	"sort"

	"github.com/philipparndt/gomold/pkg/geometry"
	"github.com/philipparndt/gomold/pkg/mesh"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// DefaultSymmetryTolerance is the absolute coordinate tolerance used when
// comparing a vertex set with its mirror image
const DefaultSymmetryTolerance = 1e-2

// IsSymmetric reports whether the vertex set of m is mirror-symmetric across
// the candidate plane through the origin. The input and mirrored vertex
// sets are compared column by column after sorting each column on its own,
// so this checks the coordinate distributions rather than a true point
// correspondence.
func IsSymmetric(m *mesh.TriangleMesh, axis Axis, tolerance float64) bool {
	column := make([]float64, m.VertexCount())
	for i := range column {
		column[i] = geometry.Component(m.Vertex(i), axis.MirrorComponent())
	}

	// Mirroring only negates this column; the other two sort identically.
	mirrored := make([]float64, len(column))
	copy(mirrored, column)
	floats.Scale(-1, mirrored)

	sort.Float64s(column)
	sort.Float64s(mirrored)

	for i := range column {
		if !scalar.EqualWithinAbs(column[i], mirrored[i], tolerance) {
			return false
		}
	}
	return true
}

// SymmetricAxes evaluates IsSymmetric for every candidate, indexed by axis
func SymmetricAxes(m *mesh.TriangleMesh, tolerance float64) [3]bool {
	var out [3]bool
	for _, a := range Axes {
		out[a] = IsSymmetric(m, a, tolerance)
	}
	return out
}

// SymmetricPlanes returns the symmetry flag of every candidate plane
func SymmetricPlanes(m *mesh.TriangleMesh, tolerance float64) map[Axis]bool {
	flags := SymmetricAxes(m, tolerance)
	out := make(map[Axis]bool, len(flags))
	for _, a := range Axes {
		out[a] = flags[a]
	}
	return out
}
