package parting

import (
	"github.com/philipparndt/gomold/pkg/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// Partition splits the faces by the sign of normal · pull direction. The
// three fractions sum to 1 for any non-empty face set.
type Partition struct {
	Undercut float64 // dot < 0
	Positive float64 // dot > 0
	Zero     float64 // dot == 0, parallel to the pull direction
}

// UndercutFaces returns, in ascending order, the faces facing against the
// pull direction
func UndercutFaces(normals mesh.NormalSet, axis Axis) []int {
	dir := axis.Normal()
	faces := make([]int, 0)
	for i := 0; i < normals.Len(); i++ {
		if r3.Dot(normals.At(i), dir) < 0 {
			faces = append(faces, i)
		}
	}
	return faces
}

// UndercutRatio returns the fraction of faces facing against the pull
// direction. An empty face set has ratio 0.
func UndercutRatio(normals mesh.NormalSet, axis Axis) float64 {
	return PartitionFaces(normals, axis).Undercut
}

// PartitionFaces classifies every face against the pull direction
func PartitionFaces(normals mesh.NormalSet, axis Axis) Partition {
	n := normals.Len()
	if n == 0 {
		return Partition{}
	}

	dir := axis.Normal()
	var under, pos, zero int
	for i := 0; i < n; i++ {
		switch d := r3.Dot(normals.At(i), dir); {
		case d < 0:
			under++
		case d > 0:
			pos++
		default:
			zero++
		}
	}

	total := float64(n)
	return Partition{
		Undercut: float64(under) / total,
		Positive: float64(pos) / total,
		Zero:     float64(zero) / total,
	}
}
