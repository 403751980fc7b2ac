package parting

import (
	"fmt"
	"math"

	"github.com/philipparndt/gomold/pkg/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultDraftToleranceDeg is the largest angle between a face normal and the
// pull direction that still counts as compliant
const DefaultDraftToleranceDeg = 3.0

// DraftAngle returns the angle in degrees between the normal and the pull
// direction, ignoring orientation
func DraftAngle(normal r3.Vec, axis Axis) float64 {
	cos := math.Abs(r3.Dot(normal, axis.Normal()))
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}

// DraftCompliance returns the fraction of faces whose draft angle is within
// toleranceDeg of the pull direction
func DraftCompliance(normals mesh.NormalSet, axis Axis, toleranceDeg float64) (float64, error) {
	if normals.Len() == 0 {
		return 0, fmt.Errorf("draft compliance of empty face set: %w", mesh.ErrGeometryDegenerate)
	}

	compliant := 0
	for i := 0; i < normals.Len(); i++ {
		if DraftAngle(normals.At(i), axis) <= toleranceDeg {
			compliant++
		}
	}
	return float64(compliant) / float64(normals.Len()), nil
}
