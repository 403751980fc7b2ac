package parting

import (
	"math"

	"github.com/philipparndt/gomold/pkg/mesh"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/spatial/r3"
)

// SectionLength measures the arc length of the curve where a plane cuts the
// mesh. A plane that misses the mesh has length 0.
type SectionLength interface {
	SectionLength(m *mesh.TriangleMesh, origin, normal r3.Vec) (float64, error)
}

// PlanarSection measures the length from the mesh cross-section
type PlanarSection struct{}

func (PlanarSection) SectionLength(m *mesh.TriangleMesh, origin, normal r3.Vec) (float64, error) {
	section, ok := m.CrossSection(origin, normal)
	if !ok {
		return 0, nil
	}
	return section.Length(), nil
}

// NoSection is used when cross-sections are disabled; every plane measures 0
type NoSection struct{}

func (NoSection) SectionLength(*mesh.TriangleMesh, r3.Vec, r3.Vec) (float64, error) {
	return 0, nil
}

// ComplexityEvaluator rates a candidate plane by the length of the parting
// line it would produce
type ComplexityEvaluator struct {
	Section SectionLength
	Logger  zerolog.Logger
}

// Complexity measures the section through the bounding box centre
func (e ComplexityEvaluator) Complexity(m *mesh.TriangleMesh, axis Axis) float64 {
	return e.ComplexityAt(m, m.Centroid(), axis)
}

// ComplexityAt measures the section through origin. Failures of the section
// capability never propagate; they rate the plane 0.
func (e ComplexityEvaluator) ComplexityAt(m *mesh.TriangleMesh, origin r3.Vec, axis Axis) float64 {
	if e.Section == nil {
		e.Logger.Debug().Stringer("axis", axis).Err(mesh.ErrCapabilityUnavailable).Msg("no section capability, complexity 0")
		return 0
	}

	length, err := e.Section.SectionLength(m, origin, axis.Normal())
	if err != nil {
		e.Logger.Debug().Stringer("axis", axis).Err(err).Msg("section failed, complexity 0")
		return 0
	}
	if math.IsNaN(length) || math.IsInf(length, 0) || length < 0 {
		e.Logger.Debug().Stringer("axis", axis).Float64("length", length).Msg("invalid section length, complexity 0")
		return 0
	}
	return length
}
