package mesh

import (
	"github.com/philipparndt/gomold/pkg/geometry"
	"gonum.org/v1/gonum/spatial/r3"
)

// CrossSection cuts the mesh with the plane through origin with the given
// normal. It reports false when the plane misses the mesh, only touches its
// bounding box or meets only degenerate geometry; that is an empty result,
// not an error.
func (m *TriangleMesh) CrossSection(origin, normal r3.Vec) (geometry.Section, bool) {
	plane, ok := geometry.NewPlane(origin, normal)
	if !ok {
		return geometry.Section{}, false
	}

	// Quick reject: unless bounding box corners lie strictly on both sides,
	// no vertex does either and the plane does not cut the solid.
	above, below := false, false
	for _, c := range m.bounds.Corners() {
		d := plane.SignedDistance(c)
		above = above || d > 0
		below = below || d < 0
	}
	if !above || !below {
		return geometry.Section{}, false
	}

	var segments []geometry.Segment
	for i := range m.faces {
		seg, ok := geometry.IntersectTriangle(plane, m.Triangle(i))
		if !ok || seg.Length() == 0 {
			continue
		}
		segments = append(segments, seg)
	}
	if len(segments) == 0 {
		return geometry.Section{}, false
	}

	return geometry.NewSection(plane, segments), true
}
