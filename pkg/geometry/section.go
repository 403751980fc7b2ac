package geometry

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// contourTolerance is the distance below which two section points are
// considered the same point when chaining segments into contours.
const contourTolerance = 1e-6

// Plane is an oriented cutting plane
type Plane struct {
	Origin r3.Vec
	Normal r3.Vec // unit length
}

// NewPlane creates a plane through origin. The normal is normalized; a zero
// normal yields false.
func NewPlane(origin, normal r3.Vec) (Plane, bool) {
	n, ok := Normalize(normal)
	if !ok {
		return Plane{}, false
	}
	return Plane{Origin: origin, Normal: n}, true
}

// SignedDistance returns the distance of point from the plane, positive on
// the side the normal points to
func (p Plane) SignedDistance(point r3.Vec) float64 {
	return r3.Dot(p.Normal, r3.Sub(point, p.Origin))
}

// Basis returns an orthonormal in-plane basis (u, v) with u × v = normal
func (p Plane) Basis() (r3.Vec, r3.Vec) {
	helper := r3.Vec{X: 1}
	if abs(p.Normal.X) > 0.9 {
		helper = r3.Vec{Y: 1}
	}
	u, _ := Normalize(r3.Cross(p.Normal, helper))
	v := r3.Cross(p.Normal, u)
	return u, v
}

// Project maps a point into 2D plane coordinates
func (p Plane) Project(point r3.Vec) r2.Vec {
	u, v := p.Basis()
	rel := r3.Sub(point, p.Origin)
	return r2.Vec{X: r3.Dot(rel, u), Y: r3.Dot(rel, v)}
}

// Segment is a straight piece of a section curve in 3D
type Segment struct {
	A, B r3.Vec
}

// Length returns the segment length
func (s Segment) Length() float64 {
	return r3.Norm(r3.Sub(s.B, s.A))
}

// IntersectTriangle cuts a triangle with the plane. Vertices on the plane
// count as lying below it, so an edge shared by two faces is reported by
// exactly one of them and coplanar faces produce no segment.
func IntersectTriangle(p Plane, t Triangle) (Segment, bool) {
	verts := t.Vertices()
	var dist [3]float64
	above := 0
	for i, v := range verts {
		dist[i] = p.SignedDistance(v)
		if dist[i] > 0 {
			above++
		}
	}
	if above == 0 || above == 3 {
		return Segment{}, false
	}

	points := make([]r3.Vec, 0, 2)
	for i := 0; i < 3; i++ {
		j := (i + 1) % 3
		if (dist[i] > 0) == (dist[j] > 0) {
			continue
		}
		tParam := dist[i] / (dist[i] - dist[j])
		points = append(points, Lerp(verts[i], verts[j], tParam))
	}
	if len(points) != 2 {
		return Segment{}, false
	}
	return Segment{A: points[0], B: points[1]}, true
}

// Polyline is a chain of section points in plane coordinates
type Polyline struct {
	Points []r2.Vec
	Closed bool
}

// Length returns the arc length, including the closing edge of closed loops
func (pl Polyline) Length() float64 {
	total := 0.0
	for i := 1; i < len(pl.Points); i++ {
		total += r2.Norm(r2.Sub(pl.Points[i], pl.Points[i-1]))
	}
	if pl.Closed && len(pl.Points) > 2 {
		total += r2.Norm(r2.Sub(pl.Points[0], pl.Points[len(pl.Points)-1]))
	}
	return total
}

// Section is the planar curve set where a plane cuts a surface mesh
type Section struct {
	Plane    Plane
	Segments []Segment
	Planar   [][2]r2.Vec
	Contours []Polyline
}

// NewSection projects the segments into the plane and chains them into
// contours
func NewSection(p Plane, segments []Segment) Section {
	planar := make([][2]r2.Vec, len(segments))
	for i, s := range segments {
		planar[i] = [2]r2.Vec{p.Project(s.A), p.Project(s.B)}
	}
	return Section{
		Plane:    p,
		Segments: segments,
		Planar:   planar,
		Contours: ChainSegments(planar, contourTolerance),
	}
}

// Length returns the total arc length of all projected segments
func (s Section) Length() float64 {
	total := 0.0
	for _, seg := range s.Planar {
		total += r2.Norm(r2.Sub(seg[1], seg[0]))
	}
	return total
}

// ChainSegments orders unordered segments into one or more contours.
// Segments that do not connect end up as open polylines.
func ChainSegments(segments [][2]r2.Vec, tolerance float64) []Polyline {
	if len(segments) == 0 {
		return nil
	}

	same := func(a, b r2.Vec) bool {
		d := r2.Sub(a, b)
		return d.X*d.X+d.Y*d.Y < tolerance*tolerance
	}

	unused := make([][2]r2.Vec, 0, len(segments))
	for _, s := range segments {
		if !same(s[0], s[1]) {
			unused = append(unused, s)
		}
	}

	var contours []Polyline
	for len(unused) > 0 {
		current := unused[0]
		unused = unused[1:]
		points := []r2.Vec{current[0], current[1]}
		closed := false

		for len(unused) > 0 {
			last := points[len(points)-1]
			found := false
			for j, s := range unused {
				var next r2.Vec
				switch {
				case same(s[0], last):
					next = s[1]
				case same(s[1], last):
					next = s[0]
				default:
					continue
				}
				points = append(points, next)
				unused = append(unused[:j], unused[j+1:]...)
				found = true
				break
			}

			if len(points) > 3 && same(points[0], points[len(points)-1]) {
				points = points[:len(points)-1]
				closed = true
				break
			}
			if !found {
				break
			}
		}

		contours = append(contours, Polyline{Points: points, Closed: closed})
	}

	return contours
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
