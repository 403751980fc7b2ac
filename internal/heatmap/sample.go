// Package heatmap samples points inside a part and assigns them a
// temperature-like value that falls off with distance from the core
package heatmap

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/philipparndt/gomold/pkg/geometry"
	"github.com/philipparndt/gomold/pkg/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// Falloff is the squared distance scale of the value function
const Falloff = 5000.0

// attemptsPerSample bounds the rejection sampling effort
const attemptsPerSample = 200

// rayDirection is not axis-aligned so parity rays rarely graze
// edges of axis-aligned geometry
var rayDirection = r3.Unit(r3.Vec{X: 1, Y: 0.3713, Z: 0.1597})

// Point is one sample inside the part
type Point struct {
	Position r3.Vec
	Value    float64
}

// Value returns exp(-|p - centre|² / Falloff)
func Value(p, centre r3.Vec) float64 {
	d := r3.Sub(p, centre)
	return math.Exp(-r3.Dot(d, d) / Falloff)
}

// Inside reports whether p lies inside the closed surface, by counting
// crossings of a ray from p
func Inside(m *mesh.TriangleMesh, p r3.Vec) bool {
	crossings := 0
	for i := 0; i < m.FaceCount(); i++ {
		if rayHits(p, rayDirection, m.Triangle(i)) {
			crossings++
		}
	}
	return crossings%2 == 1
}

// rayHits is the Möller-Trumbore ray/triangle test for hits in front of the
// origin
func rayHits(origin, dir r3.Vec, t geometry.Triangle) bool {
	const eps = 1e-12

	e1 := r3.Sub(t.V2, t.V1)
	e2 := r3.Sub(t.V3, t.V1)
	p := r3.Cross(dir, e2)
	det := r3.Dot(e1, p)
	if math.Abs(det) < eps {
		return false
	}
	inv := 1 / det

	s := r3.Sub(origin, t.V1)
	u := r3.Dot(s, p) * inv
	if u < 0 || u > 1 {
		return false
	}
	q := r3.Cross(s, e1)
	v := r3.Dot(dir, q) * inv
	if v < 0 || u+v > 1 {
		return false
	}
	return r3.Dot(e2, q)*inv > eps
}

// Sample draws up to count points uniformly from the part volume. The
// sequence is deterministic for a given seed. Fewer points are returned
// when the part fills little of its bounding box.
func Sample(ctx context.Context, m *mesh.TriangleMesh, count int, seed uint64) ([]Point, error) {
	if count <= 0 {
		return nil, fmt.Errorf("sample count must be positive, got %d", count)
	}

	bbox := m.BoundingBox()
	size := bbox.Size()
	centre := bbox.Center()
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	points := make([]Point, 0, count)
	for attempt := 0; attempt < count*attemptsPerSample && len(points) < count; attempt++ {
		if attempt%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		p := r3.Vec{
			X: bbox.Min.X + rng.Float64()*size.X,
			Y: bbox.Min.Y + rng.Float64()*size.Y,
			Z: bbox.Min.Z + rng.Float64()*size.Z,
		}
		if Inside(m, p) {
			points = append(points, Point{Position: p, Value: Value(p, centre)})
		}
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("no interior points found: %w", mesh.ErrGeometryDegenerate)
	}
	return points, nil
}
