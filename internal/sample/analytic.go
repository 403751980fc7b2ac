// Package sample builds demonstration parts and test fixtures
package sample

import (
	"github.com/philipparndt/gomold/pkg/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// Box returns an outward-wound axis-aligned box between lo and hi, 12
// triangles on 8 vertices
func Box(lo, hi r3.Vec) (*mesh.TriangleMesh, error) {
	b := mesh.NewBuilder()
	b.SetName("box")
	addBox(b, lo, hi)
	return b.Build()
}

// Cube returns a cube with the given edge length centred on the origin
func Cube(size float64) (*mesh.TriangleMesh, error) {
	h := size / 2
	return Box(r3.Vec{X: -h, Y: -h, Z: -h}, r3.Vec{X: h, Y: h, Z: h})
}

// Overhang returns a cube centred on the origin with a grid of pyramid
// spikes hanging from its bottom face. Every spike face points downwards,
// so the part cannot be released along Z.
func Overhang(size float64, grid int, height float64) (*mesh.TriangleMesh, error) {
	h := size / 2
	b := mesh.NewBuilder()
	b.SetName("overhang")
	addBox(b, r3.Vec{X: -h, Y: -h, Z: -h}, r3.Vec{X: h, Y: h, Z: h})

	if grid < 1 {
		return b.Build()
	}

	step := size / float64(grid)
	z := -h
	for i := 0; i < grid; i++ {
		for j := 0; j < grid; j++ {
			x0 := -h + float64(i)*step
			y0 := -h + float64(j)*step
			x1, y1 := x0+step, y0+step

			p00 := r3.Vec{X: x0, Y: y0, Z: z}
			p10 := r3.Vec{X: x1, Y: y0, Z: z}
			p11 := r3.Vec{X: x1, Y: y1, Z: z}
			p01 := r3.Vec{X: x0, Y: y1, Z: z}
			apex := r3.Vec{X: (x0 + x1) / 2, Y: (y0 + y1) / 2, Z: z - height}

			b.AddTriangle(p00, apex, p10)
			b.AddTriangle(p10, apex, p11)
			b.AddTriangle(p11, apex, p01)
			b.AddTriangle(p01, apex, p00)
		}
	}
	return b.Build()
}

func addBox(b *mesh.Builder, lo, hi r3.Vec) {
	p := func(x, y, z int) r3.Vec {
		v := lo
		if x == 1 {
			v.X = hi.X
		}
		if y == 1 {
			v.Y = hi.Y
		}
		if z == 1 {
			v.Z = hi.Z
		}
		return v
	}

	b.AddQuad(p(0, 0, 0), p(0, 0, 1), p(0, 1, 1), p(0, 1, 0)) // -X
	b.AddQuad(p(1, 0, 0), p(1, 1, 0), p(1, 1, 1), p(1, 0, 1)) // +X
	b.AddQuad(p(0, 0, 0), p(1, 0, 0), p(1, 0, 1), p(0, 0, 1)) // -Y
	b.AddQuad(p(0, 1, 0), p(0, 1, 1), p(1, 1, 1), p(1, 1, 0)) // +Y
	b.AddQuad(p(0, 0, 0), p(0, 1, 0), p(1, 1, 0), p(1, 0, 0)) // -Z
	b.AddQuad(p(0, 0, 1), p(1, 0, 1), p(1, 1, 1), p(0, 1, 1)) // +Z
}
