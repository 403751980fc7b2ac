package sample

import (
	"fmt"
	"sort"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/philipparndt/gomold/pkg/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultMeshCells is the marching cubes resolution along the longest axis
const DefaultMeshCells = 64

// Part is a named solid that can be meshed
type Part struct {
	Name        string
	Description string
	build       func() (sdf.SDF3, error)
}

var parts = map[string]Part{
	"rounded-box": {
		Name:        "rounded-box",
		Description: "40x30x20 box with 3 mm edge rounding",
		build: func() (sdf.SDF3, error) {
			return sdf.Box3D(v3.Vec{X: 40, Y: 30, Z: 20}, 3)
		},
	},
	"cylinder": {
		Name:        "cylinder",
		Description: "upright cylinder, 30 mm high, 12 mm radius",
		build: func() (sdf.SDF3, error) {
			return sdf.Cylinder3D(30, 12, 1)
		},
	},
	"mushroom": {
		Name:        "mushroom",
		Description: "thin stem under a wide cap, undercut along Z",
		build: func() (sdf.SDF3, error) {
			stem, err := sdf.Cylinder3D(20, 4, 0)
			if err != nil {
				return nil, err
			}
			head, err := sdf.Cylinder3D(6, 15, 1)
			if err != nil {
				return nil, err
			}
			head = sdf.Transform3D(head, sdf.Translate3d(v3.Vec{Z: 13}))
			return sdf.Union3D(stem, head), nil
		},
	},
	"bracket": {
		Name:        "bracket",
		Description: "L-shaped bracket with a boss, no mirror plane along X",
		build: func() (sdf.SDF3, error) {
			base, err := sdf.Box3D(v3.Vec{X: 40, Y: 20, Z: 5}, 0)
			if err != nil {
				return nil, err
			}
			wall, err := sdf.Box3D(v3.Vec{X: 5, Y: 20, Z: 25}, 0)
			if err != nil {
				return nil, err
			}
			wall = sdf.Transform3D(wall, sdf.Translate3d(v3.Vec{X: -17.5, Z: 10}))
			boss, err := sdf.Cylinder3D(8, 5, 0)
			if err != nil {
				return nil, err
			}
			boss = sdf.Transform3D(boss, sdf.Translate3d(v3.Vec{X: 10, Z: 6.5}))
			return sdf.Union3D(base, wall, boss), nil
		},
	},
}

// Parts returns the available SDF parts sorted by name
func Parts() []Part {
	out := make([]Part, 0, len(parts))
	for _, p := range parts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Generate meshes the named part with marching cubes
func Generate(name string, cells int) (*mesh.TriangleMesh, error) {
	p, ok := parts[name]
	if !ok {
		return nil, fmt.Errorf("unknown sample part %q", name)
	}
	if cells <= 0 {
		cells = DefaultMeshCells
	}

	solid, err := p.build()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s: %w", name, err)
	}

	triangles := render.ToTriangles(solid, render.NewMarchingCubesUniform(cells))

	b := mesh.NewBuilder()
	b.SetName(name)
	for _, tri := range triangles {
		b.AddTriangle(toVec(tri[0]), toVec(tri[1]), toVec(tri[2]))
	}

	m, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to mesh %s: %w", name, err)
	}
	return m, nil
}

func toVec(v v3.Vec) r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}
