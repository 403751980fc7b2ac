// Package preview renders a headless image of a part with its parting
// analysis: undercut faces, the parting plane and optional overlays
package preview

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/philipparndt/gomold/internal/cooling"
	"github.com/philipparndt/gomold/internal/heatmap"
	"github.com/philipparndt/gomold/pkg/geometry"
	"github.com/philipparndt/gomold/pkg/mesh"
	"github.com/philipparndt/gomold/pkg/parting"
	"golang.org/x/image/draw"
	"gonum.org/v1/gonum/spatial/r3"
)

// PlaneScale is the size of the drawn parting plane relative to the part's
// bounding box
const PlaneScale = 1.2

// planeAlpha is the opacity of the parting plane quad
const planeAlpha = 0.3

var (
	background    = color.RGBA{R: 0xf5, G: 0xf5, B: 0xf5, A: 0xff}
	surfaceColor  = color.RGBA{R: 0xb4, G: 0xb4, B: 0xbe, A: 0xff}
	undercutColor = color.RGBA{R: 0xdc, G: 0x32, B: 0x32, A: 0xff}
	planeColor    = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	channelColor  = color.RGBA{R: 0x1e, G: 0x64, B: 0xdc, A: 0xff}
)

// Options controls the rendered image
type Options struct {
	Width       int
	Height      int
	Supersample int
	Yaw         float64 // degrees
	Pitch       float64 // degrees
	ShowPlane   bool
}

// DefaultOptions returns an 800×600 view from above and to the side
func DefaultOptions() Options {
	return Options{
		Width:       800,
		Height:      600,
		Supersample: 2,
		Yaw:         35,
		Pitch:       25,
		ShowPlane:   true,
	}
}

// Validate checks the image size and supersampling factor
func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", o.Width, o.Height)
	}
	if o.Supersample < 1 {
		return fmt.Errorf("supersample must be at least 1, got %d", o.Supersample)
	}
	return nil
}

// Scene is everything drawn into one preview
type Scene struct {
	Mesh *mesh.TriangleMesh
	// Result marks undercut faces and the parting plane; nil draws the bare
	// part
	Result   *parting.SelectionResult
	Heatmap  []heatmap.Point
	Channels []cooling.Channel
	// Camera overrides the framing derived from Options
	Camera *Camera
}

// PlaneQuad returns the corners of the parting plane drawn for axis: a
// rectangle through the bounding box centre spanning PlaneScale times the
// box extents in the two in-plane directions
func PlaneQuad(bbox geometry.BoundingBox, axis parting.Axis) [4]r3.Vec {
	center := bbox.Center()
	half := r3.Scale(PlaneScale/2, bbox.Size())

	var u, v r3.Vec
	switch axis {
	case parting.XY:
		u, v = r3.Vec{X: half.X}, r3.Vec{Y: half.Y}
	case parting.XZ:
		u, v = r3.Vec{X: half.X}, r3.Vec{Z: half.Z}
	default:
		u, v = r3.Vec{Y: half.Y}, r3.Vec{Z: half.Z}
	}

	return [4]r3.Vec{
		r3.Sub(r3.Sub(center, u), v),
		r3.Sub(r3.Add(center, u), v),
		r3.Add(r3.Add(center, u), v),
		r3.Add(r3.Sub(center, u), v),
	}
}

// Render draws the scene
func Render(ctx context.Context, scene Scene, opts Options) (*image.RGBA, error) {
	if scene.Mesh == nil || scene.Mesh.FaceCount() == 0 {
		return nil, fmt.Errorf("nothing to render: %w", mesh.ErrInvalidMesh)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	cam := scene.Camera
	if cam == nil {
		cam = NewCamera(scene.Mesh.BoundingBox(), opts.Yaw, opts.Pitch)
	}

	width := opts.Width * opts.Supersample
	height := opts.Height * opts.Supersample
	fw, fh := float64(width), float64(height)
	f := newFrame(width, height, background)

	project := func(p r3.Vec) vertex {
		x, y, z := cam.Project(p, fw, fh)
		return vertex{x, y, z}
	}

	undercut := make(map[int]bool)
	if scene.Result != nil {
		for _, i := range scene.Result.UndercutFaces {
			undercut[i] = true
		}
	}

	view := cam.ViewDirection()
	light := r3.Unit(r3.Add(r3.Scale(-1, view), r3.Vec{Z: 0.5}))
	for i := 0; i < scene.Mesh.FaceCount(); i++ {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		tri := scene.Mesh.Triangle(i)
		n, ok := tri.Normal()
		if !ok {
			continue
		}

		col := surfaceColor
		if undercut[i] {
			col = undercutColor
		}
		intensity := 0.35 + 0.65*math.Abs(r3.Dot(n, light))

		f.fillTriangle([3]vertex{project(tri.V1), project(tri.V2), project(tri.V3)}, shade(col, intensity))
	}

	thickness := max(1, opts.Supersample*2)
	for _, ch := range scene.Channels {
		f.drawLine(project(ch.Start), project(ch.End), thickness, channelColor)
	}

	if scene.Result != nil && opts.ShowPlane {
		q := PlaneQuad(scene.Mesh.BoundingBox(), scene.Result.BestAxis)
		a, b, c, d := project(q[0]), project(q[1]), project(q[2]), project(q[3])
		f.blendTriangle([3]vertex{a, b, c}, planeColor, planeAlpha)
		f.blendTriangle([3]vertex{a, c, d}, planeColor, planeAlpha)
	}

	for _, p := range scene.Heatmap {
		v := project(p.Position)
		f.plotSquare(int(math.Round(v.x)), int(math.Round(v.y)), thickness, math.Inf(1), heatColor(p.Value))
	}

	if opts.Supersample == 1 {
		return f.img, nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), f.img, f.img.Bounds(), draw.Src, nil)
	return dst, nil
}

// heatColor maps a value in [0, 1] from blue to red
func heatColor(value float64) color.RGBA {
	v := math.Max(0, math.Min(1, value))
	return color.RGBA{
		R: uint8(math.Round(255 * v)),
		G: uint8(math.Round(64 * (1 - math.Abs(2*v-1)))),
		B: uint8(math.Round(255 * (1 - v))),
		A: 0xff,
	}
}
