package preview

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/gomold/internal/cooling"
	"github.com/philipparndt/gomold/internal/heatmap"
	"github.com/philipparndt/gomold/internal/sample"
	"github.com/philipparndt/gomold/pkg/geometry"
	"github.com/philipparndt/gomold/pkg/mesh"
	"github.com/philipparndt/gomold/pkg/parting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func smallOptions() Options {
	opts := DefaultOptions()
	opts.Width = 64
	opts.Height = 48
	opts.Supersample = 1
	return opts
}

func allFaces(n int) []int {
	faces := make([]int, n)
	for i := range faces {
		faces[i] = i
	}
	return faces
}

func TestCameraProjectsTargetToCentre(t *testing.T) {
	bbox := geometry.BoundingBox{Min: r3.Vec{X: -5, Y: -5, Z: -5}, Max: r3.Vec{X: 5, Y: 5, Z: 5}}
	cam := NewCamera(bbox, 35, 25)

	x, y, z := cam.Project(bbox.Center(), 200, 100)
	assert.InDelta(t, 100, x, 1e-9)
	assert.InDelta(t, 50, y, 1e-9)
	assert.InDelta(t, cam.Distance, z, 1e-9)
}

func TestCameraPitchIsClamped(t *testing.T) {
	cam := &Camera{Distance: 10, FOV: math.Pi / 4}
	cam.Rotate(0, 10)
	assert.InDelta(t, maxPitch, cam.Pitch, 1e-12)
	cam.Rotate(0, -20)
	assert.InDelta(t, -maxPitch, cam.Pitch, 1e-12)

	cam.Zoom(-2)
	assert.Equal(t, 0.1, cam.Distance)
}

func TestPlaneQuad(t *testing.T) {
	bbox := geometry.BoundingBox{Min: r3.Vec{}, Max: r3.Vec{X: 10, Y: 20, Z: 30}}

	q := PlaneQuad(bbox, parting.XY)
	for _, c := range q {
		assert.Equal(t, 15.0, c.Z)
	}
	assert.InDelta(t, -1, q[0].X, 1e-12)
	assert.InDelta(t, 11, q[2].X, 1e-12)
	assert.InDelta(t, -2, q[0].Y, 1e-12)
	assert.InDelta(t, 22, q[2].Y, 1e-12)

	q = PlaneQuad(bbox, parting.YZ)
	for _, c := range q {
		assert.Equal(t, 5.0, c.X)
	}
	assert.InDelta(t, 36, q[2].Z-q[0].Z, 1e-12)
}

func TestRenderBarePart(t *testing.T) {
	cube, err := sample.Cube(10)
	require.NoError(t, err)

	img, err := Render(context.Background(), Scene{Mesh: cube}, smallOptions())
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 48, img.Bounds().Dy())

	centre := img.RGBAAt(32, 24)
	assert.NotEqual(t, background, centre)
	assert.Equal(t, centre.R, centre.G)
	assert.Equal(t, background, img.RGBAAt(0, 0))
}

func TestRenderMarksUndercuts(t *testing.T) {
	cube, err := sample.Cube(10)
	require.NoError(t, err)

	res := &parting.SelectionResult{BestAxis: parting.XY, UndercutFaces: allFaces(cube.FaceCount())}
	opts := smallOptions()
	opts.ShowPlane = false

	img, err := Render(context.Background(), Scene{Mesh: cube, Result: res}, opts)
	require.NoError(t, err)

	centre := img.RGBAAt(32, 24)
	assert.Greater(t, int(centre.R), int(centre.G)+50)
}

func TestRenderDrawsPlane(t *testing.T) {
	cube, err := sample.Cube(10)
	require.NoError(t, err)

	res := &parting.SelectionResult{BestAxis: parting.XY}
	opts := smallOptions()

	withPlane, err := Render(context.Background(), Scene{Mesh: cube, Result: res}, opts)
	require.NoError(t, err)
	opts.ShowPlane = false
	without, err := Render(context.Background(), Scene{Mesh: cube, Result: res}, opts)
	require.NoError(t, err)

	assert.False(t, bytes.Equal(withPlane.Pix, without.Pix))
}

func TestRenderOverlays(t *testing.T) {
	cube, err := sample.Cube(10)
	require.NoError(t, err)

	scene := Scene{
		Mesh:     cube,
		Heatmap:  []heatmap.Point{{Position: r3.Vec{}, Value: 1}},
		Channels: cooling.Layout{Diameter: 6, Distance: 8, ChannelsX: 2}.Channels(cube.BoundingBox()),
	}
	img, err := Render(context.Background(), scene, smallOptions())
	require.NoError(t, err)

	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(32, 24))

	found := false
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] == channelColor.R && img.Pix[i+1] == channelColor.G && img.Pix[i+2] == channelColor.B {
			found = true
			break
		}
	}
	assert.True(t, found, "cooling channels not drawn")
}

func TestRenderSupersampled(t *testing.T) {
	cube, err := sample.Cube(10)
	require.NoError(t, err)

	opts := smallOptions()
	opts.Supersample = 3
	img, err := Render(context.Background(), Scene{Mesh: cube}, opts)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 48, img.Bounds().Dy())
}

func TestRenderErrors(t *testing.T) {
	cube, err := sample.Cube(10)
	require.NoError(t, err)

	_, err = Render(context.Background(), Scene{}, smallOptions())
	assert.True(t, errors.Is(err, mesh.ErrInvalidMesh))

	bad := smallOptions()
	bad.Supersample = 0
	_, err = Render(context.Background(), Scene{Mesh: cube}, bad)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Render(ctx, Scene{Mesh: cube}, smallOptions())
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestFillTriangleDepthTest(t *testing.T) {
	near := color.RGBA{R: 255, A: 255}
	far := color.RGBA{B: 255, A: 255}
	tri := func(z float64) [3]vertex {
		return [3]vertex{{0, 0, z}, {9, 0, z}, {0, 9, z}}
	}

	f := newFrame(10, 10, background)
	f.fillTriangle(tri(1), near)
	f.fillTriangle(tri(2), far)
	assert.Equal(t, near, f.img.RGBAAt(2, 2))

	f = newFrame(10, 10, background)
	f.fillTriangle(tri(2), far)
	f.fillTriangle(tri(1), near)
	assert.Equal(t, near, f.img.RGBAAt(2, 2))
	assert.Equal(t, background, f.img.RGBAAt(9, 9))
}

func TestBlendTriangle(t *testing.T) {
	f := newFrame(4, 4, color.RGBA{A: 255})
	f.blendTriangle([3]vertex{{0, 0, 1}, {4, 0, 1}, {0, 4, 1}}, color.RGBA{R: 200, A: 255}, 0.5)
	assert.Equal(t, color.RGBA{R: 100, A: 255}, f.img.RGBAAt(0, 0))
	assert.True(t, math.IsInf(f.depth[0], 1))
}

func TestEncode(t *testing.T) {
	f := newFrame(8, 8, background)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, f.img, FormatPNG))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))

	buf.Reset()
	require.NoError(t, Encode(&buf, f.img, "WEBP"))
	require.Greater(t, buf.Len(), 12)
	assert.Equal(t, "RIFF", string(buf.Bytes()[0:4]))
	assert.Equal(t, "WEBP", string(buf.Bytes()[8:12]))

	assert.Error(t, Encode(&buf, f.img, "gif"))
}

func TestSave(t *testing.T) {
	f := newFrame(8, 8, background)
	path := filepath.Join(t.TempDir(), "preview.webp")

	require.NoError(t, Save(path, f.img, FormatPNG))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(data[0:4]))

	assert.Error(t, Save(filepath.Join(t.TempDir(), "x.gif"), f.img, "gif"))
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatPNG, FormatFromPath("a.PNG", FormatWebP))
	assert.Equal(t, FormatWebP, FormatFromPath("a.webp", FormatPNG))
	assert.Equal(t, FormatWebP, FormatFromPath("a", "WebP"))
}
