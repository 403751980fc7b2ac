package preview

import (
	"image"
	"image/color"
	"math"
)

// vertex is a projected point: screen position plus view depth
type vertex struct {
	x, y, z float64
}

// frame is a colour buffer with a depth buffer of the same size
type frame struct {
	img   *image.RGBA
	depth []float64
}

func newFrame(width, height int, background color.RGBA) *frame {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = background.R
		img.Pix[i+1] = background.G
		img.Pix[i+2] = background.B
		img.Pix[i+3] = background.A
	}
	depth := make([]float64, width*height)
	for i := range depth {
		depth[i] = math.Inf(1)
	}
	return &frame{img: img, depth: depth}
}

// scanTriangle calls plot for every pixel centre covered by the triangle
// with the interpolated depth
func (f *frame) scanTriangle(v [3]vertex, plot func(x, y int, z float64)) {
	if v[0].y > v[1].y {
		v[0], v[1] = v[1], v[0]
	}
	if v[1].y > v[2].y {
		v[1], v[2] = v[2], v[1]
	}
	if v[0].y > v[1].y {
		v[0], v[1] = v[1], v[0]
	}

	bounds := f.img.Bounds()
	yStart := int(math.Max(0, math.Ceil(v[0].y)))
	yEnd := int(math.Min(float64(bounds.Max.Y-1), math.Floor(v[2].y)))

	edges := [3][2]vertex{{v[0], v[1]}, {v[1], v[2]}, {v[0], v[2]}}
	for y := yStart; y <= yEnd; y++ {
		fy := float64(y)

		xStart, xEnd := math.Inf(1), math.Inf(-1)
		var zStart, zEnd float64
		for _, e := range edges {
			a, b := e[0], e[1]
			if a.y == b.y || fy < a.y || fy > b.y {
				continue
			}
			t := (fy - a.y) / (b.y - a.y)
			x := a.x + t*(b.x-a.x)
			z := a.z + t*(b.z-a.z)
			if x < xStart {
				xStart, zStart = x, z
			}
			if x > xEnd {
				xEnd, zEnd = x, z
			}
		}
		if xStart > xEnd {
			continue
		}

		xFirst := int(math.Max(0, math.Ceil(xStart)))
		xLast := int(math.Min(float64(bounds.Max.X-1), math.Floor(xEnd)))
		for x := xFirst; x <= xLast; x++ {
			t := 0.0
			if xEnd != xStart {
				t = (float64(x) - xStart) / (xEnd - xStart)
			}
			plot(x, y, zStart+t*(zEnd-zStart))
		}
	}
}

// fillTriangle draws an opaque triangle with depth testing
func (f *frame) fillTriangle(v [3]vertex, col color.RGBA) {
	width := f.img.Bounds().Dx()
	f.scanTriangle(v, func(x, y int, z float64) {
		idx := y*width + x
		if z < f.depth[idx] {
			f.depth[idx] = z
			f.img.SetRGBA(x, y, col)
		}
	})
}

// blendTriangle draws a translucent triangle. It is depth tested but does
// not write depth, so it has to be drawn after the opaque geometry.
func (f *frame) blendTriangle(v [3]vertex, col color.RGBA, alpha float64) {
	width := f.img.Bounds().Dx()
	f.scanTriangle(v, func(x, y int, z float64) {
		if z < f.depth[width*y+x] {
			f.img.SetRGBA(x, y, mix(f.img.RGBAAt(x, y), col, alpha))
		}
	})
}

// drawLine draws a depth tested line of the given thickness using
// Bresenham's algorithm
func (f *frame) drawLine(a, b vertex, thickness int, col color.RGBA) {
	x1, y1 := int(math.Round(a.x)), int(math.Round(a.y))
	x2, y2 := int(math.Round(b.x)), int(math.Round(b.y))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	steps := max(dx, dy)

	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for i := 0; ; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		f.plotSquare(x1, y1, thickness, a.z+t*(b.z-a.z), col)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// plotSquare draws a size×size block centred on (cx, cy). A depth of +Inf
// disables the depth test.
func (f *frame) plotSquare(cx, cy, size int, z float64, col color.RGBA) {
	bounds := f.img.Bounds()
	width := bounds.Dx()
	half := size / 2
	for y := cy - half; y < cy-half+size; y++ {
		for x := cx - half; x < cx-half+size; x++ {
			if x < 0 || y < 0 || x >= bounds.Max.X || y >= bounds.Max.Y {
				continue
			}
			idx := y*width + x
			if !math.IsInf(z, 1) && z >= f.depth[idx] {
				continue
			}
			f.img.SetRGBA(x, y, col)
		}
	}
}

func mix(dst, src color.RGBA, alpha float64) color.RGBA {
	blend := func(d, s uint8) uint8 {
		return uint8(math.Round(float64(d)*(1-alpha) + float64(s)*alpha))
	}
	return color.RGBA{
		R: blend(dst.R, src.R),
		G: blend(dst.G, src.G),
		B: blend(dst.B, src.B),
		A: 0xff,
	}
}

func shade(col color.RGBA, intensity float64) color.RGBA {
	scale := func(c uint8) uint8 {
		return uint8(math.Max(0, math.Min(255, math.Round(float64(c)*intensity))))
	}
	return color.RGBA{R: scale(col.R), G: scale(col.G), B: scale(col.B), A: col.A}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
