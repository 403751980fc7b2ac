package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Axis indices used by Component and WithComponent
const (
	AxisX = iota
	AxisY
	AxisZ
)

// Component returns the coordinate of v along the given axis index
func Component(v r3.Vec, axis int) float64 {
	switch axis {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	default:
		return v.Z
	}
}

// WithComponent returns a copy of v with one coordinate replaced
func WithComponent(v r3.Vec, axis int, value float64) r3.Vec {
	switch axis {
	case AxisX:
		v.X = value
	case AxisY:
		v.Y = value
	default:
		v.Z = value
	}
	return v
}

// MinVec returns a vector with the minimum components of two vectors
func MinVec(a, b r3.Vec) r3.Vec {
	return r3.Vec{
		X: math.Min(a.X, b.X),
		Y: math.Min(a.Y, b.Y),
		Z: math.Min(a.Z, b.Z),
	}
}

// MaxVec returns a vector with the maximum components of two vectors
func MaxVec(a, b r3.Vec) r3.Vec {
	return r3.Vec{
		X: math.Max(a.X, b.X),
		Y: math.Max(a.Y, b.Y),
		Z: math.Max(a.Z, b.Z),
	}
}

// MaxComponent returns the largest of the three coordinates
func MaxComponent(v r3.Vec) float64 {
	return math.Max(v.X, math.Max(v.Y, v.Z))
}

// MinComponent returns the smallest of the three coordinates
func MinComponent(v r3.Vec) float64 {
	return math.Min(v.X, math.Min(v.Y, v.Z))
}

// Normalize returns the unit vector of v. A zero-length vector yields the
// zero vector and false; r3.Unit would produce NaNs instead.
func Normalize(v r3.Vec) (r3.Vec, bool) {
	length := r3.Norm(v)
	if length == 0 || math.IsNaN(length) || math.IsInf(length, 0) {
		return r3.Vec{}, false
	}
	return r3.Scale(1/length, v), true
}

// Lerp interpolates linearly between a (t=0) and b (t=1)
func Lerp(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}

// IsFinite reports whether all coordinates are finite numbers
func IsFinite(v r3.Vec) bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
