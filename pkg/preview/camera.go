package preview

import (
	"math"

	"github.com/philipparndt/gomold/pkg/geometry"
	"gonum.org/v1/gonum/spatial/r3"
)

// maxPitch keeps the camera away from the poles where the view basis is
// undefined
const maxPitch = math.Pi/2 - 0.1

// worldUp is the up direction of the scene; parts are modelled Z-up
var worldUp = r3.Vec{Z: 1}

// Camera is an orbit camera looking at a target point
type Camera struct {
	Target   r3.Vec
	Distance float64
	Yaw      float64 // rotation around the Z axis, radians
	Pitch    float64 // elevation above the XY plane, radians
	FOV      float64 // vertical field of view, radians
}

// NewCamera creates a camera framing the bounding box from the given angles
// in degrees
func NewCamera(bbox geometry.BoundingBox, yawDeg, pitchDeg float64) *Camera {
	distance := bbox.Diagonal() * 1.6
	if distance <= 0 {
		distance = 1
	}
	c := &Camera{
		Target:   bbox.Center(),
		Distance: distance,
		FOV:      math.Pi / 4,
	}
	c.Rotate(yawDeg*math.Pi/180, pitchDeg*math.Pi/180)
	return c
}

// Position returns the eye point
func (c *Camera) Position() r3.Vec {
	offset := r3.Vec{
		X: c.Distance * math.Cos(c.Pitch) * math.Cos(c.Yaw),
		Y: c.Distance * math.Cos(c.Pitch) * math.Sin(c.Yaw),
		Z: c.Distance * math.Sin(c.Pitch),
	}
	return r3.Add(c.Target, offset)
}

// Rotate orbits the camera by the given angles
func (c *Camera) Rotate(deltaYaw, deltaPitch float64) {
	c.Yaw += deltaYaw
	c.Pitch = math.Max(-maxPitch, math.Min(maxPitch, c.Pitch+deltaPitch))
}

// Zoom changes the camera distance by a relative amount
func (c *Camera) Zoom(delta float64) {
	c.Distance *= 1.0 + delta
	if c.Distance < 0.1 {
		c.Distance = 0.1
	}
}

// basis returns the view direction and the screen axes
func (c *Camera) basis() (forward, right, up r3.Vec) {
	forward = r3.Unit(r3.Sub(c.Target, c.Position()))
	right = r3.Unit(r3.Cross(forward, worldUp))
	up = r3.Cross(right, forward)
	return forward, right, up
}

// Project maps a world point to screen coordinates and its depth along the
// view direction
func (c *Camera) Project(point r3.Vec, width, height float64) (float64, float64, float64) {
	forward, right, up := c.basis()

	relative := r3.Sub(point, c.Position())
	x := r3.Dot(relative, right)
	y := r3.Dot(relative, up)
	z := r3.Dot(relative, forward)

	if z <= 0.01 {
		z = 0.01
	}

	aspect := width / height
	fovScale := math.Tan(c.FOV / 2)

	screenX := (x/(z*fovScale*aspect))*(width/2) + width/2
	screenY := (-y/(z*fovScale))*(height/2) + height/2

	return screenX, screenY, z
}

// ViewDirection returns the unit vector from the eye to the target
func (c *Camera) ViewDirection() r3.Vec {
	forward, _, _ := c.basis()
	return forward
}
