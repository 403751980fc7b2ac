package parting

import (
	"fmt"
	"strings"

	"github.com/philipparndt/gomold/pkg/geometry"
	"gonum.org/v1/gonum/spatial/r3"
)

// Axis identifies one of the three candidate parting planes. The plane is
// named by the two coordinates it spans; the mold opens along its normal.
type Axis int

const (
	XY Axis = iota // pull along Z
	XZ             // pull along Y
	YZ             // pull along X
)

// Axes lists the candidates in evaluation and tie-break order
var Axes = [3]Axis{XY, XZ, YZ}

var axisTable = [3]struct {
	name   string
	normal r3.Vec
	mirror int
}{
	XY: {name: "XY", normal: r3.Vec{Z: 1}, mirror: geometry.AxisZ},
	XZ: {name: "XZ", normal: r3.Vec{Y: 1}, mirror: geometry.AxisY},
	YZ: {name: "YZ", normal: r3.Vec{X: 1}, mirror: geometry.AxisX},
}

// Valid reports whether a is one of XY, XZ or YZ
func (a Axis) Valid() bool {
	return a >= XY && a <= YZ
}

// Normal returns the unit pull direction
func (a Axis) Normal() r3.Vec {
	return axisTable[a].normal
}

// Rank returns the position of a in the fixed candidate order
func (a Axis) Rank() int {
	return int(a)
}

// MirrorComponent returns the coordinate index negated when mirroring
// across the plane
func (a Axis) MirrorComponent() int {
	return axisTable[a].mirror
}

func (a Axis) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Axis(%d)", int(a))
	}
	return axisTable[a].name
}

// ParseAxis parses a plane name such as "xy" or "YZ"
func ParseAxis(s string) (Axis, error) {
	for _, a := range Axes {
		if strings.EqualFold(s, axisTable[a].name) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown parting plane %q (expected XY, XZ or YZ)", s)
}

// MarshalText encodes the axis by name
func (a Axis) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("invalid axis %d", int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText decodes an axis name
func (a *Axis) UnmarshalText(text []byte) error {
	parsed, err := ParseAxis(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
