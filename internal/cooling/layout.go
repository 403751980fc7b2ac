// Package cooling lays out cooling channels around a part and estimates
// the cooling power the mold needs
package cooling

import (
	"fmt"

	"github.com/philipparndt/gomold/pkg/geometry"
	"gonum.org/v1/gonum/spatial/r3"
)

// channelReach is the fraction of the part extent a channel spans on each
// side of the centre
const channelReach = 0.45

// Layout is the requested channel arrangement
type Layout struct {
	Diameter  float64 // mm
	Distance  float64 // mm, offset from the part centre
	ChannelsX int
	ChannelsY int
	ChannelsZ int
}

// Channel is a straight cylindrical bore
type Channel struct {
	Name   string
	Start  r3.Vec
	End    r3.Vec
	Radius float64
}

// Length returns the bore length
func (c Channel) Length() float64 {
	return r3.Norm(r3.Sub(c.End, c.Start))
}

// Channels places the channels of l around the bounding box. X and Y
// channels run below the part at the configured distance, Z channels rise
// through it; channels of one direction are spread evenly across the part.
func (l Layout) Channels(bbox geometry.BoundingBox) []Channel {
	size := bbox.Size()
	centre := bbox.Center()
	radius := l.Diameter / 2

	var out []Channel
	for n := 0; n < l.ChannelsX; n++ {
		offset := spread(size.Y, l.ChannelsX, n)
		y := centre.Y + offset
		z := centre.Z - l.Distance
		out = append(out, Channel{
			Name:   fmt.Sprintf("X-%d", n+1),
			Start:  r3.Vec{X: centre.X - channelReach*size.X, Y: y, Z: z},
			End:    r3.Vec{X: centre.X + channelReach*size.X, Y: y, Z: z},
			Radius: radius,
		})
	}
	for n := 0; n < l.ChannelsY; n++ {
		x := centre.X + spread(size.X, l.ChannelsY, n)
		z := centre.Z - l.Distance
		out = append(out, Channel{
			Name:   fmt.Sprintf("Y-%d", n+1),
			Start:  r3.Vec{X: x, Y: centre.Y - channelReach*size.Y, Z: z},
			End:    r3.Vec{X: x, Y: centre.Y + channelReach*size.Y, Z: z},
			Radius: radius,
		})
	}
	for n := 0; n < l.ChannelsZ; n++ {
		x := centre.X + spread(size.X, l.ChannelsZ, n)
		out = append(out, Channel{
			Name:   fmt.Sprintf("Z-%d", n+1),
			Start:  r3.Vec{X: x, Y: centre.Y, Z: centre.Z - channelReach*size.Z},
			End:    r3.Vec{X: x, Y: centre.Y, Z: centre.Z + channelReach*size.Z},
			Radius: radius,
		})
	}
	return out
}

// spread returns the offset from the centre of channel n of count, spaced
// evenly over extent
func spread(extent float64, count, n int) float64 {
	spacing := extent / float64(count+1)
	return float64(n+1)*spacing - extent/2
}
