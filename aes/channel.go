package aes

import "strconv"

// A Channel is a visual property a layer can bind data to.
type Channel int

const (
	X Channel = iota
	Y
	XEnd
	YEnd
	XMin
	XMax
	YMin
	YMax
	Color
	Fill
	Size
	Shape
	Alpha
	Linetype
	Linewidth
	Group
	Label
	Tooltip
	Weight
	Geometry
	MapID

	NumChannels
)

var channelNames = [NumChannels]string{
	"x", "y", "xend", "yend", "xmin", "xmax", "ymin", "ymax",
	"color", "fill", "size", "shape", "alpha", "linetype", "linewidth",
	"group", "label", "tooltip", "weight", "geometry", "map_id",
}

func (c Channel) String() string {
	if c < 0 || c >= NumChannels {
		return "channel(" + strconv.Itoa(int(c)) + ")"
	}
	return channelNames[c]
}

// ParseChannel looks up a channel by name. The British spelling "colour"
// is accepted.
func ParseChannel(name string) (Channel, bool) {
	if name == "colour" {
		return Color, true
	}
	for i, n := range channelNames {
		if n == name {
			return Channel(i), true
		}
	}
	return -1, false
}

// Channels returns all channels in declaration order.
func Channels() []Channel {
	cs := make([]Channel, NumChannels)
	for i := range cs {
		cs[i] = Channel(i)
	}
	return cs
}

// IsX reports whether c lives on the horizontal data axis.
func (c Channel) IsX() bool { return c == X || c == XEnd || c == XMin || c == XMax }

// IsY reports whether c lives on the vertical data axis.
func (c Channel) IsY() bool { return c == Y || c == YEnd || c == YMin || c == YMax }

// Positional reports whether c is trained on a position scale.
func (c Channel) Positional() bool { return c.IsX() || c.IsY() }

// Scaled reports whether values of c go through a scale. Group, tooltip,
// geometry and map_id are passed through unscaled.
func (c Channel) Scaled() bool {
	switch c {
	case Group, Tooltip, Geometry, MapID, Weight:
		return false
	}
	return true
}

// grouping lists the channels whose discrete values form the implicit group.
var grouping = []Channel{Group, Color, Fill, Shape, Linetype, Size, Alpha}
