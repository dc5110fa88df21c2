package ggcore

import (
	"image/color"
	"math"

	"github.com/vdobler/ggcore/aes"
	"github.com/vdobler/ggcore/coord"
	"github.com/vdobler/ggcore/data"
	"github.com/vdobler/ggcore/record"
	"github.com/vdobler/ggcore/scale"
)

// Defaults of unmapped channels.
var (
	DefaultColor     color.Color = color.Black
	DefaultFill      color.Color = color.Gray{Y: 0x59}
	DefaultSize                  = 1.5
	DefaultAlpha                 = 1.0
	DefaultLinewidth             = 0.5
)

// visualChannels are the channels mapped to a Visual, in mapping order.
var visualChannels = []aes.Channel{
	aes.Color, aes.Fill, aes.Size, aes.Shape, aes.Alpha,
	aes.Linetype, aes.Linewidth, aes.Label,
}

// mapper maps the records of one layer in one panel.
type mapper struct {
	layer  *layer
	coord  coord.Coord
	scales coord.Scales
	other  map[aes.Channel]scale.Scale
}

func pos(v data.Value) float64 {
	f, _ := v.Float()
	return f
}

func (m mapper) visual(r record.Record, panel int) record.Visual {
	vis := record.Visual{
		Size:      DefaultSize,
		Alpha:     DefaultAlpha,
		Linewidth: DefaultLinewidth,
		Color:     DefaultColor,
		Fill:      DefaultFill,
		Group:     r.Group,
		Row:       r.Row,
		Panel:     panel,
		Layer:     m.layer.index,
		Source:    r,
	}
	if !r.Tooltip.IsNull() {
		vis.Tooltip = r.Tooltip.String()
	}

	// Positions
	x, y := pos(r.X), pos(r.Y)
	xmin, xmax, ymin, ymax := r.XMin, r.XMax, r.YMin, r.YMax
	if m.layer.geom.SpanX {
		xmin, xmax = m.scales.X.Inverse(0), m.scales.X.Inverse(1)
		if math.IsNaN(ymin) && math.IsNaN(ymax) {
			ymin, ymax = y, y
		}
	}
	if m.layer.geom.SpanY {
		ymin, ymax = m.scales.Y.Inverse(0), m.scales.Y.Inverse(1)
		if math.IsNaN(xmin) && math.IsNaN(xmax) {
			xmin, xmax = x, x
		}
	}
	vis.X, vis.Y = m.coord.Transform(x, y, m.scales)
	vis.XEnd, vis.YEnd = m.coord.Transform(pos(r.XEnd), pos(r.YEnd), m.scales)
	vis.XMin, vis.YMin = m.coord.Transform(xmin, ymin, m.scales)
	vis.XMax, vis.YMax = m.coord.Transform(xmax, ymax, m.scales)

	// Non-position channels, after_scale ones last.
	var late []aes.Channel
	for _, c := range visualChannels {
		slot := m.layer.aes.Get(c)
		switch slot.Kind() {
		case aes.Absent:
			continue
		case aes.AfterScale:
			late = append(late, c)
			continue
		}
		sc, ok := m.other[c]
		if !ok {
			setVisual(&vis, c, na(c))
			continue
		}
		setVisual(&vis, c, sc.Map(r.Get(c)))
	}
	for _, c := range late {
		if src, ok := m.layer.aes.Get(c).ScaledChannel(); ok {
			setVisual(&vis, c, getVisual(&vis, src))
		}
	}
	return vis
}

// na is the NA value of channels without a scale.
func na(c aes.Channel) scale.Visual {
	v := scale.NAVisual
	if c == aes.Color || c == aes.Fill {
		v.Color = scale.NAColor
	}
	return v
}

func setVisual(vis *record.Visual, c aes.Channel, v scale.Visual) {
	switch c {
	case aes.Color:
		vis.Color = v.Color
	case aes.Fill:
		vis.Fill = v.Color
	case aes.Size:
		vis.Size = v.Num
	case aes.Alpha:
		vis.Alpha = v.Num
	case aes.Linewidth:
		vis.Linewidth = v.Num
	case aes.Shape:
		vis.Shape = -1
		if !math.IsNaN(v.Num) {
			vis.Shape = int(v.Num)
		}
	case aes.Linetype:
		vis.Linetype = v.Dashes
	case aes.Label:
		vis.Label = v.Text
	}
}

func getVisual(vis *record.Visual, c aes.Channel) scale.Visual {
	switch c {
	case aes.Color:
		return scale.Visual{Color: vis.Color}
	case aes.Fill:
		return scale.Visual{Color: vis.Fill}
	case aes.Size:
		return scale.Visual{Num: vis.Size}
	case aes.Alpha:
		return scale.Visual{Num: vis.Alpha}
	case aes.Linewidth:
		return scale.Visual{Num: vis.Linewidth}
	case aes.Shape:
		return scale.Visual{Num: float64(vis.Shape)}
	case aes.Linetype:
		return scale.Visual{Dashes: vis.Linetype}
	case aes.Label:
		return scale.Visual{Text: vis.Label}
	}
	return scale.NAVisual
}
