package scale

import (
	"image/color"
	"math"
	"strings"

	"github.com/aclements/go-moremath/vec"
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotutil"
)

// A Palette generates the visual values for the levels of a discrete
// scale.
type Palette interface {
	// Generate returns n values.
	Generate(n int) []Visual
}

// linspace returns n evenly spaced points from start to end. A single
// point is placed at start.
func linspace(start, end float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{start}
	}
	return vec.Linspace(start, end, n)
}

// HuePalette produces colors of equal chroma and lightness with hues
// evenly spaced from Start to End degrees, ggplot2's default discrete
// color palette. If End wraps around to Start the last hue is moved one
// step back so that the first and last color differ.
type HuePalette struct {
	Start, End       float64
	Chroma, Lightness float64
}

// DefaultHue is ggplot2's hue_pal().
var DefaultHue = HuePalette{Start: 15, End: 375, Chroma: 1, Lightness: 0.65}

func (p HuePalette) Generate(n int) []Visual {
	end := p.End
	if math.Mod(math.Abs(end-p.Start), 360) < 1 && n > 0 {
		end -= 360 / float64(n)
	}
	vis := make([]Visual, 0, n)
	for _, h := range linspace(p.Start, end, n) {
		h = math.Mod(h, 360)
		if h < 0 {
			h += 360
		}
		c := colorful.Hcl(h, p.Chroma, p.Lightness).Clamped()
		vis = append(vis, Visual{Color: c})
	}
	return vis
}

// RainbowPalette produces fully saturated colors with hues from Start to
// End, both in degrees.
type RainbowPalette struct {
	Start, End        float64
	Saturation, Value float64
}

func (p RainbowPalette) Generate(n int) []Visual {
	if n <= 0 {
		return nil
	}
	cs := palette.Rainbow(n, palette.Hue(p.Start/360), palette.Hue(p.End/360), p.Saturation, p.Value, 1).Colors()
	vis := make([]Visual, len(cs))
	for i, c := range cs {
		vis[i] = Visual{Color: c}
	}
	return vis
}

// ListPalette hands out its colors in order, cycling if there are more
// levels than colors.
type ListPalette []color.Color

func (p ListPalette) Generate(n int) []Visual {
	if len(p) == 0 {
		return nil
	}
	vis := make([]Visual, n)
	for i := range vis {
		vis[i] = Visual{Color: p[i%len(p)]}
	}
	return vis
}

// RangePalette produces numbers evenly spaced from Start to End, e.g. for
// sizes or alpha values.
type RangePalette struct {
	Start, End float64
}

func (p RangePalette) Generate(n int) []Visual {
	vis := make([]Visual, 0, n)
	for _, x := range linspace(p.Start, p.End, n) {
		vis = append(vis, Visual{Num: x})
	}
	return vis
}

// NumShapes is the number of distinct point shapes.
const NumShapes = 6

// ShapeNames are the names of the point shapes in palette order.
var ShapeNames = [NumShapes]string{"circle", "triangle", "square", "plus", "cross", "ring"}

// ShapePalette assigns shape indices 0, 1, ...; shapes repeat after
// NumShapes levels.
type ShapePalette struct{}

func (ShapePalette) Generate(n int) []Visual {
	vis := make([]Visual, n)
	for i := range vis {
		vis[i] = Visual{Num: float64(i % NumShapes), Text: ShapeNames[i%NumShapes]}
	}
	return vis
}

// LinetypeNames are the names of the dash patterns of plotutil.Dashes.
var LinetypeNames = []string{"solid", "dashed", "dotted", "dotdash", "longdash", "twodash", "longdot"}

// LinetypePalette assigns the dash patterns of plotutil.
type LinetypePalette struct{}

func (LinetypePalette) Generate(n int) []Visual {
	vis := make([]Visual, n)
	for i := range vis {
		vis[i] = Visual{Num: float64(i), Dashes: plotutil.Dashes(i), Text: LinetypeNames[i%len(LinetypeNames)]}
	}
	return vis
}

// ----------------------------------------------------------------------------
// Gradients

// A Gradient maps the unit interval to colors.
type Gradient interface {
	At(t float64) color.Color
}

// LabGradient blends from Low to High in CIE L*a*b* space.
type LabGradient struct {
	Low, High colorful.Color
}

// DefaultGradient is ggplot2's default continuous color scale.
var DefaultGradient = LabGradient{
	Low:  colorful.Color{R: 0x13 / 255.0, G: 0x2b / 255.0, B: 0x43 / 255.0},
	High: colorful.Color{R: 0x56 / 255.0, G: 0xb1 / 255.0, B: 0xf7 / 255.0},
}

func (g LabGradient) At(t float64) color.Color {
	if math.IsNaN(t) {
		return nil
	}
	return g.Low.BlendLab(g.High, clamp01(t)).Clamped()
}

// MapGradient adapts a gonum color map to a Gradient.
type MapGradient struct {
	cm palette.ColorMap
}

// NewMapGradient returns a Gradient over cm. The range of cm is set to
// [0,1].
func NewMapGradient(cm palette.ColorMap) MapGradient {
	cm.SetMin(0)
	cm.SetMax(1)
	return MapGradient{cm: cm}
}

func (g MapGradient) At(t float64) color.Color {
	if math.IsNaN(t) {
		return nil
	}
	c, err := g.cm.At(clamp01(t))
	if err != nil {
		return nil
	}
	return c
}

// GradientPalette samples a Gradient at n evenly spaced points.
type GradientPalette struct {
	Gradient Gradient
}

func (p GradientPalette) Generate(n int) []Visual {
	vis := make([]Visual, 0, n)
	for _, t := range linspace(0, 1, n) {
		vis = append(vis, Visual{Color: p.Gradient.At(t)})
	}
	return vis
}

// GradientByName returns the named gradient: "gradient" (the default),
// "bluered", "blackbody" or "kindlmann".
func GradientByName(name string) (Gradient, bool) {
	switch name {
	case "", "gradient":
		return DefaultGradient, true
	case "bluered":
		return NewMapGradient(moreland.SmoothBlueRed()), true
	case "blackbody":
		return NewMapGradient(moreland.BlackBody()), true
	case "kindlmann":
		return NewMapGradient(moreland.Kindlmann()), true
	}
	return nil, false
}

func clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

// ----------------------------------------------------------------------------
// Color names

var namedColors = map[string]string{
	"black":     "#000000",
	"white":     "#ffffff",
	"red":       "#ff0000",
	"green":     "#00ff00",
	"blue":      "#0000ff",
	"yellow":    "#ffff00",
	"orange":    "#ffa500",
	"purple":    "#a020f0",
	"grey":      "#bebebe",
	"gray":      "#bebebe",
	"grey50":    "#7f7f7f",
	"gray50":    "#7f7f7f",
	"darkgreen": "#006400",
	"navy":      "#000080",
	"steelblue": "#4682b4",
	"firebrick": "#b22222",
	"tomato":    "#ff6347",
	"gold":      "#ffd700",
	"skyblue":   "#87ceeb",
	"darkgrey":  "#a9a9a9",
	"darkgray":  "#a9a9a9",
}

// ParseColor parses a color name or a hex triplet like "#4682b4".
func ParseColor(s string) (color.Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if hex, ok := namedColors[s]; ok {
		s = hex
	}
	if !strings.HasPrefix(s, "#") {
		return nil, false
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, false
	}
	return c, true
}

// NAColor is the color for NA values, grey50.
var NAColor color.Color = colorful.Color{R: 0x7f / 255.0, G: 0x7f / 255.0, B: 0x7f / 255.0}
