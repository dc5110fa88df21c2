// Package geom describes the geometric objects a layer draws its records
// as.
//
// The overall concept is loosely based on ggplot2's geoms. Each geom has
// some required aesthetics, typically an (x,y) coordinate, a default stat
// and a default position adjustment. Before positioning, a geom sets up
// the bounds of its records, e.g. bars extend from y=0 to y and over a
// fraction of the x resolution.
//
// The different geoms have singular names like Rect or Point even if
// they draw several rectangles or points to match the naming in ggplot2.
package geom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vdobler/ggcore/aes"
	"github.com/vdobler/ggcore/record"
)

var (
	ErrUnknown = errors.New("geom: unknown geom")
	ErrMissing = errors.New("geom: required aesthetic missing")
	ErrParam   = errors.New("geom: bad parameter")
)

// DefaultWidth is the width of bars, boxes and error bars as a fraction
// of the resolution of x.
const DefaultWidth = 0.9

// Params are the layer parameters geoms use in Setup.
type Params struct {
	// Width and Height of bars, boxes, tiles and error bars in data
	// units.
	Width  *float64 `yaml:"width,omitempty"`
	Height *float64 `yaml:"height,omitempty"`
}

// Geom is the description of one kind of geometric object.
type Geom struct {
	Name string

	// Required lists the channels which must be mapped.
	Required []aes.Channel

	// Stat and Position are the default stat and position ids.
	Stat     string
	Position string

	// SpanX and SpanY mark reference lines drawn over the full width
	// (hline) or height (vline) of a panel.
	SpanX, SpanY bool

	setup func(rs []record.Record, p Params) []record.Record
}

var geoms = []Geom{
	{Name: "point", Required: xy, Stat: "identity", Position: "identity"},
	{Name: "line", Required: xy, Stat: "identity", Position: "identity", setup: sortX},
	{Name: "path", Required: xy, Stat: "identity", Position: "identity"},
	{Name: "area", Required: xy, Stat: "identity", Position: "stack", setup: area},
	{Name: "bar", Required: []aes.Channel{aes.X}, Stat: "count", Position: "stack", setup: bars},
	{Name: "col", Required: xy, Stat: "identity", Position: "stack", setup: bars},
	{Name: "histogram", Required: []aes.Channel{aes.X}, Stat: "bin", Position: "stack", setup: bars},
	{Name: "text", Required: []aes.Channel{aes.X, aes.Y, aes.Label}, Stat: "identity", Position: "identity"},
	{Name: "label", Required: []aes.Channel{aes.X, aes.Y, aes.Label}, Stat: "identity", Position: "identity"},
	{Name: "segment", Required: []aes.Channel{aes.X, aes.Y, aes.XEnd, aes.YEnd}, Stat: "identity", Position: "identity"},
	{Name: "rect", Required: []aes.Channel{aes.XMin, aes.XMax, aes.YMin, aes.YMax}, Stat: "identity", Position: "identity"},
	{Name: "tile", Required: xy, Stat: "identity", Position: "identity", setup: tiles},
	{Name: "boxplot", Required: []aes.Channel{aes.Y}, Stat: "boxplot", Position: "dodge2", setup: boxes},
	{Name: "errorbar", Required: []aes.Channel{aes.X, aes.YMin, aes.YMax}, Stat: "identity", Position: "identity", setup: boxes},
	{Name: "hline", Required: []aes.Channel{aes.Y}, Stat: "identity", Position: "identity", SpanX: true},
	{Name: "vline", Required: []aes.Channel{aes.X}, Stat: "identity", Position: "identity", SpanY: true},
	{Name: "smooth", Required: xy, Stat: "smooth", Position: "identity", setup: sortX},
}

var xy = []aes.Channel{aes.X, aes.Y}

// Lookup returns the geom called id.
func Lookup(id string) (Geom, error) {
	for _, g := range geoms {
		if g.Name == id {
			return g, nil
		}
	}
	return Geom{}, fmt.Errorf("%w %q", ErrUnknown, id)
}

// Names returns the names of all geoms.
func Names() []string {
	names := make([]string, len(geoms))
	for i, g := range geoms {
		names[i] = g.Name
	}
	return names
}

// Check reports the first required channel not mapped in a.
func (g Geom) Check(a aes.Aes) error {
	var missing []string
	for _, c := range g.Required {
		if a.Get(c).IsAbsent() {
			missing = append(missing, c.String())
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s needs %s", ErrMissing, g.Name, strings.Join(missing, ", "))
	}
	return nil
}

// Setup returns the records with the bounds of g filled in. Bounds
// already set, e.g. by the bin stat, are kept.
func (g Geom) Setup(rs []record.Record, p Params) ([]record.Record, error) {
	if p.Width != nil && !(*p.Width > 0) {
		return nil, fmt.Errorf("%w: %s: width %g", ErrParam, g.Name, *p.Width)
	}
	if p.Height != nil && !(*p.Height > 0) {
		return nil, fmt.Errorf("%w: %s: height %g", ErrParam, g.Name, *p.Height)
	}
	out := record.CloneAll(rs)
	if g.setup == nil {
		return out, nil
	}
	return g.setup(out, p), nil
}
