// Package scale trains mappings from data domains to visual values.
//
// The concept of a scale is taken from ggplot2. A scale is trained on all
// values of its channel, possibly from several layers, and only ever grows
// its domain during training. After training Map is a pure function of
// the domain: mapping the same value twice yields the same visual value.
// Null values and values outside the domain map to the scale's NA value.
//
// Position scales (x and y) map to the unit interval of a panel; discrete
// position scales place level i at position i+1 before mapping. The other
// scales map to colors, sizes, shapes, dash patterns or text.
package scale

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/vdobler/ggcore/aes"
	"github.com/vdobler/ggcore/data"
	"gonum.org/v1/plot/vg"
)

var (
	ErrUnknownType = errors.New("scale: unknown scale type")
	ErrType        = errors.New("scale: value does not fit scale")
	ErrParam       = errors.New("scale: bad parameter")
)

// A Visual is the output of a scale for one value.
type Visual struct {
	Num    float64 // position, size, alpha, linewidth or shape index
	Color  color.Color
	Dashes []vg.Length
	Text   string
	NA     bool
}

// NAVisual is the NA value used if nothing else is configured.
var NAVisual = Visual{Num: math.NaN(), NA: true}

func (v Visual) String() string {
	switch {
	case v.NA:
		return "NA"
	case v.Color != nil:
		r, g, b, a := v.Color.RGBA()
		return fmt.Sprintf("rgba(%d,%d,%d,%d)", r>>8, g>>8, b>>8, a>>8)
	case v.Dashes != nil:
		return fmt.Sprint(v.Dashes)
	case v.Text != "":
		return v.Text
	}
	return fmt.Sprintf("%g", v.Num)
}

// A Break is a labeled reference value of a trained scale, used for axis
// ticks and legend keys.
type Break struct {
	Value  data.Value
	Label  string
	Visual Visual
}

// A Scale maps values of one channel.
type Scale interface {
	// Channel returns the channel this scale is for.
	Channel() aes.Channel

	// Train expands the domain to include vs. Train is idempotent for
	// already seen values. If any value does not fit the scale an
	// error is returned and the domain is left unchanged.
	Train(vs []data.Value) error

	// Trained reports whether the scale has seen any non-null value.
	Trained() bool

	// Map maps v to its visual value.
	Map(v data.Value) Visual

	// Breaks returns the breaks of the trained domain.
	Breaks() []Break

	// Fresh returns an untrained scale with the same configuration.
	Fresh() Scale

	// Clone returns an independent copy in the same state of training.
	Clone() Scale

	// Type returns the scale type, e.g. "continuous".
	Type() string
}

// Positional scales map x or y values. Positions are in a continuous
// position space: the data itself for continuous scales, 1..n for the n
// levels of discrete scales.
type Positional interface {
	Scale

	// Position maps v into position space, NaN if not possible.
	Position(v data.Value) float64

	// TrainPosition expands the range in position space, e.g. to
	// include stacked heights or dodged bar bounds.
	TrainPosition(ps ...float64)

	// Unit maps a position to the unit interval of the panel.
	Unit(p float64) float64

	// Inverse maps a unit coordinate back to position space.
	Inverse(u float64) float64

	// Range returns the expanded range of position space shown.
	Range() Interval
}

// kindErr reports a value which does not fit a scale.
func kindErr(s Scale, v data.Value) error {
	return fmt.Errorf("%w: %s value %q on %s %s scale", ErrType, v.Kind(), v, s.Type(), s.Channel())
}
