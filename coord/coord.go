// Package coord places positions on the two visual axes of a panel.
//
// A coordinate system only relabels axis roles. It never retrains the
// position scales: the x scale is always trained on x data and the y
// scale on y data, whatever axis they end up on.
package coord

import (
	"errors"
	"fmt"

	"github.com/vdobler/ggcore/scale"
)

var ErrUnknown = errors.New("coord: unknown coordinate system")

// Scales are the trained position scales of one panel.
type Scales struct {
	X, Y scale.Positional
}

// A Coord maps positions to the unit square of a panel and back.
type Coord interface {
	Name() string

	// Transform maps the position (x,y) to the horizontal and vertical
	// unit coordinates (u,v).
	Transform(x, y float64, s Scales) (u, v float64)

	// Inverse maps (u,v) back to the position (x,y).
	Inverse(u, v float64, s Scales) (x, y float64)

	// Flipped reports whether x data is drawn on the vertical axis.
	Flipped() bool
}

// Cartesian draws x horizontally and y vertically.
type Cartesian struct{}

func (Cartesian) Name() string  { return "cartesian" }
func (Cartesian) Flipped() bool { return false }

func (Cartesian) Transform(x, y float64, s Scales) (float64, float64) {
	return s.X.Unit(x), s.Y.Unit(y)
}

func (Cartesian) Inverse(u, v float64, s Scales) (float64, float64) {
	return s.X.Inverse(u), s.Y.Inverse(v)
}

// Flip draws x vertically and y horizontally, e.g. for horizontal bars.
type Flip struct{}

func (Flip) Name() string  { return "flip" }
func (Flip) Flipped() bool { return true }

func (Flip) Transform(x, y float64, s Scales) (float64, float64) {
	return s.Y.Unit(y), s.X.Unit(x)
}

func (Flip) Inverse(u, v float64, s Scales) (float64, float64) {
	return s.X.Inverse(v), s.Y.Inverse(u)
}

// New returns the coordinate system called id. The empty id is
// cartesian.
func New(id string) (Coord, error) {
	switch id {
	case "", "cartesian":
		return Cartesian{}, nil
	case "flip":
		return Flip{}, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknown, id)
}
