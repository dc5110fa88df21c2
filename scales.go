package ggcore

import (
	"fmt"
	"math"

	"github.com/vdobler/ggcore/aes"
	"github.com/vdobler/ggcore/data"
	"github.com/vdobler/ggcore/scale"
)

// Scales are the trained scales of a build.
type Scales struct {
	// X and Y are indexed by the XScale and YScale of the facet
	// panels. Panels sharing a scale share the pointer.
	X, Y []scale.Positional

	// Other holds the scales of the non-position channels.
	Other map[aes.Channel]scale.Scale
}

// Get returns the scale of channel c, for x and y the first one.
func (s *Scales) Get(c aes.Channel) (scale.Scale, bool) {
	switch {
	case c.IsX() && len(s.X) > 0:
		return s.X[0], true
	case c.IsY() && len(s.Y) > 0:
		return s.Y[0], true
	}
	sc, ok := s.Other[c]
	return sc, ok
}

// scaleSet creates the scales of a build on first use. The kind of the
// first data trained determines the default type of a scale.
type scaleSet struct {
	specs  map[aes.Channel]scale.Spec
	nx, ny int
	x, y   []scale.Positional
	other  map[aes.Channel]scale.Scale
}

func newScaleSet(specs map[aes.Channel]scale.Spec, nx, ny int) *scaleSet {
	return &scaleSet{
		specs: specs,
		nx:    nx,
		ny:    ny,
		other: map[aes.Channel]scale.Scale{},
	}
}

// clone returns a deep copy of ss which keeps the sharing of position
// scales between panels.
func (ss *scaleSet) clone() *scaleSet {
	cp := newScaleSet(ss.specs, ss.nx, ss.ny)
	seen := map[scale.Positional]scale.Positional{}
	dup := func(in []scale.Positional) []scale.Positional {
		if in == nil {
			return nil
		}
		out := make([]scale.Positional, len(in))
		for i, s := range in {
			c, ok := seen[s]
			if !ok {
				c = s.Clone().(scale.Positional)
				seen[s] = c
			}
			out[i] = c
		}
		return out
	}
	cp.x, cp.y = dup(ss.x), dup(ss.y)
	for c, s := range ss.other {
		cp.other[c] = s.Clone()
	}
	return cp
}

// axis returns the channel of the position scale c is trained on.
func axis(c aes.Channel) aes.Channel {
	switch {
	case c.IsX():
		return aes.X
	case c.IsY():
		return aes.Y
	}
	return c
}

// firstKind returns the kind of the first non-null value in vs.
func firstKind(vs []data.Value) data.Kind {
	for _, v := range vs {
		if !v.IsNull() {
			return v.Kind()
		}
	}
	return data.Null
}

// position returns scale i of the position axis a. If the axis has no
// scales yet they are created for data of the given kind; for null no
// scale is created and nil is returned.
func (ss *scaleSet) position(a aes.Channel, i int, kind data.Kind) (scale.Positional, error) {
	scales, n := &ss.x, ss.nx
	if a == aes.Y {
		scales, n = &ss.y, ss.ny
	}
	if *scales == nil {
		if kind == data.Null {
			return nil, nil
		}
		sc, err := scale.New(a, ss.specs[a], kind)
		if err != nil {
			return nil, err
		}
		pos, ok := sc.(scale.Positional)
		if !ok {
			return nil, fmt.Errorf("%w: %s scale cannot be used for %s", scale.ErrParam, sc.Type(), a)
		}
		*scales = make([]scale.Positional, n)
		(*scales)[0] = pos
		if n > 1 {
			debugf("%d free %s scales", n, a)
		}
		for j := 1; j < n; j++ {
			(*scales)[j] = pos.Fresh().(scale.Positional)
		}
	}
	return (*scales)[i], nil
}

// scale returns the scale of the non-position channel c, creating it
// for data of the given kind.
func (ss *scaleSet) scale(c aes.Channel, kind data.Kind) (scale.Scale, error) {
	if sc, ok := ss.other[c]; ok {
		return sc, nil
	}
	if kind == data.Null {
		return nil, nil
	}
	sc, err := scale.New(c, ss.specs[c], kind)
	if err != nil {
		return nil, err
	}
	ss.other[c] = sc
	return sc, nil
}

// complete provides untrained continuous scales for axes without any
// data so every panel has an x and a y scale.
func (ss *scaleSet) complete() {
	fill := func(scales *[]scale.Positional, n int, a aes.Channel) {
		if *scales != nil {
			return
		}
		*scales = make([]scale.Positional, n)
		common := scale.NewContinuous(a)
		for j := range *scales {
			(*scales)[j] = common
		}
	}
	fill(&ss.x, ss.nx, aes.X)
	fill(&ss.y, ss.ny, aes.Y)
}

// fits checks that all values of vs can be trained on sc.
func fits(sc scale.Scale, vs []data.Value) error {
	switch sc.(type) {
	case *scale.Continuous, *scale.Binned:
		for _, v := range vs {
			if !v.IsNull() && !v.Kind().Numeric() {
				return fmt.Errorf("%w: %s value %q on %s %s scale", scale.ErrType, v.Kind(), v, sc.Type(), sc.Channel())
			}
		}
	}
	return nil
}

// trainPosition trains the position scale sc on the values vs and the
// positions in bounds. Discrete scales only extend their range: their
// levels are trained before the stat.
func trainPosition(sc scale.Positional, vs []data.Value, bounds []float64) error {
	if _, ok := sc.(*scale.Discrete); ok {
		var ps []float64
		for _, v := range vs {
			if f, ok := v.Float(); ok {
				ps = append(ps, f)
			}
		}
		sc.TrainPosition(ps...)
		sc.TrainPosition(bounds...)
		return nil
	}
	if err := fits(sc, vs); err != nil {
		return err
	}
	if err := sc.Train(vs); err != nil {
		return err
	}
	sc.TrainPosition(bounds...)
	return nil
}

// finite returns the finite values of fs.
func finite(fs ...float64) []float64 {
	var out []float64
	for _, f := range fs {
		if !math.IsNaN(f) && !math.IsInf(f, 0) {
			out = append(out, f)
		}
	}
	return out
}

// degenerate logs position scales which could not be trained.
func (ss *scaleSet) degenerate(warn func(format string, args ...interface{})) {
	seen := map[scale.Positional]bool{}
	for _, scales := range [][]scale.Positional{ss.x, ss.y} {
		for i, s := range scales {
			if seen[s] {
				continue
			}
			seen[s] = true
			if !s.Range().Valid() {
				warn("%s scale %d has no data", s.Channel(), i)
			}
		}
	}
}
