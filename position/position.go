// Package position implements position adjustments which move overlapping
// observations apart: dodging side by side, stacking on top of each other,
// stacking normalised to 1 and jittering by random noise.
//
// Every strategy is a pure function of its input records: the input is
// never modified and the output has the same length and order as the
// input. Records are grouped by their raw x value before adjustment.
package position

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/vdobler/ggcore/data"
	"github.com/vdobler/ggcore/record"
)

var (
	ErrUnknown    = errors.New("position: unknown position")
	ErrNonNumeric = errors.New("position: non-numeric value")
	ErrParam      = errors.New("position: bad parameter")
)

// Defaults.
const (
	DodgeWidth   = 0.9
	DodgePadding = 0.1
	JitterWidth  = 0.4
)

// An Adjuster adjusts the positions of a layer's records.
type Adjuster interface {
	Name() string
	Adjust(rs []record.Record) ([]record.Record, error)
}

// Params configures a position adjustment. Nil fields take the default
// of the chosen strategy.
type Params struct {
	Width   *float64 `yaml:"width"`
	Height  *float64 `yaml:"height"`
	Padding *float64 `yaml:"padding"`
	Reverse bool     `yaml:"reverse"`
	Seed    *int64   `yaml:"seed"`
}

func orDefault(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// New returns the position adjustment id configured by p.
func New(id string, p Params) (Adjuster, error) {
	for _, param := range []struct {
		name string
		v    *float64
	}{{"width", p.Width}, {"height", p.Height}, {"padding", p.Padding}} {
		if v := param.v; v != nil && (*v < 0 || math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return nil, fmt.Errorf("%w: %s=%g for position %q", ErrParam, param.name, *v, id)
		}
	}

	switch id {
	case "", "identity":
		return Identity{}, nil
	case "dodge":
		return Dodge{Width: orDefault(p.Width, DodgeWidth)}, nil
	case "dodge2":
		return Dodge2{
			Width:   orDefault(p.Width, DodgeWidth),
			Padding: orDefault(p.Padding, DodgePadding),
		}, nil
	case "jitter":
		w := orDefault(p.Width, JitterWidth)
		j := Jitter{Width: w, Height: orDefault(p.Height, w)}
		if p.Seed != nil {
			j.Seed, j.Seeded = *p.Seed, true
		}
		return j, nil
	case "stack":
		return Stack{Reverse: p.Reverse}, nil
	case "fill":
		return Fill{Reverse: p.Reverse}, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknown, id)
}

// ----------------------------------------------------------------------------
// Identity

// Identity leaves all records unchanged.
type Identity struct{}

func (Identity) Name() string { return "identity" }

func (Identity) Adjust(rs []record.Record) ([]record.Record, error) {
	return record.CloneAll(rs), nil
}

// ----------------------------------------------------------------------------
// Dodge

// Dodge places records sharing an x side by side. The sub-groups at one x
// are told apart by group, fill or color, in this order of preference.
// Width is split into one slot per sub-group; an x with a single
// sub-group is left unchanged.
type Dodge struct {
	Width float64
}

func (Dodge) Name() string { return "dodge" }

func (d Dodge) Adjust(rs []record.Record) ([]record.Record, error) {
	g, err := groupByX(rs)
	if err != nil {
		return nil, err
	}
	out := record.CloneAll(rs)
	d.dodge(out, g)
	return out, nil
}

func (d Dodge) dodge(out []record.Record, g *xGroups) {
	for n, members := range g.members {
		slotOf := make(map[data.Key]int)
		slots := make([]int, len(members))
		for j, i := range members {
			k := subgroupKey(&out[i])
			s, ok := slotOf[k]
			if !ok {
				s = len(slotOf)
				slotOf[k] = s
			}
			slots[j] = s
		}
		if len(slotOf) <= 1 {
			continue
		}

		slot := d.Width / float64(len(slotOf))
		x0 := g.xs[n]
		for j, i := range members {
			x := x0 + (-d.Width/2 + slot/2 + float64(slots[j])*slot)
			out[i].X = data.Float(x)
			out[i].XMin = x - slot/2
			out[i].XMax = x + slot/2
		}
	}
}

// ----------------------------------------------------------------------------
// Dodge2

// Dodge2 dodges like Dodge and then spreads the result: the offset of each
// dodged record from its nearest original x is scaled by 1+Padding.
// Equidistant original x values are resolved in favour of the one seen
// first.
type Dodge2 struct {
	Width   float64
	Padding float64
}

func (Dodge2) Name() string { return "dodge2" }

func (d Dodge2) Adjust(rs []record.Record) ([]record.Record, error) {
	g, err := groupByX(rs)
	if err != nil {
		return nil, err
	}
	out := record.CloneAll(rs)
	Dodge{Width: d.Width}.dodge(out, g)

	f := 1 + d.Padding
	for _, members := range g.members {
		for _, i := range members {
			x, _ := out[i].X.Float()
			c := nearest(g.xs, x)
			out[i].X = data.Float(c + (x-c)*f)
			if !math.IsNaN(out[i].XMin) {
				out[i].XMin = c + (out[i].XMin-c)*f
			}
			if !math.IsNaN(out[i].XMax) {
				out[i].XMax = c + (out[i].XMax-c)*f
			}
		}
	}
	return out, nil
}

// nearest returns the element of xs closest to x, the first one on ties.
func nearest(xs []float64, x float64) float64 {
	best, dist := xs[0], math.Abs(x-xs[0])
	for _, c := range xs[1:] {
		if d := math.Abs(x - c); d < dist {
			best, dist = c, d
		}
	}
	return best
}

// ----------------------------------------------------------------------------
// Jitter

// Jitter adds uniform random noise of the given total Width to x and
// Height to y. With Seeded set every call to Adjust draws from a fresh
// generator seeded with Seed and the result is reproducible; otherwise the
// generator is seeded from the clock. Use Rand and AdjustRand to draw
// several batches from one stream.
type Jitter struct {
	Width, Height float64
	Seed          int64
	Seeded        bool
}

func (Jitter) Name() string { return "jitter" }

func (j Jitter) Adjust(rs []record.Record) ([]record.Record, error) {
	return j.AdjustRand(rs, j.Rand())
}

// Rand returns a new generator seeded as Adjust seeds it.
func (j Jitter) Rand() *rand.Rand {
	seed := j.Seed
	if !j.Seeded {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// AdjustRand jitters rs drawing two numbers per record, first for x then
// for y, from rng in record order.
func (j Jitter) AdjustRand(rs []record.Record, rng *rand.Rand) ([]record.Record, error) {
	out := record.CloneAll(rs)
	for i := range out {
		r := &out[i]
		dx := (rng.Float64() - 0.5) * j.Width
		dy := (rng.Float64() - 0.5) * j.Height

		if !r.X.IsNull() {
			x, ok := r.X.Float()
			if !ok {
				return nil, fmt.Errorf("%w: x is %s %q in record %d", ErrNonNumeric, r.X.Kind(), r.X, i)
			}
			r.X = data.Float(x + dx)
			r.XMin += dx
			r.XMax += dx
		}
		if j.Height == 0 {
			continue
		}
		y, ok, err := numericY(r, i)
		if err != nil {
			return nil, err
		}
		if ok {
			r.Y = data.Float(y + dy)
			r.YMin += dy
			r.YMax += dy
		}
	}
	return out, nil
}

// ----------------------------------------------------------------------------
// Stack and Fill

// Stack piles the records sharing an x on top of each other in input order
// (reverse order if Reverse is set): ymin and ymax span the record's share
// and y is set to the midpoint.
type Stack struct {
	Reverse bool
}

func (Stack) Name() string { return "stack" }

func (s Stack) Adjust(rs []record.Record) ([]record.Record, error) {
	out, _, _, err := stack(rs, s.Reverse)
	return out, err
}

// stack returns the stacked records, their x groups and the final running
// sum of each group.
func stack(rs []record.Record, reverse bool) ([]record.Record, *xGroups, []float64, error) {
	g, err := groupByX(rs)
	if err != nil {
		return nil, nil, nil, err
	}
	out := record.CloneAll(rs)
	totals := make([]float64, len(g.members))
	for n, members := range g.members {
		order := members
		if reverse {
			order = make([]int, len(members))
			for j, i := range members {
				order[len(members)-1-j] = i
			}
		}
		running := 0.0
		for _, i := range order {
			y, ok, err := numericY(&out[i], i)
			if err != nil {
				return nil, nil, nil, err
			}
			if !ok {
				continue
			}
			ymin, ymax := running, running+y
			out[i].YMin, out[i].YMax = ymin, ymax
			out[i].Y = data.Float((ymin + ymax) / 2)
			running = ymax
		}
		totals[n] = running
	}
	return out, g, totals, nil
}

// Fill stacks like Stack and then divides by the total of each x group so
// that every stack spans [0,1]. A group with total zero stays as stacked.
type Fill struct {
	Reverse bool
}

func (Fill) Name() string { return "fill" }

func (f Fill) Adjust(rs []record.Record) ([]record.Record, error) {
	out, g, totals, err := stack(rs, f.Reverse)
	if err != nil {
		return nil, err
	}
	for n, members := range g.members {
		total := totals[n]
		if total == 0 {
			continue
		}
		for _, i := range members {
			y, ok := out[i].Y.Float()
			if !ok {
				continue
			}
			out[i].YMin /= total
			out[i].YMax /= total
			out[i].Y = data.Float(y / total)
		}
	}
	return out, nil
}
