// Package stat implements the statistical transformations applied to the
// rows of a layer before positioning.
//
// A Stat turns the evaluated rows of one panel of a layer into records.
// The identity stat produces one record per row; the other stats
// summarise the rows of each group, typically per distinct x, and store
// their computed variables (like "count" or "density") in the Extra bag
// of the records where after_stat mappings can pick them up.
package stat

import (
	"errors"
	"fmt"

	"github.com/vdobler/ggcore/aes"
	"github.com/vdobler/ggcore/data"
	"github.com/vdobler/ggcore/record"
)

var (
	ErrUnknown    = errors.New("stat: unknown stat")
	ErrParam      = errors.New("stat: bad parameter")
	ErrMissing    = errors.New("stat: required channel missing")
	ErrNonNumeric = errors.New("stat: non-numeric value")
)

// A Stat computes records from the rows of a frame.
type Stat interface {
	Name() string

	// Compute returns the records for the rows of f. It must not
	// modify f.
	Compute(f *aes.Frame) ([]record.Record, error)

	// Defaults returns the after_stat mappings applied unless the layer
	// maps the channel itself, e.g. y to "count".
	Defaults() map[aes.Channel]string
}

// Params are the parameters of all stats. Each stat uses the ones
// relevant to it.
type Params struct {
	// Bin
	Bins     int      `yaml:"bins,omitempty"`
	Binwidth float64  `yaml:"binwidth,omitempty"`
	Boundary *float64 `yaml:"boundary,omitempty"`
	Center   *float64 `yaml:"center,omitempty"`
	Closed   string   `yaml:"closed,omitempty"` // right (default) or left

	// Smooth
	Method string  `yaml:"method,omitempty"` // lm (default) or loess
	Degree int     `yaml:"degree,omitempty"`
	Span   float64 `yaml:"span,omitempty"`
	N      int     `yaml:"n,omitempty"`

	// Boxplot
	Coef *float64 `yaml:"coef,omitempty"`
}

// Default parameter values.
const (
	DefaultBins   = 30
	DefaultN      = 80
	DefaultSpan   = 0.75
	DefaultCoef   = 1.5
	DefaultDegree = 2
)

func paramErr(id, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s: %s", ErrParam, id, fmt.Sprintf(format, args...))
}

// New returns the stat called id. The empty id is identity.
func New(id string, p Params) (Stat, error) {
	switch id {
	case "", "identity":
		return Identity{}, nil

	case "count":
		return Count{}, nil

	case "bin":
		if p.Bins < 0 {
			return nil, paramErr(id, "negative bins %d", p.Bins)
		}
		if p.Binwidth < 0 {
			return nil, paramErr(id, "negative binwidth %g", p.Binwidth)
		}
		if p.Boundary != nil && p.Center != nil {
			return nil, paramErr(id, "only one of boundary and center may be set")
		}
		if p.Closed != "" && p.Closed != "right" && p.Closed != "left" {
			return nil, paramErr(id, "closed must be left or right, not %q", p.Closed)
		}
		b := Bin{Bins: p.Bins, Width: p.Binwidth, Boundary: p.Boundary, Center: p.Center, ClosedLeft: p.Closed == "left"}
		if b.Bins == 0 {
			b.Bins = DefaultBins
		}
		return b, nil

	case "summary":
		return Summary{}, nil

	case "boxplot":
		b := Boxplot{Coef: DefaultCoef}
		if p.Coef != nil {
			if *p.Coef < 0 {
				return nil, paramErr(id, "negative coef %g", *p.Coef)
			}
			b.Coef = *p.Coef
		}
		return b, nil

	case "smooth":
		s := Smooth{Method: p.Method, Degree: p.Degree, Span: p.Span, N: p.N}
		switch s.Method {
		case "":
			s.Method = "lm"
		case "lm", "loess":
		default:
			return nil, paramErr(id, "unknown method %q", p.Method)
		}
		if s.Span < 0 || s.Span > 1 {
			return nil, paramErr(id, "span %g outside [0,1]", s.Span)
		}
		if s.N < 0 || s.Degree < 0 {
			return nil, paramErr(id, "negative n or degree")
		}
		if s.N == 0 {
			s.N = DefaultN
		}
		if s.Span == 0 {
			s.Span = DefaultSpan
		}
		if s.Degree == 0 {
			s.Degree = 1
			if s.Method == "loess" {
				s.Degree = DefaultDegree
			}
		}
		return s, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknown, id)
}

// ----------------------------------------------------------------------------
// Helpers shared by the stats.

// groups returns the frame indices of each implicit group in first-seen
// order together with the group id of every row.
func groups(f *aes.Frame) ([][]int, []int) {
	ids, n := f.GroupIDs()
	gs := make([][]int, n)
	for i, id := range ids {
		gs[id] = append(gs[id], i)
	}
	// Drop empty groups of an empty frame.
	var out [][]int
	for _, g := range gs {
		if len(g) > 0 {
			out = append(out, g)
		}
	}
	return out, ids
}

// byX splits the indices idx by the exact value of x in first-seen order.
// Rows with null x are dropped.
func byX(f *aes.Frame, idx []int) ([]data.Value, [][]int) {
	index := make(map[data.Key]int)
	var xs []data.Value
	var members [][]int
	for _, i := range idx {
		x := f.At(aes.X, i)
		if x.IsNull() {
			continue
		}
		k := x.Key()
		j, ok := index[k]
		if !ok {
			j = len(xs)
			index[k] = j
			xs = append(xs, x)
			members = append(members, nil)
		}
		members[j] = append(members[j], i)
	}
	return xs, members
}

// number returns the numeric value of channel c in row i. Null yields
// false, text and boolean values an error.
func number(f *aes.Frame, c aes.Channel, i int) (float64, bool, error) {
	v := f.At(c, i)
	if v.IsNull() {
		return 0, false, nil
	}
	x, ok := v.Float()
	if !ok {
		return 0, false, fmt.Errorf("%w: %s value %q for %s in row %d", ErrNonNumeric, v.Kind(), v, c, f.Rows[i])
	}
	return x, true, nil
}

// weight returns the weight of row i, 1 if there is no weight.
func weight(f *aes.Frame, i int) (float64, error) {
	if !f.Has(aes.Weight) {
		return 1, nil
	}
	w, ok, err := number(f, aes.Weight, i)
	if err != nil || !ok {
		return 1, err
	}
	return w, nil
}

func needs(name string, f *aes.Frame, cs ...aes.Channel) error {
	for _, c := range cs {
		if !f.Has(c) {
			return fmt.Errorf("%w: %s needs %s", ErrMissing, name, c)
		}
	}
	return nil
}

// carried are the channels a summary record takes over from its rows.
var carried = []aes.Channel{
	aes.Color, aes.Fill, aes.Size, aes.Shape, aes.Alpha,
	aes.Linetype, aes.Linewidth, aes.Label, aes.Tooltip,
	aes.Geometry, aes.MapID,
}

// summary returns a record summarising the rows idx of group gid. It
// carries the non-positional channels which are constant over idx.
func summary(f *aes.Frame, idx []int, gid int) record.Record {
	r := record.New(-1)
	if len(idx) == 1 {
		r.Row = f.Rows[idx[0]]
	}
	r.Group = data.Int(int64(gid))
	for _, c := range carried {
		vs, ok := f.Get(c)
		if !ok || len(idx) == 0 {
			continue
		}
		v := vs[idx[0]]
		constant := true
		for _, i := range idx[1:] {
			if !vs[i].Equal(v) {
				constant = false
				break
			}
		}
		if constant {
			r.Set(c, v)
		}
	}
	return r
}
