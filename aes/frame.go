package aes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vdobler/ggcore/bin"
	"github.com/vdobler/ggcore/data"
)

var ErrMissingColumn = errors.New("aes: no such column")

// A Frame holds the per-row values of all channels which can be resolved
// before the stat runs. Row i of a Frame stems from row Rows[i] of the
// dataset.
type Frame struct {
	Rows []int

	cols map[Channel][]data.Value

	// levels fixes the level order of binned channels.
	levels map[Channel][]data.Value
}

// NewFrame returns an empty frame over the given source rows.
func NewFrame(rows []int) *Frame {
	return &Frame{
		Rows:   rows,
		cols:   map[Channel][]data.Value{},
		levels: map[Channel][]data.Value{},
	}
}

// Len returns the number of rows in f.
func (f *Frame) Len() int { return len(f.Rows) }

// Set stores the values of channel c.
func (f *Frame) Set(c Channel, vals []data.Value) {
	if len(vals) != len(f.Rows) {
		panic(fmt.Sprintf("aes: %d values for channel %s in frame of %d rows", len(vals), c, len(f.Rows)))
	}
	f.cols[c] = vals
}

// Has reports whether f contains values for channel c.
func (f *Frame) Has(c Channel) bool {
	_, ok := f.cols[c]
	return ok
}

// Get returns the values of channel c.
func (f *Frame) Get(c Channel) ([]data.Value, bool) {
	v, ok := f.cols[c]
	return v, ok
}

// At returns the value of channel c in row i, null if c is not present.
func (f *Frame) At(c Channel, i int) data.Value {
	if vs, ok := f.cols[c]; ok {
		return vs[i]
	}
	return data.NullValue()
}

// Levels returns the fixed level order of channel c if there is one.
func (f *Frame) Levels(c Channel) ([]data.Value, bool) {
	l, ok := f.levels[c]
	return l, ok
}

// Channels returns the channels present in f in declaration order.
func (f *Frame) Channels() []Channel {
	var cs []Channel
	for _, c := range Channels() {
		if f.Has(c) {
			cs = append(cs, c)
		}
	}
	return cs
}

// Subset returns a frame with the rows idx of f.
func (f *Frame) Subset(idx []int) *Frame {
	rows := make([]int, len(idx))
	for i, k := range idx {
		rows[i] = f.Rows[k]
	}
	sub := NewFrame(rows)
	for c, vs := range f.cols {
		svs := make([]data.Value, len(idx))
		for i, k := range idx {
			svs[i] = vs[k]
		}
		sub.cols[c] = svs
	}
	for c, l := range f.levels {
		sub.levels[c] = l
	}
	return sub
}

// GroupIDs returns the implicit group of each row: the combination of the
// discrete values of the group, color, fill, shape, linetype, size and
// alpha channels. Group ids are numbered from 0 in first-seen order. The
// second result is the number of groups.
func (f *Frame) GroupIDs() ([]int, int) {
	var use []Channel
	for _, c := range grouping {
		vs, ok := f.cols[c]
		if !ok {
			continue
		}
		if c == Group || discrete(vs) {
			use = append(use, c)
		}
	}

	ids := make([]int, f.Len())
	if len(use) == 0 {
		return ids, 1
	}
	seen := map[string]int{}
	var sb strings.Builder
	for i := range ids {
		sb.Reset()
		for _, c := range use {
			k := f.cols[c][i].Key()
			sb.WriteString(k.String())
			sb.WriteByte(0)
		}
		key := sb.String()
		id, ok := seen[key]
		if !ok {
			id = len(seen)
			seen[key] = id
		}
		ids[i] = id
	}
	return ids, len(seen)
}

func discrete(vs []data.Value) bool {
	for _, v := range vs {
		if !v.IsNull() {
			return v.Kind().Discrete()
		}
	}
	return false
}

// ----------------------------------------------------------------------------
// Evaluation

// Evaluate resolves all channels of a which do not depend on the stat or
// on scaling to per-row values over all rows of ds.
func Evaluate(a Aes, ds data.Dataset) (*Frame, error) {
	rows := make([]int, ds.Len())
	for i := range rows {
		rows[i] = i
	}
	f := NewFrame(rows)

	for _, c := range a.Mapped() {
		v := a.Get(c)
		switch v.kind {
		case Absent, AfterStat, AfterScale:
			continue

		case Column, Factor:
			col, ok := ds.Column(v.name)
			if !ok {
				return nil, fmt.Errorf("%w %q for channel %s", ErrMissingColumn, v.name, c)
			}
			vals := data.Values(col)
			if v.kind == Factor {
				for i, x := range vals {
					if !x.IsNull() {
						vals[i] = data.Str(x.String())
					}
				}
			}
			f.cols[c] = vals

		case Constant:
			vals := make([]data.Value, len(rows))
			for i := range vals {
				vals[i] = v.constant
			}
			f.cols[c] = vals

		case Expression:
			vals := make([]data.Value, len(rows))
			for i := range vals {
				x, err := v.fn(ds, i)
				if err != nil {
					return nil, fmt.Errorf("aes: expression %s for channel %s in row %d: %w", v.name, c, i, err)
				}
				vals[i] = x
			}
			f.cols[c] = vals

		case Binned:
			col, ok := ds.Column(v.bins.Column)
			if !ok {
				return nil, fmt.Errorf("%w %q for channel %s", ErrMissingColumn, v.bins.Column, c)
			}
			r, err := bin.Compute(data.Values(col), v.bins.Width, v.bins.Options)
			if err != nil {
				return nil, fmt.Errorf("aes: binning %s for channel %s: %w", v.bins.Column, c, err)
			}
			f.cols[c] = r.Labels()
			f.levels[c] = r.Levels()

		default:
			panic(fmt.Sprintf("aes: unhandled kind %d", v.kind))
		}
	}
	return f, nil
}
