// Package facet splits data into small multiples.
//
// Faceting is done on discrete values. There are one-dimensional
// facets which wrap a sequence of panels into a grid (ggplot's
// facet_wrap) and two-dimensional facets with separate row and column
// variables (facet_grid).
//
// The scale sharing policy decides which panels share their x and y
// scales: fixed shares one x and one y scale among all panels, free_x
// and free_y give each panel (wrap) or each column respectively row
// (grid) its own scale, free does both.
package facet

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/vdobler/ggcore/data"
)

var (
	ErrMissingVar   = errors.New("facet: no such variable")
	ErrGridTooSmall = errors.New("facet: grid too small")
	ErrParam        = errors.New("facet: bad parameter")
	ErrNoPanel      = errors.New("facet: no panel for values")
)

// ----------------------------------------------------------------------------
// Grouping

// A Group is the set of rows sharing one tuple of facet variable values.
type Group struct {
	Keys []data.Value
	Rows []int
}

// Label joins the keys, e.g. "4, manual".
func (g Group) Label() string { return label(g.Keys) }

func label(keys []data.Value) string {
	ss := make([]string, len(keys))
	for i, k := range keys {
		ss[i] = k.String()
	}
	return strings.Join(ss, ", ")
}

// tupleKey is a comparable representation of a key tuple.
func tupleKey(keys []data.Value) string {
	var sb strings.Builder
	for _, k := range keys {
		key := k.Key()
		fmt.Fprintf(&sb, "%d:%s\x00", k.Kind(), key)
	}
	return sb.String()
}

// Order fixes the order of the values of some variables. Values not
// listed follow the listed ones in first-seen order.
type Order map[string][]data.Value

// rank returns the position of v in the explicit order of variable name,
// or len(order) if not listed.
func (o Order) rank(name string, v data.Value) int {
	levels := o[name]
	for i, l := range levels {
		if l.Equal(v) {
			return i
		}
	}
	return len(levels)
}

// Panels partitions the rows of ds by the values of vars. Groups are in
// first-seen order of their key tuples unless order fixes the order of
// some variables. Every row belongs to exactly one group. A variable not
// in ds is an error.
func Panels(ds data.Dataset, vars []string, order Order) ([]Group, error) {
	cols := make([]data.Column, len(vars))
	for i, name := range vars {
		c, ok := ds.Column(name)
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrMissingVar, name)
		}
		cols[i] = c
	}

	index := make(map[string]int)
	var groups []Group
	for row := 0; row < ds.Len(); row++ {
		keys := make([]data.Value, len(cols))
		for i, c := range cols {
			keys[i] = c.At(row)
		}
		tk := tupleKey(keys)
		g, ok := index[tk]
		if !ok {
			g = len(groups)
			index[tk] = g
			groups = append(groups, Group{Keys: keys})
		}
		groups[g].Rows = append(groups[g].Rows, row)
	}

	order.sort(groups, vars)
	return groups, nil
}

// sort orders groups stably by the explicit order of vars.
func (o Order) sort(groups []Group, vars []string) {
	if len(o) == 0 {
		return
	}
	sort.SliceStable(groups, func(i, j int) bool {
		for k, name := range vars {
			ri := o.rank(name, groups[i].Keys[k])
			rj := o.rank(name, groups[j].Keys[k])
			if ri != rj {
				return ri < rj
			}
		}
		return false
	})
}

// ----------------------------------------------------------------------------
// Layout

// Layout returns the number of rows and columns of a grid for n panels.
// If neither rows nor cols is given (i.e. zero) the grid is near square
// and rather wide than tall. If one is given the other is derived by
// ceiling division. If both are given they must hold n panels.
func Layout(n, rows, cols int) (int, int, error) {
	switch {
	case n < 0 || rows < 0 || cols < 0:
		return 0, 0, fmt.Errorf("%w: negative layout %d panels in %dx%d", ErrParam, n, rows, cols)
	case rows > 0 && cols > 0:
		if rows*cols < n {
			return 0, 0, fmt.Errorf("%w: %d panels in %d rows x %d cols", ErrGridTooSmall, n, rows, cols)
		}
		return rows, cols, nil
	case n == 0:
		return rows, cols, nil
	case rows > 0:
		return rows, (n + rows - 1) / rows, nil
	case cols > 0:
		return (n + cols - 1) / cols, cols, nil
	}
	cols = int(math.Ceil(math.Sqrt(float64(n))))
	return (n + cols - 1) / cols, cols, nil
}
