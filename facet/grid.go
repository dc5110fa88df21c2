package facet

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vdobler/ggcore/data"
)

// Sharing is the scale sharing policy of a facet.
type Sharing int

const (
	Fixed Sharing = iota
	Free
	FreeX
	FreeY
)

var sharingNames = []string{"fixed", "free", "free_x", "free_y"}

func (s Sharing) String() string { return sharingNames[s] }

// ParseSharing parses fixed, free, free_x or free_y. The empty string is
// fixed.
func ParseSharing(name string) (Sharing, error) {
	if name == "" {
		return Fixed, nil
	}
	for i, n := range sharingNames {
		if n == name {
			return Sharing(i), nil
		}
	}
	return Fixed, fmt.Errorf("%w: unknown scale sharing %q", ErrParam, name)
}

// FreeX reports whether panels get their own x scale.
func (s Sharing) FreeX() bool { return s == Free || s == FreeX }

// FreeY reports whether panels get their own y scale.
func (s Sharing) FreeY() bool { return s == Free || s == FreeY }

// Spec describes a facet. Vars selects a wrapped facet, Rows and Cols a
// grid. Without any variables there is a single panel.
type Spec struct {
	Vars []string `yaml:"vars,omitempty"`
	Rows []string `yaml:"rows,omitempty"`
	Cols []string `yaml:"cols,omitempty"`

	// Scales is the sharing policy: fixed, free, free_x or free_y.
	Scales string `yaml:"scales,omitempty"`

	// NRow and NCol request the shape of a wrapped facet.
	NRow int `yaml:"nrow,omitempty"`
	NCol int `yaml:"ncol,omitempty"`

	Order Order `yaml:"-"`
}

// Grid reports whether sp is a two-dimensional facet.
func (sp Spec) Grid() bool { return len(sp.Rows) > 0 || len(sp.Cols) > 0 }

// Validate checks sp for inconsistencies not depending on data.
func (sp Spec) Validate() error {
	if len(sp.Vars) > 0 && sp.Grid() {
		return fmt.Errorf("%w: both wrap and grid variables", ErrParam)
	}
	if sp.Grid() && (sp.NRow != 0 || sp.NCol != 0) {
		return fmt.Errorf("%w: nrow and ncol apply to wrapped facets only", ErrParam)
	}
	if sp.NRow < 0 || sp.NCol < 0 {
		return fmt.Errorf("%w: negative nrow or ncol", ErrParam)
	}
	_, err := ParseSharing(sp.Scales)
	return err
}

// Panel is one panel of a facet.
type Panel struct {
	Index    int
	Row, Col int

	// Keys are the values of the facet variables, for grids the row
	// variables followed by the column variables.
	Keys  []data.Value
	Label string

	// XScale and YScale index the x and y scales of this panel.
	XScale, YScale int
}

// Facet is the panel layout of a plot.
type Facet struct {
	Spec
	Sharing Sharing

	Rows, Cols           int
	Panels               []*Panel
	RowLabels, ColLabels []string

	NumXScales, NumYScales int

	index    map[string]int // wrap: key tuple to panel
	rowIndex map[string]int // grid: row tuple to row
	colIndex map[string]int // grid: column tuple to column
}

// New lays out the panels for the values of the facet variables found in
// datasets, in first-seen order over all datasets. Datasets lacking a
// facet variable are skipped, but at least one must have all of them.
func New(sp Spec, datasets ...data.Dataset) (*Facet, error) {
	if err := sp.Validate(); err != nil {
		return nil, err
	}
	sharing, _ := ParseSharing(sp.Scales)
	f := &Facet{Spec: sp, Sharing: sharing}

	switch {
	case sp.Grid():
		if err := f.grid(datasets); err != nil {
			return nil, err
		}
	case len(sp.Vars) > 0:
		if err := f.wrap(datasets); err != nil {
			return nil, err
		}
	default:
		f.Rows, f.Cols = 1, 1
		f.Panels = []*Panel{{}}
		f.NumXScales, f.NumYScales = 1, 1
	}
	return f, nil
}

// union collects the key tuples of vars over all datasets having them.
func union(datasets []data.Dataset, vars []string, order Order) ([]Group, error) {
	if len(vars) == 0 {
		return []Group{{}}, nil
	}
	seen := make(map[string]bool)
	var all []Group
	found := false
	for _, ds := range datasets {
		if !data.Has(ds, vars...) {
			continue
		}
		found = true
		groups, _ := Panels(ds, vars, nil)
		for _, g := range groups {
			tk := tupleKey(g.Keys)
			if seen[tk] {
				continue
			}
			seen[tk] = true
			all = append(all, Group{Keys: g.Keys})
		}
	}
	if !found {
		return nil, fmt.Errorf("%w %s", ErrMissingVar, strings.Join(vars, ", "))
	}
	order.sort(all, vars)
	return all, nil
}

func (f *Facet) wrap(datasets []data.Dataset) error {
	groups, err := union(datasets, f.Vars, f.Order)
	if err != nil {
		return err
	}
	f.Rows, f.Cols, err = Layout(len(groups), f.NRow, f.NCol)
	if err != nil {
		return err
	}

	f.index = make(map[string]int, len(groups))
	f.NumXScales, f.NumYScales = 1, 1
	if f.Sharing.FreeX() {
		f.NumXScales = len(groups)
	}
	if f.Sharing.FreeY() {
		f.NumYScales = len(groups)
	}
	for i, g := range groups {
		p := &Panel{
			Index: i,
			Row:   i / f.Cols,
			Col:   i % f.Cols,
			Keys:  g.Keys,
			Label: g.Label(),
		}
		if f.Sharing.FreeX() {
			p.XScale = i
		}
		if f.Sharing.FreeY() {
			p.YScale = i
		}
		f.index[tupleKey(g.Keys)] = i
		f.Panels = append(f.Panels, p)
	}
	return nil
}

func (f *Facet) grid(datasets []data.Dataset) error {
	rows, err := union(datasets, f.Spec.Rows, f.Order)
	if err != nil {
		return err
	}
	cols, err := union(datasets, f.Spec.Cols, f.Order)
	if err != nil {
		return err
	}

	f.Rows, f.Cols = len(rows), len(cols)
	f.rowIndex = make(map[string]int, f.Rows)
	f.colIndex = make(map[string]int, f.Cols)
	f.RowLabels = make([]string, f.Rows)
	f.ColLabels = make([]string, f.Cols)
	for r, g := range rows {
		f.rowIndex[tupleKey(g.Keys)] = r
		f.RowLabels[r] = g.Label()
	}
	for c, g := range cols {
		f.colIndex[tupleKey(g.Keys)] = c
		f.ColLabels[c] = g.Label()
	}

	f.NumXScales, f.NumYScales = 1, 1
	if f.Sharing.FreeX() {
		f.NumXScales = f.Cols
	}
	if f.Sharing.FreeY() {
		f.NumYScales = f.Rows
	}
	for r, rg := range rows {
		for c, cg := range cols {
			keys := append(append([]data.Value(nil), rg.Keys...), cg.Keys...)
			p := &Panel{
				Index: len(f.Panels),
				Row:   r,
				Col:   c,
				Keys:  keys,
				Label: label(keys),
			}
			if f.Sharing.FreeX() {
				p.XScale = c
			}
			if f.Sharing.FreeY() {
				p.YScale = r
			}
			f.Panels = append(f.Panels, p)
		}
	}
	return nil
}

// Assign returns the rows of ds for each panel. A facet variable missing
// from ds or a value combination without panel is an error.
func (f *Facet) Assign(ds data.Dataset) ([][]int, error) {
	rows := make([][]int, len(f.Panels))
	switch {
	case f.Grid():
		rg, err := Panels(ds, f.Spec.Rows, nil)
		if err != nil {
			return nil, err
		}
		cg, err := Panels(ds, f.Spec.Cols, nil)
		if err != nil {
			return nil, err
		}
		rowOf := make([]int, ds.Len())
		for _, g := range rg {
			r, ok := f.rowIndex[tupleKey(g.Keys)]
			if !ok {
				return nil, fmt.Errorf("%w %s", ErrNoPanel, g.Label())
			}
			for _, i := range g.Rows {
				rowOf[i] = r
			}
		}
		for _, g := range cg {
			c, ok := f.colIndex[tupleKey(g.Keys)]
			if !ok {
				return nil, fmt.Errorf("%w %s", ErrNoPanel, g.Label())
			}
			for _, i := range g.Rows {
				p := rowOf[i]*f.Cols + c
				rows[p] = append(rows[p], i)
			}
		}
		for _, r := range rows {
			sort.Ints(r)
		}

	case len(f.Vars) > 0:
		groups, err := Panels(ds, f.Vars, nil)
		if err != nil {
			return nil, err
		}
		for _, g := range groups {
			p, ok := f.index[tupleKey(g.Keys)]
			if !ok {
				return nil, fmt.Errorf("%w %s", ErrNoPanel, g.Label())
			}
			rows[p] = g.Rows
		}

	default:
		all := make([]int, ds.Len())
		for i := range all {
			all[i] = i
		}
		rows[0] = all
	}
	return rows, nil
}
