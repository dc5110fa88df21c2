package data

import (
	"fmt"
	"time"
)

// Table is an immutable in-memory Dataset. Adding a column returns a new
// Table sharing the columns of the old one.
type Table struct {
	names []string
	cols  map[string]*column
	n     int
}

type column struct {
	name string
	vals []Value
	kind Kind
}

func (c *column) Name() string   { return c.name }
func (c *column) Kind() Kind     { return c.kind }
func (c *column) Len() int       { return len(c.vals) }
func (c *column) At(i int) Value { return c.vals[i] }

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{cols: map[string]*column{}}
}

// With returns a new table with the column name set to vals. An existing
// column of the same name is replaced. It panics if the length of vals
// differs from the length of the other columns.
func (t *Table) With(name string, vals []Value) *Table {
	if len(t.names) > 0 && len(vals) != t.n {
		panic(fmt.Sprintf("data: column %q has %d rows, table has %d", name, len(vals), t.n))
	}
	nt := &Table{
		names: make([]string, 0, len(t.names)+1),
		cols:  make(map[string]*column, len(t.cols)+1),
		n:     len(vals),
	}
	for _, n := range t.names {
		if n == name {
			continue
		}
		nt.names = append(nt.names, n)
		nt.cols[n] = t.cols[n]
	}
	c := &column{name: name, vals: append([]Value(nil), vals...)}
	for _, v := range c.vals {
		if !v.IsNull() {
			c.kind = v.Kind()
			break
		}
	}
	nt.names = append(nt.names, name)
	nt.cols[name] = c
	return nt
}

// Floats is a convenience wrapper around With for float columns.
func (t *Table) Floats(name string, fs ...float64) *Table {
	vs := make([]Value, len(fs))
	for i, f := range fs {
		vs[i] = Float(f)
	}
	return t.With(name, vs)
}

// Ints is a convenience wrapper around With for integer columns.
func (t *Table) Ints(name string, is ...int64) *Table {
	vs := make([]Value, len(is))
	for i, v := range is {
		vs[i] = Int(v)
	}
	return t.With(name, vs)
}

// Strings is a convenience wrapper around With for text columns.
func (t *Table) Strings(name string, ss ...string) *Table {
	vs := make([]Value, len(ss))
	for i, s := range ss {
		vs[i] = Str(s)
	}
	return t.With(name, vs)
}

// Times is a convenience wrapper around With for temporal columns.
func (t *Table) Times(name string, ts ...time.Time) *Table {
	vs := make([]Value, len(ts))
	for i, v := range ts {
		vs[i] = Time(v)
	}
	return t.With(name, vs)
}

func (t *Table) Len() int          { return t.n }
func (t *Table) Columns() []string { return append([]string(nil), t.names...) }

func (t *Table) Column(name string) (Column, bool) {
	c, ok := t.cols[name]
	if !ok {
		return nil, false
	}
	return c, true
}

// ----------------------------------------------------------------------------
// Subsets

// Subset is a view of the rows Rows of a parent Dataset. Row i of the
// subset is row Rows[i] of the parent.
type Subset struct {
	Parent Dataset
	Rows   []int
}

func (s Subset) Len() int          { return len(s.Rows) }
func (s Subset) Columns() []string { return s.Parent.Columns() }

func (s Subset) Column(name string) (Column, bool) {
	c, ok := s.Parent.Column(name)
	if !ok {
		return nil, false
	}
	return subsetColumn{c, s.Rows}, true
}

type subsetColumn struct {
	Column
	rows []int
}

func (c subsetColumn) Len() int       { return len(c.rows) }
func (c subsetColumn) At(i int) Value { return c.Column.At(c.rows[i]) }
