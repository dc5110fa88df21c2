// Package data contains the read-only dataset interface consumed by the
// plotting pipeline and a prototypical in-memory implementation.
package data

// A Column is one named, typed column of a Dataset.
type Column interface {
	Name() string

	// Kind returns the kind of the first non-null value, Null if the
	// column contains only nulls.
	Kind() Kind

	// Len returns the number of rows.
	Len() int

	// At returns the value in row i.
	At(i int) Value
}

// A Dataset is a read-only collection of equally long named columns.
// The pipeline never writes to a Dataset.
type Dataset interface {
	// Len returns the number of rows.
	Len() int

	// Columns returns the column names in declaration order.
	Columns() []string

	// Column looks up a column by name.
	Column(name string) (Column, bool)
}

// Has reports whether ds has all of the named columns.
func Has(ds Dataset, names ...string) bool {
	for _, n := range names {
		if _, ok := ds.Column(n); !ok {
			return false
		}
	}
	return true
}

// Values copies column c into a slice.
func Values(c Column) []Value {
	vs := make([]Value, c.Len())
	for i := range vs {
		vs[i] = c.At(i)
	}
	return vs
}

// FloatRange returns the minimum and maximum numeric value in vs and
// whether any numeric value was seen at all.
func FloatRange(vs []Value) (min, max float64, ok bool) {
	for _, v := range vs {
		f, isNum := v.Float()
		if !isNum {
			continue
		}
		if !ok {
			min, max, ok = f, f, true
			continue
		}
		if f < min {
			min = f
		}
		if f > max {
			max = f
		}
	}
	return min, max, ok
}
