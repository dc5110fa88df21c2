// Scale Transformations
//
// Transformations work like the ones in ggplot2: the data is mapped
// linearly in transformed space.

package scale

import (
	"math"

	"github.com/aclements/go-moremath/scale"
	"gonum.org/v1/plot"
)

// A Transformation bundles a monotone function and its inverse together
// with an appropriate Ticker for the untransformed data.
type Transformation struct {
	Name    string
	Forward func(x float64) float64
	Inverse func(y float64) float64

	// Valid reports whether x is in the domain of Forward. A nil Valid
	// accepts every finite x.
	Valid func(x float64) bool

	Ticker plot.Ticker
}

// IdentityTrans does not transform at all.
var IdentityTrans = Transformation{
	Name:    "identity",
	Forward: func(x float64) float64 { return x },
	Inverse: func(y float64) float64 { return y },
	Ticker:  plot.DefaultTicks{},
}

// Log10Trans maps positive data logarithmically.
var Log10Trans = Transformation{
	Name:    "log10",
	Forward: math.Log10,
	Inverse: func(y float64) float64 { return math.Pow(10, y) },
	Valid:   func(x float64) bool { return x > 0 },
	Ticker:  plot.LogTicks{},
}

// SqrtTrans maps non-negative data by its square root.
var SqrtTrans = Transformation{
	Name:    "sqrt",
	Forward: math.Sqrt,
	Inverse: func(y float64) float64 { return y * y },
	Valid:   func(x float64) bool { return x >= 0 },
	Ticker:  plot.DefaultTicks{},
}

// ReverseTrans flips the direction of a scale.
var ReverseTrans = Transformation{
	Name:    "reverse",
	Forward: func(x float64) float64 { return -x },
	Inverse: func(y float64) float64 { return -y },
	Ticker:  plot.DefaultTicks{},
}

// Accepts reports whether x can be transformed.
func (t Transformation) Accepts(x float64) bool {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return false
	}
	return t.Valid == nil || t.Valid(x)
}

// linear returns the linear scale covering from in transformed space, in
// ascending order so that a decreasing Forward reverses the direction.
func (t Transformation) linear(from Interval) scale.Linear {
	lo, hi := t.Forward(from.Min), t.Forward(from.Max)
	if lo > hi {
		lo, hi = hi, lo
	}
	return scale.Linear{Min: lo, Max: hi}
}

// Map maps x from the interval from to the interval to, linear in
// transformed space. A degenerate from interval maps to the center of to.
func (t Transformation) Map(from, to Interval, x float64) float64 {
	l := t.linear(from)
	u := l.Map(t.Forward(x))
	return to.Min + u*(to.Max-to.Min)
}

// Unmap is the inverse of Map.
func (t Transformation) Unmap(from, to Interval, y float64) float64 {
	l := t.linear(from)
	u := 0.5
	if to.Max != to.Min {
		u = (y - to.Min) / (to.Max - to.Min)
	}
	return t.Inverse(l.Unmap(u))
}

// expand widens i by e in transformed space. A degenerate interval is
// first widened to unit width.
func (t Transformation) expand(i Interval, e Expansion) Interval {
	l := t.linear(i)
	ti := Interval{l.Min, l.Max}
	if ti.Min == ti.Max {
		ti = Interval{ti.Min - 0.5, ti.Max + 0.5}
	}
	ti = e.apply(ti)
	lo, hi := t.Inverse(ti.Min), t.Inverse(ti.Max)
	if lo > hi {
		lo, hi = hi, lo
	}
	return Interval{lo, hi}
}

// AreaMap maps x from the interval from to the interval to such that the
// area of a circle with the returned radius grows linearly with x.
// With fix0 set zero maps to zero, like ggplot's scale_size_area.
func AreaMap(from, to Interval, x float64, fix0 bool) float64 {
	if fix0 {
		from.Min, to.Min = 0, 0
	}
	area := Interval{to.Min * to.Min, to.Max * to.Max}
	return math.Sqrt(IdentityTrans.Map(from, area, x))
}

// TransformationByName returns the transformation called name.
func TransformationByName(name string) (Transformation, bool) {
	for _, t := range []Transformation{IdentityTrans, Log10Trans, SqrtTrans, ReverseTrans} {
		if t.Name == name {
			return t, true
		}
	}
	return Transformation{}, false
}
