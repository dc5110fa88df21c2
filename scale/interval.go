package scale

import (
	"fmt"
	"math"
)

// Interval represents a (potentially degenerate) real interval.
// Both edges of the interval may be NaN indicating this edge is not
// determined yet.
type Interval struct {
	Min, Max float64
}

// UnsetInterval returns [NaN,NaN].
func UnsetInterval() Interval {
	return Interval{math.NaN(), math.NaN()}
}

// Update expands i to include x. NaN and infinite values are ignored.
func (i *Interval) Update(x ...float64) {
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if !(i.Min <= v) {
			i.Min = v
		}
		if !(i.Max >= v) {
			i.Max = v
		}
	}
}

// Valid reports whether both edges of i are set.
func (i Interval) Valid() bool {
	return !math.IsNaN(i.Min) && !math.IsNaN(i.Max)
}

// Contains reports whether x lies in the closed interval i.
func (i Interval) Contains(x float64) bool {
	return x >= i.Min && x <= i.Max
}

// Width returns Max-Min.
func (i Interval) Width() float64 { return i.Max - i.Min }

func (i Interval) Equal(j Interval) bool {
	same := func(a, b float64) bool {
		return a == b || (math.IsNaN(a) && math.IsNaN(b))
	}
	return same(i.Min, j.Min) && same(i.Max, j.Max)
}

func (i Interval) String() string {
	return fmt.Sprintf("[%g:%g]", i.Min, i.Max)
}

// Expansion controls how much a trained position range is widened.
// The range [a,b] becomes [a-m*(b-a)-add, b+m*(b-a)+add].
type Expansion struct {
	Mult float64
	Add  float64
}

// Default expansions of continuous and discrete position scales.
var (
	ContinuousExpansion = Expansion{Mult: 0.05}
	DiscreteExpansion   = Expansion{Add: 0.6}
)

func (e Expansion) apply(i Interval) Interval {
	ext := e.Mult*(i.Max-i.Min) + e.Add
	return Interval{i.Min - ext, i.Max + ext}
}
