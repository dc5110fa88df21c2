// Package bin turns a continuous column into ordered, labeled intervals of
// equal width.
//
// All arithmetic is done on exact decimals so that a value sitting on a
// boundary is recognized as such and assigned according to the closure
// policy: with the default closed-right policy a value on a boundary
// belongs to the lower interval and only the first interval includes its
// lower bound; with the closed-left policy a value on a boundary belongs
// to the upper interval.
package bin

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vdobler/ggcore/data"
)

var (
	ErrWidth       = errors.New("bin: width must be positive")
	ErrNonNumeric  = errors.New("bin: non-numeric value")
	ErrTooManyBins = errors.New("bin: too many bins")
)

// MaxBins limits the number of intervals generated for one column.
var MaxBins = 1000000

// maxDigits limits the automatically chosen label precision.
const maxDigits = 10

// Options control placement and closure of the intervals.
type Options struct {
	// Origin is the lower bound of the first interval. If nil the
	// origin is derived from the minimum of the data such that a
	// boundary falls on Boundary (or Center-width/2), by default on
	// width/2.
	Origin   *float64
	Boundary *float64
	Center   *float64

	// ClosedLeft selects the [lower,upper) policy. The zero value
	// selects (lower,upper].
	ClosedLeft bool

	// Digits is the number of decimal places used in labels. Zero picks
	// the smallest number of places representing width and origin
	// exactly.
	Digits int
}

// ----------------------------------------------------------------------------
// Interval

// An Interval is one bin.
type Interval struct {
	Lower, Upper             decimal.Decimal
	LowerClosed, UpperClosed bool
}

// Contains reports whether v lies in iv.
func (iv Interval) Contains(v decimal.Decimal) bool {
	lo, hi := v.Cmp(iv.Lower), v.Cmp(iv.Upper)
	if lo < 0 || (lo == 0 && !iv.LowerClosed) {
		return false
	}
	if hi > 0 || (hi == 0 && !iv.UpperClosed) {
		return false
	}
	return true
}

// Bounds returns the interval bounds as floats.
func (iv Interval) Bounds() (lower, upper float64) {
	return iv.Lower.InexactFloat64(), iv.Upper.InexactFloat64()
}

// Mid returns the center of iv.
func (iv Interval) Mid() float64 {
	return iv.Lower.Add(iv.Upper).Div(decimal.NewFromInt(2)).InexactFloat64()
}

// Format renders iv with digits decimal places, rounding half to even.
func (iv Interval) Format(digits int) string {
	var sb strings.Builder
	if iv.LowerClosed {
		sb.WriteByte('[')
	} else {
		sb.WriteByte('(')
	}
	sb.WriteString(iv.Lower.StringFixedBank(int32(digits)))
	sb.WriteByte(',')
	sb.WriteString(iv.Upper.StringFixedBank(int32(digits)))
	if iv.UpperClosed {
		sb.WriteByte(']')
	} else {
		sb.WriteByte(')')
	}
	return sb.String()
}

func (iv Interval) String() string { return iv.Format(places(iv.Lower, iv.Upper)) }

// ----------------------------------------------------------------------------
// Breaks

func (o Options) origin(min, width decimal.Decimal) decimal.Decimal {
	if o.Origin != nil {
		return decimal.NewFromFloat(*o.Origin)
	}
	boundary := width.Div(decimal.NewFromInt(2))
	switch {
	case o.Boundary != nil:
		boundary = decimal.NewFromFloat(*o.Boundary)
	case o.Center != nil:
		boundary = decimal.NewFromFloat(*o.Center).Sub(boundary)
	}
	shift := min.Sub(boundary).Div(width).Floor()
	return boundary.Add(shift.Mul(width))
}

// Breaks returns the consecutive intervals of the given width which cover
// [min,max] under the closure policy of o.
func Breaks(min, max, width float64, o Options) ([]Interval, error) {
	if !(width > 0) {
		return nil, ErrWidth
	}
	return breaks(decimal.NewFromFloat(min), decimal.NewFromFloat(max), decimal.NewFromFloat(width), o)
}

func breaks(min, max, width decimal.Decimal, o Options) ([]Interval, error) {
	origin := o.origin(min, width)
	span := max.Sub(origin).Div(width)

	var n int64
	if o.ClosedLeft {
		n = span.Floor().IntPart() + 1
	} else {
		n = span.Ceil().IntPart()
	}
	if n < 1 {
		n = 1
	}
	if n > int64(MaxBins) {
		return nil, fmt.Errorf("%w: %d intervals of width %s", ErrTooManyBins, n, width)
	}

	ivs := make([]Interval, n)
	for i := range ivs {
		lo := origin.Add(width.Mul(decimal.NewFromInt(int64(i))))
		ivs[i] = Interval{
			Lower:       lo,
			Upper:       lo.Add(width),
			LowerClosed: o.ClosedLeft,
			UpperClosed: !o.ClosedLeft,
		}
	}
	// Closed left, a maximum on a boundary opens a new interval so the
	// last interval's upper bound always lies above max and stays open.
	if !o.ClosedLeft {
		ivs[0].LowerClosed = true
	}
	return ivs, nil
}

// ----------------------------------------------------------------------------
// Cut

// A Result is the outcome of Compute.
type Result struct {
	Intervals []Interval

	// Index[i] is the interval of the i'th input value or -1 if that
	// value was null.
	Index []int

	Digits int
}

// Compute assigns each of the values to one of the width-sized intervals
// which cover the range of the non-null values. Null values are skipped
// and do not influence the intervals. Text and boolean values are an
// error.
func Compute(values []data.Value, width float64, o Options) (Result, error) {
	if !(width > 0) {
		return Result{}, ErrWidth
	}
	w := decimal.NewFromFloat(width)

	ds := make([]decimal.Decimal, len(values))
	index := make([]int, len(values))
	var min, max decimal.Decimal
	seen := false
	for i, v := range values {
		index[i] = -1
		if v.IsNull() {
			continue
		}
		d, ok := v.Decimal()
		if !ok {
			return Result{}, fmt.Errorf("%w: %s value %q in row %d", ErrNonNumeric, v.Kind(), v, i)
		}
		ds[i] = d
		if !seen {
			min, max, seen = d, d, true
			continue
		}
		if d.LessThan(min) {
			min = d
		}
		if d.GreaterThan(max) {
			max = d
		}
	}
	if !seen {
		return Result{Index: index}, nil
	}

	ivs, err := breaks(min, max, w, o)
	if err != nil {
		return Result{}, err
	}
	origin := ivs[0].Lower
	n := len(ivs)
	for i, v := range values {
		if v.IsNull() {
			continue
		}
		index[i] = assign(ds[i], origin, w, n, o.ClosedLeft)
	}

	digits := o.Digits
	if digits <= 0 {
		digits = places(w, origin)
	}
	return Result{Intervals: ivs, Index: index, Digits: digits}, nil
}

func assign(v, origin, width decimal.Decimal, n int, closedLeft bool) int {
	q := v.Sub(origin).Div(width)
	raw := q.Floor()
	idx := int(raw.IntPart())
	if !closedLeft && raw.Equal(q) {
		// On the upper bound of the previous interval.
		idx--
	}
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}
	return idx
}

// Label returns the label of the i'th input value, null for null input.
func (r Result) Label(i int) data.Value {
	k := r.Index[i]
	if k < 0 {
		return data.NullValue()
	}
	return data.Str(r.Intervals[k].Format(r.Digits))
}

// Labels returns one label per input value.
func (r Result) Labels() []data.Value {
	labels := make([]data.Value, len(r.Index))
	for i := range labels {
		labels[i] = r.Label(i)
	}
	return labels
}

// Levels returns the labels of all intervals in ascending order.
func (r Result) Levels() []data.Value {
	levels := make([]data.Value, len(r.Intervals))
	for i, iv := range r.Intervals {
		levels[i] = data.Str(iv.Format(r.Digits))
	}
	return levels
}

// Cut is a convenience wrapper around Compute returning just the labels.
func Cut(values []data.Value, width float64, o Options) ([]data.Value, error) {
	r, err := Compute(values, width, o)
	if err != nil {
		return nil, err
	}
	return r.Labels(), nil
}

// WidthFor returns the width of bins equally sized bins covering
// [min,max]. A degenerate range yields width 1.
func WidthFor(min, max float64, bins int) float64 {
	if bins < 1 {
		bins = 1
	}
	if !(max > min) {
		return 1
	}
	return (max - min) / float64(bins)
}

// places returns the number of decimal places needed to print all ds
// exactly, at most maxDigits.
func places(ds ...decimal.Decimal) int {
	p := 0
	for _, d := range ds {
		s := d.String()
		if i := strings.IndexByte(s, '.'); i >= 0 && len(s)-i-1 > p {
			p = len(s) - i - 1
		}
	}
	if p > maxDigits {
		p = maxDigits
	}
	return p
}
