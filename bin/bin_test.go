package bin

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vdobler/ggcore/data"
)

func floats(fs ...float64) []data.Value {
	vs := make([]data.Value, len(fs))
	for i, f := range fs {
		vs[i] = data.Float(f)
	}
	return vs
}

func strs(vs []data.Value) []string {
	ss := make([]string, len(vs))
	for i, v := range vs {
		ss[i] = v.String()
	}
	return ss
}

func ptr(f float64) *float64 { return &f }

var cutTests = []struct {
	values []data.Value
	width  float64
	opts   Options
	want   []string
}{
	// Closed right: boundary values go to the lower interval, the
	// first interval is closed on both sides.
	{floats(1.5, 2.5, 3.5), 1, Options{},
		[]string{"[1.5,2.5]", "[1.5,2.5]", "(2.5,3.5]"}},
	// Closed left: boundary values go to the upper interval.
	{floats(1.5, 2.5, 3.5), 1, Options{ClosedLeft: true},
		[]string{"[1.5,2.5)", "[2.5,3.5)", "[3.5,4.5)"}},
	// Nulls do not shift the other indices.
	{[]data.Value{data.Float(1.5), data.NullValue(), data.Float(3.5)}, 1, Options{},
		[]string{"[1.5,2.5]", "NA", "(2.5,3.5]"}},
	// One interval.
	{floats(3, 3, 3), 1, Options{}, []string{"[2.5,3.5]", "[2.5,3.5]", "[2.5,3.5]"}},
	{floats(0.1, 0.2, 0.35), 0.1, Options{},
		[]string{"[0.05,0.15]", "(0.15,0.25]", "(0.25,0.35]"}},
	// Explicit origin.
	{floats(1, 2, 3, 4), 2, Options{Origin: ptr(0)},
		[]string{"[0,2]", "[0,2]", "(2,4]", "(2,4]"}},
	{floats(1, 2, 3, 4), 2, Options{Origin: ptr(0), ClosedLeft: true},
		[]string{"[0,2)", "[2,4)", "[2,4)", "[4,6)"}},
	// Center on integers.
	{floats(1, 2, 3), 1, Options{Center: ptr(0)},
		[]string{"[0.5,1.5]", "(1.5,2.5]", "(2.5,3.5]"}},
	{floats(-1.2, 0, 1.2), 1, Options{},
		[]string{"[-1.5,-0.5]", "(-0.5,0.5]", "(0.5,1.5]"}},
	// Integer columns.
	{[]data.Value{data.Int(10), data.Int(25)}, 10, Options{Boundary: ptr(0)},
		[]string{"[10,20]", "(20,30]"}},
}

func TestCut(t *testing.T) {
	for i, tc := range cutTests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			got, err := Cut(tc.values, tc.width, tc.opts)
			require.NoError(t, err)
			assert.Equal(t, tc.want, strs(got))
		})
	}
}

func TestComputeIntervalsPartition(t *testing.T) {
	r, err := Compute(floats(0.3, 7.9, 2.2, 5, 5.5), 0.5, Options{})
	require.NoError(t, err)
	require.NotEmpty(t, r.Intervals)
	for i := 1; i < len(r.Intervals); i++ {
		prev, cur := r.Intervals[i-1], r.Intervals[i]
		assert.True(t, prev.Upper.Equal(cur.Lower), "gap between %s and %s", prev, cur)
		assert.NotEqual(t, prev.UpperClosed, cur.LowerClosed, "boundary %s owned twice or never", cur.Lower)
	}
	for i, k := range r.Index {
		d, _ := floats(0.3, 7.9, 2.2, 5, 5.5)[i].Decimal()
		assert.True(t, r.Intervals[k].Contains(d), "value %s not in %s", d, r.Intervals[k])
	}
}

func TestLevels(t *testing.T) {
	r, err := Compute(floats(3.5, 1.5), 1, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"[1.5,2.5]", "(2.5,3.5]"}, strs(r.Levels()))
}

func TestDigitsHalfEven(t *testing.T) {
	r, err := Compute(floats(0.2, 0.5), 0.25, Options{Origin: ptr(0.125), Digits: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"[0.12,0.38]", "(0.38,0.62]"}, strs(r.Levels()))
}

func TestCutErrors(t *testing.T) {
	_, err := Cut(floats(1, 2), 0, Options{})
	assert.ErrorIs(t, err, ErrWidth)

	_, err = Cut([]data.Value{data.Float(1), data.Str("x")}, 1, Options{})
	assert.ErrorIs(t, err, ErrNonNumeric)

	_, err = Cut(floats(0, 1e9), 1e-3, Options{})
	assert.ErrorIs(t, err, ErrTooManyBins)
}

func TestCutAllNull(t *testing.T) {
	got, err := Cut([]data.Value{data.NullValue(), data.NullValue()}, 1, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"NA", "NA"}, strs(got))
}

func TestBreaks(t *testing.T) {
	ivs, err := Breaks(0, 10, 2.5, Options{Boundary: ptr(0)})
	require.NoError(t, err)
	require.Len(t, ivs, 4)
	lo, hi := ivs[3].Bounds()
	assert.Equal(t, 7.5, lo)
	assert.Equal(t, 10.0, hi)
	assert.Equal(t, 1.25, ivs[0].Mid())
}

func TestBreaksClosedLeftMaxOnBoundary(t *testing.T) {
	ivs, err := Breaks(0, 10, 2.5, Options{Boundary: ptr(0), ClosedLeft: true})
	require.NoError(t, err)
	require.Len(t, ivs, 5)
	last := ivs[4]
	assert.Equal(t, "[10.0,12.5)", last.String())
	assert.False(t, last.UpperClosed)
	for _, iv := range ivs[:4] {
		assert.True(t, iv.LowerClosed)
		assert.False(t, iv.UpperClosed)
	}
}
