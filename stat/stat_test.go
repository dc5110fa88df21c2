package stat

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vdobler/ggcore/aes"
	"github.com/vdobler/ggcore/bin"
	"github.com/vdobler/ggcore/data"
	"github.com/vdobler/ggcore/record"
)

func frame(t *testing.T, a aes.Aes, tbl *data.Table) *aes.Frame {
	t.Helper()
	f, err := aes.Evaluate(a, tbl)
	require.NoError(t, err)
	return f
}

func stat(r record.Record, name string) float64 {
	f, _ := r.Stat(name).Float()
	return f
}

func TestIdentity(t *testing.T) {
	tbl := data.NewTable().
		Ints("x", 1, 2, 3).
		Ints("y", 4, 5, 6).
		Strings("f", "A", "B", "A")
	f := frame(t, aes.Aes{X: aes.Col("x"), Y: aes.Col("y"), Fill: aes.Col("f")}, tbl)

	recs, err := Identity{}.Compute(f)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	for i, r := range recs {
		assert.Equal(t, i, r.Row)
		assert.Equal(t, data.Int(int64(i+1)), r.X)
	}
	assert.Equal(t, data.Str("B"), recs[1].Fill)
	assert.Equal(t, data.Int(0), recs[0].Group)
	assert.Equal(t, data.Int(1), recs[1].Group)
	assert.Equal(t, data.Int(0), recs[2].Group)
	assert.True(t, math.IsNaN(recs[0].YMin))
}

func TestCount(t *testing.T) {
	tbl := data.NewTable().
		Ints("x", 1, 1, 2, 1).
		Strings("f", "A", "A", "A", "B").
		Floats("w", 0.5, 1.5, 2, 1)
	f := frame(t, aes.Aes{X: aes.Col("x"), Fill: aes.Col("f")}, tbl)

	recs, err := Count{}.Compute(f)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, data.Int(1), recs[0].X)
	assert.Equal(t, data.Int(2), recs[0].Stat("count"))
	assert.InDelta(t, 2.0/3, stat(recs[0], "prop"), 1e-12)
	assert.Equal(t, -1, recs[0].Row)
	assert.Equal(t, data.Str("A"), recs[0].Fill)

	assert.Equal(t, data.Int(2), recs[1].X)
	assert.Equal(t, data.Int(1), recs[1].Stat("count"))
	assert.Equal(t, 2, recs[1].Row)

	assert.Equal(t, data.Str("B"), recs[2].Fill)
	assert.Equal(t, 1.0, stat(recs[2], "prop"))

	f = frame(t, aes.Aes{X: aes.Col("x"), Fill: aes.Col("f"), Weight: aes.Col("w")}, tbl)
	recs, err = Count{}.Compute(f)
	require.NoError(t, err)
	assert.Equal(t, 2.0, stat(recs[0], "count"))
	assert.Equal(t, 2.0, stat(recs[1], "count"))
	assert.Equal(t, 0.5, stat(recs[0], "prop"))

	_, err = Count{}.Compute(frame(t, aes.Aes{Fill: aes.Col("f")}, tbl))
	assert.True(t, errors.Is(err, ErrMissing))
}

func TestBin(t *testing.T) {
	tbl := data.NewTable().Floats("x", 1.5, 2.5, 3.5)
	f := frame(t, aes.Aes{X: aes.Col("x")}, tbl)

	recs, err := Bin{Width: 1}.Compute(f)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, data.Str("[1.5,2.5]"), recs[0].Stat("bin"))
	assert.Equal(t, data.Str("(2.5,3.5]"), recs[1].Stat("bin"))
	assert.Equal(t, 2.0, stat(recs[0], "count"))
	assert.Equal(t, 1.0, stat(recs[1], "count"))
	assert.InDelta(t, 2.0/3, stat(recs[0], "density"), 1e-12)
	assert.Equal(t, 0.5, stat(recs[1], "ncount"))

	x, _ := recs[0].X.Float()
	assert.Equal(t, 2.0, x)
	assert.Equal(t, 1.5, recs[0].XMin)
	assert.Equal(t, 2.5, recs[0].XMax)
	assert.Equal(t, -1, recs[0].Row)
	assert.Equal(t, 2, recs[1].Row)
}

func TestBinCountsAll(t *testing.T) {
	tbl := data.NewTable().
		Floats("x", 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10).
		Strings("g", "a", "b", "a", "b", "a", "b", "a", "b", "a", "b", "a")
	f := frame(t, aes.Aes{X: aes.Col("x"), Color: aes.Col("g")}, tbl)

	for i, b := range []Bin{{Bins: 2}, {Bins: 3}, {Bins: 30}, {Width: 2.5, ClosedLeft: true}} {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			recs, err := b.Compute(f)
			require.NoError(t, err)
			total := 0.0
			for _, r := range recs {
				total += stat(r, "count")
			}
			assert.Equal(t, 11.0, total)
		})
	}
}

func TestBinErrors(t *testing.T) {
	tbl := data.NewTable().Strings("s", "a", "b").With("m", []data.Value{data.Int(1), data.Str("b")})

	_, err := Bin{Bins: 2}.Compute(frame(t, aes.Aes{X: aes.Col("s")}, tbl))
	assert.True(t, errors.Is(err, ErrNonNumeric))

	_, err = Bin{Bins: 2}.Compute(frame(t, aes.Aes{X: aes.Col("m")}, tbl))
	assert.True(t, errors.Is(err, bin.ErrNonNumeric))

	empty := data.NewTable().Floats("x")
	recs, err := Bin{Bins: 2}.Compute(frame(t, aes.Aes{X: aes.Col("x")}, empty))
	assert.NoError(t, err)
	assert.Empty(t, recs)
}

func TestSummary(t *testing.T) {
	tbl := data.NewTable().
		Ints("x", 1, 1, 1, 2).
		Ints("y", 1, 2, 3, 5)
	f := frame(t, aes.Aes{X: aes.Col("x"), Y: aes.Col("y")}, tbl)

	recs, err := Summary{}.Compute(f)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	y, _ := recs[0].Y.Float()
	assert.InDelta(t, 2, y, 1e-12)
	assert.InDelta(t, 1, recs[0].YMin, 1e-12)
	assert.InDelta(t, 3, recs[0].YMax, 1e-12)
	assert.Equal(t, data.Int(3), recs[0].Stat("n"))

	assert.Equal(t, 5.0, recs[1].YMin)
	assert.Equal(t, 5.0, recs[1].YMax)
	assert.Equal(t, 3, recs[1].Row)
}

func TestBoxplot(t *testing.T) {
	tbl := data.NewTable().Floats("y", 3, 1, 100, 2, 5, 4)
	f := frame(t, aes.Aes{Y: aes.Col("y")}, tbl)

	recs, err := Boxplot{Coef: DefaultCoef}.Compute(f)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	r := recs[0]

	assert.Equal(t, data.Int(0), r.X)
	assert.InDelta(t, 3.5, stat(r, "middle"), 1e-12)
	assert.Equal(t, 1.0, r.YMin)
	assert.Equal(t, 5.0, r.YMax)
	assert.Equal(t, data.Str("100"), r.Stat("outliers"))
	assert.Equal(t, data.Int(6), r.Stat("n"))
	assert.True(t, stat(r, "lower") <= stat(r, "middle"))
	assert.True(t, stat(r, "middle") <= stat(r, "upper"))

	// The input frame is not reordered.
	assert.Equal(t, data.Float(3), f.At(aes.Y, 0))
}

func TestSmooth(t *testing.T) {
	tbl := data.NewTable().
		Floats("x", 1, 2, 3, 4, 5, 6, 7, 8, 9, 10).
		Floats("y", 3, 5, 7, 9, 11, 13, 15, 17, 19, 21)
	f := frame(t, aes.Aes{X: aes.Col("x"), Y: aes.Col("y")}, tbl)

	recs, err := Smooth{Method: "lm", Degree: 1, N: 5}.Compute(f)
	require.NoError(t, err)
	require.Len(t, recs, 5)
	x0, _ := recs[0].X.Float()
	y0, _ := recs[0].Y.Float()
	x4, _ := recs[4].X.Float()
	y4, _ := recs[4].Y.Float()
	assert.Equal(t, 1.0, x0)
	assert.Equal(t, 10.0, x4)
	assert.InDelta(t, 3, y0, 1e-9)
	assert.InDelta(t, 21, y4, 1e-9)

	recs, err = Smooth{Method: "loess", Degree: 2, Span: 0.75, N: 10}.Compute(f)
	require.NoError(t, err)
	require.Len(t, recs, 10)
	for _, r := range recs {
		y, ok := r.Y.Float()
		require.True(t, ok)
		assert.True(t, y > 2 && y < 22, "fitted %g", y)
	}

	single := data.NewTable().Floats("x", 2).Floats("y", 3)
	recs, err = Smooth{Method: "lm", Degree: 1, N: 5}.Compute(frame(t, aes.Aes{X: aes.Col("x"), Y: aes.Col("y")}, single))
	require.NoError(t, err)
	assert.Empty(t, recs)

	vertical := data.NewTable().Floats("x", 2, 2).Floats("y", 3, 5)
	recs, err = Smooth{Method: "lm", Degree: 1, N: 5}.Compute(frame(t, aes.Aes{X: aes.Col("x"), Y: aes.Col("y")}, vertical))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, data.Float(4), recs[0].Y)
}

func TestNew(t *testing.T) {
	s, err := New("", Params{})
	require.NoError(t, err)
	assert.Equal(t, "identity", s.Name())

	s, err = New("bin", Params{})
	require.NoError(t, err)
	assert.Equal(t, Bin{Bins: DefaultBins}, s)
	assert.Equal(t, "count", s.Defaults()[aes.Y])

	s, err = New("smooth", Params{Method: "loess"})
	require.NoError(t, err)
	assert.Equal(t, Smooth{Method: "loess", Degree: DefaultDegree, Span: DefaultSpan, N: DefaultN}, s)

	one := 1.0
	s, err = New("boxplot", Params{Coef: &one})
	require.NoError(t, err)
	assert.Equal(t, Boxplot{Coef: 1}, s)

	neg := -1.0
	for i, tc := range []struct {
		id   string
		p    Params
		want error
	}{
		{"density", Params{}, ErrUnknown},
		{"bin", Params{Bins: -1}, ErrParam},
		{"bin", Params{Closed: "middle"}, ErrParam},
		{"bin", Params{Boundary: &one, Center: &one}, ErrParam},
		{"smooth", Params{Method: "gam"}, ErrParam},
		{"smooth", Params{Span: 2}, ErrParam},
		{"boxplot", Params{Coef: &neg}, ErrParam},
	} {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			_, err := New(tc.id, tc.p)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}
