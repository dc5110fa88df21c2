package scale

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vdobler/ggcore/aes"
	"github.com/vdobler/ggcore/data"
)

func ints(is ...int64) []data.Value {
	vs := make([]data.Value, len(is))
	for i, x := range is {
		vs[i] = data.Int(x)
	}
	return vs
}

func strs(ss ...string) []data.Value {
	vs := make([]data.Value, len(ss))
	for i, s := range ss {
		vs[i] = data.Str(s)
	}
	return vs
}

func TestContinuousPosition(t *testing.T) {
	s := NewContinuous(aes.X)
	require.NoError(t, s.Train(ints(1, 2, 3)))
	require.True(t, s.Trained())

	r := s.Range()
	assert.InDelta(t, 0.9, r.Min, 1e-12)
	assert.InDelta(t, 3.1, r.Max, 1e-12)

	v := s.Map(data.Int(1))
	assert.False(t, v.NA)
	assert.InDelta(t, 0.1/2.2, v.Num, 1e-12)
	assert.Equal(t, v, s.Map(data.Int(1)))
	assert.InDelta(t, 2.0, s.Inverse(s.Unit(2)), 1e-12)

	s.TrainPosition(0)
	assert.InDelta(t, -0.15, s.Range().Min, 1e-12)

	for _, b := range s.Breaks() {
		f, ok := b.Value.Float()
		require.True(t, ok)
		assert.True(t, s.Range().Contains(f), "break %v outside range", f)
		assert.True(t, b.Visual.Num >= 0 && b.Visual.Num <= 1)
		assert.NotEmpty(t, b.Label)
	}
}

func TestContinuousNA(t *testing.T) {
	s := NewContinuous(aes.Y)
	assert.True(t, s.Map(data.NullValue()).NA)
	assert.True(t, s.Map(data.Int(3)).NA, "untrained scale")
	assert.Empty(t, s.Breaks())

	err := s.Train([]data.Value{data.Int(1), data.Str("a")})
	assert.True(t, errors.Is(err, ErrType))
	assert.False(t, s.Trained(), "failed batch must not train")

	s.Limits = Interval{0, 10}
	require.NoError(t, s.Train(ints(2, 4)))
	assert.True(t, s.Map(data.Int(11)).NA)
	assert.False(t, s.Map(data.Int(10)).NA)
	assert.Equal(t, Interval{0, 10}, s.Range())
}

func TestContinuousLog(t *testing.T) {
	s := NewContinuous(aes.X)
	s.Trans = Log10Trans
	require.NoError(t, s.Train(ints(1, 10, 100, -1, 0)))
	assert.Equal(t, Interval{1, 100}, s.Data)
	assert.True(t, s.Map(data.Int(-1)).NA)
	assert.InDelta(t, 0.5, s.Map(data.Int(10)).Num, 1e-9)
	assert.Equal(t, "log10", s.Type())
}

func TestContinuousNonPosition(t *testing.T) {
	size := NewContinuous(aes.Size)
	require.NoError(t, size.Train(ints(0, 10)))
	assert.InDelta(t, 6, size.Map(data.Int(10)).Num, 1e-12)
	assert.InDelta(t, 1, size.Map(data.Int(0)).Num, 1e-12)
	assert.True(t, size.Map(data.Int(11)).NA)

	alpha := NewContinuous(aes.Alpha)
	require.NoError(t, alpha.Train(ints(0, 10)))
	assert.InDelta(t, 0.55, alpha.Map(data.Int(5)).Num, 1e-12)

	col := NewContinuous(aes.Color)
	require.NoError(t, col.Train(ints(0, 10)))
	assert.Equal(t, DefaultGradient.At(0), col.Map(data.Int(0)).Color)
	assert.Equal(t, DefaultGradient.At(1), col.Map(data.Int(10)).Color)
	na := col.Map(data.NullValue())
	assert.True(t, na.NA)
	assert.Equal(t, NAColor, na.Color)
}

func TestContinuousFresh(t *testing.T) {
	s := NewContinuous(aes.X)
	s.Limits.Min = 0
	require.NoError(t, s.Train(ints(5, 6)))
	f := s.Fresh().(*Continuous)
	assert.False(t, f.Trained())
	assert.Equal(t, 0.0, f.Limits.Min)
	assert.True(t, s.Trained())
}

func TestDiscreteColor(t *testing.T) {
	s := NewDiscrete(aes.Color)
	assert.True(t, s.Map(data.NullValue()).NA, "untrained")
	assert.Empty(t, s.Breaks())

	require.NoError(t, s.Train(strs("b", "a", "b", "c")))
	assert.Equal(t, strs("b", "a", "c"), s.Levels())

	pal := DefaultHue.Generate(3)
	assert.Equal(t, pal[0], s.Map(data.Str("b")))
	assert.Equal(t, pal[1], s.Map(data.Str("a")))
	assert.Equal(t, pal[2], s.Map(data.Str("c")))
	assert.True(t, s.Map(data.Str("z")).NA)

	// Training again with known values changes nothing.
	require.NoError(t, s.Train(strs("c", "a")))
	assert.Equal(t, pal[0], s.Map(data.Str("b")))

	breaks := s.Breaks()
	require.Len(t, breaks, 3)
	assert.Equal(t, "b", breaks[0].Label)

	s.Reverse = true
	s.regenerate()
	assert.Equal(t, pal[2], s.Map(data.Str("b")))
}

func TestDiscreteLevels(t *testing.T) {
	s := NewDiscrete(aes.Shape)
	s.SetLevels(strs("c", "a", "b"))
	require.NoError(t, s.Train(strs("a", "z")))
	assert.Equal(t, strs("c", "a", "b"), s.Levels())
	assert.True(t, s.Map(data.Str("z")).NA)
	assert.Equal(t, 1.0, s.Map(data.Str("a")).Num)
	assert.Equal(t, "triangle", s.Map(data.Str("a")).Text)

	f := s.Fresh().(*Discrete)
	assert.Equal(t, s.Levels(), f.Levels(), "explicit levels survive")
}

func TestDiscreteNumericLevels(t *testing.T) {
	s := NewDiscrete(aes.Fill)
	require.NoError(t, s.Train([]data.Value{data.Int(1), data.Float(1.0), data.Float(2.5)}))
	assert.Len(t, s.Levels(), 2)
}

func TestDiscretePosition(t *testing.T) {
	s := NewDiscrete(aes.X)
	require.NoError(t, s.Train(strs("a", "b", "c")))
	assert.Equal(t, 2.0, s.Position(data.Str("b")))
	assert.True(t, math.IsNaN(s.Position(data.Str("q"))))
	assert.InDelta(t, 0.4, s.Range().Min, 1e-12)
	assert.InDelta(t, 3.6, s.Range().Max, 1e-12)
	assert.InDelta(t, 0.5, s.Unit(2), 1e-12)
	assert.InDelta(t, 0.5, s.Map(data.Str("b")).Num, 1e-12)
	assert.Equal(t, "b", s.Map(data.Str("b")).Text)
	assert.InDelta(t, 3.0, s.Inverse(s.Unit(3)), 1e-12)
}

func TestClone(t *testing.T) {
	d := NewDiscrete(aes.Color)
	require.NoError(t, d.Train(strs("a", "b")))
	c := d.Clone().(*Discrete)
	require.NoError(t, c.Train(strs("c")))
	assert.Equal(t, strs("a", "b"), d.Levels(), "original unchanged")
	assert.Equal(t, strs("a", "b", "c"), c.Levels())
	assert.True(t, d.Map(data.Str("c")).NA)

	s := NewContinuous(aes.Y)
	require.NoError(t, s.Train(ints(1, 2)))
	cs := s.Clone().(*Continuous)
	require.NoError(t, cs.Train(ints(10)))
	assert.Equal(t, Interval{1, 2}, s.Data)
	assert.Equal(t, Interval{1, 10}, cs.Data)
}

func TestBinned(t *testing.T) {
	s := NewBinned(aes.Alpha)
	require.NoError(t, s.Train(ints(0, 3, 10)))
	assert.Equal(t, []float64{0, 5, 10}, s.Edges())

	assert.InDelta(t, 0.325, s.Map(data.Int(2)).Num, 1e-12)
	assert.InDelta(t, 0.775, s.Map(data.Int(5)).Num, 1e-12)
	assert.InDelta(t, 0.775, s.Map(data.Int(10)).Num, 1e-12)
	assert.True(t, s.Map(data.Int(11)).NA)
	assert.True(t, s.Map(data.Str("x")).NA)

	breaks := s.Breaks()
	require.Len(t, breaks, 1)
	assert.Equal(t, "5", breaks[0].Label)

	assert.Error(t, s.Train(strs("x")))
}

func TestIdentity(t *testing.T) {
	for i, tc := range []struct {
		ch   aes.Channel
		in   data.Value
		want Visual
	}{
		{aes.Size, data.Str(" 3.5"), Visual{Num: 3.5}},
		{aes.Size, data.Int(-2), Visual{Num: 0}},
		{aes.Alpha, data.Int(2), Visual{Num: 1}},
		{aes.Alpha, data.Float(0.25), Visual{Num: 0.25}},
		{aes.Shape, data.Str("triangle"), Visual{Num: 1, Text: "triangle"}},
		{aes.Shape, data.Int(7), Visual{Num: 1, Text: "triangle"}},
		{aes.Label, data.Int(3), Visual{Text: "3"}},
	} {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			s := NewIdentity(tc.ch)
			assert.Equal(t, tc.want, s.Map(tc.in))
		})
	}

	s := NewIdentity(aes.Size)
	assert.True(t, s.Map(data.Str("big")).NA)
	assert.True(t, s.Map(data.NullValue()).NA)

	c := NewIdentity(aes.Color)
	red, _ := ParseColor("#ff0000")
	assert.Equal(t, red, c.Map(data.Str("red")).Color)
	assert.True(t, c.Map(data.Str("nope")).NA)

	lt := NewIdentity(aes.Linetype)
	assert.Equal(t, "dashed", lt.Map(data.Str("dashed")).Text)
	assert.Equal(t, 0.0, lt.Map(data.Str("solid")).Num)
}

func TestIdentityHugeIndex(t *testing.T) {
	sh := NewIdentity(aes.Shape).Map(data.Float(1e20))
	assert.False(t, sh.NA)
	assert.GreaterOrEqual(t, sh.Num, 0.0)
	assert.Less(t, sh.Num, float64(NumShapes))

	lt := NewIdentity(aes.Linetype).Map(data.Float(1e20))
	assert.False(t, lt.NA)
	assert.Contains(t, LinetypeNames, lt.Text)
	assert.Equal(t, "longdot", NewIdentity(aes.Linetype).Map(data.Int(13)).Text)
}

func TestHuePalette(t *testing.T) {
	vis := DefaultHue.Generate(4)
	require.Len(t, vis, 4)
	seen := map[string]bool{}
	for _, v := range vis {
		seen[v.String()] = true
	}
	assert.Len(t, seen, 4)
	assert.Len(t, DefaultHue.Generate(1), 1)
	assert.Empty(t, DefaultHue.Generate(0))

	assert.Len(t, RainbowPalette{End: 300, Saturation: 1, Value: 1}.Generate(5), 5)

	sizes := RangePalette{Start: 1, End: 6}.Generate(3)
	assert.Equal(t, []Visual{{Num: 1}, {Num: 3.5}, {Num: 6}}, sizes)

	list := ListPalette{NAColor}.Generate(2)
	assert.Equal(t, NAColor, list[1].Color)
}

func TestGradients(t *testing.T) {
	for _, name := range []string{"", "gradient", "bluered", "blackbody", "kindlmann"} {
		g, ok := GradientByName(name)
		require.True(t, ok, name)
		assert.NotNil(t, g.At(0), name)
		assert.NotNil(t, g.At(1), name)
		assert.Nil(t, g.At(math.NaN()), name)
	}
	_, ok := GradientByName("viridis")
	assert.False(t, ok)
}

func TestNew(t *testing.T) {
	s, err := New(aes.X, Spec{}, data.Integer)
	require.NoError(t, err)
	assert.IsType(t, &Continuous{}, s)

	s, err = New(aes.X, Spec{}, data.Text)
	require.NoError(t, err)
	assert.IsType(t, &Discrete{}, s)

	s, err = New(aes.Y, Spec{Type: "log10"}, data.Decimal)
	require.NoError(t, err)
	assert.Equal(t, "log10", s.Type())

	s, err = New(aes.Label, Spec{}, data.Integer)
	require.NoError(t, err)
	assert.Equal(t, "identity", s.Type())

	s, err = New(aes.Color, Spec{Levels: []string{"b", "1"}}, data.Text)
	require.NoError(t, err)
	assert.Equal(t, []data.Value{data.Str("b"), data.Int(1)}, s.(*Discrete).Levels())

	lo, hi := 2.0, 8.0
	s, err = New(aes.Size, Spec{Min: &lo, Max: &hi, Range: []float64{2, 4}}, data.Integer)
	require.NoError(t, err)
	assert.Equal(t, Interval{2, 8}, s.(*Continuous).Limits)
	assert.Equal(t, Interval{2, 4}, s.(*Continuous).Output)

	s, err = New(aes.Fill, Spec{Palette: "rainbow"}, data.Text)
	require.NoError(t, err)
	assert.IsType(t, RainbowPalette{}, s.(*Discrete).Palette)

	for i, tc := range []struct {
		ch   aes.Channel
		sp   Spec
		want error
	}{
		{aes.X, Spec{Type: "polar"}, ErrUnknownType},
		{aes.Shape, Spec{Type: "continuous"}, ErrParam},
		{aes.X, Spec{Type: "identity"}, ErrParam},
		{aes.Color, Spec{Values: []string{"red", "bogus"}}, ErrParam},
		{aes.X, Spec{Range: []float64{0, 2}}, ErrParam},
		{aes.Size, Spec{Expand: []float64{0, 1}}, ErrParam},
		{aes.Color, Spec{Type: "continuous", Palette: "viridis"}, ErrParam},
		{aes.Color, Spec{NA: "nocolor"}, ErrParam},
	} {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			_, err := New(tc.ch, tc.sp, data.Text)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}
