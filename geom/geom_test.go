package geom

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vdobler/ggcore/aes"
	"github.com/vdobler/ggcore/data"
	"github.com/vdobler/ggcore/record"
)

func recs(xy ...float64) []record.Record {
	var rs []record.Record
	for i := 0; i+1 < len(xy); i += 2 {
		r := record.New(len(rs))
		r.X, r.Y = data.Float(xy[i]), data.Float(xy[i+1])
		r.Group = data.Int(0)
		rs = append(rs, r)
	}
	return rs
}

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		g, err := Lookup(name)
		require.NoError(t, err)
		assert.Equal(t, name, g.Name)
		assert.NotEmpty(t, g.Stat)
		assert.NotEmpty(t, g.Position)
	}
	bar, _ := Lookup("bar")
	assert.Equal(t, "count", bar.Stat)
	assert.Equal(t, "stack", bar.Position)

	_, err := Lookup("violin")
	assert.True(t, errors.Is(err, ErrUnknown))
}

func TestCheck(t *testing.T) {
	for i, tc := range []struct {
		geom string
		a    aes.Aes
		ok   bool
	}{
		{"point", aes.Aes{X: aes.Col("x"), Y: aes.Col("y")}, true},
		{"point", aes.Aes{X: aes.Col("x")}, false},
		{"bar", aes.Aes{X: aes.Col("x")}, true},
		{"text", aes.Aes{X: aes.Col("x"), Y: aes.Col("y")}, false},
		{"hline", aes.Aes{Y: aes.Const(data.Int(3))}, true},
		{"histogram", aes.Aes{Y: aes.Col("y")}, false},
	} {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			g, err := Lookup(tc.geom)
			require.NoError(t, err)
			err = g.Check(tc.a)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, ErrMissing), "got %v", err)
			}
		})
	}
}

func TestResolution(t *testing.T) {
	for i, tc := range []struct {
		xs   []float64
		want float64
	}{
		{nil, 1},
		{[]float64{3}, 1},
		{[]float64{3, 3}, 1},
		{[]float64{1, 2, 4}, 1},
		{[]float64{0.5, 0, 2}, 0.5},
	} {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			vs := make([]data.Value, len(tc.xs))
			for j, x := range tc.xs {
				vs[j] = data.Float(x)
			}
			assert.Equal(t, tc.want, Resolution(vs))
		})
	}
}

func TestBarSetup(t *testing.T) {
	g, _ := Lookup("col")
	in := recs(1, 3, 2, -2)
	out, err := g.Setup(in, Params{})
	require.NoError(t, err)
	assert.InDelta(t, 0.55, out[0].XMin, 1e-12)
	assert.InDelta(t, 1.45, out[0].XMax, 1e-12)
	assert.Equal(t, 0.0, out[0].YMin)
	assert.Equal(t, 3.0, out[0].YMax)
	assert.Equal(t, -2.0, out[1].YMin)
	assert.Equal(t, 0.0, out[1].YMax)
	assert.True(t, math.IsNaN(in[0].XMin), "input modified")

	w := 0.5
	out, err = g.Setup(in, Params{Width: &w})
	require.NoError(t, err)
	assert.Equal(t, 0.75, out[0].XMin)

	zero := 0.0
	_, err = g.Setup(in, Params{Width: &zero})
	assert.True(t, errors.Is(err, ErrParam))
}

func TestHistogramKeepsBounds(t *testing.T) {
	g, _ := Lookup("histogram")
	in := recs(2, 5)
	in[0].XMin, in[0].XMax = 1.5, 2.5
	out, err := g.Setup(in, Params{})
	require.NoError(t, err)
	assert.Equal(t, 1.5, out[0].XMin)
	assert.Equal(t, 2.5, out[0].XMax)
	assert.Equal(t, 5.0, out[0].YMax)
}

func TestLineSortsByX(t *testing.T) {
	g, _ := Lookup("line")
	in := recs(3, 1, 1, 2, 2, 3)
	in[1].Group = data.Int(1)
	in = append(in, record.New(3))
	in[3].Group = data.Int(0)
	out, err := g.Setup(in, Params{})
	require.NoError(t, err)
	got := make([]int, len(out))
	for i, r := range out {
		got[i] = r.Row
	}
	assert.Equal(t, []int{2, 0, 3, 1}, got)

	p, _ := Lookup("path")
	out, _ = p.Setup(in, Params{})
	assert.Equal(t, 0, out[0].Row)
}

func TestTileSetup(t *testing.T) {
	g, _ := Lookup("tile")
	out, err := g.Setup(recs(1, 10, 2, 20, 3, 10), Params{})
	require.NoError(t, err)
	assert.Equal(t, 0.5, out[0].XMin)
	assert.Equal(t, 1.5, out[0].XMax)
	assert.Equal(t, 5.0, out[0].YMin)
	assert.Equal(t, 15.0, out[0].YMax)
}

func TestErrorbarSetup(t *testing.T) {
	g, _ := Lookup("errorbar")
	in := recs(1, 0, 3, 0)
	in[0].YMin, in[0].YMax = 1, 2
	out, err := g.Setup(in, Params{})
	require.NoError(t, err)
	assert.InDelta(t, 0.1, out[0].XMin, 1e-12)
	assert.InDelta(t, 1.9, out[0].XMax, 1e-12)
	assert.Equal(t, 1.0, out[0].YMin)
}
