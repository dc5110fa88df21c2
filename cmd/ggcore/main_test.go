package main

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vdobler/ggcore"
	"github.com/vdobler/ggcore/aes"
	"github.com/vdobler/ggcore/data"
)

const csvData = `x,y,g
1,10,a
2,20,b
3,NA,a
`

const plotYAML = `
aes:
  x: x
  y: y
layers:
  - geom: point
    aes:
      color: g
  - geom: hline
    aes:
      y: 15
facet:
  vars: [g]
scales:
  color:
    palette: rainbow
`

func TestReadCSV(t *testing.T) {
	tbl, err := readCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, []string{"x", "y", "g"}, tbl.Columns())
	y, _ := tbl.Column("y")
	assert.Equal(t, data.Int(20), y.At(1))
	assert.True(t, y.At(2).IsNull())

	_, err = readCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestParseValue(t *testing.T) {
	for i, tc := range []struct {
		expr string
		kind aes.Kind
		name string
	}{
		{"price", aes.Column, "price"},
		{"'red'", aes.Constant, ""},
		{"2.5", aes.Constant, ""},
		{"after_stat(count)", aes.AfterStat, "count"},
		{"after_scale(colour)", aes.AfterScale, "color"},
		{"factor(cyl)", aes.Factor, "cyl"},
		{"cut_width(x, 5)", aes.Binned, ""},
	} {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			v, err := parseValue(tc.expr)
			require.NoError(t, err)
			assert.Equal(t, tc.kind, v.Kind())
			if tc.name != "" {
				assert.Equal(t, tc.name, v.Name())
			}
		})
	}

	for _, bad := range []string{"", "after_scale(nope)", "cut_width(x)", "cut_width(x, wide)"} {
		_, err := parseValue(bad)
		assert.Error(t, err, bad)
	}
	_, err := parseAes(map[string]string{"colour": "g", "bogus": "x"})
	assert.Error(t, err)
}

func TestParsePlot(t *testing.T) {
	tbl, err := readCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	p, err := parsePlot([]byte(plotYAML), tbl, nil)
	require.NoError(t, err)
	require.Len(t, p.Layers, 2)
	assert.Equal(t, aes.Col("x"), p.Aes.X)
	assert.Equal(t, aes.Column, p.Layers[0].Aes.Color.Kind())
	assert.Equal(t, aes.Constant, p.Layers[1].Aes.Y.Kind())
	assert.Equal(t, "rainbow", p.Scales[aes.Color].Palette)
	assert.Equal(t, []string{"g"}, p.Facet.Vars)

	_, err = parsePlot([]byte("layers: [{geom: point, colour: red}]"), tbl, nil)
	assert.Error(t, err, "unknown field")
}

func TestWrite(t *testing.T) {
	tbl, err := readCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	p, err := parsePlot([]byte(plotYAML), tbl, nil)
	require.NoError(t, err)
	b, err := ggcore.Build(p, ggcore.Options{Logger: ggcore.Discard})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeTables(&buf, b))
	out := buf.String()
	assert.Contains(t, out, "Panel 1 (row 1, col 1): a")
	assert.Contains(t, out, "Panel 2 (row 1, col 2): b")

	buf.Reset()
	require.NoError(t, writeJSON(&buf, b))
	var got jsonBuilt
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got.Panels, 2)
	require.Len(t, got.Panels[0].Layers, 2)
	assert.Len(t, got.Panels[0].Layers[0], 2)
	assert.Len(t, got.Panels[1].Layers[0], 1)
	assert.Nil(t, got.Panels[0].Layers[0][1].Y, "NA y")
	assert.Empty(t, got.Errors)
}
