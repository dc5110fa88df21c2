package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/vdobler/ggcore"
	"github.com/vdobler/ggcore/aes"
	"github.com/vdobler/ggcore/bin"
	"github.com/vdobler/ggcore/data"
	"github.com/vdobler/ggcore/facet"
	"github.com/vdobler/ggcore/geom"
	"github.com/vdobler/ggcore/position"
	"github.com/vdobler/ggcore/scale"
	"github.com/vdobler/ggcore/stat"
	"gopkg.in/yaml.v3"
)

// readCSV reads a table with a header line. Cells are parsed with
// data.Parse; empty cells and NA are null.
func readCSV(r io.Reader) (*data.Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no header line")
	}
	header := records[0]
	cols := make([][]data.Value, len(header))
	for _, rec := range records[1:] {
		for j := range header {
			cols[j] = append(cols[j], data.Parse(rec[j]))
		}
	}
	t := data.NewTable()
	for j, name := range header {
		if cols[j] == nil {
			cols[j] = []data.Value{}
		}
		t = t.With(name, cols[j])
	}
	return t, nil
}

func readCSVFile(name string) (*data.Table, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := readCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return t, nil
}

// plotFile is the YAML plot description.
type plotFile struct {
	Aes    map[string]string     `yaml:"aes"`
	Layers []layerFile           `yaml:"layers"`
	Scales map[string]scale.Spec `yaml:"scales"`
	Coord  string                `yaml:"coord"`
	Facet  facet.Spec            `yaml:"facet"`
}

type layerFile struct {
	Geom           string            `yaml:"geom"`
	Stat           string            `yaml:"stat"`
	StatParams     stat.Params       `yaml:"stat_params"`
	Position       string            `yaml:"position"`
	PositionParams position.Params   `yaml:"position_params"`
	GeomParams     geom.Params       `yaml:"geom_params"`
	Aes            map[string]string `yaml:"aes"`

	// Data is an optional CSV file relative to the plot description.
	Data string `yaml:"data"`
}

func readPlotFile(name string, ds data.Dataset) (*ggcore.Plot, error) {
	buf, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	p, err := parsePlot(buf, ds, func(file string) (data.Dataset, error) {
		if !filepath.IsAbs(file) {
			file = filepath.Join(filepath.Dir(name), file)
		}
		return readCSVFile(file)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return p, nil
}

// parsePlot decodes a YAML plot description. load reads the data files
// of layers.
func parsePlot(buf []byte, ds data.Dataset, load func(string) (data.Dataset, error)) (*ggcore.Plot, error) {
	var pf plotFile
	dec := yaml.NewDecoder(strings.NewReader(string(buf)))
	dec.KnownFields(true)
	if err := dec.Decode(&pf); err != nil {
		return nil, err
	}

	p := &ggcore.Plot{Data: ds, Coord: pf.Coord, Facet: pf.Facet}
	var err error
	if p.Aes, err = parseAes(pf.Aes); err != nil {
		return nil, err
	}
	if len(pf.Scales) > 0 {
		p.Scales = make(map[aes.Channel]scale.Spec, len(pf.Scales))
		for name, sp := range pf.Scales {
			c, ok := aes.ParseChannel(name)
			if !ok {
				return nil, fmt.Errorf("scale for unknown channel %q", name)
			}
			p.Scales[axis(c)] = sp
		}
	}
	for i, lf := range pf.Layers {
		l := ggcore.Layer{
			Geom:           lf.Geom,
			Stat:           lf.Stat,
			StatParams:     lf.StatParams,
			Position:       lf.Position,
			PositionParams: lf.PositionParams,
			GeomParams:     lf.GeomParams,
		}
		if l.Aes, err = parseAes(lf.Aes); err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		if lf.Data != "" {
			if l.Data, err = load(lf.Data); err != nil {
				return nil, fmt.Errorf("layer %d: %w", i, err)
			}
		}
		p.Layers = append(p.Layers, l)
	}
	return p, nil
}

// axis returns x for all x channels and y for all y channels as their
// scales are shared.
func axis(c aes.Channel) aes.Channel {
	switch {
	case c.IsX():
		return aes.X
	case c.IsY():
		return aes.Y
	}
	return c
}

var (
	callRE  = regexp.MustCompile(`^(after_stat|after_scale|factor|cut_width)\((.*)\)$`)
	quoteRE = regexp.MustCompile(`^'(.*)'$`)
)

// parseAes parses a mapping from channel names to expressions:
//
//	name                  column
//	'text' or 12.5        constant
//	after_stat(count)     stat variable
//	after_scale(color)    mapped value of another channel
//	factor(name)          column as discrete levels
//	cut_width(name, 5)    column cut into intervals of width 5
func parseAes(m map[string]string) (aes.Aes, error) {
	var a aes.Aes
	for name, expr := range m {
		c, ok := aes.ParseChannel(name)
		if !ok {
			return a, fmt.Errorf("unknown channel %q", name)
		}
		v, err := parseValue(strings.TrimSpace(expr))
		if err != nil {
			return a, fmt.Errorf("channel %s: %w", name, err)
		}
		a = a.With(c, v)
	}
	return a, nil
}

func parseValue(expr string) (aes.Value, error) {
	if m := quoteRE.FindStringSubmatch(expr); m != nil {
		return aes.Const(data.Str(m[1])), nil
	}
	if m := callRE.FindStringSubmatch(expr); m != nil {
		arg := strings.TrimSpace(m[2])
		switch m[1] {
		case "after_stat":
			return aes.Stat(arg), nil
		case "after_scale":
			c, ok := aes.ParseChannel(arg)
			if !ok {
				return aes.Value{}, fmt.Errorf("unknown channel %q", arg)
			}
			return aes.Scaled(c), nil
		case "factor":
			return aes.AsFactor(arg), nil
		case "cut_width":
			parts := strings.Split(arg, ",")
			if len(parts) != 2 {
				return aes.Value{}, fmt.Errorf("cut_width needs a column and a width: %q", expr)
			}
			w, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
			if err != nil {
				return aes.Value{}, fmt.Errorf("bad width in %q: %w", expr, err)
			}
			return aes.Bin(strings.TrimSpace(parts[0]), w, bin.Options{}), nil
		}
	}
	if expr == "" {
		return aes.Value{}, fmt.Errorf("empty mapping")
	}
	if v := data.Parse(expr); v.Kind().Numeric() || v.Kind() == data.Boolean {
		return aes.Const(v), nil
	}
	return aes.Col(expr), nil
}
