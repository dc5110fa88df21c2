package geom

import (
	"math"
	"sort"

	"github.com/vdobler/ggcore/data"
	"github.com/vdobler/ggcore/record"
)

// ----------------------------------------------------------------------------
// Setups

// Resolution returns the smallest distance between two distinct values
// of vs, 1 if there are fewer than two distinct numeric values.
func Resolution(vs []data.Value) float64 {
	var fs []float64
	for _, v := range vs {
		if f, ok := v.Float(); ok {
			fs = append(fs, f)
		}
	}
	sort.Float64s(fs)
	res := math.Inf(1)
	for i := 1; i < len(fs); i++ {
		if d := fs[i] - fs[i-1]; d > 0 && d < res {
			res = d
		}
	}
	if math.IsInf(res, 1) {
		return 1
	}
	return res
}

func xs(rs []record.Record) []data.Value {
	vs := make([]data.Value, len(rs))
	for i, r := range rs {
		vs[i] = r.X
	}
	return vs
}

func ys(rs []record.Record) []data.Value {
	vs := make([]data.Value, len(rs))
	for i, r := range rs {
		vs[i] = r.Y
	}
	return vs
}

func size(given *float64, resolution float64) float64 {
	if given != nil {
		return *given
	}
	return DefaultWidth * resolution
}

// sortX orders records by group and within a group by x. Null x sorts
// last.
func sortX(rs []record.Record, _ Params) []record.Record {
	sort.SliceStable(rs, func(i, j int) bool {
		if c := data.Compare(rs[i].Group, rs[j].Group); c != 0 {
			return c < 0
		}
		xi, oki := rs[i].X.Float()
		xj, okj := rs[j].X.Float()
		if oki != okj {
			return oki
		}
		return xi < xj
	})
	return rs
}

// area spans from zero to y.
func area(rs []record.Record, p Params) []record.Record {
	rs = sortX(rs, p)
	for i := range rs {
		if y, ok := rs[i].Y.Float(); ok {
			rs[i].YMin, rs[i].YMax = 0, y
		}
	}
	return rs
}

// bars stand on y=0 and are centered on x.
func bars(rs []record.Record, p Params) []record.Record {
	w := size(p.Width, Resolution(xs(rs)))
	for i := range rs {
		r := &rs[i]
		if x, ok := r.X.Float(); ok && math.IsNaN(r.XMin) && math.IsNaN(r.XMax) {
			r.XMin, r.XMax = x-w/2, x+w/2
		}
		if y, ok := r.Y.Float(); ok {
			r.YMin, r.YMax = math.Min(0, y), math.Max(0, y)
		}
	}
	return rs
}

// tiles are centered on (x,y) and fill the resolution of x and y.
func tiles(rs []record.Record, p Params) []record.Record {
	w, h := Resolution(xs(rs)), Resolution(ys(rs))
	if p.Width != nil {
		w = *p.Width
	}
	if p.Height != nil {
		h = *p.Height
	}
	for i := range rs {
		r := &rs[i]
		if x, ok := r.X.Float(); ok {
			r.XMin, r.XMax = x-w/2, x+w/2
		}
		if y, ok := r.Y.Float(); ok {
			r.YMin, r.YMax = y-h/2, y+h/2
		}
	}
	return rs
}

// boxes are centered on x; their vertical extent comes from the stat or
// the ymin and ymax channels.
func boxes(rs []record.Record, p Params) []record.Record {
	w := size(p.Width, Resolution(xs(rs)))
	for i := range rs {
		r := &rs[i]
		if x, ok := r.X.Float(); ok && math.IsNaN(r.XMin) && math.IsNaN(r.XMax) {
			r.XMin, r.XMax = x-w/2, x+w/2
		}
	}
	return rs
}
