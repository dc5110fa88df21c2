package stat

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/aclements/go-moremath/stats"
	"github.com/vdobler/ggcore/aes"
	"github.com/vdobler/ggcore/data"
	"github.com/vdobler/ggcore/record"
)

// ys collects the non-null y values of the rows idx.
func ys(f *aes.Frame, idx []int) ([]float64, error) {
	var out []float64
	for _, i := range idx {
		y, ok, err := number(f, aes.Y, i)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, y)
		}
	}
	return out, nil
}

// Summary summarises the y values at each x of a group by their mean and
// the mean plus and minus one standard deviation. It computes "n",
// "mean" and "sd".
type Summary struct{}

func (Summary) Name() string                     { return "summary" }
func (Summary) Defaults() map[aes.Channel]string { return nil }

func (Summary) Compute(f *aes.Frame) ([]record.Record, error) {
	if err := needs("summary", f, aes.X, aes.Y); err != nil {
		return nil, err
	}
	gs, ids := groups(f)
	var recs []record.Record
	for _, g := range gs {
		xs, members := byX(f, g)
		for j, x := range xs {
			vals, err := ys(f, members[j])
			if err != nil {
				return nil, err
			}
			if len(vals) == 0 {
				continue
			}
			mean := stats.Mean(vals)
			sd := 0.0
			if len(vals) > 1 {
				sd = stats.StdDev(vals)
			}
			r := summary(f, members[j], ids[g[0]])
			r.X = x
			r.Y = data.Float(mean)
			r.YMin, r.YMax = mean-sd, mean+sd
			r.SetStat("n", data.Int(int64(len(vals))))
			r.SetStat("mean", data.Float(mean))
			r.SetStat("sd", data.Float(sd))
			recs = append(recs, r)
		}
	}
	return recs, nil
}

// Boxplot computes the five number summary of the y values at each x of
// a group: the whiskers extend to the most extreme values within Coef
// times the interquartile range from the box, values beyond are
// outliers. It computes "lower", "middle", "upper", "ymin", "ymax", "n"
// and "outliers" (a space separated list).
//
// If x is not mapped all rows of a group form one box at x=0.
type Boxplot struct {
	Coef float64
}

func (Boxplot) Name() string                     { return "boxplot" }
func (Boxplot) Defaults() map[aes.Channel]string { return nil }

func (b Boxplot) Compute(f *aes.Frame) ([]record.Record, error) {
	if err := needs("boxplot", f, aes.Y); err != nil {
		return nil, err
	}
	gs, ids := groups(f)
	var recs []record.Record
	for _, g := range gs {
		xs, members := []data.Value{data.Int(0)}, [][]int{g}
		if f.Has(aes.X) {
			xs, members = byX(f, g)
		}
		for j, x := range xs {
			vals, err := ys(f, members[j])
			if err != nil {
				return nil, err
			}
			if len(vals) == 0 {
				continue
			}
			r := summary(f, members[j], ids[g[0]])
			r.X = x
			b.fiveNumbers(&r, vals)
			recs = append(recs, r)
		}
	}
	return recs, nil
}

func (b Boxplot) fiveNumbers(r *record.Record, vals []float64) {
	sort.Float64s(vals)
	s := stats.Sample{Xs: vals, Sorted: true}
	lower, middle, upper := s.Quantile(0.25), s.Quantile(0.5), s.Quantile(0.75)
	iqr := upper - lower
	lo, hi := lower-b.Coef*iqr, upper+b.Coef*iqr

	ymin, ymax := math.Inf(1), math.Inf(-1)
	var outliers []string
	for _, v := range vals {
		if v < lo || v > hi {
			outliers = append(outliers, strconv.FormatFloat(v, 'g', -1, 64))
			continue
		}
		ymin, ymax = math.Min(ymin, v), math.Max(ymax, v)
	}

	r.Y = data.Float(middle)
	r.YMin, r.YMax = ymin, ymax
	r.SetStat("lower", data.Float(lower))
	r.SetStat("middle", data.Float(middle))
	r.SetStat("upper", data.Float(upper))
	r.SetStat("ymin", data.Float(ymin))
	r.SetStat("ymax", data.Float(ymax))
	r.SetStat("n", data.Int(int64(len(vals))))
	r.SetStat("outliers", data.Str(strings.Join(outliers, " ")))
}
