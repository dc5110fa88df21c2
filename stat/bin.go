package stat

import (
	"fmt"
	"math"

	"github.com/vdobler/ggcore/aes"
	"github.com/vdobler/ggcore/bin"
	"github.com/vdobler/ggcore/data"
	"github.com/vdobler/ggcore/record"
)

// Bin counts the x values of each group in intervals of equal width, the
// stat of histograms. The intervals are the same for all groups. Width is
// used if positive, else the range of x is divided into Bins intervals.
//
// It computes "count", "density" (count divided by the group total and
// the width), "ncount" (count relative to the maximum count of the
// group) and "width". Empty intervals are reported with count 0.
type Bin struct {
	Bins       int
	Width      float64
	Boundary   *float64
	Center     *float64
	ClosedLeft bool
}

func (Bin) Name() string { return "bin" }

func (Bin) Defaults() map[aes.Channel]string {
	return map[aes.Channel]string{aes.Y: "count"}
}

func (b Bin) Compute(f *aes.Frame) ([]record.Record, error) {
	if err := needs("bin", f, aes.X); err != nil {
		return nil, err
	}
	xs, _ := f.Get(aes.X)
	min, max, ok := data.FloatRange(xs)
	if !ok {
		for _, x := range xs {
			if !x.IsNull() {
				return nil, fmt.Errorf("%w: %s value %q for x", ErrNonNumeric, x.Kind(), x)
			}
		}
		return nil, nil
	}

	width := b.Width
	if width <= 0 {
		width = bin.WidthFor(min, max, b.Bins)
	}
	opts := bin.Options{Boundary: b.Boundary, Center: b.Center, ClosedLeft: b.ClosedLeft}
	res, err := bin.Compute(xs, width, opts)
	if err != nil {
		return nil, fmt.Errorf("stat: bin: %w", err)
	}

	gs, ids := groups(f)
	var recs []record.Record
	for _, g := range gs {
		counts := make([]float64, len(res.Intervals))
		total := 0.0
		members := make([][]int, len(res.Intervals))
		for _, i := range g {
			k := res.Index[i]
			if k < 0 {
				continue
			}
			w, err := weight(f, i)
			if err != nil {
				return nil, err
			}
			counts[k] += w
			total += w
			members[k] = append(members[k], i)
		}
		if total == 0 {
			continue
		}
		maxCount := 0.0
		for _, c := range counts {
			maxCount = math.Max(maxCount, c)
		}

		for k, iv := range res.Intervals {
			r := summary(f, g, ids[g[0]])
			r.Row = -1
			if len(members[k]) == 1 {
				r.Row = f.Rows[members[k][0]]
			}
			lo, hi := iv.Bounds()
			r.X = data.Float(iv.Mid())
			r.XMin, r.XMax = lo, hi
			r.SetStat("count", data.Float(counts[k]))
			r.SetStat("density", data.Float(counts[k]/(total*width)))
			r.SetStat("ncount", data.Float(counts[k]/maxCount))
			r.SetStat("width", data.Float(width))
			r.SetStat("bin", data.Str(iv.Format(res.Digits)))
			recs = append(recs, r)
		}
	}
	return recs, nil
}
