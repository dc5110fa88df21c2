package stat

import (
	"github.com/vdobler/ggcore/aes"
	"github.com/vdobler/ggcore/data"
	"github.com/vdobler/ggcore/record"
)

// Count counts the rows (or sums their weights) at each distinct x of a
// group. It computes "count" and "prop", the share of the count in the
// group total.
type Count struct{}

func (Count) Name() string { return "count" }

func (Count) Defaults() map[aes.Channel]string {
	return map[aes.Channel]string{aes.Y: "count"}
}

func (Count) Compute(f *aes.Frame) ([]record.Record, error) {
	if err := needs("count", f, aes.X); err != nil {
		return nil, err
	}
	weighted := f.Has(aes.Weight)
	gs, ids := groups(f)
	var recs []record.Record
	for _, g := range gs {
		xs, members := byX(f, g)
		counts := make([]float64, len(xs))
		total := 0.0
		for j, m := range members {
			for _, i := range m {
				w, err := weight(f, i)
				if err != nil {
					return nil, err
				}
				counts[j] += w
			}
			total += counts[j]
		}
		for j, x := range xs {
			r := summary(f, members[j], ids[g[0]])
			r.X = x
			count := data.Float(counts[j])
			if !weighted {
				count = data.Int(int64(counts[j]))
			}
			r.SetStat("count", count)
			prop := data.NullValue()
			if total != 0 {
				prop = data.Float(counts[j] / total)
			}
			r.SetStat("prop", prop)
			recs = append(recs, r)
		}
	}
	return recs, nil
}
