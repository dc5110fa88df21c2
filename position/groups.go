package position

import (
	"fmt"

	"github.com/vdobler/ggcore/data"
	"github.com/vdobler/ggcore/record"
)

// xGroups buckets records by their raw x. Buckets and the records inside
// them keep first-seen order. Two x values share a bucket only if they
// are exactly equal as decimals.
type xGroups struct {
	index   map[data.Key]int
	xs      []float64
	members [][]int
}

func (g *xGroups) record(x data.Value, i int) {
	k := x.Key()
	n, ok := g.index[k]
	if !ok {
		n = len(g.xs)
		g.index[k] = n
		f, _ := x.Float()
		g.xs = append(g.xs, f)
		g.members = append(g.members, nil)
	}
	g.members[n] = append(g.members[n], i)
}

// groupByX records all records with a non-null x. A non-numeric x is an
// error.
func groupByX(rs []record.Record) (*xGroups, error) {
	g := &xGroups{index: map[data.Key]int{}}
	for i := range rs {
		x := rs[i].X
		if x.IsNull() {
			continue
		}
		if _, ok := x.Float(); !ok {
			return nil, fmt.Errorf("%w: x is %s %q in record %d", ErrNonNumeric, x.Kind(), x, i)
		}
		g.record(x, i)
	}
	return g, nil
}

// subgroupKey selects the value distinguishing records at the same x:
// the group if set, else the fill, else the color.
func subgroupKey(r *record.Record) data.Key {
	switch {
	case !r.Group.IsNull():
		return r.Group.Key()
	case !r.Fill.IsNull():
		return r.Fill.Key()
	}
	return r.Color.Key()
}

// numericY returns the y of r and whether it is set. A non-numeric y is an
// error.
func numericY(r *record.Record, i int) (float64, bool, error) {
	if r.Y.IsNull() {
		return 0, false, nil
	}
	y, ok := r.Y.Float()
	if !ok {
		return 0, false, fmt.Errorf("%w: y is %s %q in record %d", ErrNonNumeric, r.Y.Kind(), r.Y, i)
	}
	return y, true, nil
}
