package stat

import (
	"github.com/aclements/go-moremath/fit"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
	"github.com/vdobler/ggcore/aes"
	"github.com/vdobler/ggcore/data"
	"github.com/vdobler/ggcore/record"
)

// Smooth fits a smooth curve through the (x,y) points of each group and
// evaluates it at N evenly spaced points over the x range of the group.
// Method lm fits a polynomial of the given degree by least squares,
// loess a local polynomial regression with the given span. Groups with
// fewer than two points are skipped.
type Smooth struct {
	Method string
	Degree int
	Span   float64
	N      int
}

func (Smooth) Name() string                     { return "smooth" }
func (Smooth) Defaults() map[aes.Channel]string { return nil }

func (s Smooth) Compute(f *aes.Frame) ([]record.Record, error) {
	if err := needs("smooth", f, aes.X, aes.Y); err != nil {
		return nil, err
	}
	gs, ids := groups(f)
	var recs []record.Record
	for _, g := range gs {
		var xs, ys []float64
		for _, i := range g {
			x, okx, err := number(f, aes.X, i)
			if err != nil {
				return nil, err
			}
			y, oky, err := number(f, aes.Y, i)
			if err != nil {
				return nil, err
			}
			if okx && oky {
				xs, ys = append(xs, x), append(ys, y)
			}
		}
		if len(xs) < 2 {
			continue
		}

		min, max := stats.Bounds(xs)
		at := []float64{min}
		fitted := []float64{stats.Mean(ys)}
		if max > min {
			at = vec.Linspace(min, max, s.N)
			fitted = vec.Map(s.fit(xs, ys), at)
		}

		base := summary(f, g, ids[g[0]])
		base.Row = -1
		for k, x := range at {
			r := base.Clone()
			r.X = data.Float(x)
			r.Y = data.Float(fitted[k])
			r.SetStat("fitted", r.Y)
			recs = append(recs, r)
		}
	}
	return recs, nil
}

// fit returns the fitted function. Too few distinct points for the
// requested degree lower the degree, a span covering too few points
// falls back to a linear model.
func (s Smooth) fit(xs, ys []float64) func(float64) float64 {
	degree := s.Degree
	if d := distinct(xs) - 1; degree > d {
		degree = d
	}
	if s.Method == "loess" && s.Span*float64(len(xs)) >= float64(degree+1) {
		return fit.LOESS(xs, ys, degree, s.Span)
	}
	if s.Method == "loess" {
		degree = 1
	}
	return fit.PolynomialRegression(xs, ys, nil, degree).F
}

func distinct(xs []float64) int {
	seen := make(map[float64]bool, len(xs))
	for _, x := range xs {
		seen[x] = true
	}
	return len(seen)
}
