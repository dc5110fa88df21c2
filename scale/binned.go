package scale

import (
	"math"
	"sort"

	mscale "github.com/aclements/go-moremath/scale"
	"github.com/vdobler/ggcore/aes"
	"github.com/vdobler/ggcore/data"
)

// Binned is a continuous scale which maps step-wise: the domain is cut at
// nice break points and every value maps to the output of the middle of
// its bin.
type Binned struct {
	channel aes.Channel

	Data   Interval
	Limits Interval

	// NBreaks is the maximum number of inner break points.
	NBreaks int

	Output   Interval
	Gradient Gradient
	NA       Visual
}

// NewBinned returns an untrained binned scale for ch.
func NewBinned(ch aes.Channel) *Binned {
	s := &Binned{
		channel: ch,
		Data:    UnsetInterval(),
		Limits:  UnsetInterval(),
		NBreaks: 5,
		Output:  defaultOutput(ch),
		NA:      defaultNA(ch),
	}
	if ch == aes.Color || ch == aes.Fill {
		s.Gradient = DefaultGradient
	}
	return s
}

func (s *Binned) Channel() aes.Channel { return s.channel }

func (s *Binned) Type() string { return "binned" }

func (s *Binned) Fresh() Scale {
	f := *s
	f.Data = UnsetInterval()
	return &f
}

func (s *Binned) Clone() Scale {
	c := *s
	return &c
}

func (s *Binned) Train(vs []data.Value) error {
	for _, v := range vs {
		if !v.IsNull() && !v.Kind().Numeric() {
			return kindErr(s, v)
		}
	}
	for _, v := range vs {
		if f, ok := v.Float(); ok {
			s.Data.Update(f)
		}
	}
	return nil
}

func (s *Binned) Trained() bool { return s.Data.Valid() }

// Domain returns the data range with fixed limits applied.
func (s *Binned) Domain() Interval {
	d := s.Data
	if !math.IsNaN(s.Limits.Min) {
		d.Min = s.Limits.Min
	}
	if !math.IsNaN(s.Limits.Max) {
		d.Max = s.Limits.Max
	}
	return d
}

// Edges returns the bin edges: the domain limits and the nice ticks
// strictly between them.
func (s *Binned) Edges() []float64 {
	dom := s.Domain()
	if !dom.Valid() {
		return nil
	}
	if dom.Min == dom.Max {
		return []float64{dom.Min, dom.Max}
	}
	lin := mscale.Linear{Min: dom.Min, Max: dom.Max}
	major, _ := lin.Ticks(mscale.TickOptions{Max: s.NBreaks})
	edges := []float64{dom.Min}
	for _, t := range major {
		if t > dom.Min && t < dom.Max {
			edges = append(edges, t)
		}
	}
	return append(edges, dom.Max)
}

// bin returns the index of the bin containing x and the number of bins.
func (s *Binned) bin(edges []float64, x float64) (int, int) {
	nb := len(edges) - 1
	k := sort.SearchFloat64s(edges[1:], x)
	if k < nb && edges[k+1] == x && k+1 < nb {
		k++
	}
	if k >= nb {
		k = nb - 1
	}
	return k, nb
}

func (s *Binned) Map(v data.Value) Visual {
	f, ok := v.Float()
	if !ok {
		return s.NA
	}
	edges := s.Edges()
	if edges == nil || f < edges[0] || f > edges[len(edges)-1] {
		return s.NA
	}
	k, nb := s.bin(edges, f)
	return s.step((float64(k) + 0.5) / float64(nb))
}

func (s *Binned) step(t float64) Visual {
	if s.Gradient != nil {
		return Visual{Color: s.Gradient.At(t)}
	}
	return Visual{Num: s.Output.Min + t*(s.Output.Max-s.Output.Min)}
}

// Breaks are the inner bin edges.
func (s *Binned) Breaks() []Break {
	edges := s.Edges()
	if len(edges) < 3 {
		return nil
	}
	nb := len(edges) - 1
	var breaks []Break
	for i, e := range edges[1:nb] {
		v := data.Float(e)
		breaks = append(breaks, Break{
			Value:  v,
			Label:  v.String(),
			Visual: s.step(float64(i+1) / float64(nb)),
		})
	}
	return breaks
}
