package scale

import (
	"math"

	"github.com/vdobler/ggcore/aes"
	"github.com/vdobler/ggcore/data"
)

// Continuous is a scale for numeric data. The domain is the running
// [min,max] of the trained values unless fixed by Limits. Values are
// mapped linearly in the space of Trans to the Output range, through
// the Gradient for color channels or by area for sizes.
type Continuous struct {
	channel aes.Channel

	// Data is the range covered by actual data.
	Data Interval

	// Limits fix the edges of the domain. A NaN edge is taken from
	// Data. Values outside fixed limits map to NA.
	Limits Interval

	Trans Transformation

	// Expand widens the range of position scales.
	Expand Expansion

	// Output is the range numeric outputs are mapped to. It is [0,1]
	// for position scales.
	Output Interval

	// Area maps to radii so that the area grows linearly; Fix0 maps
	// zero to zero.
	Area, Fix0 bool

	// Gradient produces the colors of color and fill scales.
	Gradient Gradient

	NA Visual

	// extra is the range in position space added by TrainPosition.
	extra Interval
}

// NewContinuous returns an untrained linear scale for ch with the
// defaults for that channel.
func NewContinuous(ch aes.Channel) *Continuous {
	s := &Continuous{
		channel: ch,
		Data:    UnsetInterval(),
		Limits:  UnsetInterval(),
		Trans:   IdentityTrans,
		Output:  defaultOutput(ch),
		NA:      defaultNA(ch),
		extra:   UnsetInterval(),
	}
	switch {
	case ch.Positional():
		s.Expand = ContinuousExpansion
	case ch == aes.Color || ch == aes.Fill:
		s.Gradient = DefaultGradient
	case ch == aes.Size:
		s.Area = true
	}
	return s
}

func (s *Continuous) Channel() aes.Channel { return s.channel }

func (s *Continuous) Type() string {
	if s.Trans.Name == IdentityTrans.Name {
		return "continuous"
	}
	return s.Trans.Name
}

func (s *Continuous) Fresh() Scale {
	f := *s
	f.Data = UnsetInterval()
	f.extra = UnsetInterval()
	return &f
}

func (s *Continuous) Clone() Scale {
	c := *s
	return &c
}

// Train updates the data range with all numeric values in vs which the
// transformation accepts. Text and boolean values fail the whole batch.
func (s *Continuous) Train(vs []data.Value) error {
	for _, v := range vs {
		if !v.IsNull() && !v.Kind().Numeric() {
			return kindErr(s, v)
		}
	}
	for _, v := range vs {
		if f, ok := v.Float(); ok && s.Trans.Accepts(f) {
			s.Data.Update(f)
		}
	}
	if debug && s.Data.Valid() {
		debugf("trained %s %s scale: %s", s.channel, s.Type(), s.Data)
	}
	return nil
}

func (s *Continuous) Trained() bool {
	return s.Data.Valid()
}

// Domain returns the data range with fixed limits applied.
func (s *Continuous) Domain() Interval {
	d := s.Data
	if !math.IsNaN(s.Limits.Min) {
		d.Min = s.Limits.Min
	}
	if !math.IsNaN(s.Limits.Max) {
		d.Max = s.Limits.Max
	}
	return d
}

// inLimits reports whether x is not cut away by a fixed limit.
func (s *Continuous) inLimits(x float64) bool {
	return !(x < s.Limits.Min) && !(x > s.Limits.Max)
}

func (s *Continuous) Map(v data.Value) Visual {
	f, ok := v.Float()
	if !ok || !s.Trans.Accepts(f) || !s.inLimits(f) {
		return s.NA
	}
	if s.channel.Positional() {
		u := s.Unit(f)
		if math.IsNaN(u) {
			return s.NA
		}
		return Visual{Num: u}
	}
	dom := s.Domain()
	if !dom.Valid() || !dom.Contains(f) {
		return s.NA
	}
	return s.mapFloat(dom, f)
}

func (s *Continuous) mapFloat(dom Interval, f float64) Visual {
	switch {
	case s.channel.Positional():
		return Visual{Num: s.Unit(f)}
	case s.Gradient != nil:
		return Visual{Color: s.Gradient.At(s.Trans.Map(dom, Interval{0, 1}, f))}
	case s.Area:
		return Visual{Num: AreaMap(dom, s.Output, f, s.Fix0)}
	}
	return Visual{Num: s.Trans.Map(dom, s.Output, f)}
}

// Breaks returns the major ticks of the Ticker of the transformation
// which lie inside the shown range.
func (s *Continuous) Breaks() []Break {
	dom := s.Domain()
	if s.channel.Positional() {
		dom = s.Range()
	}
	if !dom.Valid() {
		return nil
	}
	var breaks []Break
	for _, t := range s.Trans.Ticker.Ticks(dom.Min, dom.Max) {
		if t.Label == "" || !dom.Contains(t.Value) || !s.Trans.Accepts(t.Value) {
			continue
		}
		breaks = append(breaks, Break{
			Value:  data.Float(t.Value),
			Label:  t.Label,
			Visual: s.mapFloat(dom, t.Value),
		})
	}
	return breaks
}

// Position of a continuous value is the value itself.
func (s *Continuous) Position(v data.Value) float64 {
	f, ok := v.Float()
	if !ok || !s.Trans.Accepts(f) {
		return math.NaN()
	}
	return f
}

func (s *Continuous) TrainPosition(ps ...float64) {
	for _, p := range ps {
		if s.Trans.Accepts(p) {
			s.extra.Update(p)
		}
	}
}

// Range returns the domain, widened by positions trained through
// TrainPosition, expanded on every edge not fixed by Limits.
func (s *Continuous) Range() Interval {
	r := s.Domain()
	if math.IsNaN(s.Limits.Min) && s.extra.Valid() && !(r.Min <= s.extra.Min) {
		r.Min = s.extra.Min
	}
	if math.IsNaN(s.Limits.Max) && s.extra.Valid() && !(r.Max >= s.extra.Max) {
		r.Max = s.extra.Max
	}
	if !r.Valid() {
		return r
	}
	e := s.Trans.expand(r, s.Expand)
	if math.IsNaN(s.Limits.Min) {
		r.Min = e.Min
	}
	if math.IsNaN(s.Limits.Max) {
		r.Max = e.Max
	}
	return r
}

func (s *Continuous) Unit(p float64) float64 {
	r := s.Range()
	if !r.Valid() || !s.Trans.Accepts(p) {
		return math.NaN()
	}
	return s.Trans.Map(r, s.Output, p)
}

func (s *Continuous) Inverse(u float64) float64 {
	r := s.Range()
	if !r.Valid() {
		return math.NaN()
	}
	return s.Trans.Unmap(r, s.Output, u)
}
