package scale

import (
	"math"

	"github.com/vdobler/ggcore/aes"
	"github.com/vdobler/ggcore/data"
)

// Discrete is a scale for categorical data. Its domain is a list of
// levels, in first-seen order unless set explicitly. Non-position
// scales bind level i to the i'th value generated by the Palette;
// position scales place level i at position i+1.
type Discrete struct {
	channel aes.Channel

	levels   []data.Value
	index    map[data.Key]int
	explicit bool

	Palette Palette

	// Reverse binds the palette values in reverse order.
	Reverse bool

	// Expand widens the range of position scales.
	Expand Expansion

	NA Visual

	cache map[data.Key]Visual
	extra Interval
}

// NewDiscrete returns an untrained discrete scale for ch with the
// default palette for that channel.
func NewDiscrete(ch aes.Channel) *Discrete {
	s := &Discrete{
		channel: ch,
		index:   make(map[data.Key]int),
		Palette: defaultPalette(ch),
		NA:      defaultNA(ch),
		extra:   UnsetInterval(),
	}
	if ch.Positional() {
		s.Expand = DiscreteExpansion
	}
	return s
}

// SetLevels fixes the levels and their order. Values not in levels map to
// NA and training does not add new levels.
func (s *Discrete) SetLevels(levels []data.Value) {
	s.levels = nil
	s.index = make(map[data.Key]int)
	for _, v := range levels {
		s.add(v)
	}
	s.explicit = true
	s.regenerate()
}

func (s *Discrete) add(v data.Value) {
	if v.IsNull() {
		return
	}
	k := v.Key()
	if _, ok := s.index[k]; ok {
		return
	}
	s.index[k] = len(s.levels)
	s.levels = append(s.levels, v)
}

func (s *Discrete) Channel() aes.Channel { return s.channel }

func (s *Discrete) Type() string { return "discrete" }

func (s *Discrete) Fresh() Scale {
	f := *s
	f.extra = UnsetInterval()
	if !s.explicit {
		f.levels = nil
		f.index = make(map[data.Key]int)
		f.cache = nil
	}
	return &f
}

func (s *Discrete) Clone() Scale {
	c := *s
	c.levels = append([]data.Value(nil), s.levels...)
	c.index = make(map[data.Key]int, len(s.index))
	for k, i := range s.index {
		c.index[k] = i
	}
	if s.cache != nil {
		c.cache = make(map[data.Key]Visual, len(s.cache))
		for k, v := range s.cache {
			c.cache[k] = v
		}
	}
	return &c
}

// Train appends unseen values of vs to the levels. Any kind of value is
// accepted.
func (s *Discrete) Train(vs []data.Value) error {
	if s.explicit {
		return nil
	}
	n := len(s.levels)
	for _, v := range vs {
		s.add(v)
	}
	if len(s.levels) != n {
		s.regenerate()
		if debug {
			debugf("trained %s discrete scale: %d levels", s.channel, len(s.levels))
		}
	}
	return nil
}

// regenerate rebuilds the lookup from level to palette value.
func (s *Discrete) regenerate() {
	if s.channel.Positional() || s.Palette == nil {
		return
	}
	vis := s.Palette.Generate(len(s.levels))
	if s.Reverse {
		for i, j := 0, len(vis)-1; i < j; i, j = i+1, j-1 {
			vis[i], vis[j] = vis[j], vis[i]
		}
	}
	s.cache = make(map[data.Key]Visual, len(s.levels))
	for i, v := range s.levels {
		if i >= len(vis) {
			break
		}
		s.cache[v.Key()] = vis[i]
	}
}

func (s *Discrete) Trained() bool { return len(s.levels) > 0 }

// Levels returns the levels in order.
func (s *Discrete) Levels() []data.Value {
	return append([]data.Value(nil), s.levels...)
}

func (s *Discrete) Map(v data.Value) Visual {
	if v.IsNull() {
		return s.NA
	}
	k := v.Key()
	i, ok := s.index[k]
	if !ok {
		return s.NA
	}
	if s.channel.Positional() {
		return Visual{Num: s.Unit(float64(i + 1)), Text: v.String()}
	}
	vis, ok := s.cache[k]
	if !ok {
		return s.NA
	}
	return vis
}

func (s *Discrete) Breaks() []Break {
	breaks := make([]Break, len(s.levels))
	for i, v := range s.levels {
		breaks[i] = Break{Value: v, Label: v.String(), Visual: s.Map(v)}
	}
	return breaks
}

// Position returns i+1 for the i'th level, NaN for unknown values.
func (s *Discrete) Position(v data.Value) float64 {
	if v.IsNull() {
		return math.NaN()
	}
	i, ok := s.index[v.Key()]
	if !ok {
		return math.NaN()
	}
	return float64(i + 1)
}

func (s *Discrete) TrainPosition(ps ...float64) {
	s.extra.Update(ps...)
}

// Range is [1,n] joined with the positions from TrainPosition and
// expanded.
func (s *Discrete) Range() Interval {
	r := s.extra
	if n := len(s.levels); n > 0 {
		r.Update(1, float64(n))
	}
	if !r.Valid() {
		return r
	}
	return IdentityTrans.expand(r, s.Expand)
}

func (s *Discrete) Unit(p float64) float64 {
	r := s.Range()
	if !r.Valid() || math.IsNaN(p) {
		return math.NaN()
	}
	return IdentityTrans.Map(r, Interval{0, 1}, p)
}

func (s *Discrete) Inverse(u float64) float64 {
	r := s.Range()
	if !r.Valid() {
		return math.NaN()
	}
	return IdentityTrans.Unmap(r, Interval{0, 1}, u)
}
