package scale

import (
	"math"
	"strconv"
	"strings"

	"github.com/vdobler/ggcore/aes"
	"github.com/vdobler/ggcore/data"
	"gonum.org/v1/plot/plotutil"
)

// Identity uses the data values themselves as visual values after
// normalizing them: colors are parsed from names or hex triplets,
// numeric text is parsed as a number, sizes are floored at MinSize and
// alpha is clamped to [0,1]. Values which cannot be normalized map to NA.
type Identity struct {
	channel aes.Channel
	trained bool

	// MinSize is the smallest size and linewidth.
	MinSize float64

	NA Visual
}

// NewIdentity returns an identity scale for ch.
func NewIdentity(ch aes.Channel) *Identity {
	return &Identity{channel: ch, NA: defaultNA(ch)}
}

func (s *Identity) Channel() aes.Channel { return s.channel }
func (s *Identity) Type() string         { return "identity" }
func (s *Identity) Trained() bool        { return s.trained }
func (s *Identity) Breaks() []Break      { return nil }

func (s *Identity) Fresh() Scale {
	f := *s
	f.trained = false
	return &f
}

func (s *Identity) Clone() Scale {
	c := *s
	return &c
}

func (s *Identity) Train(vs []data.Value) error {
	for _, v := range vs {
		if !v.IsNull() {
			s.trained = true
			break
		}
	}
	return nil
}

// number returns v as a float. Text is parsed; text which does not look
// like a number yields false.
func number(v data.Value) (float64, bool) {
	if f, ok := v.Float(); ok {
		return f, true
	}
	t, ok := v.Text()
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func (s *Identity) Map(v data.Value) Visual {
	if v.IsNull() {
		return s.NA
	}
	switch s.channel {
	case aes.Color, aes.Fill:
		if c, ok := ParseColor(v.String()); ok {
			return Visual{Color: c}
		}
		return s.NA
	case aes.Label, aes.Tooltip:
		return Visual{Text: v.String()}
	case aes.Shape:
		return s.shape(v)
	case aes.Linetype:
		return s.linetype(v)
	}
	f, ok := number(v)
	if !ok {
		return s.NA
	}
	switch s.channel {
	case aes.Size, aes.Linewidth:
		f = math.Max(f, s.MinSize)
	case aes.Alpha:
		f = clamp01(f)
	}
	return Visual{Num: f}
}

func (s *Identity) shape(v data.Value) Visual {
	if f, ok := number(v); ok && f >= 0 {
		i := int(math.Mod(math.Floor(f), NumShapes))
		return Visual{Num: float64(i), Text: ShapeNames[i]}
	}
	name := strings.ToLower(v.String())
	for i, n := range ShapeNames {
		if n == name {
			return Visual{Num: float64(i), Text: n}
		}
	}
	return s.NA
}

func (s *Identity) linetype(v data.Value) Visual {
	if f, ok := number(v); ok && f >= 0 {
		i := int(math.Mod(math.Floor(f), float64(len(LinetypeNames))))
		return Visual{Num: float64(i), Dashes: plotutil.Dashes(i), Text: LinetypeNames[i]}
	}
	name := strings.ToLower(v.String())
	for i, n := range LinetypeNames {
		if n == name {
			return Visual{Num: float64(i), Dashes: plotutil.Dashes(i), Text: n}
		}
	}
	return s.NA
}
