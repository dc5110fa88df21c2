package scale

import (
	"fmt"
	"os"

	"github.com/vdobler/ggcore/aes"
	"github.com/vdobler/ggcore/data"
)

var debug = false

// SetDebug switches tracing of scale training to stderr on or off.
func SetDebug(on bool) { debug = on }

func debugf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "scale: "+format+"\n", args...)
}

// Spec configures the scale of one channel. The zero value selects the
// default scale for the kind of data.
type Spec struct {
	// Type is one of continuous, log10, sqrt, reverse, discrete,
	// binned or identity. Empty selects continuous for numeric and
	// discrete for other data.
	Type string `yaml:"type,omitempty"`

	// Min and Max fix the limits of continuous and binned scales.
	Min *float64 `yaml:"min,omitempty"`
	Max *float64 `yaml:"max,omitempty"`

	// Levels fix the levels of a discrete scale and their order.
	Levels []string `yaml:"levels,omitempty"`

	// Range is the output range [low,high] of numeric non-position
	// channels.
	Range []float64 `yaml:"range,omitempty"`

	// Palette selects the colors: hue or rainbow for discrete,
	// gradient, bluered, blackbody or kindlmann for continuous
	// scales.
	Palette string `yaml:"palette,omitempty"`

	// Values lists colors for a discrete color scale.
	Values []string `yaml:"values,omitempty"`

	// Reverse reverses the order of discrete palette values.
	Reverse bool `yaml:"reverse,omitempty"`

	// Expand is the multiplicative and additive expansion of a position
	// scale.
	Expand []float64 `yaml:"expand,omitempty"`

	// Breaks is the number of inner breaks of a binned scale.
	Breaks int `yaml:"breaks,omitempty"`

	// NA is the color used for NA values of color scales.
	NA string `yaml:"na,omitempty"`
}

func paramErr(ch aes.Channel, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s scale: %s", ErrParam, ch, fmt.Sprintf(format, args...))
}

// New returns the untrained scale for channel ch described by sp. kind is
// the kind of the data which is used if sp.Type is empty.
func New(ch aes.Channel, sp Spec, kind data.Kind) (Scale, error) {
	typ := sp.Type
	if typ == "" {
		typ = defaultType(ch, kind)
	}

	switch typ {
	case "continuous", "log10", "sqrt", "reverse", "binned":
		if ch == aes.Shape || ch == aes.Linetype || ch == aes.Label {
			return nil, paramErr(ch, "a continuous variable cannot be mapped to %s", ch)
		}
	case "identity":
		if ch.Positional() {
			return nil, paramErr(ch, "no identity scale for position")
		}
	}

	switch typ {
	case "continuous", "log10", "sqrt", "reverse":
		s := NewContinuous(ch)
		if typ != "continuous" {
			s.Trans, _ = TransformationByName(typ)
		}
		if sp.Min != nil {
			s.Limits.Min = *sp.Min
		}
		if sp.Max != nil {
			s.Limits.Max = *sp.Max
		}
		if err := sp.output(ch, &s.Output); err != nil {
			return nil, err
		}
		if err := sp.expand(ch, &s.Expand); err != nil {
			return nil, err
		}
		if s.Gradient != nil {
			g, ok := GradientByName(sp.Palette)
			if !ok {
				return nil, paramErr(ch, "unknown gradient %q", sp.Palette)
			}
			s.Gradient = g
		}
		return s, sp.na(ch, &s.NA)

	case "binned":
		s := NewBinned(ch)
		if sp.Min != nil {
			s.Limits.Min = *sp.Min
		}
		if sp.Max != nil {
			s.Limits.Max = *sp.Max
		}
		if sp.Breaks < 0 {
			return nil, paramErr(ch, "negative number of breaks %d", sp.Breaks)
		} else if sp.Breaks > 0 {
			s.NBreaks = sp.Breaks
		}
		if err := sp.output(ch, &s.Output); err != nil {
			return nil, err
		}
		if s.Gradient != nil {
			g, ok := GradientByName(sp.Palette)
			if !ok {
				return nil, paramErr(ch, "unknown gradient %q", sp.Palette)
			}
			s.Gradient = g
		}
		return s, sp.na(ch, &s.NA)

	case "discrete":
		s := NewDiscrete(ch)
		s.Reverse = sp.Reverse
		if err := sp.expand(ch, &s.Expand); err != nil {
			return nil, err
		}
		if err := sp.palette(ch, s); err != nil {
			return nil, err
		}
		if err := sp.na(ch, &s.NA); err != nil {
			return nil, err
		}
		if len(sp.Levels) > 0 {
			levels := make([]data.Value, len(sp.Levels))
			for i, l := range sp.Levels {
				levels[i] = data.Parse(l)
			}
			s.SetLevels(levels)
		}
		return s, nil

	case "identity":
		s := NewIdentity(ch)
		return s, sp.na(ch, &s.NA)
	}

	return nil, fmt.Errorf("%w %q for %s", ErrUnknownType, sp.Type, ch)
}

func defaultType(ch aes.Channel, kind data.Kind) string {
	switch {
	case ch == aes.Label:
		return "identity"
	case ch == aes.Shape || ch == aes.Linetype:
		return "discrete"
	case kind.Numeric():
		return "continuous"
	}
	return "discrete"
}

func (sp Spec) output(ch aes.Channel, out *Interval) error {
	if len(sp.Range) == 0 {
		return nil
	}
	if ch.Positional() {
		return paramErr(ch, "range of a position scale is fixed")
	}
	if len(sp.Range) != 2 {
		return paramErr(ch, "range needs 2 values, got %d", len(sp.Range))
	}
	*out = Interval{sp.Range[0], sp.Range[1]}
	return nil
}

func (sp Spec) expand(ch aes.Channel, e *Expansion) error {
	switch len(sp.Expand) {
	case 0:
		return nil
	case 2:
	default:
		return paramErr(ch, "expand needs 2 values, got %d", len(sp.Expand))
	}
	if !ch.Positional() {
		return paramErr(ch, "expand applies to position scales only")
	}
	*e = Expansion{Mult: sp.Expand[0], Add: sp.Expand[1]}
	return nil
}

func (sp Spec) na(ch aes.Channel, na *Visual) error {
	if sp.NA == "" {
		return nil
	}
	c, ok := ParseColor(sp.NA)
	if !ok {
		return paramErr(ch, "bad NA color %q", sp.NA)
	}
	*na = Visual{Num: na.Num, Color: c, NA: true}
	return nil
}

func (sp Spec) palette(ch aes.Channel, s *Discrete) error {
	if len(sp.Values) > 0 {
		if ch != aes.Color && ch != aes.Fill {
			return paramErr(ch, "values apply to color scales only")
		}
		cols := make(ListPalette, len(sp.Values))
		for i, v := range sp.Values {
			c, ok := ParseColor(v)
			if !ok {
				return paramErr(ch, "bad color %q", v)
			}
			cols[i] = c
		}
		s.Palette = cols
		return nil
	}

	switch {
	case sp.Palette == "":
	case ch != aes.Color && ch != aes.Fill:
		return paramErr(ch, "palette applies to color scales only")
	case sp.Palette == "hue":
		s.Palette = DefaultHue
	case sp.Palette == "rainbow":
		s.Palette = RainbowPalette{Start: 0, End: 300, Saturation: 1, Value: 1}
	default:
		g, ok := GradientByName(sp.Palette)
		if !ok {
			return paramErr(ch, "unknown palette %q", sp.Palette)
		}
		s.Palette = GradientPalette{Gradient: g}
	}

	if len(sp.Range) > 0 {
		var r Interval
		if err := sp.output(ch, &r); err != nil {
			return err
		}
		if ch != aes.Size && ch != aes.Alpha && ch != aes.Linewidth {
			return paramErr(ch, "range does not apply")
		}
		s.Palette = RangePalette{Start: r.Min, End: r.Max}
	}
	return nil
}

// defaultOutput is the output range of numeric channels.
func defaultOutput(ch aes.Channel) Interval {
	switch ch {
	case aes.Size:
		return Interval{1, 6}
	case aes.Alpha:
		return Interval{0.1, 1}
	case aes.Linewidth:
		return Interval{1, 6}
	}
	return Interval{0, 1}
}

func defaultPalette(ch aes.Channel) Palette {
	out := defaultOutput(ch)
	switch ch {
	case aes.Color, aes.Fill:
		return DefaultHue
	case aes.Shape:
		return ShapePalette{}
	case aes.Linetype:
		return LinetypePalette{}
	case aes.Size, aes.Alpha, aes.Linewidth:
		return RangePalette{Start: out.Min, End: out.Max}
	}
	return nil
}

func defaultNA(ch aes.Channel) Visual {
	na := NAVisual
	if ch == aes.Color || ch == aes.Fill {
		na.Color = NAColor
	}
	return na
}
