// Package aes describes how data columns map to visual channels.
//
// An Aes holds one slot per Channel. Each slot is a Value, a tagged union
// of the different things a channel may be bound to: a column, a constant,
// a statistic computed by the layer's stat, another channel after scaling,
// a derived expression, a column forced to be discrete or a binned column.
package aes

import (
	"fmt"

	"github.com/vdobler/ggcore/bin"
	"github.com/vdobler/ggcore/data"
)

// Kind classifies the content of a slot.
type Kind int

const (
	Absent Kind = iota
	Column
	Constant
	AfterStat
	AfterScale
	Expression
	Factor
	Binned
)

func (k Kind) String() string {
	return [...]string{"absent", "column", "constant", "after_stat",
		"after_scale", "expression", "factor", "binned"}[k]
}

// Func computes the value of a derived expression for one row.
type Func func(ds data.Dataset, row int) (data.Value, error)

// BinSpec describes a column cut into intervals of equal width.
type BinSpec struct {
	Column  string
	Width   float64
	Options bin.Options
}

// A Value is the content of one slot of an Aes. The zero Value is absent.
type Value struct {
	kind     Kind
	name     string
	constant data.Value
	fn       Func
	bins     BinSpec
}

// Col maps a channel to the named column.
func Col(name string) Value { return Value{kind: Column, name: name} }

// Const sets a channel to the same value for every row.
func Const(v data.Value) Value { return Value{kind: Constant, constant: v} }

// Stat maps a channel to a variable computed by the stat, e.g. "count".
func Stat(name string) Value { return Value{kind: AfterStat, name: name} }

// Scaled maps a channel to the scaled value of another channel, e.g. a
// fill taking the mapped color.
func Scaled(c Channel) Value { return Value{kind: AfterScale, name: c.String()} }

// Expr maps a channel to values computed by fn. The name is used in
// labels and error messages.
func Expr(name string, fn Func) Value { return Value{kind: Expression, name: name, fn: fn} }

// AsFactor maps a channel to the named column treating its values as
// discrete levels.
func AsFactor(name string) Value { return Value{kind: Factor, name: name} }

// Bin maps a channel to the interval labels of the named column cut into
// intervals of the given width.
func Bin(name string, width float64, opts bin.Options) Value {
	return Value{kind: Binned, name: name, bins: BinSpec{Column: name, Width: width, Options: opts}}
}

// Kind returns the kind of v.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether the slot is empty.
func (v Value) IsAbsent() bool { return v.kind == Absent }

// Name returns the referenced column, stat variable or channel name.
func (v Value) Name() string { return v.name }

// Constant returns the constant of a Constant slot.
func (v Value) Constant() data.Value { return v.constant }

// Bins returns the bin parameters of a Binned slot.
func (v Value) Bins() BinSpec { return v.bins }

// Func returns the function of an Expression slot.
func (v Value) Func() Func { return v.fn }

// ScaledChannel returns the channel referenced by an AfterScale slot.
func (v Value) ScaledChannel() (Channel, bool) {
	if v.kind != AfterScale {
		return -1, false
	}
	return ParseChannel(v.name)
}

func (v Value) String() string {
	switch v.kind {
	case Absent:
		return "<absent>"
	case Constant:
		return fmt.Sprintf("constant(%s)", v.constant)
	case Binned:
		return fmt.Sprintf("cut_width(%s, %g)", v.name, v.bins.Width)
	}
	return fmt.Sprintf("%s(%s)", v.kind, v.name)
}

// ----------------------------------------------------------------------------
// Aes

// Aes is an aesthetic mapping: for each channel an optional Value.
type Aes struct {
	X, Y, XEnd, YEnd       Value
	XMin, XMax, YMin, YMax Value

	Color, Fill     Value
	Size, Shape     Value
	Alpha, Linetype Value
	Linewidth       Value

	Group, Label, Tooltip, Weight Value
	Geometry, MapID               Value
}

func (a *Aes) slot(c Channel) *Value {
	switch c {
	case X:
		return &a.X
	case Y:
		return &a.Y
	case XEnd:
		return &a.XEnd
	case YEnd:
		return &a.YEnd
	case XMin:
		return &a.XMin
	case XMax:
		return &a.XMax
	case YMin:
		return &a.YMin
	case YMax:
		return &a.YMax
	case Color:
		return &a.Color
	case Fill:
		return &a.Fill
	case Size:
		return &a.Size
	case Shape:
		return &a.Shape
	case Alpha:
		return &a.Alpha
	case Linetype:
		return &a.Linetype
	case Linewidth:
		return &a.Linewidth
	case Group:
		return &a.Group
	case Label:
		return &a.Label
	case Tooltip:
		return &a.Tooltip
	case Weight:
		return &a.Weight
	case Geometry:
		return &a.Geometry
	case MapID:
		return &a.MapID
	}
	panic(fmt.Sprintf("aes: bad channel %d", int(c)))
}

// Get returns the slot of channel c.
func (a Aes) Get(c Channel) Value { return *a.slot(c) }

// With returns a copy of a with channel c set to v.
func (a Aes) With(c Channel, v Value) Aes {
	*a.slot(c) = v
	return a
}

// Merge combines a layer's local mapping with the plot's global mapping:
// for every channel the layer's slot wins unless it is absent, in which
// case the global slot is used. Neither argument is modified.
func Merge(layer, global Aes) Aes {
	merged := global
	for _, c := range Channels() {
		if v := layer.Get(c); !v.IsAbsent() {
			*merged.slot(c) = v
		}
	}
	return merged
}

// Classify returns the kind of the slot for channel c.
func Classify(a Aes, c Channel) Kind { return a.Get(c).kind }

// Mapped returns the channels which are not absent in a.
func (a Aes) Mapped() []Channel {
	var cs []Channel
	for _, c := range Channels() {
		if !a.Get(c).IsAbsent() {
			cs = append(cs, c)
		}
	}
	return cs
}
