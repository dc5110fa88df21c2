// Package record defines the per-observation records flowing through the
// pipeline: Record in data space, produced by stats and adjusted by
// position strategies, and Visual after scale mapping.
package record

import (
	"fmt"
	"image/color"
	"math"

	"github.com/vdobler/ggcore/aes"
	"github.com/vdobler/ggcore/data"
	"gonum.org/v1/plot/vg"
)

// Record is one observation of a layer after the stat. Position
// strategies modify its fields but never add or remove records.
type Record struct {
	X, Y, XEnd, YEnd data.Value

	// The bounds are NaN if unset.
	XMin, XMax, YMin, YMax float64

	Color, Fill, Group     data.Value
	Size, Shape, Alpha     data.Value
	Linetype, Linewidth    data.Value
	Label, Tooltip, Weight data.Value
	Geometry, MapID        data.Value

	// Row is the index of the source row or -1 if the record summarises
	// several rows.
	Row int

	// Extra holds stat variables like "count" or "density".
	Extra map[string]data.Value
}

// New returns a record for source row with unset bounds.
func New(row int) Record {
	nan := math.NaN()
	return Record{Row: row, XMin: nan, XMax: nan, YMin: nan, YMax: nan}
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	if r.Extra != nil {
		extra := make(map[string]data.Value, len(r.Extra))
		for k, v := range r.Extra {
			extra[k] = v
		}
		r.Extra = extra
	}
	return r
}

// CloneAll returns deep copies of rs.
func CloneAll(rs []Record) []Record {
	cp := make([]Record, len(rs))
	for i, r := range rs {
		cp[i] = r.Clone()
	}
	return cp
}

// Get returns the value of channel c. Bounds are returned as decimals,
// null if unset.
func (r *Record) Get(c aes.Channel) data.Value {
	switch c {
	case aes.X:
		return r.X
	case aes.Y:
		return r.Y
	case aes.XEnd:
		return r.XEnd
	case aes.YEnd:
		return r.YEnd
	case aes.XMin:
		return data.Float(r.XMin)
	case aes.XMax:
		return data.Float(r.XMax)
	case aes.YMin:
		return data.Float(r.YMin)
	case aes.YMax:
		return data.Float(r.YMax)
	}
	return *r.slot(c)
}

// Set sets channel c to v. Bounds take the numeric value of v, NaN if v
// is not numeric.
func (r *Record) Set(c aes.Channel, v data.Value) {
	switch c {
	case aes.X:
		r.X = v
	case aes.Y:
		r.Y = v
	case aes.XEnd:
		r.XEnd = v
	case aes.YEnd:
		r.YEnd = v
	case aes.XMin:
		r.XMin, _ = v.Float()
	case aes.XMax:
		r.XMax, _ = v.Float()
	case aes.YMin:
		r.YMin, _ = v.Float()
	case aes.YMax:
		r.YMax, _ = v.Float()
	default:
		*r.slot(c) = v
	}
}

func (r *Record) slot(c aes.Channel) *data.Value {
	switch c {
	case aes.Color:
		return &r.Color
	case aes.Fill:
		return &r.Fill
	case aes.Group:
		return &r.Group
	case aes.Size:
		return &r.Size
	case aes.Shape:
		return &r.Shape
	case aes.Alpha:
		return &r.Alpha
	case aes.Linetype:
		return &r.Linetype
	case aes.Linewidth:
		return &r.Linewidth
	case aes.Label:
		return &r.Label
	case aes.Tooltip:
		return &r.Tooltip
	case aes.Weight:
		return &r.Weight
	case aes.Geometry:
		return &r.Geometry
	case aes.MapID:
		return &r.MapID
	}
	panic(fmt.Sprintf("record: no slot for channel %s", c))
}

// Stat returns the stat variable name, null if unset.
func (r *Record) Stat(name string) data.Value {
	return r.Extra[name]
}

// SetStat records the stat variable name.
func (r *Record) SetStat(name string, v data.Value) {
	if r.Extra == nil {
		r.Extra = map[string]data.Value{}
	}
	r.Extra[name] = v
}

// ----------------------------------------------------------------------------
// Visual

// Visual is a Record after scale mapping and coordinate transformation.
// Positions are in layout space: the unit square of the panel with the
// origin in the lower left corner. Unmapped positions are NaN.
type Visual struct {
	X, Y, XEnd, YEnd       float64
	XMin, XMax, YMin, YMax float64

	Color, Fill color.Color
	Size        float64
	Shape       int
	Alpha       float64
	Linetype    []vg.Length
	Linewidth   float64
	Label       string
	Tooltip     string
	Group       data.Value

	Row   int
	Panel int
	Layer int

	// Source is the data space record this Visual was mapped from.
	Source Record
}

// Valid reports whether v has a finite position.
func (v Visual) Valid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
