package ggcore

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/vdobler/ggcore/aes"
	"github.com/vdobler/ggcore/bin"
	"github.com/vdobler/ggcore/coord"
	"github.com/vdobler/ggcore/data"
	"github.com/vdobler/ggcore/facet"
	"github.com/vdobler/ggcore/geom"
	"github.com/vdobler/ggcore/position"
	"github.com/vdobler/ggcore/scale"
	"github.com/vdobler/ggcore/stat"
)

// Warning logs dropped layers and degenerate scales. Replace it to
// redirect or silence the warnings.
var Warning = log.New(os.Stderr, "[ggcore] ", log.LstdFlags)

// Discard is a logger which drops everything.
var Discard = log.New(io.Discard, "", 0)

// ErrNoData is returned if a layer has no data and the plot has none to
// inherit.
var ErrNoData = errors.New("ggcore: no data")

// Plot describes a faceted plot.
type Plot struct {
	// Data is the default dataset of all layers.
	Data data.Dataset

	// Aes is the global mapping, used for every channel a layer does
	// not map itself.
	Aes aes.Aes

	Layers []Layer

	// Scales configures the scale of individual channels.
	Scales map[aes.Channel]scale.Spec

	// Coord is the coordinate system: cartesian (default) or flip.
	Coord string

	Facet facet.Spec
}

// Layer is one geom drawn on top of the previous layers.
type Layer struct {
	Geom string

	// Stat and Position default to the ones of the geom.
	Stat           string
	StatParams     stat.Params
	Position       string
	PositionParams position.Params
	GeomParams     geom.Params

	Aes aes.Aes

	// Data overrides the plot's dataset.
	Data data.Dataset
}

// Options control a build.
type Options struct {
	// Seed seeds a single random generator used by all jitter
	// adjustments which have no seed of their own. Without a seed
	// jitter is not reproducible.
	Seed *int64

	// Logger receives warnings, Warning if nil.
	Logger *log.Logger
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return Warning
}

// SpecError is a problem with the plot description. Layer is -1 for
// problems not tied to a layer.
type SpecError struct {
	Layer int
	ID    string // geom, stat, position, scale, coord or facet id
	Param string // offending parameter or channel, may be empty
	Err   error
}

func (e *SpecError) Error() string {
	where := "plot"
	if e.Layer >= 0 {
		where = fmt.Sprintf("layer %d", e.Layer)
	}
	if e.ID != "" {
		where += " (" + e.ID + ")"
	}
	if e.Param != "" {
		where += " " + e.Param
	}
	return where + ": " + e.Err.Error()
}

func (e *SpecError) Unwrap() error { return e.Err }

// LayerError is a problem with the data of one layer. The layer is
// dropped from the build.
type LayerError struct {
	Layer int
	Geom  string
	Err   error
}

func (e *LayerError) Error() string {
	return fmt.Sprintf("layer %d (%s): %s", e.Layer, e.Geom, e.Err)
}

func (e *LayerError) Unwrap() error { return e.Err }

// ----------------------------------------------------------------------------
// Validation

// layer is a validated layer ready to be built.
type layer struct {
	index  int
	geom   geom.Geom
	stat   stat.Stat
	adjust position.Adjuster
	aes    aes.Aes
	data   data.Dataset
	params geom.Params
}

// validate checks everything in p which does not depend on data and
// prepares the layers.
func (p *Plot) validate() ([]layer, coord.Coord, error) {
	cs, err := coord.New(p.Coord)
	if err != nil {
		return nil, nil, &SpecError{Layer: -1, ID: p.Coord, Param: "coord", Err: err}
	}
	if err := p.Facet.Validate(); err != nil {
		return nil, nil, &SpecError{Layer: -1, ID: "facet", Err: err}
	}
	for _, ch := range aes.Channels() {
		sp, ok := p.Scales[ch]
		if !ok || sp.Type == "" {
			continue
		}
		if _, err := scale.New(ch, sp, data.Decimal); err != nil {
			return nil, nil, &SpecError{Layer: -1, ID: sp.Type, Param: ch.String(), Err: err}
		}
	}

	layers := make([]layer, len(p.Layers))
	for i, l := range p.Layers {
		g, err := geom.Lookup(l.Geom)
		if err != nil {
			return nil, nil, &SpecError{Layer: i, ID: l.Geom, Param: "geom", Err: err}
		}
		if _, err := g.Setup(nil, l.GeomParams); err != nil {
			return nil, nil, &SpecError{Layer: i, ID: l.Geom, Param: "width", Err: err}
		}

		statID := l.Stat
		if statID == "" {
			statID = g.Stat
		}
		st, err := stat.New(statID, l.StatParams)
		if err != nil {
			return nil, nil, &SpecError{Layer: i, ID: statID, Param: "stat", Err: err}
		}

		posID := l.Position
		if posID == "" {
			posID = g.Position
		}
		adj, err := position.New(posID, l.PositionParams)
		if err != nil {
			return nil, nil, &SpecError{Layer: i, ID: posID, Param: "position", Err: err}
		}

		merged := aes.Merge(l.Aes, p.Aes)
		for _, c := range merged.Mapped() {
			if v := merged.Get(c); v.Kind() == aes.Binned && !(v.Bins().Width > 0) {
				err := fmt.Errorf("%w: cut_width(%s, %g)", bin.ErrWidth, v.Name(), v.Bins().Width)
				return nil, nil, &SpecError{Layer: i, ID: l.Geom, Param: c.String(), Err: err}
			}
		}
		// Channels computed by the stat count as mapped.
		check := merged
		for c, name := range st.Defaults() {
			if check.Get(c).IsAbsent() {
				check = check.With(c, aes.Stat(name))
			}
		}
		if err := g.Check(check); err != nil {
			return nil, nil, &SpecError{Layer: i, ID: l.Geom, Param: missing(g, check), Err: err}
		}

		ds := l.Data
		if ds == nil {
			ds = p.Data
		}
		if ds == nil {
			return nil, nil, &SpecError{Layer: i, ID: l.Geom, Param: "data", Err: ErrNoData}
		}

		layers[i] = layer{
			index:  i,
			geom:   g,
			stat:   st,
			adjust: adj,
			aes:    merged,
			data:   ds,
			params: l.GeomParams,
		}
	}
	return layers, cs, nil
}

// missing returns the first required channel of g absent from a.
func missing(g geom.Geom, a aes.Aes) string {
	for _, c := range g.Required {
		if a.Get(c).IsAbsent() {
			return c.String()
		}
	}
	return ""
}
