package ggcore

import (
	"errors"
	"fmt"
	"math/rand"
	"os"

	"github.com/vdobler/ggcore/aes"
	"github.com/vdobler/ggcore/coord"
	"github.com/vdobler/ggcore/data"
	"github.com/vdobler/ggcore/facet"
	"github.com/vdobler/ggcore/position"
	"github.com/vdobler/ggcore/record"
	"github.com/vdobler/ggcore/scale"
)

var debug = false

// SetDebug switches tracing of builds and scale training to stderr on or
// off.
func SetDebug(on bool) {
	debug = on
	scale.SetDebug(on)
}

func debugf(format string, args ...interface{}) {
	if debug {
		fmt.Fprintf(os.Stderr, "ggcore: "+format+"\n", args...)
	}
}

// ErrStatVar is returned if an after_stat mapping names a variable the
// stat does not compute.
var ErrStatVar = errors.New("ggcore: unknown stat variable")

// Built is a plot ready to be drawn.
type Built struct {
	Panels []*Panel
	Facet  *facet.Facet
	Coord  coord.Coord
	Scales *Scales

	// LayerErrors are the errors of the dropped layers.
	LayerErrors []*LayerError
}

// Panel is one panel of a built plot.
type Panel struct {
	*facet.Panel

	// X and Y are the position scales of this panel.
	X, Y scale.Positional

	// Layers holds the visuals of every layer in record order, nil for
	// dropped layers.
	Layers [][]record.Visual
}

// stage are the records of one layer in one panel.
type stage struct {
	layer *layer
	panel int
	recs  []record.Record
}

// Build computes the visuals of all layers of p.
//
// The plot description is validated first; a *SpecError is returned
// before anything is computed. Layers whose data cannot be processed are
// dropped and reported in the LayerErrors of the result. p and its data
// are never modified.
func Build(p *Plot, opts Options) (*Built, error) {
	log := opts.logger()
	layers, cs, err := p.validate()
	if err != nil {
		return nil, err
	}

	var datasets []data.Dataset
	if p.Data != nil {
		datasets = append(datasets, p.Data)
	}
	for _, l := range p.Layers {
		if l.Data != nil {
			datasets = append(datasets, l.Data)
		}
	}
	fc, err := facet.New(p.Facet, datasets...)
	if err != nil {
		return nil, &SpecError{Layer: -1, ID: "facet", Err: err}
	}
	debugf("facet: %d panels in %d rows and %d cols", len(fc.Panels), fc.Rows, fc.Cols)

	var rng *rand.Rand
	if opts.Seed != nil {
		rng = rand.New(rand.NewSource(*opts.Seed))
	}

	b := &Built{Facet: fc, Coord: cs}
	ss := newScaleSet(p.Scales, fc.NumXScales, fc.NumYScales)
	var stages []stage
	for i := range layers {
		l := &layers[i]
		// Scales are trained on a copy which is kept only if the
		// whole layer succeeds.
		work := ss.clone()
		st, err := l.build(fc, work, rng)
		if err != nil {
			var se *SpecError
			if errors.As(err, &se) {
				return nil, err
			}
			le := &LayerError{Layer: l.index, Geom: l.geom.Name, Err: err}
			log.Printf("dropping %s", le)
			b.LayerErrors = append(b.LayerErrors, le)
			continue
		}
		ss = work
		stages = append(stages, st...)
	}

	ss.degenerate(log.Printf)
	ss.complete()
	b.Scales = &Scales{X: ss.x, Y: ss.y, Other: ss.other}

	b.Panels = make([]*Panel, len(fc.Panels))
	for i, fp := range fc.Panels {
		b.Panels[i] = &Panel{
			Panel:  fp,
			X:      ss.x[fp.XScale],
			Y:      ss.y[fp.YScale],
			Layers: make([][]record.Visual, len(layers)),
		}
	}
	for _, st := range stages {
		pan := b.Panels[st.panel]
		m := mapper{layer: st.layer, coord: cs, scales: coord.Scales{X: pan.X, Y: pan.Y}, other: ss.other}
		vis := make([]record.Visual, len(st.recs))
		for j, r := range st.recs {
			vis[j] = m.visual(r, st.panel)
		}
		pan.Layers[st.layer.index] = append(pan.Layers[st.layer.index], vis...)
	}
	return b, nil
}

// build runs everything up to scale training for layer l. Spec errors
// are returned as *SpecError, other errors are data errors.
func (l *layer) build(fc *facet.Facet, ss *scaleSet, rng *rand.Rand) ([]stage, error) {
	frame, err := aes.Evaluate(l.aes, l.data)
	if err != nil {
		return nil, err
	}
	rows, err := fc.Assign(l.data)
	if err != nil {
		return nil, err
	}
	debugf("layer %d (%s): %d rows", l.index, l.geom.Name, frame.Len())

	if err := l.trainLevels(frame, fc, rows, ss); err != nil {
		return nil, err
	}
	if err := l.trainFrame(frame, ss); err != nil {
		return nil, err
	}

	// All panels of a jittered layer draw from one stream.
	jitter, jittered := l.adjust.(position.Jitter)
	if jittered && (jitter.Seeded || rng == nil) {
		rng = jitter.Rand()
	}

	var stages []stage
	for pi, pr := range rows {
		if len(pr) == 0 {
			continue
		}
		fp := fc.Panels[pi]
		sub := frame.Subset(pr)
		xs, _ := ss.position(aes.X, fp.XScale, data.Null)
		ys, _ := ss.position(aes.Y, fp.YScale, data.Null)
		toPositions(sub, xs, ys)

		recs, err := l.stat.Compute(sub)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", l.stat.Name(), err)
		}
		if err := l.afterStat(recs); err != nil {
			return nil, err
		}
		if err := l.discreteAfterStat(recs, ss, fp); err != nil {
			return nil, err
		}
		recs, err = l.geom.Setup(recs, l.params)
		if err != nil {
			return nil, err
		}
		if jittered {
			recs, err = jitter.AdjustRand(recs, rng)
		} else {
			recs, err = l.adjust.Adjust(recs)
		}
		if err != nil {
			return nil, fmt.Errorf("position %s: %w", l.adjust.Name(), err)
		}
		if err := l.train(recs, ss, fp); err != nil {
			return nil, err
		}
		stages = append(stages, stage{layer: l, panel: pi, recs: recs})
	}
	return stages, nil
}

// specErr wraps errors creating a scale.
func (l *layer) specErr(c aes.Channel, err error) error {
	return &SpecError{Layer: l.index, ID: l.geom.Name, Param: c.String(), Err: err}
}

// trainLevels trains the discrete position scales on the positional
// channels of f in row order, every row on the scale of its panel.
// Continuous position scales only get created here.
func (l *layer) trainLevels(f *aes.Frame, fc *facet.Facet, rows [][]int, ss *scaleSet) error {
	panelOf := make([]*facet.Panel, f.Len())
	for pi, pr := range rows {
		for _, r := range pr {
			panelOf[r] = fc.Panels[pi]
		}
	}
	for _, c := range f.Channels() {
		if !c.Positional() {
			continue
		}
		vs, _ := f.Get(c)
		a := axis(c)
		n := fc.NumXScales
		if a == aes.Y {
			n = fc.NumYScales
		}
		batches := make([][]data.Value, n)
		for i, v := range vs {
			if panelOf[i] == nil {
				continue
			}
			j := panelOf[i].XScale
			if a == aes.Y {
				j = panelOf[i].YScale
			}
			batches[j] = append(batches[j], v)
		}
		levels, hasLevels := f.Levels(c)
		for j, batch := range batches {
			kind := firstKind(batch)
			if kind == data.Null {
				continue
			}
			sc, err := ss.position(a, j, kind)
			if err != nil {
				return l.specErr(c, err)
			}
			if _, ok := sc.(*scale.Discrete); !ok {
				if err := fits(sc, batch); err != nil {
					return err
				}
				continue
			}
			if hasLevels {
				if err := sc.Train(levels); err != nil {
					return err
				}
			}
			if err := sc.Train(batch); err != nil {
				return err
			}
		}
	}
	return nil
}

// trainFrame trains the non-position scales on the values of f in row
// order so discrete palettes are assigned in first-seen order.
func (l *layer) trainFrame(f *aes.Frame, ss *scaleSet) error {
	for _, c := range f.Channels() {
		if c.Positional() || !c.Scaled() {
			continue
		}
		vs, _ := f.Get(c)
		levels, hasLevels := f.Levels(c)
		kind := firstKind(vs)
		if hasLevels && kind == data.Null {
			kind = firstKind(levels)
		}
		sc, err := ss.scale(c, kind)
		if err != nil {
			return l.specErr(c, err)
		}
		if sc == nil {
			continue
		}
		if err := fits(sc, vs); err != nil {
			return err
		}
		if hasLevels {
			if _, ok := sc.(*scale.Discrete); ok {
				if err := sc.Train(levels); err != nil {
					return err
				}
			}
		}
		if err := sc.Train(vs); err != nil {
			return err
		}
	}
	return nil
}

// toPositions replaces values of positional channels on discrete scales
// by their position 1..n.
func toPositions(f *aes.Frame, xs, ys scale.Positional) {
	for _, c := range f.Channels() {
		if !c.Positional() {
			continue
		}
		sc := xs
		if c.IsY() {
			sc = ys
		}
		d, ok := sc.(*scale.Discrete)
		if !ok {
			continue
		}
		vs, _ := f.Get(c)
		ps := make([]data.Value, len(vs))
		for i, v := range vs {
			ps[i] = data.Float(d.Position(v))
		}
		f.Set(c, ps)
	}
}

// afterStat sets the channels mapped to stat variables, explicitly or by
// the stat's defaults.
func (l *layer) afterStat(recs []record.Record) error {
	defaults := l.stat.Defaults()
	for _, c := range aes.Channels() {
		slot := l.aes.Get(c)
		var name string
		switch {
		case slot.Kind() == aes.AfterStat:
			name = slot.Name()
		case slot.IsAbsent():
			name = defaults[c]
		}
		if name == "" {
			continue
		}
		found := len(recs) == 0
		for i := range recs {
			v, ok := recs[i].Extra[name]
			found = found || ok
			recs[i].Set(c, v)
		}
		if !found {
			return fmt.Errorf("%w %q for %s of stat %s", ErrStatVar, name, c, l.stat.Name())
		}
	}
	return nil
}

// discreteAfterStat converts discrete values the stat produced for x, y,
// xend and yend to positions.
func (l *layer) discreteAfterStat(recs []record.Record, ss *scaleSet, fp *facet.Panel) error {
	for _, c := range []aes.Channel{aes.X, aes.Y, aes.XEnd, aes.YEnd} {
		if l.aes.Get(c).Kind() != aes.AfterStat {
			continue
		}
		vs := make([]data.Value, len(recs))
		discrete := false
		for i := range recs {
			vs[i] = recs[i].Get(c)
			discrete = discrete || vs[i].Kind().Discrete()
		}
		if !discrete {
			continue
		}
		j := fp.XScale
		if c.IsY() {
			j = fp.YScale
		}
		sc, err := ss.position(axis(c), j, firstKind(vs))
		if err != nil {
			return l.specErr(c, err)
		}
		d, ok := sc.(*scale.Discrete)
		if !ok {
			return fits(sc, vs)
		}
		if err := d.Train(vs); err != nil {
			return err
		}
		for i := range recs {
			recs[i].Set(c, data.Float(d.Position(vs[i])))
		}
	}
	return nil
}

// train trains all scales on recs of panel fp.
func (l *layer) train(recs []record.Record, ss *scaleSet, fp *facet.Panel) error {
	var xs, ys []data.Value
	var xb, yb []float64
	for i := range recs {
		r := &recs[i]
		xs = append(xs, r.X, r.XEnd)
		ys = append(ys, r.Y, r.YEnd)
		xb = append(xb, finite(r.XMin, r.XMax)...)
		yb = append(yb, finite(r.YMin, r.YMax)...)
	}
	for _, ax := range []struct {
		a      aes.Channel
		j      int
		vs     []data.Value
		bounds []float64
	}{
		{aes.X, fp.XScale, xs, xb},
		{aes.Y, fp.YScale, ys, yb},
	} {
		kind := firstKind(ax.vs)
		if kind == data.Null && len(ax.bounds) > 0 {
			kind = data.Decimal
		}
		sc, err := ss.position(ax.a, ax.j, kind)
		if err != nil {
			return l.specErr(ax.a, err)
		}
		if sc == nil {
			continue
		}
		if err := trainPosition(sc, ax.vs, ax.bounds); err != nil {
			return err
		}
	}

	for _, c := range aes.Channels() {
		if c.Positional() || !c.Scaled() {
			continue
		}
		if k := l.aes.Get(c).Kind(); k == aes.Absent || k == aes.AfterScale {
			continue
		}
		vs := make([]data.Value, len(recs))
		for i := range recs {
			vs[i] = recs[i].Get(c)
		}
		sc, err := ss.scale(c, firstKind(vs))
		if err != nil {
			return l.specErr(c, err)
		}
		if sc == nil {
			continue
		}
		if err := fits(sc, vs); err != nil {
			return err
		}
		if err := sc.Train(vs); err != nil {
			return err
		}
	}
	return nil
}
