package connect

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/topograph/core"
	"github.com/katalvlaran/topograph/field"
	"github.com/katalvlaran/topograph/ntree"
	"github.com/katalvlaran/topograph/sampler"
)

// Generate runs one connection pass between source and target under
// spec and hands every generated connection to sink. It returns the
// aggregate Result, or a zero Result and the first error: validation
// failures surface before any work, sink errors and context
// cancellation abort the whole pass.
//
// Complexity: O(drivers · candidates) worst case; masked passes touch
// only the candidates the spatial index yields per driver.
func Generate(spec Spec, source, target core.Layer, sink core.Sink, opts ...Option) (Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt == nil {
			return Result{}, fmt.Errorf("%w: nil option", ErrOptionViolation)
		}
		opt(&o)
	}
	if o.err != nil {
		return Result{}, o.err
	}
	if source == nil || target == nil {
		return Result{}, ErrNilLayer
	}
	if sink == nil {
		return Result{}, ErrNilSink
	}
	if !spec.Rule.valid() {
		return Result{}, fmt.Errorf("%w: %v", ErrUnknownRule, spec.Rule)
	}
	if spec.N < 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrBadFanCount, spec.N)
	}
	dim := source.Dim()
	if dim != target.Dim() {
		return Result{}, core.ErrDimensionMismatch
	}
	if spec.Mask != nil && spec.Mask.Dim() != dim {
		return Result{}, core.ErrDimensionMismatch
	}
	if err := o.Ctx.Err(); err != nil {
		return Result{}, err
	}

	p := &pass{
		spec:     spec,
		opts:     o,
		sink:     sink,
		dim:      dim,
		toTarget: spec.Rule.driversAreTargets(),
	}
	if p.toTarget {
		p.driver, p.pool = target, source
	} else {
		p.driver, p.pool = source, target
	}
	p.kernel = orConstant(spec.Kernel, 1)
	p.weight = orConstant(spec.Weight, 1)
	p.delay = orConstant(spec.Delay, 1)
	if p.pool.Periodic() {
		p.wrapSize = p.pool.Extent().Size()
	}

	entries, err := GatherPositions(o.Ctx, p.pool, o.Topology, o.Workers)
	if err != nil {
		return Result{}, err
	}
	p.entries = entries
	if spec.Mask != nil {
		p.tree, err = ntree.Build(dim, p.pool.Extent(), p.pool.Periodic(), entries, o.TreeOptions...)
		if err != nil {
			return Result{}, err
		}
	}
	if err = p.setupShared(); err != nil {
		return Result{}, err
	}
	p.selectDrivers()

	workers := o.Workers
	if n := len(p.driverIdx); workers > n {
		workers = n
	}
	results := make([]localResult, workers)
	if workers > 0 {
		g, gctx := errgroup.WithContext(o.Ctx)
		for w := 0; w < workers; w++ {
			w := w
			g.Go(func() error { return p.run(gctx, w, workers, &results[w]) })
		}
		if err = g.Wait(); err != nil {
			return Result{}, err
		}
	}

	res := Result{Warnings: make(map[Warning]int)}
	for i := range results {
		res.Drivers += results[i].drivers
		res.Connections += results[i].connections
		for warn, count := range results[i].warns {
			res.Warnings[warn] += count
		}
	}
	return res, nil
}

// pass bundles the resolved state of one generation run. It is built
// once and read-only while the workers run; only the progress counter
// and the per-worker results mutate.
type pass struct {
	spec Spec
	opts Options
	sink core.Sink

	driver   core.Layer // the iterated side
	pool     core.Layer // the sampled side
	toTarget bool       // drivers are target elements

	kernel, weight, delay field.Field

	dim      int
	wrapSize core.Vec // pool extent sizes when periodic

	entries []ntree.Entry // pool snapshot, candidate set of maskless passes
	tree    *ntree.Tree   // only for masked passes

	driverIdx []int // ordinals of the drivers this pass iterates

	shared *sharedTable // fixed fan with per-driver-identical weights

	done atomic.Int64
}

// sharedTable is the sampler state reused across every driver when the
// kernel weights cannot differ between them.
type sharedTable struct {
	weights  []float64
	table    sampler.Sampler
	positive int
	idIndex  map[core.NodeID]int // pool id → snapshot ordinal
}

// scratch is per-worker reusable memory.
type scratch struct {
	cands   []ntree.Entry
	weights []float64
}

// driverCtx is the evaluation state of one driver element.
type driverCtx struct {
	id     core.NodeID
	pos    core.Vec
	rng    core.Rand
	cands  []ntree.Entry
	masked bool
}

// localResult accumulates one worker's share of the Result.
type localResult struct {
	drivers     int
	connections int
	warns       map[Warning]int
}

func (r *localResult) warn(w Warning) {
	if r.warns == nil {
		r.warns = make(map[Warning]int)
	}
	r.warns[w]++
}

func orConstant(f field.Field, v float64) field.Field {
	if f == nil {
		return field.Constant(v)
	}
	return f
}

// clamp01 folds a kernel value into a probability. NaN counts as zero:
// a kernel that cannot be evaluated never connects.
func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= 1:
		return 1
	default:
		return v
	}
}

// setupShared precomputes kernel weights and the sampler table when no
// driver can see different ones: fixed fan, maskless, and a kernel that
// is blind to the pair geometry. This is where the sampler cache is
// consulted.
func (p *pass) setupShared() error {
	if p.spec.N == 0 || p.spec.Mask != nil || !field.DriverInvariant(p.kernel) {
		return nil
	}

	s := &sharedTable{
		weights: make([]float64, len(p.entries)),
		idIndex: make(map[core.NodeID]int, len(p.entries)),
	}
	for i, e := range p.entries {
		w := clamp01(p.kernel.Value(field.NewProbe(core.Vec{}, e.Index), nil))
		s.weights[i] = w
		if w > 0 {
			s.positive++
		}
		s.idIndex[e.ID] = i
	}
	if s.positive > 0 {
		var (
			t   sampler.Sampler
			err error
		)
		if p.opts.Cache != nil {
			t, err = p.opts.Cache.fetch(p.pool, s.weights, p.opts.Builder)
		} else {
			t, err = p.opts.Builder(s.weights)
		}
		if err != nil {
			return err
		}
		s.table = t
	}
	p.shared = s
	return nil
}

// selectDrivers lists the driver ordinals to iterate: locally owned
// targets for target-driven rules, every source element otherwise.
func (p *pass) selectDrivers() {
	n := p.driver.Len()
	idx := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if p.toTarget && !p.opts.Topology.IsLocal(p.driver.ID(i)) {
			continue
		}
		idx = append(idx, i)
	}
	p.driverIdx = idx
}

// run is one worker: it processes every workers-th driver.
func (p *pass) run(ctx context.Context, w, workers int, out *localResult) error {
	sc := &scratch{}
	total := len(p.driverIdx)
	for k := w; k < total; k += workers {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.processDriver(p.driverIdx[k], out, sc); err != nil {
			return err
		}
		out.drivers++
		if p.opts.OnProgress != nil {
			p.opts.OnProgress(int(p.done.Add(1)), total)
		}
	}
	return nil
}

// processDriver resolves the candidate pool of one driver and runs the
// fixed-fan or Bernoulli path over it. The driver's stream is seeded
// from the pass seed and the driver's id, so results do not depend on
// which worker got here.
func (p *pass) processDriver(di int, out *localResult, sc *scratch) error {
	dc := driverCtx{
		id:     p.driver.ID(di),
		pos:    p.driver.Position(di),
		masked: p.tree != nil,
		cands:  p.entries,
	}
	dc.rng = core.NewSeededRand(core.MixSeed(p.opts.Seed, int64(dc.id)))

	if dc.masked {
		var err error
		sc.cands, err = p.tree.QueryInto(sc.cands[:0], p.spec.Mask, dc.pos)
		if err != nil {
			return err
		}
		dc.cands = sc.cands
	}

	if p.spec.N > 0 {
		return p.fixedFan(out, sc, dc)
	}
	return p.bernoulli(out, dc)
}

// displacement returns the driver→candidate displacement fields see.
// Masked candidates already carry their image shift, so the plain
// difference is the accepted displacement; the maskless path wraps to
// the nearest image.
func (p *pass) displacement(dc driverCtx, pos core.Vec) core.Vec {
	d := pos.Sub(dc.pos)
	if !dc.masked && p.pool.Periodic() {
		d = d.Wrap(p.wrapSize)
	}
	return d
}

// emit evaluates weight and delay at the accepted displacement and
// hands the connection to the sink. Evaluation happens before the
// locality check so that every rank consumes the driver stream
// identically; only the emission itself is filtered.
func (p *pass) emit(out *localResult, dc driverCtx, cand ntree.Entry, disp core.Vec) error {
	probe := field.NewProbe(disp, cand.Index)
	w := p.weight.Value(probe, dc.rng)
	d := p.delay.Value(probe, dc.rng)

	src, tgt := dc.id, cand.ID
	if p.toTarget {
		src, tgt = cand.ID, dc.id
	}
	if !p.toTarget && !p.opts.Topology.IsLocal(tgt) {
		return nil
	}
	if err := p.sink.Emit(core.Connection{
		Source:  src,
		Target:  tgt,
		Weight:  w,
		Delay:   d,
		Synapse: p.spec.Synapse,
	}); err != nil {
		return err
	}
	out.connections++
	return nil
}

// bernoulli gives every candidate one trial against the kernel.
func (p *pass) bernoulli(out *localResult, dc driverCtx) error {
	var chosen map[core.NodeID]struct{}
	if !p.spec.AllowMultapses {
		chosen = make(map[core.NodeID]struct{})
	}
	for _, c := range dc.cands {
		if !p.spec.AllowAutapses && c.ID == dc.id {
			continue
		}
		if chosen != nil {
			if _, dup := chosen[c.ID]; dup {
				continue
			}
		}
		d := p.displacement(dc, c.Pos)
		prob := clamp01(p.kernel.Value(field.NewProbe(d, c.Index), dc.rng))
		if prob <= 0 || dc.rng.Float64() >= prob {
			continue
		}
		if err := p.emit(out, dc, c, d); err != nil {
			return err
		}
		if chosen != nil {
			chosen[c.ID] = struct{}{}
		}
	}
	return nil
}

// fixedFan draws exactly Spec.N connections for one driver, subject to
// the autapse and multapse rules and the clamp policy.
func (p *pass) fixedFan(out *localResult, sc *scratch, dc driverCtx) error {
	if len(dc.cands) == 0 {
		out.warn(WarnEmptyPool)
		return nil
	}

	weights, table, positive, selfIdx, err := p.fanWeights(sc, dc)
	if err != nil {
		return err
	}

	eligible := positive
	if selfIdx >= 0 && weights[selfIdx] > 0 {
		eligible--
	}
	if eligible == 0 {
		out.warn(WarnEmptyPool)
		return nil
	}

	// Unsatisfiable without repeats: connect every eligible candidate
	// exactly once. Only asking for strictly more than that is an
	// anomaly worth reporting.
	if !p.spec.AllowMultapses && p.spec.N >= eligible {
		if p.spec.N > eligible {
			out.warn(WarnFanCountClamped)
		}
		for i, c := range dc.cands {
			if i == selfIdx || weights[i] <= 0 {
				continue
			}
			if err = p.emit(out, dc, c, p.displacement(dc, c.Pos)); err != nil {
				return err
			}
		}
		return nil
	}

	var chosen map[int]struct{}
	if !p.spec.AllowMultapses {
		chosen = make(map[int]struct{}, p.spec.N)
	}
	remaining := p.spec.N
	for remaining > 0 {
		accepted := false
		for attempt := 0; attempt < p.opts.MaxDrawAttempts; attempt++ {
			i := table.Draw(dc.rng)
			if i == selfIdx {
				continue
			}
			if chosen != nil {
				if _, dup := chosen[i]; dup {
					continue
				}
				chosen[i] = struct{}{}
			}
			if err = p.emit(out, dc, dc.cands[i], p.displacement(dc, dc.cands[i].Pos)); err != nil {
				return err
			}
			remaining--
			accepted = true
			break
		}
		if !accepted {
			out.warn(WarnDrawBudget)
			return p.fillRemaining(out, dc, weights, selfIdx, chosen, remaining)
		}
	}
	return nil
}

// fanWeights computes the kernel weight of every candidate, or reuses
// the shared table. selfIdx is the candidate ordinal of the driver
// itself when autapses are disallowed and the driver is in the pool,
// -1 otherwise.
func (p *pass) fanWeights(sc *scratch, dc driverCtx) (weights []float64, table sampler.Sampler, positive, selfIdx int, err error) {
	selfIdx = -1

	if p.shared != nil {
		if !p.spec.AllowAutapses {
			if i, ok := p.shared.idIndex[dc.id]; ok {
				selfIdx = i
			}
		}
		return p.shared.weights, p.shared.table, p.shared.positive, selfIdx, nil
	}

	sc.weights = sc.weights[:0]
	for i, c := range dc.cands {
		if !p.spec.AllowAutapses && c.ID == dc.id {
			selfIdx = i
		}
		w := clamp01(p.kernel.Value(field.NewProbe(p.displacement(dc, c.Pos), c.Index), dc.rng))
		sc.weights = append(sc.weights, w)
		if w > 0 {
			positive++
		}
	}
	weights = sc.weights

	adjusted := positive
	if selfIdx >= 0 && weights[selfIdx] > 0 {
		adjusted--
	}
	if adjusted > 0 {
		table, err = p.opts.Builder(weights)
		if err != nil {
			return nil, nil, 0, 0, err
		}
	}
	return weights, table, positive, selfIdx, nil
}

// fillRemaining connects the remaining fixed-fan slots from the
// eligible candidates in snapshot order, cycling when multapses are
// allowed. It stops early when nothing connectable is left.
func (p *pass) fillRemaining(out *localResult, dc driverCtx, weights []float64, selfIdx int, chosen map[int]struct{}, remaining int) error {
	for remaining > 0 {
		progressed := false
		for i, c := range dc.cands {
			if remaining == 0 {
				break
			}
			if i == selfIdx || weights[i] <= 0 {
				continue
			}
			if chosen != nil {
				if _, dup := chosen[i]; dup {
					continue
				}
				chosen[i] = struct{}{}
			}
			if err := p.emit(out, dc, c, p.displacement(dc, c.Pos)); err != nil {
				return err
			}
			remaining--
			progressed = true
		}
		if !progressed {
			return nil
		}
	}
	return nil
}
