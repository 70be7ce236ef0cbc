package connect_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/topograph/connect"
	"github.com/katalvlaran/topograph/core"
	"github.com/katalvlaran/topograph/field"
	"github.com/katalvlaran/topograph/layer"
	"github.com/katalvlaran/topograph/mask"
	"github.com/katalvlaran/topograph/ntree"
	"github.com/katalvlaran/topograph/sampler"
)

// crossScenario is the canonical small layout: four sources on the unit
// circle around one target at the origin.
func crossScenario(t *testing.T) (core.Layer, core.Layer) {
	t.Helper()
	src, err := layer.NewFree(core.Dim2, 0, []core.Vec{
		core.V2(1, 0), core.V2(0, 1), core.V2(-1, 0), core.V2(0, -1),
	})
	require.NoError(t, err)
	tgt, err := layer.NewFree(core.Dim2, 100, []core.Vec{core.V2(0, 0)})
	require.NoError(t, err)
	return src, tgt
}

func ball(t *testing.T, r float64) mask.Mask {
	t.Helper()
	m, err := mask.NewBall(core.Dim2, core.Vec{}, r)
	require.NoError(t, err)
	return m
}

func TestGenerate_Validation(t *testing.T) {
	src, tgt := crossScenario(t)
	sink := &core.Collector{}
	spec := connect.Spec{Rule: connect.TargetDriven}

	_, err := connect.Generate(spec, nil, tgt, sink)
	assert.ErrorIs(t, err, connect.ErrNilLayer)

	_, err = connect.Generate(spec, src, nil, sink)
	assert.ErrorIs(t, err, connect.ErrNilLayer)

	_, err = connect.Generate(spec, src, tgt, nil)
	assert.ErrorIs(t, err, connect.ErrNilSink)

	_, err = connect.Generate(connect.Spec{Rule: connect.Rule(99)}, src, tgt, sink)
	assert.ErrorIs(t, err, connect.ErrUnknownRule)

	_, err = connect.Generate(connect.Spec{Rule: connect.Convergent, N: -1}, src, tgt, sink)
	assert.ErrorIs(t, err, connect.ErrBadFanCount)

	cube, err := layer.NewGrid3(0, 2, 2, 2)
	require.NoError(t, err)
	_, err = connect.Generate(spec, src, cube, sink)
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)

	ball3, err := mask.NewBall(core.Dim3, core.Vec{}, 1)
	require.NoError(t, err)
	_, err = connect.Generate(connect.Spec{Rule: connect.TargetDriven, Mask: ball3}, src, tgt, sink)
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)

	for name, opt := range map[string]connect.Option{
		"nil option":    nil,
		"zero workers":  connect.WithWorkers(0),
		"nil context":   connect.WithContext(nil),
		"nil topology":  connect.WithTopology(nil),
		"zero attempts": connect.WithMaxDrawAttempts(0),
		"nil cache":     connect.WithSamplerCache(nil),
		"nil builder":   connect.WithSamplerBuilder(nil),
		"nil progress":  connect.WithProgress(nil),
	} {
		_, err = connect.Generate(spec, src, tgt, sink, opt)
		assert.ErrorIs(t, err, connect.ErrOptionViolation, name)
	}
}

// TestGenerate_BallScenario is the cross layout: a ball of radius 1.5
// around the target reaches all four sources, radius 0.5 reaches none.
func TestGenerate_BallScenario(t *testing.T) {
	src, tgt := crossScenario(t)

	sink := &core.Collector{}
	res, err := connect.Generate(connect.Spec{
		Rule:    connect.TargetDriven,
		Mask:    ball(t, 1.5),
		Synapse: "static",
	}, src, tgt, sink)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Drivers)
	assert.Equal(t, 4, res.Connections)
	assert.Empty(t, res.Warnings)

	conns := sink.Connections()
	require.Len(t, conns, 4)
	for i, c := range conns {
		assert.Equal(t, core.NodeID(i), c.Source)
		assert.Equal(t, core.NodeID(100), c.Target)
		assert.Equal(t, 1.0, c.Weight)
		assert.Equal(t, 1.0, c.Delay)
		assert.Equal(t, "static", c.Synapse)
	}

	sink.Reset()
	res, err = connect.Generate(connect.Spec{
		Rule: connect.TargetDriven,
		Mask: ball(t, 0.5),
	}, src, tgt, sink)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Connections)
	assert.Empty(t, res.Warnings, "an empty Bernoulli pool is ordinary sparseness")
	assert.Equal(t, 0, sink.Len())
}

// TestGenerate_ExactFill pins the clamp policy edge: a fan count equal
// to the pool size without multapses connects every pool element
// exactly once, whatever the seed, and is no anomaly.
func TestGenerate_ExactFill(t *testing.T) {
	src, tgt := crossScenario(t)
	want := []core.Connection{
		{Source: 0, Target: 100, Weight: 1, Delay: 1},
		{Source: 1, Target: 100, Weight: 1, Delay: 1},
		{Source: 2, Target: 100, Weight: 1, Delay: 1},
		{Source: 3, Target: 100, Weight: 1, Delay: 1},
	}

	for seed := int64(0); seed < 20; seed++ {
		sink := &core.Collector{}
		res, err := connect.Generate(connect.Spec{
			Rule: connect.Convergent,
			N:    4,
		}, src, tgt, sink, connect.WithSeed(seed))
		require.NoError(t, err)

		assert.Equal(t, 4, res.Connections, "seed %d", seed)
		assert.Empty(t, res.Warnings, "an exactly satisfiable count is no anomaly")
		assert.Equal(t, want, sink.Connections(), "seed %d", seed)
	}
}

func TestGenerate_FanCountClamped(t *testing.T) {
	src, tgt := crossScenario(t)
	sink := &core.Collector{}

	res, err := connect.Generate(connect.Spec{
		Rule: connect.Convergent,
		N:    9,
	}, src, tgt, sink)
	require.NoError(t, err)

	assert.Equal(t, 4, res.Connections, "clamped to the eligible pool")
	assert.Equal(t, 1, res.Warnings[connect.WarnFanCountClamped])
}

func TestGenerate_EmptyPoolWarning(t *testing.T) {
	solo, err := layer.NewFree(core.Dim2, 5, []core.Vec{core.V2(0, 0)})
	require.NoError(t, err)
	sink := &core.Collector{}

	// The only candidate is the driver itself and autapses are off.
	res, err := connect.Generate(connect.Spec{
		Rule: connect.Convergent,
		N:    2,
	}, solo, solo, sink)
	require.NoError(t, err)

	assert.Equal(t, 0, res.Connections)
	assert.Equal(t, 1, res.Warnings[connect.WarnEmptyPool])
}

func TestGenerate_Autapses(t *testing.T) {
	l, err := layer.NewGrid2(0, 2, 2)
	require.NoError(t, err)

	sink := &core.Collector{}
	res, err := connect.Generate(connect.Spec{Rule: connect.TargetDriven}, l, l, sink)
	require.NoError(t, err)
	assert.Equal(t, 12, res.Connections, "all ordered pairs minus the diagonal")
	for _, c := range sink.Connections() {
		assert.NotEqual(t, c.Source, c.Target)
	}

	sink.Reset()
	res, err = connect.Generate(connect.Spec{
		Rule:          connect.TargetDriven,
		AllowAutapses: true,
	}, l, l, sink)
	require.NoError(t, err)
	assert.Equal(t, 16, res.Connections, "the diagonal included")
}

func TestGenerate_Multapses(t *testing.T) {
	src, tgt := crossScenario(t)

	sink := &core.Collector{}
	res, err := connect.Generate(connect.Spec{
		Rule:           connect.Convergent,
		N:              12,
		AllowMultapses: true,
	}, src, tgt, sink)
	require.NoError(t, err)

	assert.Equal(t, 12, res.Connections, "with repeats any count is satisfiable")
	assert.Empty(t, res.Warnings)
	bySource := map[core.NodeID]int{}
	for _, c := range sink.Connections() {
		assert.Equal(t, core.NodeID(100), c.Target)
		bySource[c.Source]++
	}
	total := 0
	for id, n := range bySource {
		assert.Contains(t, []core.NodeID{0, 1, 2, 3}, id)
		total += n
	}
	assert.Equal(t, 12, total)

	sink.Reset()
	res, err = connect.Generate(connect.Spec{
		Rule: connect.Convergent,
		N:    2,
	}, src, tgt, sink)
	require.NoError(t, err)
	require.Equal(t, 2, res.Connections)
	conns := sink.Connections()
	assert.NotEqual(t, conns[0].Source, conns[1].Source, "no repeats without multapses")
}

// TestGenerate_BernoulliProbability checks the acceptance rate of the
// probabilistic path over 10k trials: expectation 3000, allowance ±5σ.
func TestGenerate_BernoulliProbability(t *testing.T) {
	src, err := layer.NewGrid2(0, 50, 20)
	require.NoError(t, err)
	tgt, err := layer.NewGrid2(10_000, 5, 2)
	require.NoError(t, err)

	sink := &core.Collector{}
	res, err := connect.Generate(connect.Spec{
		Rule:   connect.TargetDriven,
		Kernel: field.Constant(0.3),
	}, src, tgt, sink, connect.WithSeed(11))
	require.NoError(t, err)

	assert.Equal(t, 10, res.Drivers)
	assert.Greater(t, res.Connections, 2700)
	assert.Less(t, res.Connections, 3300)
}

// TestGenerate_PeriodicWrap pins that weights see the wrapped
// displacement: the pool element sits 0.8 away in absolute coordinates
// but 0.2 away across the glued face.
func TestGenerate_PeriodicWrap(t *testing.T) {
	ext := layer.WithExtent(core.V2(1, 1))
	ctr := layer.WithCenter(core.V2(0.5, 0.5))
	src, err := layer.NewFree(core.Dim2, 0, []core.Vec{core.V2(0.9, 0.5)}, ext, ctr, layer.WithPeriodic())
	require.NoError(t, err)
	tgt, err := layer.NewFree(core.Dim2, 10, []core.Vec{core.V2(0.1, 0.5)}, ext, ctr, layer.WithPeriodic())
	require.NoError(t, err)

	distance, err := field.NewLinear(1, 0)
	require.NoError(t, err)

	// Masked path: the query supplies the image-adjusted position.
	sink := &core.Collector{}
	res, err := connect.Generate(connect.Spec{
		Rule:   connect.TargetDriven,
		Mask:   ball(t, 0.3),
		Weight: distance,
	}, src, tgt, sink)
	require.NoError(t, err)
	require.Equal(t, 1, res.Connections, "the neighbour across the face is in reach")
	assert.InDelta(t, 0.2, sink.Connections()[0].Weight, 1e-9)

	// Maskless path: the generator wraps the displacement itself.
	sink.Reset()
	res, err = connect.Generate(connect.Spec{
		Rule:   connect.TargetDriven,
		Weight: distance,
	}, src, tgt, sink)
	require.NoError(t, err)
	require.Equal(t, 1, res.Connections)
	assert.InDelta(t, 0.2, sink.Connections()[0].Weight, 1e-9)
}

// TestGenerate_DrawBudget forces the rejection loop to exhaust: the
// heavy candidate is the driver itself, the budget is one attempt, so
// the slots fall back to the deterministic fill.
func TestGenerate_DrawBudget(t *testing.T) {
	l, err := layer.NewFree(core.Dim2, 0, []core.Vec{core.V2(0, 0), core.V2(1, 0)})
	require.NoError(t, err)
	skew, err := field.NewDiscrete([]float64{1, 1e-12})
	require.NoError(t, err)

	sink := &core.Collector{}
	res, err := connect.Generate(connect.Spec{
		Rule:           connect.TargetDriven,
		Kernel:         skew,
		N:              3,
		AllowMultapses: true,
	}, l, l, sink, connect.WithMaxDrawAttempts(1), connect.WithSeed(3))
	require.NoError(t, err)

	// Driver 0 rejects its own heavy weight and falls back to filling
	// from element 1; driver 1 draws element 0 freely.
	assert.Equal(t, 6, res.Connections)
	assert.Equal(t, 1, res.Warnings[connect.WarnDrawBudget])

	for _, c := range sink.Connections() {
		assert.NotEqual(t, c.Source, c.Target)
	}
}

func TestGenerate_Progress(t *testing.T) {
	src, err := layer.NewGrid2(0, 8, 8)
	require.NoError(t, err)
	tgt, err := layer.NewGrid2(1000, 4, 4)
	require.NoError(t, err)

	var (
		mu   sync.Mutex
		seen []int
	)
	_, err = connect.Generate(connect.Spec{
		Rule:   connect.TargetDriven,
		Kernel: field.Constant(0.1),
	}, src, tgt, &core.Collector{},
		connect.WithWorkers(4),
		connect.WithProgress(func(done, total int) {
			mu.Lock()
			defer mu.Unlock()
			assert.Equal(t, 16, total)
			seen = append(seen, done)
		}),
	)
	require.NoError(t, err)

	require.Len(t, seen, 16)
	marks := map[int]bool{}
	for _, d := range seen {
		marks[d] = true
	}
	for d := 1; d <= 16; d++ {
		assert.True(t, marks[d], "progress %d was never reported", d)
	}
}

type failSink struct {
	mu      sync.Mutex
	left    int
	failure error
}

func (s *failSink) Emit(core.Connection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.left--
	if s.left < 0 {
		return s.failure
	}
	return nil
}

func TestGenerate_SinkErrorAborts(t *testing.T) {
	src, tgt := crossScenario(t)
	boom := errors.New("downstream full")

	_, err := connect.Generate(connect.Spec{
		Rule: connect.TargetDriven,
	}, src, tgt, &failSink{left: 2, failure: boom})
	assert.ErrorIs(t, err, boom)
}

func TestGenerate_ContextCanceled(t *testing.T) {
	src, tgt := crossScenario(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := connect.Generate(connect.Spec{
		Rule: connect.TargetDriven,
	}, src, tgt, &core.Collector{}, connect.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}

// TestGenerate_TreeOptions verifies the index layout changes how
// candidates are found, not which ones exist: a mask-only pass yields
// the same connection set under any layout.
func TestGenerate_TreeOptions(t *testing.T) {
	src, err := layer.NewGrid2(0, 12, 12)
	require.NoError(t, err)
	tgt, err := layer.NewGrid2(500, 4, 4)
	require.NoError(t, err)
	spec := connect.Spec{
		Rule: connect.TargetDriven,
		Mask: ball(t, 0.2),
	}

	base := &core.Collector{}
	_, err = connect.Generate(spec, src, tgt, base)
	require.NoError(t, err)
	require.Positive(t, base.Len())

	tuned := &core.Collector{}
	_, err = connect.Generate(spec, src, tgt, tuned,
		connect.WithTreeOptions(ntree.WithLeafCapacity(1), ntree.WithMaxDepth(6)))
	require.NoError(t, err)

	assert.Equal(t, base.Connections(), tuned.Connections())
}

// TestGenerate_WalkerBuilder swaps in the historical alias construction
// and runs the full fixed-fan pipeline over it.
func TestGenerate_WalkerBuilder(t *testing.T) {
	src, tgt := crossScenario(t)

	sink := &core.Collector{}
	res, err := connect.Generate(connect.Spec{
		Rule: connect.Convergent,
		N:    4,
	}, src, tgt, sink, connect.WithSamplerBuilder(func(w []float64) (sampler.Sampler, error) {
		return sampler.NewWalker(w)
	}))
	require.NoError(t, err)
	assert.Equal(t, 4, res.Connections)
}
