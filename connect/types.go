package connect

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/katalvlaran/topograph/core"
	"github.com/katalvlaran/topograph/field"
	"github.com/katalvlaran/topograph/mask"
	"github.com/katalvlaran/topograph/ntree"
	"github.com/katalvlaran/topograph/sampler"
)

// DefaultMaxDrawAttempts bounds the rejection loop of one fixed-fan
// slot before the deterministic fallback takes over.
const DefaultMaxDrawAttempts = 1000

// Sentinel errors for pass validation.
var (
	// ErrNilLayer is returned when the source or target layer is nil.
	ErrNilLayer = errors.New("connect: source and target layers must not be nil")

	// ErrNilSink is returned when no sink is supplied.
	ErrNilSink = errors.New("connect: sink must not be nil")

	// ErrUnknownRule is returned for a Rule outside the defined set.
	ErrUnknownRule = errors.New("connect: unknown connection rule")

	// ErrBadFanCount is returned for a negative Spec.N.
	ErrBadFanCount = errors.New("connect: fan count must be >= 0")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("connect: invalid option supplied")
)

// Rule selects the connection discipline: which layer drives the
// iteration and which is pooled.
type Rule int

const (
	// TargetDriven iterates locally owned target elements; candidates
	// come from the source layer.
	TargetDriven Rule = iota
	// SourceDriven iterates every source element; candidates come from
	// the target layer and locality is enforced at emission.
	SourceDriven
	// Convergent orients like TargetDriven; the name marks specs whose
	// fan count is a fixed in-degree per target.
	Convergent
	// Divergent orients like SourceDriven with a fixed out-degree per
	// source.
	Divergent
)

// String returns the rule name as used in topology files.
func (r Rule) String() string {
	switch r {
	case TargetDriven:
		return "target-driven"
	case SourceDriven:
		return "source-driven"
	case Convergent:
		return "convergent"
	case Divergent:
		return "divergent"
	default:
		return fmt.Sprintf("rule(%d)", int(r))
	}
}

func (r Rule) valid() bool { return r >= TargetDriven && r <= Divergent }

// driversAreTargets reports the orientation: true when the iterated
// side is the target layer.
func (r Rule) driversAreTargets() bool { return r == TargetDriven || r == Convergent }

// Spec describes one connection pass between a source and a target
// layer. The zero value connects nothing useful; at minimum set Rule
// and usually a Kernel or Mask.
type Spec struct {
	// Rule picks the discipline.
	Rule Rule

	// Mask restricts candidates to a region around each driver; nil
	// means the whole pool layer.
	Mask mask.Mask

	// Kernel is the connection probability (Bernoulli path) or the
	// sampling weight (fixed fan path), evaluated at the wrapped
	// driver→pool displacement and clamped into [0, 1]. Nil means 1:
	// connect every candidate, or sample them uniformly.
	Kernel field.Field

	// Weight and Delay parametrize emitted connections, evaluated at
	// the same wrapped displacement. Nil means a constant 1.
	Weight field.Field
	Delay  field.Field

	// N is the fixed fan count per driver element; 0 means "all
	// eligible" (the Bernoulli path).
	N int

	// AllowAutapses permits connecting an element to itself when both
	// layers share ids.
	AllowAutapses bool

	// AllowMultapses permits drawing the same candidate more than once
	// per driver on the fixed fan path.
	AllowMultapses bool

	// Synapse tags every emitted connection.
	Synapse string
}

// Warning classifies recoverable per-driver anomalies, aggregated into
// Result.Warnings as counts of affected drivers.
type Warning int

const (
	// WarnFanCountClamped reports drivers that asked for more distinct
	// partners than they had eligible candidates; each was connected to
	// all of them exactly once.
	WarnFanCountClamped Warning = iota
	// WarnDrawBudget reports drivers whose rejection sampling hit
	// MaxDrawAttempts on some slot; the remaining slots were filled
	// from the eligible candidates in snapshot order.
	WarnDrawBudget
	// WarnEmptyPool reports drivers that requested a fixed fan count
	// but had no eligible candidate at all (empty mask region, every
	// weight zero, or only the driver itself with autapses disallowed).
	WarnEmptyPool
)

// String returns a short log-friendly label.
func (w Warning) String() string {
	switch w {
	case WarnFanCountClamped:
		return "fan count clamped to eligible pool"
	case WarnDrawBudget:
		return "draw budget exhausted"
	case WarnEmptyPool:
		return "no eligible candidates"
	default:
		return fmt.Sprintf("warning(%d)", int(w))
	}
}

// Result summarizes a completed pass.
type Result struct {
	// Drivers is the number of driver elements processed.
	Drivers int
	// Connections is the number of emissions accepted by the sink.
	Connections int
	// Warnings counts affected drivers per anomaly. It is never nil.
	Warnings map[Warning]int
}

// Option configures a pass via functional arguments. An invalid Option
// is surfaced by Generate as ErrOptionViolation.
type Option func(*Options)

// Options holds the pass knobs; zero values mean the defaults from
// DefaultOptions.
type Options struct {
	// Ctx cancels the pass between drivers.
	Ctx context.Context

	// Seed is the base of every per-driver stream.
	Seed int64

	// Workers is the number of goroutines drivers are dealt across.
	Workers int

	// Topology decides element ownership; LocalTopology by default.
	Topology core.Topology

	// TreeOptions tune the spatial index built for masked passes.
	TreeOptions []ntree.Option

	// MaxDrawAttempts bounds the rejection loop per fixed-fan slot.
	MaxDrawAttempts int

	// Cache, when set, reuses sampler tables across passes over the
	// same pool. Only consulted when the kernel is driver-invariant
	// and the pass is maskless.
	Cache *SamplerCache

	// Builder constructs sampler tables from kernel weights;
	// sampler.NewVose by default.
	Builder sampler.Builder

	// OnProgress, when set, is called after each driver completes with
	// the running count and the total. Calls come from worker
	// goroutines; the callback must be safe for concurrent use.
	OnProgress func(done, total int)

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns the package defaults: background context,
// seed 0, one worker per CPU, everything local, Vose tables.
func DefaultOptions() Options {
	return Options{
		Ctx:             context.Background(),
		Seed:            0,
		Workers:         runtime.GOMAXPROCS(0),
		Topology:        core.LocalTopology{},
		MaxDrawAttempts: DefaultMaxDrawAttempts,
		Builder: func(weights []float64) (sampler.Sampler, error) {
			return sampler.NewVose(weights)
		},
	}
}

// WithContext sets the cancellation context for the pass.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx == nil {
			o.err = fmt.Errorf("%w: nil context", ErrOptionViolation)
			return
		}
		o.Ctx = ctx
	}
}

// WithSeed sets the base seed. Same seed, same layers, same topology —
// same connection set.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithWorkers sets the goroutine count drivers are dealt across.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: workers must be >= 1 (%d)", ErrOptionViolation, n)
			return
		}
		o.Workers = n
	}
}

// WithTopology sets the ownership oracle used for locality filtering.
func WithTopology(t core.Topology) Option {
	return func(o *Options) {
		if t == nil {
			o.err = fmt.Errorf("%w: nil topology", ErrOptionViolation)
			return
		}
		o.Topology = t
	}
}

// WithTreeOptions forwards tuning options to the spatial index built
// for masked passes.
func WithTreeOptions(opts ...ntree.Option) Option {
	return func(o *Options) { o.TreeOptions = opts }
}

// WithMaxDrawAttempts bounds the per-slot rejection loop of the fixed
// fan path.
func WithMaxDrawAttempts(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: draw attempts must be >= 1 (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxDrawAttempts = n
	}
}

// WithSamplerCache shares sampler tables across passes over one pool.
func WithSamplerCache(c *SamplerCache) Option {
	return func(o *Options) {
		if c == nil {
			o.err = fmt.Errorf("%w: nil sampler cache", ErrOptionViolation)
			return
		}
		o.Cache = c
	}
}

// WithSamplerBuilder swaps the sampler construction, for example to
// sampler.NewWalker or sampler.NewBucket.
func WithSamplerBuilder(b sampler.Builder) Option {
	return func(o *Options) {
		if b == nil {
			o.err = fmt.Errorf("%w: nil sampler builder", ErrOptionViolation)
			return
		}
		o.Builder = b
	}
}

// WithProgress installs a per-driver completion callback.
func WithProgress(fn func(done, total int)) Option {
	return func(o *Options) {
		if fn == nil {
			o.err = fmt.Errorf("%w: nil progress callback", ErrOptionViolation)
			return
		}
		o.OnProgress = fn
	}
}
