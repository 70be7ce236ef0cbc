package field

import (
	"fmt"
	"math"

	"github.com/katalvlaran/topograph/core"
)

// NewCombination returns the weighted sum Σ weightᵢ·fieldᵢ(probe). A
// term whose child evaluates to zero — a cut-off Gaussian beyond its
// reach, a clamped constant — contributes nothing, so partial coverage
// composes naturally. At least one term is required, every weight must
// be finite and every child non-nil.
func NewCombination(terms []Term) (Field, error) {
	if len(terms) == 0 {
		return nil, fmt.Errorf("%w: combination needs at least one term", ErrInvalidParameter)
	}
	for i, t := range terms {
		if t.Field == nil {
			return nil, fmt.Errorf("%w: combination term %d has a nil field", ErrInvalidParameter, i)
		}
		if !finite(t.Weight) {
			return nil, fmt.Errorf("%w: combination term %d weight is not finite (%v)", ErrInvalidParameter, i, t.Weight)
		}
	}
	own := make([]Term, len(terms))
	copy(own, terms)

	return combination{terms: own}, nil
}

type combination struct{ terms []Term }

func (c combination) Value(p Probe, rng core.Rand) float64 {
	sum := 0.0
	for _, t := range c.terms {
		sum += t.Weight * t.Field.Value(p, rng)
	}

	return sum
}

// Cutoff wraps f so probes beyond distance d evaluate to zero; inside
// the reach f is untouched. d must be non-negative and not NaN (an
// infinite d is legal and makes the wrapper a no-op).
func Cutoff(f Field, d float64) (Field, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: cutoff needs a field to wrap", ErrInvalidParameter)
	}
	if math.IsNaN(d) || d < 0 {
		return nil, fmt.Errorf("%w: cutoff distance must be >= 0 (d=%v)", ErrInvalidParameter, d)
	}

	return cutoff{child: f, dist: d}, nil
}

type cutoff struct {
	child Field
	dist  float64
}

func (c cutoff) Value(p Probe, rng core.Rand) float64 {
	if p.Distance > c.dist {
		return 0
	}

	return c.child.Value(p, rng)
}

// Clamp wraps f so its value is folded into [lo, hi]. One-sided bounds
// are expressed with ∓Inf; lo must not exceed hi and neither may be
// NaN.
func Clamp(f Field, lo, hi float64) (Field, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: clamp needs a field to wrap", ErrInvalidParameter)
	}
	if math.IsNaN(lo) || math.IsNaN(hi) || lo > hi {
		return nil, fmt.Errorf("%w: clamp needs lo <= hi (lo=%v, hi=%v)", ErrInvalidParameter, lo, hi)
	}

	return clamp{child: f, lo: lo, hi: hi}, nil
}

type clamp struct {
	child  Field
	lo, hi float64
}

func (c clamp) Value(p Probe, rng core.Rand) float64 {
	return math.Min(math.Max(c.child.Value(p, rng), c.lo), c.hi)
}

// DriverInvariant reports whether f yields the same value for every
// driver element: true only when the field depends at most on the
// probe's PoolIndex, never on its geometry or the random stream.
//
// The connection generator uses this to decide whether one sampler
// table built from kernel weights can serve every driver. The answer is
// conservative: variants outside this package report false.
func DriverInvariant(f Field) bool {
	switch v := f.(type) {
	case constant, discrete:
		return true
	case clamp:
		return DriverInvariant(v.child)
	case combination:
		for _, t := range v.terms {
			if !DriverInvariant(t.Field) {
				return false
			}
		}

		return true
	default:
		// linear, exponential, gaussian and gaussian2D read the probe
		// geometry; uniform reads the stream; cutoff reads Distance.
		return false
	}
}
