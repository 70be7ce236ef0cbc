package field

import (
	"errors"

	"github.com/katalvlaran/topograph/core"
)

// ErrInvalidParameter reports a field constructor argument outside its
// documented domain (non-finite coefficient, non-positive spread,
// inverted bounds).
var ErrInvalidParameter = errors.New("field: parameter out of range")

// Probe is the per-candidate geometry a field is evaluated at. The
// displacement is the driver→pool vector with periodic wrapping already
// applied; Distance caches its Euclidean length so stacked fields do
// not recompute it.
type Probe struct {
	// Displacement is the wrapped driver→pool displacement.
	Displacement core.Vec
	// Distance is Displacement.Len().
	Distance float64
	// PoolIndex is the candidate's ordinal within the pool snapshot,
	// used by NewDiscrete lookups. It is not the element's NodeID.
	PoolIndex int
}

// NewProbe builds a Probe from a wrapped displacement and the
// candidate's pool ordinal, caching the distance.
func NewProbe(displacement core.Vec, poolIndex int) Probe {
	return Probe{
		Displacement: displacement,
		Distance:     displacement.Len(),
		PoolIndex:    poolIndex,
	}
}

// Field is a scalar function of pair geometry. Implementations must be
// immutable after construction; Value may be called concurrently as
// long as each goroutine supplies its own rng.
//
// The rng is consumed only by stochastic variants (NewUniform and any
// combination containing one); deterministic variants ignore it, so
// passing nil is safe for them but not in general.
type Field interface {
	Value(p Probe, rng core.Rand) float64
}

// Term is one weighted summand of a combination field.
type Term struct {
	Weight float64
	Field  Field
}
