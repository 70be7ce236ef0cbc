package sampler

import (
	"math"
	"sort"

	"github.com/katalvlaran/topograph/core"
)

// maxBucketRejects bounds the mantissa rejection loop. Mantissas live
// in [0.5, 1), so each round accepts with probability at least one
// half and the bound is hit with probability below 2^-64; when it is,
// the draw settles on the group's heaviest item instead of spinning.
const maxBucketRejects = 64

// Bucket is the legacy exponent-bucket sampler: every weight is split
// into mantissa·2^exponent, items are grouped by exponent, one
// cumulative distribution selects the group and mantissa acceptance
// selects within it. It keeps O(1) memory beyond the grouped indices
// but pays a data-dependent number of uniform draws per sample, which
// is why the alias tables are preferred for new code.
type Bucket struct {
	groups   [][]int   // item indices per exponent group
	mantissa []float64 // acceptance probability per item, in [0.5, 1)
	cum      []float64 // cumulative group weights, cum[len-1] == total
	n        int
}

// NewBucket groups the weights by binary exponent and accumulates the
// per-group weight sums. Same input contract as the alias tables.
//
// Complexity: O(n log n) for the exponent ordering, O(n) memory.
func NewBucket(weights []float64) (*Bucket, error) {
	if _, err := checkWeights(weights); err != nil {
		return nil, err
	}
	n := len(weights)

	byExp := make(map[int][]int)
	mantissa := make([]float64, n)
	for i, w := range weights {
		if w == 0 {
			// Zero weight belongs to no group and can never be drawn.
			continue
		}
		frac, exp := math.Frexp(w)
		mantissa[i] = frac
		byExp[exp] = append(byExp[exp], i)
	}

	exps := make([]int, 0, len(byExp))
	for e := range byExp {
		exps = append(exps, e)
	}
	sort.Ints(exps)

	b := &Bucket{
		groups:   make([][]int, len(exps)),
		mantissa: mantissa,
		cum:      make([]float64, len(exps)),
		n:        n,
	}
	total := 0.0
	for gi, e := range exps {
		items := byExp[e]
		b.groups[gi] = items
		groupWeight := 0.0
		for _, i := range items {
			groupWeight += mantissa[i] * math.Ldexp(1, e)
		}
		total += groupWeight
		b.cum[gi] = total
	}
	return b, nil
}

// Len returns the number of indices.
func (b *Bucket) Len() int { return b.n }

// Draw selects an exponent group by its cumulative weight, then draws
// uniformly within the group, accepting with the item's mantissa and
// redrawing otherwise.
//
// Complexity: O(log g) group lookup plus an expected <= 2 rejection
// rounds; worst case bounded by maxBucketRejects.
func (b *Bucket) Draw(rng core.Rand) int {
	total := b.cum[len(b.cum)-1]
	r := rng.Float64() * total
	gi := sort.SearchFloat64s(b.cum, r)
	if gi >= len(b.groups) {
		gi = len(b.groups) - 1
	}
	group := b.groups[gi]

	for attempt := 0; attempt < maxBucketRejects; attempt++ {
		i := group[rng.Intn(len(group))]
		if rng.Float64() < b.mantissa[i] {
			return i
		}
	}
	// Practically unreachable; resolve deterministically rather than
	// looping forever.
	best := group[0]
	for _, i := range group[1:] {
		if b.mantissa[i] > b.mantissa[best] {
			best = i
		}
	}
	return best
}
