package sampler

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/topograph/core"
)

// ErrNoPositiveWeights is returned when a sampler is built over an
// empty weight vector, a vector with negative or non-finite entries,
// or one whose sum is not strictly positive. Degenerate inputs are an
// error, never a uniform-distribution fallback.
var ErrNoPositiveWeights = errors.New("sampler: weights must be non-negative with a positive sum")

// Sampler draws indices in [0, Len()) with probability proportional to
// the weights it was built from.
type Sampler interface {
	// Draw returns one weighted index using draws from rng.
	Draw(rng core.Rand) int
	// Len returns the number of indices.
	Len() int
}

// Builder is a sampler construction function, the pluggable point the
// connection generator uses to pick between constructions.
type Builder func(weights []float64) (Sampler, error)

// checkWeights validates the shared input contract and returns the
// weight sum.
func checkWeights(weights []float64) (float64, error) {
	if len(weights) == 0 {
		return 0, fmt.Errorf("%w: empty input", ErrNoPositiveWeights)
	}
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return 0, fmt.Errorf("%w: weight[%d] = %v", ErrNoPositiveWeights, i, w)
		}
	}
	sum := floats.Sum(weights)
	if !(sum > 0) {
		return 0, fmt.Errorf("%w: sum = %v", ErrNoPositiveWeights, sum)
	}
	return sum, nil
}

// Table is an alias table: n (probability, alias) bins representing
// the normalized input weights exactly in expectation.
type Table struct {
	prob  []float64
	alias []int
}

// Len returns the number of indices.
func (t *Table) Len() int { return len(t.prob) }

// Draw folds one uniform value into a bin and a residual: bin
// i = floor(r·n), residual f = r·n - i, result i when f < prob[i] and
// alias[i] otherwise.
//
// Complexity: O(1), exactly one uniform draw.
func (t *Table) Draw(rng core.Rand) int {
	n := len(t.prob)
	scaled := rng.Float64() * float64(n)
	i := int(scaled)
	if i >= n {
		// Float64 < 1 makes this unreachable for sane n, but keep the
		// clamp so a rounding surprise cannot index out of bounds.
		i = n - 1
	}
	if scaled-float64(i) < t.prob[i] {
		return i
	}
	return t.alias[i]
}

// PMF reconstructs the exact distribution the table encodes: bin i
// contributes prob[i]/n to index i and (1-prob[i])/n to its alias.
// Used by tests to compare constructions without sampling noise.
func (t *Table) PMF() []float64 {
	n := len(t.prob)
	pmf := make([]float64, n)
	inv := 1 / float64(n)
	for i, p := range t.prob {
		pmf[i] += p * inv
		if p < 1 {
			pmf[t.alias[i]] += (1 - p) * inv
		}
	}
	return pmf
}

// NewVose builds an alias table with Vose's method: weights are scaled
// to mean 1, indices split into light (< 1) and heavy (>= 1) worklists,
// and one light index is paired with one heavy per step, the heavy
// residual shrinking and reclassifying as it goes. Leftover residuals
// are clamped to exactly 1 so rounding error can never make an index
// unreachable.
//
// Complexity: O(n) build, O(1) draw.
func NewVose(weights []float64) (*Table, error) {
	sum, err := checkWeights(weights)
	if err != nil {
		return nil, err
	}
	n := len(weights)
	t := &Table{
		prob:  make([]float64, n),
		alias: make([]int, n),
	}

	// Scale to mean 1 so "light vs heavy" is a comparison against 1.
	p := make([]float64, n)
	scale := float64(n) / sum
	for i, w := range weights {
		p[i] = w * scale
	}

	small := make([]int, 0, n)
	large := make([]int, 0, n)
	for i, pi := range p {
		if pi < 1 {
			small = append(small, i)
		} else {
			large = append(large, i)
		}
	}

	for len(small) > 0 && len(large) > 0 {
		l := small[len(small)-1]
		small = small[:len(small)-1]
		g := large[len(large)-1]
		large = large[:len(large)-1]

		t.prob[l] = p[l]
		t.alias[l] = g
		p[g] = (p[g] + p[l]) - 1
		if p[g] < 1 {
			small = append(small, g)
		} else {
			large = append(large, g)
		}
	}
	// Whatever remains is 1 up to rounding; clamp it exactly.
	for _, g := range large {
		t.prob[g] = 1
	}
	for _, l := range small {
		t.prob[l] = 1
	}
	return t, nil
}

// NewWalker builds an alias table with Walker's original scheme: keep
// the scaled weights sorted ascending, repeatedly alias the smallest
// onto the largest, charge the largest for the shortfall, and re-place
// it with a localized insertion (it only ever shrinks, so it shifts
// left). The resulting table differs bin-for-bin from Vose's but
// encodes the same distribution.
//
// Complexity: O(n log n) for the initial sort, near-linear pairing.
func NewWalker(weights []float64) (*Table, error) {
	sum, err := checkWeights(weights)
	if err != nil {
		return nil, err
	}
	n := len(weights)
	t := &Table{
		prob:  make([]float64, n),
		alias: make([]int, n),
	}

	items := make([]walkerItem, n)
	scale := float64(n) / sum
	for i, w := range weights {
		items[i] = walkerItem{p: w * scale, id: i}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].p != items[j].p {
			return items[i].p < items[j].p
		}
		return items[i].id < items[j].id
	})

	for len(items) > 1 {
		s := items[0]
		l := items[len(items)-1]

		t.prob[s.id] = math.Min(s.p, 1)
		t.alias[s.id] = l.id
		l.p -= 1 - s.p

		// Drop the smallest, then sink the shrunken largest to its
		// place; it moved at most past equal-weight neighbours, so the
		// insertion is localized near the tail.
		items = items[1:]
		j := len(items) - 1
		for j > 0 && items[j-1].p > l.p {
			items[j] = items[j-1]
			j--
		}
		items[j] = l
	}
	t.prob[items[0].id] = 1
	return t, nil
}

// walkerItem is one (scaled probability, original index) pair in the
// sorted list Walker's construction consumes.
type walkerItem struct {
	p  float64
	id int
}
