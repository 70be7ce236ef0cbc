// Package sampler implements weighted index sampling for the
// fixed-fan-count connection path: given a vector of non-negative
// weights, draw indices with probability proportional to weight.
//
// Three constructions share the Sampler contract:
//
//	NewVose(weights)   — alias table via Vose's method, O(n) build,
//	                     O(1) draw. The canonical choice.
//	NewWalker(weights) — alias table via Walker's original
//	                     insertion-sort pairing, O(n log n) build,
//	                     O(1) draw. Kept because a property test proves
//	                     it reconstructs the same distribution as Vose.
//	NewBucket(weights) — exponent-bucket rejection sampler: weights are
//	                     grouped by binary exponent, a cumulative table
//	                     picks the group and mantissa-acceptance picks
//	                     within it. O(1) table memory beyond the
//	                     weights, but draw cost is data-dependent.
//	                     Legacy; prefer the alias tables.
//
// An alias Table holds n (probability, alias) pairs. A draw folds one
// uniform value into a bin i = floor(r·n) and a residual f = r·n - i,
// returning i when f < probability[i] and alias[i] otherwise, so every
// draw costs exactly one uniform value and no loops.
//
// All constructors demand at least one strictly positive weight;
// negative, NaN or infinite weights and zero-sum inputs return
// ErrNoPositiveWeights rather than falling back to a uniform
// distribution.
//
// Tables are immutable after construction and safe for concurrent
// draws as long as each goroutine brings its own core.Rand.
package sampler
