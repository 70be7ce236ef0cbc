// Package field implements the scalar parameter fields consumed by the
// connection generator: connection probability (the kernel), synaptic
// weight and transmission delay are all fields evaluated per candidate
// pair.
//
// A Field maps a Probe — the wrapped driver→pool displacement, its
// Euclidean length and the candidate's pool-local index — to a float64.
// Evaluation order in the generator is always displacement
// wrapping first, then the field, so every variant sees the shortest
// periodic image.
//
// # Variants
//
//	Constant(v)                      — v everywhere
//	NewLinear(a, c)                  — a·distance + c
//	NewExponential(a, c, tau)        — c + a·e^(−distance/τ)
//	NewGaussian(c, p, mean, sigma)   — c + p·e^(−(distance−mean)²/2σ²)
//	NewGaussian2D(...)               — bivariate with correlation ρ
//	NewUniform(min, max)             — one uniform draw per evaluation
//	NewDiscrete(values)              — values[PoolIndex], 1.0 outside
//	NewCombination(terms)            — Σ weightᵢ·fieldᵢ(probe)
//
// # Modifiers
//
//	Cutoff(f, d)       — 0 beyond distance d, f inside
//	Clamp(f, lo, hi)   — f folded into [lo, hi]
//
// Constructors validate their parameters and return ErrInvalidParameter
// on out-of-range input; an invalid field is never built. A constructed
// Field is immutable; stochastic variants draw from the core.Rand
// handed to Value, so sharing a Field across workers is safe as long as
// each worker brings its own stream.
//
// DriverInvariant reports whether a field's value is independent of the
// probe geometry and the random stream. The generator consults it
// before reusing a sampler table across driver elements: only a kernel
// that cannot tell drivers apart yields the same weight vector for all
// of them.
package field
