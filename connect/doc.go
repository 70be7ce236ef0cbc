// Package connect generates connections between two positioned layers
// under a spatial connection spec: an optional mask restricting
// candidates around each driver element, a kernel field giving the
// connection probability or sampling weight, weight and delay fields
// parametrizing what is emitted, and a discipline deciding which side
// drives.
//
// # Disciplines
//
// TargetDriven and Convergent iterate target elements and pool over
// sources; SourceDriven and Divergent iterate sources and pool over
// targets. Under a core.Topology that marks elements non-local, driver
// iteration is restricted to local targets in the first pair, while the
// second pair iterates every source and filters at emission by the
// eventual target's locality — the generating side draws identically
// everywhere, so ranks agree on the random sequence.
//
// # Pool resolution
//
// With a mask, the pool layer is snapshotted once (GatherPositions),
// indexed in an ntree and queried per driver, periodic wrap included.
// Without one, every pool element is a candidate: a fixed fan count
// samples from kernel-weighted draws, otherwise each candidate gets one
// Bernoulli trial against the kernel. Kernel values are clamped into
// [0, 1]; a candidate with zero kernel weight is never connected on any
// path.
//
// # Fixed fan counts
//
// Spec.N > 0 asks for exactly N connections per driver, drawn from an
// alias sampler over the kernel weights. Draws violating the autapse or
// multapse rules are rejected and redrawn up to MaxDrawAttempts per
// slot; exhausting the budget falls back to filling the remaining slots
// from the eligible candidates in snapshot order, recorded as
// WarnDrawBudget. When multapses are disallowed and N meets or exceeds
// the eligible count, every eligible candidate is connected exactly
// once; asking for strictly more is recorded as WarnFanCountClamped.
// These anomalies are per-driver and recoverable: the pass continues
// and reports aggregate counts in Result.Warnings.
//
// # Determinism
//
// Each driver element draws from its own stream seeded by mixing the
// pass seed with the driver's id, so the generated set depends on the
// seed and the layers only — never on the worker count or on which
// goroutine processed a driver. Drivers are partitioned over an
// errgroup sized by WithWorkers; the tree is built once before the
// workers start and traversed read-only.
//
// A pass either completes or fails as a unit: the first sink error or
// context cancellation stops all workers and Generate returns the
// error with a zero Result. What the sink received before the failure
// is unspecified.
package connect
