// Package core provides the geometric primitives and collaborator
// contracts shared by every other topograph package.
//
// The package is deliberately small: a value vector, an axis-aligned
// box, periodic wrapping, and the interfaces through which the
// connection generator talks to the outside world (Rand, Topology,
// Sink, Layer).
//
// # Geometry
//
// Vec is a plain value struct holding up to three coordinates. Layers,
// masks and trees carry the active dimension (2 or 3) themselves; a
// 2-D Vec simply keeps Z at zero. All arithmetic is componentwise and
// allocation-free:
//
//	d := b.Sub(a)          // displacement a→b
//	d = d.Wrap(ext)        // shortest periodic image, per axis
//	r := d.Len()           // Euclidean length
//
// Wrap maps each component x onto x - L*round(x/L) where L is the
// extent of that axis, so the result always lies in [-L/2, L/2].
// Wrapping applies to displacements only, never to absolute positions.
//
// Box is a closed axis-aligned region {Min, Max}. Half-open tests used
// by the spatial index live next to the closed tests used by masks;
// pick the one the call site needs.
//
// # Contracts
//
//	Rand     — the uniform source drawn from by samplers and fields
//	Topology — ownership of elements across parallel workers
//	Sink     — the receiver of generated connections
//	Layer    — a population of positioned elements
//
// *math/rand.Rand satisfies Rand as-is; NewSeededRand is a shorthand
// for a reproducible, unsynchronized stream. LocalTopology declares
// everything local (the single-process default) and RoundRobinTopology
// deals elements across a fixed number of workers by id.
//
// Collector is the no-frills Sink: it appends every connection to a
// slice under a mutex, safe for concurrent emission.
//
// Errors:
//
//	ErrDimension         – dimension outside {2, 3}
//	ErrDimensionMismatch – operands built for different dimensions
//	ErrInvalidGeometry   – inverted boxes, non-positive radii and kin
package core
