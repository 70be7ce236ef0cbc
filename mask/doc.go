// Package mask implements geometric regions and the combinator algebra
// used to select connection candidates around a driver element.
//
// A Mask answers one question, "is this point inside?", plus three
// coarser ones the spatial index uses to prune whole subtrees:
//
//	Inside(p)      — exact point test, p in mask-local coordinates
//	InsideBox(b)   — true only if every point of b is inside
//	OutsideBox(b)  — true only if no point of b is inside
//	BoundingBox()  — a box containing every point with Inside == true
//
// The box tests are conservative: they may answer false when the truth
// is expensive, never the other way around. The bounding box obeys the
// same rule; when a tight box cannot be computed a looser one is
// returned, up to core.InfiniteBox for masks that cannot bound their
// matches at all. Queries seeing an infinite box fall back to scanning
// the population, so a loose box costs speed, never correctness.
//
// # Primitives
//
//	All(dim)                  — matches everything
//	NewBox(dim, min, max)     — closed axis-aligned box [min, max]
//	NewBall(dim, center, r)   — closed ball |p-center| <= r
//
// # Combinators
//
//	Intersect(a, b) — a AND b
//	Union(a, b)     — a OR b
//	Difference(a, b)— a AND NOT b
//	Converse(m)     — NOT m; its bounding box is infinite because the
//	                  complement of a bounded region is unbounded.
//	                  Intersect with a bounded mask to restore pruning.
//	Anchor(m, off)  — m translated by off, for masks defined relative
//	                  to a point other than the driver
//
// Combinators validate operand dimensions at construction and return
// core.ErrDimensionMismatch on disagreement; geometric nonsense
// (radius <= 0, inverted corners) returns core.ErrInvalidGeometry.
// A constructed Mask is immutable and safe for concurrent use.
package mask
