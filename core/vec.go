package core

import "math"

// Vec is a point or displacement in 2-D or 3-D space. The active
// dimension is carried by the surrounding layer, mask or tree; in 2-D
// the Z component is kept at zero and takes no part in lengths or
// wrapping.
//
// Vec is a value type: methods return new values and never mutate the
// receiver.
type Vec struct {
	X, Y, Z float64
}

// V2 builds a 2-D vector (Z fixed at zero).
func V2(x, y float64) Vec { return Vec{X: x, Y: y} }

// V3 builds a 3-D vector.
func V3(x, y, z float64) Vec { return Vec{X: x, Y: y, Z: z} }

// Add returns v + u componentwise.
func (v Vec) Add(u Vec) Vec { return Vec{v.X + u.X, v.Y + u.Y, v.Z + u.Z} }

// Sub returns v - u componentwise.
func (v Vec) Sub(u Vec) Vec { return Vec{v.X - u.X, v.Y - u.Y, v.Z - u.Z} }

// Mul returns the componentwise product v ∘ u.
func (v Vec) Mul(u Vec) Vec { return Vec{v.X * u.X, v.Y * u.Y, v.Z * u.Z} }

// Div returns the componentwise quotient. Dividing by a zero component
// yields the IEEE result (±Inf or NaN); callers validate extents first.
func (v Vec) Div(u Vec) Vec { return Vec{v.X / u.X, v.Y / u.Y, v.Z / u.Z} }

// Scale returns v scaled by s.
func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s, v.Z * s} }

// Neg returns -v.
func (v Vec) Neg() Vec { return Vec{-v.X, -v.Y, -v.Z} }

// Dot returns the dot product v · u.
func (v Vec) Dot(u Vec) float64 { return v.X*u.X + v.Y*u.Y + v.Z*u.Z }

// LenSq returns the squared Euclidean length. Prefer it over Len when
// only comparisons are needed.
func (v Vec) LenSq() float64 { return v.Dot(v) }

// Len returns the Euclidean length.
func (v Vec) Len() float64 { return math.Sqrt(v.LenSq()) }

// Round returns the nearest integer lattice point, rounding each
// component half away from zero.
func (v Vec) Round() Vec {
	return Vec{math.Round(v.X), math.Round(v.Y), math.Round(v.Z)}
}

// Axis returns the i-th component (0 → X, 1 → Y, 2 → Z). It panics on
// any other index; axis loops are always bounded by a checked dim.
func (v Vec) Axis(i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	}
	panic("core: axis index out of range")
}

// WithAxis returns a copy of v with the i-th component replaced.
func (v Vec) WithAxis(i int, val float64) Vec {
	switch i {
	case 0:
		v.X = val
	case 1:
		v.Y = val
	case 2:
		v.Z = val
	default:
		panic("core: axis index out of range")
	}
	return v
}

// Wrap folds the displacement v into the shortest periodic image for
// the given per-axis extent sizes: each component x becomes
// x - L*round(x/L), which lies in [-L/2, L/2]. Axes whose extent is
// zero or negative are left untouched, so a 2-D extent (Z size 0)
// never disturbs the Z component.
//
// Wrap is for displacements between two positions, never for absolute
// positions. It is idempotent.
//
// Complexity: O(1).
func (v Vec) Wrap(ext Vec) Vec {
	return Vec{wrap1(v.X, ext.X), wrap1(v.Y, ext.Y), wrap1(v.Z, ext.Z)}
}

func wrap1(x, l float64) float64 {
	if l <= 0 {
		return x
	}
	// Ties-to-even keeps a displacement of exactly ±L/2 where it is,
	// which is what makes Wrap idempotent on the closed interval.
	return x - l*math.RoundToEven(x/l)
}

// IsFinite reports whether the first dim components are all finite.
func (v Vec) IsFinite(dim int) bool {
	for i := 0; i < dim; i++ {
		c := v.Axis(i)
		if math.IsInf(c, 0) || math.IsNaN(c) {
			return false
		}
	}
	return true
}
