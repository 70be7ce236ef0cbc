package core

import "math"

// Box is an axis-aligned region spanned by two corners. Whether a
// test treats the region as closed ([Min, Max]) or half-open
// ([Min, Max)) is the call site's choice: masks use the closed tests,
// the spatial index uses the half-open ones so that split planes never
// double-count.
type Box struct {
	Min, Max Vec
}

// NewBox validates the corners and returns the box. Every active axis
// must satisfy Min < Max; violations return ErrInvalidGeometry.
func NewBox(dim int, min, max Vec) (Box, error) {
	if err := CheckDim(dim); err != nil {
		return Box{}, err
	}
	for i := 0; i < dim; i++ {
		lo, hi := min.Axis(i), max.Axis(i)
		if math.IsNaN(lo) || math.IsNaN(hi) || lo >= hi {
			return Box{}, ErrInvalidGeometry
		}
	}
	if dim == Dim2 {
		min.Z, max.Z = 0, 0
	}
	return Box{Min: min, Max: max}, nil
}

// InfiniteBox spans all of space. It is the bounding box of masks that
// cannot bound their matches; spatial queries seeing it fall back to a
// full scan.
func InfiniteBox() Box {
	inf := math.Inf(1)
	return Box{
		Min: Vec{-inf, -inf, -inf},
		Max: Vec{inf, inf, inf},
	}
}

// Contains reports whether p lies in the closed region [Min, Max] on
// the first dim axes.
func (b Box) Contains(dim int, p Vec) bool {
	for i := 0; i < dim; i++ {
		c := p.Axis(i)
		if c < b.Min.Axis(i) || c > b.Max.Axis(i) {
			return false
		}
	}
	return true
}

// ContainsHalfOpen reports whether p lies in [Min, Max) on the first
// dim axes.
func (b Box) ContainsHalfOpen(dim int, p Vec) bool {
	for i := 0; i < dim; i++ {
		c := p.Axis(i)
		if c < b.Min.Axis(i) || c >= b.Max.Axis(i) {
			return false
		}
	}
	return true
}

// ContainsBox reports whether o lies entirely inside the closed
// region of b on the first dim axes.
func (b Box) ContainsBox(dim int, o Box) bool {
	return b.Contains(dim, o.Min) && b.Contains(dim, o.Max)
}

// Intersects reports whether the closed regions of b and o overlap on
// the first dim axes.
func (b Box) Intersects(dim int, o Box) bool {
	for i := 0; i < dim; i++ {
		if b.Max.Axis(i) < o.Min.Axis(i) || o.Max.Axis(i) < b.Min.Axis(i) {
			return false
		}
	}
	return true
}

// Intersect returns the componentwise intersection. The result may be
// empty (some Min above its Max); IsEmpty detects that.
func (b Box) Intersect(o Box) Box {
	return Box{
		Min: Vec{math.Max(b.Min.X, o.Min.X), math.Max(b.Min.Y, o.Min.Y), math.Max(b.Min.Z, o.Min.Z)},
		Max: Vec{math.Min(b.Max.X, o.Max.X), math.Min(b.Max.Y, o.Max.Y), math.Min(b.Max.Z, o.Max.Z)},
	}
}

// Union returns the smallest box containing both operands.
func (b Box) Union(o Box) Box {
	return Box{
		Min: Vec{math.Min(b.Min.X, o.Min.X), math.Min(b.Min.Y, o.Min.Y), math.Min(b.Min.Z, o.Min.Z)},
		Max: Vec{math.Max(b.Max.X, o.Max.X), math.Max(b.Max.Y, o.Max.Y), math.Max(b.Max.Z, o.Max.Z)},
	}
}

// Translate shifts both corners by v.
func (b Box) Translate(v Vec) Box {
	return Box{Min: b.Min.Add(v), Max: b.Max.Add(v)}
}

// Size returns the per-axis extent Max - Min.
func (b Box) Size() Vec { return b.Max.Sub(b.Min) }

// Center returns the midpoint of the region.
func (b Box) Center() Vec { return b.Min.Add(b.Max).Scale(0.5) }

// Corner returns the i-th corner, i in [0, 2^dim): bit j of i selects
// Max (set) or Min (clear) on axis j. Inactive axes take Min.
func (b Box) Corner(dim, i int) Vec {
	c := b.Min
	for j := 0; j < dim; j++ {
		if i&(1<<j) != 0 {
			c = c.WithAxis(j, b.Max.Axis(j))
		}
	}
	return c
}

// IsEmpty reports whether some active axis has Min > Max, which is how
// disjoint intersections come out.
func (b Box) IsEmpty(dim int) bool {
	for i := 0; i < dim; i++ {
		if b.Min.Axis(i) > b.Max.Axis(i) {
			return true
		}
	}
	return false
}

// IsFinite reports whether all corners are finite on the active axes.
func (b Box) IsFinite(dim int) bool {
	return b.Min.IsFinite(dim) && b.Max.IsFinite(dim)
}
