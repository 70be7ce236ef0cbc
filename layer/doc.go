// Package layer implements the two population geometries the
// connection generator iterates over: free layers with explicit
// per-element positions and grid layers whose positions derive from a
// lattice shape and extent.
//
// Both satisfy core.Layer. Elements are indexed 0..Len()-1 in a stable
// order and carry contiguous global ids starting at the id handed to
// the constructor, so several layers share one id space by starting
// where the previous one ended.
//
// # Free layers
//
// NewFree takes the positions as given. Without options the extent is
// the tight bounding box of the positions, degenerate axes padded by
// ±0.5 so the box stays a valid region. WithExtent/WithCenter override
// that; every position must then fall inside the declared region.
// Periodic boundaries need an explicit extent, since a data-derived
// box is not a meaningful period.
//
// # Grid layers
//
// NewGrid2 and NewGrid3 place one element at the center of each lattice
// cell: axis positions are Min + (i+0.5)·step with step = size/cells.
// Ids are row-major with the column fastest, then row, then plane.
// Because positions are affine in the cell coordinates, the
// displacement between two cells depends only on their index offset —
// the property that lets the generator reuse one sampler table across
// all drivers of a grid (see field.DriverInvariant).
//
// The default grid extent is the unit square (cube) centered on the
// origin; WithExtent and WithCenter move it. A periodic grid's extent
// is an exact multiple of its step by construction, so wrap images tile
// the lattice without seams.
package layer
