package layer

import (
	"fmt"

	"github.com/katalvlaran/topograph/core"
)

// Free is a population with explicit per-element positions. It is
// immutable once built and safe for concurrent reads.
type Free struct {
	dim      int
	first    core.NodeID
	pos      []core.Vec
	ext      core.Box
	periodic bool
}

// degeneratePad widens a zero-size axis of a derived extent so the box
// stays a valid region (a single point, or points on a shared line,
// would otherwise collapse it).
const degeneratePad = 0.5

// NewFree builds a free layer over the given positions. The slice is
// copied; element i keeps index i and id first+i.
//
// Without WithExtent the extent is the tight bounding box of the
// positions (degenerate axes padded by ±0.5) and WithCenter or
// WithPeriodic are rejected. With WithExtent every position must fall
// inside the declared region, ErrOutsideExtent otherwise.
func NewFree(dim int, first core.NodeID, positions []core.Vec, opts ...Option) (*Free, error) {
	if err := core.CheckDim(dim); err != nil {
		return nil, err
	}
	o, err := buildOptions(dim, opts)
	if err != nil {
		return nil, err
	}
	if len(positions) == 0 {
		return nil, ErrNoPositions
	}
	if !o.hasSize {
		if o.hasCenter {
			return nil, fmt.Errorf("%w: a derived extent has no free midpoint; pass WithExtent as well", ErrOptionViolation)
		}
		if o.Periodic {
			return nil, fmt.Errorf("%w: periodic boundaries need an explicit extent", ErrOptionViolation)
		}
	}

	pos := make([]core.Vec, len(positions))
	for i, p := range positions {
		if !p.IsFinite(dim) {
			return nil, fmt.Errorf("%w: position %d is not finite", core.ErrInvalidGeometry, i)
		}
		if dim == core.Dim2 {
			p.Z = 0
		}
		pos[i] = p
	}

	var ext core.Box
	if o.hasSize {
		ext = o.box(dim)
		for i, p := range pos {
			if !ext.Contains(dim, p) {
				return nil, fmt.Errorf("%w: position %d (%v)", ErrOutsideExtent, i, p)
			}
		}
	} else {
		ext = tightBox(dim, pos)
	}

	return &Free{dim: dim, first: first, pos: pos, ext: ext, periodic: o.Periodic}, nil
}

// tightBox returns the bounding box of pos, padding degenerate axes.
func tightBox(dim int, pos []core.Vec) core.Box {
	b := core.Box{Min: pos[0], Max: pos[0]}
	for _, p := range pos[1:] {
		b = b.Union(core.Box{Min: p, Max: p})
	}
	for i := 0; i < dim; i++ {
		if b.Min.Axis(i) == b.Max.Axis(i) {
			b.Min = b.Min.WithAxis(i, b.Min.Axis(i)-degeneratePad)
			b.Max = b.Max.WithAxis(i, b.Max.Axis(i)+degeneratePad)
		}
	}
	return b
}

// Dim returns the embedding dimension.
func (f *Free) Dim() int { return f.dim }

// Len returns the number of elements.
func (f *Free) Len() int { return len(f.pos) }

// ID returns the global id of element i.
func (f *Free) ID(i int) core.NodeID { return f.first + core.NodeID(i) }

// Position returns the absolute position of element i.
func (f *Free) Position(i int) core.Vec { return f.pos[i] }

// Extent returns the region the population is embedded in.
func (f *Free) Extent() core.Box { return f.ext }

// Periodic reports whether opposite faces of the extent are glued.
func (f *Free) Periodic() bool { return f.periodic }

// Scatter draws n positions uniformly from ext, for building free
// layers in tests and benchmarks. The Z component stays zero in 2-D.
func Scatter(dim, n int, ext core.Box, rng core.Rand) []core.Vec {
	size := ext.Size()
	out := make([]core.Vec, n)
	for i := range out {
		p := ext.Min
		for a := 0; a < dim; a++ {
			p = p.WithAxis(a, ext.Min.Axis(a)+rng.Float64()*size.Axis(a))
		}
		if dim == core.Dim2 {
			p.Z = 0
		}
		out[i] = p
	}
	return out
}
