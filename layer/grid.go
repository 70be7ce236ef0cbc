package layer

import (
	"fmt"

	"github.com/katalvlaran/topograph/core"
)

// Grid is a lattice population: one element at the center of every
// cell of a cols×rows(×planes) grid spanning the extent. It is
// immutable once built and safe for concurrent reads.
type Grid struct {
	dim                int
	first              core.NodeID
	cols, rows, planes int
	ext                core.Box
	step               core.Vec
	periodic           bool
}

// NewGrid2 builds a 2-D lattice of cols×rows elements. The default
// extent is the unit square centered on the origin; WithExtent and
// WithCenter move it and WithPeriodic glues its faces.
func NewGrid2(first core.NodeID, cols, rows int, opts ...Option) (*Grid, error) {
	return newGrid(core.Dim2, first, cols, rows, 1, opts)
}

// NewGrid3 builds a 3-D lattice of cols×rows×planes elements, the unit
// cube by default.
func NewGrid3(first core.NodeID, cols, rows, planes int, opts ...Option) (*Grid, error) {
	return newGrid(core.Dim3, first, cols, rows, planes, opts)
}

func newGrid(dim int, first core.NodeID, cols, rows, planes int, opts []Option) (*Grid, error) {
	o, err := buildOptions(dim, opts)
	if err != nil {
		return nil, err
	}
	if cols < 1 || rows < 1 || planes < 1 {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrBadShape, cols, rows, planes)
	}
	if !o.hasSize {
		o.Size = core.V3(1, 1, 1)
		if dim == core.Dim2 {
			o.Size.Z = 0
		}
	}

	ext := o.box(dim)
	size := ext.Size()
	step := core.Vec{
		X: size.X / float64(cols),
		Y: size.Y / float64(rows),
	}
	if dim == core.Dim3 {
		step.Z = size.Z / float64(planes)
	}

	return &Grid{
		dim:      dim,
		first:    first,
		cols:     cols,
		rows:     rows,
		planes:   planes,
		ext:      ext,
		step:     step,
		periodic: o.Periodic,
	}, nil
}

// Dim returns the embedding dimension.
func (g *Grid) Dim() int { return g.dim }

// Len returns cols·rows·planes.
func (g *Grid) Len() int { return g.cols * g.rows * g.planes }

// ID returns the global id of element i.
func (g *Grid) ID(i int) core.NodeID { return g.first + core.NodeID(i) }

// Shape returns the lattice dimensions; planes is 1 for 2-D grids.
func (g *Grid) Shape() (cols, rows, planes int) { return g.cols, g.rows, g.planes }

// Step returns the per-axis cell size.
func (g *Grid) Step() core.Vec { return g.step }

// Coords decodes element i into its lattice coordinates. Ids are
// row-major: the column varies fastest, then the row, then the plane.
func (g *Grid) Coords(i int) (col, row, plane int) {
	col = i % g.cols
	row = (i / g.cols) % g.rows
	plane = i / (g.cols * g.rows)
	return col, row, plane
}

// Index is the inverse of Coords. Coordinates are not range-checked;
// callers iterate lattice bounds they already know.
func (g *Grid) Index(col, row, plane int) int {
	return (plane*g.rows+row)*g.cols + col
}

// Position returns the center of element i's lattice cell.
func (g *Grid) Position(i int) core.Vec {
	col, row, plane := g.Coords(i)
	p := core.Vec{
		X: g.ext.Min.X + (float64(col)+0.5)*g.step.X,
		Y: g.ext.Min.Y + (float64(row)+0.5)*g.step.Y,
	}
	if g.dim == core.Dim3 {
		p.Z = g.ext.Min.Z + (float64(plane)+0.5)*g.step.Z
	}
	return p
}

// Extent returns the region the lattice spans.
func (g *Grid) Extent() core.Box { return g.ext }

// Periodic reports whether opposite faces of the extent are glued. A
// periodic grid's extent is an exact step multiple by construction, so
// wrap images continue the lattice seamlessly.
func (g *Grid) Periodic() bool { return g.periodic }
