package mask

import (
	"math"

	"github.com/katalvlaran/topograph/core"
)

// Mask is a region of 2-D or 3-D space tested in mask-local
// coordinates (the driver element sits at the origin unless the mask
// is anchored elsewhere). Implementations are immutable.
//
// InsideBox and OutsideBox are conservative subtree filters: a false
// answer means "cannot tell cheaply", never "no". BoundingBox must
// contain every point for which Inside reports true; soundness here is
// what keeps tree queries exact.
type Mask interface {
	// Dim returns the dimension the mask was built for, 2 or 3.
	Dim() int
	// Inside reports whether p lies in the region (closed boundaries).
	Inside(p core.Vec) bool
	// InsideBox reports whether all of b lies in the region.
	InsideBox(b core.Box) bool
	// OutsideBox reports whether none of b lies in the region.
	OutsideBox(b core.Box) bool
	// BoundingBox returns a box containing the whole region.
	BoundingBox() core.Box
}

// all matches every point of space.
type all struct {
	dim int
}

// All returns the mask matching everything, the "no mask" of a
// connection spec made explicit.
func All(dim int) (Mask, error) {
	if err := core.CheckDim(dim); err != nil {
		return nil, err
	}
	return all{dim: dim}, nil
}

func (m all) Dim() int                 { return m.dim }
func (m all) Inside(core.Vec) bool     { return true }
func (m all) InsideBox(core.Box) bool  { return true }
func (m all) OutsideBox(core.Box) bool { return false }
func (m all) BoundingBox() core.Box    { return core.InfiniteBox() }

// box is the closed axis-aligned region [Min, Max].
type box struct {
	dim int
	b   core.Box
}

// NewBox returns the closed box mask spanning [min, max]. Corners must
// satisfy min < max on every active axis.
func NewBox(dim int, min, max core.Vec) (Mask, error) {
	b, err := core.NewBox(dim, min, max)
	if err != nil {
		return nil, err
	}
	return box{dim: dim, b: b}, nil
}

func (m box) Dim() int { return m.dim }

func (m box) Inside(p core.Vec) bool { return m.b.Contains(m.dim, p) }

// InsideBox holds exactly when both extreme corners are contained;
// for an axis-aligned region that test is exact, not conservative.
func (m box) InsideBox(b core.Box) bool { return m.b.ContainsBox(m.dim, b) }

func (m box) OutsideBox(b core.Box) bool { return !m.b.Intersects(m.dim, b) }

func (m box) BoundingBox() core.Box { return m.b }

// ball is the closed Euclidean ball |p - center| <= r.
type ball struct {
	dim    int
	center core.Vec
	r      float64
	rSq    float64
}

// NewBall returns the closed ball mask of the given radius. The radius
// must be positive and finite, the center finite.
func NewBall(dim int, center core.Vec, radius float64) (Mask, error) {
	if err := core.CheckDim(dim); err != nil {
		return nil, err
	}
	if !(radius > 0) || math.IsInf(radius, 1) || !center.IsFinite(dim) {
		return nil, core.ErrInvalidGeometry
	}
	if dim == core.Dim2 {
		center.Z = 0
	}
	return ball{dim: dim, center: center, r: radius, rSq: radius * radius}, nil
}

func (m ball) Dim() int { return m.dim }

func (m ball) Inside(p core.Vec) bool {
	d := p.Sub(m.center)
	if m.dim == core.Dim2 {
		d.Z = 0
	}
	return d.LenSq() <= m.rSq
}

// InsideBox holds when every corner of b is inside the ball; by
// convexity that bounds the whole box.
func (m ball) InsideBox(b core.Box) bool {
	for i := 0; i < 1<<m.dim; i++ {
		if !m.Inside(b.Corner(m.dim, i)) {
			return false
		}
	}
	return true
}

// OutsideBox clamps the center onto b; if even the nearest point of
// the box misses the ball, the whole box does. The test is exact.
func (m ball) OutsideBox(b core.Box) bool {
	var distSq float64
	for i := 0; i < m.dim; i++ {
		c := m.center.Axis(i)
		if lo := b.Min.Axis(i); c < lo {
			distSq += (lo - c) * (lo - c)
		} else if hi := b.Max.Axis(i); c > hi {
			distSq += (c - hi) * (c - hi)
		}
	}
	return distSq > m.rSq
}

func (m ball) BoundingBox() core.Box {
	rv := core.Vec{X: m.r, Y: m.r}
	if m.dim == core.Dim3 {
		rv.Z = m.r
	}
	return core.Box{Min: m.center.Sub(rv), Max: m.center.Add(rv)}
}
