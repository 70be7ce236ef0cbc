package mask

import "github.com/katalvlaran/topograph/core"

func checkPair(a, b Mask) error {
	if a.Dim() != b.Dim() {
		return core.ErrDimensionMismatch
	}
	return nil
}

// intersection matches points inside both operands.
type intersection struct {
	a, b Mask
}

// Intersect returns the mask matching a AND b. Operands must share a
// dimension.
func Intersect(a, b Mask) (Mask, error) {
	if err := checkPair(a, b); err != nil {
		return nil, err
	}
	return intersection{a: a, b: b}, nil
}

func (m intersection) Dim() int { return m.a.Dim() }

func (m intersection) Inside(p core.Vec) bool { return m.a.Inside(p) && m.b.Inside(p) }

func (m intersection) InsideBox(b core.Box) bool { return m.a.InsideBox(b) && m.b.InsideBox(b) }

func (m intersection) OutsideBox(b core.Box) bool { return m.a.OutsideBox(b) || m.b.OutsideBox(b) }

// BoundingBox intersects the operand boxes. Disjoint operands yield an
// empty box, which is sound: no point passes Inside either.
func (m intersection) BoundingBox() core.Box {
	return m.a.BoundingBox().Intersect(m.b.BoundingBox())
}

// union matches points inside either operand.
type union struct {
	a, b Mask
}

// Union returns the mask matching a OR b. Operands must share a
// dimension.
func Union(a, b Mask) (Mask, error) {
	if err := checkPair(a, b); err != nil {
		return nil, err
	}
	return union{a: a, b: b}, nil
}

func (m union) Dim() int { return m.a.Dim() }

func (m union) Inside(p core.Vec) bool { return m.a.Inside(p) || m.b.Inside(p) }

// InsideBox is conservative: a box covered only jointly by the two
// operands answers false and gets per-point tests instead.
func (m union) InsideBox(b core.Box) bool { return m.a.InsideBox(b) || m.b.InsideBox(b) }

func (m union) OutsideBox(b core.Box) bool { return m.a.OutsideBox(b) && m.b.OutsideBox(b) }

func (m union) BoundingBox() core.Box {
	return m.a.BoundingBox().Union(m.b.BoundingBox())
}

// difference matches points inside a but not b.
type difference struct {
	a, b Mask
}

// Difference returns the mask matching a AND NOT b. Operands must
// share a dimension.
func Difference(a, b Mask) (Mask, error) {
	if err := checkPair(a, b); err != nil {
		return nil, err
	}
	return difference{a: a, b: b}, nil
}

func (m difference) Dim() int { return m.a.Dim() }

func (m difference) Inside(p core.Vec) bool { return m.a.Inside(p) && !m.b.Inside(p) }

func (m difference) InsideBox(b core.Box) bool { return m.a.InsideBox(b) && m.b.OutsideBox(b) }

func (m difference) OutsideBox(b core.Box) bool { return m.a.OutsideBox(b) || m.b.InsideBox(b) }

// BoundingBox keeps the positive operand's box: the difference is a
// subset of a, so a's box stays sound no matter what b removes.
func (m difference) BoundingBox() core.Box { return m.a.BoundingBox() }

// converse matches points outside the operand.
type converse struct {
	m Mask
}

// Converse returns the complement NOT m. The complement of a bounded
// region is unbounded, so the result reports an infinite bounding box
// and queries against it scan the whole population; intersect it with
// a bounded mask to restore pruning.
func Converse(m Mask) Mask { return converse{m: m} }

func (c converse) Dim() int { return c.m.Dim() }

func (c converse) Inside(p core.Vec) bool { return !c.m.Inside(p) }

func (c converse) InsideBox(b core.Box) bool { return c.m.OutsideBox(b) }

func (c converse) OutsideBox(b core.Box) bool { return c.m.InsideBox(b) }

func (c converse) BoundingBox() core.Box { return core.InfiniteBox() }

// anchored shifts the operand by a fixed offset.
type anchored struct {
	m   Mask
	off core.Vec
}

// Anchor returns m translated by off, so that Inside(p) of the result
// equals m.Inside(p - off). The offset must be finite.
func Anchor(m Mask, off core.Vec) (Mask, error) {
	if !off.IsFinite(m.Dim()) {
		return nil, core.ErrInvalidGeometry
	}
	if m.Dim() == core.Dim2 {
		off.Z = 0
	}
	return anchored{m: m, off: off}, nil
}

func (a anchored) Dim() int { return a.m.Dim() }

func (a anchored) Inside(p core.Vec) bool { return a.m.Inside(p.Sub(a.off)) }

func (a anchored) InsideBox(b core.Box) bool {
	return a.m.InsideBox(b.Translate(a.off.Neg()))
}

func (a anchored) OutsideBox(b core.Box) bool {
	return a.m.OutsideBox(b.Translate(a.off.Neg()))
}

func (a anchored) BoundingBox() core.Box {
	return a.m.BoundingBox().Translate(a.off)
}
