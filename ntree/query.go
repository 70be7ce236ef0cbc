package ntree

import (
	"math"

	"github.com/katalvlaran/topograph/core"
	"github.com/katalvlaran/topograph/mask"
)

// image is one periodic copy of the query box: the clipped region to
// walk and the shift that produced it.
type image struct {
	region core.Box
	shift  core.Vec
}

// Query returns every entry whose position, taken relative to anchor,
// lies inside the mask. On periodic layers displacements are evaluated
// against the periodic image selected by the mask's bounding box, and
// returned positions carry that image's shift subtracted out, so
// Pos.Sub(anchor) is the displacement the mask accepted. For masks
// that fit within half the extent around their anchor this is exactly
// the wrapped (nearest-image) displacement.
//
// Masks with an infinite bounding box are legal and route to a full
// scan under nearest-image displacements; so do query boxes spanning a
// full period on some axis. Either way each element is considered
// exactly once.
//
// Complexity: O(k + log n) for bounded masks over spread-out points,
// O(n) on the scan path.
func (t *Tree) Query(m mask.Mask, anchor core.Vec) ([]Entry, error) {
	return t.QueryInto(nil, m, anchor)
}

// QueryInto appends matches to dst and returns it, reusing dst's
// backing array across calls. Semantics match Query.
func (t *Tree) QueryInto(dst []Entry, m mask.Mask, anchor core.Vec) ([]Entry, error) {
	if m == nil {
		return dst, ErrNilMask
	}
	if m.Dim() != t.dim {
		return dst, core.ErrDimensionMismatch
	}
	if t.dim == core.Dim2 {
		anchor.Z = 0
	}
	if !anchor.IsFinite(t.dim) {
		return dst, core.ErrInvalidGeometry
	}

	bb := m.BoundingBox()
	if !bb.IsFinite(t.dim) {
		return t.scanAll(dst, m, anchor), nil
	}

	query := bb.Translate(anchor)
	if t.periodic {
		images, ok := t.images(query)
		if !ok {
			// wider than one period somewhere; nearest-image scan
			return t.scanAll(dst, m, anchor), nil
		}
		for _, im := range images {
			dst = t.walk(dst, 0, m, anchor.Add(im.shift), im.shift, im.region)
		}
		return dst, nil
	}
	return t.walk(dst, 0, m, anchor, core.Vec{}, query), nil
}

// images decomposes the absolute query box into its periodic copies
// inside the extent: per axis one segment, or two when the box crosses
// a face, so at most 2^dim images overall. It reports ok=false when
// the box spans a full period on some axis.
func (t *Tree) images(query core.Box) ([]image, bool) {
	type segment struct {
		lo, hi, shift float64
	}
	var axes [3][]segment

	for a := 0; a < t.dim; a++ {
		extLo, extHi := t.extent.Min.Axis(a), t.extent.Max.Axis(a)
		period := extHi - extLo
		qLo, qHi := query.Min.Axis(a), query.Max.Axis(a)
		width := qHi - qLo
		if width >= period {
			return nil, false
		}

		off := math.Mod(qLo-extLo, period)
		if off < 0 {
			off += period
		}
		base := extLo + off
		shift := base - qLo

		segs := []segment{{lo: base, hi: math.Min(base+width, extHi), shift: shift}}
		if over := base + width - extHi; over > 0 {
			segs = append(segs, segment{lo: extLo, hi: extLo + over, shift: shift - period})
		}
		axes[a] = segs
	}

	// Cartesian product of the per-axis segments.
	images := []image{{region: t.extent, shift: core.Vec{}}}
	for a := 0; a < t.dim; a++ {
		next := images[:0:0]
		for _, im := range images {
			for _, s := range axes[a] {
				r := im.region
				r.Min = r.Min.WithAxis(a, s.lo)
				r.Max = r.Max.WithAxis(a, s.hi)
				next = append(next, image{
					region: r,
					shift:  im.shift.WithAxis(a, s.shift),
				})
			}
		}
		images = next
	}
	return images, true
}

// walk recursively classifies node ni against the mask anchored at sa
// (anchor plus image shift): wholly outside prunes, wholly inside
// takes the subtree, straddling descends.
func (t *Tree) walk(dst []Entry, ni int, m mask.Mask, sa, shift core.Vec, region core.Box) []Entry {
	n := &t.nodes[ni]
	if !n.region.Intersects(t.dim, region) {
		return dst
	}
	local := n.region.Translate(sa.Neg())
	if m.OutsideBox(local) {
		return dst
	}
	if m.InsideBox(local) {
		return t.collect(dst, ni, shift)
	}
	if n.first == noChildren {
		for _, e := range n.entries {
			if m.Inside(e.Pos.Sub(sa)) {
				dst = append(dst, Entry{ID: e.ID, Index: e.Index, Pos: e.Pos.Sub(shift)})
			}
		}
		return dst
	}
	for c := 0; c < 1<<t.dim; c++ {
		dst = t.walk(dst, int(n.first)+c, m, sa, shift, region)
	}
	return dst
}

// collect appends the whole subtree under ni without per-point tests.
func (t *Tree) collect(dst []Entry, ni int, shift core.Vec) []Entry {
	n := &t.nodes[ni]
	if n.first == noChildren {
		for _, e := range n.entries {
			dst = append(dst, Entry{ID: e.ID, Index: e.Index, Pos: e.Pos.Sub(shift)})
		}
		return dst
	}
	for c := 0; c < 1<<t.dim; c++ {
		dst = t.collect(dst, int(n.first)+c, shift)
	}
	return dst
}

// scanAll tests every entry under the wrapped displacement, the
// fallback for unbounded masks and period-spanning query boxes. Each
// element is considered exactly once, at its image nearest the anchor.
func (t *Tree) scanAll(dst []Entry, m mask.Mask, anchor core.Vec) []Entry {
	var sizes core.Vec
	if t.periodic {
		sizes = t.extent.Size()
	}
	for ni := range t.nodes {
		n := &t.nodes[ni]
		if n.first != noChildren {
			continue
		}
		for _, e := range n.entries {
			disp := e.Pos.Sub(anchor)
			if t.periodic {
				disp = disp.Wrap(sizes)
			}
			if m.Inside(disp) {
				dst = append(dst, Entry{ID: e.ID, Index: e.Index, Pos: anchor.Add(disp)})
			}
		}
	}
	return dst
}
