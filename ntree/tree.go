package ntree

import "github.com/katalvlaran/topograph/core"

// Tree is an arena-backed quadtree (dim 2) or octree (dim 3) over a
// finite extent. It is not safe for concurrent mutation; build first,
// then share for concurrent queries.
type Tree struct {
	dim      int
	extent   core.Box
	periodic bool
	leafCap  int
	maxDepth int
	nodes    []node
	count    int
}

// New returns an empty tree over the given extent. The extent must be
// a proper finite box for the dimension; periodic marks opposite faces
// as glued, which only affects queries, never inserts.
func New(dim int, extent core.Box, periodic bool, opts ...Option) (*Tree, error) {
	ext, err := core.NewBox(dim, extent.Min, extent.Max)
	if err != nil {
		return nil, err
	}
	if !ext.IsFinite(dim) {
		return nil, core.ErrInvalidGeometry
	}

	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	t := &Tree{
		dim:      dim,
		extent:   ext,
		periodic: periodic,
		leafCap:  o.LeafCapacity,
		maxDepth: o.MaxDepth,
		nodes:    make([]node, 1, 64),
	}
	t.nodes[0] = node{region: ext, first: noChildren}
	return t, nil
}

// Build constructs a tree and inserts all entries. Entries keep their
// Index fields as given; callers that feed a gathered snapshot use the
// snapshot ordinal.
func Build(dim int, extent core.Box, periodic bool, entries []Entry, opts ...Option) (*Tree, error) {
	t, err := New(dim, extent, periodic, opts...)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if err := t.Insert(e); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Dim returns the embedding dimension.
func (t *Tree) Dim() int { return t.dim }

// Extent returns the indexed region.
func (t *Tree) Extent() core.Box { return t.extent }

// Periodic reports whether queries wrap across the extent faces.
func (t *Tree) Periodic() bool { return t.periodic }

// Len returns the number of indexed entries.
func (t *Tree) Len() int { return t.count }

// NodeCount returns the number of arena slots, leaves included. It
// grows by exactly 2^dim per split.
func (t *Tree) NodeCount() int { return len(t.nodes) }

// Insert adds one entry. The position must be finite and inside the
// closed extent; everything else returns an error and leaves the tree
// untouched.
//
// Complexity: O(depth), amortized O(log n) for spread-out points.
func (t *Tree) Insert(e Entry) error {
	if t.dim == core.Dim2 {
		e.Pos.Z = 0
	}
	if !e.Pos.IsFinite(t.dim) {
		return core.ErrInvalidGeometry
	}
	if !t.extent.Contains(t.dim, e.Pos) {
		return ErrOutsideExtent
	}

	ni := 0
	for {
		n := &t.nodes[ni]
		if n.first == noChildren {
			if len(n.entries) < t.leafCap ||
				int(n.depth) >= t.maxDepth ||
				allCoincident(n.entries, e.Pos) {
				n.entries = append(n.entries, e)
				t.count++
				return nil
			}
			t.split(ni)
			// the leaf is a branch now; fall through to descend
		}
		ni = int(t.nodes[ni].first) + t.childIndex(t.nodes[ni].region.Center(), e.Pos)
	}
}

// childIndex maps a position to a child slot: bit j is set when the
// point lies strictly above the split plane on axis j, so points
// exactly on a plane land in the lower child.
func (t *Tree) childIndex(mid, p core.Vec) int {
	idx := 0
	for j := 0; j < t.dim; j++ {
		if p.Axis(j) > mid.Axis(j) {
			idx |= 1 << j
		}
	}
	return idx
}

// split converts the leaf at ni into a branch with 2^dim fresh leaves
// and redistributes its entries.
func (t *Tree) split(ni int) {
	region := t.nodes[ni].region
	depth := t.nodes[ni].depth
	entries := t.nodes[ni].entries
	mid := region.Center()

	first := int32(len(t.nodes))
	for c := 0; c < 1<<t.dim; c++ {
		child := core.Box{Min: region.Min, Max: region.Max}
		for j := 0; j < t.dim; j++ {
			if c&(1<<j) != 0 {
				child.Min = child.Min.WithAxis(j, mid.Axis(j))
			} else {
				child.Max = child.Max.WithAxis(j, mid.Axis(j))
			}
		}
		t.nodes = append(t.nodes, node{region: child, first: noChildren, depth: depth + 1})
	}

	// t.nodes may have been reallocated by append; re-index the parent.
	t.nodes[ni].first = first
	t.nodes[ni].entries = nil
	for _, e := range entries {
		ci := int(first) + t.childIndex(mid, e.Pos)
		t.nodes[ci].entries = append(t.nodes[ci].entries, e)
	}
}

// allCoincident reports whether every stored entry and the incoming
// position share one exact point, in which case splitting cannot
// separate anything.
func allCoincident(entries []Entry, p core.Vec) bool {
	for _, e := range entries {
		if e.Pos != p {
			return false
		}
	}
	return true
}
