// Package ntree implements the quadtree/octree spatial index that
// answers "which elements fall under this mask around this anchor?".
//
// # Layout
//
// The tree lives in a single arena: one flat slice of nodes addressed
// by index, each branch holding the index of its first child and the
// 2^dim children allocated contiguously. Compared to a pointer-per-
// child layout this keeps nodes adjacent in memory, halves the pointer
// chasing on descent, and lets the whole structure be dropped in one
// garbage-collector sweep.
//
// Subdivision is lazy. Elements accumulate in a leaf until its
// capacity is exceeded, then the leaf splits at its midpoint into
// quadrants (2-D) or octants (3-D) and redistributes. A point exactly
// on a split plane goes to the lower child, consistently, so repeated
// builds of the same data produce the same shape. Two guards keep
// pathological inputs from splitting forever: a leaf of exactly
// coincident points refuses to split (no plane can separate them) and
// depth is capped, after which leaves simply grow.
//
// # Queries
//
// A query takes a mask and an anchor (the driver position). Walking
// the tree, each node is classified three ways against the mask in
// anchor-relative coordinates:
//
//	wholly outside — the subtree is skipped,
//	wholly inside  — every element is taken without per-point tests,
//	straddling     — children are descended, leaf entries tested
//	                 one by one.
//
// Both box classifications are conservative (see mask), so the walk
// may test more points than strictly needed but never misses one.
//
// On periodic layers the query box is first decomposed into its
// periodic images: per axis at most two segments of the extent, at
// most 2^dim image boxes overall, each with the shift that moved it.
// Every image is walked with a correspondingly shifted anchor and
// matches are reported with the shift subtracted, so returned
// positions are the image nearest the true anchor. A query box wider
// than one period on some axis, or a mask with an infinite bounding
// box, routes to a full scan under wrapped displacements instead;
// every element is still considered exactly once.
//
// # Errors
//
//	ErrNilMask          – Query with a nil mask
//	ErrOutsideExtent    – Insert outside the indexed extent
//	ErrOptionViolation  – invalid Option supplied
//
// plus core.ErrDimensionMismatch when a mask of the wrong dimension is
// queried.
package ntree
