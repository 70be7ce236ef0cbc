package ntree

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/topograph/core"
)

// Tuning defaults; see WithLeafCapacity and WithMaxDepth.
const (
	DefaultLeafCapacity = 32
	DefaultMaxDepth     = 16
)

// Sentinel errors for tree construction and queries.
var (
	// ErrNilMask is returned when Query is handed a nil mask.
	ErrNilMask = errors.New("ntree: mask is nil")

	// ErrOutsideExtent is returned when an inserted position lies
	// outside the indexed extent. Periodic layers canonicalize their
	// positions before indexing; the tree itself never wraps inserts.
	ErrOutsideExtent = errors.New("ntree: position outside the indexed extent")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("ntree: invalid option supplied")
)

// Entry is one indexed element: its global id, its ordinal in the
// population it came from (what Discrete parameter fields key on), and
// its absolute position.
type Entry struct {
	ID    core.NodeID
	Index int
	Pos   core.Vec
}

// Option configures tree construction via functional arguments. An
// invalid Option is recorded and surfaced as ErrOptionViolation by New
// or Build.
type Option func(*Options)

// Options holds the tree tuning knobs.
type Options struct {
	// LeafCapacity is the number of entries a leaf holds before it
	// splits. Larger leaves mean fewer nodes and more per-point tests.
	LeafCapacity int

	// MaxDepth caps subdivision; leaves at the cap grow past capacity
	// instead of splitting. It bounds the damage of near-coincident
	// clusters.
	MaxDepth int

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with the package defaults.
func DefaultOptions() Options {
	return Options{
		LeafCapacity: DefaultLeafCapacity,
		MaxDepth:     DefaultMaxDepth,
		err:          nil,
	}
}

// WithLeafCapacity sets the split threshold.
//
//	n > 0: split leaves holding more than n entries
//	n <= 0: invalid option → ErrOptionViolation
func WithLeafCapacity(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: LeafCapacity must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.LeafCapacity = n
	}
}

// WithMaxDepth caps the subdivision depth.
//
//	d > 0: cap at depth d
//	d <= 0: invalid option → ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d <= 0 {
			o.err = fmt.Errorf("%w: MaxDepth must be positive (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// node is one arena slot. Children, when present, are the 2^dim nodes
// starting at first; first < 0 marks a leaf.
type node struct {
	region  core.Box
	first   int32
	depth   int32
	entries []Entry
}

const noChildren = int32(-1)
