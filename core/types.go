package core

import "errors"

// Supported embedding dimensions. Every layer, mask and tree is built
// for exactly one of these.
const (
	Dim2 = 2
	Dim3 = 3
)

var (
	// ErrDimension reports a dimension outside {2, 3}.
	ErrDimension = errors.New("core: dimension must be 2 or 3")

	// ErrDimensionMismatch reports two collaborators built for
	// different dimensions (for example a 3-D mask over a 2-D layer).
	ErrDimensionMismatch = errors.New("core: dimension mismatch")

	// ErrInvalidGeometry reports degenerate geometry: an inverted or
	// empty box where a proper region is required, a non-positive
	// radius, a non-positive extent.
	ErrInvalidGeometry = errors.New("core: invalid geometry")
)

// NodeID identifies one element of a layer. IDs are global: two layers
// wired to each other must draw from disjoint ranges unless they are
// literally the same population.
type NodeID int64

// Connection is one generated edge, as handed to a Sink.
type Connection struct {
	Source  NodeID
	Target  NodeID
	Weight  float64
	Delay   float64
	Synapse string
}

// CheckDim validates a dimension argument.
//
// Complexity: O(1).
func CheckDim(dim int) error {
	if dim != Dim2 && dim != Dim3 {
		return ErrDimension
	}
	return nil
}
