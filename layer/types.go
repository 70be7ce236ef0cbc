package layer

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/topograph/core"
)

// Sentinel errors for layer construction.
var (
	// ErrNoPositions is returned when a free layer is built without a
	// single position.
	ErrNoPositions = errors.New("layer: a free layer needs at least one position")

	// ErrBadShape is returned when a grid dimension is not positive.
	ErrBadShape = errors.New("layer: grid shape must be positive on every axis")

	// ErrOutsideExtent is returned when a free position falls outside an
	// explicitly declared extent.
	ErrOutsideExtent = errors.New("layer: position outside the declared extent")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("layer: invalid option supplied")
)

// Option configures layer construction via functional arguments. An
// invalid Option is recorded and surfaced by the constructor.
type Option func(*Options)

// Options holds the geometry knobs shared by free and grid layers.
type Options struct {
	// Size is the per-axis extent of the layer region; zero value means
	// "derive" (tight bounding box for free layers, unit region for
	// grids).
	Size core.Vec
	// Center is the midpoint of the region; origin unless moved.
	Center core.Vec

	// Periodic glues opposite faces of the extent.
	Periodic bool

	hasSize   bool
	hasCenter bool

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with everything derived: data-driven
// extent, origin center, hard boundaries.
func DefaultOptions() Options {
	return Options{}
}

// WithExtent declares the per-axis sizes of the layer region. Every
// active axis must be positive and finite.
func WithExtent(size core.Vec) Option {
	return func(o *Options) {
		o.Size = size
		o.hasSize = true
	}
}

// WithCenter moves the region midpoint. Free layers accept it only
// together with WithExtent; a data-derived box has no free midpoint.
func WithCenter(c core.Vec) Option {
	return func(o *Options) {
		o.Center = c
		o.hasCenter = true
	}
}

// WithPeriodic glues opposite faces of the extent, making displacements
// wrap to the nearest image. Free layers additionally require
// WithExtent.
func WithPeriodic() Option {
	return func(o *Options) {
		o.Periodic = true
	}
}

// buildOptions folds opts into defaults and validates the combination
// for the given dimension.
func buildOptions(dim int, opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt == nil {
			o.err = fmt.Errorf("%w: nil option", ErrOptionViolation)
			continue
		}
		opt(&o)
	}
	if o.err != nil {
		return Options{}, o.err
	}
	if o.hasSize {
		for i := 0; i < dim; i++ {
			s := o.Size.Axis(i)
			if math.IsNaN(s) || math.IsInf(s, 0) || s <= 0 {
				return Options{}, fmt.Errorf("%w: extent size must be positive and finite on axis %d (%v)", ErrOptionViolation, i, s)
			}
		}
	}
	if o.hasCenter && !o.Center.IsFinite(dim) {
		return Options{}, fmt.Errorf("%w: center must be finite", ErrOptionViolation)
	}
	return o, nil
}

// box assembles the extent region from size and center.
func (o Options) box(dim int) core.Box {
	half := o.Size.Scale(0.5)
	b := core.Box{Min: o.Center.Sub(half), Max: o.Center.Add(half)}
	if dim == core.Dim2 {
		b.Min.Z, b.Max.Z = 0, 0
	}
	return b
}
