package topofile

import (
	"fmt"
	"math"

	"github.com/katalvlaran/topograph/connect"
	"github.com/katalvlaran/topograph/core"
	"github.com/katalvlaran/topograph/field"
	"github.com/katalvlaran/topograph/layer"
	"github.com/katalvlaran/topograph/mask"
)

// Pass is one resolved connection block: both layers and the generator
// spec, ready for connect.Generate.
type Pass struct {
	FromName, ToName string
	From, To         core.Layer
	Spec             connect.Spec
}

// BuildLayers constructs every declared layer. Element ids are assigned
// contiguously in declaration order: the first layer starts at 0, each
// following layer starts where the previous one ended.
func (f *File) BuildLayers() (map[string]core.Layer, error) {
	layers := make(map[string]core.Layer, len(f.Layers))
	next := core.NodeID(0)
	for i := range f.Layers {
		l, err := buildLayer(&f.Layers[i], next)
		if err != nil {
			return nil, fmt.Errorf("%w (layer %q)", err, f.Layers[i].Name)
		}
		layers[f.Layers[i].Name] = l
		next += core.NodeID(l.Len())
	}
	return layers, nil
}

// Passes resolves every connection block against built layers. All
// masks and fields are constructed here, before any generation starts,
// so a parameter error leaves no partial output behind.
func (f *File) Passes(layers map[string]core.Layer) ([]Pass, error) {
	passes := make([]Pass, 0, len(f.Connections))
	for i := range f.Connections {
		c := &f.Connections[i]
		from, ok := layers[c.From]
		if !ok {
			return nil, fmt.Errorf("%w: %q (connection %d)", ErrUnknownLayer, c.From, i)
		}
		to, ok := layers[c.To]
		if !ok {
			return nil, fmt.Errorf("%w: %q (connection %d)", ErrUnknownLayer, c.To, i)
		}
		if from.Dim() != to.Dim() {
			return nil, fmt.Errorf("%w (connection %d: %s -> %s)", core.ErrDimensionMismatch, i, c.From, c.To)
		}
		spec, err := c.spec(from.Dim())
		if err != nil {
			return nil, fmt.Errorf("%w (connection %d: %s -> %s)", err, i, c.From, c.To)
		}
		passes = append(passes, Pass{
			FromName: c.From,
			ToName:   c.To,
			From:     from,
			To:       to,
			Spec:     spec,
		})
	}
	return passes, nil
}

func buildLayer(s *LayerSpec, first core.NodeID) (core.Layer, error) {
	switch s.Kind {
	case "grid":
		dim := core.Dim2
		if s.Planes > 0 {
			dim = core.Dim3
		}
		opts, err := layerOptions(s, dim)
		if err != nil {
			return nil, err
		}
		if dim == core.Dim3 {
			return layer.NewGrid3(first, s.Cols, s.Rows, s.Planes, opts...)
		}
		return layer.NewGrid2(first, s.Cols, s.Rows, opts...)

	case "free":
		if len(s.Positions) == 0 {
			return nil, layer.ErrNoPositions
		}
		dim := len(s.Positions[0])
		if err := core.CheckDim(dim); err != nil {
			return nil, err
		}
		pos := make([]core.Vec, len(s.Positions))
		for i, row := range s.Positions {
			v, err := vec(dim, row)
			if err != nil {
				return nil, fmt.Errorf("position %d: %w", i, err)
			}
			pos[i] = v
		}
		opts, err := layerOptions(s, dim)
		if err != nil {
			return nil, err
		}
		return layer.NewFree(dim, first, pos, opts...)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, s.Kind)
}

func layerOptions(s *LayerSpec, dim int) ([]layer.Option, error) {
	var opts []layer.Option
	if len(s.Extent) > 0 {
		size, err := vec(dim, s.Extent)
		if err != nil {
			return nil, fmt.Errorf("extent: %w", err)
		}
		opts = append(opts, layer.WithExtent(size))
	}
	if len(s.Center) > 0 {
		c, err := vec(dim, s.Center)
		if err != nil {
			return nil, fmt.Errorf("center: %w", err)
		}
		opts = append(opts, layer.WithCenter(c))
	}
	if s.Periodic {
		opts = append(opts, layer.WithPeriodic())
	}
	return opts, nil
}

func vec(dim int, v []float64) (core.Vec, error) {
	if len(v) != dim {
		return core.Vec{}, fmt.Errorf("%w: got %d numbers, dimension is %d", ErrInvalidSpec, len(v), dim)
	}
	out := core.Vec{X: v[0], Y: v[1]}
	if dim == core.Dim3 {
		out.Z = v[2]
	}
	return out, nil
}

// spec resolves the block into a generator spec for layers of the given
// dimension. Autapses and multapses are allowed unless the document
// says otherwise.
func (c *ConnectionSpec) spec(dim int) (connect.Spec, error) {
	rule, err := parseRule(c.Rule)
	if err != nil {
		return connect.Spec{}, err
	}

	s := connect.Spec{
		Rule:           rule,
		N:              c.Count,
		AllowAutapses:  true,
		AllowMultapses: true,
		Synapse:        c.Synapse,
	}
	if c.Autapses != nil {
		s.AllowAutapses = *c.Autapses
	}
	if c.Multapses != nil {
		s.AllowMultapses = *c.Multapses
	}

	if c.Mask != nil {
		if s.Mask, err = buildMask(c.Mask, dim); err != nil {
			return connect.Spec{}, err
		}
	}
	if s.Kernel, err = buildField(c.Kernel); err != nil {
		return connect.Spec{}, err
	}
	if s.Weight, err = buildField(c.Weight); err != nil {
		return connect.Spec{}, err
	}
	if s.Delay, err = buildField(c.Delay); err != nil {
		return connect.Spec{}, err
	}
	return s, nil
}

func buildMask(s *MaskSpec, dim int) (mask.Mask, error) {
	var (
		m   mask.Mask
		err error
	)
	switch s.Type {
	case "ball":
		m, err = mask.NewBall(dim, core.Vec{}, s.Radius)

	case "box":
		var lo, hi core.Vec
		if lo, err = vec(dim, s.Min); err != nil {
			return nil, fmt.Errorf("min: %w", err)
		}
		if hi, err = vec(dim, s.Max); err != nil {
			return nil, fmt.Errorf("max: %w", err)
		}
		m, err = mask.NewBox(dim, lo, hi)

	case "donut":
		if !(s.Inner < s.Outer) {
			return nil, fmt.Errorf("%w: donut inner radius %v must be below outer %v",
				core.ErrInvalidGeometry, s.Inner, s.Outer)
		}
		var outer, inner mask.Mask
		if outer, err = mask.NewBall(dim, core.Vec{}, s.Outer); err != nil {
			return nil, err
		}
		if inner, err = mask.NewBall(dim, core.Vec{}, s.Inner); err != nil {
			return nil, err
		}
		m, err = mask.Difference(outer, inner)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMask, s.Type)
	}
	if err != nil {
		return nil, err
	}

	if len(s.Anchor) > 0 {
		off, verr := vec(dim, s.Anchor)
		if verr != nil {
			return nil, fmt.Errorf("anchor: %w", verr)
		}
		return mask.Anchor(m, off)
	}
	return m, nil
}

func buildField(s *FieldSpec) (field.Field, error) {
	if s == nil {
		return nil, nil
	}

	var (
		f   field.Field
		err error
	)
	switch s.Type {
	case "constant":
		f = field.Constant(s.Value)
	case "linear":
		f, err = field.NewLinear(s.A, s.C)
	case "exponential":
		f, err = field.NewExponential(s.A, s.C, s.Tau)
	case "gaussian":
		f, err = field.NewGaussian(s.C, s.P, s.Mean, s.Sigma)
	case "gaussian2d":
		f, err = field.NewGaussian2D(s.C, s.P, s.MeanX, s.MeanY, s.SigmaX, s.SigmaY, s.Rho)
	case "uniform":
		f, err = field.NewUniform(s.Min, s.Max)
	case "discrete":
		f, err = field.NewDiscrete(s.Values)
	case "combination":
		terms := make([]field.Term, len(s.Terms))
		for i := range s.Terms {
			child, cerr := buildField(&s.Terms[i].Field)
			if cerr != nil {
				return nil, fmt.Errorf("term %d: %w", i, cerr)
			}
			terms[i] = field.Term{Weight: s.Terms[i].Weight, Field: child}
		}
		f, err = field.NewCombination(terms)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, s.Type)
	}
	if err != nil {
		return nil, err
	}

	if s.ClampMin != nil || s.ClampMax != nil {
		lo, hi := math.Inf(-1), math.Inf(1)
		if s.ClampMin != nil {
			lo = *s.ClampMin
		}
		if s.ClampMax != nil {
			hi = *s.ClampMax
		}
		if f, err = field.Clamp(f, lo, hi); err != nil {
			return nil, err
		}
	}
	// The cutoff wraps last: a positive clamp_min must not resurrect
	// values beyond the declared reach.
	if s.Cutoff != 0 {
		if f, err = field.Cutoff(f, s.Cutoff); err != nil {
			return nil, err
		}
	}
	return f, nil
}
