package layer_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/topograph/core"
	"github.com/katalvlaran/topograph/layer"
)

func TestNewFree_Validation(t *testing.T) {
	pts := []core.Vec{core.V2(0, 0)}

	_, err := layer.NewFree(1, 0, pts)
	assert.ErrorIs(t, err, core.ErrDimension)

	_, err = layer.NewFree(core.Dim2, 0, nil)
	assert.ErrorIs(t, err, layer.ErrNoPositions)

	_, err = layer.NewFree(core.Dim2, 0, []core.Vec{core.V2(math.NaN(), 0)})
	assert.ErrorIs(t, err, core.ErrInvalidGeometry)

	_, err = layer.NewFree(core.Dim2, 0, pts, nil)
	assert.ErrorIs(t, err, layer.ErrOptionViolation)

	_, err = layer.NewFree(core.Dim2, 0, pts, layer.WithCenter(core.V2(1, 1)))
	assert.ErrorIs(t, err, layer.ErrOptionViolation, "center without extent has no meaning")

	_, err = layer.NewFree(core.Dim2, 0, pts, layer.WithPeriodic())
	assert.ErrorIs(t, err, layer.ErrOptionViolation, "periodicity without extent has no period")

	_, err = layer.NewFree(core.Dim2, 0, pts, layer.WithExtent(core.V2(-1, 1)))
	assert.ErrorIs(t, err, layer.ErrOptionViolation)

	_, err = layer.NewFree(core.Dim2, 0, pts, layer.WithExtent(core.V2(1, 1)), layer.WithCenter(core.V2(math.Inf(1), 0)))
	assert.ErrorIs(t, err, layer.ErrOptionViolation)

	_, err = layer.NewFree(core.Dim2, 0, []core.Vec{core.V2(5, 5)},
		layer.WithExtent(core.V2(2, 2)))
	assert.ErrorIs(t, err, layer.ErrOutsideExtent)
}

func TestNewFree_DerivedExtent(t *testing.T) {
	l, err := layer.NewFree(core.Dim2, 0, []core.Vec{
		core.V2(0, 0), core.V2(2, 1), core.V2(1, 0.5),
	})
	require.NoError(t, err)

	assert.Equal(t, core.V2(0, 0), l.Extent().Min)
	assert.Equal(t, core.V2(2, 1), l.Extent().Max)
	assert.False(t, l.Periodic())

	// A degenerate axis is padded so the box keeps positive size.
	line, err := layer.NewFree(core.Dim2, 0, []core.Vec{core.V2(1, 0), core.V2(1, 2)})
	require.NoError(t, err)
	assert.Equal(t, core.V2(0.5, 0), line.Extent().Min)
	assert.Equal(t, core.V2(1.5, 2), line.Extent().Max)

	point, err := layer.NewFree(core.Dim2, 0, []core.Vec{core.V2(1, 1)})
	require.NoError(t, err)
	assert.Equal(t, core.V2(0.5, 0.5), point.Extent().Min)
	assert.Equal(t, core.V2(1.5, 1.5), point.Extent().Max)
}

func TestNewFree_ExplicitExtent(t *testing.T) {
	pts := []core.Vec{core.V2(0, 0), core.V2(2, 1)}
	l, err := layer.NewFree(core.Dim2, 100, pts,
		layer.WithExtent(core.V2(6, 4)),
		layer.WithCenter(core.V2(1, 1)),
		layer.WithPeriodic(),
	)
	require.NoError(t, err)

	assert.Equal(t, core.V2(-2, -1), l.Extent().Min)
	assert.Equal(t, core.V2(4, 3), l.Extent().Max)
	assert.True(t, l.Periodic())

	assert.Equal(t, core.Dim2, l.Dim())
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, core.NodeID(100), l.ID(0))
	assert.Equal(t, core.NodeID(101), l.ID(1))
	assert.Equal(t, core.V2(2, 1), l.Position(1))
}

func TestNewFree_CopiesAndNormalizes(t *testing.T) {
	pts := []core.Vec{{X: 1, Y: 2, Z: 9}}
	l, err := layer.NewFree(core.Dim2, 0, pts)
	require.NoError(t, err)

	assert.Equal(t, 0.0, l.Position(0).Z, "2-D layers keep Z at zero")

	pts[0].X = -100
	assert.Equal(t, 1.0, l.Position(0).X, "the layer owns a copy of the positions")
}

func TestScatter(t *testing.T) {
	ext, err := core.NewBox(core.Dim2, core.V2(-1, 2), core.V2(3, 4))
	require.NoError(t, err)

	pts := layer.Scatter(core.Dim2, 500, ext, core.NewSeededRand(7))
	require.Len(t, pts, 500)
	for _, p := range pts {
		require.True(t, ext.Contains(core.Dim2, p), "scattered point %v escapes the box", p)
		require.Equal(t, 0.0, p.Z)
	}

	again := layer.Scatter(core.Dim2, 500, ext, core.NewSeededRand(7))
	assert.Equal(t, pts, again, "same seed, same scatter")
}
