package mask_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/topograph/core"
	"github.com/katalvlaran/topograph/mask"
)

// TestNewBox_Errors rejects bad dimensions and degenerate corners.
func TestNewBox_Errors(t *testing.T) {
	_, err := mask.NewBox(5, core.V2(0, 0), core.V2(1, 1))
	assert.ErrorIs(t, err, core.ErrDimension)

	_, err = mask.NewBox(core.Dim2, core.V2(1, 0), core.V2(0, 1))
	assert.ErrorIs(t, err, core.ErrInvalidGeometry, "inverted corners")

	_, err = mask.NewBox(core.Dim3, core.V3(0, 0, 1), core.V3(1, 1, 1))
	assert.ErrorIs(t, err, core.ErrInvalidGeometry, "flat Z axis in 3-D")
}

// TestNewBall_Errors rejects non-positive, infinite and NaN radii.
func TestNewBall_Errors(t *testing.T) {
	for _, r := range []float64{0, -1, math.Inf(1), math.NaN()} {
		_, err := mask.NewBall(core.Dim2, core.V2(0, 0), r)
		assert.ErrorIs(t, err, core.ErrInvalidGeometry, "radius %v", r)
	}
	_, err := mask.NewBall(core.Dim2, core.V2(math.Inf(1), 0), 1)
	assert.ErrorIs(t, err, core.ErrInvalidGeometry, "infinite center")
	_, err = mask.NewBall(1, core.V2(0, 0), 1)
	assert.ErrorIs(t, err, core.ErrDimension)
}

// TestBox_Inside pins the closed-boundary convention.
func TestBox_Inside(t *testing.T) {
	m, err := mask.NewBox(core.Dim2, core.V2(-1, -1), core.V2(1, 1))
	require.NoError(t, err)

	assert.True(t, m.Inside(core.V2(0, 0)))
	assert.True(t, m.Inside(core.V2(1, 1)), "boundary is inside")
	assert.True(t, m.Inside(core.V2(-1, 1)), "boundary is inside")
	assert.False(t, m.Inside(core.V2(1.0001, 0)))
	assert.Equal(t, core.Dim2, m.Dim())
}

// TestBall_Inside pins the closed ball in 2-D and 3-D, including the
// rule that a 2-D ball ignores Z completely.
func TestBall_Inside(t *testing.T) {
	m2, err := mask.NewBall(core.Dim2, core.V2(1, 0), 1)
	require.NoError(t, err)
	assert.True(t, m2.Inside(core.V2(1, 0)))
	assert.True(t, m2.Inside(core.V2(2, 0)), "boundary is inside")
	assert.True(t, m2.Inside(core.V2(0, 0)))
	assert.False(t, m2.Inside(core.V2(2.001, 0)))
	assert.True(t, m2.Inside(core.V3(1, 0, 99)), "2-D ball must ignore Z")

	m3, err := mask.NewBall(core.Dim3, core.V3(0, 0, 0), 1)
	require.NoError(t, err)
	assert.True(t, m3.Inside(core.V3(0, 0, 1)))
	assert.False(t, m3.Inside(core.V3(0, 0, 1.001)), "3-D ball must test Z")
	assert.False(t, m3.Inside(core.V3(0.6, 0.6, 0.6)))
}

// TestBall_BoxTests exercises the exact subtree filters of the ball.
func TestBall_BoxTests(t *testing.T) {
	m, err := mask.NewBall(core.Dim2, core.V2(0, 0), 1)
	require.NoError(t, err)

	inner, _ := core.NewBox(core.Dim2, core.V2(-0.5, -0.5), core.V2(0.5, 0.5))
	corner, _ := core.NewBox(core.Dim2, core.V2(0.8, 0.8), core.V2(2, 2))
	far, _ := core.NewBox(core.Dim2, core.V2(2, 2), core.V2(3, 3))
	straddle, _ := core.NewBox(core.Dim2, core.V2(0.5, -0.5), core.V2(1.5, 0.5))

	assert.True(t, m.InsideBox(inner), "box within r/√2 is wholly inside")
	assert.False(t, m.InsideBox(straddle))
	assert.False(t, m.OutsideBox(straddle))
	assert.True(t, m.OutsideBox(far))
	assert.True(t, m.OutsideBox(corner),
		"nearest corner (0.8,0.8) lies outside the unit ball")
}

// TestBoundingBoxes pins the primitive boxes; combinator boxes are
// covered by the soundness property test.
func TestBoundingBoxes(t *testing.T) {
	b, err := mask.NewBall(core.Dim2, core.V2(1, 2), 0.5)
	require.NoError(t, err)
	bb := b.BoundingBox()
	assert.Equal(t, core.V2(0.5, 1.5), bb.Min)
	assert.Equal(t, core.V2(1.5, 2.5), bb.Max)
	assert.Equal(t, 0.0, bb.Min.Z, "2-D ball box must stay flat in Z")

	a, err := mask.All(core.Dim3)
	require.NoError(t, err)
	assert.False(t, a.BoundingBox().IsFinite(core.Dim3), "All is unbounded")
	assert.True(t, a.Inside(core.V3(1e12, -1e12, 0)))
	assert.False(t, a.OutsideBox(core.InfiniteBox()))
}
