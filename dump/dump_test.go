package dump_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/topograph/connect"
	"github.com/katalvlaran/topograph/core"
	"github.com/katalvlaran/topograph/dump"
	"github.com/katalvlaran/topograph/field"
	"github.com/katalvlaran/topograph/layer"
	"github.com/katalvlaran/topograph/mask"
)

func TestNodes_Grid2(t *testing.T) {
	g, err := layer.NewGrid2(0, 2, 2)
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, dump.Nodes(&sb, g))

	want := "id,x,y\n" +
		"0,-0.25,-0.25\n" +
		"1,0.25,-0.25\n" +
		"2,-0.25,0.25\n" +
		"3,0.25,0.25\n"
	assert.Equal(t, want, sb.String())
}

func TestNodes_Grid3(t *testing.T) {
	g, err := layer.NewGrid3(7, 1, 1, 2)
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, dump.Nodes(&sb, g))

	want := "id,x,y,z\n" +
		"7,0,0,-0.25\n" +
		"8,0,0,0.25\n"
	assert.Equal(t, want, sb.String())
}

func TestNodes_NilLayer(t *testing.T) {
	var sb strings.Builder
	assert.ErrorIs(t, dump.Nodes(&sb, nil), dump.ErrNilLayer)
	assert.Empty(t, sb.String())
}

func TestConnections_Golden(t *testing.T) {
	recs := []dump.Record{
		{
			Connection:   core.Connection{Source: 1, Target: 2, Weight: 0.5, Delay: 1.5},
			Displacement: core.V2(0.25, -1),
		},
		{
			Connection:   core.Connection{Source: 3, Target: 4, Weight: 2, Delay: 1},
			Displacement: core.V2(-0.5, 0),
		},
	}

	var sb strings.Builder
	require.NoError(t, dump.Connections(&sb, core.Dim2, recs))
	want := "source,target,weight,delay,dx,dy\n" +
		"1,2,0.5,1.5,0.25,-1\n" +
		"3,4,2,1,-0.5,0\n"
	assert.Equal(t, want, sb.String())

	sb.Reset()
	recs3 := []dump.Record{
		{
			Connection:   core.Connection{Source: 1, Target: 2, Weight: 0.5, Delay: 1.5},
			Displacement: core.V3(0.25, -1, 0.125),
		},
	}
	require.NoError(t, dump.Connections(&sb, core.Dim3, recs3))
	want3 := "source,target,weight,delay,dx,dy,dz\n" +
		"1,2,0.5,1.5,0.25,-1,0.125\n"
	assert.Equal(t, want3, sb.String())
}

func TestConnections_EmptyStillWritesHeader(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, dump.Connections(&sb, core.Dim2, nil))
	assert.Equal(t, "source,target,weight,delay,dx,dy\n", sb.String())
}

func TestConnections_BadDim(t *testing.T) {
	var sb strings.Builder
	assert.ErrorIs(t, dump.Connections(&sb, 5, nil), core.ErrDimension)
}

func TestNewRecorder_Validation(t *testing.T) {
	flat, err := layer.NewGrid2(0, 2, 2)
	require.NoError(t, err)
	cube, err := layer.NewGrid3(100, 2, 2, 2)
	require.NoError(t, err)

	_, err = dump.NewRecorder(nil, flat)
	assert.ErrorIs(t, err, dump.ErrNilLayer)
	_, err = dump.NewRecorder(flat, nil)
	assert.ErrorIs(t, err, dump.ErrNilLayer)
	_, err = dump.NewRecorder(flat, cube)
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)
}

// TestRecorder_CapturesGeneration runs a full pass into a Recorder and
// checks the resolved displacements end to end, golden CSV included.
func TestRecorder_CapturesGeneration(t *testing.T) {
	src, err := layer.NewFree(core.Dim2, 0, []core.Vec{
		core.V2(1, 0), core.V2(0, 1), core.V2(-1, 0), core.V2(0, -1),
	})
	require.NoError(t, err)
	tgt, err := layer.NewFree(core.Dim2, 100, []core.Vec{core.V2(0, 0)})
	require.NoError(t, err)
	reach, err := mask.NewBall(core.Dim2, core.Vec{}, 1.5)
	require.NoError(t, err)
	distance, err := field.NewLinear(1, 0)
	require.NoError(t, err)

	rec, err := dump.NewRecorder(src, tgt)
	require.NoError(t, err)
	assert.Equal(t, core.Dim2, rec.Dim())

	res, err := connect.Generate(connect.Spec{
		Rule:   connect.TargetDriven,
		Mask:   reach,
		Weight: distance,
	}, src, tgt, rec)
	require.NoError(t, err)
	require.Equal(t, 4, res.Connections)
	require.Equal(t, 4, rec.Len())

	recs := rec.Records()
	wantDisp := []core.Vec{
		core.V2(-1, 0), // source 0 at (1,0) to the origin
		core.V2(0, -1),
		core.V2(1, 0),
		core.V2(0, 1),
	}
	for i, r := range recs {
		assert.Equal(t, core.NodeID(i), r.Connection.Source)
		assert.Equal(t, core.NodeID(100), r.Connection.Target)
		assert.Equal(t, 1.0, r.Connection.Weight, "unit distance, unit weight")
		assert.Equal(t, wantDisp[i], r.Displacement)
	}

	var sb strings.Builder
	require.NoError(t, dump.Connections(&sb, rec.Dim(), recs))
	want := "source,target,weight,delay,dx,dy\n" +
		"0,100,1,1,-1,0\n" +
		"1,100,1,1,0,-1\n" +
		"2,100,1,1,1,0\n" +
		"3,100,1,1,0,1\n"
	assert.Equal(t, want, sb.String())
}

// TestRecorder_PeriodicWrap pins the displacement convention: measured
// source→target, wrapped by the target layer's extent.
func TestRecorder_PeriodicWrap(t *testing.T) {
	ext := layer.WithExtent(core.V2(1, 1))
	ctr := layer.WithCenter(core.V2(0.5, 0.5))
	src, err := layer.NewFree(core.Dim2, 0, []core.Vec{core.V2(0.875, 0.5)}, ext, ctr, layer.WithPeriodic())
	require.NoError(t, err)
	tgt, err := layer.NewFree(core.Dim2, 10, []core.Vec{core.V2(0.125, 0.5)}, ext, ctr, layer.WithPeriodic())
	require.NoError(t, err)

	rec, err := dump.NewRecorder(src, tgt)
	require.NoError(t, err)

	_, err = connect.Generate(connect.Spec{Rule: connect.TargetDriven}, src, tgt, rec)
	require.NoError(t, err)

	recs := rec.Records()
	require.Len(t, recs, 1)
	assert.Equal(t, core.V2(0.25, 0), recs[0].Displacement,
		"crossing the glued face is shorter than going through the middle")
}

func TestRecorder_UnknownNode(t *testing.T) {
	l, err := layer.NewGrid2(0, 2, 2)
	require.NoError(t, err)
	rec, err := dump.NewRecorder(l, l)
	require.NoError(t, err)

	err = rec.Emit(core.Connection{Source: 999, Target: 0})
	assert.ErrorIs(t, err, dump.ErrUnknownNode)
	err = rec.Emit(core.Connection{Source: 0, Target: 999})
	assert.ErrorIs(t, err, dump.ErrUnknownNode)
	assert.Zero(t, rec.Len(), "failed emissions are not recorded")
}
