package dump

import (
	"io"

	"github.com/gocarina/gocsv"

	"github.com/katalvlaran/topograph/core"
)

type nodeRow2 struct {
	ID core.NodeID `csv:"id"`
	X  float64     `csv:"x"`
	Y  float64     `csv:"y"`
}

type nodeRow3 struct {
	ID core.NodeID `csv:"id"`
	X  float64     `csv:"x"`
	Y  float64     `csv:"y"`
	Z  float64     `csv:"z"`
}

type connRow2 struct {
	Source core.NodeID `csv:"source"`
	Target core.NodeID `csv:"target"`
	Weight float64     `csv:"weight"`
	Delay  float64     `csv:"delay"`
	DX     float64     `csv:"dx"`
	DY     float64     `csv:"dy"`
}

type connRow3 struct {
	Source core.NodeID `csv:"source"`
	Target core.NodeID `csv:"target"`
	Weight float64     `csv:"weight"`
	Delay  float64     `csv:"delay"`
	DX     float64     `csv:"dx"`
	DY     float64     `csv:"dy"`
	DZ     float64     `csv:"dz"`
}

// Nodes writes l's elements as CSV: a header row, then one id and
// coordinate row per element. 2-D layers get id,x,y columns, 3-D layers
// an additional z.
//
// Complexity: O(n) rows.
func Nodes(w io.Writer, l core.Layer) error {
	if l == nil {
		return ErrNilLayer
	}

	if l.Dim() == core.Dim3 {
		rows := make([]nodeRow3, l.Len())
		for i := range rows {
			p := l.Position(i)
			rows[i] = nodeRow3{ID: l.ID(i), X: p.X, Y: p.Y, Z: p.Z}
		}
		return gocsv.Marshal(rows, w)
	}

	rows := make([]nodeRow2, l.Len())
	for i := range rows {
		p := l.Position(i)
		rows[i] = nodeRow2{ID: l.ID(i), X: p.X, Y: p.Y}
	}
	return gocsv.Marshal(rows, w)
}

// Connections writes recs as CSV: source, target, weight, delay and the
// source→target displacement. dim selects the 2-D or 3-D column set; an
// empty recs slice still writes the header row.
//
// Complexity: O(n) rows.
func Connections(w io.Writer, dim int, recs []Record) error {
	if err := core.CheckDim(dim); err != nil {
		return err
	}

	if dim == core.Dim3 {
		rows := make([]connRow3, len(recs))
		for i, r := range recs {
			rows[i] = connRow3{
				Source: r.Connection.Source,
				Target: r.Connection.Target,
				Weight: r.Connection.Weight,
				Delay:  r.Connection.Delay,
				DX:     r.Displacement.X,
				DY:     r.Displacement.Y,
				DZ:     r.Displacement.Z,
			}
		}
		return gocsv.Marshal(rows, w)
	}

	rows := make([]connRow2, len(recs))
	for i, r := range recs {
		rows[i] = connRow2{
			Source: r.Connection.Source,
			Target: r.Connection.Target,
			Weight: r.Connection.Weight,
			Delay:  r.Connection.Delay,
			DX:     r.Displacement.X,
			DY:     r.Displacement.Y,
		}
	}
	return gocsv.Marshal(rows, w)
}
