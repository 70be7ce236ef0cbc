package layer_test

import (
	"fmt"

	"github.com/katalvlaran/topograph/core"
	"github.com/katalvlaran/topograph/layer"
)

// ExampleNewGrid2 lays a 3×2 lattice over a 3×2 region so every cell
// is the unit square, then walks the row-major order.
func ExampleNewGrid2() {
	g, err := layer.NewGrid2(0, 3, 2,
		layer.WithExtent(core.V2(3, 2)),
		layer.WithCenter(core.V2(1.5, 1)),
	)
	if err != nil {
		fmt.Println("build:", err)
		return
	}

	for i := 0; i < g.Len(); i++ {
		p := g.Position(i)
		fmt.Printf("id %d at (%.1f, %.1f)\n", g.ID(i), p.X, p.Y)
	}

	// Output:
	// id 0 at (0.5, 0.5)
	// id 1 at (1.5, 0.5)
	// id 2 at (2.5, 0.5)
	// id 3 at (0.5, 1.5)
	// id 4 at (1.5, 1.5)
	// id 5 at (2.5, 1.5)
}

// ExampleNewFree derives the extent from the data.
func ExampleNewFree() {
	l, err := layer.NewFree(core.Dim2, 100, []core.Vec{
		core.V2(0, 0),
		core.V2(4, 0),
		core.V2(2, 3),
	})
	if err != nil {
		fmt.Println("build:", err)
		return
	}

	ext := l.Extent()
	fmt.Printf("%d elements, first id %d\n", l.Len(), l.ID(0))
	fmt.Printf("extent (%.1f, %.1f) .. (%.1f, %.1f)\n", ext.Min.X, ext.Min.Y, ext.Max.X, ext.Max.Y)

	// Output:
	// 3 elements, first id 100
	// extent (0.0, 0.0) .. (4.0, 3.0)
}
