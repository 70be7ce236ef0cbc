package connect

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/topograph/core"
	"github.com/katalvlaran/topograph/ntree"
)

// gatherCheckEvery is how many elements a gather share scans between
// context checks.
const gatherCheckEvery = 1 << 10

// GatherPositions snapshots a layer's (id, index, position) triples the
// way a distributed pass would: each of the workers contributes the
// elements whose owner maps to it, the shares are concatenated and
// sorted by id, and the snapshot is immutable from then on. Entry.Index
// keeps the element's ordinal in the layer, which is what discrete
// parameter fields key on.
//
// The snapshot is identical for every worker count; only the work
// distribution changes.
//
// Complexity: O(workers·n) scan plus the O(n log n) sort.
func GatherPositions(ctx context.Context, l core.Layer, topo core.Topology, workers int) ([]ntree.Entry, error) {
	if l == nil {
		return nil, ErrNilLayer
	}
	if topo == nil {
		topo = core.LocalTopology{}
	}
	if workers < 1 {
		workers = 1
	}

	n := l.Len()
	shares := make([][]ntree.Entry, workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			var local []ntree.Entry
			for i := 0; i < n; i++ {
				if i%gatherCheckEvery == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				id := l.ID(i)
				if topo.Owner(id)%workers != w {
					continue
				}
				local = append(local, ntree.Entry{ID: id, Index: i, Pos: l.Position(i)})
			}
			shares[w] = local
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]ntree.Entry, 0, n)
	for _, s := range shares {
		out = append(out, s...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
