package dump

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/katalvlaran/topograph/core"
)

var (
	// ErrNilLayer reports a missing layer argument.
	ErrNilLayer = errors.New("dump: nil layer")
	// ErrUnknownNode reports a connection endpoint outside the layers a
	// Recorder was built for.
	ErrUnknownNode = errors.New("dump: connection references an unknown node id")
)

// Record is one generated connection resolved against layer geometry:
// the displacement points from the source element to the target
// element, wrapped to the nearest image when the target layer is
// periodic.
type Record struct {
	Connection   core.Connection
	Displacement core.Vec
}

// Recorder is a core.Sink that captures connections between two known
// layers for later CSV export. Emit is safe for concurrent use.
type Recorder struct {
	dim      int
	src, tgt map[core.NodeID]core.Vec
	wrapSize core.Vec
	periodic bool

	mu   sync.Mutex
	recs []Record
}

// NewRecorder builds a Recorder for connections from one layer to
// another. Pass the same layer twice for recurrent passes.
//
// Complexity: O(from.Len() + to.Len()) to index positions.
func NewRecorder(from, to core.Layer) (*Recorder, error) {
	if from == nil || to == nil {
		return nil, ErrNilLayer
	}
	if from.Dim() != to.Dim() {
		return nil, core.ErrDimensionMismatch
	}

	r := &Recorder{
		dim:      from.Dim(),
		src:      indexPositions(from),
		tgt:      indexPositions(to),
		periodic: to.Periodic(),
	}
	if r.periodic {
		r.wrapSize = to.Extent().Size()
	}
	return r, nil
}

func indexPositions(l core.Layer) map[core.NodeID]core.Vec {
	m := make(map[core.NodeID]core.Vec, l.Len())
	for i := 0; i < l.Len(); i++ {
		m[l.ID(i)] = l.Position(i)
	}
	return m
}

// Emit resolves c against the recorded layers and stores it. Unknown
// endpoints fail the generation pass rather than silently skewing the
// export.
func (r *Recorder) Emit(c core.Connection) error {
	sp, ok := r.src[c.Source]
	if !ok {
		return fmt.Errorf("%w: source %d", ErrUnknownNode, c.Source)
	}
	tp, ok := r.tgt[c.Target]
	if !ok {
		return fmt.Errorf("%w: target %d", ErrUnknownNode, c.Target)
	}

	d := tp.Sub(sp)
	if r.periodic {
		d = d.Wrap(r.wrapSize)
	}

	r.mu.Lock()
	r.recs = append(r.recs, Record{Connection: c, Displacement: d})
	r.mu.Unlock()
	return nil
}

// Dim returns the embedding dimension of the recorded layers.
func (r *Recorder) Dim() int { return r.dim }

// Len returns the number of captured records.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.recs)
}

// Records returns a copy of the captured records sorted by
// (Source, Target, Weight, Delay), independent of emission order.
func (r *Recorder) Records() []Record {
	r.mu.Lock()
	out := make([]Record, len(r.recs))
	copy(out, r.recs)
	r.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Connection, out[j].Connection
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		if a.Target != b.Target {
			return a.Target < b.Target
		}
		if a.Weight != b.Weight {
			return a.Weight < b.Weight
		}
		return a.Delay < b.Delay
	})
	return out
}
