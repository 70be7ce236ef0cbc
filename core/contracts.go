package core

import (
	"sort"
	"sync"
)

// Topology describes how elements are dealt across parallel workers.
// The connection generator consults it to decide which drivers a
// worker iterates and which emissions are local to it; ownership must
// therefore be a pure function of the id.
type Topology interface {
	// Workers returns the number of parallel units, at least 1.
	Workers() int
	// Owner returns the worker owning id, in [0, Workers()).
	Owner(id NodeID) int
	// IsLocal reports whether id is owned by the calling process.
	IsLocal(id NodeID) bool
}

// LocalTopology is the single-process default: one worker, everything
// local.
type LocalTopology struct{}

func (LocalTopology) Workers() int        { return 1 }
func (LocalTopology) Owner(NodeID) int    { return 0 }
func (LocalTopology) IsLocal(NodeID) bool { return true }

// RoundRobinTopology deals elements across N workers by id and marks
// the Rank-th share local. It models a multi-process run inside one
// process, which is how ownership filtering is exercised in tests.
type RoundRobinTopology struct {
	N    int // number of workers, >= 1
	Rank int // the local worker, in [0, N)
}

func (t RoundRobinTopology) Workers() int { return t.N }

func (t RoundRobinTopology) Owner(id NodeID) int {
	o := int(id) % t.N
	if o < 0 {
		o += t.N
	}
	return o
}

func (t RoundRobinTopology) IsLocal(id NodeID) bool { return t.Owner(id) == t.Rank }

// Sink receives generated connections. Emit may be called from several
// goroutines at once; implementations must synchronize internally.
// A non-nil error aborts the generation pass.
type Sink interface {
	Emit(c Connection) error
}

// Layer is a population of positioned elements. Implementations index
// elements 0..Len()-1 in a stable order; ids are global and positions
// are absolute (never wrapped).
type Layer interface {
	// Dim returns the embedding dimension, 2 or 3.
	Dim() int
	// Len returns the number of elements.
	Len() int
	// ID returns the global id of element i.
	ID(i int) NodeID
	// Position returns the absolute position of element i.
	Position(i int) Vec
	// Extent returns the region the population is embedded in.
	Extent() Box
	// Periodic reports whether opposite faces of the extent are glued.
	Periodic() bool
}

// Collector is the slice-backed Sink: every connection is appended
// under a mutex. The zero value is ready to use.
type Collector struct {
	mu    sync.Mutex
	conns []Connection
}

// Emit appends c. It never fails.
//
// Complexity: O(1) amortized.
func (c *Collector) Emit(conn Connection) error {
	c.mu.Lock()
	c.conns = append(c.conns, conn)
	c.mu.Unlock()
	return nil
}

// Len returns the number of collected connections.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.conns)
}

// Connections returns a copy of the collected connections sorted by
// (Source, Target, Weight, Delay) so that concurrent emission order
// never leaks into comparisons.
func (c *Collector) Connections() []Connection {
	c.mu.Lock()
	out := make([]Connection, len(c.conns))
	copy(out, c.conns)
	c.mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
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

// Reset discards everything collected so far.
func (c *Collector) Reset() {
	c.mu.Lock()
	c.conns = nil
	c.mu.Unlock()
}
