package connect

import (
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/topograph/core"
	"github.com/katalvlaran/topograph/sampler"
)

// SamplerCache reuses one sampler table across passes that sample the
// same pool with the same kernel weights. A pass consults it only when
// the weights cannot vary per driver (maskless, driver-invariant
// kernel); reuse requires the pool instance and the whole weight
// vector to match, so a resized pool or a different kernel rebuilds
// instead of serving a stale table.
//
// The zero value is ready to use and safe for concurrent passes.
type SamplerCache struct {
	mu      sync.Mutex
	pool    core.Layer
	weights []float64
	table   sampler.Sampler
	hits    int
	misses  int
}

// NewSamplerCache returns an empty cache.
func NewSamplerCache() *SamplerCache { return &SamplerCache{} }

// fetch returns the cached table when the pool identity and weight
// vector match what was stored; otherwise it builds a fresh table,
// stores it and returns it.
func (c *SamplerCache) fetch(pool core.Layer, weights []float64, build sampler.Builder) (sampler.Sampler, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pool == pool && floats.Equal(c.weights, weights) {
		c.hits++
		return c.table, nil
	}

	t, err := build(weights)
	if err != nil {
		return nil, err
	}
	own := make([]float64, len(weights))
	copy(own, weights)
	c.pool, c.weights, c.table = pool, own, t
	c.misses++
	return t, nil
}

// Stats returns how often fetch served a cached table versus built one.
func (c *SamplerCache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
