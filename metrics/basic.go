package metrics

import (
	"sync"
	"sync/atomic"
)

// BasicProvider is a simple in-memory implementation of Provider.
// It is concurrency-safe and suitable for tests and lightweight apps.
// Instruments are created on demand by name and reused for the same name.
// Instrument options are advisory and stored for introspection.
type BasicProvider struct {
	mu       sync.RWMutex
	counters map[string]*BasicCounter
	gauges   map[string]*BasicGauge
	meta     map[string]InstrumentConfig
}

// NewBasicProvider constructs a new BasicProvider.
func NewBasicProvider() *BasicProvider {
	return &BasicProvider{
		counters: make(map[string]*BasicCounter),
		gauges:   make(map[string]*BasicGauge),
		meta:     make(map[string]InstrumentConfig),
	}
}

// applyOptions builds InstrumentConfig from options.
func applyOptions(opts []InstrumentOption) InstrumentConfig {
	var cfg InstrumentConfig
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	return cfg
}

// Counter returns the monotonic counter for name, creating it once.
func (p *BasicProvider) Counter(name string, opts ...InstrumentOption) Counter {
	p.mu.RLock()
	c, ok := p.counters[name]
	p.mu.RUnlock()
	if ok {
		return c
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	// re-check after acquiring write lock
	if c, ok = p.counters[name]; ok {
		return c
	}
	p.meta[name] = applyOptions(opts)
	c = &BasicCounter{}
	p.counters[name] = c
	return c
}

// Gauge returns the gauge for name, creating it once.
func (p *BasicProvider) Gauge(name string, opts ...InstrumentOption) Gauge {
	p.mu.RLock()
	g, ok := p.gauges[name]
	p.mu.RUnlock()
	if ok {
		return g
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if g, ok = p.gauges[name]; ok {
		return g
	}
	p.meta[name] = applyOptions(opts)
	g = &BasicGauge{}
	p.gauges[name] = g
	return g
}

// Meta returns the stored metadata for an instrument name, if any.
func (p *BasicProvider) Meta(name string) (InstrumentConfig, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	cfg, ok := p.meta[name]
	return cfg, ok
}

// BasicCounter is an atomic monotonic counter.
type BasicCounter struct {
	v atomic.Int64
}

// Add increments the counter by n.
func (c *BasicCounter) Add(n int64) { c.v.Add(n) }

// Value returns the current count.
func (c *BasicCounter) Value() int64 { return c.v.Load() }

// BasicGauge is an atomic last-value gauge.
type BasicGauge struct {
	v atomic.Int64
}

// Set records v as the current value.
func (g *BasicGauge) Set(v int64) { g.v.Store(v) }

// Value returns the last recorded value.
func (g *BasicGauge) Value() int64 { return g.v.Load() }
