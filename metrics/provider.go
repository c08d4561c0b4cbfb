// Package metrics defines the minimal instrument surface the drainline
// runner records into, plus a no-op provider and a basic in-memory one.
package metrics

// Provider constructs instruments used to record metrics.
// Implementations must be safe for concurrent use.
//
// Keep this interface minimal; prefer adding separate optional interfaces
// over widening this one.
type Provider interface {
	Counter(name string, opts ...InstrumentOption) Counter
	Gauge(name string, opts ...InstrumentOption) Gauge
}

// Counter records monotonic counts.
// Methods must be safe for concurrent use.
type Counter interface {
	Add(n int64)
}

// Gauge records a last-observed value (e.g., current sequence length).
// Methods must be safe for concurrent use.
type Gauge interface {
	Set(v int64)
}

// InstrumentConfig carries optional instrument metadata. Advisory only.
type InstrumentConfig struct {
	Description string
	Unit        string
}

// InstrumentOption mutates InstrumentConfig.
type InstrumentOption func(*InstrumentConfig)

// WithDescription sets an advisory description for the instrument.
func WithDescription(desc string) InstrumentOption {
	return func(c *InstrumentConfig) { c.Description = desc }
}

// WithUnit sets an advisory unit for the instrument (e.g., "1", "items").
func WithUnit(unit string) InstrumentOption {
	return func(c *InstrumentConfig) { c.Unit = unit }
}
