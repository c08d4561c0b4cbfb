package metrics

// NoopProvider returns no-op instruments. The default provider.
// All methods are safe for concurrent use and perform no work.
type NoopProvider struct{}

// NewNoopProvider constructs a Provider that discards all metrics.
func NewNoopProvider() NoopProvider { return NoopProvider{} }

func (NoopProvider) Counter(_ string, _ ...InstrumentOption) Counter { return noopCounter{} }

func (NoopProvider) Gauge(_ string, _ ...InstrumentOption) Gauge { return noopGauge{} }

type noopCounter struct{}

func (noopCounter) Add(_ int64) {}

type noopGauge struct{}

func (noopGauge) Set(_ int64) {}
