// Package sensors simulates a set of periodic temperature sensors feeding a
// single aggregator over a multi-producer/single-consumer channel. The
// aggregator batches readings and periodically emits a Report with the
// top-k coldest and warmest readings and the largest value swing observed
// within a bounded time window.
//
// This simulation is independent of the drainline core: it shares no state
// and no protocol with it, and it runs until its context ends rather than
// detecting termination.
package sensors

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/ygrebnov/errorc"

	"github.com/avosk/drainline/metrics"
)

const Namespace = "sensors"

var ErrInvalidConfig = errors.New(Namespace + ": invalid configuration")

// Reading is a single timestamped sensor measurement.
type Reading struct {
	Value int64
	At    time.Time
}

// config holds Simulator configuration.
type config struct {
	// SensorCount is the number of producer goroutines.
	// Default: 8.
	SensorCount uint

	// Interval is the delay between consecutive readings of one sensor.
	// Default: 240ms (one minute compressed 250x).
	Interval time.Duration

	// ReportEvery is the period between reports.
	// Default: 14.4s (one hour compressed 250x).
	ReportEvery time.Duration

	// SwingWindow bounds the timestamp distance between the two readings of
	// a swing. Default: 2.4s (ten minutes compressed 250x).
	SwingWindow time.Duration

	// TopK is how many coldest/warmest readings a report carries.
	// Default: 5.
	TopK int

	// MinValue and MaxValue bound the uniformly random reading values.
	// Defaults: -100 and 70.
	MinValue, MaxValue int64

	// QueueSize is the reading channel buffer. Producers are expected to
	// never wait on the aggregator; size the buffer accordingly.
	// Default: 1024.
	QueueSize uint

	// Metrics receives reading/report counts and batch sizes.
	// Default: metrics.NoopProvider.
	Metrics metrics.Provider
}

func defaultConfig() config {
	return config{
		SensorCount: 8,
		Interval:    240 * time.Millisecond,
		ReportEvery: 14400 * time.Millisecond,
		SwingWindow: 2400 * time.Millisecond,
		TopK:        5,
		MinValue:    -100,
		MaxValue:    70,
		QueueSize:   1024,
		Metrics:     metrics.NewNoopProvider(),
	}
}

func validateConfig(cfg *config) error {
	if cfg.MinValue > cfg.MaxValue {
		return errorc.With(ErrInvalidConfig, errorc.String("", "value range is inverted"))
	}
	return nil
}

// Option configures a Simulator. Options return an error on invalid input.
type Option func(*config) error

// WithSensorCount sets the number of producer goroutines (must be > 0).
func WithSensorCount(n uint) Option {
	return func(cfg *config) error {
		if n == 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithSensorCount requires n > 0"))
		}
		cfg.SensorCount = n
		return nil
	}
}

// WithInterval sets the delay between consecutive readings of one sensor.
func WithInterval(d time.Duration) Option {
	return func(cfg *config) error {
		if d <= 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithInterval requires d > 0"))
		}
		cfg.Interval = d
		return nil
	}
}

// WithReportEvery sets the period between reports.
func WithReportEvery(d time.Duration) Option {
	return func(cfg *config) error {
		if d <= 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithReportEvery requires d > 0"))
		}
		cfg.ReportEvery = d
		return nil
	}
}

// WithSwingWindow bounds the timestamp distance considered for a swing.
func WithSwingWindow(d time.Duration) Option {
	return func(cfg *config) error {
		if d <= 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithSwingWindow requires d > 0"))
		}
		cfg.SwingWindow = d
		return nil
	}
}

// WithTopK sets how many coldest/warmest readings a report carries.
func WithTopK(k int) Option {
	return func(cfg *config) error {
		if k <= 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithTopK requires k > 0"))
		}
		cfg.TopK = k
		return nil
	}
}

// WithValueRange bounds the random reading values, inclusive.
func WithValueRange(min, max int64) Option {
	return func(cfg *config) error {
		cfg.MinValue, cfg.MaxValue = min, max
		return nil
	}
}

// WithQueueSize sets the reading channel buffer.
func WithQueueSize(n uint) Option {
	return func(cfg *config) error { cfg.QueueSize = n; return nil }
}

// WithMetrics sets the metrics provider used to instrument the simulation.
func WithMetrics(p metrics.Provider) Option {
	return func(cfg *config) error {
		if p == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithMetrics requires a non-nil provider"))
		}
		cfg.Metrics = p
		return nil
	}
}

// Simulator owns the producer goroutines and the aggregator.
type Simulator struct {
	config  *config
	reports chan Report
}

// New creates a Simulator using functional options.
func New(opts ...Option) (*Simulator, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &Simulator{
		config:  &cfg,
		reports: make(chan Report, 8),
	}, nil
}

// Reports returns the channel reports are delivered on. Reports are dropped
// when nobody is receiving and the buffer is full; the aggregator never
// blocks on a slow consumer. The channel is closed when Run returns.
func (s *Simulator) Reports() <-chan Report { return s.reports }

// Run starts the sensors and the aggregator and blocks until ctx ends.
// The simulation has no termination of its own; cancelling ctx is the only
// way to stop it, and doing so is a normal shutdown, not an error.
func (s *Simulator) Run(ctx context.Context) error {
	cfg := s.config

	readings := make(chan Reading, cfg.QueueSize)

	produced := cfg.Metrics.Counter("sensors_readings_total",
		metrics.WithDescription("readings produced by all sensors"))
	reported := cfg.Metrics.Counter("sensors_reports_total",
		metrics.WithDescription("reports emitted by the aggregator"))
	batchSize := cfg.Metrics.Gauge("sensors_batch_size",
		metrics.WithDescription("readings aggregated into the last report"))

	var wg sync.WaitGroup
	for i := uint(0); i < cfg.SensorCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.sense(ctx, readings, produced)
		}()
	}

	s.aggregate(ctx, readings, reported, batchSize)

	wg.Wait()
	close(s.reports)
	return nil
}

// sense emits one reading immediately and then one per interval until ctx
// ends. The send is non-blocking: a full queue drops the reading rather
// than delaying the sensor.
func (s *Simulator) sense(ctx context.Context, out chan<- Reading, produced metrics.Counter) {
	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case out <- s.read():
			produced.Add(1)
		default:
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// read produces a uniformly random reading within the configured range.
func (s *Simulator) read() Reading {
	span := uint64(s.config.MaxValue - s.config.MinValue + 1)
	return Reading{
		Value: s.config.MinValue + int64(rand.Uint64N(span)),
		At:    time.Now(),
	}
}

// aggregate is the single consumer: it accumulates readings and emits a
// report per ReportEvery period over whatever arrived since the last one.
func (s *Simulator) aggregate(ctx context.Context, in <-chan Reading, reported metrics.Counter, batchSize metrics.Gauge) {
	ticker := time.NewTicker(s.config.ReportEvery)
	defer ticker.Stop()

	var batch []Reading

	for {
		select {
		case <-ctx.Done():
			return
		case r := <-in:
			batch = append(batch, r)
		case <-ticker.C:
			rep := buildReport(batch, s.config.TopK, s.config.SwingWindow)
			batchSize.Set(int64(len(batch)))
			batch = nil

			select {
			case s.reports <- rep:
				reported.Add(1)
			default:
				// nobody listening; drop rather than stall the aggregator
			}
		}
	}
}
