package drainline

import (
	"math/rand/v2"
	"strconv"

	"github.com/ygrebnov/errorc"

	"github.com/avosk/drainline/metrics"
)

// config holds Runner configuration.
type config struct {
	// ItemCount is the total number of items seeded into the source pool.
	// Zero is valid: workers observe both containers empty and exit at once.
	// Default: 0.
	ItemCount uint

	// WorkerCount is the number of symmetric worker goroutines.
	// Must be at least 1.
	// Default: 4.
	WorkerCount uint

	// Metrics receives transfer/finalize/spin counts and sequence length.
	// Default: metrics.NoopProvider.
	Metrics metrics.Provider

	// OnFinalize, when non-nil, is invoked once per finalized item, from
	// worker goroutines. It must be safe for concurrent use and cheap.
	// Default: nil.
	OnFinalize func(Item)

	// rng shuffles the initial pool order. Nil means the shared
	// math/rand/v2 source; tests inject a seeded generator.
	rng *rand.Rand
}

// defaultConfig centralizes default values for config.
// Applied as the base by New before options run.
func defaultConfig() config {
	return config{
		ItemCount:   0,
		WorkerCount: 4,
		Metrics:     metrics.NewNoopProvider(),
	}
}

// validateConfig performs invariants checks after all options have run.
func validateConfig(cfg *config) error {
	if cfg.WorkerCount == 0 {
		return errorc.With(ErrInvalidConfig, errorc.String("", "worker count must be at least 1"))
	}
	return nil
}

// Option configures a Runner. Use New(opts...) to construct a Runner via options.
// Options return an error on invalid input instead of panicking.
type Option func(*config) error

// WithItemCount sets the total number of items to drain.
func WithItemCount(n uint) Option {
	return func(cfg *config) error { cfg.ItemCount = n; return nil }
}

// WithWorkerCount sets the number of symmetric worker goroutines (must be > 0).
func WithWorkerCount(w uint) Option {
	return func(cfg *config) error {
		if w == 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithWorkerCount requires w > 0"))
		}
		cfg.WorkerCount = w
		return nil
	}
}

// WithMetrics sets the metrics provider used to instrument the run.
func WithMetrics(p metrics.Provider) Option {
	return func(cfg *config) error {
		if p == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithMetrics requires a non-nil provider"))
		}
		cfg.Metrics = p
		return nil
	}
}

// WithFinalizeObserver registers fn to be called once per finalized item.
// fn runs on worker goroutines and must be safe for concurrent use.
func WithFinalizeObserver(fn func(Item)) Option {
	return func(cfg *config) error {
		if fn == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithFinalizeObserver requires a non-nil func"))
		}
		cfg.OnFinalize = fn
		return nil
	}
}

// WithSeed fixes the pool shuffle order for reproducible runs.
func WithSeed(seed uint64) Option {
	return func(cfg *config) error {
		cfg.rng = rand.New(rand.NewPCG(seed, seed))
		return nil
	}
}

// itoa shortens the strconv call at errorc call sites.
func itoa(n uint64) string { return strconv.FormatUint(n, 10) }
