package drainline

import (
	"context"
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"github.com/ygrebnov/errorc"

	"github.com/avosk/drainline/metrics"
)

// Summary reports the outcome of a run.
type Summary struct {
	// Items is the configured item count.
	Items uint64
	// Finalized is the number of items the workers finalized.
	Finalized uint64
}

// Runner seeds the source pool, spawns the workers and joins them. Runners
// are safe to reuse: every Run call builds fresh containers and a fresh
// counter, so consecutive runs are independent.
type Runner struct {
	config *config
}

// New creates a Runner using functional options.
func New(opts ...Option) (*Runner, error) {
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

	return &Runner{config: &cfg}, nil
}

// Run drains ItemCount items with WorkerCount workers and returns the final
// tally.
//
// Semantics:
//   - Blocks until every worker has exited.
//   - A correct run returns Summary{N, N} and a nil error.
//   - Context cancellation makes workers exit on their next retry, never
//     mid-step; the run then fails with ErrRunAborted. A context that is
//     already done fails fast the same way, without starting workers.
//   - A finalized count differing from ItemCount after a clean run is a
//     protocol bug, reported as ErrCounterMismatch.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	cfg := r.config

	// A context that is already done aborts before any worker starts.
	if err := ctx.Err(); err != nil {
		return Summary{Items: uint64(cfg.ItemCount)}, errorc.With(
			ErrRunAborted,
			errorc.String("cause", err.Error()),
		)
	}

	pool := NewSourcePool(r.seedItems())
	seq := NewSequence()

	var finalized atomic.Uint64

	transfers := cfg.Metrics.Counter("drainline_transfers_total",
		metrics.WithDescription("items moved from the source pool into the sequence"))
	finalizes := cfg.Metrics.Counter("drainline_finalizes_total",
		metrics.WithDescription("items removed from the sequence front and counted done"))
	spins := cfg.Metrics.Counter("drainline_spins_total",
		metrics.WithDescription("empty-target retries across all workers"))
	seqLen := cfg.Metrics.Gauge("drainline_sequence_length",
		metrics.WithDescription("sequence length sampled after each insert"))

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)

	for i := uint(0); i < cfg.WorkerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			w := &worker{
				pool:       pool,
				seq:        seq,
				finalized:  &finalized,
				onFinalize: cfg.OnFinalize,
				transfers:  transfers,
				finalizes:  finalizes,
				spins:      spins,
				seqLen:     seqLen,
			}
			if err := w.run(ctx); err != nil {
				errOnce.Do(func() { firstErr = err })
			}
		}()
	}

	wg.Wait()

	sum := Summary{Items: uint64(cfg.ItemCount), Finalized: finalized.Load()}

	if firstErr != nil {
		return sum, errorc.With(
			ErrRunAborted,
			errorc.String("cause", firstErr.Error()),
			errorc.String("finalized", itoa(sum.Finalized)),
		)
	}

	if sum.Finalized != sum.Items {
		return sum, errorc.With(
			ErrCounterMismatch,
			errorc.String("expected", itoa(sum.Items)),
			errorc.String("finalized", itoa(sum.Finalized)),
		)
	}

	return sum, nil
}

// seedItems builds 1..ItemCount in a uniformly random order.
func (r *Runner) seedItems() []Item {
	items := make([]Item, r.config.ItemCount)
	for i := range items {
		items[i] = Item(i + 1)
	}

	swap := func(i, j int) { items[i], items[j] = items[j], items[i] }
	if r.config.rng != nil {
		r.config.rng.Shuffle(len(items), swap)
	} else {
		rand.Shuffle(len(items), swap)
	}

	return items
}
