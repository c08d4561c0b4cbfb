package drainline

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avosk/drainline/metrics"
)

// collectFinalized returns an observer option plus an accessor for the
// items it recorded.
func collectFinalized() (Option, func() map[Item]int) {
	var (
		mu   sync.Mutex
		seen = make(map[Item]int)
	)
	opt := WithFinalizeObserver(func(it Item) {
		mu.Lock()
		seen[it]++
		mu.Unlock()
	})
	return opt, func() map[Item]int {
		mu.Lock()
		defer mu.Unlock()
		return seen
	}
}

func TestRunner_Run(t *testing.T) {
	tests := []struct {
		name    string
		items   uint
		workers uint
	}{
		{name: "nothing to drain", items: 0, workers: 4},
		{name: "single item single worker", items: 1, workers: 1},
		{name: "sequential drain", items: 100, workers: 1},
		{name: "contended drain", items: 100, workers: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			observe, finalizedItems := collectFinalized()

			r, err := New(
				WithItemCount(tt.items),
				WithWorkerCount(tt.workers),
				WithSeed(42),
				observe,
			)
			require.NoError(t, err)

			sum, err := r.Run(context.Background())
			require.NoError(t, err)
			require.Equal(t, Summary{Items: uint64(tt.items), Finalized: uint64(tt.items)}, sum)

			// No loss, no duplication: the finalized multiset is exactly 1..N.
			seen := finalizedItems()
			require.Len(t, seen, int(tt.items))
			for i := uint(1); i <= tt.items; i++ {
				require.Equal(t, 1, seen[Item(i)], "item %d finalized %d times", i, seen[Item(i)])
			}
		})
	}
}

func TestRunner_Stress(t *testing.T) {
	// Scheduling-dependent behavior: repeat the contended scenario many
	// times; every run must finalize every item.
	const runs = 50

	r, err := New(WithItemCount(100), WithWorkerCount(8))
	require.NoError(t, err)

	for i := 0; i < runs; i++ {
		sum, err := r.Run(context.Background())
		require.NoError(t, err, "run %d", i)
		require.Equal(t, uint64(100), sum.Finalized, "run %d", i)
	}
}

func TestRunner_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, err := New(WithItemCount(100), WithWorkerCount(4))
	require.NoError(t, err)

	sum, err := r.Run(ctx)
	require.ErrorIs(t, err, ErrRunAborted)
	require.EqualValues(t, 100, sum.Items)
	require.Zero(t, sum.Finalized, "an aborted run must report how little was finalized")
}

func TestRunner_CancelMidRunStillReturns(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var once sync.Once
	observe := WithFinalizeObserver(func(Item) { once.Do(cancel) })

	r, err := New(WithItemCount(200), WithWorkerCount(8), observe)
	require.NoError(t, err)

	// Workers only honor cancellation on the retry path, so the drain may
	// still complete; either way Run must return promptly and the summary
	// must carry the partial count.
	sum, err := r.Run(ctx)
	require.LessOrEqual(t, sum.Finalized, uint64(200))
	if err != nil {
		require.ErrorIs(t, err, ErrRunAborted)
	} else {
		require.EqualValues(t, 200, sum.Finalized)
	}
}

func TestRunner_Reusable(t *testing.T) {
	r, err := New(WithItemCount(10), WithWorkerCount(2), WithSeed(7))
	require.NoError(t, err)

	first, err := r.Run(context.Background())
	require.NoError(t, err)

	second, err := r.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, first, second, "consecutive runs must be independent and identical in outcome")
}

func TestRunner_Metrics(t *testing.T) {
	provider := metrics.NewBasicProvider()

	r, err := New(
		WithItemCount(50),
		WithWorkerCount(4),
		WithMetrics(provider),
	)
	require.NoError(t, err)

	_, err = r.Run(context.Background())
	require.NoError(t, err)

	transfers, _ := provider.Counter("drainline_transfers_total").(*metrics.BasicCounter)
	finalizes, _ := provider.Counter("drainline_finalizes_total").(*metrics.BasicCounter)
	require.EqualValues(t, 50, transfers.Value())
	require.EqualValues(t, 50, finalizes.Value())
}

func TestNew_Defaults(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	require.EqualValues(t, 0, r.config.ItemCount)
	require.EqualValues(t, 4, r.config.WorkerCount)
	require.NotNil(t, r.config.Metrics)

	sum, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, Summary{}, sum)
}
