package drainline

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSourcePool_TryTake(t *testing.T) {
	p := NewSourcePool([]Item{3, 1, 2})

	require.False(t, p.IsEmpty())
	require.Equal(t, 3, p.Len())

	seen := make(map[Item]bool)
	for range 3 {
		it, ok := p.TryTake()
		require.True(t, ok)
		require.False(t, seen[it], "item %d taken twice", it)
		seen[it] = true
	}

	_, ok := p.TryTake()
	require.False(t, ok, "drained pool must not yield an item")
	require.True(t, p.IsEmpty())
}

func TestSourcePool_ConcurrentTakes(t *testing.T) {
	const n = 1000

	items := make([]Item, n)
	for i := range items {
		items[i] = Item(i + 1)
	}
	p := NewSourcePool(items)

	var (
		mu   sync.Mutex
		seen = make(map[Item]int, n)
		wg   sync.WaitGroup
	)

	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				it, ok := p.TryTake()
				if !ok {
					return
				}
				mu.Lock()
				seen[it]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, seen, n, "every item must be taken exactly once")
	for it, count := range seen {
		require.Equal(t, 1, count, "item %d taken %d times", it, count)
	}
	require.True(t, p.IsEmpty())
}
