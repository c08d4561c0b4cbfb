package drainline

import "sync"

// SourcePool is the unordered collection of items not yet transferred into
// the Sequence. It is populated once and only ever shrinks. Safe for
// concurrent use; a single mutex guards the whole structure.
type SourcePool struct {
	mu    sync.Mutex
	items []Item
}

// NewSourcePool creates a pool holding the given items. The slice is owned
// by the pool afterwards.
func NewSourcePool(items []Item) *SourcePool {
	return &SourcePool{items: items}
}

// TryTake removes and returns an arbitrary item, or reports false when the
// pool is empty. Order among remaining items is irrelevant, so it takes the
// last element to avoid shifting.
func (p *SourcePool) TryTake() (Item, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := len(p.items)
	if n == 0 {
		return 0, false
	}
	it := p.items[n-1]
	p.items = p.items[:n-1]
	return it, true
}

// IsEmpty reports whether the pool is currently empty. This is a snapshot:
// the pool may change immediately after the lock is released.
func (p *SourcePool) IsEmpty() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items) == 0
}

// Len returns the current number of items in the pool.
func (p *SourcePool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items)
}
