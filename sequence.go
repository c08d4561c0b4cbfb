package drainline

import (
	"slices"
	"sync"
)

// Sequence holds items in ascending order. Structural mutation takes the
// write lock; emptiness and membership queries take the read lock, so the
// frequent checks on the termination path do not serialize against each
// other.
type Sequence struct {
	mu    sync.RWMutex
	items []Item
}

// NewSequence creates an empty Sequence.
func NewSequence() *Sequence {
	return &Sequence{}
}

// InsertSorted splices item in front of the first existing element strictly
// greater than it, or appends when no such element exists. Linear scan;
// items are unique so ties cannot occur.
func (s *Sequence) InsertSorted(item Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	at := len(s.items)
	for i, existing := range s.items {
		if item < existing {
			at = i
			break
		}
	}
	s.items = slices.Insert(s.items, at, item)
}

// TakeFront removes and returns the smallest item, or reports false when
// the sequence is empty.
func (s *Sequence) TakeFront() (Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		return 0, false
	}
	it := s.items[0]
	s.items = s.items[1:]
	return it, true
}

// Contains reports whether item is currently in the sequence. Read lock
// only; not on the hot path.
func (s *Sequence) Contains(item Item) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.items, item)
}

// IsEmpty reports whether the sequence is currently empty. A snapshot, same
// caveat as SourcePool.IsEmpty.
func (s *Sequence) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items) == 0
}

// Len returns the current number of items in the sequence.
func (s *Sequence) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Snapshot returns a copy of the current contents in order.
func (s *Sequence) Snapshot() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}
