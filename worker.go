package drainline

import (
	"context"
	"runtime"
	"sync/atomic"

	"github.com/avosk/drainline/metrics"
)

// role is a worker's current duty. Every worker starts at roleTransfer and
// toggles only after a completed step; an empty-target retry keeps the role.
type role int

const (
	roleTransfer role = iota
	roleFinalize
)

func (r role) next() role {
	if r == roleTransfer {
		return roleFinalize
	}
	return roleTransfer
}

// worker drains the shared containers until it detects termination. All
// workers are symmetric: same loop, same shared state, no identity.
type worker struct {
	pool       *SourcePool
	seq        *Sequence
	finalized  *atomic.Uint64
	onFinalize func(Item)

	transfers metrics.Counter
	finalizes metrics.Counter
	spins     metrics.Counter
	seqLen    metrics.Gauge
}

// run executes the role-alternation loop. A worker may exit only after
// observing, within one step, first its own target container empty and then
// the complementary container empty as well. Both observations are
// independent snapshots under separate locks; the check is sound because a
// worker never performs it while itself holding an item in flight.
//
// ctx is consulted only on the retry path, never mid-step, so cancellation
// cannot strand an item outside both containers.
func (w *worker) run(ctx context.Context) error {
	current := roleTransfer

	for {
		switch current {
		case roleTransfer:
			item, ok := w.pool.TryTake()
			if !ok {
				if w.seq.IsEmpty() {
					return nil
				}
				// An item is still queued or in flight; retry the same role.
				if err := w.spin(ctx); err != nil {
					return err
				}
				continue
			}
			w.seq.InsertSorted(item)
			w.transfers.Add(1)
			w.seqLen.Set(int64(w.seq.Len()))

		case roleFinalize:
			item, ok := w.seq.TakeFront()
			if !ok {
				if w.pool.IsEmpty() {
					return nil
				}
				if err := w.spin(ctx); err != nil {
					return err
				}
				continue
			}
			w.finalized.Add(1)
			w.finalizes.Add(1)
			if w.onFinalize != nil {
				w.onFinalize(item)
			}
		}

		current = current.next()
	}
}

// spin yields the processor between retries so a spinning worker does not
// starve the worker holding the in-flight item.
func (w *worker) spin(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	w.spins.Add(1)
	runtime.Gosched()
	return nil
}
