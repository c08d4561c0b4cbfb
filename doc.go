// Package drainline drains a fixed pool of unordered work items through a
// globally ordered sequence using symmetric workers that detect termination
// without a coordinator.
//
// Model
// Items 1..N start in an unordered SourcePool. Each of W workers alternates
// between two roles: transfer (move one item from the pool into the sorted
// Sequence) and finalize (remove the smallest item from the Sequence and
// count it done). A worker exits only after observing its own target
// container empty and then the complementary container empty as well; when
// all workers have exited, exactly N items have been finalized.
//
// Constructors
//   - New(opts ...Option): assembles a Runner from functional options.
//
// Defaults
// Unless overridden, a new Runner uses:
//   - ItemCount: 0 (nothing to drain; Run returns immediately)
//   - WorkerCount: 4
//   - Metrics: no-op provider
//
// Coordination
// Workers share no channels and exchange no messages. The SourcePool is
// guarded by a mutex, the Sequence by a reader/writer lock, and the
// completion counter is a lone atomic. Locks are held for single container
// operations only; a worker never holds two locks at once.
package drainline
