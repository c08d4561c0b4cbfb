package drainline

// Item is an opaque work item identifier. Items are unique, totally ordered
// and immutable; they only ever move between containers, never change.
type Item uint64
