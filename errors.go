package drainline

import "errors"

const Namespace = "drainline"

var (
	ErrInvalidConfig = errors.New(Namespace + ": invalid configuration")
	ErrRunAborted    = errors.New(
		Namespace + ": run aborted before all items were finalized",
	)
	ErrCounterMismatch = errors.New(
		Namespace + ": finalized count does not match item count",
	)
)
