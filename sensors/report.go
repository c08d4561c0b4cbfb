package sensors

import (
	"cmp"
	"slices"
	"time"
)

// Report summarizes one aggregation batch.
type Report struct {
	// Lowest and Highest hold up to TopK readings, coldest-first and
	// warmest-first respectively.
	Lowest  []Reading
	Highest []Reading

	// Swing is the largest absolute value difference between two readings
	// taken within SwingWindow of each other. Nil when no two readings of
	// the batch fall within the window.
	Swing *Swing

	// Count is the batch size the report was computed over.
	Count int
}

// Swing is a pair of readings and the absolute value difference between them.
type Swing struct {
	From, To time.Time
	Delta    int64
}

// buildReport computes the order statistics for one batch.
func buildReport(batch []Reading, topK int, window time.Duration) Report {
	lowest, highest := topExtremes(batch, topK)

	byTime := slices.Clone(batch)
	slices.SortFunc(byTime, func(a, b Reading) int { return a.At.Compare(b.At) })

	return Report{
		Lowest:  lowest,
		Highest: highest,
		Swing:   largestSwing(byTime, window),
		Count:   len(batch),
	}
}

// topExtremes returns up to k coldest readings (coldest first) and up to k
// warmest readings (warmest first).
func topExtremes(batch []Reading, k int) (lowest, highest []Reading) {
	byValue := slices.Clone(batch)
	slices.SortFunc(byValue, func(a, b Reading) int { return cmp.Compare(a.Value, b.Value) })

	n := min(k, len(byValue))
	lowest = slices.Clone(byValue[:n])

	highest = make([]Reading, 0, n)
	for i := len(byValue) - 1; i >= len(byValue)-n; i-- {
		highest = append(highest, byValue[i])
	}
	return lowest, highest
}

// largestSwing scans timestamp-ordered readings pairwise, cutting each inner
// scan off once the window is exceeded. Quadratic in the worst case, linear
// when the window is small relative to the batch span.
func largestSwing(byTime []Reading, window time.Duration) *Swing {
	var best *Swing

	for i, start := range byTime {
		for _, end := range byTime[i+1:] {
			if end.At.Sub(start.At) > window {
				break
			}

			delta := end.Value - start.Value
			if delta < 0 {
				delta = -delta
			}
			if best == nil || delta > best.Delta {
				best = &Swing{From: start.At, To: end.At, Delta: delta}
			}
		}
	}

	return best
}
