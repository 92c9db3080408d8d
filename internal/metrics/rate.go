package metrics

import (
	"time"

	"github.com/rileyhilliard/tusk/internal/units"
)

// MinRateInterval is the shortest elapsed time a rate is computed over.
// Anything shorter reports a rate of zero.
const MinRateInterval = time.Millisecond

// PerSecond converts a delta observed over elapsed into a per-second rate in
// the same unit.
func PerSecond[U units.Unit](delta units.Quantity[U], elapsed time.Duration) units.Quantity[U] {
	if elapsed < MinRateInterval {
		return units.Quantity[U]{}
	}
	return units.FromFloat[U](delta.AsF64() / elapsed.Seconds())
}

// CounterDelta returns cur - prev for a cumulative counter. A counter that
// went backwards (interface reset, wrap) yields zero.
func CounterDelta(prev, cur uint64) uint64 {
	if cur < prev {
		return 0
	}
	return cur - prev
}
