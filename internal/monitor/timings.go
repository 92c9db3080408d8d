package monitor

import (
	"time"

	"github.com/rileyhilliard/tusk/internal/history"
)

// Timings records how long each part of the loop takes, for the debug tab.
type Timings struct {
	Refresh *history.Series[time.Duration] // reading the source
	Draw    *history.Series[time.Duration] // rendering a frame
	Event   *history.Series[time.Duration] // handling a key
	Real    *history.Series[time.Duration] // wall time between ticks
}

// NewTimings allocates timing series that each keep capacity samples.
func NewTimings(capacity int) (*Timings, error) {
	series := make([]*history.Series[time.Duration], 4)
	for i := range series {
		s, err := history.NewSeries[time.Duration](capacity)
		if err != nil {
			return nil, err
		}
		series[i] = s
	}
	return &Timings{
		Refresh: series[0],
		Draw:    series[1],
		Event:   series[2],
		Real:    series[3],
	}, nil
}

// millis converts a duration series to milliseconds for graphing.
func millis(s *history.Series[time.Duration]) []float64 {
	return history.Float64s(s, func(d time.Duration) float64 {
		return float64(d) / float64(time.Millisecond)
	})
}
