// Package history provides the bounded FIFO series every sampled metric is
// kept in.
//
// A Series holds at most Cap values. Pushing onto a full series evicts the
// oldest value, so the series always contains the most recent samples in the
// order they arrived.
package history

import (
	"fmt"

	"github.com/rileyhilliard/tusk/internal/errors"
)

// DefaultCapacity is the number of samples kept when config does not say otherwise.
const DefaultCapacity = 100

// Series is a fixed-capacity circular buffer. It is not safe for concurrent use.
// Build one with NewSeries; the zero value has capacity 0 and discards pushes.
type Series[T any] struct {
	data  []T
	head  int
	count int
}

// NewSeries creates an empty series holding at most capacity values.
// A capacity below 1 is a configuration error.
func NewSeries[T any](capacity int) (*Series[T], error) {
	if capacity < 1 {
		return nil, errors.New(errors.ErrConfig,
			fmt.Sprintf("History capacity must be at least 1, got %d", capacity),
			"Set history.capacity to a positive number in config.yaml")
	}
	return &Series[T]{data: make([]T, capacity)}, nil
}

// MustSeries is NewSeries for fixed capacities; it panics on a bad capacity.
func MustSeries[T any](capacity int) *Series[T] {
	s, err := NewSeries[T](capacity)
	if err != nil {
		panic(err)
	}
	return s
}

// Push appends v, evicting the oldest value when the series is full.
func (s *Series[T]) Push(v T) {
	if len(s.data) == 0 {
		return
	}
	s.data[s.head] = v
	s.head = (s.head + 1) % len(s.data)
	if s.count < len(s.data) {
		s.count++
	}
}

// Len returns the number of values held.
func (s *Series[T]) Len() int { return s.count }

// Cap returns the maximum number of values held.
func (s *Series[T]) Cap() int { return len(s.data) }

// Values returns a copy of all values, oldest first.
func (s *Series[T]) Values() []T {
	return s.Last(s.count)
}

// Last returns a copy of the last n values, oldest first.
// Fewer are returned when the series holds fewer than n.
func (s *Series[T]) Last(n int) []T {
	if n <= 0 || s.count == 0 {
		return nil
	}
	if n > s.count {
		n = s.count
	}

	size := len(s.data)
	start := (s.head - n + size) % size

	out := make([]T, n)
	for i := range n {
		out[i] = s.data[(start+i)%size]
	}
	return out
}

// Latest returns the newest value and true, or the zero value and false
// when the series is empty.
func (s *Series[T]) Latest() (T, bool) {
	if s.count == 0 {
		var zero T
		return zero, false
	}
	return s.data[(s.head-1+len(s.data))%len(s.data)], true
}

// At returns the i-th value counting from the oldest. It panics when i is out
// of range, like a slice index.
func (s *Series[T]) At(i int) T {
	if i < 0 || i >= s.count {
		panic(fmt.Sprintf("history: index %d out of range [0:%d]", i, s.count))
	}
	size := len(s.data)
	start := (s.head - s.count + size) % size
	return s.data[(start+i)%size]
}

// Max returns the largest value under less, or false for an empty series.
func (s *Series[T]) Max(less func(a, b T) bool) (T, bool) {
	var best T
	if s.count == 0 {
		return best, false
	}
	best = s.At(0)
	for i := 1; i < s.count; i++ {
		if v := s.At(i); less(best, v) {
			best = v
		}
	}
	return best, true
}

// Clear drops every value. Capacity is unchanged.
func (s *Series[T]) Clear() {
	clear(s.data)
	s.head = 0
	s.count = 0
}

// Float64s maps the series to float64s, oldest first, for graphing.
func Float64s[T any](s *Series[T], f func(T) float64) []float64 {
	if s == nil || s.count == 0 {
		return nil
	}
	out := make([]float64, 0, s.count)
	for i := range s.count {
		out = append(out, f(s.At(i)))
	}
	return out
}
