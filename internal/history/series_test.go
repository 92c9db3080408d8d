package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/tusk/internal/errors"
)

func TestNewSeries(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		wantErr  bool
	}{
		{"single slot", 1, false},
		{"default", DefaultCapacity, false},
		{"zero", 0, true},
		{"negative", -3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSeries[float64](tt.capacity)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrConfig))
				assert.Nil(t, s)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.capacity, s.Cap())
			assert.Equal(t, 0, s.Len())
		})
	}
}

func TestMustSeriesPanicsOnBadCapacity(t *testing.T) {
	assert.Panics(t, func() { MustSeries[int](0) })
	assert.NotPanics(t, func() { MustSeries[int](1) })
}

func TestSeriesEvictsOldest(t *testing.T) {
	s := MustSeries[int](10)
	for i := range 15 {
		s.Push(i)
	}

	assert.Equal(t, 10, s.Len())
	assert.Equal(t, []int{5, 6, 7, 8, 9, 10, 11, 12, 13, 14}, s.Values())
}

func TestSeriesFIFO(t *testing.T) {
	s := MustSeries[string](2)
	s.Push("a")
	s.Push("b")
	s.Push("c")

	assert.Equal(t, []string{"b", "c"}, s.Values())
}

func TestSeriesLenNeverExceedsCap(t *testing.T) {
	for _, capacity := range []int{1, 2, 7, 64} {
		s := MustSeries[int](capacity)
		for i := range 3 * capacity {
			s.Push(i)
			want := min(capacity, i+1)
			require.Equal(t, want, s.Len(), "capacity=%d push=%d", capacity, i)
			// The newest value is always last.
			latest, ok := s.Latest()
			require.True(t, ok)
			require.Equal(t, i, latest)
		}
	}
}

func TestSeriesLast(t *testing.T) {
	s := MustSeries[int](5)
	for i := 1; i <= 7; i++ {
		s.Push(i)
	}

	tests := []struct {
		name string
		n    int
		want []int
	}{
		{"zero", 0, nil},
		{"negative", -1, nil},
		{"two", 2, []int{6, 7}},
		{"all", 5, []int{3, 4, 5, 6, 7}},
		{"more than held", 99, []int{3, 4, 5, 6, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Last(tt.n))
		})
	}
}

func TestSeriesValuesIsACopy(t *testing.T) {
	s := MustSeries[int](3)
	s.Push(1)
	s.Push(2)

	vals := s.Values()
	vals[0] = 100

	assert.Equal(t, []int{1, 2}, s.Values())
}

func TestSeriesEmpty(t *testing.T) {
	s := MustSeries[time.Duration](4)

	assert.Nil(t, s.Values())
	_, ok := s.Latest()
	assert.False(t, ok)
	_, ok = s.Max(func(a, b time.Duration) bool { return a < b })
	assert.False(t, ok)
	assert.Panics(t, func() { s.At(0) })
}

func TestSeriesZeroValue(t *testing.T) {
	var s Series[int]

	assert.NotPanics(t, func() { s.Push(1) })
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, s.Cap())
	assert.Nil(t, s.Values())
	_, ok := s.Latest()
	assert.False(t, ok)
	assert.Nil(t, Float64s(&s, func(v int) float64 { return float64(v) }))
}

func TestSeriesAt(t *testing.T) {
	s := MustSeries[int](3)
	for _, v := range []int{10, 20, 30, 40} {
		s.Push(v)
	}

	assert.Equal(t, 20, s.At(0))
	assert.Equal(t, 30, s.At(1))
	assert.Equal(t, 40, s.At(2))
	assert.Panics(t, func() { s.At(3) })
	assert.Panics(t, func() { s.At(-1) })
}

func TestSeriesMax(t *testing.T) {
	s := MustSeries[float64](4)
	for _, v := range []float64{3, 9, 1, 4} {
		s.Push(v)
	}

	got, ok := s.Max(func(a, b float64) bool { return a < b })
	require.True(t, ok)
	assert.Equal(t, 9.0, got)
}

func TestSeriesClear(t *testing.T) {
	s := MustSeries[int](3)
	s.Push(1)
	s.Push(2)
	s.Clear()

	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 3, s.Cap())
	assert.Nil(t, s.Values())

	s.Push(5)
	assert.Equal(t, []int{5}, s.Values())
}

func TestFloat64s(t *testing.T) {
	s := MustSeries[time.Duration](3)
	s.Push(time.Millisecond)
	s.Push(2 * time.Millisecond)

	got := Float64s(s, func(d time.Duration) float64 { return float64(d.Microseconds()) })
	assert.Equal(t, []float64{1000, 2000}, got)

	assert.Nil(t, Float64s[int](nil, func(int) float64 { return 0 }))
}
