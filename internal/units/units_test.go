package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactors(t *testing.T) {
	tests := []struct {
		name   string
		factor uint64
		suffix string
		want   uint64
	}{
		{"byte", B{}.Factor(), B{}.Suffix(), 1},
		{"kilobyte", KB{}.Factor(), KB{}.Suffix(), 1 << 10},
		{"megabyte", MB{}.Factor(), MB{}.Suffix(), 1 << 20},
		{"gigabyte", GB{}.Factor(), GB{}.Suffix(), 1 << 30},
		{"terabyte", TB{}.Factor(), TB{}.Suffix(), 1 << 40},
		{"petabyte", PB{}.Factor(), PB{}.Suffix(), 1 << 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.factor)
			assert.NotEmpty(t, tt.suffix)
		})
	}
}

func TestNewHoldsRawBytes(t *testing.T) {
	kb := New[KB](1536)
	assert.Equal(t, uint64(1536), kb.Bytes())
	assert.Equal(t, 1.5, kb.AsF64())
	assert.Equal(t, uint64(1), kb.AsU64(), "AsU64 truncates")
}

func TestFromMultipliesByFactor(t *testing.T) {
	assert.Equal(t, New[KB](1024), From[KB](uint8(1)))
	assert.Equal(t, New[MB](3<<20), From[MB](int64(3)))
	assert.Equal(t, New[GB](1<<30), From[GB](uint32(1)))
	assert.Equal(t, New[B](42), From[B](42))
}

func TestFromFoldsNegatives(t *testing.T) {
	assert.Equal(t, From[KB](1), From[KB](-1))
	assert.Equal(t, From[KB](int8(5)), From[KB](int8(-5)))
	assert.Equal(t, From[MB](2.5), From[MB](-2.5))

	// Minimum signed values have no positive counterpart in their own type.
	assert.Equal(t, uint64(128), From[B](int8(math.MinInt8)).Bytes())
	assert.Equal(t, uint64(1<<63), From[B](int64(math.MinInt64)).Bytes())
}

func TestFromFloat(t *testing.T) {
	assert.Equal(t, uint64(1536), From[KB](1.5).Bytes())
	assert.Equal(t, uint64(1536), FromFloat[KB](1.5).Bytes())
	assert.Equal(t, uint64(0), FromFloat[KB](math.NaN()).Bytes())
	assert.Equal(t, uint64(math.MaxUint64), FromFloat[KB](math.Inf(1)).Bytes())
	assert.Equal(t, uint64(math.MaxUint64), FromFloat[PB](1e30).Bytes())
}

func TestFromIntegerOverflowWraps(t *testing.T) {
	// 2^54 PB is 2^104 bytes; the product wraps to zero in uint64.
	assert.Equal(t, uint64(0), From[PB](uint64(1)<<54).Bytes())
}

func TestConversionsAreExact(t *testing.T) {
	b := New[B](5000)

	assert.Equal(t, uint64(5000), b.AsKiloByte().Bytes())
	assert.Equal(t, uint64(5000), b.AsMegaByte().AsGigaByte().AsByte().AsU64())
	assert.Equal(t, uint64(4), b.AsKiloByte().AsU64())
	assert.InDelta(t, 5000.0/1024, b.AsKiloByte().AsF64(), 1e-12)
	assert.Equal(t, New[TB](5000), Convert[TB](b))
	assert.Equal(t, uint64(5000), b.AsPetaByte().AsTeraByte().Bytes())
}

func TestKiloByteRoundTripTruncates(t *testing.T) {
	for _, b := range []uint64{0, 1, 1023, 1024, 1025, 4097, 1<<40 + 17} {
		kb := New[B](b).AsKiloByte()
		assert.Equal(t, (b/1024)*1024, kb.AsU64()*1024, "bytes=%d", b)
		assert.Equal(t, (b/1024)*1024, kb.Truncate().AsByte().AsU64(), "bytes=%d", b)
		// Without truncation the raw bytes survive the trip.
		assert.Equal(t, b, kb.AsByte().AsU64(), "bytes=%d", b)
	}
}

func TestArithmetic(t *testing.T) {
	assert.Equal(t, From[KB](uint8(3)), From[KB](uint8(1)).Add(From[KB](uint8(2))))
	assert.Equal(t, From[KB](1), From[KB](3).Sub(From[KB](2)))
	assert.Equal(t, New[B](12), New[B](3).Mul(New[B](4)))
	assert.Equal(t, New[B](1), New[B](7).Rem(New[B](3)))
	assert.Equal(t, New[B](0b0100), New[B](0b0110).And(New[B](0b1100)))
	assert.Equal(t, New[B](0b1110), New[B](0b0110).Or(New[B](0b1100)))
	assert.Equal(t, New[B](0b1010), New[B](0b0110).Xor(New[B](0b1100)))

	// Unsigned subtraction wraps.
	assert.Equal(t, uint64(math.MaxUint64), New[B](0).Sub(New[B](1)).Bytes())
}

func TestCompare(t *testing.T) {
	small, big := From[MB](1), From[MB](2)

	assert.Equal(t, -1, small.Cmp(big))
	assert.Equal(t, 1, big.Cmp(small))
	assert.Equal(t, 0, big.Cmp(From[MB](2)))
	assert.True(t, small.Less(big))
	assert.Equal(t, big, small.Max(big))
	assert.True(t, New[MB](0).IsZero())
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"default precision", From[MB](1.5).String(), "1.50MB"},
		{"zero precision", From[KB](3).Format(0), "3KB"},
		{"shortest", New[KB](1536).Format(-1), "1.5KB"},
		{"bytes", New[B](17).Format(1), "17.0B"},
		{"petabyte", From[PB](2).Format(3), "2.000PB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestHuman(t *testing.T) {
	assert.NotEmpty(t, From[MB](3).Human())
	assert.Contains(t, From[MB](3).Human(), "MB")
}

func TestParse(t *testing.T) {
	q, err := Parse[MB]("64MB")
	require.NoError(t, err)
	assert.Equal(t, From[MB](64), q)

	q, err = Parse[MB]("512KB")
	require.NoError(t, err)
	assert.Equal(t, 0.5, q.AsF64())

	_, err = Parse[MB]("lots")
	assert.Error(t, err)

	assert.Panics(t, func() { MustParse[MB]("nope") })
}

func TestRaw(t *testing.T) {
	assert.Equal(t, "1536", New[KB](1536).Raw())
	assert.Equal(t, "0", MegaByte{}.Raw())
}
