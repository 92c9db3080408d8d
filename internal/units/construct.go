package units

import (
	"math"

	"github.com/c2h5oh/datasize"
	"golang.org/x/exp/constraints"

	"github.com/rileyhilliard/tusk/internal/errors"
)

// Number is any integer or floating point type.
type Number interface {
	constraints.Integer | constraints.Float
}

// twoTo64 is 2^64 as a float, the first value that does not fit a uint64.
const twoTo64 = float64(1 << 64)

// From builds a quantity from a count expressed in U (not in bytes).
//
// Negative inputs are folded to their absolute value. Integer inputs are
// multiplied by the unit factor with wrapping uint64 arithmetic; float inputs
// saturate at math.MaxUint64 and NaN becomes zero.
func From[U Unit, N Number](value N) Quantity[U] {
	var u U
	factor := u.Factor()

	var one N = 1
	if one/2 != 0 {
		return Quantity[U]{bytes: floatBytes(float64(value), factor)}
	}
	return Quantity[U]{bytes: magnitude(value) * factor}
}

// FromFloat builds a quantity from a float count expressed in U.
func FromFloat[U Unit](value float64) Quantity[U] {
	var u U
	return Quantity[U]{bytes: floatBytes(value, u.Factor())}
}

// Parse reads a human size such as "512MB" or "2GB" (1 KB = 1024 B).
func Parse[U Unit](s string) (Quantity[U], error) {
	size, err := datasize.ParseString(s)
	if err != nil {
		return Quantity[U]{}, errors.WrapWithCode(err, errors.ErrConfig,
			"'"+s+"' is not a valid size",
			"Use a value like 512KB, 64MB or 2GB")
	}
	return Quantity[U]{bytes: size.Bytes()}, nil
}

// MustParse is Parse for constants; it panics on malformed input.
func MustParse[U Unit](s string) Quantity[U] {
	q, err := Parse[U](s)
	if err != nil {
		panic(err)
	}
	return q
}

// magnitude returns |v| as a uint64 for any integer type, including the
// minimum value of signed types.
func magnitude[N Number](v N) uint64 {
	if v < 0 {
		return uint64(-(v + 1)) + 1
	}
	return uint64(v)
}

func floatBytes(v float64, factor uint64) uint64 {
	if math.IsNaN(v) {
		return 0
	}
	v = math.Abs(v) * float64(factor)
	if v >= twoTo64 {
		return math.MaxUint64
	}
	return uint64(v)
}
