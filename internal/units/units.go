// Package units represents byte counts tagged with a binary unit scale.
//
// A Quantity always stores a raw number of bytes. The unit only decides how the
// value is read back (AsF64, AsU64) and displayed, so converting between units
// never loses information:
//
//	kb := units.From[units.KB](100)   // 102400 bytes
//	kb.AsMegaByte().AsF64()           // 0.09765625
//	kb.AsByte().AsU64()               // 102400
//
// Factors come from github.com/c2h5oh/datasize (1 KB = 1024 B).
package units

import (
	"github.com/c2h5oh/datasize"
)

// Unit is a byte scale marker. Implementations are zero-size types.
type Unit interface {
	// Factor is the number of bytes in one of this unit.
	Factor() uint64
	// Suffix is the short display suffix, e.g. "KB".
	Suffix() string
}

// Unit markers, 1024^k bytes each.
type (
	B  struct{}
	KB struct{}
	MB struct{}
	GB struct{}
	TB struct{}
	PB struct{}
)

func (B) Factor() uint64  { return uint64(datasize.B) }
func (KB) Factor() uint64 { return uint64(datasize.KB) }
func (MB) Factor() uint64 { return uint64(datasize.MB) }
func (GB) Factor() uint64 { return uint64(datasize.GB) }
func (TB) Factor() uint64 { return uint64(datasize.TB) }
func (PB) Factor() uint64 { return uint64(datasize.PB) }

func (B) Suffix() string  { return "B" }
func (KB) Suffix() string { return "KB" }
func (MB) Suffix() string { return "MB" }
func (GB) Suffix() string { return "GB" }
func (TB) Suffix() string { return "TB" }
func (PB) Suffix() string { return "PB" }

// Quantity is a raw byte count read in unit U.
type Quantity[U Unit] struct {
	bytes uint64
}

// Named quantities used across tusk.
type (
	Byte     = Quantity[B]
	KiloByte = Quantity[KB]
	MegaByte = Quantity[MB]
	GigaByte = Quantity[GB]
	TeraByte = Quantity[TB]
	PetaByte = Quantity[PB]
)

// New wraps a raw byte count. The count is in bytes regardless of U.
func New[U Unit](bytes uint64) Quantity[U] {
	return Quantity[U]{bytes: bytes}
}

// Factor returns the byte factor of the quantity's unit.
func (q Quantity[U]) Factor() uint64 {
	var u U
	return u.Factor()
}

// Suffix returns the display suffix of the quantity's unit.
func (q Quantity[U]) Suffix() string {
	var u U
	return u.Suffix()
}

// Bytes returns the raw byte count.
func (q Quantity[U]) Bytes() uint64 {
	return q.bytes
}

// Size returns the raw byte count as a datasize.ByteSize.
func (q Quantity[U]) Size() datasize.ByteSize {
	return datasize.ByteSize(q.bytes)
}

// AsF64 returns the value in U as a float.
func (q Quantity[U]) AsF64() float64 {
	return float64(q.bytes) / float64(q.Factor())
}

// AsU64 returns the value in U, truncated toward zero.
func (q Quantity[U]) AsU64() uint64 {
	return q.bytes / q.Factor()
}

// Truncate drops any remainder below one whole U.
func (q Quantity[U]) Truncate() Quantity[U] {
	return Quantity[U]{bytes: q.AsU64() * q.Factor()}
}

// IsZero reports whether the quantity holds no bytes.
func (q Quantity[U]) IsZero() bool {
	return q.bytes == 0
}

// Convert re-tags q with unit V. The byte count is unchanged.
func Convert[V, U Unit](q Quantity[U]) Quantity[V] {
	return Quantity[V]{bytes: q.bytes}
}

func (q Quantity[U]) AsByte() Byte         { return Byte{bytes: q.bytes} }
func (q Quantity[U]) AsKiloByte() KiloByte { return KiloByte{bytes: q.bytes} }
func (q Quantity[U]) AsMegaByte() MegaByte { return MegaByte{bytes: q.bytes} }
func (q Quantity[U]) AsGigaByte() GigaByte { return GigaByte{bytes: q.bytes} }
func (q Quantity[U]) AsTeraByte() TeraByte { return TeraByte{bytes: q.bytes} }
func (q Quantity[U]) AsPetaByte() PetaByte { return PetaByte{bytes: q.bytes} }

// Arithmetic operates on raw bytes and follows unsigned Go semantics
// (Sub and Mul wrap on overflow, Rem panics on a zero divisor).

func (q Quantity[U]) Add(o Quantity[U]) Quantity[U] { return Quantity[U]{bytes: q.bytes + o.bytes} }
func (q Quantity[U]) Sub(o Quantity[U]) Quantity[U] { return Quantity[U]{bytes: q.bytes - o.bytes} }
func (q Quantity[U]) Mul(o Quantity[U]) Quantity[U] { return Quantity[U]{bytes: q.bytes * o.bytes} }
func (q Quantity[U]) Rem(o Quantity[U]) Quantity[U] { return Quantity[U]{bytes: q.bytes % o.bytes} }
func (q Quantity[U]) And(o Quantity[U]) Quantity[U] { return Quantity[U]{bytes: q.bytes & o.bytes} }
func (q Quantity[U]) Or(o Quantity[U]) Quantity[U]  { return Quantity[U]{bytes: q.bytes | o.bytes} }
func (q Quantity[U]) Xor(o Quantity[U]) Quantity[U] { return Quantity[U]{bytes: q.bytes ^ o.bytes} }

// Cmp returns -1, 0 or +1 comparing raw byte counts.
func (q Quantity[U]) Cmp(o Quantity[U]) int {
	switch {
	case q.bytes < o.bytes:
		return -1
	case q.bytes > o.bytes:
		return 1
	default:
		return 0
	}
}

// Less reports whether q holds fewer bytes than o.
func (q Quantity[U]) Less(o Quantity[U]) bool {
	return q.bytes < o.bytes
}

// Max returns the larger of q and o.
func (q Quantity[U]) Max(o Quantity[U]) Quantity[U] {
	if o.bytes > q.bytes {
		return o
	}
	return q
}
