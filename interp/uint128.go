package interp

import (
	"math/bits"

	"github.com/holiman/uint256"
)

// 128-bit kernels. Values are (lo, hi) word pairs in two's complement.
// Division and remainder widen into 256-bit via uint256 so the full
// quotient is available before truncating back to the stored width.

func mulU128(a, b uint64) (lo, hi uint64) {
	hi, lo = bits.Mul64(a, b)
	return lo, hi
}

func mulS128(a, b int64) (lo, hi uint64) {
	hi, lo = bits.Mul64(uint64(a), uint64(b))
	if a < 0 {
		hi -= uint64(b)
	}
	if b < 0 {
		hi -= uint64(a)
	}
	return lo, hi
}

// zext128 zero-extends a 128-bit value into a 256-bit word.
func zext128(lo, hi uint64) *uint256.Int {
	return &uint256.Int{lo, hi, 0, 0}
}

// sext128 sign-extends a 128-bit two's complement value into a 256-bit word.
func sext128(lo, hi uint64) *uint256.Int {
	ext := uint64(0)
	if hi>>63 != 0 {
		ext = ^uint64(0)
	}
	return &uint256.Int{lo, hi, ext, ext}
}

// sext64 sign-extends a 64-bit value into a 256-bit word.
func sext64(v int64) *uint256.Int {
	return sext128(uint64(v), uint64(v>>63))
}

func divS128(aLo, aHi, bLo, bHi uint64) (lo, hi uint64) {
	q := new(uint256.Int).SDiv(sext128(aLo, aHi), sext128(bLo, bHi))
	return q[0], q[1]
}

func remS128(aLo, aHi, bLo, bHi uint64) (lo, hi uint64) {
	r := new(uint256.Int).SMod(sext128(aLo, aHi), sext128(bLo, bHi))
	return r[0], r[1]
}

func divU128(aLo, aHi, bLo, bHi uint64) (lo, hi uint64) {
	q := new(uint256.Int).Div(zext128(aLo, aHi), zext128(bLo, bHi))
	return q[0], q[1]
}

func remU128(aLo, aHi, bLo, bHi uint64) (lo, hi uint64) {
	r := new(uint256.Int).Mod(zext128(aLo, aHi), zext128(bLo, bHi))
	return r[0], r[1]
}

// shrU128 is a logical right shift of a 128-bit value by up to 127 bits.
func shrU128(lo, hi uint64, n uint) (uint64, uint64) {
	switch {
	case n == 0:
		return lo, hi
	case n < 64:
		return lo>>n | hi<<(64-n), hi >> n
	default:
		return hi >> (n - 64), 0
	}
}
