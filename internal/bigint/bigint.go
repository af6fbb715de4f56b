// Package bigint holds the small amount of glue both digit engines share on
// top of math/big.
package bigint

import (
	"math"
	"math/big"
)

// Ten is read-only. Never pass it as a receiver.
var Ten = big.NewInt(10)

// NewInt is a shorthand for big.NewInt that reads better next to the
// engines' recurrence formulas.
func NewInt(x int64) *big.Int {
	return big.NewInt(x)
}

// Small converts a quotient that is expected to be tiny (a digit, or a digit
// sum before normalization) into a uint32. It reports false when x is
// negative or does not fit.
func Small(x *big.Int) (uint32, bool) {
	if x.Sign() < 0 || !x.IsUint64() {
		return 0, false
	}
	v := x.Uint64()
	if v > math.MaxUint32 {
		return 0, false
	}
	return uint32(v), true
}

// Digits returns the number of decimal digits of n. Digits(0) is 1.
func Digits(n int) int {
	if n < 0 {
		n = -n
	}
	d := 1
	for n >= 10 {
		n /= 10
		d++
	}
	return d
}
