package series

import (
	"math/big"

	"github.com/aretw0/espigot/internal/bigint"
)

// Fraction is one series term, Numerator/Denominator, expressed in units of
// the current last decimal place. After NextDigit, 0 <= Numerator < Denominator.
type Fraction struct {
	Numerator   *big.Int
	Denominator *big.Int

	quo, prod big.Int
}

// NewFraction copies n and d into a new term.
func NewFraction(n, d *big.Int) *Fraction {
	return &Fraction{
		Numerator:   new(big.Int).Set(n),
		Denominator: new(big.Int).Set(d),
	}
}

// NextDigit shifts the term one decimal place and returns its contribution
// to that place. The first call on a fresh term can exceed 9.
func (f *Fraction) NextDigit() uint32 {
	f.Numerator.Mul(f.Numerator, bigint.Ten)
	f.quo.Quo(f.Numerator, f.Denominator)
	d, ok := bigint.Small(&f.quo)
	if !ok {
		panic("series: term contribution out of range")
	}
	switch d {
	case 0:
	case 1:
		f.Numerator.Sub(f.Numerator, f.Denominator)
	default:
		f.prod.Mul(&f.quo, f.Denominator)
		f.Numerator.Sub(f.Numerator, &f.prod)
	}
	return d
}
