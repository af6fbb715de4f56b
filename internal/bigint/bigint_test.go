package bigint

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSmall(t *testing.T) {
	t.Run("Fits", func(t *testing.T) {
		v, ok := Small(big.NewInt(16))
		assert.True(t, ok)
		assert.Equal(t, uint32(16), v)
	})

	t.Run("Negative", func(t *testing.T) {
		_, ok := Small(big.NewInt(-1))
		assert.False(t, ok)
	})

	t.Run("Too Large", func(t *testing.T) {
		x := new(big.Int).Lsh(big.NewInt(1), 40)
		_, ok := Small(x)
		assert.False(t, ok)
	})
}

func TestDigits(t *testing.T) {
	cases := map[int]int{0: 1, 9: 1, 10: 2, 99: 2, 100: 3, 1141: 4, -42: 2}
	for n, want := range cases {
		assert.Equal(t, want, Digits(n), "Digits(%d)", n)
	}
}
