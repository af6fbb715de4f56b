package cfrac

import (
	"iter"
	"math/big"

	"github.com/aretw0/espigot/internal/bigint"
	"github.com/aretw0/espigot/pkg/domain"
)

// Term returns the k-th partial quotient of the continued fraction of e.
func Term(k int) int64 {
	if k == 0 {
		return 2
	}
	if k%3 == 2 {
		return 2 * int64(k/3+1)
	}
	return 1
}

// State is the transformation (Q·x + R) / (S·x + T) plus the index K of the
// next partial quotient to absorb.
type State struct {
	Q, R, S, T *big.Int
	K          int
}

func (s State) clone() State {
	return State{
		Q: new(big.Int).Set(s.Q),
		R: new(big.Int).Set(s.R),
		S: new(big.Int).Set(s.S),
		T: new(big.Int).Set(s.T),
		K: s.K,
	}
}

// Engine is the continued-fraction digit spigot. The zero value is not
// usable; call New.
type Engine struct {
	st State

	// scratch
	a, x, y *big.Int
}

// New returns an engine positioned before the first digit.
func New() *Engine {
	return &Engine{
		st: State{
			Q: bigint.NewInt(1),
			R: bigint.NewInt(0),
			S: bigint.NewInt(0),
			T: bigint.NewInt(1),
		},
		a: new(big.Int),
		x: new(big.Int),
		y: new(big.Int),
	}
}

// State returns a deep copy of the current transformation.
func (e *Engine) State() State {
	return e.st.clone()
}

// Absorbed reports how many partial quotients have been consumed.
func (e *Engine) Absorbed() int {
	return e.st.K
}

// Absorb composes the transformation with the next partial quotient a:
// (Q, R, S, T) ← (Q·a + R, Q, S·a + T, S).
func (e *Engine) Absorb() {
	e.a.SetInt64(Term(e.st.K))
	e.st.K++

	st := &e.st
	// Q, R = Q·a + R, Q
	e.x.Mul(st.Q, e.a)
	e.x.Add(e.x, st.R)
	st.R, st.Q, e.x = st.Q, e.x, st.R
	// S, T = S·a + T, S
	e.x.Mul(st.S, e.a)
	e.x.Add(e.x, st.T)
	st.T, st.S, e.x = st.S, e.x, st.T
}

// Extract reports the next digit when it no longer depends on the unknown
// tail: floor(Q/S) and floor((Q+R)/(S+T)) must agree. Zero denominators mean
// more terms are needed.
func (e *Engine) Extract() (domain.Digit, bool) {
	st := &e.st
	if st.S.Sign() == 0 {
		return 0, false
	}
	e.y.Add(st.S, st.T)
	if e.y.Sign() == 0 {
		return 0, false
	}
	// S and S+T are non-negative, so Euclidean division is floor division.
	e.x.Add(st.Q, st.R)
	e.x.Div(e.x, e.y)
	e.y.Div(st.Q, st.S)
	if e.x.Cmp(e.y) != 0 {
		return 0, false
	}
	d, ok := bigint.Small(e.x)
	if !ok || d > 9 {
		return 0, false
	}
	return domain.Digit(d), true
}

// Produce removes the emitted digit d from the transformation by composing
// with x ↦ 10x − 10d on the left.
func (e *Engine) Produce(d domain.Digit) {
	st := &e.st
	e.a.SetInt64(10 * int64(d))

	e.x.Mul(e.a, st.S)
	st.Q.Mul(st.Q, bigint.Ten)
	st.Q.Sub(st.Q, e.x)

	e.x.Mul(e.a, st.T)
	st.R.Mul(st.R, bigint.Ten)
	st.R.Sub(st.R, e.x)
}

// Next returns the next digit, absorbing as many terms as needed.
func (e *Engine) Next() domain.Digit {
	for {
		if d, ok := e.Extract(); ok {
			e.Produce(d)
			return d
		}
		e.Absorb()
	}
}

// Take returns the next n digits.
func (e *Engine) Take(n int) []domain.Digit {
	if n <= 0 {
		return []domain.Digit{}
	}
	out := make([]domain.Digit, n)
	for i := range out {
		out[i] = e.Next()
	}
	return out
}

// All returns the infinite digit sequence continuing from the engine's
// current position. Break out of the range loop to stop.
func (e *Engine) All() iter.Seq[domain.Digit] {
	return func(yield func(domain.Digit) bool) {
		for {
			if !yield(e.Next()) {
				return
			}
		}
	}
}

// Take returns the first n digits of e, starting with the integer part 2.
func Take(n int) []domain.Digit {
	return New().Take(n)
}
