package series

import (
	"context"
	"iter"
	"log/slog"
	"math/big"
	"runtime"
	"strings"
	"sync"

	"github.com/aretw0/espigot/internal/bigint"
	"github.com/aretw0/espigot/internal/logging"
	"github.com/aretw0/espigot/pkg/domain"
)

const (
	// pools smaller than this are summed on the calling goroutine
	parallelThreshold = 128

	// Upper bound, in units of the last place, of everything later steps can
	// still add: below one unit per pooled term, plus the pending term and
	// the untracked tail of the series.
	futureSlack = 12

	progressEvery = 1000
)

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers sets how many goroutines share the per-step term extraction.
// n <= 0 selects runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = n
	}
}

// WithLogger sets the logger used for progress reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Engine is the series spigot. It is not safe for concurrent use; the
// parallelism lives inside Step.
type Engine struct {
	i           *big.Int
	numerator   *big.Int
	denominator *big.Int

	terms   []*Fraction
	pending *Fraction

	digits    []domain.Digit
	precision int
	stable    int
	steps     int

	workers int
	logger  *slog.Logger
}

// New returns an engine holding 2.5 (the terms 1/0!, 1/1! and 1/2!), a pool
// with the terms 1/3! to 1/9! and 1/10! pending.
func New(opts ...Option) *Engine {
	e := &Engine{
		i:           bigint.NewInt(2),
		numerator:   bigint.NewInt(10),
		denominator: bigint.NewInt(2),
		digits:      []domain.Digit{2, 5},
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers <= 0 {
		e.workers = runtime.GOMAXPROCS(0)
	}

	for k := 3; k < 10; k++ {
		e.advanceFactorial()
		e.terms = append(e.terms, NewFraction(e.numerator, e.denominator))
	}
	e.advanceFactorial()
	e.pending = NewFraction(e.numerator, e.denominator)
	return e
}

func (e *Engine) advanceFactorial() {
	e.i.Add(e.i, big.NewInt(1))
	e.denominator.Mul(e.denominator, e.i)
}

// Steps reports how many steps have run.
func (e *Engine) Steps() int { return e.steps }

// Terms reports the size of the term pool.
func (e *Engine) Terms() int { return len(e.terms) }

// PrecisionIndex is the buffer index just above the most significant digit
// the last contributing step touched. It never decreases.
func (e *Engine) PrecisionIndex() int { return e.precision }

// Stable reports how many fractional digits are final: no later step can
// carry into them. It never decreases.
func (e *Engine) Stable() int { return e.stable }

// Buffer returns the digit buffer up to and including the precision index.
// The last digit may still be short of a pending carry; use Fractional for
// digits that are guaranteed final.
func (e *Engine) Buffer() []domain.Digit {
	out := make([]domain.Digit, e.precision+1)
	copy(out, e.digits)
	return out
}

// Fractional returns the first n fractional digits. It reports false when
// fewer than n digits are stable.
func (e *Engine) Fractional(n int) ([]domain.Digit, bool) {
	if n < 0 || n > e.stable {
		return nil, false
	}
	out := make([]domain.Digit, n)
	copy(out, e.digits[1:])
	return out, true
}

// Digit returns the digit at buffer position pos (0 is the integer part). It
// reports false unless the digit is stable.
func (e *Engine) Digit(pos int) (domain.Digit, bool) {
	if pos < 0 || pos > e.stable {
		return 0, false
	}
	return e.digits[pos], true
}

// Step runs one spigot step. A step is atomic: ctx is only checked before
// any term is touched.
func (e *Engine) Step(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sum := e.sumTerms()

	d := e.pending.NextDigit()
	e.numerator.Mul(e.numerator, bigint.Ten)
	if d > 0 {
		sum += uint64(d)
		e.terms = append(e.terms, e.pending)
		e.advanceFactorial()
		e.pending = NewFraction(e.numerator, e.denominator)
	}

	e.carry(sum)
	e.settle()
	e.steps++

	if e.steps%progressEvery == 0 {
		e.logger.Debug("series progress",
			"step", e.steps,
			"terms", len(e.terms),
			"stable", e.stable,
		)
	}
	return nil
}

// sumTerms advances every pooled term by one place and returns the sum of
// their contributions. Each worker owns a disjoint slice of the pool. Workers
// cannot fail and are never cancelled, so a step advances all terms or none.
func (e *Engine) sumTerms() uint64 {
	n := len(e.terms)
	if n < parallelThreshold || e.workers <= 1 {
		return sumRange(e.terms)
	}

	chunk := (n + e.workers - 1) / e.workers
	partial := make([]uint64, e.workers)

	var wg sync.WaitGroup
	for w := range e.workers {
		lo := w * chunk
		if lo >= n {
			break
		}
		hi := min(lo+chunk, n)
		wg.Go(func() {
			partial[w] = sumRange(e.terms[lo:hi])
		})
	}
	wg.Wait()

	var sum uint64
	for _, s := range partial {
		sum += s
	}
	return sum
}

func sumRange(terms []*Fraction) uint64 {
	var s uint64
	for _, t := range terms {
		s += uint64(t.NextDigit())
	}
	return s
}

// carry appends a new last place and adds sum into the buffer one decimal
// digit at a time, moving left, normalizing right to left after each digit.
func (e *Engine) carry(sum uint64) {
	e.digits = append(e.digits, 0)
	idx := len(e.digits) - 1
	touched := sum > 0
	for sum > 0 {
		e.digits[idx] += domain.Digit(sum % 10)
		sum /= 10
		for j := idx; j > 0 && e.digits[j] >= 10; j-- {
			e.digits[j-1] += e.digits[j] / 10
			e.digits[j] %= 10
		}
		idx--
	}
	if touched && idx > e.precision {
		e.precision = idx
	}
}

// settle raises the stable count. Later steps add less than
// len(terms)+futureSlack units of the last place in total, so at most one
// carry can reach position h = last - digits(bound). A digit below 9 at or
// above h absorbs that carry, which makes every digit before it final.
func (e *Engine) settle() {
	last := len(e.digits) - 1
	p := last - bigint.Digits(len(e.terms)+futureSlack)
	for p > e.stable+1 && e.digits[p] == 9 {
		p--
	}
	if p > e.stable+1 {
		e.stable = p - 1
	}
}

// All returns the digits of e from the integer part onwards, stepping the
// engine whenever the next digit is not yet stable. The sequence ends when
// the consumer stops or ctx is done.
func (e *Engine) All(ctx context.Context) iter.Seq[domain.Digit] {
	return func(yield func(domain.Digit) bool) {
		if !yield(e.digits[0]) {
			return
		}
		for pos := 1; ; pos++ {
			for e.stable < pos {
				if err := e.Step(ctx); err != nil {
					return
				}
			}
			if !yield(e.digits[pos]) {
				return
			}
		}
	}
}

// Compute returns "2." followed by precision fractional digits of e.
func Compute(ctx context.Context, precision int, opts ...Option) (string, error) {
	if precision < 0 {
		return "", domain.ErrNegativePrecision
	}
	e := New(opts...)
	for e.stable < precision {
		if err := e.Step(ctx); err != nil {
			return "", err
		}
	}
	return Format(e.digits[:precision+1]), nil
}

// Format renders digits (integer part first) as "2.718...".
func Format(digits []domain.Digit) string {
	if len(digits) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(len(digits) + 1)
	b.WriteByte('0' + digits[0])
	b.WriteByte('.')
	for _, d := range digits[1:] {
		b.WriteByte('0' + d)
	}
	return b.String()
}
