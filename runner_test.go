package espigot_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"iter"
	"strings"
	"syscall"
	"testing"

	"github.com/aretw0/espigot"
	"github.com/aretw0/espigot/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_DefaultWrapsAtSixty(t *testing.T) {
	var buf bytes.Buffer
	gen, _ := espigot.New(domain.EngineSeries)

	err := espigot.NewRunner(&buf).Run(context.Background(), gen, 60)
	require.NoError(t, err)

	assert.Equal(t,
		"2.7182818284590452353602874713526624977572470936999595749669\n67\n",
		buf.String())
}

func TestRunner_Raw(t *testing.T) {
	var buf bytes.Buffer
	gen, _ := espigot.New(domain.EngineCFrac)

	r := &espigot.Runner{Output: &buf, Raw: true, Width: 10}
	require.NoError(t, r.Run(context.Background(), gen, 60))

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.True(t, strings.HasPrefix(out, "2.71828182845904523536"))
	assert.Len(t, out, 63)
}

func TestRunner_ZeroDigits(t *testing.T) {
	var buf bytes.Buffer
	gen, _ := espigot.New("")
	require.NoError(t, espigot.NewRunner(&buf).Run(context.Background(), gen, 0))
	assert.Equal(t, "2.\n", buf.String())
}

func TestRunner_Validation(t *testing.T) {
	gen, _ := espigot.New("")

	err := (&espigot.Runner{}).Run(context.Background(), gen, 10)
	assert.Error(t, err)

	err = espigot.NewRunner(io.Discard).Run(context.Background(), gen, -1)
	assert.ErrorIs(t, err, domain.ErrNegativePrecision)
}

// pipeWriter accepts limit bytes and then behaves like a closed pipe.
type pipeWriter struct {
	limit int
	got   bytes.Buffer
	err   error
}

func (w *pipeWriter) Write(p []byte) (int, error) {
	if w.got.Len()+len(p) > w.limit {
		return 0, w.err
	}
	return w.got.Write(p)
}

func TestRunner_BrokenPipeIsSilent(t *testing.T) {
	gen, _ := espigot.New(domain.EngineCFrac)
	w := &pipeWriter{limit: 100, err: syscall.EPIPE}

	err := espigot.NewRunner(w).Run(context.Background(), gen, 20000)
	assert.NoError(t, err)
	assert.Zero(t, w.got.Len(), "the first buffered flush already hit the closed pipe")
}

func TestRunner_OtherWriteErrorsSurface(t *testing.T) {
	gen, _ := espigot.New(domain.EngineCFrac)
	boom := errors.New("disk full")
	w := &pipeWriter{limit: 0, err: boom}

	err := espigot.NewRunner(w).Run(context.Background(), gen, 20)
	assert.ErrorIs(t, err, boom)
}

func TestRunner_CancelFlushesPartialOutput(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var buf bytes.Buffer
	gen, _ := espigot.New(domain.EngineCFrac, espigot.WithLifecycleHooks(domain.LifecycleHooks{
		OnDigit: func(_ context.Context, e *domain.DigitEvent) {
			if e.Position == 5 {
				cancel()
			}
		},
	}))

	err := espigot.NewRunner(&buf).Run(ctx, gen, 100)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "2.71828\n", buf.String())
}

// repeating is a DigitStream that yields the same digit, optionally limit times.
type repeating struct {
	digit domain.Digit
	limit int
}

func (r repeating) Engine() domain.EngineKind { return "repeating" }

func (r repeating) Stream(ctx context.Context) iter.Seq[domain.Digit] {
	return func(yield func(domain.Digit) bool) {
		for i := 0; r.limit == 0 || i < r.limit; i++ {
			if !yield(r.digit) {
				return
			}
		}
	}
}

func TestRunner_AnyDigitStream(t *testing.T) {
	var buf bytes.Buffer
	r := &espigot.Runner{Output: &buf, Width: 4}
	require.NoError(t, r.Run(context.Background(), repeating{digit: 7}, 6))
	assert.Equal(t, "7.77\n7777\n", buf.String())
}

func TestRunner_ShortStreamFails(t *testing.T) {
	var buf bytes.Buffer
	err := espigot.NewRunner(&buf).Run(context.Background(), repeating{digit: 3, limit: 4}, 10)
	assert.ErrorContains(t, err, "repeating stream ended after 4 digits")
	assert.Equal(t, "3.333\n", buf.String())
}
