package espigot

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/espigot/internal/logging"
	"github.com/aretw0/espigot/internal/output"
	"github.com/aretw0/espigot/pkg/domain"
	"github.com/aretw0/espigot/pkg/ports"
)

// Runner writes digits of e from any ports.DigitStream to Output.
// This keeps presentation (wrapping, raw mode, pipe handling) out of the
// engines and lets tests capture the exact bytes.
type Runner struct {
	Output io.Writer
	// Raw writes everything on one line.
	Raw bool
	// Width is the wrap column in default mode; the "2." prefix counts
	// towards the first line. Zero means domain.DefaultWrapWidth.
	Width  int
	Logger *slog.Logger
}

// NewRunner creates a Runner writing to w in the default wrapped mode.
func NewRunner(w io.Writer) *Runner {
	return &Runner{Output: w, Width: domain.DefaultWrapWidth}
}

// Run writes "2." followed by precision fractional digits and a final
// newline. A closed downstream pipe ends output early and is not an error.
func (r *Runner) Run(ctx context.Context, src ports.DigitStream, precision int) error {
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	if precision < 0 {
		return domain.ErrNegativePrecision
	}
	logger := r.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	width := r.Width
	if r.Raw {
		width = 0
	} else if width == 0 {
		width = domain.DefaultWrapWidth
	}
	lw := output.NewLineWriter(r.Output, width)

	written := 0
	err := func() error {
		for d := range src.Stream(ctx) {
			if err := lw.WriteByte('0' + d); err != nil {
				return err
			}
			if written == 0 {
				if err := lw.WriteByte('.'); err != nil {
					return err
				}
			}
			if written == precision {
				return nil
			}
			written++
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		return fmt.Errorf("%s stream ended after %d digits", src.Engine(), written)
	}()
	// partial output is still valid, so it is flushed on cancellation too
	if closeErr := lw.Close(); err == nil {
		err = closeErr
	}

	if output.IsBrokenPipe(err) {
		logger.Debug("output closed by consumer", "digits", written)
		return nil
	}
	if err != nil {
		return err
	}
	logger.Debug("output complete", "engine", src.Engine(), "digits", precision)
	return nil
}
