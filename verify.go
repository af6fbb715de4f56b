package espigot

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/aretw0/espigot/pkg/domain"
	"github.com/aretw0/espigot/pkg/ports"
)

// Report is the outcome of Verify.
type Report struct {
	Precision int    `json:"precision"`
	Match     bool   `json:"match"`
	Mismatch  int    `json:"mismatch"` // 1-based fractional position, 0 when Match
	Series    string `json:"series"`
	CFrac     string `json:"cfrac"`
}

// Verify computes precision fractional digits with both engines, in
// parallel, and compares them digit by digit.
func Verify(ctx context.Context, precision int, opts ...Option) (Report, error) {
	if precision < 0 {
		return Report{}, domain.ErrNegativePrecision
	}
	ser, err := New(domain.EngineSeries, opts...)
	if err != nil {
		return Report{}, err
	}
	cf, err := New(domain.EngineCFrac, opts...)
	if err != nil {
		return Report{}, err
	}
	return Compare(ctx, precision, ser, cf)
}

// Compare renders precision digits with ser and cf concurrently and reports
// the first fractional position where they differ.
func Compare(ctx context.Context, precision int, ser, cf ports.PrecisionEngine) (Report, error) {
	if precision < 0 {
		return Report{}, domain.ErrNegativePrecision
	}

	rep := Report{Precision: precision}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := ser.Format(gctx, precision)
		rep.Series = s
		return err
	})
	g.Go(func() error {
		s, err := cf.Format(gctx, precision)
		rep.CFrac = s
		return err
	})
	if err := g.Wait(); err != nil {
		return Report{}, fmt.Errorf("verify: %w", err)
	}

	rep.Match = rep.Series == rep.CFrac
	if !rep.Match {
		rep.Mismatch = firstDifference(rep.Series, rep.CFrac)
	}
	return rep, nil
}

// firstDifference returns the 1-based fractional position where a and b
// first differ, counting a length difference as a mismatch after the
// shorter one.
func firstDifference(a, b string) int {
	n := min(len(a), len(b))
	for i := 2; i < n; i++ {
		if a[i] != b[i] {
			return i - 1
		}
	}
	return max(n-1, 1)
}
