package espigot

import (
	"context"
	_ "embed"
	"fmt"
	"iter"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/aretw0/espigot/internal/logging"
	"github.com/aretw0/espigot/pkg/cfrac"
	"github.com/aretw0/espigot/pkg/domain"
	"github.com/aretw0/espigot/pkg/ports"
	"github.com/aretw0/espigot/pkg/series"
)

// Version is the release of this module.
//
//go:embed VERSION
var Version string

const tracerName = "github.com/aretw0/espigot"

// Generator is the high-level entry point for the espigot library.
// It hides which engine produces the digits and wires hooks, logging and
// tracing around it. A Generator holds no engine state: every call starts a
// fresh engine, so calls are independent and safe to run concurrently.
type Generator struct {
	kind    domain.EngineKind
	workers int
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	tracer  trace.Tracer
}

// Option defines a functional option for configuring the Generator.
type Option func(*Generator)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(g *Generator) {
		g.hooks = g.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the generator.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithWorkers sets the series engine's fan-out width. It has no effect on
// the continued-fraction engine.
func WithWorkers(n int) Option {
	return func(g *Generator) {
		g.workers = n
	}
}

// New creates a Generator for the named engine ("" selects the default).
func New(kind domain.EngineKind, opts ...Option) (*Generator, error) {
	k, err := domain.ParseEngineKind(string(kind))
	if err != nil {
		return nil, err
	}
	g := &Generator{
		kind:   k,
		logger: logging.NewNop(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Factory returns a ports.EngineFactory that builds Generators sharing opts.
func Factory(opts ...Option) ports.EngineFactory {
	return func(kind domain.EngineKind) (ports.Engine, error) {
		return New(kind, opts...)
	}
}

// Engine reports which engine the generator runs.
func (g *Generator) Engine() domain.EngineKind {
	return g.kind
}

func (g *Generator) seriesOpts() []series.Option {
	return []series.Option{
		series.WithWorkers(g.workers),
		series.WithLogger(g.logger),
	}
}

// Stream returns the digits of e, integer part first, from a fresh engine.
// The sequence is infinite; it ends when the consumer stops or ctx is done.
func (g *Generator) Stream(ctx context.Context) iter.Seq[domain.Digit] {
	if g.kind == domain.EngineSeries {
		return g.streamSeries(ctx)
	}
	return g.streamCFrac(ctx)
}

func (g *Generator) base(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: time.Now(), Type: t, Engine: g.kind}
}

func (g *Generator) emit(ctx context.Context, pos int, d domain.Digit) {
	if g.hooks.OnDigit != nil {
		g.hooks.OnDigit(ctx, &domain.DigitEvent{
			EventBase: g.base(domain.EventDigit),
			Position:  pos,
			Digit:     d,
		})
	}
}

func (g *Generator) streamCFrac(ctx context.Context) iter.Seq[domain.Digit] {
	return func(yield func(domain.Digit) bool) {
		eng := cfrac.New()
		for pos := 0; ctx.Err() == nil; pos++ {
			before := eng.Absorbed()
			d := eng.Next()
			if n := eng.Absorbed() - before; n > 0 && g.hooks.OnAbsorb != nil {
				g.hooks.OnAbsorb(ctx, &domain.AbsorbEvent{
					EventBase: g.base(domain.EventAbsorb),
					Count:     n,
					Total:     eng.Absorbed(),
				})
			}
			g.emit(ctx, pos, d)
			if !yield(d) {
				return
			}
		}
	}
}

func (g *Generator) streamSeries(ctx context.Context) iter.Seq[domain.Digit] {
	return func(yield func(domain.Digit) bool) {
		eng := series.New(g.seriesOpts()...)
		g.emit(ctx, 0, 2)
		if !yield(2) {
			return
		}
		for pos := 1; ; pos++ {
			for eng.Stable() < pos {
				start := time.Now()
				if err := eng.Step(ctx); err != nil {
					return
				}
				if g.hooks.OnStep != nil {
					g.hooks.OnStep(ctx, &domain.StepEvent{
						EventBase:      g.base(domain.EventStep),
						Step:           eng.Steps(),
						Terms:          eng.Terms(),
						PrecisionIndex: eng.PrecisionIndex(),
						Stable:         eng.Stable(),
						Duration:       time.Since(start),
					})
				}
			}
			d, _ := eng.Digit(pos)
			g.emit(ctx, pos, d)
			if !yield(d) {
				return
			}
		}
	}
}

// Digits returns the first n digits of e, integer part first.
func (g *Generator) Digits(ctx context.Context, n int) ([]domain.Digit, error) {
	if n < 0 {
		return nil, domain.ErrNegativePrecision
	}
	ctx, span := g.tracer.Start(ctx, "espigot.Digits", trace.WithAttributes(
		attribute.String("engine", string(g.kind)),
		attribute.Int("digits", n),
	))
	defer span.End()

	out := make([]domain.Digit, 0, n)
	if n == 0 {
		return out, nil
	}
	for d := range g.Stream(ctx) {
		out = append(out, d)
		if len(out) == n {
			return out, nil
		}
	}
	err := ctx.Err()
	span.RecordError(err)
	return nil, err
}

// Format returns "2." followed by precision fractional digits of e.
func (g *Generator) Format(ctx context.Context, precision int) (string, error) {
	if precision < 0 {
		return "", domain.ErrNegativePrecision
	}
	if g.kind == domain.EngineSeries && g.hooks.OnStep == nil && g.hooks.OnDigit == nil {
		ctx, span := g.tracer.Start(ctx, "espigot.Format", trace.WithAttributes(
			attribute.String("engine", string(g.kind)),
			attribute.Int("digits", precision),
		))
		defer span.End()
		return series.Compute(ctx, precision, g.seriesOpts()...)
	}
	digits, err := g.Digits(ctx, precision+1)
	if err != nil {
		return "", fmt.Errorf("generate %d digits: %w", precision, err)
	}
	return series.Format(digits), nil
}

// Terms returns the first n partial quotients of the continued fraction of e.
func Terms(n int) []int64 {
	if n <= 0 {
		return []int64{}
	}
	out := make([]int64, n)
	for k := range out {
		out[k] = cfrac.Term(k)
	}
	return out
}

// VersionString returns Version without surrounding whitespace.
func VersionString() string {
	return strings.TrimSpace(Version)
}
