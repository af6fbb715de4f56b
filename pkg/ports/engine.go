package ports

import (
	"context"
	"iter"

	"github.com/aretw0/espigot/pkg/domain"
)

// DigitStream produces the digits of e lazily, integer part first. The
// sequence ends only when the consumer stops or ctx is done.
type DigitStream interface {
	Engine() domain.EngineKind
	Stream(ctx context.Context) iter.Seq[domain.Digit]
}

// PrecisionEngine renders e to a fixed number of fractional digits.
type PrecisionEngine interface {
	Engine() domain.EngineKind
	Format(ctx context.Context, precision int) (string, error)
}

// Engine is a generator usable both as a stream and at fixed precision.
type Engine interface {
	DigitStream
	PrecisionEngine
}

// EngineFactory builds an Engine of the given kind. Adapters hold one so they
// never construct engines themselves.
type EngineFactory func(kind domain.EngineKind) (Engine, error)
