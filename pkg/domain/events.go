package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventDigit  EventType = "digit"
	EventAbsorb EventType = "absorb"
	EventStep   EventType = "step"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time  `json:"timestamp"`
	Type      EventType  `json:"type"`
	Engine    EngineKind `json:"engine"`
}

// DigitEvent is fired once per digit handed to the consumer.
type DigitEvent struct {
	EventBase
	Position int   `json:"position"` // 0 is the integer part
	Digit    Digit `json:"digit"`
}

// AbsorbEvent reports continued-fraction terms consumed while producing the
// last digit.
type AbsorbEvent struct {
	EventBase
	Count int `json:"count"`
	Total int `json:"total"`
}

// StepEvent reports one series spigot step.
type StepEvent struct {
	EventBase
	Step           int           `json:"step"`
	Terms          int           `json:"terms"`
	PrecisionIndex int           `json:"precision_index"`
	Stable         int           `json:"stable"`
	Duration       time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnDigit  func(context.Context, *DigitEvent)
	OnAbsorb func(context.Context, *AbsorbEvent)
	OnStep   func(context.Context, *StepEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnDigit:  chain(h.OnDigit, other.OnDigit),
		OnAbsorb: chain(h.OnAbsorb, other.OnAbsorb),
		OnStep:   chain(h.OnStep, other.OnStep),
	}
}

func chain[E any](a, b func(context.Context, *E)) func(context.Context, *E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e *E) {
		a(ctx, e)
		b(ctx, e)
	}
}
