package domain

import (
	"fmt"
	"strings"
)

// Digit is one decimal digit of e.
type Digit = uint8

// EngineKind names a digit generation strategy.
type EngineKind string

const (
	// EngineCFrac streams digits from the continued fraction of e.
	EngineCFrac EngineKind = "cfrac"
	// EngineSeries sums the Taylor series of e with a growing term pool.
	EngineSeries EngineKind = "series"
)

// DefaultEngine is used when no engine is configured.
const DefaultEngine = EngineCFrac

// DefaultWrapWidth is the line width of the default (non-raw) output mode.
const DefaultWrapWidth = 60

// Engines lists every supported kind, in display order.
func Engines() []EngineKind {
	return []EngineKind{EngineCFrac, EngineSeries}
}

// ParseEngineKind resolves a user supplied engine name. The empty string
// selects DefaultEngine.
func ParseEngineKind(s string) (EngineKind, error) {
	switch EngineKind(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultEngine, nil
	case EngineCFrac:
		return EngineCFrac, nil
	case EngineSeries:
		return EngineSeries, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEngine, s)
}
