package domain

import "errors"

// ErrUnknownEngine is returned when an engine name is not one of Engines().
var ErrUnknownEngine = errors.New("unknown engine")

// ErrNegativePrecision is returned when a negative digit count is requested.
var ErrNegativePrecision = errors.New("precision must not be negative")

// ErrPrecisionTooLarge is returned by adapters that cap the digit count.
var ErrPrecisionTooLarge = errors.New("precision exceeds the configured maximum")
