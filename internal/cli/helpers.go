package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/espigot/internal/logging"
	"github.com/aretw0/espigot/internal/output"
	"github.com/aretw0/espigot/pkg/domain"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel context.CancelFunc

	sigCh chan os.Signal
	once  sync.Once
	mu    sync.Mutex
	sig   os.Signal
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// Unlike signal.NotifyContext it remembers which signal arrived.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}
	signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
	go sc.wait()
	return sc
}

func (sc *SignalContext) wait() {
	defer sc.once.Do(func() { signal.Stop(sc.sigCh) })
	select {
	case sig := <-sc.sigCh:
		sc.mu.Lock()
		sc.sig = sig
		sc.mu.Unlock()
		sc.Cancel()
	case <-sc.Done():
	}
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sig
}

// createLogger configures the application logger.
// Debug forces debug level; otherwise level comes from configuration.
func createLogger(level string, debug bool) (*slog.Logger, error) {
	if debug {
		return logging.New(slog.LevelDebug), nil
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return logging.New(lvl), nil
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnAbsorb: func(ctx context.Context, e *domain.AbsorbEvent) {
			logger.Debug("Absorb Terms", "count", e.Count, "total", e.Total)
		},
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			if e.Step%1000 == 0 {
				logger.Debug("Series Step", "step", e.Step, "terms", e.Terms,
					"precision_index", e.PrecisionIndex, "stable", e.Stable)
			}
		},
	}
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) || output.IsBrokenPipe(err)
}

// handleExecutionError maps interruptions to a clean exit.
func handleExecutionError(err error) error {
	if err == nil || isInterrupted(err) {
		return nil
	}
	return err
}

// printSystemMessage prints a standardized system message to stderr so it
// never mixes with digits on stdout.
func printSystemMessage(format string, args ...any) {
	fmt.Fprintf(os.Stderr, ">>> %s\n", fmt.Sprintf(format, args...))
}
