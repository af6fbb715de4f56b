package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/espigot"
	"github.com/aretw0/espigot/internal/config"
	"github.com/aretw0/espigot/pkg/domain"
)

// generatorOptions translates configuration into library options.
func generatorOptions(cfg config.Config, logger *slog.Logger, debug bool, hooks ...domain.LifecycleHooks) []espigot.Option {
	opts := []espigot.Option{
		espigot.WithLogger(logger),
		espigot.WithWorkers(cfg.Workers),
	}
	if debug {
		opts = append(opts, espigot.WithLifecycleHooks(createDebugHooks(logger)))
	}
	for _, h := range hooks {
		opts = append(opts, espigot.WithLifecycleHooks(h))
	}
	return opts
}

// createGenerator initializes a Generator with standard CLI conventions.
func createGenerator(cfg config.Config, logger *slog.Logger, debug bool, hooks ...domain.LifecycleHooks) (*espigot.Generator, error) {
	gen, err := espigot.New(domain.EngineKind(cfg.Engine), generatorOptions(cfg, logger, debug, hooks...)...)
	if err != nil {
		return nil, fmt.Errorf("error initializing generator: %w", err)
	}
	return gen, nil
}
