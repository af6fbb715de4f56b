package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/aretw0/espigot"
	httpAdapter "github.com/aretw0/espigot/internal/adapters/http"
	"github.com/aretw0/espigot/internal/config"
	"github.com/aretw0/espigot/internal/metrics"
	"github.com/aretw0/espigot/internal/presentation/tui"
	"github.com/aretw0/espigot/internal/telemetry"
	"github.com/aretw0/espigot/pkg/adapters/mcp"
)

const shutdownTimeout = 5 * time.Second

// RunOptions contains everything a command needs after flags are resolved.
type RunOptions struct {
	Config config.Config
	Debug  bool
	// Output receives digits and reports. Defaults to os.Stdout.
	Output io.Writer
	// Logger overrides the logger built from Config.LogLevel.
	Logger *slog.Logger
}

func (o RunOptions) prepare() (RunOptions, error) {
	if err := o.Config.Validate(); err != nil {
		return o, fmt.Errorf("invalid configuration: %w", err)
	}
	if o.Output == nil {
		o.Output = os.Stdout
	}
	if o.Logger == nil {
		logger, err := createLogger(o.Config.LogLevel, o.Debug)
		if err != nil {
			return o, err
		}
		o.Logger = logger
	}
	return o, nil
}

func setupTelemetry(ctx context.Context, service string, opts RunOptions) func() {
	shutdown, err := telemetry.Setup(ctx, service, opts.Config.Telemetry)
	if err != nil {
		opts.Logger.Warn("telemetry disabled", "error", err)
	}
	return func() {
		if err := shutdown(context.Background()); err != nil {
			opts.Logger.Warn("telemetry shutdown", "error", err)
		}
	}
}

// RunDigits writes Config.Digits fractional digits of e to Output.
// Interruption and a closed pipe end the run without error.
func RunDigits(ctx context.Context, opts RunOptions) error {
	opts, err := opts.prepare()
	if err != nil {
		return err
	}
	defer setupTelemetry(ctx, "espigot", opts)()

	gen, err := createGenerator(opts.Config, opts.Logger, opts.Debug)
	if err != nil {
		return err
	}

	runner := espigot.NewRunner(opts.Output)
	runner.Raw = opts.Config.Raw
	runner.Width = opts.Config.Width
	runner.Logger = opts.Logger

	opts.Logger.Debug("Digits Start", "engine", gen.Engine(), "digits", opts.Config.Digits)
	return handleExecutionError(runner.Run(ctx, gen, opts.Config.Digits))
}

// RunVerify computes Config.Digits digits with both engines and prints the
// comparison. The report is returned so callers can set the exit status.
func RunVerify(ctx context.Context, opts RunOptions) (espigot.Report, error) {
	opts, err := opts.prepare()
	if err != nil {
		return espigot.Report{}, err
	}
	defer setupTelemetry(ctx, "espigot", opts)()

	start := time.Now()
	rep, err := espigot.Verify(ctx, opts.Config.Digits, generatorOptions(opts.Config, opts.Logger, opts.Debug)...)
	if err != nil {
		return rep, err
	}
	elapsed := time.Since(start).Round(time.Millisecond)

	if rep.Match {
		fmt.Fprintf(opts.Output, "ok: series and cfrac agree on %d digits (%s)\n", rep.Precision, elapsed)
	} else {
		fmt.Fprintf(opts.Output, "MISMATCH at digit %d of %d (%s)\n", rep.Mismatch, rep.Precision, elapsed)
	}
	return rep, nil
}

// RunServe starts the HTTP API on Config.Serve.Addr until ctx is done.
func RunServe(ctx context.Context, opts RunOptions) error {
	opts, err := opts.prepare()
	if err != nil {
		return err
	}
	defer setupTelemetry(ctx, "espigot-http", opts)()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	col, err := metrics.New(reg)
	if err != nil {
		return err
	}
	handler := httpAdapter.NewHandler(httpAdapter.Options{
		MaxDigits: opts.Config.Serve.MaxDigits,
		Workers:   opts.Config.Workers,
		Hooks:     col.Hooks(),
		Gatherer:  reg,
		Logger:    opts.Logger,
	})

	ln, err := net.Listen("tcp", opts.Config.Serve.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", opts.Config.Serve.Addr, err)
	}
	if tui.IsTerminal(os.Stderr) {
		tui.PrintBanner(os.Stderr, espigot.VersionString())
	}
	return serve(ctx, ln, handler, opts.Logger)
}

func serve(ctx context.Context, ln net.Listener, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Starting espigot server", "address", ln.Addr().String())
		serverErrors <- srv.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("Start shutdown")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
			return srv.Close()
		}
		if err := <-serverErrors; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		logger.Info("Server stopped gracefully")
		return nil
	}
}

// RunMCP serves the MCP tools over stdio until the client disconnects.
func RunMCP(opts RunOptions) error {
	opts, err := opts.prepare()
	if err != nil {
		return err
	}
	srv := mcp.NewServer(opts.Config.Serve.MaxDigits, opts.Logger,
		generatorOptions(opts.Config, opts.Logger, opts.Debug)...)

	opts.Logger.Info("Starting espigot MCP Server (Stdio)")
	return srv.ServeStdio()
}
