package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/espigot/internal/config"
	"github.com/aretw0/espigot/internal/presentation/tui"
)

var rootCmd = &cobra.Command{
	Use:   "espigot",
	Short: "espigot streams the digits of e, exactly",
	Long: `espigot prints Euler's number e to any number of decimal places using
integer-only spigot algorithms. Two engines are available: cfrac (continued
fraction, default) and series (parallel Taylor series).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./"+config.DefaultFile+" when present)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().String("engine", "", "Digit engine: cfrac or series")
	rootCmd.PersistentFlags().Int("workers", 0, "Series engine fan-out width (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
}

// loadConfig resolves defaults, file, environment and then any flags the
// user set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("engine") {
		cfg.Engine, _ = flags.GetString("engine")
	}
	if flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("digits") {
		cfg.Digits, _ = flags.GetInt("digits")
	}
	if flags.Changed("raw") {
		cfg.Raw, _ = flags.GetBool("raw")
	}
	if flags.Changed("width") {
		cfg.Width, _ = flags.GetInt("width")
	}
	if flags.Changed("addr") {
		cfg.Serve.Addr, _ = flags.GetString("addr")
	}
	if flags.Changed("max-digits") {
		cfg.Serve.MaxDigits, _ = flags.GetInt("max-digits")
	}
	return cfg, nil
}

func showBanner() bool {
	return tui.IsTerminal(os.Stdout)
}
