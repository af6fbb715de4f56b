package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/espigot/internal/logging"
	"github.com/aretw0/espigot/pkg/domain"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = "espigot.yaml"

// Config is the resolved runtime configuration.
type Config struct {
	Engine   string `mapstructure:"engine" env:"ESPIGOT_ENGINE"`
	Digits   int    `mapstructure:"digits" env:"ESPIGOT_DIGITS"`
	Raw      bool   `mapstructure:"raw" env:"ESPIGOT_RAW"`
	Width    int    `mapstructure:"width" env:"ESPIGOT_WIDTH"`
	Workers  int    `mapstructure:"workers" env:"ESPIGOT_WORKERS"`
	LogLevel string `mapstructure:"log_level" env:"ESPIGOT_LOG_LEVEL"`

	Serve     ServeConfig     `mapstructure:"serve"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// ServeConfig configures the HTTP and MCP adapters.
type ServeConfig struct {
	Addr      string `mapstructure:"addr" env:"ESPIGOT_ADDR"`
	MaxDigits int    `mapstructure:"max_digits" env:"ESPIGOT_MAX_DIGITS"`
}

// TelemetryConfig configures OpenTelemetry export.
type TelemetryConfig struct {
	Endpoint string `mapstructure:"endpoint" env:"ESPIGOT_OTEL_ENDPOINT"`
	Enabled  bool   `mapstructure:"enabled" env:"ESPIGOT_OTEL_ENABLED"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Engine:   string(domain.DefaultEngine),
		Digits:   1000,
		Width:    domain.DefaultWrapWidth,
		LogLevel: "info",
		Serve: ServeConfig{
			Addr:      ":8080",
			MaxDigits: 100000,
		},
		Telemetry: TelemetryConfig{
			Enabled: true,
		},
	}
}

// Load resolves defaults, the YAML file at path and the environment.
// An empty path reads DefaultFile if it exists; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if err := mergeFile(&cfg, path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			err = nil
		}
		if err != nil {
			return Config{}, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("invalid config %s: %w", path, err)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, err := domain.ParseEngineKind(c.Engine); err != nil {
		return err
	}
	if c.Digits < 0 {
		return fmt.Errorf("digits: %w", domain.ErrNegativePrecision)
	}
	if !c.Raw && c.Width < 3 {
		return fmt.Errorf("width must be at least 3, got %d", c.Width)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Serve.MaxDigits <= 0 {
		return fmt.Errorf("serve.max_digits must be positive, got %d", c.Serve.MaxDigits)
	}
	if strings.TrimSpace(c.Serve.Addr) == "" {
		return errors.New("serve.addr must not be empty")
	}
	return nil
}
