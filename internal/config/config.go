// Package config loads and validates the Mastrena service configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Brewing   BrewingConfig   `yaml:"brewing"`
	Storage   StorageConfig   `yaml:"storage"`
	Analytics AnalyticsConfig `yaml:"analytics"`
	Notify    NotifyConfig    `yaml:"notify"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// Duration wraps time.Duration so YAML values like "5m" or "30s" parse.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string   `yaml:"addr"`
	ReadTimeout     Duration `yaml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
}

// BrewingConfig holds the accepted physical ranges and the defaults used when
// a request omits a parameter. Bounds are configuration, not hardcoded physics.
type BrewingConfig struct {
	Temperature Range   `yaml:"temperature"`
	Pressure    Range   `yaml:"pressure"`
	TimeSeconds Range   `yaml:"time_seconds"`
	Defaults    Default `yaml:"defaults"`
}

// Range is an inclusive [Min, Max] parameter bound.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Contains reports whether v lies within the inclusive range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Default holds parameter values substituted for absent request inputs.
type Default struct {
	Temperature float64 `yaml:"temperature"`
	Pressure    float64 `yaml:"pressure"`
	TimeSeconds float64 `yaml:"time_seconds"`
}

// StorageConfig selects and configures the extraction record backend.
type StorageConfig struct {
	Backend string `yaml:"backend"` // "memory" or "sqlite"
	Path    string `yaml:"path"`    // sqlite database path
}

// AnalyticsConfig controls periodic trend computation and alerting.
type AnalyticsConfig struct {
	Enabled       bool     `yaml:"enabled"`
	TrendInterval Duration `yaml:"trend_interval"`
	SessionWindow int      `yaml:"session_window"` // records considered for session alerts
}

// NotifyConfig configures alert delivery targets. Empty values disable a target.
type NotifyConfig struct {
	SlackWebhookURL string `yaml:"slack_webhook_url"`
	NATSURL         string `yaml:"nats_url"`
	NATSSubject     string `yaml:"nats_subject"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	// Load .env if present; existing process env wins.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Note: .env file couldn't be loaded: %v\n", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	config := DefaultConfig()
	if err := yaml.Unmarshal([]byte(expandedData), config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks bound ordering and backend selection.
func (c *Config) Validate() error {
	for _, b := range []struct {
		name string
		r    Range
	}{
		{"brewing.temperature", c.Brewing.Temperature},
		{"brewing.pressure", c.Brewing.Pressure},
		{"brewing.time_seconds", c.Brewing.TimeSeconds},
	} {
		if b.r.Min >= b.r.Max {
			return fmt.Errorf("%s: min (%v) must be below max (%v)", b.name, b.r.Min, b.r.Max)
		}
	}

	if !c.Brewing.Temperature.Contains(c.Brewing.Defaults.Temperature) {
		return fmt.Errorf("brewing.defaults.temperature %v outside configured range", c.Brewing.Defaults.Temperature)
	}
	if !c.Brewing.Pressure.Contains(c.Brewing.Defaults.Pressure) {
		return fmt.Errorf("brewing.defaults.pressure %v outside configured range", c.Brewing.Defaults.Pressure)
	}
	if !c.Brewing.TimeSeconds.Contains(c.Brewing.Defaults.TimeSeconds) {
		return fmt.Errorf("brewing.defaults.time_seconds %v outside configured range", c.Brewing.Defaults.TimeSeconds)
	}

	switch c.Storage.Backend {
	case "memory":
	case "sqlite":
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("storage.backend must be \"memory\" or \"sqlite\", got %q", c.Storage.Backend)
	}

	if c.Analytics.Enabled && c.Analytics.TrendInterval <= 0 {
		return fmt.Errorf("analytics.trend_interval must be positive when analytics is enabled")
	}

	return nil
}
