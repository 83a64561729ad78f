package config

import "time"

// DefaultConfig returns a configuration populated with the documented defaults.
// Load unmarshals on top of this, so absent YAML sections keep these values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            "127.0.0.1:3000",
			ReadTimeout:     Duration(10 * time.Second),
			WriteTimeout:    Duration(10 * time.Second),
			ShutdownTimeout: Duration(15 * time.Second),
		},
		Brewing: BrewingConfig{
			Temperature: Range{Min: 85, Max: 100},
			Pressure:    Range{Min: 6, Max: 12},
			TimeSeconds: Range{Min: 15, Max: 40},
			Defaults: Default{
				Temperature: 93.0,
				Pressure:    9.0,
				TimeSeconds: 25,
			},
		},
		Storage: StorageConfig{
			Backend: "memory",
		},
		Analytics: AnalyticsConfig{
			Enabled:       true,
			TrendInterval: Duration(5 * time.Minute),
			SessionWindow: 10,
		},
		Notify: NotifyConfig{
			NATSSubject: "mastrena.alerts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// applyDefaults fills gaps a partially-specified YAML file may leave behind.
func (c *Config) applyDefaults() {
	def := DefaultConfig()

	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = def.Server.ReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = def.Server.WriteTimeout
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = def.Server.ShutdownTimeout
	}

	if c.Brewing.Temperature == (Range{}) {
		c.Brewing.Temperature = def.Brewing.Temperature
	}
	if c.Brewing.Pressure == (Range{}) {
		c.Brewing.Pressure = def.Brewing.Pressure
	}
	if c.Brewing.TimeSeconds == (Range{}) {
		c.Brewing.TimeSeconds = def.Brewing.TimeSeconds
	}
	if c.Brewing.Defaults == (Default{}) {
		c.Brewing.Defaults = def.Brewing.Defaults
	}

	if c.Storage.Backend == "" {
		c.Storage.Backend = def.Storage.Backend
	}

	if c.Analytics.TrendInterval == 0 {
		c.Analytics.TrendInterval = def.Analytics.TrendInterval
	}
	if c.Analytics.SessionWindow == 0 {
		c.Analytics.SessionWindow = def.Analytics.SessionWindow
	}
	if c.Notify.NATSSubject == "" {
		c.Notify.NATSSubject = def.Notify.NATSSubject
	}

	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = def.Logging.Format
	}
}
