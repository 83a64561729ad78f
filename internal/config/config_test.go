package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "server:\n  addr: 0.0.0.0:8080\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Addr != "0.0.0.0:8080" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Brewing.Temperature.Min != 85 || cfg.Brewing.Temperature.Max != 100 {
		t.Errorf("temperature bounds = %+v", cfg.Brewing.Temperature)
	}
	if cfg.Brewing.Defaults.Temperature != 93.0 {
		t.Errorf("default temperature = %v", cfg.Brewing.Defaults.Temperature)
	}
	if cfg.Brewing.Defaults.Pressure != 9.0 {
		t.Errorf("default pressure = %v", cfg.Brewing.Defaults.Pressure)
	}
	if cfg.Brewing.Defaults.TimeSeconds != 25 {
		t.Errorf("default time = %v", cfg.Brewing.Defaults.TimeSeconds)
	}
	if cfg.Storage.Backend != "memory" {
		t.Errorf("backend = %q", cfg.Storage.Backend)
	}
	if cfg.Analytics.TrendInterval.Std() != 5*time.Minute {
		t.Errorf("trend interval = %v", cfg.Analytics.TrendInterval)
	}
}

func TestLoadRejectsInvertedBounds(t *testing.T) {
	path := writeConfig(t, "brewing:\n  pressure: {min: 12, max: 6}\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for inverted pressure bounds")
	}
}

func TestLoadRejectsDefaultOutsideRange(t *testing.T) {
	path := writeConfig(t, `
brewing:
  temperature: {min: 85, max: 100}
  defaults:
    temperature: 110
    pressure: 9.0
    time_seconds: 25
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for default outside configured range")
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	path := writeConfig(t, "storage:\n  backend: postgres\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown storage backend")
	}
}

func TestLoadSqliteRequiresPath(t *testing.T) {
	path := writeConfig(t, "storage:\n  backend: sqlite\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for sqlite backend without path")
	}
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("MASTRENA_TEST_SUBJECT", "espresso.alerts")
	path := writeConfig(t, "notify:\n  nats_subject: ${MASTRENA_TEST_SUBJECT}\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Notify.NATSSubject != "espresso.alerts" {
		t.Errorf("subject = %q", cfg.Notify.NATSSubject)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestWriteDefaultRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	if err := WriteDefault(path, false); err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("generated template should load cleanly: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("generated template should validate: %v", err)
	}

	if err := WriteDefault(path, false); err == nil {
		t.Fatal("expected error overwriting without force")
	}
	if err := WriteDefault(path, true); err != nil {
		t.Fatalf("WriteDefault with force: %v", err)
	}
}
