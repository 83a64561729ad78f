package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/baristalabs/mastrena/internal/config"
	"github.com/baristalabs/mastrena/internal/daemon"
	"github.com/baristalabs/mastrena/internal/errors"
	"github.com/baristalabs/mastrena/internal/extraction"
	"github.com/baristalabs/mastrena/internal/service"
	"github.com/baristalabs/mastrena/internal/store"
	"github.com/baristalabs/mastrena/internal/version"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"mastrena.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Serve struct{} `cmd:"" help:"Run the extraction service daemon"`

	Simulate struct {
		Temperature *float64 `short:"t" help:"Water temperature in Celsius (default from config)"`
		Pressure    *float64 `short:"p" help:"Pump pressure in bar (default from config)"`
		TimeSeconds *float64 `short:"s" help:"Extraction time in seconds (default from config)"`
	} `cmd:"" help:"Run a single extraction simulation and print the record"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`

	Version struct{} `cmd:"" help:"Print the version"`
}

func main() {
	ctx := kong.Parse(&CLI)

	errAdapter := errors.NewCLIErrorAdapter(CLI.Verbose, nil)

	switch ctx.Command() {
	case "serve":
		cfg := loadConfig(errAdapter)
		setupLogging(cfg)
		if err := runServe(cfg); err != nil {
			errAdapter.HandleError(err)
		}
	case "simulate":
		cfg := loadConfig(errAdapter)
		setupLogging(cfg)
		if err := runSimulate(cfg); err != nil {
			errAdapter.HandleError(err)
		}
	case "init":
		if err := config.WriteDefault(CLI.Config, CLI.Init.Force); err != nil {
			errAdapter.HandleError(err)
		}
		fmt.Printf("Configuration written to %s\n", CLI.Config)
	case "version":
		fmt.Println(version.Version)
	}
}

func loadConfig(errAdapter *errors.CLIErrorAdapter) *config.Config {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		errAdapter.HandleError(err)
	}
	return cfg
}

func setupLogging(cfg *config.Config) {
	level := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if CLI.Verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func runServe(cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	d, err := daemon.New(cfg, CLI.Config)
	if err != nil {
		return err
	}

	if err := d.Start(ctx); err != nil {
		return err
	}

	slog.Info("Daemon started, waiting for shutdown signal...")
	<-ctx.Done()
	slog.Info("Shutdown signal received, stopping daemon...")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
	defer stopCancel()

	return d.Stop(stopCtx)
}

// runSimulate validates and simulates one extraction against an in-memory
// store, then prints the resulting record as JSON.
func runSimulate(cfg *config.Config) error {
	svc := service.New(cfg.Brewing, store.NewMemoryStore(), service.Options{})

	record, err := svc.Start(context.Background(), simulateParams())
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// simulateParams forwards only the flags the user actually set, so config
// defaults apply to the rest.
func simulateParams() extraction.RawParameters {
	format := func(v *float64) string {
		if v == nil {
			return ""
		}
		return strconv.FormatFloat(*v, 'f', -1, 64)
	}
	return extraction.RawParameters{
		Temperature: format(CLI.Simulate.Temperature),
		Pressure:    format(CLI.Simulate.Pressure),
		TimeSeconds: format(CLI.Simulate.TimeSeconds),
	}
}
