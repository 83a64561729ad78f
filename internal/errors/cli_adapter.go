package errors

import (
	"fmt"
	"log/slog"
	"os"
)

// CLIErrorAdapter handles error presentation and exit code determination for
// the command line entrypoints.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	if me, ok := err.(*MastrenaError); ok {
		return a.exitCodeFromMastrena(me)
	}

	return 1
}

// exitCodeFromMastrena maps MastrenaError categories to exit codes.
func (a *CLIErrorAdapter) exitCodeFromMastrena(err *MastrenaError) int {
	switch err.Category {
	case CategoryMalformed, CategoryOutOfRange:
		return 2 // Invalid usage
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryNetwork, CategoryNotify:
		return 8 // External system error
	case CategoryStorage, CategoryAnalytics:
		return 11 // Storage error
	case CategoryDaemon, CategoryRuntime:
		return 12 // Runtime error
	case CategoryInternal:
		return 10 // Internal error
	default:
		return 1 // General error
	}
}

// HandleError logs the error and exits with the mapped code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}

	if me, ok := err.(*MastrenaError); ok {
		if a.verbose && me.Cause != nil {
			a.logger.Error(me.Message, "category", me.Category, "cause", me.Cause)
		} else {
			a.logger.Error(me.Message, "category", me.Category)
		}
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	os.Exit(a.ExitCodeFor(err))
}
