// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lgbarn/chess-rules-go/internal/config"
)

var (
	addr = flag.String("addr", ":8080", "Address to listen on")

	// Defaults for new games; clients may override them per game
	mismatchMode = flag.String("mismatch", "error", "Capture flag mismatches: error, warn or ignore")
	unsafeMode   = flag.Bool("unsafe", false, "Turn safe mode off (mismatches are ignored)")
	noValidate   = flag.Bool("novalidate", false, "Skip the self-check test when applying moves")
	notify       = flag.Bool("notify", false, "Log applied moves and winners")

	// Board rendering in game states
	displaySize = flag.String("size", config.SizeBig, "Board size: big, medium or small")
	noLabels    = flag.Bool("nolabels", false, "Leave out rank and file labels")
	figurine    = flag.Bool("figurine", false, "Draw pieces as chess symbols")

	// Logging
	logFile   = flag.String("l", "", "Write diagnostics to log file")
	appendLog = flag.String("L", "", "Append diagnostics to log file")
	verbose   = flag.Bool("v", false, "Debug logging")
	quiet     = flag.Bool("s", false, "Silent mode (no diagnostics or access log)")

	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) error {
	mode, err := config.ParseMismatchMode(*mismatchMode)
	if err != nil {
		return err
	}
	cfg.Notation.Mismatch = mode
	cfg.Notation.SafeMode = !*unsafeMode
	cfg.Notation.SkipValidation = *noValidate
	cfg.Notation.Notifications = *notify

	cfg.Display.Size = *displaySize
	cfg.Display.AxisLabels = !*noLabels
	cfg.Display.Figurine = *figurine

	switch {
	case *quiet:
		cfg.Verbosity = 0
	case *verbose:
		cfg.Verbosity = 2
	}
	return cfg.Validate()
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile != "" {
		file, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
			os.Exit(1)
		}
		cfg.LogFile = file
	}

	if *appendLog != "" {
		file, err := os.OpenFile(*appendLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *appendLog, err)
			os.Exit(1)
		}
		cfg.LogFile = file
	}
}
