// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/worker"
)

var (
	// Output options
	outputFile = flag.String("o", "", "Output file (default: stdout)")
	jsonOutput = flag.Bool("J", false, "Output one JSON object per transcript")
	fenOnly    = flag.Bool("fen", false, "Output only the final FEN of each transcript")
	pgnOutput  = flag.Bool("pgn", false, "Output each replayed game as PGN")
	lineLength = flag.Int("w", 80, "Maximum movetext line length for -pgn")

	// Notation handling
	mismatchMode = flag.String("mismatch", "error", "Capture flag mismatches: error, warn or ignore")
	unsafeMode   = flag.Bool("unsafe", false, "Turn safe mode off (mismatches are ignored)")
	noValidate   = flag.Bool("novalidate", false, "Skip the self-check test when applying moves")
	notify       = flag.Bool("notify", false, "Log applied moves and winners")

	// Duplicate handling
	suppressDuplicates = flag.Bool("D", false, "Suppress games ending in a position already reported")
	exactDuplicates    = flag.Bool("Z", false, "With -D, duplicates must also have the same number of plies")

	// Logging
	logFile   = flag.String("l", "", "Write diagnostics to log file")
	appendLog = flag.String("L", "", "Append diagnostics to log file")
	verbose   = flag.Bool("v", false, "Log every applied move")

	// Other options
	quiet   = flag.Bool("s", false, "Silent mode (no diagnostics, no summary)")
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")

	// Performance options
	workers  = flag.Int("workers", 0, "Number of worker goroutines (0 = one per CPU core)")
	failFast = flag.Bool("x", false, "Stop replaying after the first transcript that fails")
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

	switch {
	case *quiet:
		cfg.Verbosity = 0
	case *verbose:
		cfg.Verbosity = 2
	}
	return cfg.Validate()
}

// numWorkers resolves the -workers flag.
func numWorkers() int {
	if *workers > 0 {
		return *workers
	}
	return runtime.NumCPU()
}

// poolOptions builds the worker pool options from the flags.
func poolOptions() []worker.PoolOption {
	opts := []worker.PoolOption{worker.WithWorkers(numWorkers()), worker.WithBufferSize(64)}
	if *failFast {
		opts = append(opts, worker.WithFailFast())
	}
	return opts
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
