// chess-replay plays chess game transcripts, one per line, and reports the
// winner and final position of each.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/worker"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chess-replay version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	if err := applyFlags(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	setupLogFile(cfg)

	var out io.Writer = os.Stdout
	if *outputFile != "" {
		file, err := os.Create(*outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
			os.Exit(1)
		}
		defer file.Close()
		out = file
	}

	transcripts, err := readInputs(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	results := worker.ReplayAll(transcripts, cfg, poolOptions()...)

	w := bufio.NewWriter(out)
	stats, err := report(w, results)
	if err == nil {
		err = w.Flush()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}

	if cfg.Verbosity > 0 {
		fmt.Fprintf(os.Stderr, "%d transcripts: %d white wins, %d black wins, %d undecided, %d failed, %d duplicates\n",
			stats.total, stats.whiteWins, stats.blackWins, stats.undecided, stats.failed, stats.dupes)
		if skipped := len(transcripts) - len(results); skipped > 0 {
			fmt.Fprintf(os.Stderr, "%d transcripts skipped after the first failure\n", skipped)
		}
	}
	if stats.failed > 0 {
		os.Exit(1)
	}
}

// readInputs collects transcripts from the named files, or stdin if none.
func readInputs(paths []string) ([]string, error) {
	if len(paths) == 0 {
		return readTranscripts(os.Stdin)
	}
	var all []string
	for _, path := range paths {
		file, err := os.Open(path) //nolint:gosec // G304: path comes from the command line
		if err != nil {
			return nil, err
		}
		ts, err := readTranscripts(file)
		file.Close()
		if err != nil {
			return nil, errors.Wrap(err, path)
		}
		all = append(all, ts...)
	}
	return all, nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chess-replay [options] [input-files...]\n\n")
	fmt.Fprintf(os.Stderr, "Replays chess game transcripts such as \"1.e4 e5 2.Nf3\", one per line.\n")
	fmt.Fprintf(os.Stderr, "Blank lines and lines starting with # are skipped.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}
