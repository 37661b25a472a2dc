package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/testutil"
	"github.com/lgbarn/chess-rules-go/internal/worker"
)

func saveRestoreBool(ptr *bool, val bool) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreString(ptr *string, val string) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreInt(ptr *int, val int) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func TestReadTranscripts(t *testing.T) {
	input := "# opening traps\n1.e4 e5 2.Bc4 Nc6 3.Qh5 Nf6?? 4.Qxf7#\n\n   1.f3 e5 2.g4 Qh4#  \n"
	got, err := readTranscripts(strings.NewReader(input))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, []string{
		"1.e4 e5 2.Bc4 Nc6 3.Qh5 Nf6?? 4.Qxf7#",
		"1.f3 e5 2.g4 Qh4#",
	})
}

func replay(t *testing.T, transcripts ...string) []worker.ReplayResult {
	t.Helper()
	return worker.ReplayAll(transcripts, testutil.QuietConfig(), worker.WithWorkers(2))
}

func TestReportText(t *testing.T) {
	results := replay(t, "1.e4 e5 2.Bc4 Nc6 3.Qh5 Nf6?? 4.Qxf7#", "1.e4 e5", "1.e4 e5 2.Ke3")

	var buf bytes.Buffer
	stats, err := report(&buf, results)
	testutil.AssertNoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	testutil.AssertEqual(t, len(lines), 3)
	testutil.AssertEqual(t, lines[0], "1: 1-0 r1bqkb1r/pppp1Qpp/2n2n2/4p3/2B1P3/8/PPPP1PPP/RNB1K1NR b KQkq - 0 4")
	testutil.AssertEqual(t, lines[1], "2: * rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2")
	testutil.AssertContains(t, lines[2], "3: error: ply 3")

	want := replayStats{total: 3, whiteWins: 1, undecided: 1, failed: 1}
	if stats != want {
		t.Errorf("stats = %+v; want %+v", stats, want)
	}
}

func TestReportJSON(t *testing.T) {
	defer saveRestoreBool(jsonOutput, true)()
	results := replay(t, "1.f3 e5 2.g4 Qh4#")

	var buf bytes.Buffer
	_, err := report(&buf, results)
	testutil.AssertNoError(t, err)

	var rec jsonResult
	testutil.AssertNoError(t, json.Unmarshal(buf.Bytes(), &rec))
	testutil.AssertEqual(t, rec, jsonResult{
		Index:  1,
		Plies:  4,
		Result: "0-1",
		Winner: "Black",
		FEN:    "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 0 3",
	})
}

func TestReportFENOnly(t *testing.T) {
	defer saveRestoreBool(fenOnly, true)()
	var buf bytes.Buffer
	_, err := report(&buf, replay(t, "1.e4"))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, buf.String(), "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1\n")
}

func TestApplyFlags(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := config.NewConfig()
		testutil.AssertNoError(t, applyFlags(cfg))
		testutil.AssertEqual(t, cfg.Notation.Mismatch, config.MismatchError)
		testutil.AssertTrue(t, cfg.Notation.SafeMode)
		testutil.AssertEqual(t, cfg.Verbosity, 1)
	})

	t.Run("warn and unsafe", func(t *testing.T) {
		defer saveRestoreString(mismatchMode, "warn")()
		defer saveRestoreBool(unsafeMode, true)()
		cfg := config.NewConfig()
		testutil.AssertNoError(t, applyFlags(cfg))
		testutil.AssertEqual(t, cfg.Notation.Mismatch, config.MismatchWarn)
		testutil.AssertEqual(t, cfg.Notation.EffectiveMismatch(), config.MismatchIgnore)
	})

	t.Run("bad mismatch mode", func(t *testing.T) {
		defer saveRestoreString(mismatchMode, "loud")()
		testutil.AssertError(t, applyFlags(config.NewConfig()))
	})

	t.Run("quiet wins over verbose", func(t *testing.T) {
		defer saveRestoreBool(quiet, true)()
		defer saveRestoreBool(verbose, true)()
		cfg := config.NewConfig()
		testutil.AssertNoError(t, applyFlags(cfg))
		testutil.AssertEqual(t, cfg.Verbosity, 0)
	})

	t.Run("skip validation and notify", func(t *testing.T) {
		defer saveRestoreBool(noValidate, true)()
		defer saveRestoreBool(notify, true)()
		cfg := config.NewConfig()
		testutil.AssertNoError(t, applyFlags(cfg))
		testutil.AssertTrue(t, cfg.Notation.SkipValidation)
		testutil.AssertTrue(t, cfg.Notation.Notifications)
	})
}

func TestReportPGN(t *testing.T) {
	defer saveRestoreBool(pgnOutput, true)()
	results := replay(t, "1.f3 e5 2.g4 Qh4#", "1.e4 e5 2.Ke3")

	var buf bytes.Buffer
	stats, err := report(&buf, results)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, stats.failed, 1)

	out := buf.String()
	testutil.AssertContains(t, out, "[Round \"1\"]\n")
	testutil.AssertContains(t, out, "\n1. f3 e5 2. g4 Qh4# 0-1\n")
	testutil.AssertContains(t, out, "[Round \"2\"]\n")
	testutil.AssertContains(t, out, "[Annotator \"chess-replay: ")
	testutil.AssertContains(t, out, "\n1. e4 e5 *\n")
}

func TestReportSuppressesDuplicates(t *testing.T) {
	defer saveRestoreBool(suppressDuplicates, true)()
	results := replay(t, "1.Nf3 Nf6 2.Nc3 Nc6", "1.e4", "1.Nc3 Nc6 2.Nf3 Nf6", "1.e4 e5 2.Ke3")

	var buf bytes.Buffer
	stats, err := report(&buf, results)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, stats.dupes, 1)
	testutil.AssertEqual(t, stats.failed, 1)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	testutil.AssertEqual(t, len(lines), 3)
	testutil.AssertTrue(t, strings.HasPrefix(lines[0], "1: "))
	testutil.AssertTrue(t, strings.HasPrefix(lines[1], "2: "))
	testutil.AssertTrue(t, strings.HasPrefix(lines[2], "4: error"))
}

func TestReportExactDuplicates(t *testing.T) {
	defer saveRestoreBool(suppressDuplicates, true)()
	defer saveRestoreBool(exactDuplicates, true)()
	results := replay(t, "1.Nf3 Nf6", "1.Nc3 Nf6 2.Nb1 Ng8 3.Nf3 Nf6", "1.Nf3 Nf6")

	var buf bytes.Buffer
	stats, err := report(&buf, results)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, stats.dupes, 1)
}

func TestReportFailFast(t *testing.T) {
	defer saveRestoreBool(failFast, true)()
	defer saveRestoreInt(workers, 1)()
	transcripts := []string{"1.e4 e5", "1.e4 e5 2.Ke3", "1.d4 d5"}
	results := worker.ReplayAll(transcripts, testutil.QuietConfig(), poolOptions()...)

	var buf bytes.Buffer
	stats, err := report(&buf, results)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, stats.total, 2)
	testutil.AssertEqual(t, stats.failed, 1)
	testutil.AssertContains(t, buf.String(), "2: error: ply 3")
}
