package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/hashing"
	"github.com/lgbarn/chess-rules-go/internal/output"
	"github.com/lgbarn/chess-rules-go/internal/worker"
)

// readTranscripts reads one transcript per line.
func readTranscripts(r io.Reader) ([]string, error) {
	var out []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, scanner.Err()
}

// replayStats counts outcomes across a batch.
type replayStats struct {
	total     int
	whiteWins int
	blackWins int
	undecided int
	failed    int
	dupes     int
}

// jsonResult is the -J output record.
type jsonResult struct {
	Index  int    `json:"index"`
	Plies  int    `json:"plies"`
	Result string `json:"result"`
	Winner string `json:"winner,omitempty"`
	FEN    string `json:"fen"`
	Error  string `json:"error,omitempty"`
}

func resultString(r worker.ReplayResult) string {
	if !r.HasWinner {
		return chess.ResultInProgress
	}
	if r.Winner == chess.White {
		return chess.ResultWhiteWins
	}
	return chess.ResultBlackWins
}

// gameRecord turns a replay result into a game record for PGN output.
func gameRecord(r worker.ReplayResult) *chess.Game {
	game := chess.NewGame()
	game.SetTag("Round", strconv.Itoa(r.Index+1))
	game.SetTag("Result", resultString(r))
	if r.Error != nil {
		game.SetTag("Annotator", "chess-replay: "+r.Error.Error())
	}
	game.Moves = r.Moves
	return game
}

// report writes one line per result in the format chosen by the flags.
func report(w io.Writer, results []worker.ReplayResult) (replayStats, error) {
	var stats replayStats
	enc := json.NewEncoder(w)
	pgn := output.NewPGNWriter(w, *lineLength)
	var detector *hashing.DuplicateDetector
	if *suppressDuplicates {
		detector = hashing.NewDuplicateDetector(*exactDuplicates, 0)
	}

	for _, r := range results {
		stats.total++
		if detector != nil && r.Error == nil && detector.CheckAndAdd(gameRecord(r), r.Board) {
			stats.dupes++
			continue
		}
		switch {
		case r.Error != nil:
			stats.failed++
		case !r.HasWinner:
			stats.undecided++
		case r.Winner == chess.White:
			stats.whiteWins++
		default:
			stats.blackWins++
		}

		var err error
		switch {
		case *jsonOutput:
			rec := jsonResult{
				Index:  r.Index + 1,
				Plies:  len(r.Moves),
				Result: resultString(r),
				FEN:    r.FEN,
			}
			if r.HasWinner {
				rec.Winner = r.Winner.String()
			}
			if r.Error != nil {
				rec.Error = r.Error.Error()
			}
			err = enc.Encode(rec)
		case *pgnOutput:
			err = pgn.WriteGame(gameRecord(r))
		case *fenOnly:
			_, err = fmt.Fprintln(w, r.FEN)
		case r.Error != nil:
			_, err = fmt.Fprintf(w, "%d: error: %v\n", r.Index+1, r.Error)
		default:
			_, err = fmt.Fprintf(w, "%d: %s %s\n", r.Index+1, resultString(r), r.FEN)
		}
		if err != nil {
			return stats, err
		}
	}
	return stats, nil
}
