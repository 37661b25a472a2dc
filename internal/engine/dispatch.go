package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/notation"
)

// Play parses one move in algebraic notation and applies it for the side to
// move. A nil cfg means the defaults.
func Play(b *chess.Board, text string, cfg *config.Config) (chess.Move, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return play(b, text, cfg, cfg.Logger())
}

func play(b *chess.Board, text string, cfg *config.Config, log *slog.Logger) (chess.Move, error) {
	intent, err := notation.Parse(text)
	if err != nil {
		return chess.Move{}, err
	}
	return playIntent(b, intent, cfg, log)
}

// PlayIntent applies a parsed move. The source square is found by walking
// reverse shifts back from the destination and keeping the candidates that
// match the disambiguation, hold the right piece and survive the legality
// test; exactly one must remain.
func PlayIntent(b *chess.Board, intent chess.MoveIntent, cfg *config.Config) (chess.Move, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return playIntent(b, intent, cfg, cfg.Logger())
}

func playIntent(b *chess.Board, intent chess.MoveIntent, cfg *config.Config, log *slog.Logger) (chess.Move, error) {
	validate := !cfg.Notation.SkipValidation

	var m chess.Move
	var err error
	if intent.IsCastle() {
		m, err = applyCastle(b, intent.Castle, validate)
	} else {
		m, err = playPieceMove(b, intent, cfg, log)
	}
	if err != nil {
		return chess.Move{}, err
	}
	m.Text = intent.Text

	if cfg.Notation.EffectiveMismatch() != config.MismatchIgnore &&
		intent.Check != chess.NoCheck && intent.Check != m.Check {
		log.Warn("check annotation does not match position",
			"move", intent.Text, "annotated", intent.Check.Suffix(), "actual", m.Check.Suffix())
	}

	level := slog.LevelDebug
	if cfg.Notation.Notifications {
		level = slog.LevelInfo
	}
	log.Log(context.Background(), level, "move applied", "move", intent.Text, "uci", m.UCI())
	if w, ok := b.Winner(); ok && m.Check == chess.Checkmate {
		log.Log(context.Background(), level, "winner declared", "winner", w.String())
	}
	return m, nil
}

func playPieceMove(b *chess.Board, intent chess.MoveIntent, cfg *config.Config, log *slog.Logger) (chess.Move, error) {
	src, err := resolveSource(b, intent, cfg, log)
	if err != nil {
		return chess.Move{}, err
	}

	if intent.Kind != chess.Pawn {
		occupied := !b.At(intent.To).IsEmpty()
		if intent.Capture != occupied {
			switch cfg.Notation.EffectiveMismatch() {
			case config.MismatchError:
				return chess.Move{}, illegal(src, intent.To, "capture flag in %q does not match the board", intent.Text)
			case config.MismatchWarn:
				log.Warn("capture flag does not match the board", "move", intent.Text)
			case config.MismatchIgnore:
			}
		}
	}

	return applyMove(b, src, intent.To, intent.Promotion, !cfg.Notation.SkipValidation)
}

// resolveSource finds the single square the intent's move can come from.
func resolveSource(b *chess.Board, intent chess.MoveIntent, cfg *config.Config, log *slog.Logger) (chess.Location, error) {
	colour := b.ToMove()
	mode := cfg.Notation.EffectiveMismatch()
	checkSelf := !cfg.Notation.SkipValidation

	var candidates []chess.Location
	for _, rs := range chess.ReverseShifts(intent.Kind, colour) {
		src := intent.To.Add(rs.Back)
		if !src.Valid() {
			continue
		}
		if intent.HasFromFile() && src.File != intent.FromFile {
			continue
		}
		if intent.HasFromRank() && src.Rank != intent.FromRank {
			continue
		}
		piece, ok := b.PieceAt(src)
		if !ok || piece.Kind != intent.Kind || piece.Colour != colour {
			continue
		}
		if rs.Hint != chess.CaptureEither && (rs.Hint == chess.CaptureRequired) != intent.Capture {
			switch mode {
			case config.MismatchError:
				continue
			case config.MismatchWarn:
				log.Warn("capture flag does not match pawn move", "move", intent.Text, "from", src.String())
			case config.MismatchIgnore:
			}
		}
		if !IsLegal(b, src, intent.To, checkSelf) {
			continue
		}
		candidates = append(candidates, src)
	}

	switch len(candidates) {
	case 0:
		return chess.Location{}, fmt.Errorf("%q: %w", intent.Text, errors.ErrNoLegalSource)
	case 1:
		return candidates[0], nil
	}
	return chess.Location{}, fmt.Errorf("%q could come from %v: %w", intent.Text, candidates, errors.ErrAmbiguousMove)
}

// PlayTranscript applies a space separated sequence of moves such as
// "1.e4 e5 2.Nf3". It stops at the first move that fails; the moves before
// it stay applied and are returned together with a *errors.MoveError.
func PlayTranscript(b *chess.Board, transcript string, cfg *config.Config) ([]chess.Move, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	log := cfg.Logger()

	var moves []chess.Move
	for i, tok := range notation.Tokens(transcript) {
		m, err := play(b, tok, cfg, log)
		if err != nil {
			return moves, &errors.MoveError{Err: err, PlyNum: i + 1, MoveText: tok}
		}
		moves = append(moves, m)
	}
	return moves, nil
}
