// Package notation parses algebraic move notation into move intents.
package notation

import (
	"regexp"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

var (
	reMoveNumber = regexp.MustCompile(`^[0-9]+\.+`)
	reCastle     = regexp.MustCompile(`^(O-O(?:-O)?|0-0(?:-0)?)([+#])?([?!]{0,2})$`)
	reSAN        = regexp.MustCompile(`^([PNBRQK])?([a-h])?([1-8])?(x)?([a-h][1-8])(?:=?([NBRQ]))?([+#])?([?!]{0,2})$`)
)

// Results that may end a transcript.
var resultTokens = map[string]bool{
	chess.ResultWhiteWins:  true,
	chess.ResultBlackWins:  true,
	"1/2-1/2":              true,
	chess.ResultInProgress: true,
}

// Parse reads a single move, optionally prefixed by its move number as in
// "12.Nf3" or "12...Nf6". The intent's Text is the move without the number.
func Parse(text string) (chess.MoveIntent, error) {
	s := strings.TrimSpace(text)
	col := 1
	if prefix := reMoveNumber.FindString(s); prefix != "" {
		s = s[len(prefix):]
		col += len(prefix)
	}
	if s == "" {
		return chess.MoveIntent{}, &errors.ParseError{
			Err:      errors.ErrMalformedNotation,
			Text:     text,
			Column:   col,
			Expected: "move",
			Got:      "end of text",
		}
	}

	intent := chess.MoveIntent{
		Text:     s,
		FromFile: -1,
		FromRank: -1,
	}

	if m := reCastle.FindStringSubmatch(s); m != nil {
		intent.Kind = chess.King
		intent.Castle = chess.Kingside
		if len(m[1]) == 5 {
			intent.Castle = chess.Queenside
		}
		intent.Check = checkStatus(m[2])
		intent.Glyphs = m[3]
		return intent, nil
	}

	m := reSAN.FindStringSubmatch(s)
	if m == nil {
		return chess.MoveIntent{}, &errors.ParseError{
			Err:      errors.ErrMalformedNotation,
			Text:     text,
			Column:   col,
			Expected: "algebraic move",
			Got:      strings.TrimSpace(s),
		}
	}

	intent.Kind = chess.Pawn
	if m[1] != "" {
		intent.Kind, _ = chess.KindFromLetter(m[1][0])
	}
	if m[2] != "" {
		intent.FromFile = int(m[2][0] - 'a')
	}
	if m[3] != "" {
		intent.FromRank = int(m[3][0] - '1')
	}
	intent.Capture = m[4] == "x"
	intent.To = chess.MustParseLocation(m[5])
	if m[6] != "" {
		if intent.Kind != chess.Pawn {
			return chess.MoveIntent{}, &errors.ParseError{
				Err:      errors.ErrMalformedNotation,
				Text:     text,
				Column:   col + strings.LastIndex(s, m[6]),
				Expected: "pawn move",
				Got:      "promotion of a " + strings.ToLower(intent.Kind.String()),
			}
		}
		intent.Promotion, _ = chess.KindFromLetter(m[6][0])
	}
	intent.Check = checkStatus(m[7])
	intent.Glyphs = m[8]
	return intent, nil
}

func checkStatus(s string) chess.CheckStatus {
	switch s {
	case "+":
		return chess.Check
	case "#":
		return chess.Checkmate
	}
	return chess.NoCheck
}

// Tokens splits a transcript such as "1.e4 e5 2.Nf3 Nc6" into move tokens,
// dropping move numbers and result markers.
func Tokens(transcript string) []string {
	var out []string
	for _, tok := range strings.Fields(transcript) {
		if resultTokens[tok] {
			continue
		}
		tok = strings.TrimPrefix(tok, reMoveNumber.FindString(tok))
		if tok == "" {
			continue
		}
		out = append(out, tok)
	}
	return out
}
