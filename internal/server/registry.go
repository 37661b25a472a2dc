// Package server exposes games over HTTP and websockets. Each game is owned
// by one Game value whose mutex serializes every read and move.
package server

import (
	stderrors "errors"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/output"
)

// Registry holds the games being played, keyed by id.
type Registry struct {
	mu    sync.RWMutex
	games map[string]*Game
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{games: make(map[string]*Game)}
}

// Create registers a new game on board with its own configuration.
func (r *Registry) Create(board *chess.Board, cfg *config.Config) *Game {
	g := &Game{
		ID:       uuid.New().String(),
		board:    board,
		record:   chess.NewGame(),
		cfg:      cfg,
		watchers: make(map[chan wsMessage]struct{}),
	}
	r.mu.Lock()
	r.games[g.ID] = g
	r.mu.Unlock()
	return g
}

// Get returns the game with the given id.
func (r *Registry) Get(id string) (*Game, error) {
	r.mu.RLock()
	g, ok := r.games[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("game %q: %w", id, errors.ErrGameNotFound)
	}
	return g, nil
}

// Delete forgets a game.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.games[id]; !ok {
		return fmt.Errorf("game %q: %w", id, errors.ErrGameNotFound)
	}
	delete(r.games, id)
	return nil
}

// Len returns the number of registered games.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.games)
}

// Game is a board being played through the server.
type Game struct {
	ID string

	mu       sync.Mutex
	board    *chess.Board
	record   *chess.Game
	cfg      *config.Config
	watchers map[chan wsMessage]struct{}
}

// GameState is the JSON view of a game.
type GameState struct {
	ID        string            `json:"id"`
	FEN       string            `json:"fen"`
	ToMove    string            `json:"to_move"`
	MoveCount int               `json:"move_count"`
	Moves     []string          `json:"moves"`
	Check     string            `json:"check,omitempty"`
	Winner    string            `json:"winner,omitempty"`
	Result    string            `json:"result"`
	Tags      map[string]string `json:"tags,omitempty"`
	Rows      []string          `json:"rows"`
}

// SetTag sets a tag on the game record.
func (g *Game) SetTag(name, value string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record.SetTag(name, value)
}

// Play applies one move in algebraic notation.
func (g *Game) Play(text string) (GameState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	m, err := engine.Play(g.board, text, g.cfg)
	if err != nil {
		return g.state(), &errors.MoveError{Err: err, GameID: g.ID, PlyNum: g.board.MoveCount() + 1, MoveText: text}
	}
	g.record.AppendMove(m)
	return g.committed(), nil
}

// PlayTranscript applies a sequence of moves. Moves before a failing one
// stay applied.
func (g *Game) PlayTranscript(transcript string) (GameState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	start := g.board.MoveCount()
	moves, err := engine.PlayTranscript(g.board, transcript, g.cfg)
	for _, m := range moves {
		g.record.AppendMove(m)
	}
	if err != nil {
		var moveErr *errors.MoveError
		if stderrors.As(err, &moveErr) {
			moveErr.GameID = g.ID
			moveErr.PlyNum += start
		}
	}
	if len(moves) == 0 {
		return g.state(), err
	}
	return g.committed(), err
}

// Move applies a move given as source and destination squares. promotion is
// a piece letter or empty for the default.
func (g *Game) Move(from, to, promotion string) (GameState, error) {
	src, err := chess.ParseLocation(from)
	if err != nil {
		return GameState{}, err
	}
	dst, err := chess.ParseLocation(to)
	if err != nil {
		return GameState{}, err
	}
	kind := chess.NoKind
	if promotion != "" {
		var ok bool
		if kind, ok = chess.KindFromLetter(promotion[0]); !ok || len(promotion) != 1 {
			return GameState{}, fmt.Errorf("promotion %q: %w", promotion, errors.ErrMalformedNotation)
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	before := *g.board
	m, err := engine.MakeMove(g.board, src, dst, kind, !g.cfg.Notation.SkipValidation)
	if err != nil {
		return g.state(), &errors.MoveError{Err: err, GameID: g.ID, PlyNum: g.board.MoveCount() + 1, MoveText: from + to + promotion}
	}
	m.Text = engine.SAN(&before, m)
	g.record.AppendMove(m)
	return g.committed(), nil
}

// LegalMoves lists legal destinations from a square, or every legal move
// of the side to move in coordinate form when from is empty.
func (g *Game) LegalMoves(from string) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if from == "" {
		moves := engine.AllLegalMoves(g.board, g.board.ToMove())
		out := make([]string, 0, len(moves))
		for _, m := range moves {
			out = append(out, m.UCI())
		}
		return out, nil
	}
	src, err := chess.ParseLocation(from)
	if err != nil {
		return nil, err
	}
	locs := engine.LegalMovesFrom(g.board, src)
	out := make([]string, 0, len(locs))
	for _, l := range locs {
		out = append(out, l.String())
	}
	return out, nil
}

// WritePGN writes the game record as PGN.
func (g *Game) WritePGN(w io.Writer, maxLineLength int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return output.WriteGame(w, g.record, maxLineLength)
}

// Record returns the game record in its JSON export form.
func (g *Game) Record() *output.JSONGame {
	g.mu.Lock()
	defer g.mu.Unlock()
	return output.GameToJSON(g.record)
}

// State returns the current view of the game.
func (g *Game) State() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state()
}

// committed records a winner if there is one and tells the watchers.
// The caller holds g.mu.
func (g *Game) committed() GameState {
	if w, ok := engine.ResolveWinner(g.board); ok {
		g.record.RecordWinner(w)
	}
	st := g.state()
	for ch := range g.watchers {
		select {
		case ch <- wsMessage{State: &st}:
		default:
		}
	}
	return st
}

// state builds the view. The caller holds g.mu.
func (g *Game) state() GameState {
	st := GameState{
		ID:        g.ID,
		FEN:       engine.BoardToFEN(g.board),
		ToMove:    g.board.ToMove().String(),
		MoveCount: g.board.MoveCount(),
		Moves:     make([]string, 0, len(g.record.Moves)),
		Result:    g.record.Result(),
		Rows:      renderRows(g.board, g.cfg.Display),
	}
	for _, m := range g.record.Moves {
		if m.Text != "" {
			st.Moves = append(st.Moves, m.Text)
		} else {
			st.Moves = append(st.Moves, m.UCI())
		}
	}
	if last, ok := g.record.LastMove(); ok {
		st.Check = map[chess.CheckStatus]string{chess.Check: "check", chess.Checkmate: "checkmate"}[last.Check]
	}
	if w, ok := engine.ResolveWinner(g.board); ok {
		st.Winner = w.String()
	}
	if len(g.record.Tags) > 1 {
		st.Tags = make(map[string]string, len(g.record.Tags))
		for k, v := range g.record.Tags {
			st.Tags[k] = v
		}
	}
	return st
}

func (g *Game) subscribe() chan wsMessage {
	ch := make(chan wsMessage, 16)
	g.mu.Lock()
	g.watchers[ch] = struct{}{}
	g.mu.Unlock()
	return ch
}

func (g *Game) unsubscribe(ch chan wsMessage) {
	g.mu.Lock()
	delete(g.watchers, ch)
	g.mu.Unlock()
}
