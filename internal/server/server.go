package server

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/output"
)

// Server routes the game API.
type Server struct {
	router   *mux.Router
	games    *Registry
	cfg      *config.Config
	log      *slog.Logger
	upgrader websocket.Upgrader
}

// New creates a server. cfg is the template each new game's configuration
// is cloned from.
func New(cfg *config.Config) *Server {
	s := &Server{
		router: mux.NewRouter(),
		games:  NewRegistry(),
		cfg:    cfg,
		log:    cfg.Logger(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	s.router.NotFoundHandler = http.HandlerFunc(notFound)

	s.router.HandleFunc("/games", s.handleCreate).Methods(http.MethodPost)
	s.router.HandleFunc("/games/{id}", s.handleGet).Methods(http.MethodGet)
	s.router.HandleFunc("/games/{id}", s.handleDelete).Methods(http.MethodDelete)
	s.router.HandleFunc("/games/{id}/moves", s.handleMove).Methods(http.MethodPost)
	s.router.HandleFunc("/games/{id}/legal", s.handleLegal).Methods(http.MethodGet)
	s.router.HandleFunc("/games/{id}/pgn", s.handleRecord).Methods(http.MethodGet)
	s.router.HandleFunc("/games/{id}/ws", s.handleWatch)
	return s
}

// Games returns the server's registry.
func (s *Server) Games() *Registry {
	return s.games
}

// Handler returns the router wrapped with access logging and panic recovery.
func (s *Server) Handler() http.Handler {
	var w io.Writer = io.Discard
	if s.cfg.Verbosity > 0 && s.cfg.LogFile != nil {
		w = s.cfg.LogFile
	}
	recovery := handlers.RecoveryHandler(handlers.RecoveryLogger(slog.NewLogLogger(s.log.Handler(), slog.LevelError)))
	return handlers.LoggingHandler(w, recovery(s.router))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

type createRequest struct {
	White   string            `json:"white"`
	Black   string            `json:"black"`
	FEN     string            `json:"fen"`
	Options map[string]string `json:"options"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !stderrors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	cfg := s.cfg.Clone()
	for key, value := range req.Options {
		if err := cfg.SetOption(key, value); err != nil {
			writeError(w, statusFor(err), err)
			return
		}
	}

	board := engine.NewInitialBoard()
	if req.FEN != "" {
		var err error
		if board, err = engine.NewBoardFromFEN(req.FEN); err != nil {
			writeError(w, statusFor(err), err)
			return
		}
	}

	g := s.games.Create(board, cfg)
	if req.FEN != "" {
		g.SetTag("SetUp", "1")
		g.SetTag("FEN", req.FEN)
	}
	if req.White != "" {
		g.SetTag("White", req.White)
	}
	if req.Black != "" {
		g.SetTag("Black", req.Black)
	}
	s.log.Info("game created", "id", g.ID)
	writeJSON(w, http.StatusCreated, g.State())
}

func (s *Server) game(w http.ResponseWriter, r *http.Request) (*Game, bool) {
	g, err := s.games.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return nil, false
	}
	return g, true
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	if g, ok := s.game(w, r); ok {
		writeJSON(w, http.StatusOK, g.State())
	}
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.games.Delete(mux.Vars(r)["id"]); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type moveRequest struct {
	Move       string `json:"move"`
	Transcript string `json:"transcript"`
	From       string `json:"from"`
	To         string `json:"to"`
	Promotion  string `json:"promotion"`
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	g, ok := s.game(w, r)
	if !ok {
		return
	}
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var st GameState
	var err error
	switch {
	case req.Move != "":
		st, err = g.Play(req.Move)
	case req.Transcript != "":
		st, err = g.PlayTranscript(req.Transcript)
	case req.From != "" && req.To != "":
		st, err = g.Move(req.From, req.To, req.Promotion)
	default:
		writeError(w, http.StatusBadRequest, stderrors.New("want move, transcript, or from and to"))
		return
	}
	if err != nil {
		s.log.Debug("move rejected", "id", g.ID, "error", err)
		resp := errorResponse{Error: err.Error()}
		if st.ID != "" {
			resp.State = &st
		}
		writeJSON(w, statusFor(err), resp)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleLegal(w http.ResponseWriter, r *http.Request) {
	g, ok := s.game(w, r)
	if !ok {
		return
	}
	from := r.URL.Query().Get("from")
	moves, err := g.LegalMoves(from)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, legalResponse{From: from, Moves: moves})
}

// handleRecord exports the game record as PGN, or as JSON with format=json.
func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	g, ok := s.game(w, r)
	if !ok {
		return
	}
	if r.URL.Query().Get("format") == "json" {
		writeJSON(w, http.StatusOK, g.Record())
		return
	}
	var buf bytes.Buffer
	if err := g.WritePGN(&buf, output.DefaultLineLength); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/x-chess-pgn")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

type legalResponse struct {
	From  string   `json:"from,omitempty"`
	Moves []string `json:"moves"`
}

type errorResponse struct {
	Error string     `json:"error"`
	State *GameState `json:"state,omitempty"`
}

// statusFor maps an error to the HTTP status reported for it.
func statusFor(err error) int {
	switch {
	case stderrors.Is(err, errors.ErrGameNotFound):
		return http.StatusNotFound
	case stderrors.Is(err, errors.ErrIllegalMove),
		stderrors.Is(err, errors.ErrAmbiguousMove),
		stderrors.Is(err, errors.ErrNoLegalSource),
		stderrors.Is(err, errors.ErrPreconditionViolation):
		return http.StatusUnprocessableEntity
	case stderrors.Is(err, errors.ErrMalformedNotation),
		stderrors.Is(err, errors.ErrOutOfRange),
		stderrors.Is(err, errors.ErrInvalidFEN),
		stderrors.Is(err, errors.ErrUnknownOption),
		stderrors.Is(err, errors.ErrInvalidConfig):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "Not Found", http.StatusNotFound)
}
