package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	chesserrors "github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/testutil"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	s := New(testutil.QuietConfig())
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func do(t *testing.T, method, url string, body interface{}, out interface{}) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func createGame(t *testing.T, base string, req createRequest) GameState {
	t.Helper()
	var st GameState
	if code := do(t, http.MethodPost, base+"/games", req, &st); code != http.StatusCreated {
		t.Fatalf("create game: status %d", code)
	}
	return st
}

func TestCreateAndGet(t *testing.T) {
	_, ts := newTestServer(t)

	created := createGame(t, ts.URL, createRequest{White: "Byrne", Black: "Fischer"})
	testutil.AssertEqual(t, created.FEN, engine.InitialFEN)
	testutil.AssertEqual(t, created.ToMove, "White")
	testutil.AssertEqual(t, created.Result, "*")
	testutil.AssertEqual(t, created.Tags["White"], "Byrne")
	testutil.AssertEqual(t, len(created.Rows), 18)
	testutil.AssertEqual(t, created.Rows[1], "8 │ r │ n │ b │ q │ k │ b │ n │ r │")
	testutil.AssertEqual(t, created.Rows[17], "    a   b   c   d   e   f   g   h")

	var got GameState
	code := do(t, http.MethodGet, ts.URL+"/games/"+created.ID, nil, &got)
	testutil.AssertEqual(t, code, http.StatusOK)
	testutil.AssertEqual(t, got, created)
}

func TestCreateWithoutBody(t *testing.T) {
	_, ts := newTestServer(t)
	resp, err := http.Post(ts.URL+"/games", "application/json", nil)
	testutil.AssertNoError(t, err)
	resp.Body.Close()
	testutil.AssertEqual(t, resp.StatusCode, http.StatusCreated)
}

func TestCreateErrors(t *testing.T) {
	_, ts := newTestServer(t)

	tests := []struct {
		name string
		req  createRequest
	}{
		{"bad fen", createRequest{FEN: "8/8/8 w - - 0 1"}},
		{"unknown option", createRequest{Options: map[string]string{"api.colour": "red"}}},
		{"bad option value", createRequest{Options: map[string]string{"api.notation_mismatch": "loud"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp errorResponse
			code := do(t, http.MethodPost, ts.URL+"/games", tt.req, &resp)
			testutil.AssertEqual(t, code, http.StatusBadRequest)
			testutil.AssertTrue(t, resp.Error != "", "error message expected")
		})
	}
}

func TestMoves(t *testing.T) {
	_, ts := newTestServer(t)
	g := createGame(t, ts.URL, createRequest{})
	url := ts.URL + "/games/" + g.ID + "/moves"

	var st GameState
	testutil.AssertEqual(t, do(t, http.MethodPost, url, moveRequest{Move: "e4"}, &st), http.StatusOK)
	testutil.AssertEqual(t, st.MoveCount, 1)
	testutil.AssertEqual(t, st.ToMove, "Black")

	testutil.AssertEqual(t, do(t, http.MethodPost, url, moveRequest{From: "e7", To: "e5"}, &st), http.StatusOK)
	testutil.AssertEqual(t, st.Moves, []string{"e4", "e5"})

	testutil.AssertEqual(t, do(t, http.MethodPost, url, moveRequest{Transcript: "2.Bc4 Nc6 3.Qh5 Nf6?? 4.Qxf7#"}, &st), http.StatusOK)
	testutil.AssertEqual(t, st.MoveCount, 7)
	testutil.AssertEqual(t, st.Moves, []string{"e4", "e5", "Bc4", "Nc6", "Qh5", "Nf6??", "Qxf7#"})
	testutil.AssertEqual(t, st.Winner, "White")
	testutil.AssertEqual(t, st.Result, "1-0")
	testutil.AssertEqual(t, st.Check, "checkmate")
}

func TestMoveErrors(t *testing.T) {
	_, ts := newTestServer(t)
	g := createGame(t, ts.URL, createRequest{})
	url := ts.URL + "/games/" + g.ID + "/moves"

	tests := []struct {
		name string
		req  moveRequest
		code int
	}{
		{"malformed", moveRequest{Move: "Zz9"}, http.StatusBadRequest},
		{"no source", moveRequest{Move: "Nd4"}, http.StatusUnprocessableEntity},
		{"illegal squares", moveRequest{From: "e2", To: "e5"}, http.StatusUnprocessableEntity},
		{"off board", moveRequest{From: "e2", To: "e9"}, http.StatusBadRequest},
		{"bad promotion", moveRequest{From: "e2", To: "e4", Promotion: "x"}, http.StatusBadRequest},
		{"castle blocked", moveRequest{Move: "O-O"}, http.StatusUnprocessableEntity},
		{"empty request", moveRequest{}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp errorResponse
			code := do(t, http.MethodPost, url, tt.req, &resp)
			testutil.AssertEqual(t, code, tt.code)
			testutil.AssertTrue(t, resp.Error != "", "error message expected")
		})
	}

	var st GameState
	do(t, http.MethodGet, ts.URL+"/games/"+g.ID, nil, &st)
	testutil.AssertEqual(t, st.MoveCount, 0)
}

func TestTranscriptPartialFailure(t *testing.T) {
	_, ts := newTestServer(t)
	g := createGame(t, ts.URL, createRequest{})

	var resp errorResponse
	code := do(t, http.MethodPost, ts.URL+"/games/"+g.ID+"/moves", moveRequest{Transcript: "1.e4 e5 2.Ke3"}, &resp)
	testutil.AssertEqual(t, code, http.StatusUnprocessableEntity)
	testutil.AssertContains(t, resp.Error, "ply 3")
	testutil.AssertNotNil(t, resp.State)
	testutil.AssertEqual(t, resp.State.MoveCount, 2)
}

func TestGameOptions(t *testing.T) {
	_, ts := newTestServer(t)
	fen := "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1"

	strict := createGame(t, ts.URL, createRequest{FEN: fen})
	code := do(t, http.MethodPost, ts.URL+"/games/"+strict.ID+"/moves", moveRequest{Move: "d5"}, nil)
	testutil.AssertEqual(t, code, http.StatusUnprocessableEntity)

	lenient := createGame(t, ts.URL, createRequest{FEN: fen, Options: map[string]string{"api.notation_mismatch": "ignore"}})
	var st GameState
	code = do(t, http.MethodPost, ts.URL+"/games/"+lenient.ID+"/moves", moveRequest{Move: "d5"}, &st)
	testutil.AssertEqual(t, code, http.StatusOK)
	testutil.AssertEqual(t, st.FEN, "4k3/8/8/3P4/8/8/8/4K3 b - - 0 1")
}

func TestLegal(t *testing.T) {
	_, ts := newTestServer(t)
	g := createGame(t, ts.URL, createRequest{})

	var resp legalResponse
	testutil.AssertEqual(t, do(t, http.MethodGet, ts.URL+"/games/"+g.ID+"/legal?from=e2", nil, &resp), http.StatusOK)
	slices.Sort(resp.Moves)
	testutil.AssertEqual(t, resp.Moves, []string{"e3", "e4"})

	testutil.AssertEqual(t, do(t, http.MethodGet, ts.URL+"/games/"+g.ID+"/legal", nil, &resp), http.StatusOK)
	testutil.AssertEqual(t, len(resp.Moves), 20)

	var errResp errorResponse
	testutil.AssertEqual(t, do(t, http.MethodGet, ts.URL+"/games/"+g.ID+"/legal?from=z9", nil, &errResp), http.StatusBadRequest)
}

func TestUnknownGame(t *testing.T) {
	_, ts := newTestServer(t)
	var resp errorResponse
	testutil.AssertEqual(t, do(t, http.MethodGet, ts.URL+"/games/nope", nil, &resp), http.StatusNotFound)
	testutil.AssertEqual(t, do(t, http.MethodPost, ts.URL+"/games/nope/moves", moveRequest{Move: "e4"}, &resp), http.StatusNotFound)
	testutil.AssertEqual(t, do(t, http.MethodDelete, ts.URL+"/games/nope", nil, &resp), http.StatusNotFound)
}

func TestDelete(t *testing.T) {
	s, ts := newTestServer(t)
	g := createGame(t, ts.URL, createRequest{})
	testutil.AssertEqual(t, s.Games().Len(), 1)

	testutil.AssertEqual(t, do(t, http.MethodDelete, ts.URL+"/games/"+g.ID, nil, nil), http.StatusNoContent)
	testutil.AssertEqual(t, s.Games().Len(), 0)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	a := r.Create(engine.NewInitialBoard(), config.NewConfig())
	b := r.Create(engine.NewInitialBoard(), config.NewConfig())
	testutil.AssertTrue(t, a.ID != b.ID, "ids should differ")

	got, err := r.Get(a.ID)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, got == a)

	_, err = r.Get("missing")
	if !errors.Is(err, chesserrors.ErrGameNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrGameNotFound", err)
	}
}

func TestGameMoveErrorCarriesID(t *testing.T) {
	r := NewRegistry()
	g := r.Create(engine.NewInitialBoard(), testutil.QuietConfig())

	_, err := g.Play("Ke2")
	var moveErr *chesserrors.MoveError
	if !errors.As(err, &moveErr) {
		t.Fatalf("error = %v, want *MoveError", err)
	}
	testutil.AssertEqual(t, moveErr.GameID, g.ID)
	testutil.AssertEqual(t, moveErr.PlyNum, 1)
}

func TestWebsocket(t *testing.T) {
	_, ts := newTestServer(t)
	g := createGame(t, ts.URL, createRequest{})

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/games/" + g.ID + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var msg wsMessage
	testutil.AssertNoError(t, conn.ReadJSON(&msg))
	testutil.AssertNotNil(t, msg.State)
	testutil.AssertEqual(t, msg.State.MoveCount, 0)

	testutil.AssertNoError(t, conn.WriteMessage(websocket.TextMessage, []byte("e4")))
	msg = wsMessage{}
	testutil.AssertNoError(t, conn.ReadJSON(&msg))
	testutil.AssertNotNil(t, msg.State)
	testutil.AssertEqual(t, msg.State.MoveCount, 1)

	// Moves made over HTTP reach the watcher too.
	do(t, http.MethodPost, ts.URL+"/games/"+g.ID+"/moves", moveRequest{Move: "e5"}, nil)
	msg = wsMessage{}
	testutil.AssertNoError(t, conn.ReadJSON(&msg))
	testutil.AssertEqual(t, msg.State.Moves, []string{"e4", "e5"})

	testutil.AssertNoError(t, conn.WriteMessage(websocket.TextMessage, []byte("Qd4")))
	msg = wsMessage{}
	testutil.AssertNoError(t, conn.ReadJSON(&msg))
	testutil.AssertNil(t, msg.State)
	testutil.AssertContains(t, msg.Error, "Qd4")
}

func TestRecordExport(t *testing.T) {
	_, ts := newTestServer(t)
	g := createGame(t, ts.URL, createRequest{White: "Legall", Black: "Saint Brie"})
	do(t, http.MethodPost, ts.URL+"/games/"+g.ID+"/moves", moveRequest{Transcript: "1.e4 e5 2.Bc4 Nc6 3.Qh5 Nf6??"}, nil)
	do(t, http.MethodPost, ts.URL+"/games/"+g.ID+"/moves", moveRequest{From: "h5", To: "f7"}, nil)

	resp, err := http.Get(ts.URL + "/games/" + g.ID + "/pgn")
	testutil.AssertNoError(t, err)
	defer resp.Body.Close()
	testutil.AssertEqual(t, resp.StatusCode, http.StatusOK)
	testutil.AssertEqual(t, resp.Header.Get("Content-Type"), "application/x-chess-pgn")

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	testutil.AssertNoError(t, err)
	testutil.AssertContains(t, buf.String(), "[White \"Legall\"]\n[Black \"Saint Brie\"]\n[Result \"1-0\"]\n")
	testutil.AssertContains(t, buf.String(), "1. e4 e5 2. Bc4 Nc6 3. Qh5 Nf6 4. Qxf7# 1-0")

	var rec struct {
		PlyCount int `json:"plyCount"`
		Moves    []struct {
			SAN string `json:"san"`
		} `json:"moves"`
	}
	testutil.AssertEqual(t, do(t, http.MethodGet, ts.URL+"/games/"+g.ID+"/pgn?format=json", nil, &rec), http.StatusOK)
	testutil.AssertEqual(t, rec.PlyCount, 7)
	testutil.AssertEqual(t, rec.Moves[6].SAN, "Qxf7#")
}

func TestRecordFromFEN(t *testing.T) {
	_, ts := newTestServer(t)
	const fen = "4k3/8/8/8/8/8/8/R3K3 b - - 0 10"
	g := createGame(t, ts.URL, createRequest{FEN: fen})
	testutil.AssertEqual(t, g.Tags["FEN"], fen)
	testutil.AssertEqual(t, g.Tags["SetUp"], "1")
	do(t, http.MethodPost, ts.URL+"/games/"+g.ID+"/moves", moveRequest{Move: "Kd8"}, nil)

	resp, err := http.Get(ts.URL + "/games/" + g.ID + "/pgn")
	testutil.AssertNoError(t, err)
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	testutil.AssertNoError(t, err)
	testutil.AssertContains(t, buf.String(), "\n10... Kd8 *\n")
}

func TestRecordUnknownGame(t *testing.T) {
	_, ts := newTestServer(t)
	var resp errorResponse
	testutil.AssertEqual(t, do(t, http.MethodGet, ts.URL+"/games/nope/pgn", nil, &resp), http.StatusNotFound)
}

func TestWebsocketUnknownGame(t *testing.T) {
	_, ts := newTestServer(t)
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/games/nope/ws"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	testutil.AssertError(t, err)
	testutil.AssertNotNil(t, resp)
	testutil.AssertEqual(t, resp.StatusCode, http.StatusNotFound)
}
