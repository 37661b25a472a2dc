package server

import (
	"net/http"

	"github.com/gorilla/websocket"
)

// wsMessage is one frame sent to a watcher: a state after a move, or an
// error for a move that watcher sent.
type wsMessage struct {
	State *GameState `json:"state,omitempty"`
	Error string     `json:"error,omitempty"`
}

// handleWatch upgrades to a websocket. Text frames from the client are moves
// in algebraic notation; every applied move, from any client, is pushed back
// as the new state.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	g, ok := s.game(w, r)
	if !ok {
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "id", g.ID, "error", err)
		return
	}
	defer conn.Close()
	s.log.Info("watcher connected", "id", g.ID, "remote", conn.RemoteAddr().String())

	out := g.subscribe()
	defer g.unsubscribe(out)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			kind, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if kind != websocket.TextMessage {
				continue
			}
			if _, err := g.Play(string(msg)); err != nil {
				select {
				case out <- wsMessage{Error: err.Error()}:
				default:
				}
			}
		}
	}()

	st := g.State()
	if err := conn.WriteJSON(wsMessage{State: &st}); err != nil {
		return
	}
	for {
		select {
		case msg := <-out:
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
