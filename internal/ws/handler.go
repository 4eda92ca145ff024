package ws

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/sketchwars/sketchwars-backend/internal/game"
)

// Handler upgrades HTTP requests into game connections.
type Handler struct {
	hub      *game.Hub
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

func NewHandler(hub *game.Hub, allowedOrigin string, log zerolog.Logger) *Handler {
	return &Handler{
		hub: hub,
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if allowedOrigin == "" || allowedOrigin == "*" {
					return true
				}
				return r.Header.Get("Origin") == allowedOrigin
			},
		},
	}
}

// ServeHTTP attaches the caller to the requested session, or to any session
// with a free slot when none is named. It blocks for the lifetime of the
// connection.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var session *game.Session
	if id := mux.Vars(r)["sessionId"]; id != "" {
		s, ok := h.hub.Get(id)
		if !ok {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		session = s
	} else {
		session = h.hub.Join()
	}
	if !session.CanJoin() {
		http.Error(w, "session is full", http.StatusConflict)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := NewClient(conn, h.hub, session, h.log)
	client.Run()
}
