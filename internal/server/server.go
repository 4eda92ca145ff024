package server

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/sketchwars/sketchwars-backend/internal/config"
	"github.com/sketchwars/sketchwars-backend/internal/game"
	"github.com/sketchwars/sketchwars-backend/internal/ws"
)

// Server owns the HTTP surface: REST endpoints for session discovery and
// the websocket upgrade path.
type Server struct {
	cfg *config.Config
	log zerolog.Logger
	hub *game.Hub
	ws  *ws.Handler
}

func New(cfg *config.Config, hub *game.Hub, log zerolog.Logger) *Server {
	return &Server{
		cfg: cfg,
		log: log,
		hub: hub,
		ws:  ws.NewHandler(hub, cfg.Server.AllowedOrigin, log),
	}
}

// HTTPServer wraps the route table in an http.Server with sane timeouts.
// Write and idle timeouts stay generous because websocket connections are
// long-lived.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.GetAddr(),
		Handler:      s.RegisterRoutes(),
		ReadTimeout:  10 * time.Second,
		IdleTimeout:  time.Minute,
		WriteTimeout: 0,
	}
}
