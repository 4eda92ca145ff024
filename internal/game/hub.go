package game

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/sketchwars/sketchwars-backend/internal"
)

// Hub owns every live session. Joiners are packed into sessions with free
// slots; a session is retired once its last player leaves.
type Hub struct {
	log      zerolog.Logger
	settings internal.Settings
	sched    *Scheduler
	words    WordStore
	users    UserStore

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewHub(settings internal.Settings, sched *Scheduler, words WordStore, users UserStore, log zerolog.Logger) *Hub {
	return &Hub{
		log:      log,
		settings: settings,
		sched:    sched,
		words:    words,
		users:    users,
		sessions: make(map[string]*Session),
	}
}

func (h *Hub) Get(id string) (*Session, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.sessions[id]
	return s, ok
}

// Join returns a session with a free slot, creating one when every session
// is full.
func (h *Hub) Join() *Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, s := range h.sessions {
		if s.CanJoin() {
			return s
		}
	}
	s := NewSession(uuid.NewString(), h.settings, h.sched, h.words, h.users, h.log)
	h.sessions[s.ID()] = s
	h.log.Info().Str("session", s.ID()).Msg("session created")
	return s
}

// Release detaches conn from its session and retires the session once the
// last player is gone.
func (h *Hub) Release(s *Session, conn Conn) {
	s.Disconnect(conn)

	h.mu.Lock()
	defer h.mu.Unlock()
	if s.Empty() {
		delete(h.sessions, s.ID())
		s.Close()
		h.log.Info().Str("session", s.ID()).Msg("session retired")
	}
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// Close tears down every session, for server shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	sessions := lo.Values(h.sessions)
	h.sessions = make(map[string]*Session)
	h.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}
