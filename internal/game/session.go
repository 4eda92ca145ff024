package game

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sketchwars/sketchwars-backend/internal"
)

// storeTimeout bounds every word and user store call made on behalf of a
// session.
const storeTimeout = 5 * time.Second

// Chat line colors for server-generated notices.
const (
	colorSystem = "#2ecc71"
	colorHint   = "#f1c40f"
	colorError  = "#e74c3c"
)

// roundState is everything that only means something between prepareRound
// and endRound.
type roundState struct {
	number     int
	drawer     string
	word       string
	choices    []string
	revealed   map[int]bool
	budget     int // guessing seconds for this round, shrinks on correct guesses
	remaining  int // seconds left as of the last tick
	correct    int // correct guesses so far
	firstAward int // first guesser's award, basis for the drawer payout
}

// Session is one drawing-and-guessing room: a roster of live connections
// and a timer-driven game loop over them. Connection reads, timer ticks and
// store completions all funnel through s.mu, so handlers never interleave.
type Session struct {
	id  string
	log zerolog.Logger

	settings internal.Settings
	sched    *Scheduler
	words    WordStore
	users    UserStore

	mu     sync.Mutex
	closed bool
	state  internal.GameState
	reg    *Registry
	bus    *Bus
	scores *ScoreBoard

	order        []string // join order, drives the drawer rotation
	guessed      map[string]bool
	drawn        map[string]bool
	roundsPlayed int
	gameID       string
	round        roundState

	drawHist *History[[]byte]
	chatHist *History[[]byte]

	timer      *Timer
	timerEpoch uint64
}

func NewSession(id string, settings internal.Settings, sched *Scheduler, words WordStore, users UserStore, log zerolog.Logger) *Session {
	reg := NewRegistry()
	log = log.With().Str("session", id).Logger()
	return &Session{
		id:       id,
		log:      log,
		settings: settings,
		sched:    sched,
		words:    words,
		users:    users,
		state:    internal.StateIdle,
		reg:      reg,
		bus:      NewBus(reg, log),
		scores:   NewScoreBoard(),
		guessed:  make(map[string]bool),
		drawn:    make(map[string]bool),
		drawHist: NewHistory[[]byte](internal.DrawHistoryCapacity),
		chatHist: NewHistory[[]byte](internal.ChatHistoryCapacity),
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) PlayerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.Len()
}

func (s *Session) Empty() bool {
	return s.PlayerCount() == 0
}

// CanJoin reports whether the session has room for another player.
func (s *Session) CanJoin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed && s.reg.Len() < s.settings.MaxPlayers
}

// Close tears the session down: the timer dies, every connection is closed
// and later handshakes are refused.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.cancelTimerLocked()
	s.state = internal.StateIdle
	s.round = roundState{}
	s.reg.Each(func(_ string, conn Conn) {
		conn.Close()
	})
	s.log.Info().Msg("session closed")
}

// Dispatch routes one inbound frame from conn. Read loops call it for every
// frame they receive; malformed or out-of-place frames are dropped with a
// log line rather than killing the connection.
func (s *Session) Dispatch(conn Conn, frame []byte) {
	var msg internal.Message[json.RawMessage]
	if err := json.Unmarshal(frame, &msg); err != nil {
		s.log.Debug().Err(err).Msg("dropping malformed frame")
		return
	}

	switch msg.Type {
	case internal.TypeHandshake:
		var req internal.HandshakeRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			s.log.Debug().Err(err).Msg("dropping malformed handshake")
			return
		}
		s.handshake(conn, req.Token)
	case internal.TypeWord:
		var pick internal.WordPayload
		if err := json.Unmarshal(msg.Data, &pick); err != nil {
			s.log.Debug().Err(err).Msg("dropping malformed word pick")
			return
		}
		s.handleWord(conn, pick.Word)
	case internal.TypeDraw:
		var op internal.DrawOp
		if err := json.Unmarshal(msg.Data, &op); err != nil {
			s.log.Debug().Err(err).Msg("dropping malformed draw op")
			return
		}
		s.handleDraw(conn, op)
	case internal.TypeChat:
		var chat internal.ChatPayload
		if err := json.Unmarshal(msg.Data, &chat); err != nil {
			s.log.Debug().Err(err).Msg("dropping malformed chat")
			return
		}
		s.handleChat(conn, chat)
	default:
		s.log.Debug().Str("type", string(msg.Type)).Msg("dropping unhandled message type")
	}
}

// armTimerLocked replaces the session's live timer. The scheduler fires the
// first tick synchronously while the caller still holds s.mu, so the wrapper
// skips locking exactly once; every later tick and the completion callback
// re-acquire the lock and bail out if a newer timer has been armed since.
// Tick callbacks must not stop on the first tick, which holds for every
// countdown here because budgets are at least one second.
func (s *Session) armTimerLocked(tick func(elapsed time.Duration) bool, onDone func()) {
	if s.timer != nil {
		s.timer.Cancel()
	}
	s.timerEpoch++
	epoch := s.timerEpoch

	first := true
	wrappedTick := func(elapsed time.Duration) bool {
		if first {
			first = false
			return tick(elapsed)
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if epoch != s.timerEpoch {
			return true
		}
		return tick(elapsed)
	}
	wrappedDone := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if epoch != s.timerEpoch {
			return
		}
		onDone()
	}
	s.timer = s.sched.Start(wrappedTick, wrappedDone)
}

func (s *Session) cancelTimerLocked() {
	if s.timer != nil {
		s.timer.Cancel()
		s.timer = nil
	}
	s.timerEpoch++
}

// countdown builds a tick callback that broadcasts the seconds left of a
// fixed budget and stops at zero.
func (s *Session) countdown(budget int) func(elapsed time.Duration) bool {
	return func(elapsed time.Duration) bool {
		remaining := budget - int(elapsed/time.Second)
		s.bus.Broadcast(internal.TypeTimer, internal.TimerPayload{RemainingTime: remaining})
		return remaining <= 0
	}
}

func (s *Session) broadcastPlayerLocked(name string) {
	s.bus.Broadcast(internal.TypePlayer, internal.Player{
		Name:    name,
		Score:   s.scores.Total(name),
		Guessed: s.guessed[name],
	})
}

// systemChatLocked broadcasts a server notice and keeps it out of the chat
// history, so replays only carry player chat.
func (s *Session) systemChatLocked(text, color string) {
	s.bus.Broadcast(internal.TypeChat, internal.ChatPayload{Text: text, Color: color})
}

func (s *Session) systemChatTo(name, text, color string) {
	s.bus.Send(name, internal.TypeChat, internal.ChatPayload{Text: text, Color: color})
}

func (s *Session) systemChatExcept(except, text, color string) {
	s.bus.BroadcastExcept(except, internal.TypeChat, internal.ChatPayload{Text: text, Color: color})
}

// persistScoreLocked snapshots the player's total under the lock and writes
// it out on a fresh goroutine so a slow store never blocks the game loop.
func (s *Session) persistScoreLocked(name string) {
	score := s.scores.Total(name)
	gameID := s.gameID
	log := s.log
	users := s.users
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := users.PersistScore(ctx, name, score, gameID); err != nil {
			log.Error().Err(err).Str("player", name).Msg("persisting score failed")
		}
	}()
}
