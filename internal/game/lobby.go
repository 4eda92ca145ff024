package game

import (
	"context"

	"github.com/samber/lo"

	"github.com/sketchwars/sketchwars-backend/internal"
)

// handshake admits a connection under the identity its token resolves to.
// The store lookup runs before the session lock is taken so a slow store
// cannot stall the game loop.
func (s *Session) handshake(conn Conn, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	user, err := s.users.FindByToken(ctx, token)
	if err != nil {
		s.log.Warn().Err(err).Msg("rejecting connection, token lookup failed")
		s.refuse(conn, "could not verify your identity")
		return
	}
	name := user.Name

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		conn.Close()
		return
	}

	returning := lo.Contains(s.order, name)
	if !returning && s.reg.Len() >= s.settings.MaxPlayers {
		s.log.Warn().Str("player", name).Msg("rejecting connection, session full")
		s.refuse(conn, "this session is full")
		return
	}

	if evicted := s.reg.Register(name, conn); evicted != nil && evicted != conn {
		evicted.Close()
		s.log.Info().Str("player", name).Msg("evicted previous connection")
	}
	if !returning {
		s.order = append(s.order, name)
		initial := 0
		if s.gameID != "" && user.LastGameID == s.gameID {
			initial = user.Score
		}
		s.scores.Join(name, initial)
	}

	s.bus.Send(name, internal.TypeHandshake, internal.HandshakeReply{Name: name})

	// Catch the joiner up: everything drawn and said so far, in order.
	for _, frame := range s.drawHist.Snapshot() {
		conn.Enqueue(frame)
	}
	for _, frame := range s.chatHist.Snapshot() {
		conn.Enqueue(frame)
	}

	// The joiner learns the existing roster, everyone learns the joiner.
	for _, other := range s.order {
		if other != name {
			s.bus.Send(name, internal.TypePlayer, internal.Player{
				Name:    other,
				Score:   s.scores.Total(other),
				Guessed: s.guessed[other],
			})
		}
	}
	s.broadcastPlayerLocked(name)
	if !returning {
		s.systemChatLocked(name+" joined the game", colorSystem)
	}

	switch s.state {
	case internal.StatePlaying:
		wordOrHint := BuildMask(s.round.word, s.round.revealed)
		if name == s.round.drawer {
			wordOrHint = s.round.word
		}
		s.bus.Send(name, internal.TypeStartRound, internal.StartRoundPayload{
			Drawer:      s.round.drawer,
			WordOrHint:  wordOrHint,
			RoundNumber: s.round.number,
		})
		s.bus.Send(name, internal.TypeTimer, internal.TimerPayload{RemainingTime: s.round.remaining})
		s.scores.JoinRound(name)
	case internal.StateChoosingWord:
		s.systemChatTo(name, s.round.drawer+" is choosing a word", colorSystem)
	case internal.StateIdle:
		if s.reg.Len() == internal.Quorum {
			s.startGameLocked()
		}
	}

	s.log.Info().Str("player", name).Bool("returning", returning).Msg("player joined")
}

// refuse sends one last notice to an unadmitted connection and closes it.
func (s *Session) refuse(conn Conn, reason string) {
	if frame, err := internal.Encode(internal.TypeChat, internal.ChatPayload{Text: reason, Color: colorError}); err == nil {
		conn.Enqueue(frame)
	}
	conn.Close()
}

// Disconnect removes conn's player from the session. Connections that were
// already evicted by a newer login resolve to no identity and change
// nothing.
func (s *Session) Disconnect(conn Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := s.reg.Unregister(conn)
	if name == "" {
		return
	}
	s.order = lo.Without(s.order, name)
	delete(s.guessed, name)
	s.scores.Remove(name)

	s.bus.Broadcast(internal.TypePlayerDisconnected, internal.PlayerDisconnectedPayload{Name: name})
	s.systemChatLocked(name+" left the game", colorSystem)
	s.log.Info().Str("player", name).Str("state", string(s.state)).Msg("player disconnected")

	switch {
	case s.state == internal.StateChoosingWord && name == s.round.drawer:
		s.prepareRoundLocked()
	case s.state == internal.StateChoosingWord && s.reg.Len() < internal.Quorum:
		s.endGameLocked()
	case s.state == internal.StatePlaying && name == s.round.drawer:
		s.endRoundLocked()
	case s.state == internal.StatePlaying && s.allGuessedLocked():
		s.endRoundLocked()
	}
}

// allGuessedLocked reports whether every connected non-drawer has solved the
// word. With nobody left but the drawer it is vacuously true, which ends the
// round on the spot.
func (s *Session) allGuessedLocked() bool {
	return lo.EveryBy(s.order, func(name string) bool {
		return name == s.round.drawer || s.guessed[name]
	})
}
