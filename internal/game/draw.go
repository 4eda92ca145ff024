package game

import (
	"github.com/sketchwars/sketchwars-backend/internal"
)

// handleDraw relays a draw op from the current drawer to everyone else and
// records it for replay. Ops from anyone but the drawer, or outside a live
// round, are dropped. A clear op also empties the recorded canvas so late
// joiners do not replay strokes that were wiped.
func (s *Session) handleDraw(conn Conn, op internal.DrawOp) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name, ok := s.reg.NameOf(conn)
	if !ok {
		return
	}
	if s.state != internal.StatePlaying || name != s.round.drawer {
		s.log.Debug().Str("player", name).Msg("ignoring draw op")
		return
	}

	frame, err := internal.Encode(internal.TypeDraw, op)
	if err != nil {
		s.log.Error().Err(err).Msg("encode draw op")
		return
	}
	if op.IsClear() {
		s.drawHist.Clear()
	}
	s.drawHist.Append(frame)
	s.bus.BroadcastFrameExcept(name, frame)
}
