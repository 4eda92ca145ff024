package game

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/sketchwars/sketchwars-backend/internal"
)

// Guess tuning: a correct guess shaves up to guessTighten seconds off the
// clock but never below guessFloor, and the "kinda close" nudge only fires
// inside the last closeCallSeconds.
const (
	guessTighten     = 5
	guessFloor       = 10
	closeCallSeconds = 10
)

// handleChat treats every chat line as a potential guess, then relays it.
// The claimed sender is ignored in favor of the registry-resolved identity.
func (s *Session) handleChat(conn Conn, chat internal.ChatPayload) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name, ok := s.reg.NameOf(conn)
	if !ok {
		s.log.Debug().Msg("dropping chat from unregistered connection")
		return
	}
	if chat.Sender != "" && chat.Sender != name {
		s.log.Warn().Str("claimed", chat.Sender).Str("resolved", name).Msg("chat sender mismatch")
	}
	text := strings.TrimSpace(chat.Text)
	if text == "" {
		return
	}

	s.evaluateGuessLocked(name, text)
	s.relayChatLocked(name, text)
}

// evaluateGuessLocked scores text against the secret word. Guesses only
// count while the round is live, from players who can still guess.
func (s *Session) evaluateGuessLocked(name, text string) {
	if s.state != internal.StatePlaying || name == s.round.drawer || s.guessed[name] {
		return
	}

	guess := strings.ToLower(text)
	target := strings.ToLower(s.round.word)
	if guess != target {
		switch dist := levenshtein.ComputeDistance(guess, target); {
		case dist == 1:
			s.systemChatTo(name, "very close!", colorHint)
		case dist == 2 && s.round.remaining <= closeCallSeconds:
			s.systemChatTo(name, "kinda close!", colorHint)
		}
		return
	}

	first := s.round.correct == 0
	award := GuesserAward(s.round.remaining, s.round.correct, first)
	s.round.correct++
	if first {
		s.round.firstAward = award
	}
	s.guessed[name] = true
	s.scores.CreditRound(name, award)

	s.systemChatTo(name, "you guessed the word!", colorSystem)
	s.systemChatExcept(name, name+" guessed the word!", colorSystem)
	s.broadcastPlayerLocked(name)
	s.tightenClockLocked()
	s.persistScoreLocked(name)
	s.log.Info().Str("player", name).Int("award", award).Int("remaining", s.round.remaining).Msg("correct guess")

	if s.allGuessedLocked() {
		s.endRoundLocked()
	}
}

// tightenClockLocked compresses the rest of the round once guesses start
// landing, without dipping below the floor.
func (s *Session) tightenClockLocked() {
	cut := min(guessTighten, s.round.remaining-guessFloor)
	if cut <= 0 {
		return
	}
	s.round.budget -= cut
	s.round.remaining -= cut
}

// relayChatLocked forwards a player's line to everyone else and records it
// for replay to late joiners.
func (s *Session) relayChatLocked(name, text string) {
	frame, err := internal.Encode(internal.TypeChat, internal.ChatPayload{Sender: name, Text: text})
	if err != nil {
		s.log.Error().Err(err).Msg("encode chat")
		return
	}
	s.bus.BroadcastFrameExcept(name, frame)
	s.chatHist.Append(frame)
}
