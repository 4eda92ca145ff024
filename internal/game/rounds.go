package game

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/sketchwars/sketchwars-backend/internal"
)

// startGameLocked begins a fresh game for the current roster. Callers have
// already verified the quorum.
func (s *Session) startGameLocked() {
	s.gameID = uuid.NewString()
	s.roundsPlayed = 0
	s.drawn = make(map[string]bool)
	s.guessed = make(map[string]bool)
	s.scores.ResetForGame()

	for _, name := range s.order {
		s.broadcastPlayerLocked(name)
	}
	s.systemChatLocked("a new game is starting", colorSystem)
	s.log.Info().Str("game_id", s.gameID).Int("players", s.reg.Len()).Msg("game starting")

	s.prepareRoundLocked()
}

// prepareRoundLocked picks the next drawer and has them choose a word. When
// the rotation is exhausted it advances the round counter and either starts
// the next rotation or ends the game.
func (s *Session) prepareRoundLocked() {
	if s.reg.Len() < internal.Quorum {
		s.endGameLocked()
		return
	}

	drawer, ok := lo.Find(s.order, func(name string) bool { return !s.drawn[name] })
	if !ok {
		s.drawn = make(map[string]bool)
		s.roundsPlayed++
		if s.roundsPlayed >= s.settings.MaxRounds {
			s.endGameLocked()
			return
		}
		s.prepareRoundLocked()
		return
	}

	s.state = internal.StateChoosingWord
	s.round = roundState{
		number: s.roundsPlayed + 1,
		drawer: drawer,
	}

	go s.fetchChoices(s.gameID, drawer)

	s.systemChatLocked(drawer+" is choosing a word", colorSystem)
	s.armTimerLocked(s.countdown(s.settings.ChoosingSeconds), func() {
		if len(s.round.choices) == 0 {
			s.log.Warn().Msg("word choices never arrived, ending game")
			s.endGameLocked()
			return
		}
		s.startRoundLocked(s.round.choices[0])
	})
	s.log.Info().Str("drawer", drawer).Int("round", s.round.number).Msg("waiting for word choice")
}

// fetchChoices runs off the session lock. By the time the store answers the
// round may have moved on, so the result only applies if the session is
// still choosing for the same drawer in the same game.
func (s *Session) fetchChoices(gameID, drawer string) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	words, err := s.words.FetchRandomWords(ctx, s.settings.WordChoices)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != internal.StateChoosingWord || s.gameID != gameID || s.round.drawer != drawer {
		return
	}
	if err != nil || len(words) == 0 {
		s.log.Error().Err(err).Msg("fetching words failed")
		s.systemChatLocked("could not fetch words, ending the game", colorError)
		s.endGameLocked()
		return
	}
	s.round.choices = words
	s.bus.Send(drawer, internal.TypeWordChoices, internal.WordChoicesPayload{Words: words})
}

// handleWord accepts the drawer's pick from the offered choices.
func (s *Session) handleWord(conn Conn, word string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name, ok := s.reg.NameOf(conn)
	if !ok {
		return
	}
	if s.state != internal.StateChoosingWord || name != s.round.drawer {
		s.log.Debug().Str("player", name).Msg("ignoring word pick")
		return
	}
	if !lo.Contains(s.round.choices, word) {
		s.log.Warn().Str("player", name).Msg("word pick outside offered choices")
		return
	}
	s.startRoundLocked(word)
}

// startRoundLocked moves the session into Playing: the drawer learns the
// word, everyone else gets the mask, and the guessing clock starts.
func (s *Session) startRoundLocked(word string) {
	s.round.word = word
	s.round.choices = nil
	s.round.revealed = make(map[int]bool)
	s.round.budget = s.settings.GuessingSeconds
	s.round.remaining = s.round.budget
	s.round.correct = 0
	s.round.firstAward = 0
	s.guessed = make(map[string]bool)
	s.scores.ResetRound(s.order)
	s.drawHist.Clear()
	s.state = internal.StatePlaying

	mask := BuildMask(word, s.round.revealed)
	for _, name := range s.order {
		wordOrHint := mask
		if name == s.round.drawer {
			wordOrHint = word
		}
		s.bus.Send(name, internal.TypeStartRound, internal.StartRoundPayload{
			Drawer:      s.round.drawer,
			WordOrHint:  wordOrHint,
			RoundNumber: s.round.number,
		})
	}

	maxHints := MaxHints(word)
	s.armTimerLocked(
		func(elapsed time.Duration) bool {
			remaining := s.round.budget - int(elapsed/time.Second)
			s.round.remaining = remaining
			s.bus.Broadcast(internal.TypeTimer, internal.TimerPayload{RemainingTime: remaining})
			if HintDue(remaining, len(s.round.revealed), maxHints) {
				next := RevealNext(s.round.word, s.round.revealed)
				s.bus.BroadcastExcept(s.round.drawer, internal.TypeWord, internal.WordPayload{Word: next})
			}
			return remaining <= 0
		},
		func() {
			s.endRoundLocked()
		},
	)
	s.log.Info().Str("drawer", s.round.drawer).Int("round", s.round.number).Msg("round started")
}

// endRoundLocked settles the drawer's payout, reveals the word and runs the
// cooldown toward the next rotation slot.
func (s *Session) endRoundLocked() {
	drawer := s.round.drawer
	word := s.round.word
	s.drawn[drawer] = true

	totalGuessers := lo.CountBy(s.order, func(name string) bool { return name != drawer })
	if s.reg.Has(drawer) {
		award := DrawerAward(s.round.firstAward, s.round.correct, totalGuessers)
		s.scores.CreditRound(drawer, award)
		s.broadcastPlayerLocked(drawer)
		s.persistScoreLocked(drawer)
	}

	s.bus.Broadcast(internal.TypeEndRound, internal.EndRoundPayload{
		Word:   word,
		Scores: s.scores.Ledger(),
	})
	ratio := 0.0
	if totalGuessers > 0 {
		ratio = float64(s.round.correct) / float64(totalGuessers)
	}
	s.systemChatLocked(fmt.Sprintf("the word was %q", word), recapColor(ratio))
	s.log.Info().Str("drawer", drawer).Str("word", word).Int("guessed", s.round.correct).Int("guessers", totalGuessers).Msg("round ended")

	s.state = internal.StateCooldown
	s.round = roundState{}
	s.armTimerLocked(s.countdown(s.settings.CooldownSeconds), func() {
		if s.reg.Len() >= internal.Quorum {
			s.prepareRoundLocked()
		} else {
			s.endGameLocked()
		}
	})
}

// endGameLocked publishes the final standings and idles. If enough players
// stay through the intermission the next game starts on its own.
func (s *Session) endGameLocked() {
	s.state = internal.StateIdle
	s.round = roundState{}
	s.bus.Broadcast(internal.TypeGameOver, internal.GameOverPayload{Leaderboard: s.scores.Leaderboard()})
	s.systemChatLocked("game over", colorSystem)
	s.log.Info().Str("game_id", s.gameID).Msg("game over")

	s.armTimerLocked(s.countdown(s.settings.IntermissionSeconds), func() {
		if s.reg.Len() >= internal.Quorum {
			s.startGameLocked()
		}
	})
}

// recapColor fades the end-of-round notice from red toward green with the
// share of successful guessers.
func recapColor(ratio float64) string {
	r := int(math.Round(231 + (46-231)*ratio))
	g := int(math.Round(76 + (204-76)*ratio))
	b := int(math.Round(60 + (113-60)*ratio))
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
