package game

import (
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/sketchwars/sketchwars-backend/internal"
)

// GuesserAward is the payout for a correct guess with remaining seconds on
// the round clock. correctSoFar counts earlier correct guesses this round;
// the position bonus shrinks by one per earlier guesser and may go negative.
func GuesserAward(remaining, correctSoFar int, first bool) int {
	award := 10
	award += int(math.Min(30, math.Round(float64(remaining)*0.5)))
	award += 6 - correctSoFar
	if first {
		award += 4
	}
	return award
}

// DrawerAward scales the first guesser's award by the share of guessers who
// solved the word. A round nobody solved costs the drawer ten points.
func DrawerAward(winnerScore, guessedCount, totalGuessers int) int {
	if guessedCount <= 0 || totalGuessers <= 0 {
		return -10
	}
	return int(math.Round(float64(winnerScore) * float64(guessedCount) / float64(totalGuessers)))
}

// ScoreBoard tracks cumulative totals for the running game plus the points
// earned in the current round. It is not safe for concurrent use; the
// session guards it with its own lock.
type ScoreBoard struct {
	totals map[string]int
	ledger map[string]int
}

func NewScoreBoard() *ScoreBoard {
	return &ScoreBoard{
		totals: make(map[string]int),
		ledger: make(map[string]int),
	}
}

// Join adds a player at the given starting total. Players rejoining the
// same game pass the total they left with.
func (sb *ScoreBoard) Join(name string, initial int) {
	sb.totals[name] = initial
}

// Remove drops the player's running total. Their round ledger entry stays
// so the end-of-round summary still lists them.
func (sb *ScoreBoard) Remove(name string) {
	delete(sb.totals, name)
}

// ResetForGame zeroes every present player's total.
func (sb *ScoreBoard) ResetForGame() {
	for name := range sb.totals {
		sb.totals[name] = 0
	}
}

// ResetRound starts a fresh ledger with a zero entry per listed player.
func (sb *ScoreBoard) ResetRound(players []string) {
	sb.ledger = make(map[string]int, len(players))
	for _, name := range players {
		sb.ledger[name] = 0
	}
}

// JoinRound adds a zero ledger entry for a player who connected mid-round.
func (sb *ScoreBoard) JoinRound(name string) {
	if _, ok := sb.ledger[name]; !ok {
		sb.ledger[name] = 0
	}
}

// CreditRound adds delta to both the player's total and the round ledger.
func (sb *ScoreBoard) CreditRound(name string, delta int) {
	sb.totals[name] += delta
	sb.ledger[name] += delta
}

func (sb *ScoreBoard) Total(name string) int {
	return sb.totals[name]
}

// Ledger returns a copy of the current round's ledger.
func (sb *ScoreBoard) Ledger() map[string]int {
	return maps.Clone(sb.ledger)
}

// Leaderboard ranks every present player by total, highest first, ties
// broken by name.
func (sb *ScoreBoard) Leaderboard() []internal.LeaderboardEntry {
	entries := lo.MapToSlice(sb.totals, func(name string, score int) internal.LeaderboardEntry {
		return internal.LeaderboardEntry{Name: name, Score: score}
	})
	slices.SortFunc(entries, func(a, b internal.LeaderboardEntry) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		return strings.Compare(a.Name, b.Name)
	})
	for i := range entries {
		entries[i].Position = i + 1
	}
	return entries
}
