package game

import (
	"math/rand"
	"strings"
	"unicode"
)

// hintWindow is the stretch of remaining round seconds during which letter
// reveals unlock one by one.
const hintWindow = 30

// letterIndices returns the rune positions eligible for masking and reveals.
func letterIndices(word string) []int {
	var idx []int
	for i, r := range []rune(word) {
		if unicode.IsLetter(r) {
			idx = append(idx, i)
		}
	}
	return idx
}

// MaxHints is the reveal allowance for a word: one letter per started group
// of three.
func MaxHints(word string) int {
	return (len(letterIndices(word)) + 2) / 3
}

// BuildMask renders word with unrevealed letters replaced by underscores.
// Revealed letters and punctuation appear literally; whitespace widens so
// word boundaries stay readable. Keys of revealed are rune positions.
func BuildMask(word string, revealed map[int]bool) string {
	var b strings.Builder
	for i, r := range []rune(word) {
		switch {
		case unicode.IsSpace(r):
			b.WriteString("  ")
		case !unicode.IsLetter(r) || revealed[i]:
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// RevealNext uncovers one uniformly random hidden letter, mutating revealed,
// and returns the resulting mask. Once the allowance is spent it just
// rebuilds the current mask.
func RevealNext(word string, revealed map[int]bool) string {
	if len(revealed) >= MaxHints(word) {
		return BuildMask(word, revealed)
	}
	var hidden []int
	for _, i := range letterIndices(word) {
		if !revealed[i] {
			hidden = append(hidden, i)
		}
	}
	if len(hidden) == 0 {
		return BuildMask(word, revealed)
	}
	revealed[hidden[rand.Intn(len(hidden))]] = true
	return BuildMask(word, revealed)
}

// HintDue reports whether another reveal has unlocked with remaining seconds
// left on the round clock. Reveals are spaced evenly across the hint window
// at the end of the round.
func HintDue(remaining, shown, maxHints int) bool {
	if maxHints <= 0 || shown >= maxHints {
		return false
	}
	return remaining <= hintWindow*(maxHints-shown)/maxHints
}
