package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaxHintsRoundsUpPerThreeLetters(t *testing.T) {
	assert.Equal(t, 1, MaxHints("cat"))
	assert.Equal(t, 2, MaxHints("four"))
	assert.Equal(t, 2, MaxHints("bridge"))
	assert.Equal(t, 3, MaxHints("ice cream"))
	assert.Equal(t, 0, MaxHints("..."))
}

func TestBuildMaskHidesOnlyUnrevealedLetters(t *testing.T) {
	word := "tie-dye art"

	mask := BuildMask(word, map[int]bool{})
	assert.Equal(t, "___-___  ___", mask)

	mask = BuildMask(word, map[int]bool{0: true, 5: true})
	assert.Equal(t, "t__-_y_  ___", mask)
}

func TestRevealNextUncoversOneLetterAtATime(t *testing.T) {
	word := "bridge"
	revealed := map[int]bool{}

	first := RevealNext(word, revealed)
	assert.Len(t, revealed, 1)
	assert.Equal(t, 5, strings.Count(first, "_"))

	second := RevealNext(word, revealed)
	assert.Len(t, revealed, 2)
	assert.Equal(t, 4, strings.Count(second, "_"))

	// Allowance for a six letter word is two, so further calls change nothing.
	third := RevealNext(word, revealed)
	assert.Len(t, revealed, 2)
	assert.Equal(t, second, third)
}

func TestRevealNextOnlyTouchesLetters(t *testing.T) {
	word := "a-b c"
	revealed := map[int]bool{}
	for i := 0; i < 10; i++ {
		RevealNext(word, revealed)
	}
	for idx := range revealed {
		assert.Contains(t, []int{0, 2, 4}, idx)
	}
}

func TestHintDueSpacingAcrossWindow(t *testing.T) {
	// Two reveals: first due at 30s left, second at 15s left.
	maxHints := 2

	assert.False(t, HintDue(31, 0, maxHints))
	assert.True(t, HintDue(30, 0, maxHints))
	assert.False(t, HintDue(16, 1, maxHints))
	assert.True(t, HintDue(15, 1, maxHints))
	assert.False(t, HintDue(1, 2, maxHints))

	assert.False(t, HintDue(0, 0, 0))
}
