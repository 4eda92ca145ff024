package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoryEvictsOldestAtCapacity(t *testing.T) {
	h := NewHistory[int](3)
	for i := 1; i <= 5; i++ {
		h.Append(i)
	}

	assert.Equal(t, 3, h.Len())
	assert.Equal(t, []int{3, 4, 5}, h.Snapshot())
}

func TestHistorySnapshotIsACopy(t *testing.T) {
	h := NewHistory[string](4)
	h.Append("a")
	h.Append("b")

	snap := h.Snapshot()
	snap[0] = "mutated"
	h.Append("c")

	assert.Equal(t, []string{"a", "b", "c"}, h.Snapshot())
}

func TestHistoryClear(t *testing.T) {
	h := NewHistory[int](2)
	h.Append(1)
	h.Append(2)
	h.Clear()

	assert.Equal(t, 0, h.Len())
	assert.Empty(t, h.Snapshot())

	h.Append(7)
	assert.Equal(t, []int{7}, h.Snapshot())
}

func TestHistoryZeroLimitDropsEverything(t *testing.T) {
	h := NewHistory[int](0)
	h.Append(1)
	assert.Equal(t, 0, h.Len())
}
