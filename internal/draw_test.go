package internal

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawOpDecodeStroke(t *testing.T) {
	var op DrawOp
	err := json.Unmarshal([]byte(`{"tool":"line","x":10,"y":20,"prevX":8,"prevY":19}`), &op)
	require.NoError(t, err)

	seg, ok := op.Segment()
	require.True(t, ok)
	assert.False(t, op.IsClear())
	assert.Equal(t, Segment{X: 10, Y: 20, PrevX: 8, PrevY: 19}, seg)
}

func TestDrawOpDecodeClear(t *testing.T) {
	var op DrawOp
	err := json.Unmarshal([]byte(`{"tool":"clear"}`), &op)
	require.NoError(t, err)

	assert.True(t, op.IsClear())
	_, ok := op.Segment()
	assert.False(t, ok)
}

func TestDrawOpRejectsUnknownTool(t *testing.T) {
	var op DrawOp
	err := json.Unmarshal([]byte(`{"tool":"spray","x":1,"y":1}`), &op)
	assert.Error(t, err)
}

func TestDrawOpEncodeClearOmitsCoordinates(t *testing.T) {
	data, err := json.Marshal(NewClear())
	require.NoError(t, err)
	assert.JSONEq(t, `{"tool":"clear"}`, string(data))
}

func TestDrawOpEncodeStrokeKeepsZeroCoordinates(t *testing.T) {
	data, err := json.Marshal(NewStroke(Segment{X: 0, Y: 0, PrevX: 3, PrevY: 4}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"tool":"line","x":0,"y":0,"prevX":3,"prevY":4}`, string(data))
}

func TestEncodeWrapsEnvelope(t *testing.T) {
	data, err := Encode(TypeTimer, TimerPayload{RemainingTime: 42})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"timer","data":{"remainingTime":42}}`, string(data))
}
