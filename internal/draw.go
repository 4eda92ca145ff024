package internal

import (
	"encoding/json"
	"fmt"
)

// Tool tags the draw operation variants on the wire.
type Tool string

const (
	ToolLine  Tool = "line"
	ToolClear Tool = "clear"
)

// Segment is one stroke segment between two canvas points.
type Segment struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	PrevX float64 `json:"prevX"`
	PrevY float64 `json:"prevY"`
}

// DrawOp is a single canvas operation: either a stroke segment or a
// whole-canvas clear. The variant set is closed; decoding rejects unknown
// tools instead of passing free-form strings through.
type DrawOp struct {
	tool Tool
	seg  Segment
}

func NewStroke(seg Segment) DrawOp {
	return DrawOp{tool: ToolLine, seg: seg}
}

func NewClear() DrawOp {
	return DrawOp{tool: ToolClear}
}

func (op DrawOp) IsClear() bool {
	return op.tool == ToolClear
}

// Segment returns the stroke coordinates; ok is false for a clear.
func (op DrawOp) Segment() (Segment, bool) {
	return op.seg, op.tool == ToolLine
}

func (op DrawOp) MarshalJSON() ([]byte, error) {
	switch op.tool {
	case ToolLine:
		return json.Marshal(struct {
			Tool Tool `json:"tool"`
			Segment
		}{Tool: ToolLine, Segment: op.seg})
	case ToolClear:
		return json.Marshal(struct {
			Tool Tool `json:"tool"`
		}{Tool: ToolClear})
	default:
		return nil, fmt.Errorf("draw: unknown tool %q", op.tool)
	}
}

func (op *DrawOp) UnmarshalJSON(data []byte) error {
	var wire struct {
		Tool Tool `json:"tool"`
		Segment
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	switch wire.Tool {
	case ToolLine:
		*op = DrawOp{tool: ToolLine, seg: wire.Segment}
	case ToolClear:
		*op = DrawOp{tool: ToolClear}
	default:
		return fmt.Errorf("draw: unknown tool %q", wire.Tool)
	}
	return nil
}
