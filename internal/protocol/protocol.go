package protocol

import "encoding/json"

// Event type tags carried between clients through the relay
const (
	TypeDraw   = "draw"
	TypeCursor = "cursor"
)

// A single line segment of a freehand stroke
type DrawEvent struct {
	Type  string  `json:"type"`
	PrevX float64 `json:"prevX"`
	PrevY float64 `json:"prevY"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Color string  `json:"color"`
	Size  float64 `json:"size"`
}

// A participant's pointer location; supersedes the previous one
type CursorEvent struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type envelope struct {
	Type string `json:"type"`
}

// Extracts the event type tag without decoding the full payload
func ParseType(data []byte) string {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return ""
	}
	return env.Type
}

func EncodeDraw(e DrawEvent) ([]byte, error) {
	e.Type = TypeDraw
	return json.Marshal(e)
}

func EncodeCursor(e CursorEvent) ([]byte, error) {
	e.Type = TypeCursor
	return json.Marshal(e)
}

func DecodeDraw(data []byte) (DrawEvent, error) {
	var e DrawEvent
	err := json.Unmarshal(data, &e)
	return e, err
}

func DecodeCursor(data []byte) (CursorEvent, error) {
	var e CursorEvent
	err := json.Unmarshal(data, &e)
	return e, err
}
