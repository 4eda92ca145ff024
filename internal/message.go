package internal

import "encoding/json"

// Message is the wire envelope: every frame carries a type tag and a typed
// payload. Inbound frames decode as Message[json.RawMessage] and the payload
// is parsed once the type is known.
type Message[T any] struct {
	Type MessageType `json:"type"`
	Data T           `json:"data"`
}

type MessageType string

const (
	TypeHandshake          MessageType = "handshake"
	TypeDraw               MessageType = "draw"
	TypeChat               MessageType = "chat"
	TypeWordChoices        MessageType = "word-choices"
	TypeStartRound         MessageType = "start-round"
	TypeEndRound           MessageType = "end-round"
	TypePlayer             MessageType = "player"
	TypePlayerDisconnected MessageType = "player-disconnected"
	TypeTimer              MessageType = "timer"
	TypeWord               MessageType = "word"
	TypeGameOver           MessageType = "game-over"
)

// Encode wraps data in the wire envelope and marshals it.
func Encode(typ MessageType, data any) ([]byte, error) {
	return json.Marshal(Message[any]{Type: typ, Data: data})
}

// HandshakeRequest is the first frame a client must send.
type HandshakeRequest struct {
	Token string `json:"token"`
}

// HandshakeReply confirms the resolved identity back to the client.
type HandshakeReply struct {
	Name string `json:"name"`
}

type ChatPayload struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
	Color  string `json:"color,omitempty"`
}

type WordChoicesPayload struct {
	Words []string `json:"words"`
}

// StartRoundPayload announces a round. WordOrHint carries the plaintext word
// for the drawer and the current mask for everyone else.
type StartRoundPayload struct {
	Drawer      string `json:"drawer"`
	WordOrHint  string `json:"wordOrHint"`
	RoundNumber int    `json:"roundNumber"`
}

type EndRoundPayload struct {
	Word   string         `json:"word"`
	Scores map[string]int `json:"scores"`
}

type PlayerDisconnectedPayload struct {
	Name string `json:"name"`
}

type TimerPayload struct {
	RemainingTime int `json:"remainingTime"`
}

// WordPayload is the drawer's choice on the way in and the refreshed hint
// mask on the way out.
type WordPayload struct {
	Word string `json:"word"`
}

type GameOverPayload struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

type LeaderboardEntry struct {
	Position int    `json:"position"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
}
