package internal

// Player is the public roster entry broadcast to clients. The session owns
// the authoritative score and guessed flag; the connection handle lives in
// the registry, never here.
type Player struct {
	Name    string `json:"name"`
	Score   int    `json:"score"`
	Guessed bool   `json:"guessed"`
}
