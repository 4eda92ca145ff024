package internal

const (
	// Quorum is the minimum connected players needed to start or keep a game running.
	Quorum               = 2
	MaxPlayersPerSession = 12
	DefaultMaxRounds     = 3
	DefaultWordChoices   = 3
	DrawHistoryCapacity  = 1000
	ChatHistoryCapacity  = 20
)

const (
	DefaultChoosingSeconds     = 20
	DefaultGuessingSeconds     = 80
	DefaultCooldownSeconds     = 5
	DefaultIntermissionSeconds = 20
)

type GameState string

const (
	StateIdle         GameState = "idle"
	StateChoosingWord GameState = "choosing_word"
	StatePlaying      GameState = "playing"
	StateCooldown     GameState = "cooldown"
)

// Settings are the per-session tunables. Zero values are replaced with the
// defaults above, so an empty Settings is usable as-is.
type Settings struct {
	MaxRounds           int
	WordChoices         int
	ChoosingSeconds     int
	GuessingSeconds     int
	CooldownSeconds     int
	IntermissionSeconds int
	MaxPlayers          int
}

func DefaultSettings() Settings {
	return Settings{
		MaxRounds:           DefaultMaxRounds,
		WordChoices:         DefaultWordChoices,
		ChoosingSeconds:     DefaultChoosingSeconds,
		GuessingSeconds:     DefaultGuessingSeconds,
		CooldownSeconds:     DefaultCooldownSeconds,
		IntermissionSeconds: DefaultIntermissionSeconds,
		MaxPlayers:          MaxPlayersPerSession,
	}
}

// Normalize fills unset fields with defaults.
func (s Settings) Normalize() Settings {
	d := DefaultSettings()
	if s.MaxRounds <= 0 {
		s.MaxRounds = d.MaxRounds
	}
	if s.WordChoices <= 0 {
		s.WordChoices = d.WordChoices
	}
	if s.ChoosingSeconds <= 0 {
		s.ChoosingSeconds = d.ChoosingSeconds
	}
	if s.GuessingSeconds <= 0 {
		s.GuessingSeconds = d.GuessingSeconds
	}
	if s.CooldownSeconds <= 0 {
		s.CooldownSeconds = d.CooldownSeconds
	}
	if s.IntermissionSeconds <= 0 {
		s.IntermissionSeconds = d.IntermissionSeconds
	}
	if s.MaxPlayers <= 0 {
		s.MaxPlayers = d.MaxPlayers
	}
	return s
}

// User is an account row resolved from a handshake token. LastGameID lets a
// returning player resume the cumulative score of a game still in progress.
type User struct {
	Name       string `json:"name"`
	Score      int    `json:"score"`
	LastGameID string `json:"last_game_id"`
}
