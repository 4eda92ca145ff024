package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/sketchwars/sketchwars-backend/internal"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Game    GameConfig
	Logging LoggingConfig
	Store   StoreConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port          string
	Host          string
	Env           string // "development" or "production"
	AllowedOrigin string
}

// GameConfig holds game-related configuration
type GameConfig struct {
	MaxPlayers          int
	MaxRounds           int
	WordChoices         int
	ChoosingSeconds     int
	GuessingSeconds     int
	CooldownSeconds     int
	IntermissionSeconds int
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level string
}

// StoreConfig holds database-related configuration
type StoreConfig struct {
	DatabaseURL string
	WordsFile   string // optional CSV to seed the dictionary from at boot
}

// Load loads configuration from environment variables with defaults.
// A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:          getEnv("PORT", "8080"),
			Host:          getEnv("HOST", "0.0.0.0"),
			Env:           getEnv("ENV", "development"),
			AllowedOrigin: getEnv("ALLOWED_ORIGIN", "*"),
		},
		Game: GameConfig{
			MaxPlayers:          getEnvInt("MAX_PLAYERS", internal.MaxPlayersPerSession),
			MaxRounds:           getEnvInt("MAX_ROUNDS", internal.DefaultMaxRounds),
			WordChoices:         getEnvInt("WORD_CHOICES", internal.DefaultWordChoices),
			ChoosingSeconds:     getEnvInt("CHOOSING_SECONDS", internal.DefaultChoosingSeconds),
			GuessingSeconds:     getEnvInt("GUESSING_SECONDS", internal.DefaultGuessingSeconds),
			CooldownSeconds:     getEnvInt("COOLDOWN_SECONDS", internal.DefaultCooldownSeconds),
			IntermissionSeconds: getEnvInt("INTERMISSION_SECONDS", internal.DefaultIntermissionSeconds),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Store: StoreConfig{
			DatabaseURL: getEnv("DATABASE_URL", ""),
			WordsFile:   getEnv("WORDS_FILE", ""),
		},
	}

	if cfg.Store.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	return cfg, nil
}

// Settings converts the game section into session settings.
func (c *Config) Settings() internal.Settings {
	return internal.Settings{
		MaxRounds:           c.Game.MaxRounds,
		WordChoices:         c.Game.WordChoices,
		ChoosingSeconds:     c.Game.ChoosingSeconds,
		GuessingSeconds:     c.Game.GuessingSeconds,
		CooldownSeconds:     c.Game.CooldownSeconds,
		IntermissionSeconds: c.Game.IntermissionSeconds,
		MaxPlayers:          c.Game.MaxPlayers,
	}.Normalize()
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// GetAddr returns the server address in host:port format
func (c *Config) GetAddr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// getEnv returns an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns an environment variable as an integer or a default value
func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
