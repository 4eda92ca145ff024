package game

import (
	"context"

	"github.com/sketchwars/sketchwars-backend/internal"
)

// WordStore supplies candidate words for a drawer to pick from. Calls may
// be slow or fail outright; the session never blocks its lock on them.
type WordStore interface {
	FetchRandomWords(ctx context.Context, count int) ([]string, error)
}

// UserStore resolves login tokens to users and persists scores so a player
// who reconnects mid-game carries their total over.
type UserStore interface {
	FindByToken(ctx context.Context, token string) (internal.User, error)
	PersistScore(ctx context.Context, name string, score int, gameID string) error
}
