package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/sketchwars/sketchwars-backend/internal"
)

// "23505" is the PostgreSQL error code for unique_violation.
const uniqueViolation = "23505"

// Store backs the game's word and user lookups with postgres. It satisfies
// both game.WordStore and game.UserStore.
type Store struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

func New(ctx context.Context, databaseURL string, log zerolog.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", internal.ErrStoreUnavailable, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: %w", internal.ErrStoreUnavailable, err)
	}
	return &Store{pool: pool, log: log}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// FetchRandomWords implements game.WordStore. Fewer than count words come
// back when the dictionary is small.
func (s *Store) FetchRandomWords(ctx context.Context, count int) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT word FROM words ORDER BY RANDOM() LIMIT $1`, count)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", internal.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	words := make([]string, 0, count)
	for rows.Next() {
		var word string
		if err := rows.Scan(&word); err != nil {
			return nil, fmt.Errorf("%w: %w", internal.ErrStoreUnavailable, err)
		}
		words = append(words, word)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", internal.ErrStoreUnavailable, err)
	}
	return words, nil
}

// FindByToken implements game.UserStore.
func (s *Store) FindByToken(ctx context.Context, token string) (internal.User, error) {
	var user internal.User
	row := s.pool.QueryRow(ctx,
		`SELECT name, score, COALESCE(last_game_id, '') FROM users WHERE token = $1`, token)

	if err := row.Scan(&user.Name, &user.Score, &user.LastGameID); err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return internal.User{}, internal.ErrUserNotFound
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return internal.User{}, err
		default:
			return internal.User{}, fmt.Errorf("%w: %w", internal.ErrStoreUnavailable, err)
		}
	}
	return user, nil
}

// PersistScore implements game.UserStore.
func (s *Store) PersistScore(ctx context.Context, name string, score int, gameID string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET score = $2, last_game_id = $3 WHERE name = $1`, name, score, gameID)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("%w: %w", internal.ErrStoreUnavailable, err)
	}
	if tag.RowsAffected() == 0 {
		return internal.ErrUserNotFound
	}
	return nil
}

// CreateUser registers a login token. Registration proper lives outside this
// service; this exists for seeding and operational tooling.
func (s *Store) CreateUser(ctx context.Context, token, name string) (internal.User, error) {
	var user internal.User
	row := s.pool.QueryRow(ctx,
		`INSERT INTO users (token, name) VALUES ($1, $2)
		 RETURNING name, score, COALESCE(last_game_id, '')`, token, name)

	if err := row.Scan(&user.Name, &user.Score, &user.LastGameID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return internal.User{}, internal.ErrDuplicateUser
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return internal.User{}, err
		}
		return internal.User{}, fmt.Errorf("%w: %w", internal.ErrStoreUnavailable, err)
	}
	return user, nil
}

// AddWords inserts words into the dictionary, skipping ones already there.
// It reports how many were actually added.
func (s *Store) AddWords(ctx context.Context, words []string) (int, error) {
	if len(words) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, word := range words {
		batch.Queue(`INSERT INTO words (word) VALUES ($1) ON CONFLICT (word) DO NOTHING`, word)
	}

	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()

	added := 0
	for range words {
		tag, err := results.Exec()
		if err != nil {
			return added, fmt.Errorf("%w: %w", internal.ErrStoreUnavailable, err)
		}
		added += int(tag.RowsAffected())
	}
	return added, nil
}

// WordCount reports the dictionary size.
func (s *Store) WordCount(ctx context.Context) (int, error) {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM words`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %w", internal.ErrStoreUnavailable, err)
	}
	return count, nil
}
