package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"

	"github.com/sketchwars/sketchwars-backend/internal"
)

// defaultWords keeps a fresh install playable before a real dictionary is
// loaded. Common objects that draw well.
var defaultWords = []string{
	"apple", "anchor", "balloon", "banana", "bicycle", "bridge",
	"butterfly", "cactus", "camera", "candle", "castle", "cloud",
	"compass", "crown", "diamond", "dolphin", "dragon", "elephant",
	"feather", "fireworks", "flashlight", "fountain", "giraffe", "guitar",
	"hammer", "hamburger", "helicopter", "hourglass", "igloo", "island",
	"kangaroo", "kite", "ladder", "lantern", "lighthouse", "mermaid",
	"mountain", "mushroom", "octopus", "owl", "palm tree", "parachute",
	"penguin", "piano", "pirate", "pizza", "pyramid", "rainbow",
	"robot", "rocket", "sailboat", "scarecrow", "snowman", "spider",
	"submarine", "sunflower", "telescope", "tornado", "umbrella", "volcano",
	"waterfall", "windmill",
}

// SeedDefaultWords fills an empty dictionary with the built-in list. A
// populated dictionary is left alone.
func (s *Store) SeedDefaultWords(ctx context.Context) error {
	count, err := s.WordCount(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	added, err := s.AddWords(ctx, defaultWords)
	if err != nil {
		return err
	}
	s.log.Info().Int("words", added).Msg("seeded built-in dictionary")
	return nil
}

// SeedWordsFromCSV loads a dictionary file. The first column of each record
// is the word; blanks and duplicates are skipped.
func (s *Store) SeedWordsFromCSV(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open words file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("parse words file %s: %w", path, err)
	}

	words := lo.FilterMap(records, func(record []string, _ int) (string, bool) {
		if len(record) == 0 {
			return "", false
		}
		word := strings.ToLower(strings.TrimSpace(record[0]))
		return word, word != ""
	})

	added, err := s.AddWords(ctx, words)
	if err != nil {
		return added, err
	}
	s.log.Info().Str("file", path).Int("parsed", len(words)).Int("added", added).Msg("seeded dictionary")
	return added, nil
}

// SeedDemoUsers creates a handful of fixed logins so a development server is
// usable without a registration service in front of it.
func (s *Store) SeedDemoUsers(ctx context.Context) error {
	for _, name := range []string{"alice", "bob", "carol", "dave"} {
		_, err := s.CreateUser(ctx, "tok-"+name, name)
		if err != nil && !errors.Is(err, internal.ErrDuplicateUser) {
			return err
		}
	}
	return nil
}
