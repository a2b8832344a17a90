package storage

import (
	"context"
	"log/slog"
)

// Open picks the score backend: Postgres when databaseURL is set, otherwise the JSON file.
func Open(ctx context.Context, databaseURL, scoresFile string) (ScoreStore, error) {
	if databaseURL != "" {
		st, err := NewStore(ctx, databaseURL)
		if err != nil {
			return nil, err
		}
		return st, nil
	}
	slog.Info("no DATABASE_URL set, keeping scores in file", "tag", "storage", "path", scoresFile)
	return NewFileStore(scoresFile), nil
}
