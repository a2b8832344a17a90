package storage

import "context"

// ScoreStore abstracts persistence for finished games.
// Implementations can be swapped for testing or different backends.
type ScoreStore interface {
	// Write
	SaveScore(ctx context.Context, rec ScoreRecord) (ScoreRecord, error)

	// Read
	TopScores(ctx context.Context, filter ScoreFilter) ([]ScoreRecord, error)
	Statistics(ctx context.Context) (Statistics, error)

	// Lifecycle
	Close()
}

// Ensure both backends implement ScoreStore at compile time.
var (
	_ ScoreStore = (*Store)(nil)
	_ ScoreStore = (*FileStore)(nil)
)
