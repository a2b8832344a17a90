package storage

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store persists scores in Postgres.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects to Postgres and applies pending migrations.
// If databaseURL is empty, NewStore returns (nil, nil) and no persistence occurs.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	if databaseURL == "" {
		return nil, nil
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if err := migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	slog.Info("connected to Postgres", "tag", "storage")
	return &Store{pool: pool}, nil
}

func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(gooseLogger{})
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

// gooseLogger routes goose output through slog.
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...interface{}) {
	slog.Info(strings.TrimSpace(fmt.Sprintf(format, v...)), "tag", "migrate")
}

func (gooseLogger) Fatalf(format string, v ...interface{}) {
	slog.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), "tag", "migrate")
	os.Exit(1)
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

// SaveScore inserts one finished game and returns it with ID and timestamp filled in.
func (s *Store) SaveScore(ctx context.Context, rec ScoreRecord) (ScoreRecord, error) {
	rec = prepare(rec, time.Now())
	if s == nil || s.pool == nil {
		return rec, nil
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO scores (id, user_id, player_name, score, moves, duration_ms, theme, difficulty, played_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rec.ID, rec.UserID, rec.PlayerName, rec.Score, rec.Moves, rec.DurationMS, rec.Theme, rec.Difficulty, rec.PlayedAt)
	if err != nil {
		return rec, fmt.Errorf("inserting score: %w", err)
	}
	return rec, nil
}

// TopScores returns the best scores matching filter, highest first.
func (s *Store) TopScores(ctx context.Context, filter ScoreFilter) ([]ScoreRecord, error) {
	if s == nil || s.pool == nil {
		return []ScoreRecord{}, nil
	}
	filter = filter.normalized()
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, player_name, score, moves, duration_ms, theme, difficulty, played_at
		FROM scores
		WHERE ($1 = '' OR lower(difficulty) = lower($1))
		  AND ($2 = '' OR lower(theme) = lower($2))
		ORDER BY score DESC, played_at ASC
		LIMIT $3`,
		filter.Difficulty, filter.Theme, filter.Limit)
	if err != nil {
		return nil, err
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (ScoreRecord, error) {
		var r ScoreRecord
		err := row.Scan(&r.ID, &r.UserID, &r.PlayerName, &r.Score, &r.Moves, &r.DurationMS, &r.Theme, &r.Difficulty, &r.PlayedAt)
		r.PlayedAt = r.PlayedAt.UTC()
		return r, err
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []ScoreRecord{}
	}
	return out, nil
}

// Statistics aggregates every stored game.
func (s *Store) Statistics(ctx context.Context) (Statistics, error) {
	stats := computeStatistics(nil)
	if s == nil || s.pool == nil {
		return stats, nil
	}
	err := s.pool.QueryRow(ctx, `SELECT count(*), COALESCE(max(score), 0) FROM scores`).
		Scan(&stats.TotalGames, &stats.BestScore)
	if err != nil {
		return stats, err
	}
	if stats.ThemesCount, err = s.countBy(ctx, "theme"); err != nil {
		return stats, err
	}
	if stats.DifficultyCount, err = s.countBy(ctx, "difficulty"); err != nil {
		return stats, err
	}
	stats.FavoriteTheme = favoriteTheme(stats.ThemesCount)
	return stats, nil
}

// countBy groups scores by a fixed column name.
func (s *Store) countBy(ctx context.Context, column string) (map[string]int, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+column+`, count(*) FROM scores GROUP BY `+column)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]int{}
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, err
		}
		out[key] = n
	}
	return out, rows.Err()
}
