package storage

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100

	// NoFavoriteTheme is reported when no game has been recorded.
	NoFavoriteTheme = "-"
)

// ScoreRecord is one finished game.
type ScoreRecord struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id,omitempty"`
	PlayerName string    `json:"name"`
	Score      int       `json:"score"`
	Moves      int       `json:"moves"`
	DurationMS int64     `json:"duration_ms"`
	Theme      string    `json:"theme"`
	Difficulty string    `json:"difficulty"`
	PlayedAt   time.Time `json:"played_at"`
}

// ScoreFilter narrows TopScores. Empty Difficulty or Theme match everything.
type ScoreFilter struct {
	Limit      int
	Difficulty string
	Theme      string
}

// Statistics aggregates every recorded game.
type Statistics struct {
	TotalGames      int            `json:"total_games"`
	BestScore       int            `json:"best_score"`
	FavoriteTheme   string         `json:"favorite_theme"`
	ThemesCount     map[string]int `json:"themes_count"`
	DifficultyCount map[string]int `json:"difficulty_count"`
}

// normalized clamps the limit into [1, MaxLimit], defaulting to DefaultLimit.
func (f ScoreFilter) normalized() ScoreFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	f.Difficulty = strings.TrimSpace(f.Difficulty)
	f.Theme = strings.TrimSpace(f.Theme)
	return f
}

func (f ScoreFilter) match(r ScoreRecord) bool {
	if f.Difficulty != "" && !strings.EqualFold(f.Difficulty, r.Difficulty) {
		return false
	}
	if f.Theme != "" && !strings.EqualFold(f.Theme, r.Theme) {
		return false
	}
	return true
}

// prepare fills the ID and timestamp of a record about to be saved.
func prepare(rec ScoreRecord, now time.Time) ScoreRecord {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.PlayedAt.IsZero() {
		rec.PlayedAt = now
	}
	rec.PlayedAt = rec.PlayedAt.UTC()
	return rec
}

// topScores filters records and orders them by score, earliest first on ties.
func topScores(records []ScoreRecord, filter ScoreFilter) []ScoreRecord {
	filter = filter.normalized()
	out := make([]ScoreRecord, 0, len(records))
	for _, r := range records {
		if filter.match(r) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].PlayedAt.Before(out[j].PlayedAt)
	})
	if len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out
}

func computeStatistics(records []ScoreRecord) Statistics {
	stats := Statistics{
		FavoriteTheme:   NoFavoriteTheme,
		ThemesCount:     map[string]int{},
		DifficultyCount: map[string]int{},
	}
	for i, r := range records {
		if i == 0 || r.Score > stats.BestScore {
			stats.BestScore = r.Score
		}
		stats.ThemesCount[r.Theme]++
		stats.DifficultyCount[r.Difficulty]++
	}
	stats.TotalGames = len(records)
	stats.FavoriteTheme = favoriteTheme(stats.ThemesCount)
	return stats
}

// favoriteTheme returns the most played theme; ties go to the alphabetically first.
func favoriteTheme(counts map[string]int) string {
	best, bestN := NoFavoriteTheme, 0
	for theme, n := range counts {
		if n > bestN || (n == bestN && theme < best) {
			best, bestN = theme, n
		}
	}
	return best
}
