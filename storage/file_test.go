package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileStore(t *testing.T) *FileStore {
	t.Helper()
	s := NewFileStore(filepath.Join(t.TempDir(), "scores.json"))
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	s.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Minute)
	}
	return s
}

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	s := newFileStore(t)
	ctx := context.Background()

	top, err := s.TopScores(ctx, ScoreFilter{})
	require.NoError(t, err)
	assert.Empty(t, top)

	stats, err := s.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalGames)
	assert.Equal(t, NoFavoriteTheme, stats.FavoriteTheme)
}

func TestFileStoreCorruptFileIsEmpty(t *testing.T) {
	s := newFileStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o644))

	top, err := s.TopScores(context.Background(), ScoreFilter{})
	require.NoError(t, err)
	assert.Empty(t, top)

	_, err = s.SaveScore(context.Background(), ScoreRecord{PlayerName: "Ada", Score: 10, Theme: "math", Difficulty: "easy"})
	require.NoError(t, err)
	top, err = s.TopScores(context.Background(), ScoreFilter{})
	require.NoError(t, err)
	assert.Len(t, top, 1)
}

func TestFileStoreSaveAndFilter(t *testing.T) {
	s := newFileStore(t)
	ctx := context.Background()

	saved, err := s.SaveScore(ctx, ScoreRecord{PlayerName: "Ada", Score: 300, Theme: "animals", Difficulty: "easy"})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.PlayedAt.IsZero())

	for _, r := range []ScoreRecord{
		{PlayerName: "Bob", Score: 900, Theme: "math", Difficulty: "hard"},
		{PlayerName: "Cy", Score: 300, Theme: "animals", Difficulty: "medium"},
		{PlayerName: "Di", Score: 500, Theme: "animals", Difficulty: "easy"},
	} {
		_, err := s.SaveScore(ctx, r)
		require.NoError(t, err)
	}

	top, err := s.TopScores(ctx, ScoreFilter{})
	require.NoError(t, err)
	require.Len(t, top, 4)
	assert.Equal(t, []string{"Bob", "Di", "Ada", "Cy"}, names(top))

	top, err = s.TopScores(ctx, ScoreFilter{Difficulty: "EASY"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Di", "Ada"}, names(top))

	top, err = s.TopScores(ctx, ScoreFilter{Theme: "animals", Difficulty: "medium"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cy"}, names(top))

	top, err = s.TopScores(ctx, ScoreFilter{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"Bob", "Di"}, names(top))

	// a second store on the same file sees the history
	other := NewFileStore(s.Path())
	top, err = other.TopScores(ctx, ScoreFilter{})
	require.NoError(t, err)
	assert.Len(t, top, 4)
}

func TestFileStoreStatistics(t *testing.T) {
	s := newFileStore(t)
	ctx := context.Background()
	for _, r := range []ScoreRecord{
		{PlayerName: "Ada", Score: 100, Theme: "space", Difficulty: "easy"},
		{PlayerName: "Ada", Score: 700, Theme: "math", Difficulty: "hard"},
		{PlayerName: "Ada", Score: 200, Theme: "space", Difficulty: "easy"},
	} {
		_, err := s.SaveScore(ctx, r)
		require.NoError(t, err)
	}

	stats, err := s.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalGames)
	assert.Equal(t, 700, stats.BestScore)
	assert.Equal(t, "space", stats.FavoriteTheme)
	assert.Equal(t, map[string]int{"space": 2, "math": 1}, stats.ThemesCount)
	assert.Equal(t, map[string]int{"easy": 2, "hard": 1}, stats.DifficultyCount)
}

func names(records []ScoreRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.PlayerName
	}
	return out
}
