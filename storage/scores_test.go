package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreFilterNormalized(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, DefaultLimit},
		{-5, DefaultLimit},
		{7, 7},
		{MaxLimit + 1, MaxLimit},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ScoreFilter{Limit: tt.in}.normalized().Limit, "limit %d", tt.in)
	}
}

func TestFavoriteThemeTieIsAlphabetical(t *testing.T) {
	assert.Equal(t, "fruits", favoriteTheme(map[string]int{"space": 2, "fruits": 2, "math": 1}))
	assert.Equal(t, NoFavoriteTheme, favoriteTheme(map[string]int{}))
}

func TestComputeStatisticsZeroScore(t *testing.T) {
	stats := computeStatistics([]ScoreRecord{{Score: 0, Theme: "math", Difficulty: "easy"}})
	assert.Equal(t, 1, stats.TotalGames)
	assert.Equal(t, 0, stats.BestScore)
	assert.Equal(t, "math", stats.FavoriteTheme)
}

func TestNilStoreIsNoop(t *testing.T) {
	var s *Store
	ctx := context.Background()

	rec, err := s.SaveScore(ctx, ScoreRecord{PlayerName: "Ada"})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)

	top, err := s.TopScores(ctx, ScoreFilter{})
	require.NoError(t, err)
	assert.Empty(t, top)

	stats, err := s.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, NoFavoriteTheme, stats.FavoriteTheme)
	s.Close()
}

func TestOpenWithoutDatabaseUsesFile(t *testing.T) {
	st, err := Open(context.Background(), "", t.TempDir()+"/scores.json")
	require.NoError(t, err)
	_, ok := st.(*FileStore)
	assert.True(t, ok)
}
