package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memory-match/config"
	"memory-match/storage"
	"memory-match/theme"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	store := storage.NewFileStore(filepath.Join(t.TempDir(), "scores.json"))
	ctx := context.Background()
	for _, r := range []storage.ScoreRecord{
		{PlayerName: "Ada", UserID: "u-ada", Score: 500, Theme: "animals", Difficulty: "easy"},
		{PlayerName: "Bob", Score: 900, Theme: "math", Difficulty: "hard"},
		{PlayerName: "Cy", Score: 200, Theme: "animals", Difficulty: "easy"},
	} {
		_, err := store.SaveScore(ctx, r)
		require.NoError(t, err)
	}

	reg := theme.NewRegistry()
	theme.RegisterAll(reg)
	h := NewHandler(config.Defaults(), store, reg)
	h.UserIDFromToken = func(token string) (string, error) {
		if token == "good" {
			return "u-ada", nil
		}
		return "", errors.New("bad token")
	}
	h.ActiveSessions = func() int { return 2 }
	return h
}

func get(t *testing.T, h http.Handler, target, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestScoresOrderedAndFiltered(t *testing.T) {
	router := NewRouter(newTestHandler(t), nil, nil)

	w := get(t, router, "/api/scores", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	var resp ScoresResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Entries, 3)
	assert.Equal(t, "Bob", resp.Entries[0].Name)
	assert.Equal(t, 1, resp.Entries[0].Rank)
	assert.Equal(t, 3, resp.Entries[2].Rank)

	w = get(t, router, "/api/scores?difficulty=easy&limit=1", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "Ada", resp.Entries[0].Name)
}

func TestScoresMarksCurrentUser(t *testing.T) {
	router := NewRouter(newTestHandler(t), nil, nil)

	var resp ScoresResponse
	w := get(t, router, "/api/scores", "good")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	for _, e := range resp.Entries {
		assert.Equal(t, e.Name == "Ada", e.IsCurrentUser, e.Name)
	}

	var anon ScoresResponse
	w = get(t, router, "/api/scores", "bad")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &anon))
	require.NotEmpty(t, anon.Entries)
	for _, e := range anon.Entries {
		assert.False(t, e.IsCurrentUser)
	}
}

func TestStats(t *testing.T) {
	router := NewRouter(newTestHandler(t), nil, nil)
	w := get(t, router, "/api/stats", "")
	require.Equal(t, http.StatusOK, w.Code)

	var stats storage.Statistics
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 3, stats.TotalGames)
	assert.Equal(t, 900, stats.BestScore)
	assert.Equal(t, "animals", stats.FavoriteTheme)
}

func TestThemes(t *testing.T) {
	router := NewRouter(newTestHandler(t), nil, nil)
	w := get(t, router, "/api/themes", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp ThemesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Themes, 5)
	assert.Len(t, resp.Difficulties, 3)
	assert.Equal(t, config.Defaults().DefaultTheme, resp.DefaultTheme)
}

func TestHealthAndPreflight(t *testing.T) {
	router := NewRouter(newTestHandler(t), nil, nil)

	w := get(t, router, "/healthz", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","active_sessions":2}`, w.Body.String())

	req := httptest.NewRequest(http.MethodOptions, "/api/scores", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestMetricsAndWSMounted(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })
	router := NewRouter(newTestHandler(t), ok, ok)
	assert.Equal(t, http.StatusTeapot, get(t, router, "/ws", "").Code)
	assert.Equal(t, http.StatusTeapot, get(t, router, "/metrics", "").Code)
}
