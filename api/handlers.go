package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"memory-match/auth"
	"memory-match/config"
	"memory-match/storage"
	"memory-match/theme"
)

const bearerPrefix = "Bearer "

// Handler holds dependencies for API handlers.
type Handler struct {
	Config *config.Config
	Store  storage.ScoreStore
	Themes *theme.Registry

	// UserIDFromToken resolves a bearer token; nil when auth is not configured.
	UserIDFromToken func(token string) (string, error)
	// ActiveSessions reports live sessions for /healthz; optional.
	ActiveSessions func() int
}

// NewHandler creates a new API handler with the given dependencies.
func NewHandler(cfg *config.Config, scores storage.ScoreStore, themes *theme.Registry) *Handler {
	h := &Handler{
		Config: cfg,
		Store:  scores,
		Themes: themes,
	}
	if cfg.AuthBaseURL != "" {
		h.UserIDFromToken = func(token string) (string, error) {
			claims, err := auth.ValidateToken(cfg.AuthBaseURL, token)
			if err != nil {
				return "", err
			}
			return auth.UserIDFromClaims(claims), nil
		}
	}
	return h
}

// CORS sets CORS headers on the response. Call before writing body.
func CORS(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return true
	}
	return false
}

// extractUserID validates the Authorization header and returns the user ID, or empty string on failure.
func (h *Handler) extractUserID(r *http.Request) string {
	if h.UserIDFromToken == nil {
		return ""
	}
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return ""
	}
	token := strings.TrimSpace(authHeader[len(bearerPrefix):])
	userID, err := h.UserIDFromToken(token)
	if err != nil {
		return ""
	}
	return userID
}

// ScoreEntry is a single row of the high-score table.
type ScoreEntry struct {
	Rank          int       `json:"rank"`
	Name          string    `json:"name"`
	Score         int       `json:"score"`
	Moves         int       `json:"moves"`
	DurationMS    int64     `json:"duration_ms"`
	Theme         string    `json:"theme"`
	Difficulty    string    `json:"difficulty"`
	PlayedAt      time.Time `json:"played_at"`
	IsCurrentUser bool      `json:"is_current_user,omitempty"`
}

// ScoresResponse is the JSON structure for /api/scores.
type ScoresResponse struct {
	Entries []ScoreEntry `json:"entries"`
}

// Scores returns the best scores, filtered by optional difficulty and theme.
func (h *Handler) Scores(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	filter := storage.ScoreFilter{
		Limit:      limit,
		Difficulty: q.Get("difficulty"),
		Theme:      q.Get("theme"),
	}

	records, err := h.Store.TopScores(r.Context(), filter)
	if err != nil {
		slog.Error("TopScores failed", "tag", "api", "err", err)
		http.Error(w, "failed to load scores", http.StatusInternalServerError)
		return
	}

	userID := h.extractUserID(r)
	resp := ScoresResponse{Entries: make([]ScoreEntry, 0, len(records))}
	for i, rec := range records {
		resp.Entries = append(resp.Entries, ScoreEntry{
			Rank:          i + 1,
			Name:          rec.PlayerName,
			Score:         rec.Score,
			Moves:         rec.Moves,
			DurationMS:    rec.DurationMS,
			Theme:         rec.Theme,
			Difficulty:    rec.Difficulty,
			PlayedAt:      rec.PlayedAt,
			IsCurrentUser: userID != "" && rec.UserID == userID,
		})
	}
	writeJSON(w, resp)
}

// Stats returns aggregate statistics over every recorded game.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Store.Statistics(r.Context())
	if err != nil {
		slog.Error("Statistics failed", "tag", "api", "err", err)
		http.Error(w, "failed to load statistics", http.StatusInternalServerError)
		return
	}
	writeJSON(w, stats)
}

// ThemesResponse lists what a client may pick when starting a game.
type ThemesResponse struct {
	Themes            []theme.Info              `json:"themes"`
	Difficulties      []config.DifficultyConfig `json:"difficulties"`
	DefaultTheme      string                    `json:"default_theme"`
	DefaultDifficulty string                    `json:"default_difficulty"`
}

// ThemesList returns the theme catalog and difficulty tiers.
func (h *Handler) ThemesList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, ThemesResponse{
		Themes:            h.Themes.Infos(),
		Difficulties:      h.Config.Difficulties,
		DefaultTheme:      h.Config.DefaultTheme,
		DefaultDifficulty: h.Config.DefaultDifficulty,
	})
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{"status": "ok"}
	if h.ActiveSessions != nil {
		resp["active_sessions"] = h.ActiveSessions()
	}
	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encoding response", "tag", "api", "err", err)
	}
}
