package session

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"memory-match/config"
	"memory-match/game"
	"memory-match/metrics"
	"memory-match/sessionerrors"
	"memory-match/theme"
)

// StartRequest asks for a new session. Empty Theme or Difficulty fall back to the configured defaults.
type StartRequest struct {
	PlayerName string `validate:"required"`
	UserID     string
	Theme      string `validate:"omitempty,alphanum"`
	Difficulty string `validate:"omitempty,alphanum"`
}

// Manager creates and tracks live sessions.
type Manager struct {
	config  *config.Config
	themes  *theme.Registry
	metrics *metrics.Recorder

	// OnComplete receives every finished board; optional.
	OnComplete func(Result)

	validate *validator.Validate

	mu       sync.Mutex
	sessions map[string]*Session
	seeds    int64
}

// NewManager creates a Manager. rec may be nil.
func NewManager(cfg *config.Config, themes *theme.Registry, rec *metrics.Recorder) *Manager {
	return &Manager{
		config:   cfg,
		themes:   themes,
		metrics:  rec,
		validate: validator.New(),
		sessions: make(map[string]*Session),
	}
}

// Start validates req, deals a board and starts the session goroutine.
func (m *Manager) Start(req StartRequest, send chan []byte) (*Session, error) {
	req.PlayerName = strings.TrimSpace(req.PlayerName)
	if err := m.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && verrs[0].Field() == "PlayerName" {
			return nil, sessionerrors.ErrInvalidName
		}
		return nil, fmt.Errorf("invalid start request: %w", err)
	}
	if utf8.RuneCountInString(req.PlayerName) > m.config.MaxNameLength {
		return nil, sessionerrors.ErrInvalidName
	}

	d, err := m.Deal(req.Theme, req.Difficulty)
	if err != nil {
		return nil, err
	}
	th, diff := d.Theme, d.Difficulty

	s := New(uuid.NewString(), req.PlayerName, req.UserID, th, diff, d.Service, d.Rand, send)
	s.RevealDuration = time.Duration(m.config.RevealDurationMS) * time.Millisecond
	s.OnPick = func(r game.PickResult) { m.metrics.Pick(r.String()) }
	s.OnComplete = func(r Result) {
		m.metrics.SessionCompleted(r.Theme, r.Difficulty, r.Score)
		if m.OnComplete != nil {
			m.OnComplete(r)
		}
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	active := len(m.sessions)
	m.mu.Unlock()

	m.metrics.SessionStarted(th.ID(), diff.ID)
	m.metrics.SetActiveSessions(active)
	slog.Info("session started", "tag", "session", "id", s.ID, "player", s.PlayerName, "theme", th.ID(), "difficulty", diff.ID)

	go func() {
		s.Run()
		m.remove(s.ID)
	}()
	return s, nil
}

// Dealt is a freshly dealt board with the settings that produced it.
type Dealt struct {
	Theme      theme.Theme
	Difficulty config.DifficultyConfig
	Service    *game.Service
	Rand       game.Rand
}

// Deal resolves theme and difficulty (empty means the configured default) and deals a board.
func (m *Manager) Deal(themeID, difficultyID string) (*Dealt, error) {
	if themeID == "" {
		themeID = m.config.DefaultTheme
	}
	th, ok := m.themes.Get(themeID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", sessionerrors.ErrUnknownTheme, themeID)
	}

	if difficultyID == "" {
		difficultyID = m.config.DefaultDifficulty
	}
	diff, ok := m.config.Difficulty(difficultyID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", sessionerrors.ErrUnknownDifficulty, difficultyID)
	}

	rng := m.newRand()
	board, err := game.NewBoard(diff.Rows, diff.Cols, th.NewStrategy(rng))
	if err != nil {
		return nil, fmt.Errorf("dealing %s board for theme %s: %w", diff.ID, th.ID(), err)
	}
	svc, err := game.NewService(board, diff.Multiplier)
	if err != nil {
		return nil, err
	}
	return &Dealt{Theme: th, Difficulty: diff, Service: svc, Rand: rng}, nil
}

// Get returns a live session by ID.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, sessionerrors.ErrSessionNotFound
	}
	return s, nil
}

// ActiveCount returns the number of running sessions.
func (m *Manager) ActiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) remove(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	active := len(m.sessions)
	m.mu.Unlock()
	m.metrics.SetActiveSessions(active)
}

// newRand returns a per-session source. A configured seed makes the n-th board reproducible.
func (m *Manager) newRand() *rand.Rand {
	m.mu.Lock()
	m.seeds++
	n := m.seeds
	m.mu.Unlock()
	if m.config.Seed != 0 {
		return rand.New(rand.NewSource(m.config.Seed + n - 1))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano() + n))
}
