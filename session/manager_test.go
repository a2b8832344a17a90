package session

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memory-match/config"
	"memory-match/metrics"
	"memory-match/sessionerrors"
	"memory-match/theme"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	cfg := config.Defaults()
	cfg.RevealDurationMS = 10
	cfg.Seed = 7
	reg := theme.NewRegistry()
	theme.RegisterAll(reg)
	return NewManager(cfg, reg, metrics.NewRecorder())
}

func TestManagerStartDefaults(t *testing.T) {
	m := newTestManager(t)
	send := make(chan []byte, 16)

	s, err := m.Start(StartRequest{PlayerName: "  Ada  "}, send)
	require.NoError(t, err)
	assert.Equal(t, "Ada", s.PlayerName)
	assert.Equal(t, m.config.DefaultTheme, s.Theme.ID())
	assert.Equal(t, m.config.DefaultDifficulty, s.Difficulty.ID)
	assert.Equal(t, 10*time.Millisecond, s.RevealDuration)
	waitFor(t, send, "session_started")

	got, err := m.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, 1, m.ActiveCount())

	require.NoError(t, s.Submit(Action{Type: ActionQuit}))
	require.Eventually(t, func() bool { return m.ActiveCount() == 0 }, time.Second, 5*time.Millisecond)

	_, err = m.Get(s.ID)
	assert.True(t, errors.Is(err, sessionerrors.ErrSessionNotFound))
}

func TestManagerStartEveryDifficulty(t *testing.T) {
	m := newTestManager(t)
	for _, d := range m.config.Difficulties {
		for _, id := range m.themes.IDs() {
			s, err := m.Start(StartRequest{PlayerName: "Ada", Theme: id, Difficulty: d.ID}, nil)
			require.NoError(t, err, "%s/%s", id, d.ID)
			assert.Equal(t, d.Rows, s.Service.Board().Rows())
			require.NoError(t, s.Submit(Action{Type: ActionQuit}))
		}
	}
}

func TestManagerStartRejects(t *testing.T) {
	m := newTestManager(t)

	tests := []struct {
		name string
		req  StartRequest
		want error
	}{
		{"empty name", StartRequest{PlayerName: "   "}, sessionerrors.ErrInvalidName},
		{"long name", StartRequest{PlayerName: strings.Repeat("x", m.config.MaxNameLength+1)}, sessionerrors.ErrInvalidName},
		{"unknown theme", StartRequest{PlayerName: "Ada", Theme: "dinosaurs"}, sessionerrors.ErrUnknownTheme},
		{"unknown difficulty", StartRequest{PlayerName: "Ada", Difficulty: "insane"}, sessionerrors.ErrUnknownDifficulty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Start(tt.req, nil)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
	assert.Equal(t, 0, m.ActiveCount())
}

func TestManagerOnCompleteReceivesResult(t *testing.T) {
	m := newTestManager(t)
	done := make(chan Result, 1)
	m.OnComplete = func(r Result) { done <- r }

	s, err := m.Start(StartRequest{PlayerName: "Ada", Theme: "animals", Difficulty: "easy"}, nil)
	require.NoError(t, err)

	// Pair up the cards by reading the layout before the first pick.
	positions := map[string][]int{}
	for r, row := range s.Service.Board().Cards() {
		for c, card := range row {
			positions[card.MatchID] = append(positions[card.MatchID], r, c)
		}
	}
	for _, p := range positions {
		require.NoError(t, s.Pick(p[0], p[1]))
		require.NoError(t, s.Pick(p[2], p[3]))
	}

	select {
	case r := <-done:
		assert.Equal(t, 8, r.Moves)
		assert.Equal(t, "animals", r.Theme)
		assert.Equal(t, "easy", r.Difficulty)
		// 100 * (1+2+...+8)
		assert.Equal(t, 3600, r.Score)
	case <-time.After(2 * time.Second):
		t.Fatal("OnComplete not called")
	}
	require.NoError(t, s.Submit(Action{Type: ActionQuit}))
}
