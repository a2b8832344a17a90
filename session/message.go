package session

import (
	"memory-match/facts"
	"memory-match/game"
)

// ErrorMsg reports a rejected action to the client.
type ErrorMsg struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// SessionStartedMsg is sent once when a session is created.
type SessionStartedMsg struct {
	Type       string  `json:"type"`
	SessionID  string  `json:"sessionId"`
	PlayerName string  `json:"playerName"`
	Theme      string  `json:"theme"`
	ThemeName  string  `json:"themeName"`
	Difficulty string  `json:"difficulty"`
	Rows       int     `json:"rows"`
	Cols       int     `json:"cols"`
	Multiplier float64 `json:"multiplier"`
}

// GameStateMsg is the full view of the session, sent after every change.
type GameStateMsg struct {
	Type       string           `json:"type"`
	SessionID  string           `json:"sessionId"`
	Phase      string           `json:"phase"`
	Theme      string           `json:"theme"`
	Difficulty string           `json:"difficulty"`
	State      game.SessionView `json:"state"`
}

// MatchMsg announces a found pair, with a fact card when the theme has one.
type MatchMsg struct {
	Type        string           `json:"type"`
	Positions   [2]game.Position `json:"positions"`
	MatchID     string           `json:"matchId"`
	ComboStreak int              `json:"comboStreak"`
	Score       int              `json:"score"`
	Fact        *facts.Fact      `json:"fact,omitempty"`
}

// GameOverMsg is sent when every pair has been found.
type GameOverMsg struct {
	Type       string `json:"type"`
	PlayerName string `json:"playerName"`
	Score      int    `json:"score"`
	Moves      int    `json:"moves"`
	DurationMS int64  `json:"durationMs"`
	Theme      string `json:"theme"`
	Difficulty string `json:"difficulty"`
}
