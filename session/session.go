package session

import (
	"encoding/json"
	"log/slog"
	"time"

	"memory-match/config"
	"memory-match/facts"
	"memory-match/game"
	"memory-match/sessionerrors"
	"memory-match/theme"
	"memory-match/wsutil"
)

// Phase is where the session is within a turn.
type Phase int

const (
	Picking Phase = iota
	Resolve
	Finished
)

// String returns the protocol string for a Phase.
func (p Phase) String() string {
	switch p {
	case Picking:
		return "picking"
	case Resolve:
		return "resolve"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// ActionType enumerates the kinds of actions a session can process.
type ActionType int

const (
	ActionPick ActionType = iota
	// ActionResolveMismatch is internal: fired after the reveal timer expires.
	ActionResolveMismatch
	ActionRestart
	ActionQuit
)

// Action is a request sent into the session's action channel.
type Action struct {
	Type ActionType
	Pos  game.Position
	// deal identifies the board a resolve belongs to; stale resolves are dropped.
	deal int
}

// Result is the outcome of a completed board, forwarded to the score sink.
type Result struct {
	SessionID  string
	PlayerName string
	UserID     string
	Score      int
	Moves      int
	Duration   time.Duration
	Theme      string
	Difficulty string
}

// Session drives one player's game. All state is owned by the Run goroutine.
type Session struct {
	ID         string
	PlayerName string
	UserID     string
	Theme      theme.Theme
	Difficulty config.DifficultyConfig
	Service    *game.Service

	RevealDuration time.Duration

	Send    chan []byte
	Actions chan Action
	Done    chan struct{}

	// OnComplete is called once per finished board.
	OnComplete func(Result)
	// OnPick observes every pick result; optional.
	OnPick func(game.PickResult)

	rng     game.Rand
	phase   Phase
	deal    int
	pending [2]game.Position
}

// New creates a session around an already dealt service.
func New(id, playerName, userID string, th theme.Theme, diff config.DifficultyConfig, svc *game.Service, rng game.Rand, send chan []byte) *Session {
	return &Session{
		ID:         id,
		PlayerName: playerName,
		UserID:     userID,
		Theme:      th,
		Difficulty: diff,
		Service:    svc,
		Send:       send,
		Actions:    make(chan Action, 16),
		Done:       make(chan struct{}),
		rng:        rng,
	}
}

// Submit queues an action. It fails once the session has stopped.
func (s *Session) Submit(a Action) error {
	select {
	case <-s.Done:
		return sessionerrors.ErrSessionFinished
	default:
	}
	select {
	case s.Actions <- a:
		return nil
	case <-s.Done:
		return sessionerrors.ErrSessionFinished
	}
}

// Pick is shorthand for submitting an ActionPick.
func (s *Session) Pick(row, col int) error {
	return s.Submit(Action{Type: ActionPick, Pos: game.Position{Row: row, Col: col}})
}

// Run is the session loop. It processes actions sequentially until quit.
// It should be run as a goroutine.
func (s *Session) Run() {
	defer close(s.Done)

	s.sendStarted()
	s.broadcastState()

	for action := range s.Actions {
		switch action.Type {
		case ActionPick:
			s.handlePick(action.Pos)
		case ActionResolveMismatch:
			s.handleResolveMismatch(action.deal)
		case ActionRestart:
			s.handleRestart()
		case ActionQuit:
			slog.Info("session quit", "tag", "session", "id", s.ID, "moves", s.Service.Moves())
			return
		}
	}
}

func (s *Session) handlePick(pos game.Position) {
	switch s.phase {
	case Resolve:
		s.sendError("Please wait for the cards to be hidden.")
		return
	case Finished:
		s.sendError("The board is complete. Start a new game.")
		return
	}

	first, hadFirst := s.Service.PendingPick()
	res := s.Service.PickCard(pos.Row, pos.Col)
	if s.OnPick != nil {
		s.OnPick(res)
	}

	switch res {
	case game.Invalid:
		s.sendError("That card cannot be picked.")
	case game.FirstPick:
		s.broadcastState()
	case game.Match:
		s.broadcastMatch(first, pos)
		if s.Service.Complete() {
			s.phase = Finished
			s.broadcastState()
			s.finish()
			return
		}
		s.broadcastState()
	case game.NoMatch:
		if !hadFirst {
			return
		}
		s.phase = Resolve
		s.pending = [2]game.Position{first, pos}
		s.broadcastState()
		s.scheduleResolve()
	}
}

// scheduleResolve hides the mismatched pair after RevealDuration via the
// actions channel so it is processed serially.
func (s *Session) scheduleResolve() {
	deal := s.deal
	go func(d time.Duration) {
		select {
		case <-time.After(d):
		case <-s.Done:
			return
		}
		select {
		case s.Actions <- Action{Type: ActionResolveMismatch, deal: deal}:
		case <-s.Done:
		}
	}(s.RevealDuration)
}

func (s *Session) handleResolveMismatch(deal int) {
	if deal != s.deal || s.phase != Resolve {
		return
	}
	s.Service.HideCards(s.pending[0], s.pending[1])
	s.phase = Picking
	s.broadcastState()
}

func (s *Session) handleRestart() {
	err := s.Service.Reset(s.Difficulty.Rows, s.Difficulty.Cols, s.Theme.NewStrategy(s.rng), s.Difficulty.Multiplier)
	if err != nil {
		slog.Error("restart failed", "tag", "session", "id", s.ID, "err", err)
		s.sendError("Could not deal a new board.")
		return
	}
	s.deal++
	s.phase = Picking
	s.sendStarted()
	s.broadcastState()
}

func (s *Session) finish() {
	res := Result{
		SessionID:  s.ID,
		PlayerName: s.PlayerName,
		UserID:     s.UserID,
		Score:      s.Service.Score(),
		Moves:      s.Service.Moves(),
		Duration:   s.Service.ElapsedTime(),
		Theme:      s.Theme.ID(),
		Difficulty: s.Difficulty.ID,
	}
	s.send(GameOverMsg{
		Type:       "game_over",
		PlayerName: res.PlayerName,
		Score:      res.Score,
		Moves:      res.Moves,
		DurationMS: res.Duration.Milliseconds(),
		Theme:      res.Theme,
		Difficulty: res.Difficulty,
	})
	slog.Info("session complete", "tag", "session", "id", s.ID, "score", res.Score, "moves", res.Moves)
	if s.OnComplete != nil {
		s.OnComplete(res)
	}
}

func (s *Session) sendStarted() {
	s.send(SessionStartedMsg{
		Type:       "session_started",
		SessionID:  s.ID,
		PlayerName: s.PlayerName,
		Theme:      s.Theme.ID(),
		ThemeName:  s.Theme.Name(),
		Difficulty: s.Difficulty.ID,
		Rows:       s.Difficulty.Rows,
		Cols:       s.Difficulty.Cols,
		Multiplier: s.Difficulty.Multiplier,
	})
}

func (s *Session) broadcastState() {
	s.send(s.StateMsg())
}

// StateMsg builds the current game_state message.
func (s *Session) StateMsg() GameStateMsg {
	return GameStateMsg{
		Type:       "game_state",
		SessionID:  s.ID,
		Phase:      s.phase.String(),
		Theme:      s.Theme.ID(),
		Difficulty: s.Difficulty.ID,
		State:      s.Service.Snapshot(),
	}
}

func (s *Session) broadcastMatch(first, second game.Position) {
	card, _ := s.Service.Board().Get(second.Row, second.Col)
	msg := MatchMsg{
		Type:        "match",
		Positions:   [2]game.Position{first, second},
		MatchID:     card.MatchID,
		ComboStreak: s.Service.ComboStreak(),
		Score:       s.Service.Score(),
	}
	if f, ok := facts.Lookup(s.Theme.ID(), card.MatchID); ok {
		msg.Fact = &f
	}
	s.send(msg)
}

func (s *Session) sendError(message string) {
	s.send(ErrorMsg{Type: "error", Message: message})
}

func (s *Session) send(v any) {
	if s.Send == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("marshaling session message", "tag", "session", "err", err)
		return
	}
	wsutil.SafeSend(s.Send, data)
}
