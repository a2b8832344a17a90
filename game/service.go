package game

import (
	"math"
	"time"
)

const (
	// BasePoints is awarded per match before the combo and difficulty multipliers.
	BasePoints = 100
	// MismatchPenalty is subtracted on every mismatch; the score never drops below zero.
	MismatchPenalty = 20
)

// PickResult is the outcome of a single pick.
type PickResult int

const (
	Invalid PickResult = iota
	FirstPick
	Match
	NoMatch
)

// String returns the protocol string for a PickResult.
func (r PickResult) String() string {
	switch r {
	case Invalid:
		return "invalid"
	case FirstPick:
		return "first_pick"
	case Match:
		return "match"
	case NoMatch:
		return "no_match"
	default:
		return "unknown"
	}
}

// Position addresses a card on the board.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the wall clock used for start/end times.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// Service is the single-player session state machine. It owns the board and is
// the only thing that mutates it. It is not safe for concurrent use; drivers
// serialize calls (see package session).
type Service struct {
	board      *Board
	multiplier float64
	now        func() time.Time

	moves       int
	score       int
	comboStreak int
	firstPick   *Position
	startTime   time.Time
	endTime     time.Time
}

// NewService starts a session on board. multiplier scales the points of every match.
func NewService(board *Board, multiplier float64, opts ...Option) (*Service, error) {
	if multiplier <= 0 || math.IsNaN(multiplier) || math.IsInf(multiplier, 0) {
		return nil, ErrInvalidMultiplier
	}
	s := &Service{
		board:      board,
		multiplier: multiplier,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.startTime = s.now()
	return s, nil
}

// PickCard flips the card at (row, col) and resolves the turn when it is the second pick.
// Picks of missing, face-up or matched cards return Invalid and change nothing.
// After NoMatch both cards stay face-up until HideCards is called.
func (s *Service) PickCard(row, col int) PickResult {
	card, ok := s.board.Get(row, col)
	if !ok || card.IsRevealed() || card.IsMatched() {
		return Invalid
	}

	var first *Card
	if s.firstPick != nil {
		first, ok = s.board.Get(s.firstPick.Row, s.firstPick.Col)
		// the board was re-dealt behind the service's back
		if !ok || !first.IsRevealed() || first.IsMatched() {
			first = nil
		}
	}

	card.Reveal()
	if first == nil {
		s.firstPick = &Position{Row: row, Col: col}
		return FirstPick
	}

	s.moves++
	s.firstPick = nil

	if first.MatchID != card.MatchID {
		s.comboStreak = 0
		s.score = max(0, s.score-MismatchPenalty)
		return NoMatch
	}

	first.MarkAsMatched()
	card.MarkAsMatched()
	s.comboStreak++
	s.score += int(math.Round(float64(BasePoints*s.comboStreak) * s.multiplier))

	if s.endTime.IsZero() && s.board.AllMatched() {
		s.endTime = s.now()
	}
	return Match
}

// HideCards turns the cards at p1 and p2 face-down again. Matched or missing cards are skipped.
func (s *Service) HideCards(p1, p2 Position) {
	for _, p := range [2]Position{p1, p2} {
		if card, ok := s.board.Get(p.Row, p.Col); ok && !card.IsMatched() {
			card.Hide()
		}
	}
}

// Reset deals a fresh board (optionally with a new strategy and multiplier) and
// clears every per-session counter. On error the session is unchanged.
func (s *Service) Reset(rows, cols int, strategy Strategy, multiplier float64) error {
	if multiplier <= 0 || math.IsNaN(multiplier) || math.IsInf(multiplier, 0) {
		return ErrInvalidMultiplier
	}
	if err := s.board.Reset(rows, cols, strategy); err != nil {
		return err
	}
	s.multiplier = multiplier
	s.moves = 0
	s.score = 0
	s.comboStreak = 0
	s.firstPick = nil
	s.startTime = s.now()
	s.endTime = time.Time{}
	return nil
}

// ElapsedTime returns the session duration so far, frozen once the board is complete.
func (s *Service) ElapsedTime() time.Duration {
	end := s.endTime
	if end.IsZero() {
		end = s.now()
	}
	d := end.Sub(s.startTime)
	if d < 0 {
		return 0
	}
	return d
}

// Board returns the session's board.
func (s *Service) Board() *Board { return s.board }

// Moves returns the number of completed two-card turns.
func (s *Service) Moves() int { return s.moves }

// Score returns the current score. It is never negative.
func (s *Service) Score() int { return s.score }

// ComboStreak returns the number of consecutive matches.
func (s *Service) ComboStreak() int { return s.comboStreak }

// Multiplier returns the difficulty multiplier.
func (s *Service) Multiplier() float64 { return s.multiplier }

// PendingPick returns the first card of the current turn, if one has been picked.
func (s *Service) PendingPick() (Position, bool) {
	if s.firstPick == nil {
		return Position{}, false
	}
	return *s.firstPick, true
}

// Complete reports whether every pair has been found.
func (s *Service) Complete() bool { return s.board.AllMatched() }

// StartTime returns when the session (or its last reset) started.
func (s *Service) StartTime() time.Time { return s.startTime }

// EndTime returns when the board was completed.
func (s *Service) EndTime() (time.Time, bool) {
	return s.endTime, !s.endTime.IsZero()
}
