package game

// CardView is the client-facing representation of a card.
// Display and MatchID are only included when the card is revealed or matched.
type CardView struct {
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	State   string `json:"state"`
	Display string `json:"display,omitempty"`
	MatchID string `json:"matchId,omitempty"`
}

// SessionView is a read-only snapshot of a session for front ends.
type SessionView struct {
	Rows        int        `json:"rows"`
	Cols        int        `json:"cols"`
	Cards       []CardView `json:"cards"`
	Moves       int        `json:"moves"`
	Score       int        `json:"score"`
	ComboStreak int        `json:"comboStreak"`
	Multiplier  float64    `json:"multiplier"`
	ElapsedMS   int64      `json:"elapsedMs"`
	PendingPick *Position  `json:"pendingPick,omitempty"`
	Complete    bool       `json:"complete"`
}

// BuildCardViews constructs the client-facing card list in row-major order.
// Face-down cards do not expose their content.
func BuildCardViews(board *Board) []CardView {
	views := make([]CardView, 0, board.Rows()*board.Cols())
	for r, row := range board.grid {
		for c := range row {
			card := &row[c]
			cv := CardView{Row: r, Col: c, State: card.State().String()}
			if card.IsRevealed() {
				cv.Display = card.Display
				cv.MatchID = card.MatchID
			}
			views = append(views, cv)
		}
	}
	return views
}

// Snapshot returns the current session state.
func (s *Service) Snapshot() SessionView {
	v := SessionView{
		Rows:        s.board.Rows(),
		Cols:        s.board.Cols(),
		Cards:       BuildCardViews(s.board),
		Moves:       s.moves,
		Score:       s.score,
		ComboStreak: s.comboStreak,
		Multiplier:  s.multiplier,
		ElapsedMS:   s.ElapsedTime().Milliseconds(),
		Complete:    s.board.AllMatched(),
	}
	if p, ok := s.PendingPick(); ok {
		v.PendingPick = &p
	}
	return v
}
