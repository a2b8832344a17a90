package game

// CardState represents the current state of a card.
type CardState int

const (
	Hidden CardState = iota
	Revealed
	Matched
)

// String returns the string representation of a CardState.
func (cs CardState) String() string {
	switch cs {
	case Hidden:
		return "hidden"
	case Revealed:
		return "revealed"
	case Matched:
		return "matched"
	default:
		return "unknown"
	}
}

// Card is a single cell of the board.
// MatchID is shared by exactly two cards; Display is what the player sees
// once the card is face-up (e.g. "5 + 5" for MatchID "10").
type Card struct {
	MatchID string
	Display string
	state   CardState
}

// NewCard returns a face-down card.
func NewCard(matchID, display string) Card {
	return Card{MatchID: matchID, Display: display, state: Hidden}
}

// State returns the card's visibility state.
func (c *Card) State() CardState { return c.state }

// IsRevealed reports whether the card is face-up. Matched cards are always face-up.
func (c *Card) IsRevealed() bool { return c.state != Hidden }

// IsMatched reports whether the card's pair has been found.
func (c *Card) IsMatched() bool { return c.state == Matched }

// Reveal turns the card face-up. Matched cards are left alone.
func (c *Card) Reveal() {
	if c.state == Matched {
		return
	}
	c.state = Revealed
}

// Hide turns the card face-down unless it has already been matched.
func (c *Card) Hide() {
	if c.state == Matched {
		return
	}
	c.state = Hidden
}

// MarkAsMatched resolves the card. It stays face-up for the rest of the session.
func (c *Card) MarkAsMatched() {
	c.state = Matched
}
