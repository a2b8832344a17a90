package game

import "fmt"

// Board is a rows×cols grid of cards dealt by a Strategy.
type Board struct {
	rows     int
	cols     int
	grid     [][]Card
	strategy Strategy
}

// NewBoard deals a new board using strategy.
func NewBoard(rows, cols int, strategy Strategy) (*Board, error) {
	b := &Board{strategy: strategy}
	if err := b.Reset(rows, cols, strategy); err != nil {
		return nil, err
	}
	return b, nil
}

// Reset re-deals the board with new dimensions. A nil strategy keeps the current one.
// On error the board is left exactly as it was.
func (b *Board) Reset(rows, cols int, strategy Strategy) error {
	if rows <= 0 || cols <= 0 || (rows*cols)%2 != 0 {
		return &InvalidDimensionsError{Rows: rows, Cols: cols}
	}
	if strategy == nil {
		strategy = b.strategy
	}
	if strategy == nil {
		return fmt.Errorf("no strategy bound to board")
	}

	total := rows * cols
	cards, err := strategy.GenerateCards(total / 2)
	if err != nil {
		return err
	}
	if len(cards) != total {
		return fmt.Errorf("%s strategy returned %d cards, want %d", strategy.Kind(), len(cards), total)
	}
	counts := make(map[string]int, total/2)
	for _, card := range cards {
		counts[card.MatchID]++
	}
	for _, card := range cards {
		if n := counts[card.MatchID]; n != 2 {
			return fmt.Errorf("%s strategy: %w: %q on %d cards", strategy.Kind(), ErrUnpairedDeck, card.MatchID, n)
		}
	}

	// Fill row-major from the shuffled deck
	grid := make([][]Card, rows)
	for r := range grid {
		grid[r] = make([]Card, cols)
		for c := range grid[r] {
			card := cards[r*cols+c]
			grid[r][c] = NewCard(card.MatchID, card.Display)
		}
	}

	b.rows = rows
	b.cols = cols
	b.grid = grid
	b.strategy = strategy
	return nil
}

// Rows returns the number of rows.
func (b *Board) Rows() int { return b.rows }

// Cols returns the number of columns.
func (b *Board) Cols() int { return b.cols }

// Strategy returns the strategy currently bound to the board.
func (b *Board) Strategy() Strategy { return b.strategy }

// Get returns the card at (row, col), or false when the position is off the board.
func (b *Board) Get(row, col int) (*Card, bool) {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return nil, false
	}
	return &b.grid[row][col], true
}

// Cards returns a row-major copy of the grid for rendering.
func (b *Board) Cards() [][]Card {
	out := make([][]Card, len(b.grid))
	for r, row := range b.grid {
		out[r] = make([]Card, len(row))
		copy(out[r], row)
	}
	return out
}

// MatchedPairs returns how many pairs have been found.
func (b *Board) MatchedPairs() int {
	matched := 0
	for _, row := range b.grid {
		for i := range row {
			if row[i].IsMatched() {
				matched++
			}
		}
	}
	return matched / 2
}

// AllMatched returns true if every card on the board has been matched.
func (b *Board) AllMatched() bool {
	for _, row := range b.grid {
		for i := range row {
			if !row[i].IsMatched() {
				return false
			}
		}
	}
	return true
}
