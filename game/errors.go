package game

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMultiplier is returned when a session is created with a non-positive difficulty multiplier.
	ErrInvalidMultiplier = errors.New("difficulty multiplier must be positive")

	// ErrInvalidPairCount is returned when a strategy is asked for fewer than one pair.
	ErrInvalidPairCount = errors.New("number of pairs must be positive")

	// ErrUnpairedDeck is returned when a strategy deals a MatchID on other than exactly two cards.
	ErrUnpairedDeck = errors.New("every match id must appear on exactly two cards")
)

// InvalidDimensionsError reports a board whose dimensions cannot be split into pairs.
type InvalidDimensionsError struct {
	Rows int
	Cols int
}

func (e *InvalidDimensionsError) Error() string {
	return fmt.Sprintf("invalid board dimensions %dx%d: rows and cols must be positive and rows*cols even", e.Rows, e.Cols)
}

// CapacityError reports a strategy that cannot produce the requested number of distinct pairs.
type CapacityError struct {
	Strategy  string
	Requested int
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s strategy cannot produce %d distinct pairs (only %d available)", e.Strategy, e.Requested, e.Available)
}
