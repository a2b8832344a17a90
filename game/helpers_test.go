package game

import (
	"math/rand"
	"time"
)

// fixedStrategy deals pairs in order without shuffling: A A B B C C ...
type fixedStrategy struct{}

func (fixedStrategy) Kind() string { return "fixed" }

func (fixedStrategy) GenerateCards(numPairs int) ([]Card, error) {
	if numPairs <= 0 {
		return nil, ErrInvalidPairCount
	}
	cards := make([]Card, 0, 2*numPairs)
	for i := 0; i < numPairs; i++ {
		id := string(rune('A' + i))
		cards = append(cards, NewCard(id, id), NewCard(id, id))
	}
	return cards, nil
}

// shortStrategy returns one card fewer than requested.
type shortStrategy struct{}

func (shortStrategy) Kind() string { return "short" }

func (shortStrategy) GenerateCards(numPairs int) ([]Card, error) {
	cards, _ := fixedStrategy{}.GenerateCards(numPairs)
	return cards[:len(cards)-1], nil
}

// lopsidedStrategy deals the right number of cards but puts the first MatchID on three of them.
type lopsidedStrategy struct{}

func (lopsidedStrategy) Kind() string { return "lopsided" }

func (lopsidedStrategy) GenerateCards(numPairs int) ([]Card, error) {
	cards, _ := fixedStrategy{}.GenerateCards(numPairs)
	cards[2] = NewCard(cards[0].MatchID, cards[0].Display)
	return cards, nil
}

// fakeClock advances by step on every call.
type fakeClock struct {
	now  time.Time
	step time.Duration
}

func newFakeClock(step time.Duration) *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), step: step}
}

func (c *fakeClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

func seeded() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func mustBoard(rows, cols int, s Strategy) *Board {
	b, err := NewBoard(rows, cols, s)
	if err != nil {
		panic(err)
	}
	return b
}

// pairCounts returns how many cards carry each MatchID.
func pairCounts(b *Board) map[string]int {
	counts := make(map[string]int)
	for _, row := range b.Cards() {
		for _, c := range row {
			counts[c.MatchID]++
		}
	}
	return counts
}
