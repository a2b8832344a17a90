package game

import (
	"errors"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"testing"
)

var fivePool = []string{"🐶", "🐱", "🐭", "🐹", "🐰"}

func checkDeck(t *testing.T, cards []Card, numPairs int) {
	t.Helper()
	if len(cards) != 2*numPairs {
		t.Fatalf("expected %d cards, got %d", 2*numPairs, len(cards))
	}
	counts := make(map[string]int)
	for _, c := range cards {
		counts[c.MatchID]++
		if c.State() != Hidden {
			t.Errorf("dealt card %q is not hidden", c.MatchID)
		}
	}
	if len(counts) != numPairs {
		t.Errorf("expected %d distinct match ids, got %d", numPairs, len(counts))
	}
	for id, n := range counts {
		if n != 2 {
			t.Errorf("match id %q appears %d times, expected 2", id, n)
		}
	}
}

func TestIdenticalPairs(t *testing.T) {
	s := NewIdenticalPairs(fivePool, seeded())
	cards, err := s.GenerateCards(4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkDeck(t, cards, 4)
	for _, c := range cards {
		if c.Display != c.MatchID {
			t.Errorf("identical pair should display its match id, got %q vs %q", c.Display, c.MatchID)
		}
	}
}

func TestIdenticalPairsCapacity(t *testing.T) {
	s := NewIdenticalPairs(fivePool, seeded())
	_, err := s.GenerateCards(10)

	var capErr *CapacityError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected CapacityError, got %v", err)
	}
	if capErr.Requested != 10 || capErr.Available != 5 {
		t.Errorf("expected requested=10 available=5, got %+v", capErr)
	}
}

func TestIdenticalPairsCollapsesDuplicates(t *testing.T) {
	s := NewIdenticalPairs([]string{"a", "a", "b"}, seeded())
	if _, err := s.GenerateCards(3); err == nil {
		t.Fatal("expected CapacityError for a pool with 2 distinct symbols")
	}
	cards, err := s.GenerateCards(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkDeck(t, cards, 2)
}

func TestLabelPairs(t *testing.T) {
	catalog := []Label{{"H", "Hydrogen"}, {"He", "Helium"}, {"Au", "Gold"}, {"Fe", "Iron"}}
	s := NewLabelPairs(catalog, seeded())
	cards, err := s.GenerateCards(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkDeck(t, cards, 3)

	names := map[string]string{}
	for _, l := range catalog {
		names[l.Symbol] = l.Name
	}
	shown := map[string][]string{}
	for _, c := range cards {
		shown[c.MatchID] = append(shown[c.MatchID], c.Display)
	}
	for id, displays := range shown {
		joined := strings.Join(displays, ",")
		if !strings.Contains(joined, id) || !strings.Contains(joined, names[id]) {
			t.Errorf("pair %q should show symbol and name, got %v", id, displays)
		}
	}

	_, err = s.GenerateCards(5)
	var capErr *CapacityError
	if !errors.As(err, &capErr) || capErr.Strategy != KindLabel {
		t.Errorf("expected label CapacityError, got %v", err)
	}
}

func TestArithmeticPairs(t *testing.T) {
	s := NewArithmeticPairs(1, 10, seeded())
	if s.Capacity() != 19 {
		t.Errorf("expected 19 distinct sums for 1..10, got %d", s.Capacity())
	}
	cards, err := s.GenerateCards(18)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkDeck(t, cards, 18)

	for _, c := range cards {
		if c.Display == c.MatchID {
			continue
		}
		// expression card: "a + b" must evaluate to the match id
		var a, b int
		parts := strings.Fields(c.Display)
		if len(parts) != 3 || parts[1] != "+" {
			t.Fatalf("unexpected expression %q", c.Display)
		}
		a, _ = strconv.Atoi(parts[0])
		b, _ = strconv.Atoi(parts[2])
		if strconv.Itoa(a+b) != c.MatchID {
			t.Errorf("expression %q does not evaluate to %q", c.Display, c.MatchID)
		}
	}
}

func TestArithmeticPairsCapacity(t *testing.T) {
	s := NewArithmeticPairs(1, 2, seeded())
	// sums of 1..2 are 2, 3, 4
	_, err := s.GenerateCards(4)
	var capErr *CapacityError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected CapacityError, got %v", err)
	}
	if capErr.Available != 3 {
		t.Errorf("expected 3 available, got %d", capErr.Available)
	}
}

func TestArithmeticPairsOperators(t *testing.T) {
	s := NewArithmeticPairs(1, 5, seeded(), Subtract, Multiply)
	cards, err := s.GenerateCards(6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkDeck(t, cards, 6)
	for _, c := range cards {
		if n, err := strconv.Atoi(c.MatchID); err != nil || n < 0 {
			t.Errorf("unexpected match id %q", c.MatchID)
		}
	}
}

func TestStrategiesRejectNonPositivePairs(t *testing.T) {
	strategies := []Strategy{
		NewIdenticalPairs(fivePool, seeded()),
		NewArithmeticPairs(1, 10, seeded()),
		NewLabelPairs([]Label{{"H", "Hydrogen"}}, seeded()),
	}
	for _, s := range strategies {
		if _, err := s.GenerateCards(0); !errors.Is(err, ErrInvalidPairCount) {
			t.Errorf("%s: expected ErrInvalidPairCount, got %v", s.Kind(), err)
		}
	}
}

func TestStrategySeedIsReproducible(t *testing.T) {
	deal := func() []Card {
		cards, err := NewIdenticalPairs(fivePool, rand.New(rand.NewSource(7))).GenerateCards(5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return cards
	}
	a, b := deal(), deal()
	for i := range a {
		if a[i].MatchID != b[i].MatchID {
			t.Fatalf("same seed produced different decks at %d: %q vs %q", i, a[i].MatchID, b[i].MatchID)
		}
	}
}

func TestArithmeticPairsWideRange(t *testing.T) {
	s := NewArithmeticPairs(1, 20000, seeded())
	if s.Capacity() != maxCapacity {
		t.Errorf("expected capacity capped at %d, got %d", maxCapacity, s.Capacity())
	}
	cards, err := s.GenerateCards(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkDeck(t, cards, 2)
}

func TestArithmeticPairsFullIntRange(t *testing.T) {
	s := NewArithmeticPairs(math.MinInt, math.MaxInt, seeded())
	if s.Capacity() == 0 {
		t.Fatal("expected a positive capacity")
	}
	cards, err := s.GenerateCards(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkDeck(t, cards, 3)
}
