package game

import (
	"fmt"
	"strconv"
)

// Strategy kinds.
const (
	KindIdentical  = "identical"
	KindArithmetic = "arithmetic"
	KindLabel      = "label"
)

// attemptsPerPair bounds how long ArithmeticPairs keeps sampling before giving up.
const attemptsPerPair = 500

// Rand is the randomness source used by strategies. *rand.Rand satisfies it,
// so tests can pass a seeded generator and get reproducible boards.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Strategy produces the shuffled deck for a board.
// GenerateCards must return 2*numPairs cards in which numPairs distinct
// MatchIDs each occur exactly twice.
type Strategy interface {
	Kind() string
	GenerateCards(numPairs int) ([]Card, error)
}

func shuffleCards(rng Rand, cards []Card) {
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

// IdenticalPairs draws symbols from a fixed pool; both cards of a pair show the same symbol.
type IdenticalPairs struct {
	pool []string
	rng  Rand
}

// NewIdenticalPairs returns a strategy over pool. Duplicate entries are collapsed.
func NewIdenticalPairs(pool []string, rng Rand) *IdenticalPairs {
	seen := make(map[string]struct{}, len(pool))
	distinct := make([]string, 0, len(pool))
	for _, s := range pool {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		distinct = append(distinct, s)
	}
	return &IdenticalPairs{pool: distinct, rng: rng}
}

func (s *IdenticalPairs) Kind() string { return KindIdentical }

// GenerateCards samples numPairs symbols without replacement.
func (s *IdenticalPairs) GenerateCards(numPairs int) ([]Card, error) {
	if numPairs <= 0 {
		return nil, ErrInvalidPairCount
	}
	if numPairs > len(s.pool) {
		return nil, &CapacityError{Strategy: KindIdentical, Requested: numPairs, Available: len(s.pool)}
	}

	selected := make([]string, len(s.pool))
	copy(selected, s.pool)
	s.rng.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})

	cards := make([]Card, 0, 2*numPairs)
	for _, symbol := range selected[:numPairs] {
		cards = append(cards, NewCard(symbol, symbol), NewCard(symbol, symbol))
	}
	shuffleCards(s.rng, cards)
	return cards, nil
}

// Label is one catalog entry for LabelPairs, e.g. {"Au", "Gold"}.
type Label struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// LabelPairs pairs a symbol with its name. Both cards carry the symbol as MatchID.
type LabelPairs struct {
	catalog []Label
	rng     Rand
}

// NewLabelPairs returns a strategy over catalog. Entries with a repeated symbol are dropped.
func NewLabelPairs(catalog []Label, rng Rand) *LabelPairs {
	seen := make(map[string]struct{}, len(catalog))
	distinct := make([]Label, 0, len(catalog))
	for _, l := range catalog {
		if _, ok := seen[l.Symbol]; ok {
			continue
		}
		seen[l.Symbol] = struct{}{}
		distinct = append(distinct, l)
	}
	return &LabelPairs{catalog: distinct, rng: rng}
}

func (s *LabelPairs) Kind() string { return KindLabel }

// GenerateCards samples numPairs catalog entries without replacement.
func (s *LabelPairs) GenerateCards(numPairs int) ([]Card, error) {
	if numPairs <= 0 {
		return nil, ErrInvalidPairCount
	}
	if numPairs > len(s.catalog) {
		return nil, &CapacityError{Strategy: KindLabel, Requested: numPairs, Available: len(s.catalog)}
	}

	selected := make([]Label, len(s.catalog))
	copy(selected, s.catalog)
	s.rng.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})

	cards := make([]Card, 0, 2*numPairs)
	for _, l := range selected[:numPairs] {
		cards = append(cards, NewCard(l.Symbol, l.Symbol), NewCard(l.Symbol, l.Name))
	}
	shuffleCards(s.rng, cards)
	return cards, nil
}

// Operator is an arithmetic operation used by ArithmeticPairs.
type Operator int

const (
	Add Operator = iota
	Subtract
	Multiply
)

// Symbol returns the operator as shown on a card.
func (o Operator) Symbol() string {
	switch o {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "×"
	default:
		return "?"
	}
}

// apply returns the result of a <o> b. Negative differences are rejected.
func (o Operator) apply(a, b int) (int, bool) {
	switch o {
	case Add:
		return a + b, true
	case Subtract:
		if a < b {
			return 0, false
		}
		return a - b, true
	case Multiply:
		return a * b, true
	default:
		return 0, false
	}
}

// ArithmeticPairs synthesizes expression/result pairs: one card shows "a + b",
// the other shows the result, and the result is the MatchID.
// Results are never repeated within a deck.
type ArithmeticPairs struct {
	lo, hi    int
	operators []Operator
	rng       Rand
	capacity  int
}

const (
	// maxOperandSpan bounds the operand range; wider ranges are truncated at lo+maxOperandSpan-1.
	maxOperandSpan = 1 << 20
	// maxCapacity caps the distinct-result count reported by Capacity.
	maxCapacity = 1024
	// maxCapacityScan bounds the operand combinations Capacity enumerates.
	maxCapacityScan = 1 << 16
)

// NewArithmeticPairs returns a strategy sampling operands in [lo, hi].
// With no operators it uses addition only.
func NewArithmeticPairs(lo, hi int, rng Rand, operators ...Operator) *ArithmeticPairs {
	if lo > hi {
		lo, hi = hi, lo
	}
	if uint64(hi)-uint64(lo) >= maxOperandSpan {
		hi = lo + maxOperandSpan - 1
	}
	if len(operators) == 0 {
		operators = []Operator{Add}
	}
	s := &ArithmeticPairs{lo: lo, hi: hi, operators: operators, rng: rng}
	s.capacity = s.countResults()
	return s
}

func (s *ArithmeticPairs) Kind() string { return KindArithmetic }

// Capacity returns how many distinct results the operand range and operators can reach.
// It is exact for narrow ranges and a lower bound, at most maxCapacity, for wide ones.
func (s *ArithmeticPairs) Capacity() int { return s.capacity }

func (s *ArithmeticPairs) countResults() int {
	results := make(map[int]struct{})
	scanned := 0
	for _, op := range s.operators {
		for a := s.lo; a <= s.hi; a++ {
			for b := s.lo; b <= s.hi; b++ {
				if r, ok := op.apply(a, b); ok {
					results[r] = struct{}{}
				}
				scanned++
				if len(results) >= maxCapacity || scanned >= maxCapacityScan {
					return min(len(results), maxCapacity)
				}
			}
		}
	}
	return len(results)
}

// GenerateCards samples operand pairs until numPairs distinct results are collected.
func (s *ArithmeticPairs) GenerateCards(numPairs int) ([]Card, error) {
	if numPairs <= 0 {
		return nil, ErrInvalidPairCount
	}
	if available := s.Capacity(); numPairs > available {
		return nil, &CapacityError{Strategy: KindArithmetic, Requested: numPairs, Available: available}
	}

	span := s.hi - s.lo + 1
	used := make(map[int]struct{}, numPairs)
	cards := make([]Card, 0, 2*numPairs)
	for attempts := 0; len(used) < numPairs && attempts < numPairs*attemptsPerPair; attempts++ {
		a := s.lo + s.rng.Intn(span)
		b := s.lo + s.rng.Intn(span)
		op := s.operators[s.rng.Intn(len(s.operators))]
		result, ok := op.apply(a, b)
		if !ok {
			continue
		}
		if _, dup := used[result]; dup {
			continue
		}
		used[result] = struct{}{}
		key := strconv.Itoa(result)
		cards = append(cards,
			NewCard(key, fmt.Sprintf("%d %s %d", a, op.Symbol(), b)),
			NewCard(key, key),
		)
	}
	if len(used) < numPairs {
		return nil, &CapacityError{Strategy: KindArithmetic, Requested: numPairs, Available: len(used)}
	}

	shuffleCards(s.rng, cards)
	return cards, nil
}
