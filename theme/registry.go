package theme

import (
	"sort"
	"strings"

	"memory-match/game"
)

// Theme is a deck family the player can choose from the menu.
type Theme interface {
	ID() string
	Name() string
	Kind() string
	NewStrategy(rng game.Rand) game.Strategy
}

// Info is the client-facing description of a theme.
type Info struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	MaxPairs int    `json:"maxPairs"`
}

// Registry holds all registered themes indexed by their ID.
type Registry struct {
	themes map[string]Theme
	order  []string // registration order for deterministic All()
}

// NewRegistry creates a new empty theme registry.
func NewRegistry() *Registry {
	return &Registry{
		themes: make(map[string]Theme),
	}
}

// Register adds a theme to the registry, replacing any theme with the same ID.
func (r *Registry) Register(t Theme) {
	id := strings.ToLower(t.ID())
	if _, exists := r.themes[id]; !exists {
		r.order = append(r.order, id)
	}
	r.themes[id] = t
}

// Get returns the theme with the given ID (case-insensitive).
func (r *Registry) Get(id string) (Theme, bool) {
	t, ok := r.themes[strings.ToLower(id)]
	return t, ok
}

// All returns all registered themes in registration order.
func (r *Registry) All() []Theme {
	out := make([]Theme, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.themes[id])
	}
	return out
}

// Infos describes every theme, including how many pairs it can deal.
func (r *Registry) Infos() []Info {
	out := make([]Info, 0, len(r.order))
	for _, t := range r.All() {
		out = append(out, Info{ID: t.ID(), Name: t.Name(), Kind: t.Kind(), MaxPairs: capacity(t)})
	}
	return out
}

// IDs returns the registered theme IDs sorted alphabetically.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	sort.Strings(ids)
	return ids
}

func capacity(t Theme) int {
	switch v := t.(type) {
	case *SymbolTheme:
		return len(v.Symbols)
	case *LabelTheme:
		return len(v.Labels)
	case *ArithmeticTheme:
		return game.NewArithmeticPairs(v.Min, v.Max, nil, v.Operators...).Capacity()
	default:
		return 0
	}
}

// RegisterAll registers all built-in themes.
func RegisterAll(r *Registry) {
	r.Register(&SymbolTheme{ThemeID: "animals", ThemeName: "Animals", Symbols: animals})
	r.Register(&SymbolTheme{ThemeID: "fruits", ThemeName: "Fruits", Symbols: fruits})
	r.Register(&SymbolTheme{ThemeID: "space", ThemeName: "Space", Symbols: space})
	r.Register(&ArithmeticTheme{ThemeID: "math", ThemeName: "Math", Min: 1, Max: 10})
	r.Register(&LabelTheme{ThemeID: "chemistry", ThemeName: "Chemistry", Labels: elements})
}
