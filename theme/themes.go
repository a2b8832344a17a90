package theme

import "memory-match/game"

// SymbolTheme deals identical symbol pairs.
type SymbolTheme struct {
	ThemeID   string
	ThemeName string
	Symbols   []string
}

func (t *SymbolTheme) ID() string   { return t.ThemeID }
func (t *SymbolTheme) Name() string { return t.ThemeName }
func (t *SymbolTheme) Kind() string { return game.KindIdentical }

func (t *SymbolTheme) NewStrategy(rng game.Rand) game.Strategy {
	return game.NewIdenticalPairs(t.Symbols, rng)
}

// ArithmeticTheme deals expression/result pairs.
type ArithmeticTheme struct {
	ThemeID   string
	ThemeName string
	Min, Max  int
	Operators []game.Operator
}

func (t *ArithmeticTheme) ID() string   { return t.ThemeID }
func (t *ArithmeticTheme) Name() string { return t.ThemeName }
func (t *ArithmeticTheme) Kind() string { return game.KindArithmetic }

func (t *ArithmeticTheme) NewStrategy(rng game.Rand) game.Strategy {
	return game.NewArithmeticPairs(t.Min, t.Max, rng, t.Operators...)
}

// LabelTheme deals symbol/name pairs.
type LabelTheme struct {
	ThemeID   string
	ThemeName string
	Labels    []game.Label
}

func (t *LabelTheme) ID() string   { return t.ThemeID }
func (t *LabelTheme) Name() string { return t.ThemeName }
func (t *LabelTheme) Kind() string { return game.KindLabel }

func (t *LabelTheme) NewStrategy(rng game.Rand) game.Strategy {
	return game.NewLabelPairs(t.Labels, rng)
}

var animals = []string{
	"🐶", "🐱", "🐭", "🐹", "🐰", "🦊", "🐻", "🐼", "🐨",
	"🐯", "🦁", "🐮", "🐷", "🐸", "🐵", "🐔", "🐧", "🐙",
}

var fruits = []string{
	"🍎", "🍐", "🍊", "🍋", "🍌", "🍉", "🍇", "🍓", "🫐",
	"🍍", "🥝", "🍒", "🍑", "🥭", "🥥", "🍈", "🍏", "🥑",
}

var space = []string{
	"🚀", "⭐", "🌙", "🌎", "☀️", "☄️", "👽", "📡", "🛰️",
	"🛸", "🪐", "🌌", "🔭", "🌠", "🌑", "🌕", "👨‍🚀", "🌞",
}

var elements = []game.Label{
	{Symbol: "H", Name: "Hydrogen"},
	{Symbol: "He", Name: "Helium"},
	{Symbol: "Li", Name: "Lithium"},
	{Symbol: "O", Name: "Oxygen"},
	{Symbol: "C", Name: "Carbon"},
	{Symbol: "Au", Name: "Gold"},
	{Symbol: "Ag", Name: "Silver"},
	{Symbol: "Fe", Name: "Iron"},
	{Symbol: "Na", Name: "Sodium"},
	{Symbol: "Cl", Name: "Chlorine"},
	{Symbol: "K", Name: "Potassium"},
	{Symbol: "Ca", Name: "Calcium"},
	{Symbol: "N", Name: "Nitrogen"},
	{Symbol: "Cu", Name: "Copper"},
	{Symbol: "Pb", Name: "Lead"},
	{Symbol: "U", Name: "Uranium"},
	{Symbol: "Sn", Name: "Tin"},
	{Symbol: "Hg", Name: "Mercury"},
}
