// Package facts holds the educational fact cards shown after a pair is found.
package facts

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Fact is one educational card.
type Fact struct {
	Name  string `json:"name"`
	Text  string `json:"text"`
	Extra string `json:"extra,omitempty"`
}

var table = map[string]map[string]Fact{
	"chemistry": {
		"H":  {Name: "Hydrogen", Text: "The most abundant element in the universe, about 75% of normal matter.", Extra: "Symbol: H | Atomic number: 1"},
		"He": {Name: "Helium", Text: "Lighter than air, which is why it makes balloons float.", Extra: "Symbol: He | Atomic number: 2"},
		"Li": {Name: "Lithium", Text: "The lightest metal; it powers most rechargeable batteries.", Extra: "Symbol: Li | Atomic number: 3"},
		"C":  {Name: "Carbon", Text: "The backbone of every living thing on Earth.", Extra: "Symbol: C | Atomic number: 6"},
		"N":  {Name: "Nitrogen", Text: "Makes up about 78% of the air we breathe.", Extra: "Symbol: N | Atomic number: 7"},
		"O":  {Name: "Oxygen", Text: "Essential for breathing; it is 21% of the atmosphere.", Extra: "Symbol: O | Atomic number: 8"},
		"Na": {Name: "Sodium", Text: "Reacts violently with water and is half of table salt.", Extra: "Symbol: Na | Atomic number: 11"},
		"Cl": {Name: "Chlorine", Text: "Used to keep swimming pools clean.", Extra: "Symbol: Cl | Atomic number: 17"},
		"K":  {Name: "Potassium", Text: "Bananas are a well-known source of it.", Extra: "Symbol: K | Atomic number: 19"},
		"Ca": {Name: "Calcium", Text: "Keeps bones and teeth strong.", Extra: "Symbol: Ca | Atomic number: 20"},
		"Fe": {Name: "Iron", Text: "Gives blood its red colour through haemoglobin.", Extra: "Symbol: Fe | Atomic number: 26"},
		"Cu": {Name: "Copper", Text: "One of the best electrical conductors, used in most wiring.", Extra: "Symbol: Cu | Atomic number: 29"},
		"Ag": {Name: "Silver", Text: "The best conductor of electricity of all metals.", Extra: "Symbol: Ag | Atomic number: 47"},
		"Sn": {Name: "Tin", Text: "Mixed with copper it makes bronze.", Extra: "Symbol: Sn | Atomic number: 50"},
		"Au": {Name: "Gold", Text: "Does not rust or tarnish, so ancient gold still shines.", Extra: "Symbol: Au | Atomic number: 79"},
		"Hg": {Name: "Mercury", Text: "The only metal that is liquid at room temperature.", Extra: "Symbol: Hg | Atomic number: 80"},
		"Pb": {Name: "Lead", Text: "Very dense; it is used to shield against X-rays.", Extra: "Symbol: Pb | Atomic number: 82"},
		"U":  {Name: "Uranium", Text: "Fuels nuclear power plants.", Extra: "Symbol: U | Atomic number: 92"},
	},
	"animals": {
		"🐶": {Name: "Dog", Text: "A dog's nose print is as unique as a human fingerprint."},
		"🐱": {Name: "Cat", Text: "Cats spend around 70% of their lives sleeping."},
		"🐼": {Name: "Panda", Text: "Pandas eat bamboo for up to 14 hours a day."},
		"🐨": {Name: "Koala", Text: "Koalas sleep up to 22 hours a day."},
		"🐙": {Name: "Octopus", Text: "An octopus has three hearts and blue blood."},
		"🐧": {Name: "Penguin", Text: "Penguins cannot fly but swim at up to 35 km/h."},
		"🦊": {Name: "Fox", Text: "Foxes use the Earth's magnetic field to hunt."},
	},
	"fruits": {
		"🍌": {Name: "Banana", Text: "Bananas are berries, but strawberries are not."},
		"🍓": {Name: "Strawberry", Text: "The only fruit with its seeds on the outside."},
		"🍍": {Name: "Pineapple", Text: "A pineapple plant takes about two years to grow one fruit."},
		"🍎": {Name: "Apple", Text: "Apples float because they are about 25% air."},
		"🥑": {Name: "Avocado", Text: "Avocados ripen only after they are picked."},
	},
	"space": {
		"🌙":  {Name: "Moon", Text: "The Moon moves about 3.8 cm away from Earth every year."},
		"☀️": {Name: "Sun", Text: "About 1.3 million Earths would fit inside the Sun."},
		"🪐":  {Name: "Saturn", Text: "Saturn would float in a big enough bathtub."},
		"🚀":  {Name: "Rocket", Text: "A rocket must reach about 28,000 km/h to stay in orbit."},
		"🛰️": {Name: "Satellite", Text: "Thousands of active satellites orbit the Earth."},
	},
}

// Lookup returns the fact for a found pair. Math facts are computed from the result.
func Lookup(themeID, matchID string) (Fact, bool) {
	themeID = strings.ToLower(themeID)
	if themeID == "math" {
		return numberFact(matchID)
	}
	f, ok := table[themeID][matchID]
	return f, ok
}

// HasFacts reports whether the theme has any facts.
func HasFacts(themeID string) bool {
	themeID = strings.ToLower(themeID)
	return themeID == "math" || len(table[themeID]) > 0
}

// Themes returns the themes that have facts, sorted.
func Themes() []string {
	out := []string{"math"}
	for id := range table {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func numberFact(matchID string) (Fact, bool) {
	n, err := strconv.Atoi(matchID)
	if err != nil || n < 0 {
		return Fact{}, false
	}

	var props []string
	if n%2 == 0 {
		props = append(props, "even")
	} else {
		props = append(props, "odd")
	}
	if isPrime(n) {
		props = append(props, "prime")
	}
	if r := isqrt(n); r*r == n {
		props = append(props, fmt.Sprintf("the square of %d", r))
	}

	return Fact{
		Name:  matchID,
		Text:  fmt.Sprintf("%d is %s.", n, strings.Join(props, " and ")),
		Extra: fmt.Sprintf("Binary: %b", n),
	}, true
}

func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	for d := 2; d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}

func isqrt(n int) int {
	r := 0
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}
