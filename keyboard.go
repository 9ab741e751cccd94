package passentropy

import "unicode/utf8"

// Keyboard layouts. Each key is written as its unshifted character followed
// by its shifted one; slanted layouts indent every row by one more column.
var (
	qwertyRows = []string{
		"`~ 1! 2@ 3# 4$ 5% 6^ 7& 8* 9( 0) -_ =+",
		"    qQ wW eE rR tT yY uU iI oO pP [{ ]} \\|",
		"     aA sS dD fF gG hH jJ kK lL ;: '\"",
		"      zZ xX cC vV bB nN mM ,< .> /?",
	}
	qwertyUKRows = []string{
		"`¬ 1! 2\" 3£ 4$ 5% 6^ 7& 8* 9( 0) -_ =+",
		"    qQ wW eE rR tT yY uU iI oO pP [{ ]}",
		"     aA sS dD fF gG hH jJ kK lL ;: '@ #~",
		"   \\| zZ xX cC vV bB nN mM ,< .> /?",
	}
	dvorakRows = []string{
		"`~ 1! 2@ 3# 4$ 5% 6^ 7& 8* 9( 0) [{ ]}",
		"    '\" ,< .> pP yY fF gG cC rR lL /? =+ \\|",
		"     aA oO eE uU iI dD hH tT nN sS -_",
		"      ;: qQ jJ kK xX bB mM wW vV zZ",
	}
	keypadRows = []string{
		"  / * -",
		"7 8 9 +",
		"4 5 6",
		"1 2 3",
		"  0 .",
	}
	macKeypadRows = []string{
		"  = / *",
		"7 8 9 -",
		"4 5 6 +",
		"1 2 3",
		"  0 .",
	}
)

// The keyboard graphs are built once and never modified.
var (
	Qwerty    = newKeyboardGraph("qwerty", qwertyRows, true)
	QwertyUK  = newKeyboardGraph("qwerty_uk", qwertyUKRows, true)
	Dvorak    = newKeyboardGraph("dvorak", dvorakRows, true)
	Keypad    = newKeyboardGraph("keypad", keypadRows, false)
	MacKeypad = newKeyboardGraph("mac_keypad", macKeypadRows, false)
)

// DefaultKeyboards returns the graphs used when no keyboards are configured.
func DefaultKeyboards() []*KeyboardGraph {
	return []*KeyboardGraph{Qwerty, QwertyUK, Dvorak, Keypad, MacKeypad}
}

// KeyboardByName returns a built-in graph.
func KeyboardByName(name string) (*KeyboardGraph, bool) {
	for _, g := range DefaultKeyboards() {
		if g.name == name {
			return g, true
		}
	}
	return nil, false
}

// KeyboardGraph records, for every character, the key found in each
// direction around it. The position in the neighbour list is the direction,
// which is what spatial matching counts turns with.
type KeyboardGraph struct {
	name      string
	neighbors map[rune][]string // "" where there is no key
	shifted   map[rune]bool
	avgDegree float64
}

type keyPos struct{ x, y int }

func slantedAdjacent(p keyPos) []keyPos {
	x, y := p.x, p.y
	return []keyPos{{x - 1, y}, {x, y - 1}, {x + 1, y - 1}, {x + 1, y}, {x, y + 1}, {x - 1, y + 1}}
}

func alignedAdjacent(p keyPos) []keyPos {
	x, y := p.x, p.y
	return []keyPos{{x - 1, y}, {x - 1, y - 1}, {x, y - 1}, {x + 1, y - 1}, {x + 1, y}, {x + 1, y + 1}, {x, y + 1}, {x - 1, y + 1}}
}

func newKeyboardGraph(name string, rows []string, slanted bool) *KeyboardGraph {
	positions := make(map[keyPos]string)
	for y, row := range rows {
		slant := 0
		if slanted {
			slant = y
		}
		for _, f := range fieldsWithOffsets(row) {
			unit := utf8.RuneCountInString(f.text) + 1
			positions[keyPos{(f.offset - slant) / unit, y}] = f.text
		}
	}

	adjacent := alignedAdjacent
	if slanted {
		adjacent = slantedAdjacent
	}
	g := &KeyboardGraph{
		name:      name,
		neighbors: make(map[rune][]string),
		shifted:   make(map[rune]bool),
	}
	edges := 0
	for pos, key := range positions {
		around := adjacent(pos)
		for i, r := range []rune(key) {
			list := make([]string, len(around))
			for d, p := range around {
				list[d] = positions[p]
				if list[d] != "" {
					edges++
				}
			}
			g.neighbors[r] = list
			g.shifted[r] = i == 1
		}
	}
	if len(g.neighbors) > 0 {
		g.avgDegree = float64(edges) / float64(len(g.neighbors))
	}
	return g
}

type field struct {
	text   string
	offset int
}

// fieldsWithOffsets splits a layout row on spaces, keeping each key's column.
// Columns count characters, so keys like "£" line up with their neighbours.
func fieldsWithOffsets(row string) []field {
	var out []field
	runes := []rune(row)
	start := -1
	for i := 0; i <= len(runes); i++ {
		if i == len(runes) || runes[i] == ' ' {
			if start >= 0 {
				out = append(out, field{text: string(runes[start:i]), offset: start})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	return out
}

// Name returns the layout name.
func (g *KeyboardGraph) Name() string { return g.name }

// StartingPositions is the number of characters a walk can start from.
func (g *KeyboardGraph) StartingPositions() int { return len(g.neighbors) }

// AverageDegree is the mean number of neighbouring keys per character.
func (g *KeyboardGraph) AverageDegree() float64 { return g.avgDegree }

// Adjacent reports whether b sits next to a, and in which direction.
// shifted is true when b is the shifted character of its key.
func (g *KeyboardGraph) Adjacent(a, b rune) (direction int, shifted bool, ok bool) {
	for d, key := range g.neighbors[a] {
		for i, r := range []rune(key) {
			if r == b {
				return d, i == 1, true
			}
		}
	}
	return -1, false, false
}

// IsShifted reports whether r is typed with shift on this layout.
func (g *KeyboardGraph) IsShifted(r rune) bool {
	return g.shifted[r]
}
