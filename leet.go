package passentropy

// leetMap maps leet-speak characters to their possible letter equivalents.
// Some characters map to multiple letters (ambiguous).
var leetMap = map[rune][]rune{
	'@': {'a'},
	'4': {'a'},
	'8': {'b'},
	'(': {'c'},
	'{': {'c'},
	'[': {'c'},
	'<': {'c'},
	'3': {'e'},
	'6': {'g'},
	'9': {'g', 'q'},
	'#': {'h'},
	'!': {'i'},
	'1': {'i', 'l'},
	'|': {'i', 'l'},
	'7': {'l', 't'},
	'0': {'o'},
	'5': {'s'},
	'$': {'s'},
	'+': {'t'},
	'%': {'x'},
	'2': {'z'},
}

// maxLeetVariants bounds the substitution maps tried per token.
const maxLeetVariants = 16

// leetVariant is a de-leeted token and the substitutions that produced it.
type leetVariant struct {
	word string
	subs map[rune]rune // leet character -> letter
}

// hasLeet reports whether token contains any substitutable character.
func hasLeet(token []rune) bool {
	for _, r := range token {
		if _, ok := leetMap[r]; ok {
			return true
		}
	}
	return false
}

// leetVariants de-leets a lower-cased token. Each distinct leet character is
// replaced consistently by one of its letters throughout the token; the
// first variant uses the most common letter for every character.
func leetVariants(token []rune) []leetVariant {
	// distinct leet characters in order of first appearance
	var chars []rune
	seen := make(map[rune]bool)
	for _, r := range token {
		if _, ok := leetMap[r]; ok && !seen[r] {
			seen[r] = true
			chars = append(chars, r)
		}
	}
	if len(chars) == 0 {
		return nil
	}

	// Generate combinations
	combos := [][]rune{{}}
	for _, c := range chars {
		var next [][]rune
		for _, combo := range combos {
			for _, opt := range leetMap[c] {
				if len(next) == maxLeetVariants {
					break
				}
				newCombo := make([]rune, len(combo)+1)
				copy(newCombo, combo)
				newCombo[len(combo)] = opt
				next = append(next, newCombo)
			}
		}
		combos = next
	}

	out := make([]leetVariant, 0, len(combos))
	buf := make([]rune, len(token))
	for _, combo := range combos {
		subs := make(map[rune]rune, len(chars))
		for i, c := range chars {
			subs[c] = combo[i]
		}
		for i, r := range token {
			if letter, ok := subs[r]; ok {
				buf[i] = letter
			} else {
				buf[i] = r
			}
		}
		out = append(out, leetVariant{word: string(buf), subs: subs})
	}
	return out
}
