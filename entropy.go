package passentropy

import (
	"maps"
	"math"
	"slices"
	"unicode"
)

// Pool sizes per character class, used for brute-force cardinality.
const (
	lowerPool  = 26
	upperPool  = 26
	digitPool  = 10
	symbolPool = 33 // common printable symbols
)

type charClass uint8

const (
	classLower charClass = 1 << iota
	classUpper
	classDigit
	classSymbol
)

func classOf(r rune) charClass {
	switch {
	case unicode.IsLower(r):
		return classLower
	case unicode.IsUpper(r):
		return classUpper
	case unicode.IsDigit(r):
		return classDigit
	default:
		return classSymbol
	}
}

// poolSize converts a set of character classes into the number of symbols an
// attacker has to try per position.
func (c charClass) poolSize() int {
	pool := 0
	if c&classLower != 0 {
		pool += lowerPool
	}
	if c&classUpper != 0 {
		pool += upperPool
	}
	if c&classDigit != 0 {
		pool += digitPool
	}
	if c&classSymbol != 0 {
		pool += symbolPool
	}
	return pool
}

// effectivePoolSize determines the character pool based on what types
// of characters are actually present in s.
func effectivePoolSize(s []rune) int {
	var classes charClass
	for _, r := range s {
		classes |= classOf(r)
	}
	return classes.poolSize()
}

// bruteEntropy is length * log2(poolSize) for the classes present in s.
func bruteEntropy(s []rune) float64 {
	return float64(len(s)) * lg(float64(effectivePoolSize(s)))
}

// lg is log2 floored at zero, so ranks and counts below one never yield
// negative bits.
func lg(x float64) float64 {
	if x <= 1 || math.IsNaN(x) {
		return 0
	}
	return math.Log2(x)
}

// nCk returns the binomial coefficient as a float to avoid overflow on long tokens.
func nCk(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	if k == 0 || k == n {
		return 1
	}
	if k > n-k {
		k = n - k
	}
	r := 1.0
	for d := 1; d <= k; d++ {
		r *= float64(n - k + d)
		r /= float64(d)
	}
	return r
}

// rankEntropy is the cost of picking the word at rank from a frequency list.
func rankEntropy(rank int) float64 {
	if rank < 1 {
		rank = 1
	}
	return lg(float64(rank))
}

// caseEntropy prices the capitalisation of a dictionary token. All lower case
// is free; a single capital at either end or all capitals costs one bit;
// anything else costs the number of ways to place up to that many capitals.
func caseEntropy(token []rune) float64 {
	upper, lower := 0, 0
	for _, r := range token {
		switch {
		case unicode.IsUpper(r):
			upper++
		case unicode.IsLower(r):
			lower++
		}
	}
	if upper == 0 {
		return 0
	}
	if lower == 0 {
		return 1
	}
	if upper == 1 && (unicode.IsUpper(token[0]) || unicode.IsUpper(token[len(token)-1])) {
		return 1
	}
	return lg(variations(upper, lower))
}

// variations counts the ways to mark at most min(a, b) of a+b positions,
// which is how many spellings an attacker tries when a and b occurrences of
// two variants are interleaved.
func variations(a, b int) float64 {
	possibilities := 0.0
	for i := 0; i <= min(a, b); i++ {
		possibilities += nCk(a+b, i)
	}
	return possibilities
}

// leetEntropy prices the substitutions used to reach a dictionary word. Each
// substituted character contributes the spellings that mix it with the plain
// letters already in the token, and the contributions add up. The result is
// at least one bit, for knowing that substitutions were used.
func leetEntropy(token []rune, subs map[rune]rune) float64 {
	possibilities := 0.0
	for _, leet := range slices.Sorted(maps.Keys(subs)) {
		letter := subs[leet]
		substituted, plain := 0, 0
		for _, r := range token {
			switch unicode.ToLower(r) {
			case leet:
				substituted++
			case letter:
				plain++
			}
		}
		possibilities += variations(substituted, plain)
	}
	return math.Max(lg(possibilities), 1)
}

// spatialEntropy prices a keyboard walk of length characters with the given
// number of direction changes and shifted keys. The shift state of the first
// key is not counted.
func spatialEntropy(g *KeyboardGraph, length, turns, shifted int) float64 {
	s := float64(g.StartingPositions())
	d := g.AverageDegree()
	possibilities := 0.0
	for i := 2; i <= length; i++ {
		possibleTurns := min(turns, i-1)
		for j := 1; j <= possibleTurns; j++ {
			possibilities += nCk(i-1, j-1) * s * math.Pow(d, float64(j))
		}
	}
	entropy := lg(possibilities)
	if shifted > 0 {
		unshifted := length - shifted
		if unshifted == 0 {
			entropy++
		} else {
			entropy += lg(variations(shifted, unshifted))
		}
	}
	return entropy
}

// sequenceEntropy prices an arithmetic run that starts at first. The step
// size is not priced.
func sequenceEntropy(first rune, length int, descending bool) float64 {
	var base float64
	switch {
	case isObviousSequenceStart(first):
		base = 1
	case first >= '0' && first <= '9':
		base = lg(digitPool)
	case first >= 'a' && first <= 'z':
		base = lg(lowerPool)
	default:
		base = lg(upperPool) + 1
	}
	entropy := base + lg(float64(length))
	if descending {
		entropy++
	}
	return entropy
}

func isObviousSequenceStart(r rune) bool {
	switch r {
	case 'a', 'z', 'A', 'Z', '0', '1', '9':
		return true
	}
	return false
}

// Calendar constants for date and year pricing.
const (
	minYear      = 1900
	maxYear      = 2099
	minYearSpace = 20
	daysPerYear  = 365
)

// yearSpace is how far the year lies from the reference year, with a floor so
// recent years are not priced as free.
func yearSpace(year, referenceYear int) float64 {
	d := year - referenceYear
	if d < 0 {
		d = -d
	}
	return float64(max(d, minYearSpace))
}

func yearEntropy(year, referenceYear int) float64 {
	return lg(yearSpace(year, referenceYear))
}

func dateEntropy(year, referenceYear int, separator bool) float64 {
	entropy := lg(yearSpace(year, referenceYear) * daysPerYear)
	if separator {
		entropy += 2
	}
	return entropy
}

// Joining a match onto what precedes it costs extra: the attacker also has to
// guess where one part ends. A final part is cheaper than one in the middle.
const (
	multiEndAddition = 1.0
	multiMidAddition = 1.75
)

// joinEntropy is the extra cost of a detected match spanning [begin, end) in a
// password of n characters. The first part and brute-force gaps cost nothing.
func joinEntropy(t MatchType, begin, end, n int) float64 {
	switch {
	case t == Brute || begin == 0:
		return 0
	case end == n:
		return multiEndAddition
	default:
		return multiMidAddition
	}
}
