package passentropy

import (
	"math"
	"testing"
	"unicode"
)

func lowerRunes(s string) []rune {
	r := []rune(s)
	for i := range r {
		r[i] = unicode.ToLower(r[i])
	}
	return r
}

func findMatch(matches []Match, begin, length int, typ MatchType) (Match, bool) {
	for _, m := range matches {
		if m.Begin == begin && m.Length == length && m.Type == typ {
			return m, true
		}
	}
	return Match{}, false
}

func TestDictionaryMatches(t *testing.T) {
	list := NewWordList("test", []string{"password", "dragon", "pass"})

	tests := []struct {
		name    string
		pw      string
		begin   int
		length  int
		typ     MatchType
		entropy float64
	}{
		{"embedded word", "xpasswordx", 1, 8, Dictionary, 0},
		{"second rank", "dragon", 0, 6, Dictionary, 1},
		{"capitalised", "Dragon", 0, 6, Dictionary, 2},
		{"reversed", "nogard", 0, 6, Dictionary, 2},
		{"prefix word", "password", 0, 4, Dictionary, math.Log2(3)},
		{"leet", "p4ssw0rd", 0, 8, DictionaryLeet, 1},
		{"leet capitalised", "P4ssw0rd", 0, 8, DictionaryLeet, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pw := []rune(tt.pw)
			matches := dictionaryMatches(pw, lowerRunes(tt.pw), list, Dictionary, DictionaryLeet)
			m, ok := findMatch(matches, tt.begin, tt.length, tt.typ)
			if !ok {
				t.Fatalf("no %s match at %d+%d in %v", tt.typ, tt.begin, tt.length, matches)
			}
			if !near(m.Entropy, tt.entropy) {
				t.Errorf("entropy = %v, want %v", m.Entropy, tt.entropy)
			}
			if m.Token != string(pw[tt.begin:tt.begin+tt.length]) {
				t.Errorf("token = %q", m.Token)
			}
		})
	}
}

func TestDictionaryMatchesUserTypes(t *testing.T) {
	user := newUserWordList([]string{"correcthorsebatterystaple"})
	pw := "c0rr3cth0rs3b4tt3ryst4pl3"
	matches := dictionaryMatches([]rune(pw), lowerRunes(pw), user, UserWord, UserWordLeet)
	m, ok := findMatch(matches, 0, 25, UserWordLeet)
	if !ok {
		t.Fatalf("no user leet match in %v", matches)
	}
	// three substituted letters, each fully: lg 3
	if !near(m.Entropy, math.Log2(3)) {
		t.Errorf("entropy = %v, want lg 3", m.Entropy)
	}
}

func TestDictionaryMatchesLeetNeedsALetter(t *testing.T) {
	list := NewWordList("test", []string{"password", "i", "l", "a"})

	for _, pw := range []string{"1", "!", "@", "1!", "password1"} {
		matches := dictionaryMatches([]rune(pw), lowerRunes(pw), list, Dictionary, DictionaryLeet)
		for _, m := range matches {
			if m.Type == DictionaryLeet {
				t.Errorf("%q: leet match on %q", pw, m.Token)
			}
		}
	}

	res, err := newTestEstimator(t, "password", "i", "l").Estimate("password1")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Matches) != 2 || res.Matches[1].Type != Brute {
		t.Fatalf("password1 = %+v, want password then a brute digit", res.Matches)
	}
	if !near(res.Entropy, math.Log2(10)) {
		t.Errorf("password1 = %v bits, want lg 10", res.Entropy)
	}
}

func TestDictionaryMatchesReversedLeet(t *testing.T) {
	list := NewWordList("test", []string{"illness"})

	tests := []struct {
		pw   string
		want float64
	}{
		{"i1lness", math.Log2(3)},
		{"ssenl1i", math.Log2(3) + 1},
		{"SSENL1I", math.Log2(3) + 2},
	}
	for _, tt := range tests {
		matches := dictionaryMatches([]rune(tt.pw), lowerRunes(tt.pw), list, Dictionary, DictionaryLeet)
		m, ok := findMatch(matches, 0, 7, DictionaryLeet)
		if !ok {
			t.Errorf("%q: no leet match in %v", tt.pw, matches)
			continue
		}
		if !near(m.Entropy, tt.want) {
			t.Errorf("%q: entropy = %v, want %v", tt.pw, m.Entropy, tt.want)
		}
	}
}

func TestDictionaryMatchesEmptyList(t *testing.T) {
	if got := dictionaryMatches([]rune("abc"), []rune("abc"), newUserWordList(nil), UserWord, UserWordLeet); len(got) != 0 {
		t.Errorf("empty list produced %v", got)
	}
}

func TestSequenceMatches(t *testing.T) {
	tests := []struct {
		pw   string
		want []Match
	}{
		{"abcdef", []Match{{Begin: 0, Length: 6, Type: Sequence, Entropy: 1 + math.Log2(6), Token: "abcdef"}}},
		{"xx12345", []Match{{Begin: 2, Length: 5, Type: Sequence, Entropy: 1 + math.Log2(5), Token: "12345"}}},
		{"97531", []Match{{Begin: 0, Length: 5, Type: Sequence, Entropy: 1 + math.Log2(5) + 1, Token: "97531"}}},
		// the step is not priced
		{"02468", []Match{{Begin: 0, Length: 5, Type: Sequence, Entropy: math.Log2(10), Token: "02468"}}},
		{"adgjmpsvy", []Match{{Begin: 0, Length: 9, Type: Sequence, Entropy: 1 + math.Log2(9), Token: "adgjmpsvy"}}},
		{"abcba", []Match{
			{Begin: 0, Length: 3, Type: Sequence, Entropy: 1 + math.Log2(3), Token: "abc"},
			{Begin: 2, Length: 3, Type: Sequence, Entropy: math.Log2(26) + math.Log2(3) + 1, Token: "cba"},
		}},
		{"ab", nil},
		{"aBc", nil},
		{"a1b2", nil},
		{"agm", nil}, // step 6
		{"aaa", nil},
	}
	for _, tt := range tests {
		got := sequenceMatches([]rune(tt.pw))
		if len(got) != len(tt.want) {
			t.Errorf("sequenceMatches(%q) = %v, want %v", tt.pw, got, tt.want)
			continue
		}
		for i := range got {
			w := tt.want[i]
			g := got[i]
			if g.Begin != w.Begin || g.Length != w.Length || g.Type != w.Type || g.Token != w.Token || !near(g.Entropy, w.Entropy) {
				t.Errorf("sequenceMatches(%q)[%d] = %+v, want %+v", tt.pw, i, g, w)
			}
		}
	}
}

func TestSpatialMatches(t *testing.T) {
	s := float64(Qwerty.StartingPositions())
	d := Qwerty.AverageDegree()

	tests := []struct {
		pw      string
		begin   int
		length  int
		entropy float64
	}{
		{"qwerty", 0, 6, math.Log2(5 * s * d)},
		{"xxqaz", 2, 3, math.Log2(2 * s * d)},
		// the first key's shift is free: two of the other three are shifted
		{"qwER", 0, 4, math.Log2(3*s*d) + math.Log2(11)},
		{"QwER", 0, 4, math.Log2(3*s*d) + math.Log2(11)},
	}
	for _, tt := range tests {
		matches := spatialMatchesOn([]rune(tt.pw), Qwerty)
		m, ok := findMatch(matches, tt.begin, tt.length, Spatial)
		if !ok {
			t.Errorf("%q: no spatial match at %d+%d in %v", tt.pw, tt.begin, tt.length, matches)
			continue
		}
		if !near(m.Entropy, tt.entropy) {
			t.Errorf("%q: entropy = %v, want %v", tt.pw, m.Entropy, tt.entropy)
		}
	}

	if got := spatialMatchesOn([]rune("qp"), Qwerty); len(got) != 0 {
		t.Errorf("two keys are not a walk: %v", got)
	}
	if got := spatialMatchesOn([]rune("qwpzxm"), Qwerty); len(got) != 0 {
		t.Errorf("short chains should be ignored: %v", got)
	}
}

func TestSpatialMatchesAllGraphs(t *testing.T) {
	matches := spatialMatches([]rune("789"), DefaultKeyboards())
	var keypads int
	for _, m := range matches {
		if m.Begin == 0 && m.Length == 3 {
			keypads++
		}
	}
	// both qwertys, dvorak (top row), keypad and mac keypad all see 789
	if keypads != 5 {
		t.Errorf("expected 5 walks over 789, got %d: %v", keypads, matches)
	}
}

func TestDateMatches(t *testing.T) {
	sep := math.Log2(23*365) + 2

	tests := []struct {
		pw      string
		begin   int
		length  int
		entropy float64
	}{
		{"13/3/1997", 0, 9, sep},
		{"neverforget13/3/1997", 11, 9, sep},
		{"1997-3-13", 0, 9, sep},
		{"3.13.97", 0, 7, sep},
		{"29/02/2000", 0, 10, math.Log2(20*365) + 2},
		// 11 9 1 read as 2001 is closer to the reference than 1 1 91
		{"1191", 0, 4, math.Log2(20 * 365)},
		{"13031997", 0, 8, math.Log2(23 * 365)},
	}
	for _, tt := range tests {
		matches := dateMatches([]rune(tt.pw), 2020)
		m, ok := findMatch(matches, tt.begin, tt.length, Date)
		if !ok {
			t.Errorf("%q: no date at %d+%d in %v", tt.pw, tt.begin, tt.length, matches)
			continue
		}
		if !near(m.Entropy, tt.entropy) {
			t.Errorf("%q: entropy = %v, want %v", tt.pw, m.Entropy, tt.entropy)
		}
	}
}

func TestDateMatchesDropsInnerDates(t *testing.T) {
	matches := dateMatches([]rune("13/3/1997"), 2020)
	if len(matches) != 1 {
		t.Errorf("expected only the full date, got %v", matches)
	}
}

func TestDateMatchesRejects(t *testing.T) {
	for _, pw := range []string{"31/02/2000", "29/02/2001", "13/13/1997", "13/3.1997", "abcdefgh", "0000"} {
		for _, m := range dateMatches([]rune(pw), 2020) {
			if m.Length == len([]rune(pw)) {
				t.Errorf("%q should not be a date: %v", pw, m)
			}
		}
	}
}

func TestYearMatches(t *testing.T) {
	tests := []struct {
		pw      string
		want    int
		entropy float64
	}{
		{"born1987", 1, math.Log2(33)},
		{"2020", 1, math.Log2(20)},
		{"abc2099", 1, math.Log2(79)},
		{"1899", 0, 0},
		{"2100", 0, 0},
		// 9871, 8719 and 7198 are out of range
		{"19871988", 2, math.Log2(33)},
	}
	for _, tt := range tests {
		got := yearMatches([]rune(tt.pw), 2020)
		if len(got) != tt.want {
			t.Errorf("yearMatches(%q) = %v, want %d matches", tt.pw, got, tt.want)
			continue
		}
		if tt.want > 0 && !near(got[0].Entropy, tt.entropy) {
			t.Errorf("yearMatches(%q) entropy = %v, want %v", tt.pw, got[0].Entropy, tt.entropy)
		}
	}
}

func TestRepeatMatches(t *testing.T) {
	matches := repeatMatches([]rune("aaaa"))
	if len(matches) != 1 {
		t.Fatalf("aaaa: expected one run, got %v", matches)
	}
	if m := matches[0]; m.Begin != 0 || m.Length != 4 || !near(m.Entropy, math.Log2(26)+2) {
		t.Errorf("aaaa: got %+v", m)
	}

	matches = repeatMatches([]rune("abcabcabc"))
	m, ok := findMatch(matches, 0, 9, Repeat)
	if !ok {
		t.Fatalf("abcabcabc: no full run in %v", matches)
	}
	// the block is brute forced once, then lg 3 for three copies
	if want := 3*math.Log2(26) + math.Log2(3); !near(m.Entropy, want) {
		t.Errorf("abcabcabc: entropy = %v, want %v", m.Entropy, want)
	}
	if _, ok := findMatch(matches, 0, 6, Repeat); ok {
		t.Error("abcabc is not a separate block when abc repeats")
	}

	if got := repeatMatches([]rune("abcd")); len(got) != 0 {
		t.Errorf("abcd has no repeats: %v", got)
	}
}

func TestRepeatMatchesBlockClasses(t *testing.T) {
	tests := []struct {
		pw   string
		want float64
	}{
		{"99", math.Log2(10) + 1},
		{"aB1aB1", 3*math.Log2(62) + 1},
		{"quvpzquvpz", 5*math.Log2(26) + 1},
		{"pass.word.pass.word.pass.word.", 10*math.Log2(59) + math.Log2(3)},
	}
	for _, tt := range tests {
		n := len([]rune(tt.pw))
		m, ok := findMatch(repeatMatches([]rune(tt.pw)), 0, n, Repeat)
		if !ok {
			t.Errorf("%q: no full run", tt.pw)
			continue
		}
		if !near(m.Entropy, tt.want) {
			t.Errorf("%q: entropy = %v, want %v", tt.pw, m.Entropy, tt.want)
		}
	}
}

func TestHasShorterPeriod(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"a", false},
		{"aa", true},
		{"abab", true},
		{"aba", false},
		{"abcabc", true},
		{"abcab", false},
	}
	for _, tt := range tests {
		if got := hasShorterPeriod([]rune(tt.in)); got != tt.want {
			t.Errorf("hasShorterPeriod(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
