package passentropy

import (
	"fmt"
	"strings"
)

// MatchType identifies the pattern class that explains part of a password.
// The numeric codes are stable and may be exchanged with other tools.
type MatchType uint32

const (
	NonMatch       MatchType = 0
	Brute          MatchType = 1
	Dictionary     MatchType = 2
	DictionaryLeet MatchType = 3
	UserWord       MatchType = 4
	UserWordLeet   MatchType = 5
	Repeat         MatchType = 6
	Sequence       MatchType = 7
	Spatial        MatchType = 8
	Date           MatchType = 9
	Year           MatchType = 10
	// Multiple is reserved for aggregate reporting. No matcher emits it.
	Multiple MatchType = 32
)

var matchTypeNames = map[MatchType]string{
	NonMatch:       "non_match",
	Brute:          "brute",
	Dictionary:     "dictionary",
	DictionaryLeet: "dictionary_leet",
	UserWord:       "user_word",
	UserWordLeet:   "user_word_leet",
	Repeat:         "repeat",
	Sequence:       "sequence",
	Spatial:        "spatial",
	Date:           "date",
	Year:           "year",
	Multiple:       "multiple",
}

// ParseMatchType converts a wire-level code into a MatchType.
// Unknown codes are rejected rather than coerced to NonMatch.
func ParseMatchType(code uint32) (MatchType, error) {
	t := MatchType(code)
	if _, ok := matchTypeNames[t]; !ok {
		return NonMatch, fmt.Errorf("%w: code %d", ErrUnknownMatchType, code)
	}
	return t, nil
}

func (t MatchType) String() string {
	if name, ok := matchTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("MatchType(%d)", uint32(t))
}

// MarshalText encodes the type by name.
func (t MatchType) MarshalText() ([]byte, error) {
	name, ok := matchTypeNames[t]
	if !ok {
		return nil, fmt.Errorf("%w: code %d", ErrUnknownMatchType, uint32(t))
	}
	return []byte(name), nil
}

// UnmarshalText decodes a type name produced by MarshalText.
func (t *MatchType) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	for k, v := range matchTypeNames {
		if v == name {
			*t = k
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownMatchType, string(text))
}

// isLeet reports whether the type covers a de-leeted token.
func (t MatchType) isLeet() bool {
	return t == DictionaryLeet || t == UserWordLeet
}

// Match is one substring of the password explained by a single pattern.
// Begin and Length count characters, not bytes.
type Match struct {
	Begin   int       `json:"begin"`
	Length  int       `json:"length"`
	Entropy float64   `json:"entropy"`
	Type    MatchType `json:"type"`
	Token   string    `json:"token"`
}

// End returns the offset one past the last character of the match.
func (m Match) End() int {
	return m.Begin + m.Length
}

// Result is the minimum-entropy explanation of a password. Matches are sorted
// by Begin and tile the whole password; Entropy is the sum of their entropies.
type Result struct {
	Entropy float64 `json:"entropy"`
	Matches []Match `json:"matches"`
}
