package passentropy

import (
	"math"
	"unicode"
)

// dictionaryMatches looks every substring of the password up in r, plainly,
// reversed and de-leeted. For each span it keeps the cheapest plain match
// and the cheapest leet match. A reversed word costs one bit more than the
// same word forwards, whether or not it was also de-leeted.
func dictionaryMatches(pw, lower []rune, r ranker, plain, leet MatchType) []Match {
	var matches []Match
	n := len(pw)
	maxLen := r.maxWordLen()
	if maxLen == 0 {
		return nil
	}
	rev := make([]rune, 0, maxLen)
	for i := 0; i < n; i++ {
		for j := i + 1; j <= n && j-i <= maxLen; j++ {
			token := lower[i:j]
			cost := caseEntropy(pw[i:j])

			best := math.Inf(1)
			if rank, ok := r.rank(string(token)); ok {
				best = rankEntropy(rank) + cost
			}
			rev = reverseInto(rev[:0], token)
			if rank, ok := r.rank(string(rev)); ok {
				best = math.Min(best, rankEntropy(rank)+cost+1)
			}
			if !math.IsInf(best, 1) {
				matches = append(matches, newMatch(pw, i, j, plain, best))
			}

			// a token made only of leet characters, like "1" or "!!", is
			// not a disguised word
			if !hasLeet(token) || !hasLetter(token) {
				continue
			}
			bestLeet := math.Inf(1)
			for _, v := range leetVariants(token) {
				subs := cost + leetEntropy(token, v.subs)
				if rank, ok := r.rank(v.word); ok {
					bestLeet = math.Min(bestLeet, rankEntropy(rank)+subs)
				}
				rev = reverseInto(rev[:0], []rune(v.word))
				if rank, ok := r.rank(string(rev)); ok {
					bestLeet = math.Min(bestLeet, rankEntropy(rank)+subs+1)
				}
			}
			if !math.IsInf(bestLeet, 1) {
				matches = append(matches, newMatch(pw, i, j, leet, bestLeet))
			}
		}
	}
	return matches
}

func hasLetter(token []rune) bool {
	for _, r := range token {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func reverseInto(dst, src []rune) []rune {
	for i := len(src) - 1; i >= 0; i-- {
		dst = append(dst, src[i])
	}
	return dst
}

func newMatch(pw []rune, i, j int, t MatchType, entropy float64) Match {
	return Match{
		Begin:   i,
		Length:  j - i,
		Entropy: entropy,
		Type:    t,
		Token:   string(pw[i:j]),
	}
}
