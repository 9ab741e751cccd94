package passentropy

// maxRepeatUnit is the longest block considered for repetition.
const maxRepeatUnit = 32

// repeatMatches finds runs where a block repeats back to back at least
// twice, like "aaaa" or "abcabcabc". Runs are reported from their first
// character and with the block's smallest period. The block is guessed by
// brute force over its own classes, then the count costs log2(count).
func repeatMatches(pw []rune) []Match {
	var matches []Match
	n := len(pw)
	for i := 0; i < n; i++ {
		for unit := 1; unit <= maxRepeatUnit && i+2*unit <= n; unit++ {
			block := pw[i : i+unit]
			if i >= unit && equalRunes(pw[i-unit:i], block) {
				continue // the run starts earlier
			}
			if hasShorterPeriod(block) {
				continue
			}
			count := 1
			for i+(count+1)*unit <= n && equalRunes(pw[i+count*unit:i+(count+1)*unit], block) {
				count++
			}
			if count < 2 {
				continue
			}
			entropy := bruteEntropy(block) + lg(float64(count))
			matches = append(matches, newMatch(pw, i, i+count*unit, Repeat, entropy))
		}
	}
	return matches
}

// hasShorterPeriod reports whether s is itself a repetition of a shorter block.
func hasShorterPeriod(s []rune) bool {
	n := len(s)
	for p := 1; p <= n/2; p++ {
		if n%p != 0 {
			continue
		}
		periodic := true
		for k := p; k < n; k++ {
			if s[k] != s[k-p] {
				periodic = false
				break
			}
		}
		if periodic {
			return true
		}
	}
	return false
}

func equalRunes(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
