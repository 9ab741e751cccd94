package passentropy

const (
	minSequenceLen  = 3
	maxSequenceStep = 5
)

// sequenceClass groups the characters a sequence may run through.
func sequenceClass(r rune) charClass {
	switch {
	case r >= 'a' && r <= 'z':
		return classLower
	case r >= 'A' && r <= 'Z':
		return classUpper
	case r >= '0' && r <= '9':
		return classDigit
	}
	return 0
}

// sequenceMatches finds maximal arithmetic runs such as "abcdef", "97531"
// or "ACEG" inside one character class. Neighbouring runs may share their
// turning character ("abcba" yields "abc" and "cba").
func sequenceMatches(pw []rune) []Match {
	var matches []Match
	n := len(pw)
	for i := 0; i < n-1; {
		class := sequenceClass(pw[i])
		step := int(pw[i+1] - pw[i])
		if class == 0 || sequenceClass(pw[i+1]) != class || step == 0 || abs(step) > maxSequenceStep {
			i++
			continue
		}
		j := i + 1
		for j+1 < n && sequenceClass(pw[j+1]) == class && int(pw[j+1]-pw[j]) == step {
			j++
		}
		if length := j - i + 1; length >= minSequenceLen {
			matches = append(matches, newMatch(pw, i, j+1, Sequence, sequenceEntropy(pw[i], length, step < 0)))
		}
		i = j
	}
	return matches
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
