package passentropy

const minSpatialLen = 3

// spatialMatches walks the password over each keyboard graph and reports
// chains of at least three adjacent keys. Turns count direction changes,
// shifted counts the keys after the first that were typed with shift.
func spatialMatches(pw []rune, graphs []*KeyboardGraph) []Match {
	var matches []Match
	for _, g := range graphs {
		matches = append(matches, spatialMatchesOn(pw, g)...)
	}
	return matches
}

func spatialMatchesOn(pw []rune, g *KeyboardGraph) []Match {
	var matches []Match
	n := len(pw)
	for i := 0; i < n-1; {
		j := i + 1
		lastDirection := -1
		turns := 0
		shifted := 0
		for j < n {
			direction, isShifted, ok := g.Adjacent(pw[j-1], pw[j])
			if !ok {
				break
			}
			if isShifted {
				shifted++
			}
			if direction != lastDirection {
				turns++
				lastDirection = direction
			}
			j++
		}
		if j-i >= minSpatialLen {
			matches = append(matches, newMatch(pw, i, j, Spatial, spatialEntropy(g, j-i, turns, shifted)))
		}
		i = j
	}
	return matches
}
