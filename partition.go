package passentropy

import "math"

// tieEpsilon treats totals this close as equal so tie-breaks, not rounding
// noise, decide between alternatives.
const tieEpsilon = 1e-9

// Partition states: the last piece of the prefix is a detected match, or a
// brute-force gap. A gap never follows a gap, so each gap is one maximal
// Brute match priced with the classes it actually contains.
const (
	afterMatch = iota
	afterBrute
	numStates
)

// step is the best way found so far to explain a prefix ending in a state.
type step struct {
	total     float64
	set       bool
	begin     int
	prevState int
	length    int
	typ       MatchType
	entropy   float64
}

// better orders steps by total entropy, then prefers the longer last piece,
// then the lower match type. Equal steps keep the one found first.
func (s step) better(o step) bool {
	if !o.set {
		return true
	}
	if math.Abs(s.total-o.total) > tieEpsilon {
		return s.total < o.total
	}
	if s.length != o.length {
		return s.length > o.length
	}
	return s.typ < o.typ
}

// partition is the combiner's output: the chosen pieces in order and their
// total entropy.
type partition struct {
	total  float64
	pieces []piece
}

type piece struct {
	begin, end int
	typ        MatchType
	entropy    float64
}

// minimumEntropyPartition picks the sequence of non-overlapping candidates,
// with brute-force gaps in between, that explains pw with the least total
// entropy. A candidate that does not start the password also pays
// joinEntropy, and the chosen piece reports its entropy with that included.
// It runs in O(n² + len(candidates)).
func minimumEntropyPartition(pw []rune, candidates []Match) partition {
	n := len(pw)
	if n == 0 {
		return partition{}
	}

	byEnd := make([][]int, n+1)
	for k, m := range candidates {
		if m.Begin < 0 || m.Length <= 0 || m.End() > n {
			continue
		}
		byEnd[m.End()] = append(byEnd[m.End()], k)
	}

	best := make([][numStates]step, n+1)
	best[0][afterMatch] = step{set: true, prevState: afterMatch}

	for i := 1; i <= n; i++ {
		for _, k := range byEnd[i] {
			m := candidates[k]
			entropy := m.Entropy + joinEntropy(m.Type, m.Begin, i, n)
			for s := 0; s < numStates; s++ {
				from := best[m.Begin][s]
				if !from.set {
					continue
				}
				next := step{
					total:     from.total + entropy,
					set:       true,
					begin:     m.Begin,
					prevState: s,
					length:    m.Length,
					typ:       m.Type,
					entropy:   entropy,
				}
				if next.better(best[i][afterMatch]) {
					best[i][afterMatch] = next
				}
			}
		}

		var classes charClass
		for j := i - 1; j >= 0; j-- {
			classes |= classOf(pw[j])
			from := best[j][afterMatch]
			if !from.set {
				continue
			}
			entropy := float64(i-j) * lg(float64(classes.poolSize()))
			next := step{
				total:     from.total + entropy,
				set:       true,
				begin:     j,
				prevState: afterMatch,
				length:    i - j,
				typ:       Brute,
				entropy:   entropy,
			}
			if next.better(best[i][afterBrute]) {
				best[i][afterBrute] = next
			}
		}
	}

	state := afterMatch
	if best[n][afterBrute].better(best[n][afterMatch]) {
		state = afterBrute
	}
	p := partition{total: best[n][state].total}
	for i := n; i > 0; {
		st := best[i][state]
		p.pieces = append(p.pieces, piece{begin: st.begin, end: i, typ: st.typ, entropy: st.entropy})
		i, state = st.begin, st.prevState
	}
	for l, r := 0, len(p.pieces)-1; l < r; l, r = l+1, r-1 {
		p.pieces[l], p.pieces[r] = p.pieces[r], p.pieces[l]
	}
	return p
}
