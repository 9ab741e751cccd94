package passentropy

import (
	"fmt"
	"math"
)

// assemble turns the combiner's pieces into a Result and checks that they
// tile pw exactly, that every entropy is a finite non-negative number, and
// that the combiner's total agrees with the sum of the pieces.
func assemble(pw []rune, p partition) (Result, error) {
	res := Result{Matches: make([]Match, 0, len(p.pieces))}
	next := 0
	for _, pc := range p.pieces {
		if pc.begin != next || pc.end <= pc.begin || pc.end > len(pw) {
			return Result{}, fmt.Errorf("%w: piece [%d,%d) does not continue at %d", ErrInconsistent, pc.begin, pc.end, next)
		}
		if pc.typ == NonMatch || pc.typ == Multiple {
			return Result{}, fmt.Errorf("%w: piece [%d,%d) has type %s", ErrInconsistent, pc.begin, pc.end, pc.typ)
		}
		if math.IsNaN(pc.entropy) || math.IsInf(pc.entropy, 0) || pc.entropy < 0 {
			return Result{}, fmt.Errorf("%w: piece [%d,%d) has entropy %v", ErrInconsistent, pc.begin, pc.end, pc.entropy)
		}
		res.Matches = append(res.Matches, newMatch(pw, pc.begin, pc.end, pc.typ, pc.entropy))
		res.Entropy += pc.entropy
		next = pc.end
	}
	if next != len(pw) {
		return Result{}, fmt.Errorf("%w: matches cover %d of %d characters", ErrInconsistent, next, len(pw))
	}
	if math.Abs(res.Entropy-p.total) > 1e-6 {
		return Result{}, fmt.Errorf("%w: total %v differs from sum of matches %v", ErrInconsistent, p.total, res.Entropy)
	}
	return res, nil
}
