package passentropy

import (
	"math"
	"time"
)

// Strength buckets an entropy estimate.
type Strength int

const (
	// StrengthWeak falls to an online attack.
	StrengthWeak Strength = iota
	// StrengthFair resists online guessing but not an offline attack.
	StrengthFair
	// StrengthGood resists a slow offline attack.
	StrengthGood
	// StrengthStrong resists a fast offline attack.
	StrengthStrong
)

// Bucket boundaries in bits.
const (
	fairEntropy   = 28
	goodEntropy   = 36
	strongEntropy = 60
)

func (s Strength) String() string {
	switch s {
	case StrengthWeak:
		return "Weak"
	case StrengthFair:
		return "Fair"
	case StrengthGood:
		return "Good"
	case StrengthStrong:
		return "Strong"
	default:
		return "Unknown"
	}
}

// Strength buckets the result's entropy.
func (r Result) Strength() Strength {
	switch {
	case r.Entropy >= strongEntropy:
		return StrengthStrong
	case r.Entropy >= goodEntropy:
		return StrengthGood
	case r.Entropy >= fairEntropy:
		return StrengthFair
	default:
		return StrengthWeak
	}
}

// Score maps the result's entropy to 0-100.
func (r Result) Score() int {
	return entropyToScore(r.Entropy)
}

// CrackTime is the expected time to find the password at the given guess
// rate: half the search space. It saturates instead of overflowing.
func (r Result) CrackTime(guessesPerSecond float64) time.Duration {
	if guessesPerSecond <= 0 {
		return time.Duration(math.MaxInt64)
	}
	seconds := 0.5 * math.Exp2(r.Entropy) / guessesPerSecond
	if seconds >= float64(math.MaxInt64)/float64(time.Second) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(seconds * float64(time.Second))
}

// scoreScale is the entropy, in bits, at which the score reaches 63.
const scoreScale = 40.0

// entropyToScore squeezes an estimate into 0-100 for display. The score
// approaches 100 exponentially, so a Fair result starts near 50 and a Strong
// one near 78.
func entropyToScore(entropy float64) int {
	if entropy <= 0 {
		return 0
	}
	score := math.Round(100 * -math.Expm1(-entropy/scoreScale))
	return int(min(max(score, 0), 100))
}
