package passentropy

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Finding describes one pattern that made a rejected password weak.
// It carries offsets, not the matched text, so it is safe to log.
type Finding struct {
	Type    MatchType `json:"type"`
	Begin   int       `json:"begin"`
	Length  int       `json:"length"`
	Entropy float64   `json:"entropy"`
}

// PolicyError holds every failed rule and, when the password was too easy to
// guess, the patterns responsible.
type PolicyError struct {
	RuleFails []string // e.g. "missing uppercase letter", "too short: minimum 8 characters"
	Findings  []Finding
}

func (e *PolicyError) Error() string {
	var parts []string
	for _, r := range e.RuleFails {
		parts = append(parts, fmt.Sprintf("rule: %s", r))
	}
	for _, f := range e.Findings {
		parts = append(parts, fmt.Sprintf("pattern(%s, %.2f bits): characters %d-%d", f.Type, f.Entropy, f.Begin, f.Begin+f.Length-1))
	}
	return strings.Join(parts, "; ")
}

// Policy combines composition rules with a minimum entropy estimate.
type Policy struct {
	MinLength      int
	MaxLength      int
	RequireLower   bool
	RequireUpper   bool
	RequireNumbers bool
	RequireSymbols bool
	MinEntropy     float64 // bits

	est *Estimator
}

// NewPolicy creates a policy checked with the default estimator.
func NewPolicy(min, max int, lower, upper, numbers, symbols bool, minEntropy float64) *Policy {
	return NewPolicyWithEstimator(nil, min, max, lower, upper, numbers, symbols, minEntropy)
}

// NewPolicyWithEstimator creates a policy checked with est. A nil est uses
// the default estimator.
func NewPolicyWithEstimator(est *Estimator, min, max int, lower, upper, numbers, symbols bool, minEntropy float64) *Policy {
	if minEntropy < 0 {
		minEntropy = 0
	}
	if min < 1 {
		min = 1
	}
	if max < min {
		max = min
	}
	return &Policy{
		MinLength:      min,
		MaxLength:      max,
		RequireLower:   lower,
		RequireUpper:   upper,
		RequireNumbers: numbers,
		RequireSymbols: symbols,
		MinEntropy:     minEntropy,
		est:            est,
	}
}

// Validate reports whether password passes every rule, with the estimate.
// Passwords that cannot be estimated never pass.
func (p *Policy) Validate(password string, contextWords ...string) (bool, Result) {
	pass, res, _ := p.ValidateVerbose(password, contextWords...)
	return pass, res
}

// ValidateVerbose is Validate with details. The error is a *PolicyError when
// rules failed, or the estimation error when the password could not be
// estimated; it is nil only when the password passes.
func (p *Policy) ValidateVerbose(password string, contextWords ...string) (bool, Result, error) {
	est := p.est
	if est == nil {
		var err error
		if est, err = Default(); err != nil {
			return false, Result{}, err
		}
	}
	res, err := est.Estimate(password, contextWords...)
	if err != nil {
		return false, Result{}, err
	}

	pErr := p.check(password, res)
	if len(pErr.RuleFails) > 0 {
		return false, res, pErr
	}
	return true, res, nil
}

func (p *Policy) check(password string, res Result) *PolicyError {
	pErr := &PolicyError{}

	// --- Rule checks ---
	n := utf8.RuneCountInString(password)
	if n < p.MinLength {
		pErr.RuleFails = append(pErr.RuleFails, fmt.Sprintf("too short: minimum %d characters", p.MinLength))
	}
	if n > p.MaxLength {
		pErr.RuleFails = append(pErr.RuleFails, fmt.Sprintf("too long: maximum %d characters", p.MaxLength))
	}

	hasLower, hasUpper, hasNumber, hasSymbol := charClasses(password)

	if p.RequireLower && !hasLower {
		pErr.RuleFails = append(pErr.RuleFails, "missing lowercase letter")
	}
	if p.RequireUpper && !hasUpper {
		pErr.RuleFails = append(pErr.RuleFails, "missing uppercase letter")
	}
	if p.RequireNumbers && !hasNumber {
		pErr.RuleFails = append(pErr.RuleFails, "missing number")
	}
	if p.RequireSymbols && !hasSymbol {
		pErr.RuleFails = append(pErr.RuleFails, "missing symbol")
	}

	// --- Entropy ---
	if res.Entropy < p.MinEntropy {
		pErr.RuleFails = append(pErr.RuleFails, fmt.Sprintf("entropy %.2f bits below threshold %.2f", res.Entropy, p.MinEntropy))
		for _, m := range res.Matches {
			if m.Type == Brute {
				continue
			}
			pErr.Findings = append(pErr.Findings, Finding{Type: m.Type, Begin: m.Begin, Length: m.Length, Entropy: m.Entropy})
		}
	}
	return pErr
}

// IsPolicyError reports whether err carries rule failures.
func IsPolicyError(err error) (*PolicyError, bool) {
	var pErr *PolicyError
	ok := errors.As(err, &pErr)
	return pErr, ok
}

func charClasses(password string) (lower, upper, number, symbol bool) {
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			number = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	return
}
