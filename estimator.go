// Package passentropy estimates how hard a password is to guess.
//
// A password is broken into overlapping matches found by several pattern
// matchers: dictionary words (plain, reversed and leet-speak), the caller's
// own context words, repeated blocks, character sequences, keyboard walks,
// dates and years. Each match is priced in bits of entropy and the cheapest
// tiling of the password, with brute-force gaps where nothing matched, is the
// estimate.
package passentropy

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"
)

// DefaultReferenceYear anchors date and year pricing: years close to it are
// the cheapest to guess. It is fixed so that estimates are reproducible.
const DefaultReferenceYear = 2020

// Estimator holds the read-only data an estimate needs. It is safe for
// concurrent use.
type Estimator struct {
	store         *Store
	keyboards     []*KeyboardGraph
	referenceYear int
	concurrent    bool
	logger        *slog.Logger
}

type options struct {
	builtin       bool
	store         *Store
	lists         []*WordList
	files         []string
	keyboards     []*KeyboardGraph
	referenceYear int
	concurrent    bool
	logger        *slog.Logger
}

// Option configures an Estimator.
type Option func(*options)

// WithStore replaces the dictionary store entirely.
func WithStore(s *Store) Option {
	return func(o *options) { o.store = s }
}

// WithWordLists adds word lists after the built-in ones.
func WithWordLists(lists ...*WordList) Option {
	return func(o *options) { o.lists = append(o.lists, lists...) }
}

// WithWordListFiles adds word lists read from files; see ParseWordList.
func WithWordListFiles(paths ...string) Option {
	return func(o *options) { o.files = append(o.files, paths...) }
}

// WithoutBuiltinWordLists drops the bundled frequency lists.
func WithoutBuiltinWordLists() Option {
	return func(o *options) { o.builtin = false }
}

// WithKeyboards sets the keyboard graphs walked by the spatial matcher.
func WithKeyboards(graphs ...*KeyboardGraph) Option {
	return func(o *options) { o.keyboards = graphs }
}

// WithReferenceYear sets the year dates are priced against.
func WithReferenceYear(year int) Option {
	return func(o *options) { o.referenceYear = year }
}

// WithConcurrency runs the matchers of one estimate in parallel.
// Results are identical either way.
func WithConcurrency(on bool) Option {
	return func(o *options) { o.concurrent = on }
}

// WithLogger sets the logger. Passwords are never logged.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// NewEstimator builds an estimator. Word list files are read here, once.
func NewEstimator(opts ...Option) (*Estimator, error) {
	o := options{
		builtin:       true,
		keyboards:     DefaultKeyboards(),
		referenceYear: DefaultReferenceYear,
	}
	for _, opt := range opts {
		opt(&o)
	}

	store := o.store
	if store == nil {
		var lists []*WordList
		if o.builtin {
			lists = append(lists, BuiltinWordLists()...)
		}
		lists = append(lists, o.lists...)
		for _, path := range o.files {
			l, err := LoadWordListFile(path)
			if err != nil {
				return nil, err
			}
			lists = append(lists, l)
		}
		store = NewStore(lists...)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger.Debug("estimator ready",
		"word_lists", store.Lists(),
		"keyboards", len(o.keyboards),
		"reference_year", o.referenceYear,
		"concurrent", o.concurrent,
	)
	return &Estimator{
		store:         store,
		keyboards:     o.keyboards,
		referenceYear: o.referenceYear,
		concurrent:    o.concurrent,
		logger:        logger,
	}, nil
}

// Store returns the estimator's dictionary store.
func (e *Estimator) Store() *Store { return e.store }

// Estimate returns the minimum-entropy explanation of password. contextWords
// are things an attacker is assumed to know, such as the user's name; earlier
// words are treated as more likely than later ones.
func (e *Estimator) Estimate(password string, contextWords ...string) (Result, error) {
	if !utf8.ValidString(password) {
		return Result{}, fmt.Errorf("%w: password is not valid UTF-8", ErrInvalidInput)
	}
	for i, w := range contextWords {
		if !utf8.ValidString(w) {
			return Result{}, fmt.Errorf("%w: context word %d is not valid UTF-8", ErrInvalidInput, i)
		}
	}

	pw := []rune(password)
	if len(pw) == 0 {
		return Result{Matches: []Match{}}, nil
	}

	start := time.Now()
	c := e.newCall(contextWords)
	candidates := c.omnimatch(pw)
	res, err := assemble(pw, minimumEntropyPartition(pw, candidates))
	if err != nil {
		e.logger.Error("estimate rejected", "length", len(pw), "candidates", len(candidates), "error", err)
		return Result{}, err
	}
	e.logger.Debug("estimate",
		"length", len(pw),
		"context_word_count", len(contextWords),
		"candidates", len(candidates),
		"matches", len(res.Matches),
		"entropy", res.Entropy,
		"elapsed", time.Since(start),
	)
	return res, nil
}

// call is the state of one Estimate: the estimator and the caller's context
// words, ranked for this call only.
type call struct {
	est  *Estimator
	user *WordList
}

func (e *Estimator) newCall(contextWords []string) *call {
	return &call{
		est:  e,
		user: newUserWordList(contextWords),
	}
}

// omnimatch runs every matcher over pw and concatenates their candidates in a
// fixed order. Concurrent runs give the same order as sequential ones.
func (c *call) omnimatch(pw []rune) []Match {
	lower := make([]rune, len(pw))
	for i, r := range pw {
		lower[i] = unicode.ToLower(r)
	}
	e := c.est
	matchers := []func() []Match{
		func() []Match { return dictionaryMatches(pw, lower, e.store, Dictionary, DictionaryLeet) },
		func() []Match { return dictionaryMatches(pw, lower, c.user, UserWord, UserWordLeet) },
		func() []Match { return repeatMatches(pw) },
		func() []Match { return sequenceMatches(pw) },
		func() []Match { return spatialMatches(pw, e.keyboards) },
		func() []Match { return dateMatches(pw, e.referenceYear) },
		func() []Match { return yearMatches(pw, e.referenceYear) },
	}

	results := make([][]Match, len(matchers))
	if e.concurrent {
		var wg sync.WaitGroup
		for i, m := range matchers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results[i] = m()
			}()
		}
		wg.Wait()
	} else {
		for i, m := range matchers {
			results[i] = m()
		}
	}

	var all []Match
	for _, r := range results {
		all = append(all, r...)
	}
	return all
}

var (
	defaultOnce      sync.Once
	defaultEstimator *Estimator
	defaultErr       error
)

// Default returns the shared estimator built from the bundled word lists.
func Default() (*Estimator, error) {
	defaultOnce.Do(func() {
		defaultEstimator, defaultErr = NewEstimator()
	})
	return defaultEstimator, defaultErr
}

// Estimate runs the default estimator.
func Estimate(password string, contextWords ...string) (Result, error) {
	e, err := Default()
	if err != nil {
		return Result{}, err
	}
	return e.Estimate(password, contextWords...)
}
