package passentropy

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/nbutton23/zxcvbn-go/frequency"
	"golang.org/x/text/unicode/norm"
)

// builtinLists are the ranked frequency lists bundled with zxcvbn-go.
var builtinLists = []string{"Passwords", "English", "FemaleNames", "MaleNames", "Surname"}

// DictionaryEntry is a word and its frequency rank (1 is most common).
type DictionaryEntry struct {
	Word string
	Rank int
}

// WordList is a named, ranked word list. It is immutable once built.
type WordList struct {
	name   string
	ranks  map[string]int
	maxLen int // longest word, in characters
}

// NewWordList ranks words by their order: the first word gets rank 1.
// Blank entries are skipped; a repeated word keeps its first rank.
func NewWordList(name string, words []string) *WordList {
	l := &WordList{
		name:  name,
		ranks: make(map[string]int, len(words)),
	}
	rank := 0
	for _, w := range words {
		word := normalizeWord(w)
		if word == "" {
			continue
		}
		rank++
		l.add(word, rank)
	}
	return l
}

// ParseWordList reads one word per line, optionally followed by its rank
// ("word 12" or "word,12"). Lines without a rank are ranked by position.
// Blank lines and lines starting with '#' are ignored.
func ParseWordList(name string, r io.Reader) (*WordList, error) {
	l := &WordList{
		name:  name,
		ranks: make(map[string]int),
	}
	sc := bufio.NewScanner(r)
	lineNo, position := 0, 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !utf8.ValidString(line) {
			return nil, fmt.Errorf("%w: word list %s line %d is not valid UTF-8", ErrInvalidInput, name, lineNo)
		}
		position++
		word, rank := line, position
		if i := strings.LastIndexAny(line, " \t,"); i > 0 {
			// a trailing field that is not a number is part of the word
			if n, err := strconv.Atoi(strings.TrimSpace(line[i+1:])); err == nil {
				word, rank = strings.TrimSpace(line[:i]), max(n, 1)
			}
		}
		if word = normalizeWord(word); word != "" {
			l.add(word, rank)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read word list %s: %w", name, err)
	}
	return l, nil
}

// LoadWordListFile parses a word list file; the list is named after the file.
func LoadWordListFile(path string) (*WordList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ParseWordList(name, f)
}

func (l *WordList) add(word string, rank int) {
	if old, ok := l.ranks[word]; ok && old <= rank {
		return
	}
	l.ranks[word] = rank
	if n := utf8.RuneCountInString(word); n > l.maxLen {
		l.maxLen = n
	}
}

// Name returns the list name.
func (l *WordList) Name() string { return l.name }

// Len returns the number of distinct words.
func (l *WordList) Len() int { return len(l.ranks) }

// Rank looks word up case-insensitively.
func (l *WordList) Rank(word string) (int, bool) {
	return l.rank(normalizeWord(word))
}

func (l *WordList) rank(lowered string) (int, bool) {
	r, ok := l.ranks[lowered]
	return r, ok
}

func (l *WordList) maxWordLen() int { return l.maxLen }

// Store queries several word lists and answers with the best rank.
type Store struct {
	lists  []*WordList
	maxLen int
}

// NewStore builds a store over lists. Nil lists are ignored.
func NewStore(lists ...*WordList) *Store {
	s := &Store{}
	for _, l := range lists {
		if l == nil {
			continue
		}
		s.lists = append(s.lists, l)
		s.maxLen = max(s.maxLen, l.maxLen)
	}
	return s
}

// Rank returns the lowest rank of word across all lists.
func (s *Store) Rank(word string) (int, bool) {
	return s.rank(normalizeWord(word))
}

// Lookup returns the best entry for word and the name of the list holding it.
func (s *Store) Lookup(word string) (DictionaryEntry, string, bool) {
	word = normalizeWord(word)
	best, list := 0, ""
	for _, l := range s.lists {
		if r, ok := l.rank(word); ok && (best == 0 || r < best) {
			best, list = r, l.name
		}
	}
	if best == 0 {
		return DictionaryEntry{}, "", false
	}
	return DictionaryEntry{Word: word, Rank: best}, list, true
}

// Lists returns the names of the lists in lookup order.
func (s *Store) Lists() []string {
	names := make([]string, len(s.lists))
	for i, l := range s.lists {
		names[i] = l.name
	}
	return names
}

func (s *Store) rank(lowered string) (int, bool) {
	best := 0
	for _, l := range s.lists {
		if r, ok := l.rank(lowered); ok && (best == 0 || r < best) {
			best = r
		}
	}
	return best, best > 0
}

func (s *Store) maxWordLen() int { return s.maxLen }

// ranker is what the dictionary matcher needs from a Store or a WordList.
type ranker interface {
	rank(lowered string) (int, bool)
	maxWordLen() int
}

var (
	builtinOnce  sync.Once
	builtinStore []*WordList
)

// BuiltinWordLists returns the bundled frequency lists. They are built once
// and shared by every estimator.
func BuiltinWordLists() []*WordList {
	builtinOnce.Do(func() {
		for _, name := range builtinLists {
			fl, ok := frequency.Lists[name]
			if !ok {
				continue
			}
			builtinStore = append(builtinStore, NewWordList(name, fl.List))
		}
	})
	return builtinStore
}

// newUserWordList ranks the caller's context words for a single estimate.
func newUserWordList(words []string) *WordList {
	return NewWordList("user", words)
}

// normalizeWord lower-cases w and puts it in NFC so a word typed with
// combining accents matches its precomposed form.
func normalizeWord(w string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(w)))
}
