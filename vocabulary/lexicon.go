package vocabulary

import (
	"sort"

	"github.com/smhanov/dawg"
)

// Lexicon is an immutable dictionary backed by a directed acyclic word
// graph. It is safe for concurrent queries.
type Lexicon struct {
	finder dawg.Finder
	size   int
}

// Contains reports whether word is recognized, ignoring case. A regular
// inflection of a known word, such as a plural or an -ing form, is
// recognized too.
func (l *Lexicon) Contains(word string) bool {
	key := normalize(word)
	if key == "" || l.finder == nil {
		return false
	}
	if l.has(key) {
		return true
	}
	for _, base := range baseForms(key) {
		if l.has(base) {
			return true
		}
	}
	return false
}

func (l *Lexicon) has(key string) bool {
	return l.finder.IndexOf(key) >= 0
}

// Unknown returns the distinct non-empty inputs not in the lexicon, sorted.
func (l *Lexicon) Unknown(words []string) []string {
	var unknown []string
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		if !l.Contains(w) {
			unknown = append(unknown, w)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// Len returns the number of distinct words in the lexicon.
func (l *Lexicon) Len() int {
	return l.size
}
