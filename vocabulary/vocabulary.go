// Package vocabulary assembles the dictionary used to recognize words.
//
// A Builder collects words from the embedded base and schema lexicons, the
// system dictionary or configured lexicon files, allow-list files and inline words. Finish freezes the collected
// words into an immutable Lexicon; no word can be added after that point, so
// every query runs against a fully constructed dictionary.
package vocabulary

import (
	_ "embed"
	"strings"
)

// Vocabulary classifies strings as recognized or not.
type Vocabulary interface {
	// Unknown returns the distinct inputs that are not recognized, sorted.
	// Lookup ignores case; results keep the spelling of the input.
	Unknown(words []string) []string

	// Len returns the number of distinct recognized words.
	Len() int
}

//go:embed lexicon/base.txt
var baseLexicon string

// schemaLexicon holds schema and statistics terms that general
// dictionaries lack, such as dcid, geo or naics.
//
//go:embed lexicon/schema.txt
var schemaLexicon string

// normalize maps a word to its dictionary key.
func normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
