// Package tokenizer splits schema values and property names into checkable words.
//
// Identifiers in schema files are usually concatenated CamelCase tokens such
// as populationEstimate, so each token is cut at case transitions and every
// piece is checked on its own. Short fragments and acronyms (GDP, USA) are
// dropped since they are never dictionary words.
package tokenizer

import "strings"

// minWordLen is the shortest fragment returned by Words.
const minWordLen = 2

// Words returns the word candidates of value in left-to-right order.
// Duplicates and case are preserved.
func Words(value string) []string {
	var words []string
	for _, token := range strings.Fields(lettersOnly(value)) {
		for _, w := range SplitCamelCase(token) {
			if IsCheckable(w) {
				words = append(words, w)
			}
		}
	}
	return words
}

// SplitCamelCase cuts token before every uppercase letter or digit that
// follows a character that is not uppercase.
//
//	"geoStateId"  -> ["geo", "State", "Id"]
//	"USPopulation" -> ["USPopulation"]
func SplitCamelCase(token string) []string {
	if token == "" {
		return nil
	}
	var parts []string
	start := 0
	for i := 1; i < len(token); i++ {
		if isUpperOrDigit(token[i]) && !isUpper(token[i-1]) {
			parts = append(parts, token[start:i])
			start = i
		}
	}
	return append(parts, token[start:])
}

// IsCheckable reports whether a fragment should be looked up at all.
func IsCheckable(word string) bool {
	if len(word) < minWordLen {
		return false
	}
	return !IsAcronym(word)
}

// IsAcronym reports whether word starts with two uppercase letters.
func IsAcronym(word string) bool {
	return len(word) >= 2 && isUpper(word[0]) && isUpper(word[1])
}

// lettersOnly replaces every byte that is not an ASCII letter with a space.
func lettersOnly(value string) string {
	b := []byte(value)
	for i, c := range b {
		if !isLetter(c) {
			b[i] = ' '
		}
	}
	return string(b)
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || isUpper(c)
}

func isUpper(c byte) bool {
	return 'A' <= c && c <= 'Z'
}

func isUpperOrDigit(c byte) bool {
	return isUpper(c) || ('0' <= c && c <= '9')
}
