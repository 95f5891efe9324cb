package vocabulary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/smhanov/dawg"
)

// Builder collects recognized words. It is not safe for concurrent use.
type Builder struct {
	words map[string]struct{}
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{words: make(map[string]struct{})}
}

// NewBaseBuilder creates a builder seeded with the embedded base and schema
// lexicons.
func NewBaseBuilder() *Builder {
	b := NewBuilder()
	// The embedded lexicons are plain strings; reading them cannot fail.
	_, _ = b.LoadWordList(strings.NewReader(baseLexicon))
	_, _ = b.LoadWordList(strings.NewReader(schemaLexicon))
	return b
}

// LoadWords adds words as given, lowercased. It returns how many were new.
func (b *Builder) LoadWords(words []string) int {
	added := 0
	for _, w := range words {
		if b.add(w) {
			added++
		}
	}
	return added
}

// LoadWordList reads newline-delimited words from r. Lines starting with
// '#' are comments; other lines are split into words at characters that
// are neither letters, digits nor apostrophes.
func (b *Builder) LoadWordList(r io.Reader) (int, error) {
	added := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, w := range strings.FieldsFunc(line, isWordSeparator) {
			if b.add(w) {
				added++
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return added, fmt.Errorf("read word list: %w", err)
	}
	return added, nil
}

// LoadWordListFile reads a word-list file. See LoadWordList.
func (b *Builder) LoadWordListFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()
	return b.LoadWordList(f)
}

// Len returns the number of distinct words collected so far.
func (b *Builder) Len() int {
	return len(b.words)
}

// Finish freezes the collected words into a Lexicon. The builder must not
// be used afterwards.
func (b *Builder) Finish() *Lexicon {
	keys := make([]string, 0, len(b.words))
	for w := range b.words {
		keys = append(keys, w)
	}
	sort.Strings(keys)
	b.words = nil

	lex := &Lexicon{size: len(keys)}
	if len(keys) == 0 {
		return lex
	}

	// dawg requires unique words in strictly increasing order.
	builder := dawg.New()
	for _, w := range keys {
		builder.Add(w)
	}
	lex.finder = builder.Finish()
	return lex
}

func (b *Builder) add(word string) bool {
	key := normalize(word)
	if key == "" {
		return false
	}
	if _, ok := b.words[key]; ok {
		return false
	}
	b.words[key] = struct{}{}
	return true
}

func isWordSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
}
