package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// WordList is a list of words that may be written in YAML either as a
// sequence or as a single comma-separated string.
type WordList []string

// ParseWordList splits a comma-separated string, dropping empty entries.
func ParseWordList(s string) WordList {
	var words WordList
	for _, w := range strings.Split(s, ",") {
		if w = strings.TrimSpace(w); w != "" {
			words = append(words, w)
		}
	}
	return words
}

// UnmarshalYAML accepts a scalar or a sequence node.
func (w *WordList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*w = ParseWordList(value.Value)
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		words := make(WordList, 0, len(items))
		for _, item := range items {
			if item = strings.TrimSpace(item); item != "" {
				words = append(words, item)
			}
		}
		*w = words
		return nil
	default:
		return fmt.Errorf("line %d: expected a word list or comma-separated string", value.Line)
	}
}
