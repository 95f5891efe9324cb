package checker

import (
	"sort"
	"strings"

	"github.com/c360studio/schemaspell/mcf"
	"github.com/c360studio/schemaspell/metric"
	"github.com/c360studio/schemaspell/tokenizer"
)

// errorSeparator joins the misspelled words of a property.
const errorSeparator = ", "

// PropertyError holds the misspelled words of one property.
type PropertyError struct {
	Property string
	// Errors is the sorted, comma-joined list of unknown words. Never empty.
	Errors string
}

// PropertyErrors lists property errors in node property order.
type PropertyErrors []PropertyError

// Lookup returns the errors recorded for prop.
func (pe PropertyErrors) Lookup(prop string) (string, bool) {
	for _, e := range pe {
		if e.Property == prop {
			return e.Errors, true
		}
	}
	return "", false
}

// Map returns the errors keyed by property.
func (pe PropertyErrors) Map() map[string]string {
	m := make(map[string]string, len(pe))
	for _, e := range pe {
		m[e.Property] = e.Errors
	}
	return m
}

// WordSet is a set of misspelled words.
type WordSet map[string]struct{}

// Add inserts words into the set.
func (s WordSet) Add(words ...string) {
	for _, w := range words {
		s[w] = struct{}{}
	}
}

// Sorted returns the words in sorted order.
func (s WordSet) Sorted() []string {
	words := make([]string, 0, len(s))
	for w := range s {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// NodeErrors are the spell errors of one node.
type NodeErrors struct {
	DCID       string
	Properties PropertyErrors
	Words      WordSet
}

// CheckNode spell checks every property of node. It returns the errors per
// property and the union of misspelled words; both are empty for a clean
// node.
func (c *Checker) CheckNode(node *mcf.Node) (PropertyErrors, WordSet) {
	vocab := c.Vocabulary()
	var errs PropertyErrors
	words := WordSet{}

	for _, pv := range node.Properties {
		if c.policy.IsExempt(pv.Name, pv.Value) {
			c.counters.Inc(metric.CounterIgnoredPVs)
			continue
		}

		candidates := c.candidates(pv.Name, pv.Value.String())
		if len(candidates) == 0 {
			continue
		}

		unknown := vocab.Unknown(candidates)
		if len(unknown) > 0 {
			joined := strings.Join(unknown, errorSeparator)
			c.logger.Error("Spell error",
				"dcid", node.DCID,
				"property", pv.Name,
				"words", joined)
			errs = append(errs, PropertyError{Property: pv.Name, Errors: joined})
			words.Add(unknown...)
			c.counters.Inc(metric.CounterErrorPVs)
		}
		c.counters.Inc(metric.CounterCheckedPVs)
	}
	return errs, words
}

// candidates returns the words of prop and value that need a lookup. A
// property name or value recognized as a whole is not tokenized.
func (c *Checker) candidates(prop, value string) []string {
	vocab := c.Vocabulary()
	var words []string
	if !c.policy.TextOnly() && len(vocab.Unknown([]string{prop})) > 0 {
		words = append(words, tokenizer.Words(prop)...)
	}
	if len(vocab.Unknown([]string{value})) > 0 {
		words = append(words, tokenizer.Words(mcf.StripNamespace(value))...)
	}
	return words
}

// CheckNodes spell checks nodes in order and returns the errors of nodes
// with at least one misspelled property.
func (c *Checker) CheckNodes(nodes []*mcf.Node) []NodeErrors {
	var results []NodeErrors
	allWords := WordSet{}

	for _, node := range nodes {
		c.counters.Inc(metric.CounterNodes)
		props, words := c.CheckNode(node)
		if len(props) == 0 {
			continue
		}
		c.logger.Error("Spell errors in node", "dcid", node.DCID, "errors", props.Map())
		results = append(results, NodeErrors{DCID: node.DCID, Properties: props, Words: words})
		allWords.Add(words.Sorted()...)
		c.counters.Add(metric.CounterNodeErrors, 1, node.DCID)
	}

	if len(allWords) > 0 {
		c.logger.Error("Words with spell errors", "words", allWords.Sorted())
		c.counters.Add(metric.CounterErrorWords, float64(len(allWords)), "")
	}
	return results
}
