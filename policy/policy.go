// Package policy decides which property:value pairs are exempt from spell
// checking.
package policy

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/c360studio/schemaspell/config"
	"github.com/c360studio/schemaspell/mcf"
)

const (
	// commentMarker starts comment properties.
	commentMarker = "#"
	// idNamespace marks dcid values such as dc/vp8cbt6k79t94.
	idNamespace = "dc/"
	// languageSeparator separates text from its language tag as in name@en.
	languageSeparator = "@"
	// textQuote starts literal text values.
	textQuote = `"`
)

// generatedNodeID matches reference node ids such as E0 or E12.
var generatedNodeID = regexp.MustCompile(`\bE[0-9]+\b`)

// Policy holds the property sets derived from a Config. It is immutable
// once created.
type Policy struct {
	ignore   map[string]struct{}
	check    map[string]struct{}
	textOnly bool
}

// New creates a Policy from cfg. A nil cfg uses the defaults.
func New(cfg *config.Config) *Policy {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Policy{
		ignore:   toSet(cfg.EffectiveIgnoreProps()),
		check:    toSet(cfg.CheckProps),
		textOnly: cfg.TextOnly,
	}
}

// IsExempt reports whether prop:value is skipped under cfg.
func IsExempt(prop string, value mcf.Value, cfg *config.Config) bool {
	return New(cfg).IsExempt(prop, value)
}

// TextOnly reports whether only quoted values are checked.
func (p *Policy) TextOnly() bool {
	return p.textOnly
}

// IsExempt reports whether prop:value is skipped. Property rules run
// first; value heuristics only run for properties that survive them.
func (p *Policy) IsExempt(prop string, value mcf.Value) bool {
	return p.IsPropertyExempt(prop) || p.IsValueExempt(value.String())
}

// IsPropertyExempt applies the property-level rules.
func (p *Policy) IsPropertyExempt(prop string) bool {
	if prop == "" || strings.HasPrefix(prop, commentMarker) {
		return true
	}
	if !mcf.IsValidProperty(prop) {
		return true
	}
	if _, ok := p.ignore[prop]; ok {
		return true
	}
	if len(p.check) > 0 {
		if _, ok := p.check[prop]; !ok {
			return true
		}
	}
	return false
}

// IsValueExempt applies the value heuristics to a flattened value.
func (p *Policy) IsValueExempt(value string) bool {
	if value == "" {
		return false
	}
	// Generated dcids are lowercase only; human-authored ones such as
	// dc/g/Root are still checked.
	if strings.Contains(value, idNamespace) && !hasUpper(value) {
		return true
	}
	if strings.Contains(value, languageSeparator) {
		return true
	}
	if p.textOnly && !strings.HasPrefix(value, textQuote) {
		return true
	}
	return generatedNodeID.MatchString(value)
}

func hasUpper(s string) bool {
	return strings.IndexFunc(s, unicode.IsUpper) >= 0
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
