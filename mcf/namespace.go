package mcf

import (
	"regexp"
	"strings"
)

var (
	namespacePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*:`)
	propertyPattern  = regexp.MustCompile(`^[a-z][A-Za-z0-9_]*$`)
)

// StripNamespace removes a leading "prefix:" from every comma-separated item
// of value, so "dcs:Count_Person, dcid:Thing" becomes "Count_Person, Thing".
// Quoted text is returned unchanged.
func StripNamespace(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || strings.HasPrefix(value, `"`) {
		return value
	}
	items := strings.Split(value, ",")
	for i, item := range items {
		item = strings.TrimSpace(item)
		if loc := namespacePattern.FindStringIndex(item); loc != nil {
			item = item[loc[1]:]
		}
		items[i] = strings.TrimSpace(item)
	}
	return strings.Join(items, sequenceSeparator)
}

// IsValidProperty reports whether name is a legal schema property: an
// optional namespace prefix followed by a lowercase-initial identifier.
func IsValidProperty(name string) bool {
	if loc := namespacePattern.FindStringIndex(name); loc != nil {
		name = name[loc[1]:]
	}
	return propertyPattern.MatchString(name)
}
