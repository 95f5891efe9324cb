package vocabulary

import "strings"

// minStemLen is the shortest base form an inflected word is reduced to.
const minStemLen = 3

// suffixRule maps an inflectional ending to the endings its base forms may
// have, as in "studies" -> "study" or "making" -> "make".
type suffixRule struct {
	suffix string
	bases  []string
	// doubled also tries the stem without a doubled final consonant, as in
	// "stopped" -> "stop".
	doubled bool
}

// suffixRules are tried longest match first within each family.
var suffixRules = []suffixRule{
	{suffix: "ies", bases: []string{"y"}},
	{suffix: "es", bases: []string{""}},
	{suffix: "s", bases: []string{""}},
	{suffix: "ied", bases: []string{"y"}},
	{suffix: "ed", bases: []string{"", "e"}, doubled: true},
	{suffix: "ing", bases: []string{"", "e"}, doubled: true},
	{suffix: "ily", bases: []string{"y"}},
	{suffix: "ally", bases: []string{"al", ""}},
	{suffix: "ly", bases: []string{"", "le"}},
	{suffix: "ier", bases: []string{"y"}},
	{suffix: "iest", bases: []string{"y"}},
	{suffix: "er", bases: []string{"", "e"}, doubled: true},
	{suffix: "est", bases: []string{"", "e"}, doubled: true},
	{suffix: "ness", bases: []string{""}},
	{suffix: "ment", bases: []string{""}},
}

// baseForms returns the candidate base forms of a lowercase word by
// stripping one inflectional suffix. Candidates are not checked against
// any dictionary.
func baseForms(word string) []string {
	var forms []string
	for _, rule := range suffixRules {
		stem, ok := strings.CutSuffix(word, rule.suffix)
		if !ok || len(stem) < minStemLen {
			continue
		}
		if rule.suffix == "s" && strings.HasSuffix(stem, "s") {
			continue
		}
		for _, base := range rule.bases {
			forms = append(forms, stem+base)
		}
		if rule.doubled && hasDoubledConsonant(stem) {
			forms = append(forms, stem[:len(stem)-1])
		}
	}
	return forms
}

func hasDoubledConsonant(s string) bool {
	n := len(s)
	if n < 2 || s[n-1] != s[n-2] {
		return false
	}
	return !strings.ContainsRune("aeiou", rune(s[n-1]))
}
