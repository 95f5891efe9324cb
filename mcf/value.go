// Package mcf models schema nodes and reads them from MCF files.
//
// An MCF file is a sequence of blank-line separated blocks of "property: value"
// lines, each block starting with a "Node:" line naming the node.
package mcf

import "strings"

// sequenceSeparator joins the items of a Sequence when it is flattened.
const sequenceSeparator = ", "

// Value is either a single string (Scalar) or an ordered list of strings
// (Sequence).
type Value struct {
	items    []string
	sequence bool
}

// Scalar returns a single-string value.
func Scalar(s string) Value {
	return Value{items: []string{s}}
}

// Sequence returns a multi-valued value.
func Sequence(items ...string) Value {
	return Value{items: append([]string(nil), items...), sequence: true}
}

// IsSequence reports whether v holds a list of strings.
func (v Value) IsSequence() bool {
	return v.sequence
}

// Items returns the strings held by v. A Scalar has exactly one item.
func (v Value) Items() []string {
	return append([]string(nil), v.items...)
}

// String flattens v. Sequence items are joined with ", ".
func (v Value) String() string {
	if !v.sequence {
		if len(v.items) == 0 {
			return ""
		}
		return v.items[0]
	}
	return strings.Join(v.items, sequenceSeparator)
}

// Append returns v with s added, turning a Scalar into a Sequence.
func (v Value) Append(s string) Value {
	items := append(v.Items(), s)
	return Value{items: items, sequence: true}
}
