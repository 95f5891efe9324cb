// Package paths resolves file globs used for input, lexicon and allow-list
// files.
package paths

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Match expands a comma-separated list of glob patterns to regular files.
// Supports both single-level wildcards (*) and recursive wildcards (**).
//
// Examples:
//   - "schema/*.mcf" → ["schema/a.mcf", "schema/b.mcf"]
//   - "a.mcf,b/**/*.mcf" → ["a.mcf", "b/x/c.mcf", ...]
//
// Matches of each pattern are sorted; the first occurrence of a file wins
// when patterns overlap. A pattern without matches contributes nothing.
func Match(patterns string) ([]string, error) {
	var resolved []string
	seen := make(map[string]bool)

	for _, pattern := range Split(patterns) {
		files, err := matchPattern(pattern)
		if err != nil {
			return nil, fmt.Errorf("resolve pattern %q: %w", pattern, err)
		}
		for _, f := range files {
			if !seen[f] {
				seen[f] = true
				resolved = append(resolved, f)
			}
		}
	}

	return resolved, nil
}

// Split splits a comma-separated pattern list, dropping empty entries.
func Split(patterns string) []string {
	var out []string
	for _, p := range strings.Split(patterns, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ContainsGlob reports whether pattern has glob metacharacters.
func ContainsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// matchPattern expands a single glob pattern to regular files.
func matchPattern(pattern string) ([]string, error) {
	if !ContainsGlob(pattern) {
		info, err := os.Stat(pattern)
		if err != nil || !info.Mode().IsRegular() {
			return nil, nil
		}
		return []string{pattern}, nil
	}

	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob error: %w", err)
	}

	files := make([]string, 0, len(matches))
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, match)
	}
	sort.Strings(files)
	return files, nil
}
