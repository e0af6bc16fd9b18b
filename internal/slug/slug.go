// Package slug turns human-readable task names into the identifier used for
// task directories and document file names.
package slug

import "strings"

var separators = strings.NewReplacer(" ", "-", "_", "-")

// Make lowercases name and replaces spaces and underscores with hyphens.
// Nothing else is normalized: punctuation, unicode and repeated separators
// pass through untouched.
func Make(name string) string {
	return separators.Replace(strings.ToLower(name))
}
