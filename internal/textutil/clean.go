package textutil

import (
	"regexp"
	"strings"
)

// editionSuffixPattern matches parenthesized edition tags that disc retailers
// append to titles, e.g. "Heat (Blu-ray)" or "Dune (4K Ultra HD Steelbook)".
var editionSuffixPattern = regexp.MustCompile(`(?i)\s*\((?:blu-?ray|4k|3d|uhd|ultra\s+hd|dvd|steelbook|mediabook|limited[^)]*|special[^)]*)[^)]*\)`)

// CleanEditionSuffix removes edition tags from a disc title.
func CleanEditionSuffix(title string) string {
	cleaned := editionSuffixPattern.ReplaceAllString(title, "")
	return strings.TrimSpace(cleaned)
}

// CollapseWhitespace folds runs of whitespace into single spaces.
func CollapseWhitespace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}
