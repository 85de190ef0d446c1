// Package textutil provides text normalization and similarity helpers used
// by the metadata resolver and the list-view search.
//
// The primary use cases are:
//   - Folding text to a canonical lowercase form for case-insensitive matching
//   - Computing a similarity ratio between two strings for fuzzy catalog matches
//   - Stripping edition suffixes such as "(Blu-ray)" from scraped disc titles
//
// The similarity ratio follows the classic longest-matching-block approach:
// it is 2*M/T where M is the total length of matching blocks and T the
// combined length of both inputs, yielding 1.0 for identical strings.
package textutil
