// Package resolve aggregates item metadata from external providers.
//
// Barcode resolution walks a fixed provider chain: primary book lookup,
// secondary book lookup, a deterministic cover-image probe, the token-gated
// marketplace search, and a scrape-based disc site. Each provider
// contributes fields under first-writer-wins rules for images and
// adopt-only-before-success rules for text, and each degrades independently.
// The resolver never returns an error to its caller; the worst outcome is an
// empty record.
package resolve
