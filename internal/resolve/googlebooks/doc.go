// Package googlebooks is a minimal client for ISBN lookups against the
// Google Books volumes API.
package googlebooks
