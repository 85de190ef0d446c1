// Package discogs is a minimal client for barcode search and release detail
// lookups against the Discogs database API.
package discogs
