// Package config loads, normalizes, and validates Shelf configuration.
//
// Configuration is TOML, looked up at ~/.config/shelf/config.toml with a
// project-local shelf.toml fallback. Load returns a fully normalized config:
// paths are expanded to absolute form, base URLs are trimmed, and missing
// values fall back to repository defaults. Secrets (Discogs token, Spotify
// client credentials) may come from the environment when absent from the
// file.
//
// Validation is deliberately light: it rejects configurations that cannot
// work at all (non-positive page size, degenerate label geometry, half of a
// Spotify credential pair) and leaves everything else to runtime behavior.
package config
