// Package spotify searches the Spotify catalog via the client-credentials
// flow. Bearer tokens are cached and refreshed shortly before expiry, and
// album matching runs a strict field-qualified pass before falling back to a
// loose keyword pass.
package spotify
