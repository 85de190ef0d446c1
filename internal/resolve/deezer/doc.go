// Package deezer is a minimal client for album searches against the public
// Deezer API.
package deezer
