// Package daemon couples the catalog store and the HTTP API server into a
// single lifecycle with flock-based locking to prevent multiple concurrent
// instances from sharing one database.
package daemon
