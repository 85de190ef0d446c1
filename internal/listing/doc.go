// Package listing builds list-view queries from request parameters.
//
// The builder owns three pieces of state with different lifetimes: the
// request parameters themselves, the per-session filter state remembered
// between navigations, and the per-user sort preference persisted in the
// catalog store. A request with filter parameters replaces the session state
// wholesale; a bare request restores it via redirect; a reset clears it.
// Malformed values never error, they fall back to defaults.
package listing
