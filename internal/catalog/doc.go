// Package catalog persists the media inventory in SQLite.
//
// # Key Types
//
// Item: one inventoried physical object with placement, lending state, and
// an ordered track list.
//
// SearchQuery: a filtered, ordered, paginated list-view query. SearchItems
// applies the sort cascade: the requested direction moves only the primary
// column while secondary tie-breakers keep fixed directions.
//
// Location: node in the self-referential storage tree. LocationPath walks
// the ancestor chain with a bounded depth so a cycle in parent links yields
// a partial path and ErrLocationCycle instead of an endless loop.
//
// # Design Notes
//
// The store owns the lending invariant: lent_at is stamped in Lend and
// cleared in Return, and never written by UpdateItem. Schema changes ship as
// versioned SQL migrations embedded in the binary and applied inside one
// transaction on Open.
package catalog
