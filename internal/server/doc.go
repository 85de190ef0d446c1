// Package server exposes the catalog over HTTP. Routes live on a single
// ServeMux behind optional bearer-token auth; the list view additionally
// carries a session cookie so filter state survives navigation.
package server
