// Package openlibrary is a minimal client for ISBN lookups against the Open
// Library books API. It is the secondary book source, queried mainly for its
// higher resolution cover images.
package openlibrary
