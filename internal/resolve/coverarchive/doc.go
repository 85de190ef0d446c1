// Package coverarchive probes identifier-derived cover image URLs against a
// generic image host, filtering out placeholder responses by payload size.
package coverarchive
