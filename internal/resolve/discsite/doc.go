// Package discsite scrapes a disc release site for video metadata. The site
// offers no API; detail pages are located via search (or its direct
// redirect) and mined from their social-preview meta tags.
package discsite
