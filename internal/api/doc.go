// Package api defines the transport types of the HTTP API and their
// conversions from domain types. Barcode and text lookup responses are the
// resolver's own wire types and pass through unconverted.
package api
