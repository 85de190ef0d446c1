// Package main hosts the shelf CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into HTTP
// calls against the shelfd daemon: item listing and lending, barcode and
// text metadata lookups, location management, label sheet layout, and
// configuration scaffolding. It centralizes configuration resolution and
// API client construction so subcommands can focus on user experience.
package main
