// Package logging constructs slog loggers for the daemon and CLI.
//
// Two output formats exist: a compact console format for interactive use and
// JSON for log files and collectors. Output can fan out to stdout and a log
// file simultaneously. Context helpers carry request correlation and session
// identifiers so handler code can log with consistent keys.
package logging
