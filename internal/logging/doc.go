// Package logging constructs slog loggers for webmify commands.
//
// Two output formats are supported: a compact console format for interactive
// use and JSON for log shipping. Loggers write to stdout and, when a log
// directory is configured, to webmify.log inside it. Component loggers are
// derived with WithComponent so console lines carry a subsystem prefix.
package logging
