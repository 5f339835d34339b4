// Package logging provides structured logging for the somno bootstrap
// engine and the somnoset CLI, built on log/slog.
//
// The default text handler is TTY-optimized: colorized levels and keys
// when the output is a terminal that wants color, plain text otherwise.
// JSON output and multi-destination fan-out (terminal plus log file) are
// available for scripting and debugging.
//
// The bootstrap engine itself only depends on *slog.Logger; everything
// here is wiring the owning application or CLI chooses.
package logging
