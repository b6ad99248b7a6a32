// Package logging builds the zerolog loggers used across listkit.
//
// Loggers are created from a Config (level, format, output, file), carried
// through context.Context, and tagged with a per-command trace ID so log
// lines from one invocation can be correlated.
package logging
