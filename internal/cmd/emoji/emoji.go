// Package emoji provides symbol constants for CLI output.
// These symbols create a consistent visual language across all command-line commands.
package emoji

// Symbol constants for CLI output provide a consistent visual language across commands.
// These symbols are used for status indicators, alerts, and user feedback in terminal output.
const (
	// Success represents successful completion of an operation.
	// Used for: completed audits, written artifacts, finished uploads.
	Success = "✓"

	// Error represents failures or missing required configuration.
	// Used for: failed fetches, missing credentials, validation errors.
	Error = "✗"

	// Warning represents warnings or non-critical issues.
	// Used for: skipped summaries, degraded uploads, deprecation notices.
	Warning = "!"

	// Optional represents optional or skipped configuration.
	// Used for: disabled uploads, skipped summary generation.
	Optional = "-"

	// Unknown represents unknown or indeterminate states.
	// Used for: unrecognized status values, undefined behavior.
	Unknown = "?"

	// Info represents informational messages.
	// Used for: general information, progress notes, context.
	Info = "i"
)
