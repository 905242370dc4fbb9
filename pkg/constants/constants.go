// Package constants provides shared constants used throughout the shadowmap codebase.
// This includes timeouts, limits, file permissions, and other configuration values
// that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultTimeout is the standard timeout for general operations
	DefaultTimeout = 10 * time.Second

	// QueryTimeout is the timeout for a single source query
	QueryTimeout = 60 * time.Second

	// PingTimeout is the timeout for the initial database liveness check
	PingTimeout = 10 * time.Second

	// UploadTimeout is the timeout for a single artifact upload request
	UploadTimeout = 2 * time.Minute

	// SummaryTimeout is the timeout for executive summary generation
	SummaryTimeout = 90 * time.Second

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute

	// UploadRetryDelay is the fixed delay between upload attempts
	UploadRetryDelay = 5 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants define various limits and capacities
const (
	// MaxUploadAttempts is the number of delivery attempts per artifact
	MaxUploadAttempts = 3

	// DefaultPriorityGapLimit caps the priority gap view for report readability
	DefaultPriorityGapLimit = 50

	// ReportSectionLimit caps the orphan and exposure sections of the report
	ReportSectionLimit = 20

	// MaxConnections is the connection cap for the reporting database pool
	MaxConnections = 1

	// WriteBufferSize is the default buffer size for write operations
	WriteBufferSize = 4096
)

// Default values
const (
	// DefaultSourceID is the data source used when none is specified
	DefaultSourceID = "sample"

	// DefaultOutputDir is where run artifacts are written
	DefaultOutputDir = "audit_out"

	// DefaultSummaryModel is the Gemini model used for executive summaries
	DefaultSummaryModel = "gemini-2.0-flash"

	// DefaultRegistryStatus is substituted for blank registry entry statuses
	DefaultRegistryStatus = "Unknown"
)

// Path constants
const (
	// DefaultConfigPath is the default path for configuration files
	DefaultConfigPath = "~/.shadowmap.yaml"
)

// Format constants
const (
	// TimeFormatISO8601 is the ISO 8601 time format
	TimeFormatISO8601 = time.RFC3339

	// TimeFormatRunID is the format used for generated run identifiers
	TimeFormatRunID = "20060102_150405"
)

// MIME type constants for artifact delivery
const (
	// MIMECSV is the content type for CSV artifacts
	MIMECSV = "text/csv"

	// MIMEMarkdown is the content type for Markdown artifacts
	MIMEMarkdown = "text/markdown"

	// MIMEText is the content type for plain text artifacts
	MIMEText = "text/plain"

	// MIMEOctetStream is the fallback content type for unknown artifacts
	MIMEOctetStream = "application/octet-stream"
)
