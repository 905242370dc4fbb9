// Package application provides the application interface for shadowmap commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Design Principles:
//   - Accept interfaces, return structs (Go proverb)
//   - Define interfaces where they're used, not where they're implemented
//   - Keep interfaces small and focused
//
// Usage in Commands:
//
//	import (
//	    "github.com/auditgrid/shadowmap/internal/cmd/application"
//	)
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            result, err := app.Audit(cmd.Context())
//	            if err != nil {
//	                return err
//	            }
//	            // ... use result
//	            return nil
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    AuditFunc: func(ctx context.Context) (*audit.Result, error) {
//	        return testResult, nil
//	    },
//	}
//	cmd := NewCommand(mock)
//	// ... test command behavior
package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/auditgrid/shadowmap"
	"github.com/auditgrid/shadowmap/internal/summary"
	"github.com/auditgrid/shadowmap/internal/uploader"
	"github.com/auditgrid/shadowmap/pkg/audit"
	"github.com/auditgrid/shadowmap/pkg/normalize"
)

// Application provides the application interface that commands need.
// The App struct from cmd/shadowmap/app implements this interface,
// providing dependency injection for commands while maintaining
// testability.
//
// Commands should accept this interface rather than the concrete App
// type, allowing for easier testing with mock implementations.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Audit runs the full reconciliation on the default shadowmap
	// instance. This is a convenience method for commands that just
	// need the result.
	Audit(ctx context.Context) (*audit.Result, error)

	// Shadowmap returns the shadowmap instance with optional configuration.
	// When called without options, returns the default cached instance
	// (lazy-initialized, thread-safe). When called with options, creates a
	// new instance with custom configuration (no caching).
	//
	// Examples:
	//   sm, err := app.Shadowmap()            // default instance (cached)
	//   sm, err := app.Shadowmap(opt1, opt2)  // custom instance (new)
	Shadowmap(opts ...shadowmap.Option) (shadowmap.Shadowmap, error)

	// Policy returns the active family normalization policy.
	Policy() normalize.Policy

	// Logger returns the configured logger instance.
	// Commands should use this for all logging operations.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml, wide).
	// Commands that support different output formats should use this.
	OutputFormat() string

	// OutputDir returns the configured directory for run artifacts.
	OutputDir() string

	// RunID returns the configured run identifier, or the empty string
	// when each run should generate its own.
	RunID() string

	// Uploader returns the artifact uploader built from the delivery
	// configuration. Returns an error when no destination is configured.
	Uploader() (uploader.Uploader, error)

	// Summarizer returns the executive summary generator built from the
	// configuration. Returns an error when no API key is configured.
	Summarizer() (summary.Generator, error)

	// SummaryEnabled reports whether the configuration asks for an
	// executive summary on every run. The run command can also enable
	// it per invocation.
	SummaryEnabled() bool

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
