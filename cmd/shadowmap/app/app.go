// Package app provides the application context and dependency management
// for the shadowmap CLI. It follows idiomatic Go patterns for CLI applications
// by centralizing configuration, dependency injection, and lifecycle management.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/auditgrid/shadowmap"
	"github.com/auditgrid/shadowmap/internal/cmd/application"
	"github.com/auditgrid/shadowmap/internal/sources"
	"github.com/auditgrid/shadowmap/internal/summary"
	"github.com/auditgrid/shadowmap/internal/uploader"
	"github.com/auditgrid/shadowmap/pkg/audit"
	"github.com/auditgrid/shadowmap/pkg/constants"
	"github.com/auditgrid/shadowmap/pkg/errors"
	"github.com/auditgrid/shadowmap/pkg/normalize"
)

// App represents the shadowmap application with all its dependencies.
// It provides a centralized place for configuration, logging, and
// the shadowmap instance, following the dependency injection pattern.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Active normalization policy, resolved once at startup
	policy normalize.Policy

	// Shadowmap instance (lazy-initialized, singleton)
	mu        sync.RWMutex
	shadowmap shadowmap.Shadowmap
}

// Ensure App satisfies the command-facing interface at compile time.
var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
// The app is initialized with default configuration that can be
// customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	// Load configuration
	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	// Initialize logger
	logger := NewLogger(config)
	app.logger = &logger

	// Apply any custom options
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	// Resolve the normalization policy once; a bad policy file fails startup
	policy, err := loadPolicy(app.config)
	if err != nil {
		return nil, err
	}
	app.policy = policy

	return app, nil
}

func loadPolicy(config *Config) (normalize.Policy, error) {
	if config.PolicyFile == "" {
		return normalize.DefaultPolicy(), nil
	}
	return normalize.LoadPolicy(config.PolicyFile)
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Policy returns the active family normalization policy.
func (a *App) Policy() normalize.Policy {
	return a.policy
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// OutputDir returns the configured directory for run artifacts.
func (a *App) OutputDir() string {
	return a.config.OutDir
}

// RunID returns the configured run identifier, or the empty string when
// each run generates its own.
func (a *App) RunID() string {
	return a.config.RunID
}

// Shadowmap returns the shadowmap instance. Without options it returns
// the default instance, creating it lazily on first use; this is
// thread-safe and ensures only one default instance is created. With
// options it builds a fresh instance with the options applied on top of
// the configured defaults, and the caller owns its cleanup.
func (a *App) Shadowmap(opts ...shadowmap.Option) (shadowmap.Shadowmap, error) {
	if len(opts) > 0 {
		combined := append(a.buildShadowmapOptions(), opts...)
		sm, err := shadowmap.New(combined...)
		if err != nil {
			return nil, errors.WrapResource("create", "shadowmap", "with custom options", err)
		}
		return sm, nil
	}

	a.mu.RLock()
	if a.shadowmap != nil {
		sm := a.shadowmap
		a.mu.RUnlock()
		return sm, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.shadowmap != nil {
		return a.shadowmap, nil
	}

	sm, err := shadowmap.New(a.buildShadowmapOptions()...)
	if err != nil {
		return nil, errors.WrapResource("create", "shadowmap", "", err)
	}

	a.shadowmap = sm
	return sm, nil
}

// Audit runs the full reconciliation on the default shadowmap instance.
// This is a convenience method that handles instance initialization and
// the audit in one call.
func (a *App) Audit(ctx context.Context) (*audit.Result, error) {
	sm, err := a.Shadowmap()
	if err != nil {
		return nil, err
	}

	result, err := sm.Audit(ctx)
	if err != nil {
		return nil, errors.WrapResource("run", "audit", "", err)
	}

	return result, nil
}

// Uploader returns the artifact uploader built from the delivery
// configuration, wrapped with the standard retry policy.
func (a *App) Uploader() (uploader.Uploader, error) {
	client, err := uploader.NewClient(a.config.UploadURL, a.config.UploadFolder, a.config.UploadToken)
	if err != nil {
		return nil, err
	}
	return uploader.WithRetry(client, constants.MaxUploadAttempts, constants.UploadRetryDelay), nil
}

// Summarizer returns the executive summary generator built from the
// configuration.
func (a *App) Summarizer() (summary.Generator, error) {
	return summary.NewGemini(a.config.GeminiAPIKey, a.config.SummaryModel)
}

// SummaryEnabled reports whether the configuration asks for an executive
// summary on every run.
func (a *App) SummaryEnabled() bool {
	return a.config.Summary
}

// Shutdown performs graceful shutdown of the application.
// It releases the data source held by the default instance, if any.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.RLock()
	sm := a.shadowmap
	a.mu.RUnlock()

	if sm == nil {
		return nil
	}

	if err := sm.Cleanup(); err != nil {
		return errors.WrapResource("cleanup", "source", sm.Source().String(), err)
	}
	return nil
}

// buildShadowmapOptions constructs shadowmap options from the app configuration.
func (a *App) buildShadowmapOptions() []shadowmap.Option {
	opts := []shadowmap.Option{shadowmap.WithPolicy(a.policy)}

	// Source selection: an explicit source always wins; a configured
	// database URL selects postgres when no source is named.
	switch {
	case a.config.Source != "":
		opts = append(opts, shadowmap.WithSource(sources.ID(a.config.Source)))
		if sources.ID(a.config.Source) == sources.PostgresID && a.config.DatabaseURL != "" {
			opts = append(opts, shadowmap.WithDatabaseURL(a.config.DatabaseURL))
		}
	case a.config.DatabaseURL != "":
		opts = append(opts, shadowmap.WithDatabaseURL(a.config.DatabaseURL))
	}

	if statuses := a.config.actionableStatuses(); len(statuses) > 0 {
		opts = append(opts, shadowmap.WithActionableStatuses(statuses...))
	}
	if a.config.GapLimit > 0 {
		opts = append(opts, shadowmap.WithPriorityGapLimit(a.config.GapLimit))
	}

	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithShadowmap sets a custom shadowmap instance (useful for testing).
func WithShadowmap(sm shadowmap.Shadowmap) Option {
	return func(a *App) error {
		a.shadowmap = sm
		return nil
	}
}
