package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/auditgrid/shadowmap"
	"github.com/auditgrid/shadowmap/internal/summary"
	"github.com/auditgrid/shadowmap/internal/uploader"
	"github.com/auditgrid/shadowmap/pkg/audit"
	"github.com/auditgrid/shadowmap/pkg/errors"
	"github.com/auditgrid/shadowmap/pkg/normalize"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
//
// Example Usage:
//
//	mock := &application.Mock{
//	    AuditFunc: func(ctx context.Context) (*audit.Result, error) {
//	        return testResult, nil
//	    },
//	    LoggerFunc: func() *zerolog.Logger {
//	        logger := zerolog.Nop()
//	        return &logger
//	    },
//	}
//	cmd := list.NewCommand(mock)
//	// ... test command
type Mock struct {
	AuditFunc          func(ctx context.Context) (*audit.Result, error)
	ShadowmapFunc      func(opts ...shadowmap.Option) (shadowmap.Shadowmap, error)
	PolicyFunc         func() normalize.Policy
	LoggerFunc         func() *zerolog.Logger
	OutputFormatFunc   func() string
	OutputDirFunc      func() string
	RunIDFunc          func() string
	UploaderFunc       func() (uploader.Uploader, error)
	SummarizerFunc     func() (summary.Generator, error)
	SummaryEnabledFunc func() bool
	VersionFunc        func() string
	CommitFunc         func() string
	DateFunc           func() string
	BuiltByFunc        func() string
}

// Audit returns a result using the mock function or nil.
func (m *Mock) Audit(ctx context.Context) (*audit.Result, error) {
	if m.AuditFunc != nil {
		return m.AuditFunc(ctx)
	}
	return nil, nil
}

// Shadowmap returns a shadowmap using the mock function or nil.
func (m *Mock) Shadowmap(opts ...shadowmap.Option) (shadowmap.Shadowmap, error) {
	if m.ShadowmapFunc != nil {
		return m.ShadowmapFunc(opts...)
	}
	return nil, nil
}

// Policy returns a policy using the mock function or the default policy.
func (m *Mock) Policy() normalize.Policy {
	if m.PolicyFunc != nil {
		return m.PolicyFunc()
	}
	return normalize.DefaultPolicy()
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// OutputDir returns the artifact directory using the mock function or "".
func (m *Mock) OutputDir() string {
	if m.OutputDirFunc != nil {
		return m.OutputDirFunc()
	}
	return ""
}

// RunID returns the run identifier using the mock function or "".
func (m *Mock) RunID() string {
	if m.RunIDFunc != nil {
		return m.RunIDFunc()
	}
	return ""
}

// Uploader returns an uploader using the mock function. The default
// behaves like an app with no delivery destination configured.
func (m *Mock) Uploader() (uploader.Uploader, error) {
	if m.UploaderFunc != nil {
		return m.UploaderFunc()
	}
	return nil, errors.NewConfigError("uploader", "upload URL is required", nil)
}

// Summarizer returns a generator using the mock function. The default
// behaves like an app with no API key configured.
func (m *Mock) Summarizer() (summary.Generator, error) {
	if m.SummarizerFunc != nil {
		return m.SummarizerFunc()
	}
	return nil, errors.NewConfigError("summary", "API key is required", nil)
}

// SummaryEnabled reports the mock function's value or false.
func (m *Mock) SummaryEnabled() bool {
	if m.SummaryEnabledFunc != nil {
		return m.SummaryEnabledFunc()
	}
	return false
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Application at compile time.
var _ Application = (*Mock)(nil)
