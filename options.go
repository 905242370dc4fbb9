package shadowmap

import (
	"github.com/auditgrid/shadowmap/internal/sources"
	"github.com/auditgrid/shadowmap/pkg/audit"
	"github.com/auditgrid/shadowmap/pkg/constants"
	"github.com/auditgrid/shadowmap/pkg/errors"
	"github.com/auditgrid/shadowmap/pkg/normalize"
	"github.com/auditgrid/shadowmap/pkg/records"
)

// Option is a function that configures a Shadowmap instance.
type Option func(*options) error

// options holds the configuration collected from functional options.
type options struct {
	source      sources.ID
	databaseURL string
	policy      normalize.Policy
	actionable  []records.TicketStatus
	gapLimit    int
}

// defaults returns the default options: the embedded sample source and
// the built-in family policy.
func defaults() *options {
	return &options{
		source: sources.ID(constants.DefaultSourceID),
		policy: normalize.DefaultPolicy(),
	}
}

// auditOptions translates the collected options into reconciliation
// core options.
func (o *options) auditOptions() []audit.Option {
	opts := []audit.Option{audit.WithPolicy(o.policy)}
	if len(o.actionable) > 0 {
		opts = append(opts, audit.WithActionableStatuses(o.actionable...))
	}
	if o.gapLimit > 0 {
		opts = append(opts, audit.WithPriorityGapLimit(o.gapLimit))
	}
	return opts
}

// WithSource selects the data source by ID. Selection is always
// explicit; an unknown ID is rejected here rather than at fetch time.
func WithSource(id sources.ID) Option {
	return func(o *options) error {
		if !id.IsValid() {
			return &errors.ValidationError{
				Field:   "source",
				Value:   id,
				Message: "unknown source",
			}
		}
		o.source = id
		return nil
	}
}

// WithDatabaseURL configures the postgres source with the given DSN.
func WithDatabaseURL(dsn string) Option {
	return func(o *options) error {
		if dsn == "" {
			return &errors.ValidationError{
				Field:   "database_url",
				Value:   dsn,
				Message: "must not be empty",
			}
		}
		o.source = sources.PostgresID
		o.databaseURL = dsn
		return nil
	}
}

// WithSampleData configures the embedded sample snapshot as the source.
func WithSampleData() Option {
	return func(o *options) error {
		o.source = sources.SampleID
		return nil
	}
}

// WithPolicy sets the family normalization policy.
func WithPolicy(p normalize.Policy) Option {
	return func(o *options) error {
		o.policy = p
		return nil
	}
}

// WithPolicyFile loads the family normalization policy from a YAML file.
// Changing the strip lists is an auditable configuration change, so the
// file is parsed eagerly and a bad file fails instance creation.
func WithPolicyFile(path string) Option {
	return func(o *options) error {
		p, err := normalize.LoadPolicy(path)
		if err != nil {
			return err
		}
		o.policy = p
		return nil
	}
}

// WithActionableStatuses overrides the ticket statuses that qualify a
// TICKET_ONLY row as a priority gap.
func WithActionableStatuses(statuses ...records.TicketStatus) Option {
	return func(o *options) error {
		o.actionable = statuses
		return nil
	}
}

// WithPriorityGapLimit caps the priority gap view.
func WithPriorityGapLimit(limit int) Option {
	return func(o *options) error {
		if limit < 0 {
			return &errors.ValidationError{
				Field:   "priority_gap_limit",
				Value:   limit,
				Message: "must not be negative",
			}
		}
		o.gapLimit = limit
		return nil
	}
}
