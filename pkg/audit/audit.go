// Package audit orchestrates a full reconciliation pass over a snapshot:
// validate, standardize, build the spine, attach footprint volume, and
// project the gap views into a single Result.
//
// The package is pure. It performs no I/O, keeps no state between runs,
// and returns the same Result for the same snapshot. Extraction, report
// writing, and uploads live with the callers.
package audit

import (
	"context"

	"github.com/auditgrid/shadowmap/pkg/errors"
	"github.com/auditgrid/shadowmap/pkg/footprint"
	"github.com/auditgrid/shadowmap/pkg/gaps"
	"github.com/auditgrid/shadowmap/pkg/normalize"
	"github.com/auditgrid/shadowmap/pkg/records"
	"github.com/auditgrid/shadowmap/pkg/spine"
)

// Auditor reconciles governance snapshots into audit results.
type Auditor interface {
	// Audit runs the reconciliation pipeline over a snapshot.
	Audit(ctx context.Context, snap *records.Snapshot) (*Result, error)
}

// auditor is the default implementation of Auditor.
type auditor struct {
	policy     normalize.Policy
	actionable []records.TicketStatus
	gapLimit   int
}

// Option configures an Auditor.
type Option func(*auditor) error

// WithPolicy sets the normalization policy used for join keys and
// family names.
func WithPolicy(p normalize.Policy) Option {
	return func(a *auditor) error {
		a.policy = p
		return nil
	}
}

// WithActionableStatuses sets the ticket statuses that qualify a
// TICKET_ONLY row as a priority gap.
func WithActionableStatuses(statuses ...records.TicketStatus) Option {
	return func(a *auditor) error {
		a.actionable = statuses
		return nil
	}
}

// WithPriorityGapLimit caps the priority gap view.
func WithPriorityGapLimit(limit int) Option {
	return func(a *auditor) error {
		if limit < 0 {
			return errors.NewValidationError("priority_gap_limit", limit, "must not be negative")
		}
		a.gapLimit = limit
		return nil
	}
}

// New creates an Auditor with options applied over the defaults.
func New(opts ...Option) (Auditor, error) {
	a := &auditor{
		policy:     normalize.DefaultPolicy(),
		actionable: gaps.DefaultActionable(),
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Audit runs the reconciliation pipeline over a snapshot.
func (a *auditor) Audit(ctx context.Context, snap *records.Snapshot) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, errors.NewValidationError("snapshot", nil, "snapshot is required")
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}

	builder := NewResultBuilder()

	std := snap.Standardize()
	rows := spine.Build(std.Tickets, std.Entries)
	agg := footprint.Compute(std.Technical, a.policy)
	footprint.Attach(rows, agg)

	tally := spine.Tally(rows)
	stats := Statistics{
		TicketsIn:    len(std.Tickets),
		EntriesIn:    len(std.Entries),
		TechnicalIn:  len(std.Technical),
		ComponentsIn: len(std.Components),
		SpineRows:    len(rows),
		Families:     len(agg),
		TotalVolume:  agg.Total(),
	}
	for _, oc := range tally {
		switch oc.Outcome {
		case spine.OutcomeMatched:
			stats.Matched = oc.Count
		case spine.OutcomeTicketOnly:
			stats.TicketOnly = oc.Count
		case spine.OutcomeRegistryOnly:
			stats.RegistryOnly = oc.Count
		}
	}

	return builder.
		WithSpine(rows).
		WithTally(tally).
		WithStatusBreakdown(statusBreakdown(std.Tickets)).
		WithPriorityGaps(gaps.Priority(rows, a.actionable, a.gapLimit)).
		WithOrphans(gaps.Orphans(rows)).
		WithExposure(gaps.UnmappedExposure(agg, rows)).
		WithComponents(std.Components).
		WithStatistics(stats).
		Build(), nil
}

// statusBreakdown counts tickets per status, sorted by count descending
// then status ascending.
func statusBreakdown(tickets []records.GovernanceTicket) []StatusCount {
	counts := make(map[records.TicketStatus]int)
	for _, t := range tickets {
		counts[t.Status]++
	}

	out := make([]StatusCount, 0, len(counts))
	for status, n := range counts {
		out = append(out, StatusCount{Status: status, Count: n})
	}
	sortStatusCounts(out)
	return out
}
