package audit

import (
	"fmt"
	"sort"
	"time"

	"github.com/agentstation/utc"

	"github.com/auditgrid/shadowmap/pkg/gaps"
	"github.com/auditgrid/shadowmap/pkg/records"
	"github.com/auditgrid/shadowmap/pkg/spine"
)

// Result is the outcome of one reconciliation pass.
type Result struct {
	// Spine holds every joined row, one side nil where no counterpart exists.
	Spine []spine.Row `json:"spine" yaml:"spine"`

	// Tally counts spine rows per outcome in fixed order.
	Tally []spine.OutcomeCount `json:"tally" yaml:"tally"`

	// StatusBreakdown counts governance tickets per status.
	StatusBreakdown []StatusCount `json:"status_breakdown" yaml:"status_breakdown"`

	// PriorityGaps are actionable tickets missing from the registry.
	PriorityGaps []gaps.PriorityGap `json:"priority_gaps" yaml:"priority_gaps"`

	// Orphans are registry entries no ticket governs.
	Orphans []gaps.Orphan `json:"orphans" yaml:"orphans"`

	// Exposure is technical volume no spine key accounts for.
	Exposure []gaps.FamilyExposure `json:"exposure" yaml:"exposure"`

	// Components is the service catalogue passed through for export.
	Components []records.CatalogueComponent `json:"components" yaml:"components"`

	// Stats summarizes the run numerically.
	Stats Statistics `json:"stats" yaml:"stats"`

	// StartTime when the audit started.
	StartTime utc.Time `json:"start_time" yaml:"start_time"`

	// EndTime when the audit completed.
	EndTime utc.Time `json:"end_time" yaml:"end_time"`

	// Duration of the audit.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// StatusCount pairs a ticket status with how many tickets carry it.
type StatusCount struct {
	Status records.TicketStatus `json:"status" yaml:"status"`
	Count  int                  `json:"count" yaml:"count"`
}

// Statistics summarizes one reconciliation pass.
type Statistics struct {
	// Rows ingested per entity.
	TicketsIn    int `json:"tickets_in" yaml:"tickets_in"`
	EntriesIn    int `json:"entries_in" yaml:"entries_in"`
	TechnicalIn  int `json:"technical_in" yaml:"technical_in"`
	ComponentsIn int `json:"components_in" yaml:"components_in"`

	// Spine shape.
	SpineRows    int `json:"spine_rows" yaml:"spine_rows"`
	Matched      int `json:"matched" yaml:"matched"`
	TicketOnly   int `json:"ticket_only" yaml:"ticket_only"`
	RegistryOnly int `json:"registry_only" yaml:"registry_only"`

	// Footprint shape.
	Families    int   `json:"families" yaml:"families"`
	TotalVolume int64 `json:"total_volume" yaml:"total_volume"`
}

// MatchRate returns the fraction of spine rows that matched, in percent.
func (r *Result) MatchRate() float64 {
	if r.Stats.SpineRows == 0 {
		return 0
	}
	return float64(r.Stats.Matched) / float64(r.Stats.SpineRows) * 100
}

// HasGaps returns true if any of the three gap views is non-empty.
func (r *Result) HasGaps() bool {
	return len(r.PriorityGaps) > 0 || len(r.Orphans) > 0 || len(r.Exposure) > 0
}

// Summary returns a human-readable one-line summary of the result.
func (r *Result) Summary() string {
	return fmt.Sprintf(
		"Reconciled %d tickets against %d registry entries: %d matched, %d ticket-only, %d registry-only (%.1f%% matched)",
		r.Stats.TicketsIn, r.Stats.EntriesIn,
		r.Stats.Matched, r.Stats.TicketOnly, r.Stats.RegistryOnly,
		r.MatchRate())
}

// ResultBuilder helps construct Result objects.
type ResultBuilder struct {
	result *Result
}

// NewResultBuilder creates a ResultBuilder and stamps the start time.
func NewResultBuilder() *ResultBuilder {
	return &ResultBuilder{
		result: &Result{
			StartTime: utc.Now(),
		},
	}
}

// WithSpine sets the joined spine rows.
func (b *ResultBuilder) WithSpine(rows []spine.Row) *ResultBuilder {
	b.result.Spine = rows
	return b
}

// WithTally sets the outcome counts.
func (b *ResultBuilder) WithTally(tally []spine.OutcomeCount) *ResultBuilder {
	b.result.Tally = tally
	return b
}

// WithStatusBreakdown sets the ticket-status counts.
func (b *ResultBuilder) WithStatusBreakdown(counts []StatusCount) *ResultBuilder {
	b.result.StatusBreakdown = counts
	return b
}

// WithPriorityGaps sets the priority gap view.
func (b *ResultBuilder) WithPriorityGaps(g []gaps.PriorityGap) *ResultBuilder {
	b.result.PriorityGaps = g
	return b
}

// WithOrphans sets the orphan view.
func (b *ResultBuilder) WithOrphans(o []gaps.Orphan) *ResultBuilder {
	b.result.Orphans = o
	return b
}

// WithExposure sets the unmapped exposure view.
func (b *ResultBuilder) WithExposure(e []gaps.FamilyExposure) *ResultBuilder {
	b.result.Exposure = e
	return b
}

// WithComponents sets the catalogue pass-through.
func (b *ResultBuilder) WithComponents(c []records.CatalogueComponent) *ResultBuilder {
	b.result.Components = c
	return b
}

// WithStatistics sets the run statistics.
func (b *ResultBuilder) WithStatistics(stats Statistics) *ResultBuilder {
	b.result.Stats = stats
	return b
}

// Build finalizes the Result, stamping end time and duration.
func (b *ResultBuilder) Build() *Result {
	b.result.EndTime = utc.Now()
	b.result.Duration = b.result.EndTime.Sub(b.result.StartTime)
	return b.result
}

// sortStatusCounts orders by count descending, status ascending on ties.
func sortStatusCounts(counts []StatusCount) {
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Status < counts[j].Status
	})
}
