// Package gaps projects the reconciled spine into the three views an
// auditor acts on: priority gaps (approved launches missing from the
// registry), orphans (registry entries no ticket governs), and unmapped
// technical exposure (live volume no spine key accounts for).
//
// All three are pure projections over already-built rows. They never
// re-join or re-classify.
package gaps

import (
	"slices"
	"sort"

	"github.com/auditgrid/shadowmap/pkg/constants"
	"github.com/auditgrid/shadowmap/pkg/footprint"
	"github.com/auditgrid/shadowmap/pkg/records"
	"github.com/auditgrid/shadowmap/pkg/spine"
)

// PriorityGap is a governance ticket in an actionable status with no
// registry counterpart. These are the launches most likely live and
// unregistered.
type PriorityGap struct {
	TicketID string               `json:"ticket_id" yaml:"ticket_id"`
	Title    string               `json:"title" yaml:"title"`
	Status   records.TicketStatus `json:"status" yaml:"status"`
}

// Orphan is a registry entry no governance ticket references.
type Orphan struct {
	Name   string `json:"name"   yaml:"name"`
	Status string `json:"status" yaml:"status"`
}

// FamilyExposure is a technical product family carrying volume that no
// spine key accounts for.
type FamilyExposure struct {
	Family string `json:"family" yaml:"family"`
	Volume int64  `json:"volume" yaml:"volume"`
}

// DefaultActionable returns the ticket statuses treated as actionable
// when the caller supplies none: launches approved, live, or in flight.
func DefaultActionable() []records.TicketStatus {
	return []records.TicketStatus{
		records.StatusApprovedForLaunch,
		records.StatusMonitoring,
		records.StatusDevelopment,
	}
}

// Priority extracts TICKET_ONLY rows whose status is in the actionable
// set, in discovery order, capped at limit. A non-positive limit falls
// back to the default cap, an empty actionable set falls back to
// DefaultActionable.
func Priority(rows []spine.Row, actionable []records.TicketStatus, limit int) []PriorityGap {
	if limit <= 0 {
		limit = constants.DefaultPriorityGapLimit
	}
	if len(actionable) == 0 {
		actionable = DefaultActionable()
	}

	var out []PriorityGap
	for _, row := range rows {
		if row.Outcome != spine.OutcomeTicketOnly || row.Ticket == nil {
			continue
		}
		if !slices.Contains(actionable, row.Ticket.Status) {
			continue
		}
		out = append(out, PriorityGap{
			TicketID: row.Ticket.ID,
			Title:    row.Ticket.Title,
			Status:   row.Ticket.Status,
		})
		if len(out) == limit {
			break
		}
	}
	return out
}

// Orphans extracts REGISTRY_ONLY rows in discovery order, uncapped.
func Orphans(rows []spine.Row) []Orphan {
	var out []Orphan
	for _, row := range rows {
		if row.Outcome != spine.OutcomeRegistryOnly || row.Entry == nil {
			continue
		}
		out = append(out, Orphan{
			Name:   row.Entry.Name,
			Status: row.Entry.Status,
		})
	}
	return out
}

// UnmappedExposure returns the families in the aggregate whose name
// matches no spine key, sorted by volume descending then family name
// ascending so equal volumes come out in a stable order.
func UnmappedExposure(agg footprint.Aggregate, rows []spine.Row) []FamilyExposure {
	keys := make(map[string]bool, len(rows))
	for _, row := range rows {
		if row.Key != "" {
			keys[row.Key] = true
		}
	}

	var out []FamilyExposure
	for family, volume := range agg {
		if keys[family] {
			continue
		}
		out = append(out, FamilyExposure{Family: family, Volume: volume})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Volume != out[j].Volume {
			return out[i].Volume > out[j].Volume
		}
		return out[i].Family < out[j].Family
	})
	return out
}
