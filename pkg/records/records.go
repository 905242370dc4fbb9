// Package records defines the entity types reconciled by the shadowmap system:
// governance tickets, registry entries, technical records, and catalogue
// components, plus the per-run Snapshot that carries one immutable set of each.
//
// All entities are read-only snapshots materialized once per run from an
// external source. Blank string fields mean absent-at-value; a column missing
// from a row's shape entirely is a malformed input and surfaces from the
// source layer, not from these types.
package records

import (
	"fmt"

	"github.com/auditgrid/shadowmap/pkg/constants"
	"github.com/auditgrid/shadowmap/pkg/errors"
)

// TicketStatus is the lifecycle status of a governance ticket. The set is
// open: sources may carry statuses beyond the named constants, and the gap
// views compare against a configured actionable subset.
type TicketStatus string

// Ticket statuses referenced by the reporting views.
const (
	// StatusApprovedForLaunch marks a ticket cleared for go-live.
	StatusApprovedForLaunch TicketStatus = "Approved for Launch"

	// StatusMonitoring marks a launched ticket under post-launch review.
	StatusMonitoring TicketStatus = "Monitoring"

	// StatusDevelopment marks a ticket still being built.
	StatusDevelopment TicketStatus = "Development"
)

// GovernanceTicket is one row of the governance tracker, the source of truth
// for "is this launch governed".
type GovernanceTicket struct {
	ID           string       `json:"id" yaml:"id"`
	Title        string       `json:"title" yaml:"title"`
	Status       TicketStatus `json:"status" yaml:"status"`
	RegistryLink string       `json:"registry_link,omitempty" yaml:"registry_link,omitempty"`
}

// RegistryEntry is one row of the product registry, the source of truth for
// "is this product legally registered". Governed records the registry's
// boolean-like flag as its source string ("Yes"/"No").
type RegistryEntry struct {
	Name     string `json:"name" yaml:"name"`
	Governed string `json:"governed" yaml:"governed"`
	Status   string `json:"status" yaml:"status"`
}

// TechnicalRecord is one aggregated row of operational footprint. Many
// records collapse onto one technical family during volume aggregation.
type TechnicalRecord struct {
	Identifier string `json:"identifier" yaml:"identifier"`
	Type       string `json:"type" yaml:"type"`
	Volume     int64  `json:"volume" yaml:"volume"`
}

// CatalogueComponent is one row of the service catalogue. Components are
// exported unmodified alongside the reconciliation and never joined into
// the spine.
type CatalogueComponent struct {
	Name        string  `json:"name" yaml:"name"`
	ImpactScore float64 `json:"impact_score" yaml:"impact_score"`
}

// Snapshot is the complete input set for one reconciliation run.
type Snapshot struct {
	Tickets    []GovernanceTicket   `json:"tickets" yaml:"tickets"`
	Entries    []RegistryEntry      `json:"entries" yaml:"entries"`
	Technical  []TechnicalRecord    `json:"technical" yaml:"technical"`
	Components []CatalogueComponent `json:"components" yaml:"components"`
}

// Validate checks the snapshot's rows and fails fast on the first problem.
// Tickets must carry an ID and technical volumes must be non-negative.
func (s *Snapshot) Validate() error {
	for i, t := range s.Tickets {
		if t.ID == "" {
			return errors.NewValidationError(
				fmt.Sprintf("tickets[%d].id", i), t.ID, "ticket id is required")
		}
	}
	for i, r := range s.Technical {
		if r.Volume < 0 {
			return errors.NewValidationError(
				fmt.Sprintf("technical[%d].volume", i), r.Volume, "volume cannot be negative")
		}
	}
	return nil
}

// Standardize returns a copy of the snapshot with registry statuses
// defaulted. Blank statuses (SQL NULL scans to blank) become
// constants.DefaultRegistryStatus. The receiver is never mutated.
func (s *Snapshot) Standardize() *Snapshot {
	out := &Snapshot{
		Tickets:    make([]GovernanceTicket, len(s.Tickets)),
		Entries:    make([]RegistryEntry, len(s.Entries)),
		Technical:  make([]TechnicalRecord, len(s.Technical)),
		Components: make([]CatalogueComponent, len(s.Components)),
	}
	copy(out.Tickets, s.Tickets)
	copy(out.Technical, s.Technical)
	copy(out.Components, s.Components)
	for i, e := range s.Entries {
		if e.Status == "" {
			e.Status = constants.DefaultRegistryStatus
		}
		out.Entries[i] = e
	}
	return out
}

// Counts reports the number of rows per entity set.
func (s *Snapshot) Counts() (tickets, entries, technical, components int) {
	return len(s.Tickets), len(s.Entries), len(s.Technical), len(s.Components)
}
