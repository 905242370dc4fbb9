// Package spine builds the unified reconciliation table: a full outer join
// of governance tickets against registry entries on their normalized join
// keys, with every row classified by which sides are present.
package spine

import (
	"github.com/auditgrid/shadowmap/pkg/normalize"
	"github.com/auditgrid/shadowmap/pkg/records"
)

// Outcome is the three-way reconciliation classification of a spine row.
type Outcome string

// Reconciliation outcomes.
const (
	// OutcomeMatched means both a ticket and a registry entry share the key.
	OutcomeMatched Outcome = "MATCHED"

	// OutcomeTicketOnly means the ticket's key has no registry counterpart.
	OutcomeTicketOnly Outcome = "TICKET_ONLY"

	// OutcomeRegistryOnly means the entry's key has no ticket counterpart.
	OutcomeRegistryOnly Outcome = "REGISTRY_ONLY"
)

// Classify maps the presence of the two identifying sides to an outcome.
// It is computed once at row construction and never mutated afterward.
func Classify(hasTicket, hasRegistry bool) Outcome {
	switch {
	case hasTicket && hasRegistry:
		return OutcomeMatched
	case hasTicket:
		return OutcomeTicketOnly
	default:
		return OutcomeRegistryOnly
	}
}

// Row is one row of the spine: a (ticket, entry) pair sharing a join key, or
// a singleton when no counterpart exists. The missing side is nil.
// AssociatedVolume is attached after classification by the footprint layer
// and starts at zero.
type Row struct {
	Key              string                    `json:"join_key" yaml:"join_key"`
	Ticket           *records.GovernanceTicket `json:"ticket,omitempty" yaml:"ticket,omitempty"`
	Entry            *records.RegistryEntry    `json:"entry,omitempty" yaml:"entry,omitempty"`
	Outcome          Outcome                   `json:"outcome" yaml:"outcome"`
	AssociatedVolume int64                     `json:"associated_volume" yaml:"associated_volume"`
}

// Build performs the full outer join. Every ticket is paired with every
// registry entry sharing its non-empty join key (many-to-many, never
// deduplicated); rows whose key matches nothing on the other side carry nil
// for the missing side. Empty keys never participate in equality matching:
// a blank-labeled ticket always lands in TICKET_ONLY and a blank-named
// entry in REGISTRY_ONLY, rather than spuriously matching every other
// blank label.
//
// Output order is deterministic: tickets in input order, each ticket's
// matches in registry input order, then unmatched entries in input order.
// Every input row appears in at least one output row.
func Build(tickets []records.GovernanceTicket, entries []records.RegistryEntry) []Row {
	keys := make([]string, len(entries))
	byKey := make(map[string][]int, len(entries))
	for i := range entries {
		k := normalize.Identity(entries[i].Name)
		keys[i] = k
		if k == "" {
			continue
		}
		byKey[k] = append(byKey[k], i)
	}

	matched := make([]bool, len(entries))
	rows := make([]Row, 0, len(tickets)+len(entries))

	for i := range tickets {
		t := tickets[i]
		k := normalize.Identity(t.Title)

		partners := byKey[k]
		if len(partners) == 0 {
			rows = append(rows, Row{Key: k, Ticket: &t, Outcome: Classify(true, false)})
			continue
		}
		for _, j := range partners {
			matched[j] = true
			e := entries[j]
			rows = append(rows, Row{Key: k, Ticket: &t, Entry: &e, Outcome: Classify(true, true)})
		}
	}

	for j := range entries {
		if matched[j] {
			continue
		}
		e := entries[j]
		rows = append(rows, Row{Key: keys[j], Entry: &e, Outcome: Classify(false, true)})
	}

	return rows
}
