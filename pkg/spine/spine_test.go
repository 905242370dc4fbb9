package spine_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/auditgrid/shadowmap/pkg/records"
	"github.com/auditgrid/shadowmap/pkg/spine"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		hasTicket   bool
		hasRegistry bool
		want        spine.Outcome
	}{
		{true, true, spine.OutcomeMatched},
		{true, false, spine.OutcomeTicketOnly},
		{false, true, spine.OutcomeRegistryOnly},
		{false, false, spine.OutcomeRegistryOnly},
	}

	for _, tt := range tests {
		if got := spine.Classify(tt.hasTicket, tt.hasRegistry); got != tt.want {
			t.Errorf("Classify(%v, %v) = %q, want %q", tt.hasTicket, tt.hasRegistry, got, tt.want)
		}
	}
}

func TestBuildMatchedRow(t *testing.T) {
	tickets := []records.GovernanceTicket{
		{ID: "JIRA-1", Title: "Alpha Product", Status: records.StatusApprovedForLaunch},
	}
	entries := []records.RegistryEntry{
		{Name: "Alpha Product", Governed: "Yes", Status: "Active"},
	}

	rows := spine.Build(tickets, entries)

	want := []spine.Row{
		{
			Key:     "alpha product",
			Ticket:  &tickets[0],
			Entry:   &entries[0],
			Outcome: spine.OutcomeMatched,
		},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("Build mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildTicketOnlyRow(t *testing.T) {
	tickets := []records.GovernanceTicket{
		{ID: "JIRA-2", Title: "Beta Service", Status: records.StatusDevelopment},
	}

	rows := spine.Build(tickets, nil)

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.Outcome != spine.OutcomeTicketOnly {
		t.Errorf("outcome = %q, want TICKET_ONLY", row.Outcome)
	}
	if row.Entry != nil {
		t.Errorf("entry should be nil on a ticket-only row")
	}
	if row.Key != "beta service" {
		t.Errorf("key = %q, want %q", row.Key, "beta service")
	}
}

func TestBuildRegistryOnlyRow(t *testing.T) {
	entries := []records.RegistryEntry{
		{Name: "Gamma Widget", Governed: "No", Status: "Unknown"},
	}

	rows := spine.Build(nil, entries)

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Outcome != spine.OutcomeRegistryOnly {
		t.Errorf("outcome = %q, want REGISTRY_ONLY", rows[0].Outcome)
	}
	if rows[0].Ticket != nil {
		t.Errorf("ticket should be nil on a registry-only row")
	}
}

func TestBuildManyToMany(t *testing.T) {
	// Two tickets and two entries collapse onto one key: every pair
	// survives, nothing is deduplicated.
	tickets := []records.GovernanceTicket{
		{ID: "JIRA-1", Title: "Alpha Product"},
		{ID: "JIRA-2", Title: "CARDS | Alpha Product"},
	}
	entries := []records.RegistryEntry{
		{Name: "Alpha Product", Status: "Active"},
		{Name: "alpha-product", Status: "Draft"},
	}

	rows := spine.Build(tickets, entries)

	if len(rows) != 4 {
		t.Fatalf("expected 4 rows (2 tickets x 2 entries), got %d", len(rows))
	}
	for _, r := range rows {
		if r.Outcome != spine.OutcomeMatched {
			t.Errorf("outcome = %q, want MATCHED", r.Outcome)
		}
		if r.Key != "alpha product" {
			t.Errorf("key = %q, want %q", r.Key, "alpha product")
		}
	}

	// Ticket order outer, registry order inner.
	if rows[0].Ticket.ID != "JIRA-1" || rows[0].Entry.Status != "Active" {
		t.Errorf("row 0 should pair JIRA-1 with the Active entry")
	}
	if rows[1].Ticket.ID != "JIRA-1" || rows[1].Entry.Status != "Draft" {
		t.Errorf("row 1 should pair JIRA-1 with the Draft entry")
	}
	if rows[2].Ticket.ID != "JIRA-2" {
		t.Errorf("row 2 should belong to JIRA-2")
	}
}

func TestBuildEmptyKeysNeverMatch(t *testing.T) {
	// Blank labels normalize to the empty key. They are routed to the
	// one-sided buckets instead of matching each other.
	tickets := []records.GovernanceTicket{
		{ID: "JIRA-9", Title: ""},
	}
	entries := []records.RegistryEntry{
		{Name: "", Status: "Unknown"},
	}

	rows := spine.Build(tickets, entries)

	if len(rows) != 2 {
		t.Fatalf("expected 2 one-sided rows, got %d", len(rows))
	}
	if rows[0].Outcome != spine.OutcomeTicketOnly {
		t.Errorf("blank ticket outcome = %q, want TICKET_ONLY", rows[0].Outcome)
	}
	if rows[1].Outcome != spine.OutcomeRegistryOnly {
		t.Errorf("blank entry outcome = %q, want REGISTRY_ONLY", rows[1].Outcome)
	}
}

func TestBuildJoinCompleteness(t *testing.T) {
	tickets := []records.GovernanceTicket{
		{ID: "JIRA-1", Title: "Alpha Product"},
		{ID: "JIRA-2", Title: "Beta Service"},
		{ID: "JIRA-3", Title: ""},
	}
	entries := []records.RegistryEntry{
		{Name: "Alpha Product"},
		{Name: "Delta Platform"},
		{Name: ""},
	}

	rows := spine.Build(tickets, entries)

	seenTickets := make(map[string]bool)
	seenEntries := make(map[string]bool)
	for _, r := range rows {
		switch r.Outcome {
		case spine.OutcomeMatched:
			if r.Ticket == nil || r.Entry == nil {
				t.Fatalf("matched row missing a side: %+v", r)
			}
		case spine.OutcomeTicketOnly:
			if r.Ticket == nil || r.Entry != nil {
				t.Fatalf("ticket-only row malformed: %+v", r)
			}
		case spine.OutcomeRegistryOnly:
			if r.Ticket != nil || r.Entry == nil {
				t.Fatalf("registry-only row malformed: %+v", r)
			}
		}
		if r.Ticket != nil {
			seenTickets[r.Ticket.ID] = true
		}
		if r.Entry != nil {
			seenEntries[r.Entry.Name] = true
		}
	}

	for _, tk := range tickets {
		if !seenTickets[tk.ID] {
			t.Errorf("ticket %s dropped by the join", tk.ID)
		}
	}
	for _, e := range entries {
		if !seenEntries[e.Name] {
			t.Errorf("entry %q dropped by the join", e.Name)
		}
	}
}

func TestBuildDeterministicOrder(t *testing.T) {
	tickets := []records.GovernanceTicket{
		{ID: "JIRA-2", Title: "Beta Service"},
		{ID: "JIRA-1", Title: "Alpha Product"},
	}
	entries := []records.RegistryEntry{
		{Name: "Gamma Widget"},
		{Name: "Alpha Product"},
	}

	first := spine.Build(tickets, entries)
	second := spine.Build(tickets, entries)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Build is not deterministic (-first +second):\n%s", diff)
	}

	// Tickets lead in input order, unmatched entries trail in input order.
	if first[0].Ticket.ID != "JIRA-2" {
		t.Errorf("row 0 ticket = %s, want JIRA-2", first[0].Ticket.ID)
	}
	if first[1].Ticket.ID != "JIRA-1" {
		t.Errorf("row 1 ticket = %s, want JIRA-1", first[1].Ticket.ID)
	}
	if first[2].Entry.Name != "Gamma Widget" {
		t.Errorf("row 2 entry = %q, want Gamma Widget", first[2].Entry.Name)
	}
}

func TestTally(t *testing.T) {
	tickets := []records.GovernanceTicket{
		{ID: "JIRA-1", Title: "Alpha Product"},
		{ID: "JIRA-2", Title: "Beta Service"},
	}
	entries := []records.RegistryEntry{
		{Name: "Alpha Product"},
		{Name: "Gamma Widget"},
	}

	tally := spine.Tally(spine.Build(tickets, entries))

	want := []spine.OutcomeCount{
		{Outcome: spine.OutcomeMatched, Count: 1},
		{Outcome: spine.OutcomeTicketOnly, Count: 1},
		{Outcome: spine.OutcomeRegistryOnly, Count: 1},
	}
	if diff := cmp.Diff(want, tally); diff != "" {
		t.Errorf("Tally mismatch (-want +got):\n%s", diff)
	}
}

func TestTallyEmptySpine(t *testing.T) {
	tally := spine.Tally(nil)

	if len(tally) != 3 {
		t.Fatalf("expected all three outcomes listed, got %d", len(tally))
	}
	for _, oc := range tally {
		if oc.Count != 0 {
			t.Errorf("outcome %s count = %d, want 0", oc.Outcome, oc.Count)
		}
	}
}
