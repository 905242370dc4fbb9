package footprint_test

import (
	"testing"

	"github.com/auditgrid/shadowmap/pkg/footprint"
	"github.com/auditgrid/shadowmap/pkg/normalize"
	"github.com/auditgrid/shadowmap/pkg/records"
	"github.com/auditgrid/shadowmap/pkg/spine"
)

func TestCompute(t *testing.T) {
	policy := normalize.DefaultPolicy()
	recs := []records.TechnicalRecord{
		{Identifier: "PT_ALPHA_PRODUCT_GB_STD", Type: "flow", Volume: 100},
		{Identifier: "ALPHA_PRODUCT_PLUS", Type: "flow", Volume: 50},
		{Identifier: "BETA_SERVICE", Type: "batch", Volume: 7},
		{Identifier: "PT_GB_STD", Type: "flow", Volume: 999},
	}

	agg := footprint.Compute(recs, policy)

	if len(agg) != 2 {
		t.Fatalf("expected 2 families, got %d: %v", len(agg), agg)
	}
	if agg["alpha product"] != 150 {
		t.Errorf("alpha product volume = %d, want 150", agg["alpha product"])
	}
	if agg["beta service"] != 7 {
		t.Errorf("beta service volume = %d, want 7", agg["beta service"])
	}
	if _, ok := agg[""]; ok {
		t.Errorf("empty family must be excluded from the aggregate")
	}
}

func TestComputeEmpty(t *testing.T) {
	agg := footprint.Compute(nil, normalize.DefaultPolicy())
	if len(agg) != 0 {
		t.Errorf("expected empty aggregate, got %v", agg)
	}
	if agg.Total() != 0 {
		t.Errorf("Total = %d, want 0", agg.Total())
	}
}

func TestAttachCreditsOncePerKey(t *testing.T) {
	tickets := []records.GovernanceTicket{
		{ID: "JIRA-1", Title: "Alpha Product"},
		{ID: "JIRA-2", Title: "CARDS | Alpha Product"},
	}
	entries := []records.RegistryEntry{
		{Name: "Alpha Product"},
	}
	rows := spine.Build(tickets, entries)
	agg := footprint.Aggregate{"alpha product": 150}

	footprint.Attach(rows, agg)

	var attached int64
	var credited int
	for _, r := range rows {
		attached += r.AssociatedVolume
		if r.AssociatedVolume > 0 {
			credited++
		}
	}
	if attached != 150 {
		t.Errorf("attached volume = %d, want 150", attached)
	}
	if credited != 1 {
		t.Errorf("volume credited to %d rows, want exactly 1", credited)
	}
	if rows[0].AssociatedVolume != 150 {
		t.Errorf("first row with the key should carry the volume, got %d", rows[0].AssociatedVolume)
	}
}

func TestAttachUnknownAndEmptyKeys(t *testing.T) {
	tickets := []records.GovernanceTicket{
		{ID: "JIRA-1", Title: "Beta Service"},
		{ID: "JIRA-2", Title: ""},
	}
	rows := spine.Build(tickets, nil)
	agg := footprint.Aggregate{"alpha product": 150}

	footprint.Attach(rows, agg)

	for _, r := range rows {
		if r.AssociatedVolume != 0 {
			t.Errorf("row %q volume = %d, want 0", r.Key, r.AssociatedVolume)
		}
	}
}

func TestAttachConservation(t *testing.T) {
	// The sum of attached volume equals the aggregate total for every
	// family whose name appears as a spine key, regardless of how many
	// rows share the key.
	policy := normalize.DefaultPolicy()
	tickets := []records.GovernanceTicket{
		{ID: "JIRA-1", Title: "Alpha Product"},
		{ID: "JIRA-2", Title: "Alpha Product"},
		{ID: "JIRA-3", Title: "Beta Service"},
	}
	entries := []records.RegistryEntry{
		{Name: "Alpha Product"},
		{Name: "Beta Service"},
		{Name: "Gamma Widget"},
	}
	recs := []records.TechnicalRecord{
		{Identifier: "ALPHA_PRODUCT", Volume: 40},
		{Identifier: "PT_ALPHA_PRODUCT_GB", Volume: 60},
		{Identifier: "BETA_SERVICE", Volume: 5},
		{Identifier: "GAMMA_WIDGET", Volume: 12},
		{Identifier: "ORPHANED_FLOW", Volume: 3},
	}

	rows := spine.Build(tickets, entries)
	agg := footprint.Compute(recs, policy)
	footprint.Attach(rows, agg)

	perKey := make(map[string]int64)
	for _, r := range rows {
		perKey[r.Key] += r.AssociatedVolume
	}
	for key, want := range map[string]int64{
		"alpha product": 100,
		"beta service":  5,
		"gamma widget":  12,
	} {
		if perKey[key] != want {
			t.Errorf("key %q attached %d, want %d", key, perKey[key], want)
		}
	}

	// The unmatched family stays in the aggregate for the exposure view.
	if agg["orphaned flow"] != 3 {
		t.Errorf("orphaned flow volume = %d, want 3", agg["orphaned flow"])
	}
}

func TestAttachDoesNotTouchOutcome(t *testing.T) {
	tickets := []records.GovernanceTicket{{ID: "JIRA-1", Title: "Alpha Product"}}
	rows := spine.Build(tickets, nil)
	before := rows[0].Outcome

	footprint.Attach(rows, footprint.Aggregate{"alpha product": 10})

	if rows[0].Outcome != before {
		t.Errorf("Attach changed outcome from %q to %q", before, rows[0].Outcome)
	}
}
