package gaps_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auditgrid/shadowmap/pkg/footprint"
	"github.com/auditgrid/shadowmap/pkg/gaps"
	"github.com/auditgrid/shadowmap/pkg/records"
	"github.com/auditgrid/shadowmap/pkg/spine"
)

func TestPriority(t *testing.T) {
	tickets := []records.GovernanceTicket{
		{ID: "JIRA-2", Title: "Beta Service", Status: records.StatusDevelopment},
		{ID: "JIRA-3", Title: "Gamma Widget", Status: "Rejected"},
		{ID: "JIRA-4", Title: "Delta Platform", Status: records.StatusApprovedForLaunch},
	}
	rows := spine.Build(tickets, nil)

	got := gaps.Priority(rows, nil, 0)

	require.Len(t, got, 2)
	assert.Equal(t, "JIRA-2", got[0].TicketID)
	assert.Equal(t, records.StatusDevelopment, got[0].Status)
	assert.Equal(t, "JIRA-4", got[1].TicketID)
}

func TestPriorityExcludesMatchedRows(t *testing.T) {
	tickets := []records.GovernanceTicket{
		{ID: "JIRA-1", Title: "Alpha Product", Status: records.StatusApprovedForLaunch},
	}
	entries := []records.RegistryEntry{
		{Name: "Alpha Product", Status: "Active"},
	}
	rows := spine.Build(tickets, entries)

	assert.Empty(t, gaps.Priority(rows, nil, 0))
}

func TestPriorityCustomActionable(t *testing.T) {
	tickets := []records.GovernanceTicket{
		{ID: "JIRA-5", Title: "Epsilon Feed", Status: "Pilot"},
		{ID: "JIRA-6", Title: "Zeta Feed", Status: records.StatusMonitoring},
	}
	rows := spine.Build(tickets, nil)

	got := gaps.Priority(rows, []records.TicketStatus{"Pilot"}, 0)

	require.Len(t, got, 1)
	assert.Equal(t, "JIRA-5", got[0].TicketID)
}

func TestPriorityLimit(t *testing.T) {
	var tickets []records.GovernanceTicket
	for i := range 60 {
		tickets = append(tickets, records.GovernanceTicket{
			ID:     fmt.Sprintf("JIRA-%d", i),
			Title:  fmt.Sprintf("Product %d", i),
			Status: records.StatusMonitoring,
		})
	}
	rows := spine.Build(tickets, nil)

	t.Run("default cap", func(t *testing.T) {
		got := gaps.Priority(rows, nil, 0)
		assert.Len(t, got, 50)
	})

	t.Run("explicit limit", func(t *testing.T) {
		got := gaps.Priority(rows, nil, 5)
		require.Len(t, got, 5)
		assert.Equal(t, "JIRA-0", got[0].TicketID)
		assert.Equal(t, "JIRA-4", got[4].TicketID)
	})
}

func TestOrphans(t *testing.T) {
	tickets := []records.GovernanceTicket{
		{ID: "JIRA-1", Title: "Alpha Product", Status: records.StatusApprovedForLaunch},
	}
	entries := []records.RegistryEntry{
		{Name: "Alpha Product", Status: "Active"},
		{Name: "Legacy Widget", Status: "Deprecated"},
		{Name: "Ghost Feed", Status: "Unknown"},
	}
	rows := spine.Build(tickets, entries)

	got := gaps.Orphans(rows)

	require.Len(t, got, 2)
	assert.Equal(t, gaps.Orphan{Name: "Legacy Widget", Status: "Deprecated"}, got[0])
	assert.Equal(t, gaps.Orphan{Name: "Ghost Feed", Status: "Unknown"}, got[1])
}

func TestUnmappedExposure(t *testing.T) {
	tickets := []records.GovernanceTicket{
		{ID: "JIRA-1", Title: "Alpha Product"},
	}
	rows := spine.Build(tickets, nil)
	agg := footprint.Aggregate{
		"alpha product":   150,
		"unmapped widget": 300,
		"shadow feed":     90,
		"quiet batch":     90,
	}

	got := gaps.UnmappedExposure(agg, rows)

	require.Len(t, got, 3)
	assert.Equal(t, gaps.FamilyExposure{Family: "unmapped widget", Volume: 300}, got[0])
	assert.Equal(t, gaps.FamilyExposure{Family: "quiet batch", Volume: 90}, got[1])
	assert.Equal(t, gaps.FamilyExposure{Family: "shadow feed", Volume: 90}, got[2])
}

func TestUnmappedExposureAllMapped(t *testing.T) {
	tickets := []records.GovernanceTicket{
		{ID: "JIRA-1", Title: "Alpha Product"},
	}
	rows := spine.Build(tickets, nil)
	agg := footprint.Aggregate{"alpha product": 150}

	assert.Empty(t, gaps.UnmappedExposure(agg, rows))
}
