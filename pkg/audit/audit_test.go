package audit_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auditgrid/shadowmap/pkg/audit"
	"github.com/auditgrid/shadowmap/pkg/errors"
	"github.com/auditgrid/shadowmap/pkg/gaps"
	"github.com/auditgrid/shadowmap/pkg/records"
	"github.com/auditgrid/shadowmap/pkg/spine"
)

func testSnapshot() *records.Snapshot {
	return &records.Snapshot{
		Tickets: []records.GovernanceTicket{
			{ID: "JIRA-1", Title: "Alpha Product", Status: records.StatusApprovedForLaunch},
			{ID: "JIRA-2", Title: "Beta Service", Status: records.StatusDevelopment},
			{ID: "JIRA-3", Title: "Old Pilot", Status: "Rejected"},
		},
		Entries: []records.RegistryEntry{
			{Name: "Alpha Product", Governed: "Yes", Status: "Active"},
			{Name: "Legacy Widget", Governed: "No", Status: ""},
		},
		Technical: []records.TechnicalRecord{
			{Identifier: "PT_ALPHA_PRODUCT_GB_STD", Type: "flow", Volume: 100},
			{Identifier: "UNMAPPED_WIDGET_FR", Type: "flow", Volume: 300},
		},
		Components: []records.CatalogueComponent{
			{Name: "Payments Core", ImpactScore: 9.5},
		},
	}
}

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		a, err := audit.New()
		require.NoError(t, err)
		assert.NotNil(t, a)
	})

	t.Run("with options", func(t *testing.T) {
		a, err := audit.New(
			audit.WithActionableStatuses("Pilot"),
			audit.WithPriorityGapLimit(10),
		)
		require.NoError(t, err)
		assert.NotNil(t, a)
	})

	t.Run("negative gap limit", func(t *testing.T) {
		_, err := audit.New(audit.WithPriorityGapLimit(-1))
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})
}

func TestAudit(t *testing.T) {
	a, err := audit.New()
	require.NoError(t, err)

	result, err := a.Audit(context.Background(), testSnapshot())
	require.NoError(t, err)
	require.NotNil(t, result)

	t.Run("spine", func(t *testing.T) {
		require.Len(t, result.Spine, 4)
		assert.Equal(t, spine.OutcomeMatched, result.Spine[0].Outcome)
		assert.Equal(t, "alpha product", result.Spine[0].Key)
		assert.Equal(t, spine.OutcomeTicketOnly, result.Spine[1].Outcome)
		assert.Equal(t, spine.OutcomeTicketOnly, result.Spine[2].Outcome)
		assert.Equal(t, spine.OutcomeRegistryOnly, result.Spine[3].Outcome)
	})

	t.Run("tally", func(t *testing.T) {
		require.Len(t, result.Tally, 3)
		assert.Equal(t, spine.OutcomeCount{Outcome: spine.OutcomeMatched, Count: 1}, result.Tally[0])
		assert.Equal(t, spine.OutcomeCount{Outcome: spine.OutcomeTicketOnly, Count: 2}, result.Tally[1])
		assert.Equal(t, spine.OutcomeCount{Outcome: spine.OutcomeRegistryOnly, Count: 1}, result.Tally[2])
	})

	t.Run("priority gaps", func(t *testing.T) {
		require.Len(t, result.PriorityGaps, 1)
		assert.Equal(t, "JIRA-2", result.PriorityGaps[0].TicketID)
		assert.Equal(t, records.StatusDevelopment, result.PriorityGaps[0].Status)
	})

	t.Run("orphans", func(t *testing.T) {
		require.Len(t, result.Orphans, 1)
		assert.Equal(t, "Legacy Widget", result.Orphans[0].Name)
		assert.Equal(t, "Unknown", result.Orphans[0].Status)
	})

	t.Run("exposure", func(t *testing.T) {
		require.Len(t, result.Exposure, 1)
		assert.Equal(t, gaps.FamilyExposure{Family: "unmapped widget", Volume: 300}, result.Exposure[0])
	})

	t.Run("attached volume", func(t *testing.T) {
		assert.Equal(t, int64(100), result.Spine[0].AssociatedVolume)
	})

	t.Run("status breakdown", func(t *testing.T) {
		require.Len(t, result.StatusBreakdown, 3)
		for _, sc := range result.StatusBreakdown {
			assert.Equal(t, 1, sc.Count)
		}
		assert.Equal(t, records.TicketStatus("Approved for Launch"), result.StatusBreakdown[0].Status)
		assert.Equal(t, records.TicketStatus("Development"), result.StatusBreakdown[1].Status)
		assert.Equal(t, records.TicketStatus("Rejected"), result.StatusBreakdown[2].Status)
	})

	t.Run("components pass through", func(t *testing.T) {
		require.Len(t, result.Components, 1)
		assert.Equal(t, "Payments Core", result.Components[0].Name)
	})

	t.Run("stats", func(t *testing.T) {
		assert.Equal(t, 3, result.Stats.TicketsIn)
		assert.Equal(t, 2, result.Stats.EntriesIn)
		assert.Equal(t, 2, result.Stats.TechnicalIn)
		assert.Equal(t, 1, result.Stats.ComponentsIn)
		assert.Equal(t, 4, result.Stats.SpineRows)
		assert.Equal(t, 1, result.Stats.Matched)
		assert.Equal(t, 2, result.Stats.TicketOnly)
		assert.Equal(t, 1, result.Stats.RegistryOnly)
		assert.Equal(t, 2, result.Stats.Families)
		assert.Equal(t, int64(400), result.Stats.TotalVolume)
	})

	t.Run("timing", func(t *testing.T) {
		assert.False(t, result.StartTime.IsZero())
		assert.False(t, result.EndTime.IsZero())
		assert.GreaterOrEqual(t, result.Duration.Nanoseconds(), int64(0))
	})
}

func TestAuditDeterministic(t *testing.T) {
	a, err := audit.New()
	require.NoError(t, err)

	first, err := a.Audit(context.Background(), testSnapshot())
	require.NoError(t, err)
	second, err := a.Audit(context.Background(), testSnapshot())
	require.NoError(t, err)

	assert.Equal(t, first.Spine, second.Spine)
	assert.Equal(t, first.Tally, second.Tally)
	assert.Equal(t, first.PriorityGaps, second.PriorityGaps)
	assert.Equal(t, first.Orphans, second.Orphans)
	assert.Equal(t, first.Exposure, second.Exposure)
	assert.Equal(t, first.StatusBreakdown, second.StatusBreakdown)
	assert.Equal(t, first.Stats, second.Stats)
}

func TestAuditDoesNotMutateSnapshot(t *testing.T) {
	a, err := audit.New()
	require.NoError(t, err)
	snap := testSnapshot()

	_, err = a.Audit(context.Background(), snap)
	require.NoError(t, err)

	// The blank registry status is defaulted in the result, not in the input.
	assert.Equal(t, "", snap.Entries[1].Status)
}

func TestAuditErrors(t *testing.T) {
	a, err := audit.New()
	require.NoError(t, err)

	t.Run("nil snapshot", func(t *testing.T) {
		_, err := a.Audit(context.Background(), nil)
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("invalid snapshot", func(t *testing.T) {
		snap := testSnapshot()
		snap.Tickets = append(snap.Tickets, records.GovernanceTicket{Title: "No ID"})
		_, err := a.Audit(context.Background(), snap)
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := a.Audit(ctx, testSnapshot())
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestAuditCustomOptions(t *testing.T) {
	a, err := audit.New(
		audit.WithActionableStatuses("Rejected"),
		audit.WithPriorityGapLimit(1),
	)
	require.NoError(t, err)

	result, err := a.Audit(context.Background(), testSnapshot())
	require.NoError(t, err)

	require.Len(t, result.PriorityGaps, 1)
	assert.Equal(t, "JIRA-3", result.PriorityGaps[0].TicketID)
}

func TestResultSummary(t *testing.T) {
	a, err := audit.New()
	require.NoError(t, err)

	result, err := a.Audit(context.Background(), testSnapshot())
	require.NoError(t, err)

	assert.Equal(t,
		"Reconciled 3 tickets against 2 registry entries: 1 matched, 2 ticket-only, 1 registry-only (25.0% matched)",
		result.Summary())
	assert.True(t, result.HasGaps())
	assert.InDelta(t, 25.0, result.MatchRate(), 0.001)
}

func TestResultBuilderStampsTiming(t *testing.T) {
	result := audit.NewResultBuilder().
		WithSpine([]spine.Row{{Key: "alpha product", Outcome: spine.OutcomeMatched}}).
		WithTally(spine.Tally(nil)).
		Build()

	assert.False(t, result.StartTime.IsZero())
	assert.False(t, result.EndTime.IsZero())
	assert.False(t, result.EndTime.Before(result.StartTime))
	assert.Equal(t, result.EndTime.Sub(result.StartTime), result.Duration)
	assert.GreaterOrEqual(t, result.Duration.Nanoseconds(), int64(0))
}

func TestResultMatchRateEmpty(t *testing.T) {
	result := &audit.Result{}
	assert.Equal(t, 0.0, result.MatchRate())
	assert.False(t, result.HasGaps())
}
