package sample

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auditgrid/shadowmap/internal/sources"
	"github.com/auditgrid/shadowmap/pkg/errors"
)

func TestSourceFetch(t *testing.T) {
	src := New()
	assert.Equal(t, sources.SampleID, src.ID())

	snap, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap)

	assert.Len(t, snap.Tickets, 4)
	assert.Len(t, snap.Entries, 3)
	assert.Len(t, snap.Technical, 4)
	assert.Len(t, snap.Components, 2)

	// The fixture passes core validation as-is.
	require.NoError(t, snap.Validate())

	t.Run("optional fields default to blank", func(t *testing.T) {
		assert.Equal(t, "", snap.Tickets[1].RegistryLink)
		assert.Equal(t, "", snap.Entries[2].Status)
	})

	t.Run("cleanup is a no-op", func(t *testing.T) {
		assert.NoError(t, src.Cleanup())
	})
}

func TestSourceFetchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Fetch(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseSnapshotMalformed(t *testing.T) {
	tests := map[string]struct {
		yaml      string
		wantField string
	}{
		"ticket missing id": {
			yaml:      "tickets:\n  - title: Alpha\n    status: Development\n",
			wantField: "id",
		},
		"ticket missing status": {
			yaml:      "tickets:\n  - id: JIRA-1\n    title: Alpha\n",
			wantField: "status",
		},
		"registry missing governed": {
			yaml:      "registry:\n  - name: Alpha\n",
			wantField: "governed",
		},
		"technical missing volume": {
			yaml:      "technical:\n  - identifier: ALPHA\n    type: flow\n",
			wantField: "volume",
		},
		"component missing impact score": {
			yaml:      "components:\n  - name: Payments Core\n",
			wantField: "impact_score",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := parseSnapshot([]byte(test.yaml))
			require.Error(t, err)
			assert.True(t, errors.IsMalformedInput(err))

			var malformed *errors.MalformedInputError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, test.wantField, malformed.Field)
		})
	}
}

func TestParseSnapshotInvalidYAML(t *testing.T) {
	_, err := parseSnapshot([]byte("tickets: [broken"))
	require.Error(t, err)

	var parseErr *errors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}
