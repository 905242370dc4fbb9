// Package sources defines the interface and types for snapshot data
// sources. A source fetches the four row shapes the reconciliation
// consumes: governance tickets, registry entries, technical records, and
// catalogue components.
//
// Implementations live in subpackages (postgres for production, sample
// for the embedded fixture) and are constructed through the registry
// subpackage. Sources are selected explicitly by configuration, never by
// probing what happens to be reachable at runtime.
package sources

import (
	"context"
	"slices"

	"github.com/auditgrid/shadowmap/pkg/records"
)

// ID represents the identifier of a data source.
type ID string

// String returns the string representation of a source ID.
func (id ID) String() string {
	return string(id)
}

// Common source IDs.
const (
	// PostgresID is the production adapter over the warehouse.
	PostgresID ID = "postgres"
	// SampleID is the embedded fixture used for demos and tests.
	SampleID ID = "sample"
)

// IDs returns all available source IDs.
func IDs() []ID {
	return []ID{
		PostgresID,
		SampleID,
	}
}

// IsValid returns true if the ID is one of the defined constants.
func (id ID) IsValid() bool {
	return slices.Contains(IDs(), id)
}

// Source is a data source for reconciliation snapshots.
type Source interface {
	// ID returns the identifier of this source.
	ID() ID

	// Fetch retrieves a full snapshot from this source.
	Fetch(ctx context.Context) (*records.Snapshot, error)

	// Cleanup releases any resources held by the source.
	Cleanup() error
}

// Config carries the settings source constructors need.
type Config struct {
	// DatabaseURL is the postgres DSN. Required by the postgres source.
	DatabaseURL string
}
