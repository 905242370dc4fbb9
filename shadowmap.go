// Package shadowmap reconciles governance launch tickets against a product
// registry to surface asymmetric gaps: tickets that never reached the registry
// ("shadow" launches) and registry entries no ticket governs. It attaches
// technical-footprint volume to the reconciled spine as a risk signal and
// derives the gap views an auditor acts on.
//
// Shadowmap wraps the reconciliation core with:
// - Explicit data-source selection (postgres, embedded sample) behind one interface
// - Snapshot caching with copy-free repeated audits
// - Deterministic results: the same snapshot always reconciles to the same spine
// - Flexible configuration through functional options
//
// Example usage:
//
//	// Create an instance backed by the embedded sample snapshot
//	sm, err := shadowmap.New(shadowmap.WithSampleData())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sm.Cleanup()
//
//	// Run the full reconciliation
//	result, err := sm.Audit(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Summary())
//
//	// Inspect the gap views
//	for _, gap := range result.PriorityGaps {
//	    fmt.Printf("%s %s (%s)\n", gap.TicketID, gap.Title, gap.Status)
//	}
//
//	// Configure against a reporting database with a custom policy
//	sm, err = shadowmap.New(
//	    shadowmap.WithDatabaseURL(os.Getenv("DATABASE_URL")),
//	    shadowmap.WithPolicyFile("policy.yaml"),
//	    shadowmap.WithPriorityGapLimit(100),
//	)
package shadowmap

import (
	"context"
	"sync"

	"github.com/auditgrid/shadowmap/internal/sources"
	"github.com/auditgrid/shadowmap/internal/sources/registry"
	"github.com/auditgrid/shadowmap/pkg/audit"
	"github.com/auditgrid/shadowmap/pkg/logging"
	"github.com/auditgrid/shadowmap/pkg/records"
)

// Compile-time interface check to ensure proper implementation.
var _ Shadowmap = (*client)(nil)

// Shadowmap reconciles governance tickets against the product registry.
type Shadowmap interface {

	// Snapshot returns the reconciliation input set, fetching it from the
	// configured source on first use and caching it for later calls.
	Snapshot(ctx context.Context) (*records.Snapshot, error)

	// Refresh discards the cached snapshot and fetches a fresh one.
	Refresh(ctx context.Context) (*records.Snapshot, error)

	// Audit reconciles the current snapshot into a full result: spine,
	// tally, gap views, exposure, and run statistics.
	Audit(ctx context.Context) (*audit.Result, error)

	// Source reports which data source this instance reads from.
	Source() sources.ID

	// Cleanup releases resources held by the data source.
	Cleanup() error
}

// client is the internal implementation of the Shadowmap interface.
type client struct {

	// options are the configured options for the client
	options *options

	// auditor runs the pure reconciliation core
	auditor audit.Auditor

	// source supplies the four input row shapes
	source sources.Source

	// snapshot is the cached input set, fetched lazily
	mu       sync.RWMutex
	snapshot *records.Snapshot
}

// New creates a new Shadowmap instance with the given options.
func New(opts ...Option) (Shadowmap, error) {

	// apply options over defaults
	o := defaults()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	// build the reconciliation core from the collected options
	auditor, err := audit.New(o.auditOptions()...)
	if err != nil {
		return nil, err
	}

	// resolve the data source; selection is always explicit, never probed
	src, err := registry.Get(o.source, sources.Config{DatabaseURL: o.databaseURL})
	if err != nil {
		return nil, err
	}

	logging.Debug().
		Str("source", o.source.String()).
		Int("policy_version", o.policy.Version).
		Msg("Shadowmap instance created")

	return &client{
		options: o,
		auditor: auditor,
		source:  src,
	}, nil
}

// Snapshot returns the cached input set, fetching on first use.
func (c *client) Snapshot(ctx context.Context) (*records.Snapshot, error) {
	c.mu.RLock()
	if c.snapshot != nil {
		snap := c.snapshot
		c.mu.RUnlock()
		return snap, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if c.snapshot != nil {
		return c.snapshot, nil
	}

	return c.fetch(ctx)
}

// Refresh discards the cached snapshot and fetches a fresh one.
func (c *client) Refresh(ctx context.Context) (*records.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snapshot = nil
	return c.fetch(ctx)
}

// fetch pulls a snapshot from the source and caches it.
// Callers must hold the write lock.
func (c *client) fetch(ctx context.Context) (*records.Snapshot, error) {
	snap, err := c.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	tickets, entries, technical, components := snap.Counts()
	logging.Debug().
		Str("source", c.source.ID().String()).
		Int("tickets", tickets).
		Int("entries", entries).
		Int("technical", technical).
		Int("components", components).
		Msg("Snapshot fetched")

	c.snapshot = snap
	return snap, nil
}

// Audit reconciles the current snapshot and returns the result.
func (c *client) Audit(ctx context.Context) (*audit.Result, error) {
	snap, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return c.auditor.Audit(ctx, snap)
}

// Source reports which data source this instance reads from.
func (c *client) Source() sources.ID {
	return c.source.ID()
}

// Cleanup releases resources held by the data source.
func (c *client) Cleanup() error {
	return c.source.Cleanup()
}
