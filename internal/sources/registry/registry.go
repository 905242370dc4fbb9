// Package registry maps source IDs to their constructors. It is
// separate from the sources package so the interface does not import
// its own implementations.
package registry

import (
	"fmt"

	"github.com/auditgrid/shadowmap/internal/sources"
	"github.com/auditgrid/shadowmap/internal/sources/postgres"
	"github.com/auditgrid/shadowmap/internal/sources/sample"
	"github.com/auditgrid/shadowmap/pkg/errors"
)

// registry maps source IDs to their constructor functions.
var registry = map[sources.ID]func(sources.Config) (sources.Source, error){
	sources.PostgresID: func(cfg sources.Config) (sources.Source, error) {
		return postgres.New(cfg.DatabaseURL)
	},
	sources.SampleID: func(sources.Config) (sources.Source, error) {
		return sample.New(), nil
	},
}

// Get creates a new source instance for the given ID. Each call returns
// a fresh source with its own connection state.
func Get(id sources.ID, cfg sources.Config) (sources.Source, error) {
	construct, ok := registry[id]
	if !ok {
		return nil, &errors.ValidationError{
			Field:   "source",
			Value:   id,
			Message: fmt.Sprintf("unsupported source: %s", id),
		}
	}
	return construct(cfg)
}

// Has checks if a source ID has an implementation.
func Has(id sources.ID) bool {
	_, ok := registry[id]
	return ok
}

// List returns the registered source IDs in declaration order.
func List() []sources.ID {
	ids := make([]sources.ID, 0, len(registry))
	for _, id := range sources.IDs() {
		if Has(id) {
			ids = append(ids, id)
		}
	}
	return ids
}
