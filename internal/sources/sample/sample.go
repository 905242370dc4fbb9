// Package sample provides the embedded fixture source: a small estate
// with every gap class present, used for demos and tests. It is selected
// explicitly with --source sample and never used as a silent fallback
// when the warehouse is unreachable.
package sample

import (
	"context"
	_ "embed"

	"github.com/goccy/go-yaml"

	"github.com/auditgrid/shadowmap/internal/sources"
	"github.com/auditgrid/shadowmap/pkg/errors"
	"github.com/auditgrid/shadowmap/pkg/records"
)

//go:embed snapshot.yaml
var snapshotYAML []byte

// Source serves the embedded snapshot.
type Source struct{}

// New creates a sample source.
func New() *Source {
	return &Source{}
}

// ID returns the identifier of this source.
func (s *Source) ID() sources.ID {
	return sources.SampleID
}

// Fetch parses the embedded snapshot.
func (s *Source) Fetch(ctx context.Context) (*records.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return parseSnapshot(snapshotYAML)
}

// Cleanup is a no-op. The fixture holds no resources.
func (s *Source) Cleanup() error {
	return nil
}

// Raw row shapes use pointer fields so a key missing from the document
// is distinguishable from a blank value. Blank is valid input; a missing
// required key is a malformed row.
type rawSnapshot struct {
	Tickets    []rawTicket    `yaml:"tickets"`
	Registry   []rawEntry     `yaml:"registry"`
	Technical  []rawTechnical `yaml:"technical"`
	Components []rawComponent `yaml:"components"`
}

type rawTicket struct {
	ID           *string `yaml:"id"`
	Title        *string `yaml:"title"`
	Status       *string `yaml:"status"`
	RegistryLink *string `yaml:"registry_link"`
}

type rawEntry struct {
	Name     *string `yaml:"name"`
	Governed *string `yaml:"governed"`
	Status   *string `yaml:"status"`
}

type rawTechnical struct {
	Identifier *string `yaml:"identifier"`
	Type       *string `yaml:"type"`
	Volume     *int64  `yaml:"volume"`
}

type rawComponent struct {
	Name        *string  `yaml:"name"`
	ImpactScore *float64 `yaml:"impact_score"`
}

func parseSnapshot(data []byte) (*records.Snapshot, error) {
	var raw rawSnapshot
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.NewParseError("yaml", "snapshot.yaml", "invalid sample snapshot", err)
	}

	snap := &records.Snapshot{}

	for _, t := range raw.Tickets {
		switch {
		case t.ID == nil:
			return nil, errors.NewMalformedInputError("ticket", "id")
		case t.Title == nil:
			return nil, errors.NewMalformedInputError("ticket", "title")
		case t.Status == nil:
			return nil, errors.NewMalformedInputError("ticket", "status")
		}
		snap.Tickets = append(snap.Tickets, records.GovernanceTicket{
			ID:           *t.ID,
			Title:        *t.Title,
			Status:       records.TicketStatus(*t.Status),
			RegistryLink: str(t.RegistryLink),
		})
	}

	for _, e := range raw.Registry {
		switch {
		case e.Name == nil:
			return nil, errors.NewMalformedInputError("registry", "name")
		case e.Governed == nil:
			return nil, errors.NewMalformedInputError("registry", "governed")
		}
		snap.Entries = append(snap.Entries, records.RegistryEntry{
			Name:     *e.Name,
			Governed: *e.Governed,
			Status:   str(e.Status),
		})
	}

	for _, rec := range raw.Technical {
		switch {
		case rec.Identifier == nil:
			return nil, errors.NewMalformedInputError("technical", "identifier")
		case rec.Type == nil:
			return nil, errors.NewMalformedInputError("technical", "type")
		case rec.Volume == nil:
			return nil, errors.NewMalformedInputError("technical", "volume")
		}
		snap.Technical = append(snap.Technical, records.TechnicalRecord{
			Identifier: *rec.Identifier,
			Type:       *rec.Type,
			Volume:     *rec.Volume,
		})
	}

	for _, c := range raw.Components {
		switch {
		case c.Name == nil:
			return nil, errors.NewMalformedInputError("component", "name")
		case c.ImpactScore == nil:
			return nil, errors.NewMalformedInputError("component", "impact_score")
		}
		snap.Components = append(snap.Components, records.CatalogueComponent{
			Name:        *c.Name,
			ImpactScore: *c.ImpactScore,
		})
	}

	return snap, nil
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
