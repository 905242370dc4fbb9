// Package postgres implements the production snapshot source over the
// reporting warehouse. It runs four read-only queries on a single
// connection and maps NULLs to blank values, leaving standardization to
// the core.
package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the pgx driver

	"github.com/auditgrid/shadowmap/internal/sources"
	"github.com/auditgrid/shadowmap/pkg/constants"
	"github.com/auditgrid/shadowmap/pkg/errors"
	"github.com/auditgrid/shadowmap/pkg/records"
)

const (
	queryTickets = "SELECT ticket_id, title, status, registry_link FROM governance.launch_tickets"

	queryRegistry = "SELECT name, governed, status FROM governance.product_registry"

	// Live rows only. Decommissioned records carry no launch risk.
	queryTechnical = "SELECT type, identifier, COUNT(*) AS volume FROM core.technical_records " +
		"WHERE decommission_date IS NULL OR decommission_date > CURRENT_DATE GROUP BY 1, 2"

	queryComponents = "SELECT name, impact_score FROM catalogue.components WHERE type = 'PRODUCT'"
)

// Source fetches snapshots from postgres.
type Source struct {
	dsn string
	db  *sql.DB

	queryTimeout time.Duration
}

// New creates a postgres source for the given DSN.
func New(dsn string) (*Source, error) {
	if dsn == "" {
		return nil, errors.NewConfigError("postgres", "database URL is required", nil)
	}
	return &Source{
		dsn:          dsn,
		queryTimeout: constants.QueryTimeout,
	}, nil
}

// ID returns the identifier of this source.
func (s *Source) ID() sources.ID {
	return sources.PostgresID
}

// Fetch retrieves all four entity sets in one pass.
func (s *Source) Fetch(ctx context.Context) (*records.Snapshot, error) {
	if s.db == nil {
		if err := s.open(ctx); err != nil {
			return nil, err
		}
	}

	snap := &records.Snapshot{}
	var err error

	if snap.Tickets, err = s.fetchTickets(ctx); err != nil {
		return nil, err
	}
	if snap.Entries, err = s.fetchRegistry(ctx); err != nil {
		return nil, err
	}
	if snap.Technical, err = s.fetchTechnical(ctx); err != nil {
		return nil, err
	}
	if snap.Components, err = s.fetchComponents(ctx); err != nil {
		return nil, err
	}

	return snap, nil
}

// Cleanup closes the database connection.
func (s *Source) Cleanup() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return errors.WrapResource("close", "database", s.dsn, err)
	}
	return nil
}

func (s *Source) open(ctx context.Context) error {
	db, err := sql.Open("pgx", s.dsn)
	if err != nil {
		return errors.NewConfigError("postgres", "invalid database URL", err)
	}

	// One batch pass, one connection.
	db.SetMaxOpenConns(constants.MaxConnections)
	db.SetMaxIdleConns(constants.MaxConnections)
	db.SetConnMaxLifetime(10 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, constants.PingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return errors.WrapQuery("ping", err)
	}

	s.db = db
	return nil
}

func (s *Source) fetchTickets(ctx context.Context) ([]records.GovernanceTicket, error) {
	var out []records.GovernanceTicket
	err := s.collectQuery(ctx, queryTickets, func(rows *sql.Rows) error {
		var id, title, status, link sql.NullString
		if err := rows.Scan(&id, &title, &status, &link); err != nil {
			return err
		}
		out = append(out, records.GovernanceTicket{
			ID:           id.String,
			Title:        title.String,
			Status:       records.TicketStatus(status.String),
			RegistryLink: link.String,
		})
		return nil
	})
	if err != nil {
		return nil, errors.WrapQuery("tickets", err)
	}
	return out, nil
}

func (s *Source) fetchRegistry(ctx context.Context) ([]records.RegistryEntry, error) {
	var out []records.RegistryEntry
	err := s.collectQuery(ctx, queryRegistry, func(rows *sql.Rows) error {
		var name, governed, status sql.NullString
		if err := rows.Scan(&name, &governed, &status); err != nil {
			return err
		}
		out = append(out, records.RegistryEntry{
			Name:     name.String,
			Governed: governed.String,
			Status:   status.String,
		})
		return nil
	})
	if err != nil {
		return nil, errors.WrapQuery("registry", err)
	}
	return out, nil
}

func (s *Source) fetchTechnical(ctx context.Context) ([]records.TechnicalRecord, error) {
	var out []records.TechnicalRecord
	err := s.collectQuery(ctx, queryTechnical, func(rows *sql.Rows) error {
		var typ, identifier sql.NullString
		var volume sql.NullInt64
		if err := rows.Scan(&typ, &identifier, &volume); err != nil {
			return err
		}
		out = append(out, records.TechnicalRecord{
			Identifier: identifier.String,
			Type:       typ.String,
			Volume:     volume.Int64,
		})
		return nil
	})
	if err != nil {
		return nil, errors.WrapQuery("technical", err)
	}
	return out, nil
}

func (s *Source) fetchComponents(ctx context.Context) ([]records.CatalogueComponent, error) {
	var out []records.CatalogueComponent
	err := s.collectQuery(ctx, queryComponents, func(rows *sql.Rows) error {
		var name sql.NullString
		var score sql.NullFloat64
		if err := rows.Scan(&name, &score); err != nil {
			return err
		}
		out = append(out, records.CatalogueComponent{
			Name:        name.String,
			ImpactScore: score.Float64,
		})
		return nil
	})
	if err != nil {
		return nil, errors.WrapQuery("components", err)
	}
	return out, nil
}

// collectQuery runs one query under the per-query timeout and hands each
// row to scan. The timeout covers iteration, not just the round trip.
func (s *Source) collectQuery(ctx context.Context, q string, scan func(rows *sql.Rows) error) error {
	queryCtx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(queryCtx, q)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
