// Package report renders audit results as flat tables and writes the
// artifact set for one run: CSV exports, the forensic markdown report,
// and the provenance metadata file. Column order is stable so exports
// diff cleanly between runs.
package report

import (
	"strconv"

	"github.com/auditgrid/shadowmap/pkg/audit"
	"github.com/auditgrid/shadowmap/pkg/gaps"
	"github.com/auditgrid/shadowmap/pkg/records"
	"github.com/auditgrid/shadowmap/pkg/spine"
)

// Table is a named flat table with a fixed header order.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// Head returns a copy of the table truncated to the first n rows.
func (t Table) Head(n int) Table {
	if n < 0 || n >= len(t.Rows) {
		return t
	}
	return Table{Name: t.Name, Headers: t.Headers, Rows: t.Rows[:n]}
}

var spineHeaders = []string{
	"join_key",
	"ticket_id", "ticket_title", "ticket_status", "registry_link",
	"registry_name", "governed", "registry_status",
	"outcome", "associated_volume",
}

// SpineTable renders the full spine with both sides' columns.
func SpineTable(rows []spine.Row) Table {
	t := Table{Name: "spine", Headers: spineHeaders}
	for _, row := range rows {
		t.Rows = append(t.Rows, spineRow(row))
	}
	return t
}

// RegistryDeltaTable renders only REGISTRY_ONLY rows, keeping the spine
// columns so the delta file joins back to the master export.
func RegistryDeltaTable(rows []spine.Row) Table {
	t := Table{Name: "registry_delta", Headers: spineHeaders}
	for _, row := range rows {
		if row.Outcome != spine.OutcomeRegistryOnly {
			continue
		}
		t.Rows = append(t.Rows, spineRow(row))
	}
	return t
}

func spineRow(row spine.Row) []string {
	var ticketID, title, ticketStatus, link string
	if row.Ticket != nil {
		ticketID = row.Ticket.ID
		title = row.Ticket.Title
		ticketStatus = string(row.Ticket.Status)
		link = row.Ticket.RegistryLink
	}
	var name, governed, registryStatus string
	if row.Entry != nil {
		name = row.Entry.Name
		governed = row.Entry.Governed
		registryStatus = row.Entry.Status
	}
	return []string{
		row.Key,
		ticketID, title, ticketStatus, link,
		name, governed, registryStatus,
		string(row.Outcome), formatInt(row.AssociatedVolume),
	}
}

// TallyTable renders the outcome counts.
func TallyTable(tally []spine.OutcomeCount) Table {
	t := Table{Name: "tally", Headers: []string{"outcome", "count"}}
	for _, oc := range tally {
		t.Rows = append(t.Rows, []string{string(oc.Outcome), strconv.Itoa(oc.Count)})
	}
	return t
}

// StatusTable renders the ticket-status breakdown.
func StatusTable(counts []audit.StatusCount) Table {
	t := Table{Name: "status_breakdown", Headers: []string{"status", "ticket_count"}}
	for _, sc := range counts {
		t.Rows = append(t.Rows, []string{string(sc.Status), strconv.Itoa(sc.Count)})
	}
	return t
}

// PriorityGapTable renders the priority gap view.
func PriorityGapTable(g []gaps.PriorityGap) Table {
	t := Table{Name: "priority_gaps", Headers: []string{"ticket_id", "title", "status"}}
	for _, gap := range g {
		t.Rows = append(t.Rows, []string{gap.TicketID, gap.Title, string(gap.Status)})
	}
	return t
}

// OrphanTable renders the registry orphan view.
func OrphanTable(o []gaps.Orphan) Table {
	t := Table{Name: "orphans", Headers: []string{"name", "status"}}
	for _, orphan := range o {
		t.Rows = append(t.Rows, []string{orphan.Name, orphan.Status})
	}
	return t
}

// ExposureTable renders the unmapped technical exposure view.
func ExposureTable(e []gaps.FamilyExposure) Table {
	t := Table{Name: "technical_exposure", Headers: []string{"family", "volume"}}
	for _, fe := range e {
		t.Rows = append(t.Rows, []string{fe.Family, formatInt(fe.Volume)})
	}
	return t
}

// ComponentTable renders the catalogue pass-through.
func ComponentTable(c []records.CatalogueComponent) Table {
	t := Table{Name: "components", Headers: []string{"name", "impact_score"}}
	for _, comp := range c {
		t.Rows = append(t.Rows, []string{comp.Name, formatFloat(comp.ImpactScore)})
	}
	return t
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
