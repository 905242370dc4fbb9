package output

import (
	"os"
	"strconv"

	"github.com/auditgrid/shadowmap/internal/cmd/constants"
	"github.com/auditgrid/shadowmap/internal/cmd/globals"
	"github.com/auditgrid/shadowmap/internal/report"
	"github.com/auditgrid/shadowmap/pkg/gaps"
	"github.com/auditgrid/shadowmap/pkg/records"
	"github.com/auditgrid/shadowmap/pkg/spine"
)

// TableData converts a report table into renderable table data, turning
// its snake_case column names into display headers.
func TableData(t report.Table) Data {
	return Data{Headers: Titles(t.Headers), Rows: t.Rows}
}

// condensedSpineHeaders are the columns shown by the default table view.
// The wide view shows every spine column instead.
var condensedSpineHeaders = []string{
	"join_key", "ticket_id", "ticket_status", "registry_name",
	"outcome", "associated_volume",
}

func condensedSpineData(rows []spine.Row) Data {
	data := Data{Headers: Titles(condensedSpineHeaders)}
	for _, row := range rows {
		var ticketID, ticketStatus string
		if row.Ticket != nil {
			ticketID = row.Ticket.ID
			ticketStatus = string(row.Ticket.Status)
		}
		var name string
		if row.Entry != nil {
			name = row.Entry.Name
		}
		data.Rows = append(data.Rows, []string{
			row.Key, ticketID, ticketStatus, name,
			string(row.Outcome), strconv.FormatInt(row.AssociatedVolume, 10),
		})
	}
	return data
}

// FormatSpine handles the common pattern of formatting spine rows for output.
// This encapsulates the switch logic for different output formats.
func FormatSpine(rows []spine.Row, globalFlags *globals.Flags) error {
	formatter := NewFormatter(Format(globalFlags.Format))

	// Transform to output format
	var outputData any
	switch globalFlags.Format {
	case constants.FormatWide:
		outputData = TableData(report.SpineTable(rows))
	case constants.FormatTable, "":
		outputData = condensedSpineData(rows)
	default:
		outputData = rows
	}

	return formatter.Format(os.Stdout, outputData)
}

// FormatGaps handles the common pattern of formatting priority gaps for output.
func FormatGaps(g []gaps.PriorityGap, globalFlags *globals.Flags) error {
	formatter := NewFormatter(Format(globalFlags.Format))

	// Transform to output format
	var outputData any
	switch globalFlags.Format {
	case constants.FormatTable, constants.FormatWide, "":
		outputData = TableData(report.PriorityGapTable(g))
	default:
		outputData = g
	}

	return formatter.Format(os.Stdout, outputData)
}

// FormatOrphans handles the common pattern of formatting registry orphans for output.
func FormatOrphans(o []gaps.Orphan, globalFlags *globals.Flags) error {
	formatter := NewFormatter(Format(globalFlags.Format))

	// Transform to output format
	var outputData any
	switch globalFlags.Format {
	case constants.FormatTable, constants.FormatWide, "":
		outputData = TableData(report.OrphanTable(o))
	default:
		outputData = o
	}

	return formatter.Format(os.Stdout, outputData)
}

// FormatExposure handles the common pattern of formatting technical exposure for output.
func FormatExposure(e []gaps.FamilyExposure, globalFlags *globals.Flags) error {
	formatter := NewFormatter(Format(globalFlags.Format))

	// Transform to output format
	var outputData any
	switch globalFlags.Format {
	case constants.FormatTable, constants.FormatWide, "":
		outputData = TableData(report.ExposureTable(e))
	default:
		outputData = e
	}

	return formatter.Format(os.Stdout, outputData)
}

// FormatComponents handles the common pattern of formatting catalogue components for output.
func FormatComponents(c []records.CatalogueComponent, globalFlags *globals.Flags) error {
	formatter := NewFormatter(Format(globalFlags.Format))

	// Transform to output format
	var outputData any
	switch globalFlags.Format {
	case constants.FormatTable, constants.FormatWide, "":
		outputData = TableData(report.ComponentTable(c))
	default:
		outputData = c
	}

	return formatter.Format(os.Stdout, outputData)
}

// FormatAny handles the common pattern of formatting any data type for output.
// This is useful for commands with custom data structures.
func FormatAny(data any, globalFlags *globals.Flags) error {
	formatter := NewFormatter(Format(globalFlags.Format))
	return formatter.Format(os.Stdout, data)
}
