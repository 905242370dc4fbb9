package report

import (
	"io"

	md "github.com/nao1215/markdown"

	"github.com/auditgrid/shadowmap/pkg/audit"
	"github.com/auditgrid/shadowmap/pkg/constants"
	"github.com/auditgrid/shadowmap/pkg/errors"
)

// WriteMarkdown writes the forensic report for one run. A non-empty
// summary is injected as an executive summary section after the title.
func WriteMarkdown(w io.Writer, result *audit.Result, summary string) error {
	doc := md.NewMarkdown(w)

	doc.H1("Launch Reconciliation: Forensic Audit Report")

	if summary != "" {
		doc.H2("Executive Summary").
			PlainText(summary).LF()
	}

	doc.H2("1. Reconciliation Overview").
		PlainText(md.Italic("Audit objective: measure the overlap between governance tickets and the product registry.")).LF()

	doc.H3("1.1 Outcome Tally")
	writeTable(doc, []string{"Reconciliation Outcome", "Count"}, TallyTable(result.Tally))

	doc.H3("1.2 High-Priority Ticket Gaps").
		PlainText(md.Italic("Actionable tickets with no registry counterpart: approved or in-flight launches missing registration.")).LF()
	writeTable(doc, []string{"Ticket ID", "Title", "Status"}, PriorityGapTable(result.PriorityGaps))

	doc.HorizontalRule()

	doc.H2("2. Governance Health")
	doc.H3("2.1 Ticket Status Breakdown")
	writeTable(doc, []string{"Status", "Ticket Count"}, StatusTable(result.StatusBreakdown))

	doc.HorizontalRule()

	doc.H2("3. Registry Health")
	doc.H3("3.1 Unmapped Registry Entries (Orphans)")
	writeTable(doc, []string{"Name", "Registry Status"},
		OrphanTable(result.Orphans).Head(constants.ReportSectionLimit))

	doc.H2("4. Technical Exposure").
		PlainText(md.Italic("Aggregated technical families with no governance link, sorted by volume.")).LF()
	writeTable(doc, []string{"Family", "Volume"},
		ExposureTable(result.Exposure).Head(constants.ReportSectionLimit))

	if err := doc.Build(); err != nil {
		return errors.WrapIO("write", "markdown report", err)
	}
	return nil
}

// writeTable renders a table with display headers, or a placeholder
// when the view is empty.
func writeTable(doc *md.Markdown, headers []string, t Table) {
	if len(t.Rows) == 0 {
		doc.PlainText("No data available.").LF()
		return
	}
	doc.Table(md.TableSet{Header: headers, Rows: t.Rows})
}
