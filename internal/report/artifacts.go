package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/auditgrid/shadowmap/pkg/audit"
	"github.com/auditgrid/shadowmap/pkg/constants"
	"github.com/auditgrid/shadowmap/pkg/errors"
)

// Artifact is one written output file.
type Artifact struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
	MIME string `json:"mime" yaml:"mime"`
}

// WriteAll writes the full artifact set for one run into dir and returns
// the manifest in table-of-contents order. The run identifier is chosen
// by the caller; nothing here stamps its own timestamps into filenames.
func WriteAll(dir, runID string, result *audit.Result, summary string) ([]Artifact, error) {
	if runID == "" {
		return nil, errors.NewValidationError("run_id", runID, "run identifier is required")
	}
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("mkdir", dir, err)
	}

	var (
		tocName        = fmt.Sprintf("table_of_contents_%s.csv", runID)
		spineName      = fmt.Sprintf("spine_reconciliation_%s.csv", runID)
		reportName     = fmt.Sprintf("reconciliation_report_%s.md", runID)
		deltaName      = fmt.Sprintf("registry_delta_%s.csv", runID)
		exposureName   = fmt.Sprintf("technical_exposure_%s.csv", runID)
		componentsName = fmt.Sprintf("component_mapping_%s.csv", runID)
		metadataName   = fmt.Sprintf("audit_metadata_%s.txt", runID)
	)

	manifest := []Artifact{
		{Name: tocName, Path: filepath.Join(dir, tocName), MIME: constants.MIMECSV},
		{Name: spineName, Path: filepath.Join(dir, spineName), MIME: constants.MIMECSV},
		{Name: reportName, Path: filepath.Join(dir, reportName), MIME: constants.MIMEMarkdown},
		{Name: deltaName, Path: filepath.Join(dir, deltaName), MIME: constants.MIMECSV},
		{Name: exposureName, Path: filepath.Join(dir, exposureName), MIME: constants.MIMECSV},
		{Name: componentsName, Path: filepath.Join(dir, componentsName), MIME: constants.MIMECSV},
		{Name: metadataName, Path: filepath.Join(dir, metadataName), MIME: constants.MIMEText},
	}

	if err := WriteCSV(manifest[0].Path, contentsTable(manifest)); err != nil {
		return nil, err
	}
	if err := WriteCSV(manifest[1].Path, SpineTable(result.Spine)); err != nil {
		return nil, err
	}
	if err := writeReport(manifest[2].Path, result, summary); err != nil {
		return nil, err
	}
	if err := WriteCSV(manifest[3].Path, RegistryDeltaTable(result.Spine)); err != nil {
		return nil, err
	}
	if err := WriteCSV(manifest[4].Path, ExposureTable(result.Exposure)); err != nil {
		return nil, err
	}
	if err := WriteCSV(manifest[5].Path, ComponentTable(result.Components)); err != nil {
		return nil, err
	}
	if err := writeMetadata(manifest[6].Path, runID, result); err != nil {
		return nil, err
	}

	return manifest, nil
}

// contentsTable builds the manifest table: every delivered file with
// what it is and why it exists.
func contentsTable(manifest []Artifact) Table {
	descriptions := [][2]string{
		{"The manifest (this file).", "Inventory of all files delivered in this export."},
		{"Master many-to-many outer join between governance tickets and the product registry.", "The primary investigation tool for finding unmapped tickets and products."},
		{"Deep-dive forensic report with outcome metrics and gap analysis.", "Stakeholder-ready summary for outreach planning."},
		{"Registry-centric delta file.", "Identifies products that exist in the registry with no governance oversight."},
		{"Technical families with no governance mapping.", "Identifies high-volume technical Shadow IT risks."},
		{"Catalogue component mapping export.", "Identifies drift between architectural design and registration."},
		{"Audit execution metadata.", "Proof of run time and logic version for compliance."},
	}

	t := Table{Name: "table_of_contents", Headers: []string{"filename", "what", "why"}}
	for i, a := range manifest {
		t.Rows = append(t.Rows, []string{a.Name, descriptions[i][0], descriptions[i][1]})
	}
	return t
}

func writeReport(path string, result *audit.Result, summary string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	defer func() { _ = f.Close() }()

	if err := WriteMarkdown(f, result, summary); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return errors.WrapIO("close", path, err)
	}
	return nil
}

func writeMetadata(path, runID string, result *audit.Result) error {
	content := fmt.Sprintf(`SHADOWMAP AUDIT LOG
Run ID: %s
Started: %s
Completed: %s
Duration: %s
Logic: bi-directional spine
Inputs: %d tickets, %d registry entries, %d technical records, %d components
Outcomes: %d matched, %d ticket-only, %d registry-only
`,
		runID,
		result.StartTime.Format(constants.TimeFormatISO8601),
		result.EndTime.Format(constants.TimeFormatISO8601),
		result.Duration,
		result.Stats.TicketsIn, result.Stats.EntriesIn,
		result.Stats.TechnicalIn, result.Stats.ComponentsIn,
		result.Stats.Matched, result.Stats.TicketOnly, result.Stats.RegistryOnly)

	if err := os.WriteFile(path, []byte(content), constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
