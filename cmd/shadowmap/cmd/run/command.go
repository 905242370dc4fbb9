package run

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/auditgrid/shadowmap/internal/cmd/application"
	"github.com/auditgrid/shadowmap/internal/cmd/globals"
	"github.com/auditgrid/shadowmap/pkg/constants"
)

// Flags holds the run command's flag values.
type Flags struct {
	Source      string
	DatabaseURL string
	OutDir      string
	RunID       string
	Upload      bool
	Summary     bool
}

// NewCommand creates the run command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "run",
		GroupID: "core",
		Short:   "Run the full reconciliation audit",
		Long: `Run executes one complete reconciliation audit:

1. Fetch governance tickets, registry entries, technical records, and
   catalogue components from the configured data source
2. Normalize labels into join keys and build the reconciliation spine
3. Classify every row and derive the gap views with attached volume
4. Write the artifact set (CSV exports, markdown report, metadata)
5. Optionally generate an executive summary and deliver the artifacts

The run identifier names every artifact; when none is configured, a
timestamp is generated.`,
		Example: `  shadowmap run                               # Audit with configured source
  shadowmap run --source sample               # Audit the embedded fixture
  shadowmap run --out-dir /tmp/audit          # Write artifacts elsewhere
  shadowmap run --run-id 2026_week34          # Name the artifact set
  shadowmap run --summary                     # Include executive summary
  shadowmap run --upload                      # Require artifact delivery`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// A stuck source or destination must not hold the run forever
			ctx, cancel := context.WithTimeout(cmd.Context(), constants.CommandTimeout)
			defer cancel()

			globalFlags, err := globals.Parse(cmd)
			if err != nil {
				return err
			}

			return ExecuteRun(ctx, app, flags, globalFlags)
		},
	}

	// Add run-specific flags
	flags = addRunFlags(cmd)

	return cmd
}

// addRunFlags adds the run command's flags and returns the bound values.
func addRunFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{}

	cmd.Flags().StringVar(&flags.Source, "source", "",
		"data source for this run (postgres, sample)")
	cmd.Flags().StringVar(&flags.DatabaseURL, "database-url", "",
		"postgres connection string (overrides DATABASE_URL)")
	cmd.Flags().StringVar(&flags.OutDir, "out-dir", "",
		"directory for run artifacts")
	cmd.Flags().StringVar(&flags.RunID, "run-id", "",
		"run identifier used in artifact names")
	cmd.Flags().BoolVar(&flags.Upload, "upload", false,
		"fail the run if artifact delivery is not configured")
	cmd.Flags().BoolVar(&flags.Summary, "summary", false,
		"generate an executive summary for the report")

	return flags
}
