package list

import (
	"github.com/spf13/cobra"

	"github.com/auditgrid/shadowmap/internal/cmd/application"
	"github.com/auditgrid/shadowmap/internal/cmd/globals"
	"github.com/auditgrid/shadowmap/internal/cmd/output"
)

// NewComponentsCommand creates the list components subcommand using app context.
func NewComponentsCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "components",
		Short:   "List catalogue components",
		Aliases: []string{"component"},
		Long: `Components lists the service catalogue rows the audit passes through
for export. They are never joined into the spine; the impact score is
carried as-is for the downstream mapping exercise.`,
		Example: `  shadowmap list components                # Component table
  shadowmap list components -o json        # As JSON`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			globalFlags, err := globals.Parse(cmd)
			if err != nil {
				return err
			}

			result, err := app.Audit(cmd.Context())
			if err != nil {
				return err
			}

			return output.FormatComponents(result.Components, globalFlags)
		},
	}
}
