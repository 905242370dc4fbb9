package list

import (
	"github.com/spf13/cobra"

	"github.com/auditgrid/shadowmap/internal/cmd/application"
	"github.com/auditgrid/shadowmap/internal/cmd/globals"
	"github.com/auditgrid/shadowmap/internal/cmd/output"
)

// NewGapsCommand creates the list gaps subcommand using app context.
func NewGapsCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "gaps",
		Short:   "List actionable tickets missing from the registry",
		Aliases: []string{"priority"},
		Example: `  shadowmap list gaps                      # Priority gap table
  shadowmap list gaps -o json              # As JSON`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			globalFlags, err := globals.Parse(cmd)
			if err != nil {
				return err
			}

			result, err := app.Audit(cmd.Context())
			if err != nil {
				return err
			}

			return output.FormatGaps(result.PriorityGaps, globalFlags)
		},
	}
}

// NewOrphansCommand creates the list orphans subcommand using app context.
func NewOrphansCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "orphans",
		Short: "List registry entries no ticket governs",
		Example: `  shadowmap list orphans                   # Orphan table
  shadowmap list orphans -o yaml           # As YAML`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			globalFlags, err := globals.Parse(cmd)
			if err != nil {
				return err
			}

			result, err := app.Audit(cmd.Context())
			if err != nil {
				return err
			}

			return output.FormatOrphans(result.Orphans, globalFlags)
		},
	}
}

// NewExposureCommand creates the list exposure subcommand using app context.
func NewExposureCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "exposure",
		Short: "List technical families with no governance trace",
		Long: `Exposure lists technical families whose normalized name matches no
spine join key, sorted by aggregated volume descending. These are the
candidate shadow launches: real operational footprint with no
governance ticket and no registry entry behind it.`,
		Example: `  shadowmap list exposure                  # Largest exposure first
  shadowmap list exposure -o json          # As JSON`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			globalFlags, err := globals.Parse(cmd)
			if err != nil {
				return err
			}

			result, err := app.Audit(cmd.Context())
			if err != nil {
				return err
			}

			return output.FormatExposure(result.Exposure, globalFlags)
		},
	}
}
