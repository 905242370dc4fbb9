// Package list provides commands for printing the derived reconciliation views.
package list

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/auditgrid/shadowmap/internal/cmd/application"
)

// NewCommand creates the list command with app dependencies.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list [view]",
		GroupID: "core",
		Short:   "List reconciliation views",
		Long: `List prints any derived view of the reconciliation without writing
artifacts. The audit runs in memory against the configured data source.

Available subcommands:
  spine       - Every joined row with its outcome and attached volume
  gaps        - Actionable tickets missing from the registry
  orphans     - Registry entries no ticket governs
  exposure    - Technical families with no governance or registry trace
  components  - Catalogue components passed through for export`,
		Example: `  shadowmap list spine                     # Full spine, condensed columns
  shadowmap list spine -o wide             # Every spine column
  shadowmap list gaps -o json              # Priority gaps as JSON
  shadowmap list exposure                  # Unmapped volume, largest first`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to help if no subcommand
			if len(args) == 0 {
				return cmd.Help()
			}
			return fmt.Errorf("unknown view: %s", args[0])
		},
	}

	// Add subcommands using the app context
	cmd.AddCommand(NewSpineCommand(app))
	cmd.AddCommand(NewGapsCommand(app))
	cmd.AddCommand(NewOrphansCommand(app))
	cmd.AddCommand(NewExposureCommand(app))
	cmd.AddCommand(NewComponentsCommand(app))

	return cmd
}
