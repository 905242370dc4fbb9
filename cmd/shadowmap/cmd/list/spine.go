package list

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/auditgrid/shadowmap/internal/cmd/application"
	"github.com/auditgrid/shadowmap/internal/cmd/globals"
	"github.com/auditgrid/shadowmap/internal/cmd/output"
	"github.com/auditgrid/shadowmap/pkg/spine"
)

// NewSpineCommand creates the list spine subcommand using app context.
func NewSpineCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spine",
		Short: "List every joined spine row",
		Example: `  shadowmap list spine                        # Condensed columns
  shadowmap list spine -o wide                # Every column
  shadowmap list spine --outcome ticket_only  # One outcome bucket
  shadowmap list spine --status Development   # One ticket status
  shadowmap list spine --search alpha -l 10   # Search keys, cap rows`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			globalFlags, err := globals.Parse(cmd)
			if err != nil {
				return err
			}
			resourceFlags := globals.ParseResources(cmd)

			result, err := app.Audit(cmd.Context())
			if err != nil {
				return err
			}

			rows, err := filterSpine(result.Spine, resourceFlags)
			if err != nil {
				return err
			}

			return output.FormatSpine(rows, globalFlags)
		},
	}

	// Add resource-specific flags
	globals.AddResourceFlags(cmd)

	return cmd
}

// filterSpine applies the resource flags to the spine rows in order:
// outcome bucket, ticket status, key search, then the row cap.
func filterSpine(rows []spine.Row, flags *globals.ResourceFlags) ([]spine.Row, error) {
	if flags.Outcome != "" {
		outcome := spine.Outcome(strings.ToUpper(flags.Outcome))
		switch outcome {
		case spine.OutcomeMatched, spine.OutcomeTicketOnly, spine.OutcomeRegistryOnly:
		default:
			return nil, fmt.Errorf("unknown outcome: %s", flags.Outcome)
		}
		rows = keepRows(rows, func(r spine.Row) bool { return r.Outcome == outcome })
	}

	if flags.Status != "" {
		rows = keepRows(rows, func(r spine.Row) bool {
			return r.Ticket != nil && strings.EqualFold(string(r.Ticket.Status), flags.Status)
		})
	}

	if flags.Search != "" {
		term := strings.ToLower(flags.Search)
		rows = keepRows(rows, func(r spine.Row) bool {
			return strings.Contains(r.Key, term)
		})
	}

	if flags.Limit > 0 && len(rows) > flags.Limit {
		rows = rows[:flags.Limit]
	}

	return rows, nil
}

// keepRows returns the rows the predicate keeps, preserving order.
func keepRows(rows []spine.Row, keep func(spine.Row) bool) []spine.Row {
	var filtered []spine.Row
	for _, row := range rows {
		if keep(row) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}
