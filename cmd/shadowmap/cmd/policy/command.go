// Package policy provides the policy command implementation.
package policy

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/auditgrid/shadowmap/internal/cmd/application"
	"github.com/auditgrid/shadowmap/internal/cmd/constants"
	"github.com/auditgrid/shadowmap/internal/cmd/globals"
	"github.com/auditgrid/shadowmap/internal/cmd/output"
	"github.com/auditgrid/shadowmap/pkg/normalize"
)

// NewCommand creates the policy command with app dependencies.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "policy",
		GroupID: "management",
		Short:   "Show the active family normalization policy",
		Long: `Policy prints the strip lists the audit uses to reduce technical
identifiers to product families. The lists are versioned configuration:
changing which tokens are stripped changes which identifiers collapse
onto one family, so revisions are explicit and auditable, never
inferred from the data.`,
		Example: `  shadowmap policy                         # Active policy as a table
  shadowmap policy -o yaml                 # As YAML, ready to edit
  POLICY_FILE=custom.yaml shadowmap policy  # Policy loaded from a file`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			globalFlags, err := globals.Parse(cmd)
			if err != nil {
				return err
			}

			p := app.Policy()

			switch globalFlags.Format {
			case constants.FormatTable, constants.FormatWide, "":
				return output.FormatAny(policyData(p), globalFlags)
			default:
				return output.FormatAny(p, globalFlags)
			}
		},
	}
}

// policyData renders the policy as one row per strip list.
func policyData(p normalize.Policy) output.Data {
	return output.Data{
		Headers: []string{"List", "Tokens", "Count"},
		Rows: [][]string{
			{"version", strconv.Itoa(p.Version), ""},
			{"regions", strings.Join(p.Regions, " "), strconv.Itoa(len(p.Regions))},
			{"prefixes", strings.Join(p.Prefixes, " "), strconv.Itoa(len(p.Prefixes))},
			{"qualifiers", strings.Join(p.Qualifiers, " "), strconv.Itoa(len(p.Qualifiers))},
		},
	}
}
