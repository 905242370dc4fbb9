package globals

import "github.com/spf13/cobra"

// ResourceFlags holds flags shared by the list view commands.
type ResourceFlags struct {
	Limit   int
	Search  string
	Status  string
	Outcome string
}

// AddResourceFlags adds the shared view flags to a command.
func AddResourceFlags(cmd *cobra.Command) *ResourceFlags {
	flags := &ResourceFlags{}

	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", 0,
		"Limit number of rows")
	cmd.Flags().StringVar(&flags.Search, "search", "",
		"Search term to filter rows")
	cmd.Flags().StringVar(&flags.Status, "status", "",
		"Filter by ticket status")
	cmd.Flags().StringVar(&flags.Outcome, "outcome", "",
		"Filter by reconciliation outcome (matched, ticket_only, registry_only)")

	return flags
}

// ParseResources extracts view flags from a command.
// The command must have had AddResourceFlags called on it, otherwise this will panic.
func ParseResources(cmd *cobra.Command) *ResourceFlags {
	return &ResourceFlags{
		Limit:   mustGetInt(cmd, "limit"),
		Search:  mustGetString(cmd, "search"),
		Status:  mustGetString(cmd, "status"),
		Outcome: mustGetString(cmd, "outcome"),
	}
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetInt retrieves an integer flag value or panics if the flag doesn't exist.
func mustGetInt(cmd *cobra.Command, name string) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
