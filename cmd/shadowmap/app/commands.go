package app

import (
	"github.com/spf13/cobra"

	"github.com/auditgrid/shadowmap/cmd/shadowmap/cmd/list"
	"github.com/auditgrid/shadowmap/cmd/shadowmap/cmd/policy"
	"github.com/auditgrid/shadowmap/cmd/shadowmap/cmd/run"
)

// CreateRunCommand creates the run command with app dependencies.
func (a *App) CreateRunCommand() *cobra.Command {
	return run.NewCommand(a)
}

// CreateListCommand creates the list command with app dependencies.
func (a *App) CreateListCommand() *cobra.Command {
	return list.NewCommand(a)
}

// CreatePolicyCommand creates the policy command with app dependencies.
func (a *App) CreatePolicyCommand() *cobra.Command {
	return policy.NewCommand(a)
}

// CreateVersionCommand creates the version command.
func (a *App) CreateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("shadowmap %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
