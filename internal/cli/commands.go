package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ExitError carries a specific process exit status out of a command. main
// unwraps it so CI sees 1 for issues and 2 for tool trouble.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string { return fmt.Sprintf("exit status %d", e.Code) }

func AddCommands(root *cobra.Command) {
	root.AddCommand(newRunCmd())
	root.AddCommand(newLintersCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the lintmesh version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), cmd.Root().Version)
			return nil
		},
	}
}
