package app

import (
	"github.com/spf13/cobra"

	"github.com/hexsprite/lintmesh/internal/cli"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

func BuildRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "lintmesh",
		Short:         "One merged report from every JavaScript and TypeScript linter in the project",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cli.AddCommands(root)
	return root
}
