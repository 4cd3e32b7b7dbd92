package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hexsprite/lintmesh/internal/linters"
)

func newLintersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "linters",
		Short: "Show every supported linter and whether it is installed",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := os.Getwd()
			if err != nil {
				return err
			}
			rt := linters.NewRuntime(linters.NewExecer(), zap.NewNop().Sugar())

			for _, name := range linters.Names() {
				ad, _ := linters.Lookup(name)
				if !ad.Available(cmd.Context(), rt, root) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t-\tnot installed\n", name)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tavailable\n", name, ad.Version(cmd.Context(), rt, root))
			}
			return nil
		},
	}
}
