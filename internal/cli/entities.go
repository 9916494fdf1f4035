package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/fmrd/pkg/types"
)

func newEntitiesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "entities",
		Short: "List the editable entities and the tables that reference them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := types.DefaultRegistry()
			out := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return printJSON(out, registry)
			}
			for _, name := range registry.Names() {
				spec, _ := registry.Lookup(name)
				fmt.Fprintf(out, "%-16s %-20s %s <- %s\n",
					spec.Name, spec.Table, spec.KeyField, strings.Join(spec.ChildTables, ", "))
			}
			return nil
		},
	}
}
