package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list <entity>",
		Short: "List the records of an entity ordered by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := lookupEntity(args[0])
			if err != nil {
				return err
			}
			b, err := a.attachBackend(cmd.Context())
			if err != nil {
				return err
			}
			defer b.Detach()

			records, err := b.List(cmd.Context(), spec)
			if err != nil {
				return sysError(err)
			}

			out := cmd.OutOrStdout()
			if a.flags.jsonMode {
				rows := make([]map[string]any, len(records))
				for i, r := range records {
					rows[i] = recordJSON(spec, r)
				}
				return printJSON(out, rows)
			}
			fmt.Fprintf(out, "%s\t%s\n", spec.IDColumn, strings.Join(spec.Columns, "\t"))
			for _, r := range records {
				fmt.Fprintf(out, "%d\t%s\n", r.ID, strings.Join(r.Values, "\t"))
			}
			return nil
		},
	}
}
