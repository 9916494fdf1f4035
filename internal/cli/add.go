package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/fmrd/internal/editor"
)

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <entity> <value>...",
		Short: "Append a record with the next free id",
		Long: `Add appends a record to the entity's table. One value is given per
column, in the order "fmrd list" prints them; pass "" to leave a column
empty. The id is one past the largest existing id, or the entity's first
id when the table is empty. A description that already exists is refused.`,
		Args: cobra.MinimumNArgs(2),
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
			guard, err := a.newGuard(b)
			if err != nil {
				return err
			}

			ed, err := editor.New(cmd.Context(), b, guard, spec)
			if err != nil {
				return sysError(err)
			}
			rec, err := ed.Add(cmd.Context())
			if err != nil {
				return classify(err)
			}
			if err := ed.Set(args[1:]...); err != nil {
				return classify(err)
			}
			if err := ed.Save(cmd.Context()); err != nil {
				return classify(err)
			}

			out := cmd.OutOrStdout()
			if a.flags.jsonMode {
				saved, _ := ed.Current()
				return printJSON(out, recordJSON(spec, saved))
			}
			fmt.Fprintf(out, "Added %s/%d\n", spec.Name, rec.ID)
			return nil
		},
	}
}
