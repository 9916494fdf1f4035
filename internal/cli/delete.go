package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/fmrd/internal/editor"
	"github.com/mesh-intelligence/fmrd/internal/gate"
	"github.com/mesh-intelligence/fmrd/pkg/types"
)

func newDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <entity> <id>",
		Short: "Delete a record that no other table references",
		Long: `Delete removes a record after checking every table that references the
entity. A referenced record is not deleted; the referencing tables are
named instead. Without --yes the deletion is confirmed on stdin.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			spec, err := lookupEntity(args[0])
			if err != nil {
				return err
			}
			id, err := parseID(args[1])
			if err != nil {
				return err
			}

			b, err := a.attachBackend(ctx)
			if err != nil {
				return err
			}
			defer b.Detach()
			guard, err := a.newGuard(b)
			if err != nil {
				return err
			}

			ed, err := editor.New(ctx, b, guard, spec)
			if err != nil {
				return sysError(err)
			}
			if _, err := ed.Seek(ctx, id); err != nil {
				return classify(err)
			}

			out := cmd.OutOrStdout()
			if !yes {
				fmt.Fprintf(out, "Delete %s/%d? [y/N] ", spec.Name, id)
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				switch strings.ToLower(strings.TrimSpace(answer)) {
				case "y", "yes":
				default:
					fmt.Fprintln(out, "Aborted")
					return nil
				}
			}

			if err := ed.Delete(ctx); err != nil {
				if errors.Is(err, types.ErrHasDependents) {
					return referencedError(ctx, guard, spec.Name, id, err)
				}
				return classify(err)
			}
			fmt.Fprintf(out, "Deleted %s/%d\n", spec.Name, id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// referencedError names the tables that block a deletion. When they cannot be
// listed the editor's error is returned as is.
func referencedError(ctx context.Context, guard *gate.Guard, entity string, id int64, cause error) error {
	blockers, err := guard.Blockers(ctx, entity, id)
	if err != nil || len(blockers) == 0 {
		return userError(cause)
	}
	return userError(fmt.Errorf("%w: %s/%d is referenced by %s",
		types.ErrHasDependents, entity, id, strings.Join(blockers, ", ")))
}
