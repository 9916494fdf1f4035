package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/fmrd/internal/editor"
	"github.com/mesh-intelligence/fmrd/pkg/types"
)

func actionNames() []string {
	actions := editor.Actions()
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = string(a)
	}
	return names
}

func newOpenCmd(a *app) *cobra.Command {
	var scope editor.Scope
	cmd := &cobra.Command{
		Use:   "open <action>",
		Short: "Ask whether a data-entry workflow may be opened",
		Long: `Open asks the switchboard whether a workflow has the records it needs.
Goals, penalties, offenses and switches need a complete starting lineup for
the match and team given with --match and --team; substitutions need enough
substitutes. A blocked workflow prints the reason and exits 1.

Actions: ` + strings.Join(actionNames(), ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: actionNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			action, err := editor.ParseAction(args[0])
			if err != nil {
				return userError(err)
			}
			if editor.NeedsScope(action) && !scope.Valid() {
				return userError(fmt.Errorf("%w: %s needs --match and --team", types.ErrInvalidID, action))
			}

			b, err := a.attachBackend(cmd.Context())
			if err != nil {
				return err
			}
			defer b.Detach()
			g, err := a.newGate(b)
			if err != nil {
				return err
			}

			d, err := editor.NewSwitchboard(g, a.logger).Open(cmd.Context(), action, scope)
			if err != nil {
				return userError(err)
			}

			out := cmd.OutOrStdout()
			if a.flags.jsonMode {
				if err := printJSON(out, d); err != nil {
					return err
				}
			} else if d.Allowed {
				fmt.Fprintf(out, "%s: ready\n", d.Action)
			}
			if !d.Allowed {
				return userError(d.Err())
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&scope.MatchID, "match", 0, "match id for lineup-dependent actions")
	cmd.Flags().Int64Var(&scope.TeamID, "team", 0, "team id for lineup-dependent actions")
	return cmd
}
