package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLineupCmd(a *app) *cobra.Command {
	var matchID, teamID int64
	cmd := &cobra.Command{
		Use:   "lineup --match N --team N",
		Short: "Show lineup progress for one match and team",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if matchID <= 0 || teamID <= 0 {
				return userError(fmt.Errorf("--match and --team must be positive"))
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

			p := g.LineupProgress(cmd.Context(), matchID, teamID)
			out := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return printJSON(out, p)
			}
			fmt.Fprintf(out, "match %d team %d\n", p.MatchID, p.TeamID)
			fmt.Fprintf(out, "  starters     %d/%d\n", p.Starters, p.MinStarters)
			fmt.Fprintf(out, "  captains     %d/%d\n", p.Captains, p.MinCaptains)
			fmt.Fprintf(out, "  goalkeepers  %d/%d\n", p.Goalkeepers, p.MinGoalkeepers)
			fmt.Fprintf(out, "  substitutes  %d/%d\n", p.Substitutes, p.MinSubstitutes)
			fmt.Fprintf(out, "lineup ready:        %s\n", yesNo(p.LineupReady))
			fmt.Fprintf(out, "substitutions ready: %s\n", yesNo(p.SubstitutesReady))
			return nil
		},
	}
	cmd.Flags().Int64Var(&matchID, "match", 0, "match id")
	cmd.Flags().Int64Var(&teamID, "team", 0, "team id")
	_ = cmd.MarkFlagRequired("match")
	_ = cmd.MarkFlagRequired("team")
	return cmd
}
