package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/fmrd/internal/gate"
	"github.com/mesh-intelligence/fmrd/pkg/types"
)

// checkResult is one row of the readiness table. Count is nil for composite
// checks.
type checkResult struct {
	Name    string `json:"name"`
	Ready   bool   `json:"ready"`
	Count   *int64 `json:"count,omitempty"`
	Minimum int64  `json:"minimum,omitempty"`
}

type checkFunc func(ctx context.Context, g *gate.Gate) checkResult

func countCheck(name string, table func(types.Tables) string, minimum func(types.Thresholds) int64) checkFunc {
	return func(ctx context.Context, g *gate.Gate) checkResult {
		cfg := g.Config()
		n := g.CountTableRows(ctx, table(cfg.Tables), gate.Filter{})
		want := minimum(cfg.Thresholds)
		return checkResult{Name: name, Ready: n >= want, Count: &n, Minimum: want}
	}
}

// checkOrder lists the checks in the order the table prints them.
var checkOrder = []string{"competitions", "teams", "venue-hosts", "managers", "referees", "criteria", "lineups-any"}

var checks = map[string]checkFunc{
	"competitions": countCheck("competitions",
		func(t types.Tables) string { return t.Competitions },
		func(t types.Thresholds) int64 { return t.Competitions }),
	"teams": countCheck("teams",
		func(t types.Tables) string { return t.Teams },
		func(t types.Thresholds) int64 { return t.Teams }),
	"venue-hosts": countCheck("venue-hosts",
		func(t types.Tables) string { return t.VenueHosts },
		func(t types.Thresholds) int64 { return t.VenueHosts }),
	"managers": countCheck("managers",
		func(t types.Tables) string { return t.Managers },
		func(t types.Thresholds) int64 { return t.Managers }),
	"referees": countCheck("referees",
		func(t types.Tables) string { return t.Referees },
		func(t types.Thresholds) int64 { return t.Referees }),
	"criteria": func(ctx context.Context, g *gate.Gate) checkResult {
		return checkResult{Name: "criteria", Ready: g.HasMinimumMatchCriteria(ctx)}
	},
	"lineups-any": func(ctx context.Context, g *gate.Gate) checkResult {
		return checkResult{Name: "lineups-any", Ready: g.AnyLineupMeetsMinimum(ctx)}
	},
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [criteria|competitions|teams|venue-hosts|managers|referees|lineups-any]",
		Short: "Report whether the catalogs meet the readiness minimums",
		Long: `Check counts the catalog tables and compares them with the configured
minimums. With no argument every check is printed. With one argument only
that check runs, and the command exits 1 when it is not ready.

lineups-any applies the lineup minimums to the whole lineup table without
match or team scoping. It is a diagnostic; use "fmrd lineup" for a match.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: checkOrder,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := checkOrder
			if len(args) == 1 {
				if _, ok := checks[args[0]]; !ok {
					return userError(fmt.Errorf("unknown check %q", args[0]))
				}
				names = args
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

			results := make([]checkResult, 0, len(names))
			for _, name := range names {
				results = append(results, checks[name](cmd.Context(), g))
			}

			if err := printChecks(cmd, a.flags.jsonMode, results); err != nil {
				return err
			}
			if len(args) == 1 && !results[0].Ready {
				return userError(fmt.Errorf("%s: not ready", args[0]))
			}
			return nil
		},
	}
}

func printChecks(cmd *cobra.Command, jsonMode bool, results []checkResult) error {
	out := cmd.OutOrStdout()
	if jsonMode {
		return printJSON(out, results)
	}
	for _, r := range results {
		if r.Count != nil {
			fmt.Fprintf(out, "%-14s %-4s %d/%d\n", r.Name, yesNo(r.Ready), *r.Count, r.Minimum)
			continue
		}
		fmt.Fprintf(out, "%-14s %s\n", r.Name, yesNo(r.Ready))
	}
	return nil
}
