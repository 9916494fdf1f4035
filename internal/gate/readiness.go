package gate

import (
	"context"
	"log/slog"

	"github.com/mesh-intelligence/fmrd/pkg/types"
)

// Gate answers the readiness questions that decide whether a workflow stage
// may be opened. Each answer is computed from fresh counts.
type Gate struct {
	exec    Executor
	catalog Catalog
	cfg     types.GateConfig
	logger  *slog.Logger
}

// LineupProgress holds the raw scoped lineup counts next to their minimums.
type LineupProgress struct {
	MatchID          int64 `json:"match_id"`
	TeamID           int64 `json:"team_id"`
	Starters         int64 `json:"starters"`
	MinStarters      int64 `json:"min_starters"`
	Captains         int64 `json:"captains"`
	MinCaptains      int64 `json:"min_captains"`
	Goalkeepers      int64 `json:"goalkeepers"`
	MinGoalkeepers   int64 `json:"min_goalkeepers"`
	Substitutes      int64 `json:"substitutes"`
	MinSubstitutes   int64 `json:"min_substitutes"`
	LineupReady      bool  `json:"lineup_ready"`
	SubstitutesReady bool  `json:"substitutes_ready"`
}

// New returns a Gate over exec. The configuration is validated here: a
// missing threshold or a malformed table name is an error, not a zero.
// catalog may be nil, in which case no goalkeeper is ever found.
func New(exec Executor, catalog Catalog, cfg types.GateConfig, logger *slog.Logger) (*Gate, error) {
	if exec == nil {
		return nil, ErrNoExecutor
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{exec: exec, catalog: catalog, cfg: cfg, logger: logger}, nil
}

// Config returns the configuration the gate was built with.
func (g *Gate) Config() types.GateConfig {
	return g.cfg
}

// CountTableRows counts the rows of table matching f. Any failure reads as 0.
func (g *Gate) CountTableRows(ctx context.Context, table string, f Filter) int64 {
	n, err := countRows(ctx, g.exec, table, f)
	if err != nil {
		g.logger.Warn("count failed, treating as zero",
			slog.String("table", table),
			slog.Any("error", err),
		)
		return 0
	}
	return n
}

// MeetsMinimum reports whether table holds at least threshold rows matching f.
func (g *Gate) MeetsMinimum(ctx context.Context, table string, f Filter, threshold int64) bool {
	return g.CountTableRows(ctx, table, f) >= threshold
}

// HasMinimumCompetitions reports whether enough competitions exist.
func (g *Gate) HasMinimumCompetitions(ctx context.Context) bool {
	return g.MeetsMinimum(ctx, g.cfg.Tables.Competitions, Filter{}, g.cfg.Thresholds.Competitions)
}

// HasMinimumTeams reports whether enough teams exist.
func (g *Gate) HasMinimumTeams(ctx context.Context) bool {
	return g.MeetsMinimum(ctx, g.cfg.Tables.Teams, Filter{}, g.cfg.Thresholds.Teams)
}

// HasMinimumVenueHosts reports whether enough venue hosts exist.
func (g *Gate) HasMinimumVenueHosts(ctx context.Context) bool {
	return g.MeetsMinimum(ctx, g.cfg.Tables.VenueHosts, Filter{}, g.cfg.Thresholds.VenueHosts)
}

// HasMinimumManagers reports whether enough managers exist.
func (g *Gate) HasMinimumManagers(ctx context.Context) bool {
	return g.MeetsMinimum(ctx, g.cfg.Tables.Managers, Filter{}, g.cfg.Thresholds.Managers)
}

// HasMinimumReferees reports whether enough referees exist.
func (g *Gate) HasMinimumReferees(ctx context.Context) bool {
	return g.MeetsMinimum(ctx, g.cfg.Tables.Referees, Filter{}, g.cfg.Thresholds.Referees)
}

// HasMinimumMatchCriteria reports whether match entry may begin. Checks run
// competitions first, then venue hosts and teams, then managers and referees,
// and stop at the first failure.
func (g *Gate) HasMinimumMatchCriteria(ctx context.Context) bool {
	if !g.HasMinimumCompetitions(ctx) {
		return false
	}
	if !g.HasMinimumVenueHosts(ctx) || !g.HasMinimumTeams(ctx) {
		return false
	}
	return g.HasMinimumManagers(ctx) && g.HasMinimumReferees(ctx)
}

func scope(matchID, teamID int64) Filter {
	return All(Eq(types.ColMatchID, matchID), Eq(types.ColTeamID, teamID))
}

// CountStarters counts starting lineup entries for the match and team.
func (g *Gate) CountStarters(ctx context.Context, matchID, teamID int64) int64 {
	return g.CountTableRows(ctx, g.cfg.Tables.Lineups,
		All(scope(matchID, teamID), IsTrue(types.ColStarting)))
}

// CountSubstitutes counts bench lineup entries for the match and team.
func (g *Gate) CountSubstitutes(ctx context.Context, matchID, teamID int64) int64 {
	return g.CountTableRows(ctx, g.cfg.Tables.Lineups,
		All(scope(matchID, teamID), IsFalse(types.ColStarting)))
}

// CountCaptains counts captains among the starters for the match and team.
func (g *Gate) CountCaptains(ctx context.Context, matchID, teamID int64) int64 {
	return g.CountTableRows(ctx, g.cfg.Tables.Lineups,
		All(scope(matchID, teamID), IsTrue(types.ColStarting), IsTrue(types.ColCaptain)))
}

// CountGoalkeepers counts goalkeepers among the starters for the match and
// team.
func (g *Gate) CountGoalkeepers(ctx context.Context, matchID, teamID int64) int64 {
	return g.countGoalkeepers(ctx, scope(matchID, teamID))
}

func (g *Gate) countGoalkeepers(ctx context.Context, f Filter) int64 {
	ids, ok := g.goalkeeperPositions(ctx)
	if !ok || len(ids) == 0 {
		return 0
	}
	return g.CountTableRows(ctx, g.cfg.Tables.Lineups,
		All(f, IsTrue(types.ColStarting), In(types.ColPositionID, ids)))
}

// goalkeeperPositions resolves the configured designation to position ids.
// The catalog is read on every call so reclassified positions take effect
// immediately.
func (g *Gate) goalkeeperPositions(ctx context.Context) ([]int64, bool) {
	if g.catalog == nil {
		return nil, false
	}
	ids, err := g.catalog.PositionIDs(ctx, g.cfg.GoalkeeperDesignation)
	if err != nil {
		g.logger.Warn("goalkeeper lookup failed, treating as zero",
			slog.String("designation", g.cfg.GoalkeeperDesignation),
			slog.Any("error", err),
		)
		return nil, false
	}
	return ids, true
}

// HasMinimumLineup reports whether the lineup for the match and team is
// minimally complete: enough starters, a starting captain, and a starting
// goalkeeper.
func (g *Gate) HasMinimumLineup(ctx context.Context, matchID, teamID int64) bool {
	th := g.cfg.Thresholds
	return g.CountStarters(ctx, matchID, teamID) >= th.Starters &&
		g.CountCaptains(ctx, matchID, teamID) >= th.StartingCaptains &&
		g.CountGoalkeepers(ctx, matchID, teamID) >= th.StartingGoalkeepers
}

// HasMinimumSubstitutes reports whether enough bench entries exist for the
// match and team to record substitutions.
func (g *Gate) HasMinimumSubstitutes(ctx context.Context, matchID, teamID int64) bool {
	return g.CountSubstitutes(ctx, matchID, teamID) >= g.cfg.Thresholds.Substitutes
}

// AnyLineupMeetsMinimum applies the lineup minimums to the whole lineup table
// with no match or team scoping. It is a diagnostic only and says nothing
// about whether a particular match is ready.
func (g *Gate) AnyLineupMeetsMinimum(ctx context.Context) bool {
	th := g.cfg.Thresholds
	lineups := g.cfg.Tables.Lineups
	return g.CountTableRows(ctx, lineups, IsTrue(types.ColStarting)) >= th.Starters &&
		g.CountTableRows(ctx, lineups, All(IsTrue(types.ColStarting), IsTrue(types.ColCaptain))) >= th.StartingCaptains &&
		g.countGoalkeepers(ctx, Filter{}) >= th.StartingGoalkeepers
}

// LineupProgress returns every scoped lineup count with its minimum.
func (g *Gate) LineupProgress(ctx context.Context, matchID, teamID int64) LineupProgress {
	th := g.cfg.Thresholds
	p := LineupProgress{
		MatchID:        matchID,
		TeamID:         teamID,
		Starters:       g.CountStarters(ctx, matchID, teamID),
		MinStarters:    th.Starters,
		Captains:       g.CountCaptains(ctx, matchID, teamID),
		MinCaptains:    th.StartingCaptains,
		Goalkeepers:    g.CountGoalkeepers(ctx, matchID, teamID),
		MinGoalkeepers: th.StartingGoalkeepers,
		Substitutes:    g.CountSubstitutes(ctx, matchID, teamID),
		MinSubstitutes: th.Substitutes,
	}
	p.LineupReady = p.Starters >= p.MinStarters && p.Captains >= p.MinCaptains && p.Goalkeepers >= p.MinGoalkeepers
	p.SubstitutesReady = p.Substitutes >= p.MinSubstitutes
	return p
}
