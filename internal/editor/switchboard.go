package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
)

// ErrUnknownAction is returned for an action the switchboard does not know.
var ErrUnknownAction = errors.New("unknown switchboard action")

// Action names a data-entry workflow.
type Action string

// Workflow actions.
const (
	ActionCompetitions  Action = "competitions"
	ActionTeams         Action = "teams"
	ActionPlayers       Action = "players"
	ActionManagers      Action = "managers"
	ActionReferees      Action = "referees"
	ActionVenues        Action = "venues"
	ActionMatches       Action = "matches"
	ActionGoals         Action = "goals"
	ActionPenalties     Action = "penalties"
	ActionOffenses      Action = "offenses"
	ActionSwitches      Action = "switches"
	ActionSubstitutions Action = "substitutions"
)

// Readiness is the subset of the readiness gate the switchboard consults.
type Readiness interface {
	HasMinimumVenueHosts(ctx context.Context) bool
	HasMinimumMatchCriteria(ctx context.Context) bool
	HasMinimumLineup(ctx context.Context, matchID, teamID int64) bool
	HasMinimumSubstitutes(ctx context.Context, matchID, teamID int64) bool
}

// Scope selects the match and team a lineup-dependent action works on.
type Scope struct {
	MatchID int64 `json:"match_id"`
	TeamID  int64 `json:"team_id"`
}

// Valid reports whether both ids are set.
func (s Scope) Valid() bool {
	return s.MatchID > 0 && s.TeamID > 0
}

// Decision is the outcome of asking to open a workflow.
type Decision struct {
	Action  Action `json:"action"`
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// Err converts a refused decision to an error.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return fmt.Errorf("%s: %s", d.Action, d.Reason)
}

type check func(ctx context.Context, r Readiness, s Scope) Decision

func allow(context.Context, Readiness, Scope) Decision {
	return Decision{Allowed: true}
}

func requireVenueHosts(ctx context.Context, r Readiness, _ Scope) Decision {
	if !r.HasMinimumVenueHosts(ctx) {
		return Decision{Reason: "enter at least one team before entering venues"}
	}
	return Decision{Allowed: true}
}

func requireMatchCriteria(ctx context.Context, r Readiness, _ Scope) Decision {
	if !r.HasMinimumMatchCriteria(ctx) {
		return Decision{Reason: "enter competitions, teams, venues, managers and referees before entering matches"}
	}
	return Decision{Allowed: true}
}

func requireLineup(ctx context.Context, r Readiness, s Scope) Decision {
	if !s.Valid() {
		return Decision{Reason: "a match and team must be selected"}
	}
	if !r.HasMinimumLineup(ctx, s.MatchID, s.TeamID) {
		return Decision{Reason: fmt.Sprintf(
			"complete the starting lineup for match %d team %d first (starters, a captain and a goalkeeper)",
			s.MatchID, s.TeamID)}
	}
	return Decision{Allowed: true}
}

func requireSubstitutes(ctx context.Context, r Readiness, s Scope) Decision {
	if !s.Valid() {
		return Decision{Reason: "a match and team must be selected"}
	}
	if !r.HasMinimumSubstitutes(ctx, s.MatchID, s.TeamID) {
		return Decision{Reason: fmt.Sprintf(
			"enter the substitutes for match %d team %d before entering substitutions",
			s.MatchID, s.TeamID)}
	}
	return Decision{Allowed: true}
}

var checks = map[Action]check{
	ActionCompetitions:  allow,
	ActionTeams:         allow,
	ActionPlayers:       allow,
	ActionManagers:      allow,
	ActionReferees:      allow,
	ActionVenues:        requireVenueHosts,
	ActionMatches:       requireMatchCriteria,
	ActionGoals:         requireLineup,
	ActionPenalties:     requireLineup,
	ActionOffenses:      requireLineup,
	ActionSwitches:      requireLineup,
	ActionSubstitutions: requireSubstitutes,
}

// Actions returns every known action in sorted order.
func Actions() []Action {
	out := make([]Action, 0, len(checks))
	for a := range checks {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseAction returns the action named s.
func ParseAction(s string) (Action, error) {
	a := Action(s)
	if _, ok := checks[a]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
	return a, nil
}

// NeedsScope reports whether the action is checked against a match and team.
func NeedsScope(a Action) bool {
	switch a {
	case ActionGoals, ActionPenalties, ActionOffenses, ActionSwitches, ActionSubstitutions:
		return true
	}
	return false
}

// Switchboard maps workflow actions to readiness checks.
type Switchboard struct {
	gate   Readiness
	logger *slog.Logger
}

// NewSwitchboard returns a Switchboard over gate.
func NewSwitchboard(gate Readiness, logger *slog.Logger) *Switchboard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Switchboard{gate: gate, logger: logger}
}

// Open decides whether the workflow may be opened. Every call re-runs the
// readiness checks.
func (s *Switchboard) Open(ctx context.Context, action Action, scope Scope) (Decision, error) {
	c, ok := checks[action]
	if !ok {
		return Decision{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	d := c(ctx, s.gate, scope)
	d.Action = action
	if !d.Allowed {
		s.logger.Info("workflow blocked",
			slog.String("action", string(action)),
			slog.String("reason", d.Reason),
		)
	}
	return d, nil
}
