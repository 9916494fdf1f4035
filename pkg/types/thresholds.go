package types

import (
	"errors"
	"fmt"
	"regexp"
)

// Gate configuration errors. These are programming or configuration
// defects and are returned from constructors, never from gate checks.
var (
	ErrThresholdMissing  = errors.New("threshold missing or not positive")
	ErrInvalidIdentifier = errors.New("invalid SQL identifier")
	ErrDesignationEmpty  = errors.New("goalkeeper designation must not be empty")
)

// Thresholds holds the minimum row counts the readiness gates compare against.
type Thresholds struct {
	Competitions        int64 `json:"competitions" yaml:"competitions"`
	Teams               int64 `json:"teams" yaml:"teams"`
	VenueHosts          int64 `json:"venue_hosts" yaml:"venue_hosts"`
	Managers            int64 `json:"managers" yaml:"managers"`
	Referees            int64 `json:"referees" yaml:"referees"`
	Starters            int64 `json:"starters" yaml:"starters"`
	StartingCaptains    int64 `json:"starting_captains" yaml:"starting_captains"`
	StartingGoalkeepers int64 `json:"starting_goalkeepers" yaml:"starting_goalkeepers"`
	Substitutes         int64 `json:"substitutes" yaml:"substitutes"`
}

// DefaultThresholds returns the minimums used by the FMRD data entry tool.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Competitions:        1,
		Teams:               2,
		VenueHosts:          1,
		Managers:            2,
		Referees:            1,
		Starters:            11,
		StartingCaptains:    1,
		StartingGoalkeepers: 1,
		Substitutes:         3,
	}
}

// Validate reports the first threshold that is zero or negative.
func (t Thresholds) Validate() error {
	checks := []struct {
		name  string
		value int64
	}{
		{"competitions", t.Competitions},
		{"teams", t.Teams},
		{"venue_hosts", t.VenueHosts},
		{"managers", t.Managers},
		{"referees", t.Referees},
		{"starters", t.Starters},
		{"starting_captains", t.StartingCaptains},
		{"starting_goalkeepers", t.StartingGoalkeepers},
		{"substitutes", t.Substitutes},
	}
	for _, c := range checks {
		if c.value <= 0 {
			return fmt.Errorf("%w: %s", ErrThresholdMissing, c.name)
		}
	}
	return nil
}

// Tables names the catalog tables counted by the readiness gates.
// Venue hosts are teams in the FMRD schema, so both default to tbl_teams.
type Tables struct {
	Competitions string `json:"competitions" yaml:"competitions"`
	Teams        string `json:"teams" yaml:"teams"`
	VenueHosts   string `json:"venue_hosts" yaml:"venue_hosts"`
	Managers     string `json:"managers" yaml:"managers"`
	Referees     string `json:"referees" yaml:"referees"`
	Lineups      string `json:"lineups" yaml:"lineups"`
}

// DefaultTables returns the FMRD schema table names.
func DefaultTables() Tables {
	return Tables{
		Competitions: TableCompetitions,
		Teams:        TableTeams,
		VenueHosts:   TableTeams,
		Managers:     TableManagers,
		Referees:     TableReferees,
		Lineups:      TableLineups,
	}
}

// Validate checks that every table name is a plain SQL identifier.
func (t Tables) Validate() error {
	for _, name := range []string{t.Competitions, t.Teams, t.VenueHosts, t.Managers, t.Referees, t.Lineups} {
		if !ValidIdentifier(name) {
			return fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
		}
	}
	return nil
}

// DefaultGoalkeeperDesignation is the field name that marks goalkeeper
// positions in the position catalog.
const DefaultGoalkeeperDesignation = "Goalkeeper"

// GateConfig bundles everything the readiness gate needs besides the executor.
type GateConfig struct {
	Thresholds            Thresholds `json:"thresholds" yaml:"thresholds"`
	Tables                Tables     `json:"tables" yaml:"tables"`
	GoalkeeperDesignation string     `json:"goalkeeper_designation" yaml:"goalkeeper_designation"`
}

// DefaultGateConfig returns the default thresholds, tables, and designation.
func DefaultGateConfig() GateConfig {
	return GateConfig{
		Thresholds:            DefaultThresholds(),
		Tables:                DefaultTables(),
		GoalkeeperDesignation: DefaultGoalkeeperDesignation,
	}
}

// Validate checks thresholds, tables, and the goalkeeper designation.
func (c GateConfig) Validate() error {
	if err := c.Thresholds.Validate(); err != nil {
		return err
	}
	if err := c.Tables.Validate(); err != nil {
		return err
	}
	if c.GoalkeeperDesignation == "" {
		return ErrDesignationEmpty
	}
	return nil
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdentifier reports whether name can be spliced into SQL text as a
// table or column name.
func ValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}
