package types

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// Entity registry errors.
var (
	ErrEntityNotFound  = errors.New("entity not found in registry")
	ErrEntityName      = errors.New("entity name must not be empty")
	ErrEntityDuplicate = errors.New("entity registered twice")
	ErrEntityRequired  = errors.New("required column is not an editable column")
)

// EntitySpec describes one editable, deletable FMRD entity: its table, its
// id and editable columns, and the child tables that reference it through
// KeyField. The record editor and the referential guard are both driven by
// these records.
type EntitySpec struct {
	Name     string   `json:"name" yaml:"name"`
	Table    string   `json:"table" yaml:"table"`
	IDColumn string   `json:"id_column" yaml:"id_column"`
	Columns  []string `json:"columns" yaml:"columns"`

	// UniqueColumn is checked for duplicates before a save. Empty disables
	// the check.
	UniqueColumn string `json:"unique_column,omitempty" yaml:"unique_column,omitempty"`

	// Required lists the columns that must not be blank on save. The unique
	// column is always required and need not be repeated here.
	Required []string `json:"required,omitempty" yaml:"required,omitempty"`

	ChildTables []string `json:"child_tables" yaml:"child_tables"`
	KeyField    string   `json:"key_field" yaml:"key_field"`

	// MinID is the id assigned to the first record of an empty table.
	MinID int64 `json:"min_id" yaml:"min_id"`
}

// Validate checks that every table and column name is a plain identifier and
// that a non-empty child table list comes with a key field.
func (s EntitySpec) Validate() error {
	if s.Name == "" {
		return ErrEntityName
	}
	names := []string{s.Table, s.IDColumn}
	names = append(names, s.Columns...)
	names = append(names, s.ChildTables...)
	if s.UniqueColumn != "" {
		names = append(names, s.UniqueColumn)
	}
	names = append(names, s.Required...)
	if len(s.ChildTables) > 0 || s.KeyField != "" {
		names = append(names, s.KeyField)
	}
	for _, n := range names {
		if !ValidIdentifier(n) {
			return fmt.Errorf("entity %s: %w: %q", s.Name, ErrInvalidIdentifier, n)
		}
	}
	for _, r := range s.RequiredColumns() {
		if !slices.Contains(s.Columns, r) {
			return fmt.Errorf("entity %s: %w: %q", s.Name, ErrEntityRequired, r)
		}
	}
	if s.MinID <= 0 {
		return fmt.Errorf("entity %s: %w: min_id", s.Name, ErrInvalidID)
	}
	return nil
}

// RequiredColumns returns the unique column followed by Required, without
// repeats.
func (s EntitySpec) RequiredColumns() []string {
	var cols []string
	if s.UniqueColumn != "" {
		cols = append(cols, s.UniqueColumn)
	}
	for _, r := range s.Required {
		if !slices.Contains(cols, r) {
			cols = append(cols, r)
		}
	}
	return cols
}

// Registry is the static mapping from entity name to EntitySpec.
type Registry []EntitySpec

// Lookup returns the spec for name or ErrEntityNotFound.
func (r Registry) Lookup(name string) (EntitySpec, error) {
	for _, s := range r {
		if s.Name == name {
			return s, nil
		}
	}
	return EntitySpec{}, fmt.Errorf("%w: %q", ErrEntityNotFound, name)
}

// Names returns the registered entity names in sorted order.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for _, s := range r {
		names = append(names, s.Name)
	}
	sort.Strings(names)
	return names
}

// Validate checks every spec and rejects duplicate names.
func (r Registry) Validate() error {
	seen := make(map[string]bool, len(r))
	for _, s := range r {
		if err := s.Validate(); err != nil {
			return err
		}
		if seen[s.Name] {
			return fmt.Errorf("%w: %q", ErrEntityDuplicate, s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

// DefaultRegistry returns the FMRD entity mapping.
func DefaultRegistry() Registry {
	return Registry{
		// Primary entities.
		{
			Name: "competitions", Table: TableCompetitions, IDColumn: "competition_id",
			Columns: []string{"comp_name"}, UniqueColumn: "comp_name",
			ChildTables: []string{TableMatches}, KeyField: "competition_id", MinID: 100,
		},
		{
			Name: "teams", Table: TableTeams, IDColumn: "team_id",
			Columns: []string{"tm_name", "country_id"}, UniqueColumn: "tm_name",
			ChildTables: []string{TableVenues, TableHomeTeams, TableAwayTeams, TableLineups, TableGoals},
			KeyField:    "team_id", MinID: 1000,
		},
		{
			Name: "venues", Table: TableVenues, IDColumn: "venue_id",
			Columns: []string{"ven_name", "team_id", "country_id", "timezone_id"}, UniqueColumn: "ven_name",
			ChildTables: []string{TableMatches, TableVenueHistory}, KeyField: "venue_id", MinID: 1000,
		},
		{
			Name: "players", Table: TablePlayers, IDColumn: "player_id",
			Columns:     []string{"plr_firstname", "plr_lastname", "country_id", "position_id"},
			Required:    []string{"plr_lastname"},
			ChildTables: []string{TableLineups}, KeyField: "player_id", MinID: 100000,
		},
		{
			Name: "managers", Table: TableManagers, IDColumn: "manager_id",
			Columns:     []string{"mgr_firstname", "mgr_lastname", "country_id"},
			Required:    []string{"mgr_lastname"},
			ChildTables: []string{TableHomeManagers, TableAwayManagers}, KeyField: "manager_id", MinID: 1000,
		},
		{
			Name: "referees", Table: TableReferees, IDColumn: "referee_id",
			Columns:     []string{"ref_firstname", "ref_lastname", "country_id"},
			Required:    []string{"ref_lastname"},
			ChildTables: []string{TableMatches}, KeyField: "referee_id", MinID: 1000,
		},

		// Setup catalogs.
		{
			Name: "cards", Table: TableCards, IDColumn: "card_id",
			Columns: []string{"card_type"}, UniqueColumn: "card_type",
			ChildTables: []string{TableOffenses}, KeyField: "card_id", MinID: 1,
		},
		{
			Name: "fouls", Table: TableFouls, IDColumn: "foul_id",
			Columns: []string{"foul_desc"}, UniqueColumn: "foul_desc",
			ChildTables: []string{TablePenalties, TableOffenses}, KeyField: "foul_id", MinID: 1,
		},
		{
			Name: "groups", Table: TableGroups, IDColumn: "group_id",
			Columns: []string{"group_desc"}, UniqueColumn: "group_desc",
			ChildTables: []string{TableGroupMatches}, KeyField: "group_id", MinID: 1,
		},
		{
			Name: "matchdays", Table: TableMatchdays, IDColumn: "matchday_id",
			Columns: []string{"matchday_desc"}, UniqueColumn: "matchday_desc",
			ChildTables: []string{TableKnockoutMatches}, KeyField: "matchday_id", MinID: 1,
		},
		{
			Name: "grouprounds", Table: TableGroupRounds, IDColumn: "grpround_id",
			Columns: []string{"grpround_desc"}, UniqueColumn: "grpround_desc",
			ChildTables: []string{TableGroupMatches}, KeyField: "grpround_id", MinID: 1,
		},
		{
			Name: "knockoutrounds", Table: TableKnockoutRounds, IDColumn: "koround_id",
			Columns: []string{"koround_desc"}, UniqueColumn: "koround_desc",
			ChildTables: []string{TableKnockoutMatches}, KeyField: "koround_id", MinID: 1,
		},
		{
			Name: "phases", Table: TablePhases, IDColumn: "phase_id",
			Columns: []string{"phase_desc"}, UniqueColumn: "phase_desc",
			ChildTables: []string{TableMatches}, KeyField: "phase_id", MinID: 1,
		},
		{
			Name: "penoutcomes", Table: TablePenOutcomes, IDColumn: "penoutcome_id",
			Columns: []string{"po_desc"}, UniqueColumn: "po_desc",
			ChildTables: []string{TablePenalties, TablePenaltyShootouts}, KeyField: "penoutcome_id", MinID: 1,
		},
		{
			Name: "goalevents", Table: TableGoalEvents, IDColumn: "gtetype_id",
			Columns: []string{"gte_desc"}, UniqueColumn: "gte_desc",
			ChildTables: []string{TableGoals}, KeyField: "gtetype_id", MinID: 1,
		},
		{
			Name: "goalstrikes", Table: TableGoalStrikes, IDColumn: "gtstype_id",
			Columns: []string{"gts_desc"}, UniqueColumn: "gts_desc",
			ChildTables: []string{TableGoals}, KeyField: "gtstype_id", MinID: 1,
		},
		{
			Name: "fieldnames", Table: TableFieldNames, IDColumn: "posfield_id",
			Columns: []string{"posfield_name"}, UniqueColumn: "posfield_name",
			ChildTables: []string{TablePositions}, KeyField: "posfield_id", MinID: 1,
		},
		{
			Name: "flanknames", Table: TableFlankNames, IDColumn: "posflank_id",
			Columns: []string{"posflank_name"}, UniqueColumn: "posflank_name",
			ChildTables: []string{TablePositions}, KeyField: "posflank_id", MinID: 1,
		},
		{
			Name: "positions", Table: TablePositions, IDColumn: "position_id",
			Columns:     []string{"posfield_id", "posflank_id"},
			Required:    []string{"posfield_id"},
			ChildTables: []string{TablePlayers, TableLineups}, KeyField: "position_id", MinID: 1,
		},
		{
			Name: "countries", Table: TableCountries, IDColumn: "country_id",
			Columns: []string{"cty_name", "confed_id"}, UniqueColumn: "cty_name",
			ChildTables: []string{TablePlayers, TableReferees, TableManagers, TableVenues},
			KeyField:    "country_id", MinID: 100,
		},
		{
			Name: "confederations", Table: TableConfederations, IDColumn: "confed_id",
			Columns: []string{"confed_name"}, UniqueColumn: "confed_name",
			ChildTables: []string{TableCountries}, KeyField: "confed_id", MinID: 10,
		},
		{
			Name: "timezones", Table: TableTimezones, IDColumn: "timezone_id",
			Columns: []string{"tz_name", "tz_offset"}, UniqueColumn: "tz_name",
			ChildTables: []string{TableVenues}, KeyField: "timezone_id", MinID: 1,
		},
		{
			Name: "surfaces", Table: TableVenueSurfaces, IDColumn: "venuesurface_id",
			Columns: []string{"vensurf_desc"}, UniqueColumn: "vensurf_desc",
			ChildTables: []string{TableVenueHistory}, KeyField: "venuesurface_id", MinID: 1,
		},
		{
			Name: "rounds", Table: TableRounds, IDColumn: "round_id",
			Columns: []string{"round_desc"}, UniqueColumn: "round_desc",
			ChildTables: []string{TableLeagueMatches, TableGroupMatches, TablePenaltyShootouts},
			KeyField:    "round_id", MinID: 1,
		},
		{
			Name: "weather", Table: TableWeather, IDColumn: "weather_id",
			Columns: []string{"wx_conditiondesc"}, UniqueColumn: "wx_conditiondesc",
			ChildTables: []string{TableWeatherKickoff, TableWeatherHalftime, TableWeatherFulltime},
			KeyField:    "weather_id", MinID: 1,
		},
	}
}
