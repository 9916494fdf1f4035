package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema DDL for the catalog tables. The DDL is portable between SQLite and
// PostgreSQL and idempotent, so it is applied on every Attach.
const (
	createCompetitions = `CREATE TABLE IF NOT EXISTS tbl_competitions (
    competition_id INTEGER PRIMARY KEY,
    comp_name TEXT NOT NULL
);`

	createConfederations = `CREATE TABLE IF NOT EXISTS tbl_confederations (
    confed_id INTEGER PRIMARY KEY,
    confed_name TEXT NOT NULL
);`

	createCountries = `CREATE TABLE IF NOT EXISTS tbl_countries (
    country_id INTEGER PRIMARY KEY,
    cty_name TEXT NOT NULL,
    confed_id INTEGER
);`

	createTimezones = `CREATE TABLE IF NOT EXISTS tbl_timezones (
    timezone_id INTEGER PRIMARY KEY,
    tz_name TEXT NOT NULL,
    tz_offset TEXT
);`

	createTeams = `CREATE TABLE IF NOT EXISTS tbl_teams (
    team_id INTEGER PRIMARY KEY,
    tm_name TEXT NOT NULL,
    country_id INTEGER
);`

	createVenues = `CREATE TABLE IF NOT EXISTS tbl_venues (
    venue_id INTEGER PRIMARY KEY,
    ven_name TEXT NOT NULL,
    team_id INTEGER,
    country_id INTEGER,
    timezone_id INTEGER
);`

	createVenueSurfaces = `CREATE TABLE IF NOT EXISTS tbl_venuesurfaces (
    venuesurface_id INTEGER PRIMARY KEY,
    vensurf_desc TEXT NOT NULL
);`

	createVenueHistory = `CREATE TABLE IF NOT EXISTS tbl_venuehistory (
    venuehist_id INTEGER PRIMARY KEY,
    venue_id INTEGER NOT NULL,
    venuesurface_id INTEGER,
    eff_date TEXT
);`

	createFieldNames = `CREATE TABLE IF NOT EXISTS tbl_fieldnames (
    posfield_id INTEGER PRIMARY KEY,
    posfield_name TEXT NOT NULL
);`

	createFlankNames = `CREATE TABLE IF NOT EXISTS tbl_flanknames (
    posflank_id INTEGER PRIMARY KEY,
    posflank_name TEXT NOT NULL
);`

	createPositions = `CREATE TABLE IF NOT EXISTS tbl_positions (
    position_id INTEGER PRIMARY KEY,
    posfield_id INTEGER NOT NULL,
    posflank_id INTEGER
);`

	createPlayers = `CREATE TABLE IF NOT EXISTS tbl_players (
    player_id INTEGER PRIMARY KEY,
    plr_firstname TEXT,
    plr_lastname TEXT NOT NULL,
    country_id INTEGER,
    position_id INTEGER
);`

	createManagers = `CREATE TABLE IF NOT EXISTS tbl_managers (
    manager_id INTEGER PRIMARY KEY,
    mgr_firstname TEXT,
    mgr_lastname TEXT NOT NULL,
    country_id INTEGER
);`

	createReferees = `CREATE TABLE IF NOT EXISTS tbl_referees (
    referee_id INTEGER PRIMARY KEY,
    ref_firstname TEXT,
    ref_lastname TEXT NOT NULL,
    country_id INTEGER
);`

	createCards = `CREATE TABLE IF NOT EXISTS tbl_cards (
    card_id INTEGER PRIMARY KEY,
    card_type TEXT NOT NULL
);`

	createFouls = `CREATE TABLE IF NOT EXISTS tbl_fouls (
    foul_id INTEGER PRIMARY KEY,
    foul_desc TEXT NOT NULL
);`

	createPenOutcomes = `CREATE TABLE IF NOT EXISTS tbl_penoutcomes (
    penoutcome_id INTEGER PRIMARY KEY,
    po_desc TEXT NOT NULL
);`

	createGoalEvents = `CREATE TABLE IF NOT EXISTS tbl_goalevents (
    gtetype_id INTEGER PRIMARY KEY,
    gte_desc TEXT NOT NULL
);`

	createGoalStrikes = `CREATE TABLE IF NOT EXISTS tbl_goalstrikes (
    gtstype_id INTEGER PRIMARY KEY,
    gts_desc TEXT NOT NULL
);`

	createRounds = `CREATE TABLE IF NOT EXISTS tbl_rounds (
    round_id INTEGER PRIMARY KEY,
    round_desc TEXT NOT NULL
);`

	createGroupRounds = `CREATE TABLE IF NOT EXISTS tbl_grouprounds (
    grpround_id INTEGER PRIMARY KEY,
    grpround_desc TEXT NOT NULL
);`

	createKnockoutRounds = `CREATE TABLE IF NOT EXISTS tbl_knockoutrounds (
    koround_id INTEGER PRIMARY KEY,
    koround_desc TEXT NOT NULL
);`

	createGroups = `CREATE TABLE IF NOT EXISTS tbl_groups (
    group_id INTEGER PRIMARY KEY,
    group_desc TEXT NOT NULL
);`

	createMatchdays = `CREATE TABLE IF NOT EXISTS tbl_matchdays (
    matchday_id INTEGER PRIMARY KEY,
    matchday_desc TEXT NOT NULL
);`

	createPhases = `CREATE TABLE IF NOT EXISTS tbl_phases (
    phase_id INTEGER PRIMARY KEY,
    phase_desc TEXT NOT NULL
);`

	createWeather = `CREATE TABLE IF NOT EXISTS tbl_weather (
    weather_id INTEGER PRIMARY KEY,
    wx_conditiondesc TEXT NOT NULL
);`
)

// Schema DDL for match and match-event tables. These are the child tables
// the referential guard counts.
const (
	createMatches = `CREATE TABLE IF NOT EXISTS tbl_matches (
    match_id INTEGER PRIMARY KEY,
    match_date TEXT,
    competition_id INTEGER,
    phase_id INTEGER,
    venue_id INTEGER,
    referee_id INTEGER
);`

	createLeagueMatches = `CREATE TABLE IF NOT EXISTS tbl_leaguematches (
    match_id INTEGER PRIMARY KEY,
    round_id INTEGER
);`

	createGroupMatches = `CREATE TABLE IF NOT EXISTS tbl_groupmatches (
    match_id INTEGER PRIMARY KEY,
    grpround_id INTEGER,
    group_id INTEGER,
    round_id INTEGER
);`

	createKnockoutMatches = `CREATE TABLE IF NOT EXISTS tbl_knockoutmatches (
    match_id INTEGER PRIMARY KEY,
    koround_id INTEGER,
    matchday_id INTEGER
);`

	createHomeTeams = `CREATE TABLE IF NOT EXISTS tbl_hometeams (
    match_id INTEGER PRIMARY KEY,
    team_id INTEGER NOT NULL
);`

	createAwayTeams = `CREATE TABLE IF NOT EXISTS tbl_awayteams (
    match_id INTEGER PRIMARY KEY,
    team_id INTEGER NOT NULL
);`

	createHomeManagers = `CREATE TABLE IF NOT EXISTS tbl_homemanagers (
    match_id INTEGER PRIMARY KEY,
    manager_id INTEGER NOT NULL
);`

	createAwayManagers = `CREATE TABLE IF NOT EXISTS tbl_awaymanagers (
    match_id INTEGER PRIMARY KEY,
    manager_id INTEGER NOT NULL
);`

	createLineups = `CREATE TABLE IF NOT EXISTS tbl_lineups (
    lineup_id INTEGER PRIMARY KEY,
    match_id INTEGER NOT NULL,
    team_id INTEGER NOT NULL,
    player_id INTEGER NOT NULL,
    position_id INTEGER,
    lp_starting BOOLEAN NOT NULL DEFAULT FALSE,
    lp_captain BOOLEAN NOT NULL DEFAULT FALSE
);`

	createGoals = `CREATE TABLE IF NOT EXISTS tbl_goals (
    goal_id INTEGER PRIMARY KEY,
    team_id INTEGER,
    lineup_id INTEGER,
    gtstype_id INTEGER,
    gtetype_id INTEGER,
    gls_time INTEGER
);`

	createPenalties = `CREATE TABLE IF NOT EXISTS tbl_penalties (
    penalty_id INTEGER PRIMARY KEY,
    lineup_id INTEGER,
    foul_id INTEGER,
    penoutcome_id INTEGER,
    pen_time INTEGER
);`

	createPenaltyShootouts = `CREATE TABLE IF NOT EXISTS tbl_penaltyshootouts (
    penshootout_id INTEGER PRIMARY KEY,
    lineup_id INTEGER,
    round_id INTEGER,
    penoutcome_id INTEGER
);`

	createOffenses = `CREATE TABLE IF NOT EXISTS tbl_offenses (
    offense_id INTEGER PRIMARY KEY,
    lineup_id INTEGER,
    foul_id INTEGER,
    card_id INTEGER,
    ofns_time INTEGER
);`

	createSubstitutions = `CREATE TABLE IF NOT EXISTS tbl_substitutions (
    subs_id INTEGER PRIMARY KEY,
    lineup_id_in INTEGER,
    lineup_id_out INTEGER,
    subs_time INTEGER
);`

	createSwitchPositions = `CREATE TABLE IF NOT EXISTS tbl_switchpositions (
    switch_id INTEGER PRIMARY KEY,
    lineup_id INTEGER,
    switchposition_id INTEGER,
    switch_time INTEGER
);`

	createWeatherKickoff = `CREATE TABLE IF NOT EXISTS tbl_weatherkickoff (
    match_id INTEGER PRIMARY KEY,
    weather_id INTEGER NOT NULL
);`

	createWeatherHalftime = `CREATE TABLE IF NOT EXISTS tbl_weatherhalftime (
    match_id INTEGER PRIMARY KEY,
    weather_id INTEGER NOT NULL
);`

	createWeatherFulltime = `CREATE TABLE IF NOT EXISTS tbl_weatherfulltime (
    match_id INTEGER PRIMARY KEY,
    weather_id INTEGER NOT NULL
);`
)

// Index DDL for the scoped lineup counts and the guard's key lookups.
const (
	idxLineupsMatchTeam = `CREATE INDEX IF NOT EXISTS idx_lineups_match_team ON tbl_lineups(match_id, team_id);`
	idxLineupsPlayer    = `CREATE INDEX IF NOT EXISTS idx_lineups_player ON tbl_lineups(player_id);`
	idxLineupsPosition  = `CREATE INDEX IF NOT EXISTS idx_lineups_position ON tbl_lineups(position_id);`
	idxPositionsField   = `CREATE INDEX IF NOT EXISTS idx_positions_field ON tbl_positions(posfield_id);`
	idxOffensesCard     = `CREATE INDEX IF NOT EXISTS idx_offenses_card ON tbl_offenses(card_id);`
	idxOffensesFoul     = `CREATE INDEX IF NOT EXISTS idx_offenses_foul ON tbl_offenses(foul_id);`
	idxGoalsTeam        = `CREATE INDEX IF NOT EXISTS idx_goals_team ON tbl_goals(team_id);`
	idxMatchesComp      = `CREATE INDEX IF NOT EXISTS idx_matches_competition ON tbl_matches(competition_id);`
)

// schemaDDL lists all CREATE TABLE statements.
var schemaDDL = []string{
	createCompetitions,
	createConfederations,
	createCountries,
	createTimezones,
	createTeams,
	createVenues,
	createVenueSurfaces,
	createVenueHistory,
	createFieldNames,
	createFlankNames,
	createPositions,
	createPlayers,
	createManagers,
	createReferees,
	createCards,
	createFouls,
	createPenOutcomes,
	createGoalEvents,
	createGoalStrikes,
	createRounds,
	createGroupRounds,
	createKnockoutRounds,
	createGroups,
	createMatchdays,
	createPhases,
	createWeather,
	createMatches,
	createLeagueMatches,
	createGroupMatches,
	createKnockoutMatches,
	createHomeTeams,
	createAwayTeams,
	createHomeManagers,
	createAwayManagers,
	createLineups,
	createGoals,
	createPenalties,
	createPenaltyShootouts,
	createOffenses,
	createSubstitutions,
	createSwitchPositions,
	createWeatherKickoff,
	createWeatherHalftime,
	createWeatherFulltime,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxLineupsMatchTeam,
	idxLineupsPlayer,
	idxLineupsPosition,
	idxPositionsField,
	idxOffensesCard,
	idxOffensesFoul,
	idxGoalsTeam,
	idxMatchesComp,
}

func applySchema(ctx context.Context, db *sql.DB) error {
	for _, ddl := range schemaDDL {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("applying index: %w", err)
		}
	}
	return nil
}
