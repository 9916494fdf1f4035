package types

// FMRD schema table names referenced by the gates and the entity registry.
const (
	TableCompetitions   = "tbl_competitions"
	TableTeams          = "tbl_teams"
	TableVenues         = "tbl_venues"
	TablePlayers        = "tbl_players"
	TableManagers       = "tbl_managers"
	TableReferees       = "tbl_referees"
	TableLineups        = "tbl_lineups"
	TableCards          = "tbl_cards"
	TableFouls          = "tbl_fouls"
	TableGroups         = "tbl_groups"
	TableMatchdays      = "tbl_matchdays"
	TableGroupRounds    = "tbl_grouprounds"
	TableKnockoutRounds = "tbl_knockoutrounds"
	TablePhases         = "tbl_phases"
	TablePenOutcomes    = "tbl_penoutcomes"
	TableGoalEvents     = "tbl_goalevents"
	TableGoalStrikes    = "tbl_goalstrikes"
	TableFieldNames     = "tbl_fieldnames"
	TableFlankNames     = "tbl_flanknames"
	TablePositions      = "tbl_positions"
	TableCountries      = "tbl_countries"
	TableConfederations = "tbl_confederations"
	TableTimezones      = "tbl_timezones"
	TableVenueSurfaces  = "tbl_venuesurfaces"
	TableRounds         = "tbl_rounds"
	TableWeather        = "tbl_weather"

	TableMatches          = "tbl_matches"
	TableLeagueMatches    = "tbl_leaguematches"
	TableGroupMatches     = "tbl_groupmatches"
	TableKnockoutMatches  = "tbl_knockoutmatches"
	TableHomeTeams        = "tbl_hometeams"
	TableAwayTeams        = "tbl_awayteams"
	TableHomeManagers     = "tbl_homemanagers"
	TableAwayManagers     = "tbl_awaymanagers"
	TableGoals            = "tbl_goals"
	TablePenalties        = "tbl_penalties"
	TablePenaltyShootouts = "tbl_penaltyshootouts"
	TableOffenses         = "tbl_offenses"
	TableSubstitutions    = "tbl_substitutions"
	TableSwitchPositions  = "tbl_switchpositions"
	TableVenueHistory     = "tbl_venuehistory"
	TableWeatherKickoff   = "tbl_weatherkickoff"
	TableWeatherHalftime  = "tbl_weatherhalftime"
	TableWeatherFulltime  = "tbl_weatherfulltime"
)

// Lineup columns used by the scoped lineup counts.
const (
	ColMatchID    = "match_id"
	ColTeamID     = "team_id"
	ColPositionID = "position_id"
	ColStarting   = "lp_starting"
	ColCaptain    = "lp_captain"
)
