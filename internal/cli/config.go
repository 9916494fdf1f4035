package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/fmrd/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend     = "backend"
	cfgKeyDataDir     = "data_dir"
	cfgKeyDSN         = "dsn"
	cfgKeyDesignation = "goalkeeper_designation"
)

// Threshold and table keys live under these sections of config.yaml.
const (
	cfgSectionThresholds = "thresholds"
	cfgSectionTables     = "tables"
)

// configFile is the structure written to config.yaml on first run.
type configFile struct {
	Backend          string `yaml:"backend"`
	DataDir          string `yaml:"data_dir,omitempty"`
	DSN              string `yaml:"dsn,omitempty"`
	types.GateConfig `yaml:",inline"`
}

// loadConfig reads config.yaml from configDir, creating the directory and a
// default file first when they are missing.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	if err := writeConfigIfMissing(filepath.Join(configDir, configFileExt)); err != nil {
		return nil, fmt.Errorf("write default config: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyDesignation, types.DefaultGoalkeeperDesignation)

	th := types.DefaultThresholds()
	for key, value := range map[string]int64{
		"competitions":         th.Competitions,
		"teams":                th.Teams,
		"venue_hosts":          th.VenueHosts,
		"managers":             th.Managers,
		"referees":             th.Referees,
		"starters":             th.Starters,
		"starting_captains":    th.StartingCaptains,
		"starting_goalkeepers": th.StartingGoalkeepers,
		"substitutes":          th.Substitutes,
	} {
		v.SetDefault(cfgSectionThresholds+"."+key, value)
	}

	tb := types.DefaultTables()
	for key, value := range map[string]string{
		"competitions": tb.Competitions,
		"teams":        tb.Teams,
		"venue_hosts":  tb.VenueHosts,
		"managers":     tb.Managers,
		"referees":     tb.Referees,
		"lineups":      tb.Lineups,
	} {
		v.SetDefault(cfgSectionTables+"."+key, value)
	}
}

// writeConfigIfMissing writes the default configuration unless path exists.
func writeConfigIfMissing(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	cfg := configFile{
		Backend:    types.BackendSQLite,
		GateConfig: types.DefaultGateConfig(),
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	header := []byte("# fmrd configuration\n# backend: sqlite | postgres (postgres requires dsn)\n")
	return os.WriteFile(path, append(header, data...), 0o644)
}

// gateConfig reads the readiness thresholds, table names and goalkeeper
// designation. Validation happens in gate.New.
func gateConfig(v *viper.Viper) types.GateConfig {
	th := func(key string) int64 { return v.GetInt64(cfgSectionThresholds + "." + key) }
	tb := func(key string) string { return v.GetString(cfgSectionTables + "." + key) }
	return types.GateConfig{
		Thresholds: types.Thresholds{
			Competitions:        th("competitions"),
			Teams:               th("teams"),
			VenueHosts:          th("venue_hosts"),
			Managers:            th("managers"),
			Referees:            th("referees"),
			Starters:            th("starters"),
			StartingCaptains:    th("starting_captains"),
			StartingGoalkeepers: th("starting_goalkeepers"),
			Substitutes:         th("substitutes"),
		},
		Tables: types.Tables{
			Competitions: tb("competitions"),
			Teams:        tb("teams"),
			VenueHosts:   tb("venue_hosts"),
			Managers:     tb("managers"),
			Referees:     tb("referees"),
			Lineups:      tb("lineups"),
		},
		GoalkeeperDesignation: v.GetString(cfgKeyDesignation),
	}
}
