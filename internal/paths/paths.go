// Package paths resolves where fmrd keeps its configuration and its
// database. A command-line flag wins over the environment, which wins over
// the platform default.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/caarlos0/env/v11"
)

// AppName is the directory name used under the platform config and data
// roots.
const AppName = "fmrd"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "FMRD_CONFIG_DIR"
	EnvDataDir   = "FMRD_DATA_DIR"
)

// Overrides holds the directory overrides read from the environment.
type Overrides struct {
	ConfigDir string `env:"FMRD_CONFIG_DIR"`
	DataDir   string `env:"FMRD_DATA_DIR"`
}

// LoadOverrides reads FMRD_CONFIG_DIR and FMRD_DATA_DIR.
func LoadOverrides() (Overrides, error) {
	var o Overrides
	if err := env.Parse(&o); err != nil {
		return Overrides{}, fmt.Errorf("parse env: %w", err)
	}
	return o, nil
}

// platformDir can be replaced in tests.
var platformDir = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/fmrd (fallback ~/.config/fmrd)
// macOS:   ~/Library/Application Support/fmrd
// Windows: %APPDATA%/fmrd
func DefaultConfigDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform data directory.
//
// Linux:   $XDG_DATA_HOME/fmrd (fallback ~/.local/share/fmrd)
// macOS and Windows: the config directory.
func DefaultDataDir() (string, error) {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func xdgDir(xdgVar, homeRel string) (string, error) {
	if platformDir.goos != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, AppName), nil
	}
	if xdg := os.Getenv(xdgVar); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, homeRel, AppName), nil
}

// ResolveConfigDir returns flag, else FMRD_CONFIG_DIR, else the platform
// default. Explicit values are made absolute.
func ResolveConfigDir(flag string) (string, error) {
	o, err := LoadOverrides()
	if err != nil {
		return "", err
	}
	return resolve(flag, o.ConfigDir, DefaultConfigDir)
}

// ResolveDataDir returns flag, else the data_dir value from config.yaml,
// else FMRD_DATA_DIR, else the platform default.
func ResolveDataDir(flag, configValue string) (string, error) {
	o, err := LoadOverrides()
	if err != nil {
		return "", err
	}
	if flag == "" {
		flag = configValue
	}
	return resolve(flag, o.DataDir, DefaultDataDir)
}

func resolve(flag, envValue string, fallback func() (string, error)) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if envValue != "" {
		return filepath.Abs(envValue)
	}
	return fallback()
}
