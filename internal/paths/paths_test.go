package paths

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withPlatform swaps the platform hooks for the duration of a test.
func withPlatform(t *testing.T, goos, home, configRoot string) {
	t.Helper()
	saved := platformDir
	t.Cleanup(func() { platformDir = saved })
	platformDir.goos = goos
	platformDir.homeDir = func() (string, error) { return home, nil }
	platformDir.userConfigDir = func() (string, error) { return configRoot, nil }
}

func TestDefaultDirs_Linux(t *testing.T) {
	withPlatform(t, "linux", "/home/ref", "/unused")

	t.Run("XDG variables win", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
		t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/xdg-config/fmrd", got)

		got, err = DefaultDataDir()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/xdg-data/fmrd", got)
	})

	t.Run("home fallbacks", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		t.Setenv("XDG_DATA_HOME", "")

		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/home/ref", ".config", "fmrd"), got)

		got, err = DefaultDataDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/home/ref", ".local", "share", "fmrd"), got)
	})
}

func TestDefaultDirs_Darwin(t *testing.T) {
	withPlatform(t, "darwin", "/Users/ref", "/Users/ref/Library/Application Support")

	got, err := DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, "/Users/ref/Library/Application Support/fmrd", got)

	got, err = DefaultDataDir()
	require.NoError(t, err)
	assert.Equal(t, "/Users/ref/Library/Application Support/fmrd", got)
}

func TestDefaultDirs_HomeError(t *testing.T) {
	withPlatform(t, "linux", "", "")
	platformDir.homeDir = func() (string, error) { return "", errors.New("no home") }
	t.Setenv("XDG_CONFIG_HOME", "")

	_, err := DefaultConfigDir()
	assert.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(EnvConfigDir, "/env/config")
	t.Setenv(EnvDataDir, "/env/data")

	o, err := LoadOverrides()
	require.NoError(t, err)
	assert.Equal(t, Overrides{ConfigDir: "/env/config", DataDir: "/env/data"}, o)
}

func TestResolveConfigDir(t *testing.T) {
	withPlatform(t, "linux", "/home/ref", "/unused")
	t.Setenv("XDG_CONFIG_HOME", "")

	tests := []struct {
		name   string
		flag   string
		envVal string
		want   string
	}{
		{name: "flag wins over env", flag: "/explicit/config", envVal: "/env/config", want: "/explicit/config"},
		{name: "env wins when flag empty", envVal: "/env/config", want: "/env/config"},
		{name: "platform default when both empty", want: "/home/ref/.config/fmrd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfigDir, tt.envVal)
			got, err := ResolveConfigDir(tt.flag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveDataDir(t *testing.T) {
	withPlatform(t, "linux", "/home/ref", "/unused")
	t.Setenv("XDG_DATA_HOME", "")

	tests := []struct {
		name        string
		flag        string
		configValue string
		envVal      string
		want        string
	}{
		{name: "flag wins over all", flag: "/flag/data", configValue: "/config/data", envVal: "/env/data", want: "/flag/data"},
		{name: "config.yaml wins over env", configValue: "/config/data", envVal: "/env/data", want: "/config/data"},
		{name: "env wins when flag and config empty", envVal: "/env/data", want: "/env/data"},
		{name: "platform default when all empty", want: "/home/ref/.local/share/fmrd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvDataDir, tt.envVal)
			got, err := ResolveDataDir(tt.flag, tt.configValue)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_RelativeBecomesAbsolute(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	t.Setenv(EnvConfigDir, "relative/env")
	got, err := ResolveConfigDir("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, "relative", "env"), got)

	t.Setenv(EnvDataDir, "")
	got, err = ResolveDataDir("", "relative/config")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, "relative", "config"), got)
}
