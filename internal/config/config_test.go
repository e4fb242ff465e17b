package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var serviceEnv = []string{
	"SSH_HOST", "SSH_PORT", "SSH_HOST_KEY", "SSH_MAX_SESSIONS", "LOG_LEVEL",
	"WEB_HOST", "WEB_PORT", "SSH_DISPLAY_HOST",
}

// unsetServiceEnv clears the service variables for the duration of the test.
func unsetServiceEnv(t *testing.T) {
	t.Helper()
	for _, key := range serviceEnv {
		if old, ok := os.LookupEnv(key); ok {
			require.NoError(t, os.Unsetenv(key))
			t.Cleanup(func() { _ = os.Setenv(key, old) })
		}
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "skyshooter.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestGetEnv(t *testing.T) {
	t.Setenv("SKYSHOOTER_TEST_KEY", "set")
	assert.Equal(t, "set", GetEnv("SKYSHOOTER_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("SKYSHOOTER_TEST_MISSING", "fallback"))

	t.Setenv("SKYSHOOTER_TEST_EMPTY", "")
	assert.Equal(t, "", GetEnv("SKYSHOOTER_TEST_EMPTY", "fallback"))
}

func TestLoadDefaults(t *testing.T) {
	unsetServiceEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
	assert.Equal(t, log.InfoLevel, cfg.Level())
}

func TestLoadFileThenEnv(t *testing.T) {
	unsetServiceEnv(t)
	path := writeConfig(t, `
port = "2022"
max_sessions = 8
log_level = "debug"
display_host = "play.example.org"
`)
	t.Setenv("SSH_PORT", "3022")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "3022", cfg.Port, "env overrides file")
	assert.Equal(t, 8, cfg.MaxSessions)
	assert.Equal(t, "play.example.org", cfg.DisplayHost)
	assert.Equal(t, "::", cfg.Host, "unset keys keep defaults")
	assert.Equal(t, log.DebugLevel, cfg.Level())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
	}{
		{name: "bad toml", file: "port = "},
		{name: "bad port", file: `port = "ssh"`},
		{name: "port out of range", env: map[string]string{"WEB_PORT": "70000"}},
		{name: "negative sessions", file: "max_sessions = -1"},
		{name: "sessions not a number", env: map[string]string{"SSH_MAX_SESSIONS": "many"}},
		{name: "bad level", env: map[string]string{"LOG_LEVEL": "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unsetServiceEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.file != "" {
				path = writeConfig(t, tt.file)
			}

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	unsetServiceEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
