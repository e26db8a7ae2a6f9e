// ABOUTME: Tests for loading arena configuration from TOML and the environment
// ABOUTME: Checks defaults, overrides, unknown keys and validation

package arena

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prateek/gcroot/internal/logging"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvStress, "")
	t.Setenv(EnvCollectThreshold, "")
	t.Setenv(logging.EnvLogLevel, "")
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gcroot.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigKeepsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(writeConfig(t, "stress = true\n"))
	require.NoError(t, err)

	want := DefaultConfig()
	want.Stress = true
	assert.Equal(t, want, cfg)
}

func TestLoadConfigAllKeys(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(writeConfig(t, `
initial_cells = 64
collect_threshold = 0
stress = false
log_level = " debug "
`))
	require.NoError(t, err)
	assert.Equal(t, Config{InitialCells: 64, Threshold: 0, LogLevel: "debug"}, cfg)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv(EnvStress, "true")
	t.Setenv(EnvCollectThreshold, "17")
	t.Setenv(logging.EnvLogLevel, "debug")

	cfg, err := LoadConfig(writeConfig(t, "collect_threshold = 100\nlog_level = \"warn\"\n"))
	require.NoError(t, err)
	assert.True(t, cfg.Stress)
	assert.Equal(t, 17, cfg.Threshold)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		env     map[string]string
		wantErr string
	}{
		{"unknown key", "threshold = 3\n", nil, "unknown key"},
		{"bad toml", "stress = \n", nil, "load arena config"},
		{"negative threshold", "collect_threshold = -1\n", nil, "collect_threshold must not be negative"},
		{"negative cells", "initial_cells = -5\n", nil, "initial_cells must not be negative"},
		{"bad level", "log_level = \"loud\"\n", nil, "unknown log_level"},
		{"bad stress env", "", map[string]string{EnvStress: "maybe"}, EnvStress},
		{"bad threshold env", "", map[string]string{EnvCollectThreshold: "many"}, EnvCollectThreshold},
		{"bad level env", "", map[string]string{logging.EnvLogLevel: "loud"}, "unknown log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestNewAppliesConfig(t *testing.T) {
	clearEnv(t)
	cfg := DefaultConfig()
	cfg.Threshold = 7
	cfg.LogLevel = "warn"
	a := New(cfg)
	assert.Equal(t, cfg, a.Config())
	assert.Equal(t, uint32(1), a.Epoch())
	assert.Zero(t, a.RootSet().Len())
}

func TestNewLogLevelPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		cfgLevel string
		envLevel string
		want     zerolog.Level
	}{
		{"default", "", "", zerolog.InfoLevel},
		{"env over default", "", "debug", zerolog.DebugLevel},
		{"config", "warn", "", zerolog.WarnLevel},
		{"env over config", "warn", "debug", zerolog.DebugLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(logging.EnvLogLevel, tt.envLevel)
			cfg := DefaultConfig()
			cfg.LogLevel = tt.cfgLevel
			a := New(cfg)
			assert.Equal(t, tt.want, a.log.GetLevel())
		})
	}
}
