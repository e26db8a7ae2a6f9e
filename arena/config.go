// ABOUTME: Arena configuration loaded from TOML with environment overrides
// ABOUTME: Controls initial heap size, collection threshold and stress mode

package arena

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/prateek/gcroot/internal/logging"
)

const (
	EnvStress           = "GCROOT_STRESS"
	EnvCollectThreshold = "GCROOT_COLLECT_THRESHOLD"
)

// Config tunes an arena. In stress mode every safe point collects, which
// turns a missing root into an immediate ErrStaleObject panic. An empty
// LogLevel leaves the logger at its GCROOT_LOG_LEVEL or info default.
type Config struct {
	InitialCells int    `toml:"initial_cells"`
	Threshold    int    `toml:"collect_threshold"`
	Stress       bool   `toml:"stress"`
	LogLevel     string `toml:"log_level"`
}

func DefaultConfig() Config {
	return Config{
		InitialCells: 1024,
		Threshold:    4096,
	}
}

// LoadConfig reads a TOML file over the defaults and then applies the
// environment overrides.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	var raw Config
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load arena config: %w", err)
	}
	if meta.IsDefined("initial_cells") {
		cfg.InitialCells = raw.InitialCells
	}
	if meta.IsDefined("collect_threshold") {
		cfg.Threshold = raw.Threshold
	}
	if meta.IsDefined("stress") {
		cfg.Stress = raw.Stress
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load arena config: unknown key %q", undecoded[0].String())
	}

	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from GCROOT_STRESS, GCROOT_COLLECT_THRESHOLD and
// GCROOT_LOG_LEVEL.
func (c *Config) ApplyEnv() error {
	if raw := strings.TrimSpace(os.Getenv(logging.EnvLogLevel)); raw != "" {
		c.LogLevel = raw
	}
	if raw := strings.TrimSpace(os.Getenv(EnvStress)); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvStress, err)
		}
		c.Stress = v
	}
	if raw := strings.TrimSpace(os.Getenv(EnvCollectThreshold)); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvCollectThreshold, err)
		}
		c.Threshold = v
	}
	return nil
}

func (c Config) Validate() error {
	if c.InitialCells < 0 {
		return fmt.Errorf("arena config: initial_cells must not be negative, got %d", c.InitialCells)
	}
	if c.Threshold < 0 {
		return fmt.Errorf("arena config: collect_threshold must not be negative, got %d", c.Threshold)
	}
	if c.LogLevel != "" {
		if _, ok := logging.ParseLevel(c.LogLevel); !ok {
			return fmt.Errorf("arena config: unknown log_level %q", c.LogLevel)
		}
	}
	return nil
}
