package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{rootDir: rootDir}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (ATLAS_*)
// 2. Config file (.atlas/config.yml or .atlas/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	configDir := filepath.Join(l.rootDir, ".atlas")
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("ATLAS")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., ATLAS_ANALYSIS_COUPLING_THRESHOLD)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("analysis.coupling_threshold")
	v.BindEnv("output.dir")
	v.BindEnv("output.format")
	v.BindEnv("watch.debounce_ms")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults seeds viper with the Default() values so a partial config
// file only overrides what it names.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("paths.include", defaults.Paths.Include)
	v.SetDefault("paths.ignore", defaults.Paths.Ignore)
	v.SetDefault("analysis.coupling_threshold", defaults.Analysis.CouplingThreshold)
	v.SetDefault("output.dir", defaults.Output.Dir)
	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMs)
}
