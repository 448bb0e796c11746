package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/viper"

	"kindsort/internal/policy"
)

// CurrentVersion is the config schema version this build reads
const CurrentVersion = 1

// Dir is the project directory holding config.json
const Dir = ".kindsort"

// Config represents the complete kindsort project configuration
type Config struct {
	Version    int      `json:"version" mapstructure:"version"`
	PolicyFile string   `json:"policyFile" mapstructure:"policyFile"`
	Include    []string `json:"include" mapstructure:"include"`
	Exclude    []string `json:"exclude" mapstructure:"exclude"`
	Workers    int      `json:"workers" mapstructure:"workers"`

	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
	Watch   WatchConfig   `json:"watch" mapstructure:"watch"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// WatchConfig contains watch mode configuration
type WatchConfig struct {
	DebounceMs int `json:"debounceMs" mapstructure:"debounceMs"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:    CurrentVersion,
		PolicyFile: policy.FileName,
		Include:    []string{"**/*.cs"},
		Exclude:    []string{"bin/**", "obj/**", ".git/**"},
		Workers:    4,
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
		Watch: WatchConfig{
			DebounceMs: 300,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("version", d.Version)
	v.SetDefault("policyFile", d.PolicyFile)
	v.SetDefault("include", d.Include)
	v.SetDefault("exclude", d.Exclude)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("watch.debounceMs", d.Watch.DebounceMs)
}

// LoadConfig loads configuration from .kindsort/config.json under repoRoot.
// KINDSORT_* environment variables override file values, e.g. KINDSORT_WORKERS or
// KINDSORT_LOGGING_LEVEL.
func LoadConfig(repoRoot string) (*Config, error) {
	return LoadConfigFrom(filepath.Join(repoRoot, Dir))
}

// LoadConfigFrom loads config.json from dir
func LoadConfigFrom(dir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(dir)

	v.SetEnvPrefix("KINDSORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Missing config file means defaults
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to .kindsort/config.json under repoRoot
func (c *Config) Save(repoRoot string) error {
	dir := filepath.Join(repoRoot, Dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// PolicyPath resolves the policy file against repoRoot
func (c *Config) PolicyPath(repoRoot string) string {
	if filepath.IsAbs(c.PolicyFile) {
		return c.PolicyFile
	}
	return filepath.Join(repoRoot, c.PolicyFile)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.PolicyFile == "" {
		return &ConfigError{Field: "policyFile", Message: "must not be empty"}
	}
	if len(c.Include) == 0 {
		return &ConfigError{Field: "include", Message: "at least one pattern is required"}
	}
	for _, p := range c.Include {
		if !doublestar.ValidatePattern(p) {
			return &ConfigError{Field: "include", Message: "invalid pattern " + p}
		}
	}
	for _, p := range c.Exclude {
		if !doublestar.ValidatePattern(p) {
			return &ConfigError{Field: "exclude", Message: "invalid pattern " + p}
		}
	}
	if c.Workers < 1 {
		return &ConfigError{Field: "workers", Message: "must be at least 1"}
	}
	if c.Watch.DebounceMs < 0 {
		return &ConfigError{Field: "watch.debounceMs", Message: "must not be negative"}
	}
	switch c.Logging.Format {
	case "human", "json":
	default:
		return &ConfigError{Field: "logging.format", Message: "must be human or json"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
