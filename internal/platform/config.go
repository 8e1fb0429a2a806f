package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/avyna/pkg/validate"
)

// Environment variables read by LoadConfig. EXPO_PUBLIC_BASE_URL is honoured
// so one .env can serve both the mobile app and the CLI.
const (
	EnvBaseURL       = "AVYNA_BASE_URL"
	EnvStateDir      = "AVYNA_STATE_DIR"
	EnvLegacyBaseURL = "EXPO_PUBLIC_BASE_URL"
)

// Config is the file and environment configuration of the client.
type Config struct {
	BaseURL   string        `yaml:"base_url" json:"base_url" validate:"required,url"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout" validate:"gte=0"`
	StateDir  string        `yaml:"state_dir" json:"state_dir"`
	StaleTime time.Duration `yaml:"stale_time" json:"stale_time" validate:"gte=0"`
	ReadOnly  bool          `yaml:"read_only" json:"read_only"`
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/avyna/config.yaml (or the OS
// equivalent).
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "avyna", "config.yaml")
}

// LoadConfig builds the configuration from, in increasing precedence: the
// YAML file at path, a .env file found from the working directory, and the
// process environment. A missing file is only an error when explicit is set.
func LoadConfig(path string, explicit bool) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if wd, err := os.Getwd(); err == nil {
		if envPath, err := FindEnvFile(wd); err == nil {
			// Load never overrides variables already set in the environment.
			if err := godotenv.Load(envPath); err != nil {
				return cfg, fmt.Errorf("failed to load %s: %w", envPath, err)
			}
		}
	}

	ApplyEnv(&cfg)
	return cfg, nil
}

// ApplyEnv overrides cfg with the process environment.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	} else if v := os.Getenv(EnvLegacyBaseURL); v != "" && cfg.BaseURL == "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvStateDir); v != "" {
		cfg.StateDir = v
	}
}

// Validate checks the configuration is usable.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Options converts the configuration into functional options.
func (c Config) Options() []Option {
	opts := []Option{WithBaseURL(c.BaseURL), WithReadOnly(c.ReadOnly)}
	if c.Timeout > 0 {
		opts = append(opts, WithTimeout(c.Timeout))
	}
	if c.StateDir != "" {
		opts = append(opts, WithStateDir(c.StateDir))
	}
	if c.StaleTime > 0 {
		opts = append(opts, WithStaleTime(c.StaleTime))
	}
	return opts
}
