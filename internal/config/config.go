// Package config assembles runtime settings from an optional YAML file,
// a .env file and the process environment, in that order of precedence
// (environment wins).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultPort       = "8000"
	defaultDataPath   = "allotment.db"
	defaultConfigFile = "allot.yaml"
)

// Config holds the runtime configuration for the service and CLI.
type Config struct {
	Port           string              `yaml:"port"`
	DatabaseURL    string              `yaml:"database_url"`
	DataPath       string              `yaml:"data_path"`
	MetricsEnabled bool                `yaml:"metrics_enabled"`
	ExcludeSundays bool                `yaml:"exclude_sundays"`
	DefaultDept    string              `yaml:"default_department"`
	Halls          map[string][]string `yaml:"halls"`

	// Path is the YAML file that was read, empty when none existed.
	Path string `yaml:"-"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Port:           defaultPort,
		DataPath:       defaultDataPath,
		MetricsEnabled: true,
		ExcludeSundays: true,
	}
}

// LoadDotEnv loads the first .env found in the working directory or up to
// two parents. A missing file is fine.
func LoadDotEnv() {
	for _, p := range []string{".env", "../.env", "../../.env"} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}

// Load reads path (or ALLOT_CONFIG, or allot.yaml when path is empty) over
// the defaults, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("ALLOT_CONFIG")
	}
	explicit := path != ""
	if path == "" {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
		cfg.Path = path
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("config: %s not found", path)
	default:
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.DataPath == "" {
		cfg.DataPath = defaultDataPath
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("DATA_PATH"); v != "" {
		c.DataPath = v
	}
	if v := os.Getenv("DEFAULT_DEPARTMENT"); v != "" {
		c.DefaultDept = v
	}
	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: METRICS_ENABLED: %w", err)
		}
		c.MetricsEnabled = b
	}
	if v := os.Getenv("EXCLUDE_SUNDAYS"); v != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: EXCLUDE_SUNDAYS: %w", err)
		}
		c.ExcludeSundays = b
	}
	return nil
}
