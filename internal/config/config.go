// Package config handles configuration loading and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Backend names.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Default values.
const (
	DefaultDataDir  = "~/.simpletodo"
	DefaultBackend  = BackendFile
	DefaultLogLevel = "info"
	DefaultTheme    = "classic"
	LogFileName     = "todo.log"
)

// Config holds the full configuration.
type Config struct {
	DataDir  string `toml:"data_dir" yaml:"data_dir"`
	Backend  string `toml:"backend" yaml:"backend"`
	LogFile  string `toml:"log_file" yaml:"log_file"`
	LogLevel string `toml:"log_level" yaml:"log_level"`
	Theme    string `toml:"theme" yaml:"theme"`
	NoColor  bool   `toml:"no_color" yaml:"no_color"`
}

// Overrides carries values set on the command line. Empty strings and nil
// pointers leave the loaded value alone.
type Overrides struct {
	ConfigFile string
	DataDir    string
	Backend    string
	LogLevel   string
	Theme      string
	NoColor    *bool
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataDir:  DefaultDataDir,
		Backend:  DefaultBackend,
		LogLevel: DefaultLogLevel,
		Theme:    DefaultTheme,
	}
}

// Load builds the configuration in priority order:
// 1. Defaults
// 2. Config file ($SIMPLETODO_CONFIG, ~/.simpletodo/config.toml or config.yaml)
// 3. Environment variables
// 4. Command line overrides
func Load(o Overrides) (*Config, error) {
	cfg := Default()

	path := o.ConfigFile
	if path == "" {
		path = os.Getenv("SIMPLETODO_CONFIG")
	}
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadConfigFile(cfg, expandPath(path)); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	loadFromEnv(cfg)
	applyOverrides(cfg, o)

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findConfigFile() string {
	dir := expandPath(DefaultDataDir)
	for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func loadConfigFile(cfg *Config, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return err
		}
		return yaml.Unmarshal(data, cfg)
	default:
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return err
		}
		return nil
	}
}

func loadFromEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("SIMPLETODO_DATA_DIR")); v != "" {
		cfg.DataDir = v
	}
	if v := strings.TrimSpace(os.Getenv("SIMPLETODO_BACKEND")); v != "" {
		cfg.Backend = v
	}
	if v := strings.TrimSpace(os.Getenv("SIMPLETODO_LOG_FILE")); v != "" {
		cfg.LogFile = v
	}
	if v := strings.TrimSpace(os.Getenv("SIMPLETODO_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("SIMPLETODO_THEME")); v != "" {
		cfg.Theme = v
	}
	// https://no-color.org: any non-empty value disables colour.
	if os.Getenv("NO_COLOR") != "" {
		cfg.NoColor = true
	} else if v := os.Getenv("SIMPLETODO_NO_COLOR"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.NoColor = b
		}
	}
}

func applyOverrides(cfg *Config, o Overrides) {
	if o.DataDir != "" {
		cfg.DataDir = o.DataDir
	}
	if o.Backend != "" {
		cfg.Backend = o.Backend
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	if o.Theme != "" {
		cfg.Theme = o.Theme
	}
	if o.NoColor != nil {
		cfg.NoColor = *o.NoColor
	}
}

func (c *Config) finalize() error {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	c.DataDir = expandPath(c.DataDir)
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is empty")
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join(c.DataDir, LogFileName)
	} else {
		c.LogFile = expandPath(c.LogFile)
	}
	return nil
}

// Validate rejects unknown enum values.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q (want file, sqlite or memory)", c.Backend)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error", "off":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	switch c.Theme {
	case "classic", "neon", "mono":
	default:
		return fmt.Errorf("unknown theme %q", c.Theme)
	}
	return nil
}

// expandPath expands environment variables and a leading ~/.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	expanded := os.ExpandEnv(p)
	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return expanded
		}
		return filepath.Join(home, strings.TrimPrefix(expanded[1:], "/"))
	}
	return expanded
}
