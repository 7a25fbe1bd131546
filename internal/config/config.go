// Package config loads movix settings.
//
// Layers, lowest priority first:
//  1. Defaults: built-in values from defaultConfig
//  2. Config file: optional YAML (MOVIX_CONFIG, else ~/.movix/config.yaml)
//  3. Environment: MOVIX_* variables
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/movix/movix/internal/movie"
)

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "MOVIX_CONFIG"

// envPrefix is stripped from environment variables before mapping.
const envPrefix = "MOVIX_"

// Config is the application configuration.
type Config struct {
	API     APIConfig     `koanf:"api"`
	UI      UIConfig      `koanf:"ui"`
	Logging LoggingConfig `koanf:"logging"`

	// DataDir holds logs and the event log. Defaults to ~/.movix.
	DataDir string `koanf:"data_dir"`
}

// APIConfig describes the recommendation backend.
type APIConfig struct {
	URL           string        `koanf:"url"`
	Timeout       time.Duration `koanf:"timeout"`         // 0 = transport default
	RatePerSecond float64       `koanf:"rate_per_second"` // 0 = unlimited
}

// UIConfig holds presentation settings.
type UIConfig struct {
	ImageBase string `koanf:"image_base"`
	AltScreen bool   `koanf:"alt_screen"`
	Theme     string `koanf:"theme"` // glamour standard style: "dark", "light", "notty"
}

// LoggingConfig controls the operational log.
type LoggingConfig struct {
	Level  string `koanf:"level"` // debug, info, warn, error
	Events bool   `koanf:"events"`
}

// defaultConfig returns the built-in defaults.
func defaultConfig() *Config {
	return &Config{
		API: APIConfig{
			URL:           "http://localhost:5001",
			Timeout:       0,
			RatePerSecond: 0,
		},
		UI: UIConfig{
			ImageBase: movie.DefaultImageBase,
			AltScreen: true,
			Theme:     "dark",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Events: true,
		},
		DataDir: defaultDataDir(),
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".movix"
	}
	return filepath.Join(home, ".movix")
}

// Default returns the built-in configuration without reading file or env.
func Default() *Config {
	return defaultConfig()
}

// Load builds the configuration from defaults, the config file and the
// environment, then validates it.
func Load() (*Config, error) {
	path, err := findConfigFile()
	if err != nil {
		return nil, err
	}
	return load(path)
}

// load is Load with an explicit config file path.
func load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("config: failed to load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: failed to load %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("config: failed to load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envMappings maps MOVIX_* variable names (prefix stripped, lower-cased) to
// config paths.
var envMappings = map[string]string{
	"api_url":     "api.url",
	"api_timeout": "api.timeout",
	"api_rate":    "api.rate_per_second",
	"image_base":  "ui.image_base",
	"alt_screen":  "ui.alt_screen",
	"theme":       "ui.theme",
	"log_level":   "logging.level",
	"events":      "logging.events",
	"data_dir":    "data_dir",
}

// envTransformFunc maps an environment variable to a koanf path. Unknown
// variables map to "" and are skipped by the provider.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	return envMappings[key]
}

// findConfigFile returns the config file to load, or "" if none exists.
// A path named by MOVIX_CONFIG must exist. Otherwise config.yaml is looked
// up in MOVIX_DATA_DIR, falling back to ~/.movix.
func findConfigFile() (string, error) {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err != nil {
			return "", fmt.Errorf("config: %s=%s: %w", ConfigPathEnvVar, p, err)
		}
		return p, nil
	}

	dir := os.Getenv(envPrefix + "DATA_DIR")
	if dir == "" {
		dir = defaultDataDir()
	}
	p := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(p); err == nil {
		return p, nil
	}
	return "", nil
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	if err := validateURL("api.url", c.API.URL); err != nil {
		return err
	}
	if err := validateURL("ui.image_base", c.UI.ImageBase); err != nil {
		return err
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("config: api.timeout must not be negative, got %v", c.API.Timeout)
	}
	if c.API.RatePerSecond < 0 {
		return fmt.Errorf("config: api.rate_per_second must not be negative, got %v", c.API.RatePerSecond)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown logging.level %q", c.Logging.Level)
	}
	switch c.UI.Theme {
	case "dark", "light", "notty", "ascii", "dracula", "pink", "tokyo-night":
	default:
		return fmt.Errorf("config: unknown ui.theme %q", c.UI.Theme)
	}
	if c.DataDir == "" {
		return errors.New("config: data_dir must not be empty")
	}
	return nil
}

func validateURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("config: invalid %s %q: %w", name, raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("config: %s must be an http(s) URL, got %q", name, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("config: %s has no host: %q", name, raw)
	}
	return nil
}

// LogDir is where the operational log files live.
func (c *Config) LogDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// EventLogPath is the JSONL event log.
func (c *Config) EventLogPath() string {
	return filepath.Join(c.DataDir, "events.jsonl")
}
