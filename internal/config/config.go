// Package config loads runtime settings: defaults, then an optional YAML
// file, then .env and environment variables. Command-line flags are applied
// last by the binaries.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dgilberg1988/my-surf-spots/internal/database"
	"github.com/dgilberg1988/my-surf-spots/internal/geolocation"
	"github.com/dgilberg1988/my-surf-spots/internal/marine"
	"github.com/dgilberg1988/my-surf-spots/internal/ranking"
)

// Config aggregates runtime configuration
type Config struct {
	Marine      MarineConfig      `yaml:"marine"`
	Sort        string            `yaml:"sort"`
	Geolocation GeolocationConfig `yaml:"geolocation"`
	Database    DatabaseConfig    `yaml:"database"`
	Log         LogConfig         `yaml:"log"`
	Web         WebConfig         `yaml:"web"`
}

// MarineConfig points at the wave-height API
type MarineConfig struct {
	BaseURL string `yaml:"baseUrl"`
}

// GeolocationConfig controls the location probe
type GeolocationConfig struct {
	Enabled      bool          `yaml:"enabled"`
	Query        string        `yaml:"query"` // Place name; empty means IP lookup
	HighAccuracy bool          `yaml:"highAccuracy"`
	Timeout      time.Duration `yaml:"timeout"`
	MaximumAge   time.Duration `yaml:"maximumAge"`
	NominatimURL string        `yaml:"nominatimUrl"`
	IPLookupURL  string        `yaml:"ipLookupUrl"`
}

// DatabaseConfig locates the fix cache
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LogConfig controls the slog logger
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // TUI only; stdout belongs to the terminal UI
}

// WebConfig controls the HTTP rendition
type WebConfig struct {
	Address      string        `yaml:"address"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
}

// Default returns the built-in settings
func Default() Config {
	geo := geolocation.DefaultOptions()
	return Config{
		Marine: MarineConfig{BaseURL: marine.DefaultBaseURL},
		Sort:   string(ranking.SortByWaveHeight),
		Geolocation: GeolocationConfig{
			Enabled:      true,
			HighAccuracy: geo.HighAccuracy,
			Timeout:      geo.Timeout,
			MaximumAge:   geo.MaximumAge,
			NominatimURL: geolocation.DefaultNominatimURL,
			IPLookupURL:  geolocation.DefaultIPLookupURL,
		},
		Database: DatabaseConfig{Path: database.DBPath()},
		Log:      LogConfig{Level: "info", File: "surf-spots.log"},
		Web: WebConfig{
			Address:      ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
	}
}

// Load builds the configuration. path may be empty; a missing .env is fine.
func Load(path string) (Config, error) {
	_ = godotenv.Load(".env")

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate checks values that would otherwise fail later
func (c Config) Validate() error {
	if _, err := ranking.ParseSortMode(c.Sort); err != nil {
		return err
	}
	if c.Geolocation.Timeout < 0 {
		return errors.New("geolocation timeout must not be negative")
	}
	if c.Geolocation.MaximumAge < 0 {
		return errors.New("geolocation maximumAge must not be negative")
	}
	return nil
}

// SortMode returns the parsed sort mode
func (c Config) SortMode() ranking.SortMode {
	mode, err := ranking.ParseSortMode(c.Sort)
	if err != nil {
		return ranking.SortByWaveHeight
	}
	return mode
}

// ProbeOptions converts the geolocation section for geolocation.NewProbe
func (c Config) ProbeOptions() geolocation.Options {
	return geolocation.Options{
		HighAccuracy: c.Geolocation.HighAccuracy,
		Timeout:      c.Geolocation.Timeout,
		MaximumAge:   c.Geolocation.MaximumAge,
	}
}

func applyEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv("SURF_MARINE_URL")); v != "" {
		cfg.Marine.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("SURF_SORT")); v != "" {
		cfg.Sort = v
	}
	if v := strings.TrimSpace(os.Getenv("SURF_LOCATION")); v != "" {
		cfg.Geolocation.Query = v
	}
	if v := strings.TrimSpace(os.Getenv("SURF_GEOLOCATION")); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid SURF_GEOLOCATION: %w", err)
		}
		cfg.Geolocation.Enabled = enabled
	}
	if v := strings.TrimSpace(os.Getenv("SURF_GEO_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SURF_GEO_TIMEOUT: %w", err)
		}
		cfg.Geolocation.Timeout = d
	}
	if v := strings.TrimSpace(os.Getenv("SURF_DB_PATH")); v != "" {
		cfg.Database.Path = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		cfg.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("SURF_LOG_FILE")); v != "" {
		cfg.Log.File = v
	}
	if v := strings.TrimSpace(os.Getenv("SURF_WEB_ADDR")); v != "" {
		cfg.Web.Address = v
	}
	return nil
}
