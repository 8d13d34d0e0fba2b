package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	API struct {
		BaseURL  string `yaml:"base_url"`
		Language string `yaml:"language"`
	} `yaml:"api"`
	Rider struct {
		Zone             string  `yaml:"zone"`
		CustomerGroup    int     `yaml:"customer_group"`
		HomeMunicipality string  `yaml:"home_municipality"`
		TripsPerWeek     float64 `yaml:"trips_per_week"`
	} `yaml:"rider"`
	Cache struct {
		SQLitePath string `yaml:"sqlite_path"`
		MaxBytes   int64  `yaml:"max_bytes"`
	} `yaml:"cache"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
		CleanupCron string `yaml:"cleanup_cron"`
	} `yaml:"schedule"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("FARE_API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("FARE_API_LANGUAGE"); v != "" {
		cfg.API.Language = v
	}
	if v := os.Getenv("RIDER_ZONE"); v != "" {
		cfg.Rider.Zone = v
	}
	if v := os.Getenv("RIDER_TRIPS_PER_WEEK"); v != "" {
		if trips, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Rider.TripsPerWeek = trips
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Cache.SQLitePath = v
	}
	if v := os.Getenv("CACHE_MAX_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Cache.MaxBytes = n
		}
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}

	// Defaults
	if cfg.API.Language == "" {
		cfg.API.Language = "fi"
	}
	if cfg.Rider.Zone == "" {
		cfg.Rider.Zone = "AB"
	}
	if cfg.Rider.CustomerGroup == 0 {
		cfg.Rider.CustomerGroup = 1
	}
	if cfg.Rider.HomeMunicipality == "" {
		cfg.Rider.HomeMunicipality = "helsinki"
	}
	if cfg.Cache.SQLitePath == "" {
		cfg.Cache.SQLitePath = "data/fareadvisor.db"
	}
	if cfg.Cache.MaxBytes == 0 {
		cfg.Cache.MaxBytes = 4 << 20
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 0 * * * *"
	}
	if cfg.Schedule.CleanupCron == "" {
		cfg.Schedule.CleanupCron = "0 30 3 * * *"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.Rider.TripsPerWeek < 0 {
		return fmt.Errorf("rider.trips_per_week must not be negative")
	}
	if c.Cache.MaxBytes < 0 {
		return fmt.Errorf("cache.max_bytes must not be negative")
	}
	return nil
}
