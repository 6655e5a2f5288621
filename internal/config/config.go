// Package config manages the smallsteps settings file.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/ratedzzz/small-steps/internal/constants"
)

// Config holds all application settings.
type Config struct {
	General       GeneralConfig       `toml:"general"`
	Scoring       ScoringConfig       `toml:"scoring"`
	API           APIConfig           `toml:"api"`
	Notifications NotificationsConfig `toml:"notifications"`
	Backup        BackupConfig        `toml:"backup"`
}

// GeneralConfig controls calendar behavior.
type GeneralConfig struct {
	// Timezone is an IANA name; "Local" or empty uses the system zone.
	Timezone string `toml:"timezone"`
}

// ScoringConfig is informational; the streak threshold is fixed.
type ScoringConfig struct {
	StreakThreshold int `toml:"streak_threshold"`
}

// APIConfig controls the local HTTP API server.
type APIConfig struct {
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	Metrics bool   `toml:"metrics"`
}

// NotificationsConfig toggles tray notifications for unlocked badges.
type NotificationsConfig struct {
	Enabled bool `toml:"enabled"`
}

// BackupConfig toggles the automatic backup taken when the TUI or API server starts.
type BackupConfig struct {
	Automatic bool `toml:"automatic"`
}

// DefaultConfig returns the settings used when no file exists.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Timezone: "Local",
		},
		Scoring: ScoringConfig{
			StreakThreshold: constants.StreakThreshold,
		},
		API: APIConfig{
			Host:    constants.DefaultAPIHost,
			Port:    constants.DefaultAPIPort,
			Metrics: true,
		},
		Notifications: NotificationsConfig{
			Enabled: true,
		},
		Backup: BackupConfig{
			Automatic: true,
		},
	}
}

// DefaultPath returns the settings file next to the default database.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", constants.AppName, constants.DefaultSettingsFile)
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Scoring.StreakThreshold != constants.StreakThreshold {
		// the threshold is fixed
		cfg.Scoring.StreakThreshold = constants.StreakThreshold
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes cfg to path, creating its directory.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Validate checks the timezone and API address.
func (c Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.API.Port < 1 || c.API.Port > 65535 {
		return fmt.Errorf("api.port %d is outside valid range (1-65535)", c.API.Port)
	}
	if c.API.Host == "" {
		return errors.New("api.host must not be empty")
	}
	return nil
}

// Location resolves the configured timezone.
func (c Config) Location() (*time.Location, error) {
	switch c.General.Timezone {
	case "", "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.General.Timezone)
	if err != nil {
		return nil, fmt.Errorf("general.timezone %q: %w", c.General.Timezone, err)
	}
	return loc, nil
}

// Addr is the API listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.API.Host, strconv.Itoa(c.API.Port))
}
