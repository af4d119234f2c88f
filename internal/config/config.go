// Package config loads the deployment configuration from a YAML file with
// environment overrides for secrets.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// RosterMember maps a chat member id to a human name for reports.
type RosterMember struct {
	ID       int64  `yaml:"id"`
	Name     string `yaml:"name"`
	Callsign string `yaml:"callsign,omitempty"`
}

// ActivityAPI configures the external activity-tracking endpoint.
type ActivityAPI struct {
	URL   string `yaml:"url,omitempty"`
	Token string `yaml:"token,omitempty"`
	Sheet string `yaml:"sheet,omitempty"`
}

// Config models the pontaj configuration file.
type Config struct {
	Timezone             string         `yaml:"timezone"`
	DatabasePath         string         `yaml:"database_path,omitempty"`
	ConfirmWindowSeconds int            `yaml:"confirm_window_seconds"`
	FallbackWebhookURL   string         `yaml:"fallback_webhook_url,omitempty"`
	AuditWebhookURL      string         `yaml:"audit_webhook_url,omitempty"`
	AuditLogPath         string         `yaml:"audit_log_path,omitempty"`
	Activity             ActivityAPI    `yaml:"activity,omitempty"`
	Roster               []RosterMember `yaml:"roster,omitempty"`
}

// Default returns the built-in configuration used when no file exists.
func Default() Config {
	return Config{
		Timezone:             "Europe/Bucharest",
		ConfirmWindowSeconds: 300,
		AuditLogPath:         "pontaj.log",
	}
}

// DefaultPath is where Load looks when no explicit path is given.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".pontaj", "config.yaml"), nil
}

// Load reads the file at path, falling back to defaults when it does not
// exist. Environment variables override secrets so they can stay out of the
// file: PONTAJ_FALLBACK_WEBHOOK, ACTIVITY_API_URL, ACTIVITY_API_TOKEN,
// ACTIVITY_API_SHEET, PONTAJ_CONFIRM_WINDOW.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// defaults + env only
	case err != nil:
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if cfg.Timezone == "" {
		cfg.Timezone = Default().Timezone
	}
	if cfg.ConfirmWindowSeconds <= 0 {
		cfg.ConfirmWindowSeconds = Default().ConfirmWindowSeconds
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PONTAJ_FALLBACK_WEBHOOK"); v != "" {
		cfg.FallbackWebhookURL = v
	}
	if v := os.Getenv("ACTIVITY_API_URL"); v != "" {
		cfg.Activity.URL = v
	}
	if v := os.Getenv("ACTIVITY_API_TOKEN"); v != "" {
		cfg.Activity.Token = v
	}
	if v := os.Getenv("ACTIVITY_API_SHEET"); v != "" {
		cfg.Activity.Sheet = v
	}
	if v := os.Getenv("PONTAJ_CONFIRM_WINDOW"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.ConfirmWindowSeconds = secs
		}
	}
}

// MemberName resolves a member id to its roster name, falling back to the
// numeric id.
func (c Config) MemberName(id int64) string {
	for _, m := range c.Roster {
		if m.ID == id {
			return m.Name
		}
	}
	return strconv.FormatInt(id, 10)
}

// MemberCallsign returns the configured callsign for a member id, empty when
// the roster carries none.
func (c Config) MemberCallsign(id int64) string {
	for _, m := range c.Roster {
		if m.ID == id {
			return m.Callsign
		}
	}
	return ""
}
