package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yogat3ch/30-day-scheduler/pkg/sheets"
	"github.com/yogat3ch/30-day-scheduler/pkg/syncer"

	"github.com/pelletier/go-toml/v2"
)

// Grid sources
const (
	SourceGoogle = "google"
	SourceXLSX   = "xlsx"
	SourceHTML   = "html"
)

// AppConfig holds all user-defined persistent settings
type AppConfig struct {
	Spreadsheet SpreadsheetConfig `toml:"spreadsheet"`
	Calendar    CalendarConfig    `toml:"calendar"`
	Files       FilesConfig       `toml:"files"`
	Credentials CredentialsConfig `toml:"credentials"`
	AccentColor string            `toml:"accent_color,omitempty"`
}

// SpreadsheetConfig describes where the signup grid and the contact table live
type SpreadsheetConfig struct {
	// Source is one of "google", "xlsx" or "html"
	Source         string `toml:"source"`
	ID             string `toml:"id"`
	WorkbookPath   string `toml:"workbook_path,omitempty"`
	SignupSheet    string `toml:"signup_sheet"`
	SignupRange    string `toml:"signup_range"`
	ContactSheet   string `toml:"contact_sheet"`
	ContactRange   string `toml:"contact_range"`
	CachePublished bool   `toml:"cache_published"`
}

// CalendarConfig names the target calendar and the window searched for existing events
type CalendarConfig struct {
	ID           string `toml:"id"`
	TimeZone     string `toml:"time_zone"`
	LookbackDays int    `toml:"lookback_days"`
}

// FilesConfig holds local file locations
type FilesConfig struct {
	Template string `toml:"template"`
	Ledger   string `toml:"ledger"`
}

// CredentialsConfig points at the OAuth client secret and the cached token
type CredentialsConfig struct {
	ClientSecret string `toml:"client_secret"`
	Token        string `toml:"token"`
}

// DefaultConfig returns the settings used when no config file exists
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Spreadsheet: SpreadsheetConfig{
			Source:       SourceGoogle,
			SignupSheet:  "Signup",
			SignupRange:  "A1:Z50",
			ContactSheet: "Teacher Contact",
			ContactRange: "A1:F100",
		},
		Calendar: CalendarConfig{
			ID:           "primary",
			TimeZone:     "America/New_York",
			LookbackDays: 30,
		},
		Files: FilesConfig{
			Template: "_calendar_event_template.jsonc",
			Ledger:   filepath.Join("logs", "created_events.csv"),
		},
		Credentials: CredentialsConfig{
			ClientSecret: filepath.Join(".credentials", "credentials.json"),
			Token:        filepath.Join(".credentials", "token.json"),
		},
	}
}

// DefaultPath returns the absolute path to ~/.30-day-scheduler.toml
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".30-day-scheduler.toml"), nil
}

// Load reads the configuration from path, or from DefaultPath when path is empty.
// Missing files yield the defaults; values present in the file override them.
func Load(path string) (*AppConfig, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config TOML: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to path, or to DefaultPath when path is empty.
func Save(path string, cfg *AppConfig) error {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return err
		}
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate reports every missing or invalid setting at once
func (c *AppConfig) Validate() error {
	var missing, invalid []string

	switch c.Spreadsheet.Source {
	case SourceGoogle, SourceHTML:
		if strings.TrimSpace(c.Spreadsheet.ID) == "" {
			missing = append(missing, "spreadsheet.id")
		}
	case SourceXLSX:
		if strings.TrimSpace(c.Spreadsheet.WorkbookPath) == "" {
			missing = append(missing, "spreadsheet.workbook_path")
		}
	default:
		invalid = append(invalid, "spreadsheet.source")
	}

	if strings.TrimSpace(c.Calendar.ID) == "" {
		missing = append(missing, "calendar.id")
	}
	if _, err := time.LoadLocation(c.Calendar.TimeZone); err != nil {
		invalid = append(invalid, "calendar.time_zone")
	}
	if c.Calendar.LookbackDays < 0 {
		invalid = append(invalid, "calendar.lookback_days")
	}
	if strings.TrimSpace(c.Files.Template) == "" {
		missing = append(missing, "files.template")
	}
	if strings.TrimSpace(c.Files.Ledger) == "" {
		missing = append(missing, "files.ledger")
	}

	var errs []error
	if len(missing) > 0 {
		errs = append(errs, fmt.Errorf("missing config values: %s", strings.Join(missing, ", ")))
	}
	if len(invalid) > 0 {
		errs = append(errs, fmt.Errorf("invalid config values: %s", strings.Join(invalid, ", ")))
	}
	return errors.Join(errs...)
}

// ToSyncConfig converts the persistent settings into the explicit configuration of one run
func (c *AppConfig) ToSyncConfig() syncer.Config {
	return syncer.Config{
		SpreadsheetID: c.Spreadsheet.ID,
		SignupRange:   sheets.A1(c.Spreadsheet.SignupSheet, c.Spreadsheet.SignupRange),
		ContactRange:  sheets.A1(c.Spreadsheet.ContactSheet, c.Spreadsheet.ContactRange),
		CalendarID:    c.Calendar.ID,
		LookbackDays:  c.Calendar.LookbackDays,
		TemplatePath:  c.Files.Template,
		LedgerPath:    c.Files.Ledger,
		DryRun:        true,
	}
}

// Location returns the configured calendar time zone
func (c *AppConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Calendar.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid time zone %q: %w", c.Calendar.TimeZone, err)
	}
	return loc, nil
}
