// Package config defines drinklog's runtime configuration and how it is loaded.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/saadjs/drinklog/internal/db"
	"github.com/saadjs/drinklog/internal/period"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the stderr handler: text or json.
	LogFormat string `koanf:"log_format"`

	// DBDriver is sqlite (default) or pgx.
	DBDriver string `koanf:"db_driver"`

	// DBPath is the SQLite file or a Postgres DSN. Empty means the default data path.
	DBPath string `koanf:"db_path"`

	// Timezone is an IANA name or "Local".
	Timezone string `koanf:"timezone"`

	// Locale is a BCP-47 tag used to derive the first day of the week.
	Locale string `koanf:"locale"`

	// WeekStart overrides the locale-derived first weekday, e.g. "monday".
	WeekStart string `koanf:"week_start"`

	// Notify enables desktop alerts when a logged drink crosses the daily limit.
	Notify bool `koanf:"notify"`

	// SentryDSN forwards error-level logs to Sentry when set.
	SentryDSN string `koanf:"sentry_dsn"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:  "warn",
		LogFormat: "text",
		DBDriver:  db.DriverSQLite,
		Timezone:  "Local",
		Locale:    "ja-JP",
		Notify:    false,
	}
}

// Validate checks field values and normalizes casing.
func (c *Config) Validate() error {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("%w: log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	if c.DBDriver != db.DriverSQLite && c.DBDriver != db.DriverPostgres {
		return fmt.Errorf("%w: db_driver %q (expected %s or %s)", ErrInvalidConfig, c.DBDriver, db.DriverSQLite, db.DriverPostgres)
	}
	if c.DBDriver == db.DriverPostgres && strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("%w: db_path must hold a DSN when db_driver is %s", ErrInvalidConfig, db.DriverPostgres)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.FirstWeekday(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.Timezone)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, name, err)
	}
	return loc, nil
}

// FirstWeekday resolves WeekStart, falling back to the locale's region.
func (c *Config) FirstWeekday() (time.Weekday, error) {
	if strings.TrimSpace(c.WeekStart) != "" {
		wd, err := period.ParseWeekday(c.WeekStart)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		return wd, nil
	}
	wd, err := period.WeekStartForLocale(c.Locale)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return wd, nil
}

// Calendar builds the engine calendar for this configuration.
func (c *Config) Calendar() (period.Calendar, error) {
	loc, err := c.Location()
	if err != nil {
		return period.Calendar{}, err
	}
	wd, err := c.FirstWeekday()
	if err != nil {
		return period.Calendar{}, err
	}
	return period.NewCalendar(loc, wd), nil
}
