package drinklog

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/saadjs/drinklog/internal/app"
	"github.com/saadjs/drinklog/internal/config"
	"github.com/saadjs/drinklog/internal/db"
	"github.com/saadjs/drinklog/internal/logger"
	"github.com/saadjs/drinklog/internal/notify"
	"github.com/saadjs/drinklog/internal/report"
	"github.com/saadjs/drinklog/internal/service"
	"github.com/saadjs/drinklog/internal/store"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

type runtimeEnv struct {
	cfg *config.Config
	log *logger.Logger
}

var rt runtimeEnv

func (r runtimeEnv) flush() {
	if r.log != nil {
		r.log.Flush()
	}
}

// loadRuntime resolves configuration and the logger before any command runs.
// Flags override the config file and environment.
func loadRuntime(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(config.LoadOptions{Path: configPath})
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	l, err := logger.New(cmd.ErrOrStderr(), logger.Options{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		SentryDSN: cfg.SentryDSN,
		Release:   version,
	})
	if err != nil {
		return err
	}
	rt = runtimeEnv{cfg: cfg, log: l}
	return nil
}

func skipRuntime(cmd *cobra.Command, args []string) error { return nil }

func resolveDBPath() (string, error) {
	if rt.cfg != nil && rt.cfg.DBPath != "" {
		return rt.cfg.DBPath, nil
	}
	return app.DefaultDBPath()
}

func driver() string {
	if rt.cfg == nil {
		return db.DriverSQLite
	}
	return rt.cfg.DBDriver
}

func openDB(ctx context.Context) (*sqlx.DB, string, error) {
	path, err := resolveDBPath()
	if err != nil {
		return nil, "", err
	}
	sqldb, err := db.Open(driver(), path)
	if err != nil {
		return nil, "", err
	}
	if err := db.ApplyMigrations(ctx, sqldb); err != nil {
		sqldb.Close()
		return nil, "", err
	}
	return sqldb, path, nil
}

func withTracker(cmd *cobra.Command, run func(context.Context, *service.Tracker) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	sqldb, _, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	cal, err := rt.cfg.Calendar()
	if err != nil {
		return err
	}
	opts := []service.Option{service.WithLogger(rt.log.Named("service"))}
	if rt.cfg.Notify {
		opts = append(opts, service.WithNotifier(notify.NewDesktop()))
	}
	return run(ctx, service.NewTracker(store.New(sqldb), cal, opts...))
}

func location() *time.Location {
	if rt.cfg == nil {
		return time.Local
	}
	loc, err := rt.cfg.Location()
	if err != nil {
		return time.Local
	}
	return loc
}

func parseDate(name, value string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(value), location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q (expected YYYY-MM-DD)", name, value)
	}
	return t, nil
}

// parseDateOrToday returns now when value is empty.
func parseDateOrToday(name, value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Now().In(location()), nil
	}
	return parseDate(name, value)
}

func parseDateTimeOrNow(date, timeStr string) (time.Time, error) {
	date = strings.TrimSpace(date)
	timeStr = strings.TrimSpace(timeStr)
	loc := location()
	if date == "" && timeStr == "" {
		return time.Now().In(loc), nil
	}
	if date == "" {
		date = time.Now().In(loc).Format(dateLayout)
	}
	if timeStr == "" {
		return parseDate("date", date)
	}
	t, err := time.ParseInLocation(dateTimeLayout, date+" "+timeStr, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date/--time (expected YYYY-MM-DD and HH:MM)")
	}
	return t, nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	b, err := report.JSON(v)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(b)
	return err
}

func writeFile(path string, data []byte) error {
	if err := app.EnsureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
