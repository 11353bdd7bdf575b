package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/saadjs/drinklog/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	for _, key := range []string{"DRINKLOG_CONFIG", "DRINKLOG_LOG_LEVEL", "DRINKLOG_DB_PATH", "DRINKLOG_TIMEZONE", "DRINKLOG_LOCALE", "DRINKLOG_WEEK_START", "DRINKLOG_NOTIFY", "DRINKLOG_DB_DRIVER"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return dir
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		dir := isolate(t)
		opts := config.LoadOptions{EnvFile: filepath.Join(dir, "missing.env")}

		convey.Convey("When loading with defaults only", func() {
			cfg, err := config.Load(opts)

			convey.Convey("Then the Japanese locale starts weeks on Sunday", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DBDriver, convey.ShouldEqual, "sqlite")
				convey.So(cfg.Locale, convey.ShouldEqual, "ja-JP")
				wd, err := cfg.FirstWeekday()
				convey.So(err, convey.ShouldBeNil)
				convey.So(wd, convey.ShouldEqual, time.Sunday)
			})
		})

		convey.Convey("When a YAML file and env vars are both present", func() {
			path := filepath.Join(dir, "drinklog.yaml")
			yaml := "locale: en-GB\ntimezone: Asia/Tokyo\nlog_level: info\nnotify: true\n"
			convey.So(os.WriteFile(path, []byte(yaml), 0o644), convey.ShouldBeNil)
			t.Setenv("DRINKLOG_LOG_LEVEL", "debug")
			t.Setenv("DRINKLOG_WEEK_START", "wed")

			cfg, err := config.Load(config.LoadOptions{Path: path, EnvFile: opts.EnvFile})

			convey.Convey("Then env overrides the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.Notify, convey.ShouldBeTrue)
				cal, err := cfg.Calendar()
				convey.So(err, convey.ShouldBeNil)
				convey.So(cal.WeekStart, convey.ShouldEqual, time.Wednesday)
				convey.So(cal.Location.String(), convey.ShouldEqual, "Asia/Tokyo")
			})
		})

		convey.Convey("When a dotenv file sets values", func() {
			envFile := filepath.Join(dir, ".env")
			convey.So(os.WriteFile(envFile, []byte("DRINKLOG_LOCALE=en-GB\n"), 0o644), convey.ShouldBeNil)
			t.Setenv("DRINKLOG_LOCALE", "")
			os.Unsetenv("DRINKLOG_LOCALE")

			cfg, err := config.Load(config.LoadOptions{EnvFile: envFile})

			convey.Convey("Then they are applied", func() {
				convey.So(err, convey.ShouldBeNil)
				wd, _ := cfg.FirstWeekday()
				convey.So(wd, convey.ShouldEqual, time.Monday)
			})
		})

		convey.Convey("When the explicit file is missing", func() {
			_, err := config.Load(config.LoadOptions{Path: filepath.Join(dir, "nope.yaml"), EnvFile: opts.EnvFile})

			convey.Convey("Then loading fails", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When values are invalid", func() {
			t.Setenv("DRINKLOG_TIMEZONE", "Mars/Olympus")
			_, err := config.Load(opts)

			convey.Convey("Then ErrInvalidConfig is returned", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func TestWriteFileRoundTrip(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "nested", "config.yaml")
	cfg := config.New()
	cfg.WeekStart = "monday"
	if err := config.WriteFile(path, cfg, false); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := config.WriteFile(path, cfg, false); err == nil {
		t.Fatalf("expected refusal to overwrite")
	}
	loaded, err := config.Load(config.LoadOptions{Path: path, EnvFile: filepath.Join(dir, "missing.env")})
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	if loaded.WeekStart != "monday" || loaded.Locale != "ja-JP" {
		t.Fatalf("unexpected round trip %+v", loaded)
	}
}

func TestValidateRejectsPostgresWithoutDSN(t *testing.T) {
	cfg := config.New()
	cfg.DBDriver = "pgx"
	if err := cfg.Validate(); !errors.Is(err, config.ErrInvalidConfig) {
		t.Fatalf("expected invalid config, got %v", err)
	}
}
