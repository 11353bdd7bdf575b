package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/saadjs/drinklog/internal/app"
)

const (
	envPrefix  = "DRINKLOG_"
	envConfig  = "DRINKLOG_CONFIG"
	dotEnvFile = ".env"
)

// LoadOptions points Load at explicit files. Zero values use the defaults.
type LoadOptions struct {
	// Path is a YAML config file. It must exist when set.
	Path string
	// EnvFile is a dotenv file. A missing file is ignored.
	EnvFile string
}

// Load builds a Config by layering, low to high precedence:
//  1. defaults (New)
//  2. dotenv file, copied into the process environment
//  3. YAML file: opts.Path, then DRINKLOG_CONFIG, then the default path if present
//  4. env vars with the DRINKLOG_ prefix
func Load(opts LoadOptions) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = dotEnvFile
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: read %s: %v", ErrLoadConfig, envFile, err)
	}

	k := koanf.New(".")

	path, required, err := configPath(opts.Path)
	if err != nil {
		return nil, err
	}
	if path != "" {
		_, statErr := os.Stat(path)
		switch {
		case statErr == nil:
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("%w: parse %s: %v", ErrLoadConfig, path, err)
			}
		case required:
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, statErr)
		}
	}

	// DRINKLOG_DB_PATH -> db_path; underscores stay to match the koanf tags.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path reports which YAML file Load reads for the given explicit path.
func Path(explicit string) (string, error) {
	p, _, err := configPath(explicit)
	if err != nil {
		return "", err
	}
	if p == "" {
		return app.DefaultConfigPath()
	}
	return p, nil
}

func configPath(explicit string) (path string, required bool, err error) {
	if explicit != "" {
		return explicit, true, nil
	}
	if p := os.Getenv(envConfig); p != "" {
		return p, true, nil
	}
	p, err := app.DefaultConfigPath()
	if err != nil {
		return "", false, nil
	}
	return p, false, nil
}

// Marshal renders cfg as YAML with the same keys Load reads.
func Marshal(cfg *Config) ([]byte, error) {
	k := koanf.New(".")
	for key, val := range map[string]any{
		"log_level":  cfg.LogLevel,
		"log_format": cfg.LogFormat,
		"db_driver":  cfg.DBDriver,
		"db_path":    cfg.DBPath,
		"timezone":   cfg.Timezone,
		"locale":     cfg.Locale,
		"week_start": cfg.WeekStart,
		"notify":     cfg.Notify,
		"sentry_dsn": cfg.SentryDSN,
	} {
		if err := k.Set(key, val); err != nil {
			return nil, fmt.Errorf("set %s: %w", key, err)
		}
	}
	out, err := k.Marshal(yaml.Parser())
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return out, nil
}

// WriteFile writes cfg to path, refusing to overwrite unless force is set.
func WriteFile(path string, cfg *Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
		}
	}
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := app.EnsureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
