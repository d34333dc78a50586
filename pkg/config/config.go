package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the runtime configuration read from the environment (and an
// optional .env file loaded by the caller).
type Config struct {
	WindowTitle string
	Closeable   bool

	ParamsBackend       string
	ParamsDir           string
	ParamsDB            string
	ParamsWatchInterval time.Duration

	CarParamsPath string

	BackupBucket string
	BackupPrefix string
}

var defaults = Config{
	WindowTitle:         "Onroad Options",
	Closeable:           true,
	ParamsBackend:       "file",
	ParamsDir:           "./data/params",
	ParamsDB:            "./data/params.db",
	ParamsWatchInterval: 250 * time.Millisecond,
	CarParamsPath:       "./data/car_params.yaml",
	BackupPrefix:        "params",
}

// Load reads the process environment.
func Load() Config {
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv. Unset variables keep their default;
// unparsable ones keep the default and log a warning.
func FromEnv(getenv func(string) string) Config {
	cfg := defaults

	str := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	str("GAME_TITLE", &cfg.WindowTitle)
	str("PARAMS_BACKEND", &cfg.ParamsBackend)
	str("PARAMS_DIR", &cfg.ParamsDir)
	str("PARAMS_DB", &cfg.ParamsDB)
	str("CAR_PARAMS_PATH", &cfg.CarParamsPath)
	str("PARAMS_BACKUP_BUCKET", &cfg.BackupBucket)
	str("PARAMS_BACKUP_PREFIX", &cfg.BackupPrefix)
	cfg.ParamsBackend = strings.ToLower(cfg.ParamsBackend)

	if v := getenv("ONROAD_CLOSEABLE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("Warning: invalid ONROAD_CLOSEABLE %q, using %t", v, cfg.Closeable)
		} else {
			cfg.Closeable = b
		}
	}

	if v := getenv("PARAMS_WATCH_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			log.Printf("Warning: invalid PARAMS_WATCH_INTERVAL %q, using %s", v, cfg.ParamsWatchInterval)
		} else {
			cfg.ParamsWatchInterval = d
		}
	}

	return cfg
}

// ParamsLocation is the directory or database path for the configured backend.
func (c Config) ParamsLocation() string {
	if strings.EqualFold(c.ParamsBackend, "sqlite") {
		return c.ParamsDB
	}
	return c.ParamsDir
}

// BackupEnabled reports whether a backup bucket is configured.
func (c Config) BackupEnabled() bool {
	return c.BackupBucket != ""
}
