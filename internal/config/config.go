// Package config reads engine settings from the environment, optionally
// seeded from a .env file in the working directory.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

const (
	EnvLogLevel      = "ENGINE_LOG_LEVEL"
	EnvLogFormat     = "ENGINE_LOG_FORMAT"
	EnvPostgresDSN   = "ENGINE_POSTGRES_DSN"
	EnvKafkaBrokers  = "ENGINE_KAFKA_BROKERS"
	EnvKafkaTopic    = "ENGINE_KAFKA_TOPIC"
	EnvExportTimeout = "ENGINE_EXPORT_TIMEOUT"
)

type Config struct {
	LogLevel      string
	LogFormat     string
	PostgresDSN   string
	KafkaBrokers  []string
	KafkaTopic    string
	ExportTimeout time.Duration
}

// Load reads .env (if present) and then the process environment. Values
// already set in the environment win over .env.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, errors.Wrap(err, "load .env")
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an environment lookup function.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	cfg := Config{
		LogLevel:    get(EnvLogLevel, "info"),
		LogFormat:   get(EnvLogFormat, "json"),
		PostgresDSN: get(EnvPostgresDSN, ""),
		KafkaTopic:  get(EnvKafkaTopic, "account_snapshotted"),
	}

	for _, b := range strings.Split(get(EnvKafkaBrokers, ""), ",") {
		if b = strings.TrimSpace(b); b != "" {
			cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
		}
	}

	timeout, err := time.ParseDuration(get(EnvExportTimeout, "30s"))
	if err != nil {
		return Config{}, errors.Wrapf(err, "%s", EnvExportTimeout)
	}
	cfg.ExportTimeout = timeout

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var level zapcore.Level
	if err := level.Set(c.LogLevel); err != nil {
		return errors.Wrapf(err, "%s", EnvLogLevel)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return errors.Errorf("%s: unknown format %q", EnvLogFormat, c.LogFormat)
	}
	if c.ExportTimeout <= 0 {
		return errors.Errorf("%s: must be positive", EnvExportTimeout)
	}
	return nil
}
