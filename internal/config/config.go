// Package config reads rivalstats settings from the environment, optionally
// seeded from a .env file in the working directory.
package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every variable name, e.g. RIVALSTATS_SNAPSHOT.
const Prefix = "rivalstats"

type Config struct {
	// Snapshot is a file path or http(s) URL of the stats JSON.
	Snapshot       string        `envconfig:"SNAPSHOT" default:"stats.json"`
	SnapshotToken  string        `envconfig:"SNAPSHOT_TOKEN"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"warn"`
	Addr           string        `envconfig:"ADDR" default:":8080"`
	HTTPTimeout    time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	AllowedOrigins []string      `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:4200"`
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return FromEnv()
}

// FromEnv reads the process environment only.
func FromEnv() (*Config, error) {
	var c Config
	if err := envconfig.Process(Prefix, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
