// Package config loads application settings from a YAML file with
// sensible defaults, so a fresh checkout runs with no config at all.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config is the top-level application configuration.
type Config struct {
	// Query is the Gmail search restricting the fetch to admissions
	// traffic.
	Query string `mapstructure:"query"`

	// InitialFetch is how many messages the first cycle loads;
	// PollFetch is the cap for the periodic incremental polls.
	InitialFetch int64 `mapstructure:"initial_fetch"`
	PollFetch    int64 `mapstructure:"poll_fetch"`

	// PollIntervalSec is how often (in seconds) to check for new mail.
	PollIntervalSec int `mapstructure:"poll_interval_sec"`

	// Workers bounds the concurrent message fetches per cycle.
	Workers int `mapstructure:"workers"`

	CredentialsFile string `mapstructure:"credentials_file"`
	TokenFile       string `mapstructure:"token_file"`
	DBPath          string `mapstructure:"db_path"`
	LogFile         string `mapstructure:"log_file"`
}

// PollInterval returns the poll cadence as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSec) * time.Second
}

// DefaultPath returns ~/.config/admitdesk/config.yaml, falling back to
// the working directory when the home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "admitdesk", "config.yaml")
}

func defaults() *Config {
	return &Config{
		Query:           `subject:(interview OR "call letter" OR shortlist OR test) newer_than:3m`,
		InitialFetch:    15,
		PollFetch:       10,
		PollIntervalSec: 30,
		Workers:         4,
		CredentialsFile: "credentials.json",
		TokenFile:       "token.json",
		DBPath:          "admitdesk.db",
		LogFile:         "admitdesk.log",
	}
}

// Load reads configuration from path. A missing file is not an error;
// it yields the defaults.
func Load(path string) (*Config, error) {
	def := defaults()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("query", def.Query)
	v.SetDefault("initial_fetch", def.InitialFetch)
	v.SetDefault("poll_fetch", def.PollFetch)
	v.SetDefault("poll_interval_sec", def.PollIntervalSec)
	v.SetDefault("workers", def.Workers)
	v.SetDefault("credentials_file", def.CredentialsFile)
	v.SetDefault("token_file", def.TokenFile)
	v.SetDefault("db_path", def.DBPath)
	v.SetDefault("log_file", def.LogFile)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return def, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return def, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
