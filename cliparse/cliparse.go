// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort         = 8318
	DefaultDatabaseType = "sqlite"
	DefaultDatabaseURL  = "file:quickly-calc.db"
	DefaultCacheVersion = "v1"
	DefaultLogLevel     = "info"
)

type Config struct {
	Port          int    `yaml:"port"`
	DatabaseURL   string `yaml:"database_url"`
	DatabaseType  string `yaml:"database_type"`
	SessionSalt   string `yaml:"session_salt"`
	AssetUpstream string `yaml:"asset_upstream"`
	CacheVersion  string `yaml:"cache_version"`
	LogLevel      string `yaml:"log_level"`
	ConfigFile    string `yaml:"-"`
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		Port:         DefaultPort,
		DatabaseType: DefaultDatabaseType,
		DatabaseURL:  DefaultDatabaseURL,
		CacheVersion: DefaultCacheVersion,
		LogLevel:     DefaultLogLevel,
	}
}

// Flags holds configuration flags registered on a flag set
type Flags struct {
	fs     *pflag.FlagSet
	values Config
}

// BindFlags registers the configuration flags on fs
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}

	fs.StringVarP(&f.values.ConfigFile, "config", "c", "", "YAML config file (env CALC_CONFIG)")
	fs.IntVarP(&f.values.Port, "port", "p", 0, "Server port")
	fs.StringVarP(&f.values.DatabaseURL, "database-url", "d", "", "Database URL")
	fs.StringVarP(&f.values.DatabaseType, "database-type", "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&f.values.SessionSalt, "session-salt", "", "Session token salt (prefer env)")
	fs.StringVar(&f.values.AssetUpstream, "asset-upstream", "", "Upstream origin for web assets (default: embedded)")
	fs.StringVar(&f.values.CacheVersion, "cache-version", "", "Asset cache version tag")
	fs.StringVar(&f.values.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	return f
}

// Resolve layers defaults, config file, environment and flags, in
// increasing order of precedence.
func (f *Flags) Resolve() (Config, error) {
	cfg := Defaults()

	cfg.ConfigFile = os.Getenv("CALC_CONFIG")
	if f.fs.Changed("config") {
		cfg.ConfigFile = f.values.ConfigFile
	}
	if cfg.ConfigFile != "" {
		if err := cfg.loadFile(cfg.ConfigFile); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	f.applyChanged(&cfg)

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if _, err := cfg.SlogLevel(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ParseFlags parses args on a fresh flag set and resolves the config
func ParseFlags(args []string) (Config, error) {
	fs := pflag.NewFlagSet("quickly-calc", pflag.ContinueOnError)
	flags := BindFlags(fs)

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	return flags.Resolve()
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Fall back to environment variables
func (c *Config) applyEnv() error {
	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return errors.New("invalid PORT env variable")
		}
		c.Port = port
	}

	envStrings := []struct {
		name string
		dst  *string
	}{
		{"DATABASE_URL", &c.DatabaseURL},
		{"DATABASE_TYPE", &c.DatabaseType},
		{"SESSION_SALT", &c.SessionSalt},
		{"ASSET_UPSTREAM", &c.AssetUpstream},
		{"CACHE_VERSION", &c.CacheVersion},
		{"LOG_LEVEL", &c.LogLevel},
	}
	for _, e := range envStrings {
		if v := os.Getenv(e.name); v != "" {
			*e.dst = v
		}
	}
	return nil
}

func (f *Flags) applyChanged(c *Config) {
	if f.fs.Changed("port") {
		c.Port = f.values.Port
	}
	if f.fs.Changed("database-url") {
		c.DatabaseURL = f.values.DatabaseURL
	}
	if f.fs.Changed("database-type") {
		c.DatabaseType = f.values.DatabaseType
	}
	if f.fs.Changed("session-salt") {
		c.SessionSalt = f.values.SessionSalt
	}
	if f.fs.Changed("asset-upstream") {
		c.AssetUpstream = f.values.AssetUpstream
	}
	if f.fs.Changed("cache-version") {
		c.CacheVersion = f.values.CacheVersion
	}
	if f.fs.Changed("log-level") {
		c.LogLevel = f.values.LogLevel
	}
}

// ValidateServe checks the settings only the HTTP server needs
func (c Config) ValidateServe() error {
	if c.SessionSalt == "" {
		return errors.New("SESSION_SALT required (use --session-salt or SESSION_SALT env)")
	}
	return nil
}

// Addr is the listen address for the HTTP server
func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// SlogLevel converts LogLevel for log/slog
func (c Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level %q", c.LogLevel)
}

// LoadDotEnv loads variables from .env files without overriding the
// environment. A missing file is not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}
