// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envNames = []string{
	"CALC_CONFIG", "PORT", "DATABASE_URL", "DATABASE_TYPE", "SESSION_SALT",
	"ASSET_UPSTREAM", "CACHE_VERSION", "LOG_LEVEL",
}

// clearEnv blanks every variable the config reads; blank means unset
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range envNames {
		t.Setenv(name, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseFlags_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseFlags([]string{})
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
	assert.Equal(t, ":8318", cfg.Addr())
}

func TestParseFlags_EnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("SESSION_SALT", "test-salt")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := ParseFlags([]string{})
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "postgres://test", cfg.DatabaseURL)
	assert.Equal(t, "postgres", cfg.DatabaseType)
	assert.Equal(t, "test-salt", cfg.SessionSalt)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("SESSION_SALT", "env-salt")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "--session-salt", "s1"})
	require.NoError(t, err)

	// CLI should override env
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "file:test.db", cfg.DatabaseURL)
	assert.Equal(t, "s1", cfg.SessionSalt)
}

func TestParseFlags_ConfigFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "calc.yaml", `
port: 7000
database_type: postgres
database_url: postgres://from-file
cache_version: v7
asset_upstream: http://localhost:5173
`)
	t.Setenv("DATABASE_URL", "postgres://from-env")

	cfg, err := ParseFlags([]string{"--config", path, "--cache-version", "v9"})
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, "postgres", cfg.DatabaseType)
	assert.Equal(t, "http://localhost:5173", cfg.AssetUpstream)
	// env beats file, flags beat both
	assert.Equal(t, "postgres://from-env", cfg.DatabaseURL)
	assert.Equal(t, "v9", cfg.CacheVersion)
	assert.Equal(t, path, cfg.ConfigFile)
}

func TestParseFlags_ConfigFileFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("CALC_CONFIG", writeFile(t, "calc.yaml", "port: 7100\n"))

	cfg, err := ParseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, 7100, cfg.Port)
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"bad port env", map[string]string{"PORT": "abc"}, nil},
		{"port out of range", nil, []string{"-p", "70000"}},
		{"bad log level", nil, []string{"--log-level", "loud"}},
		{"missing config file", nil, []string{"-c", "/nonexistent/calc.yaml"}},
		{"unknown flag", nil, []string{"--frobnicate"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := ParseFlags(tt.args)
			assert.Error(t, err)
		})
	}
}

func TestParseFlags_MalformedConfigFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "calc.yaml", "port: [not a number\n")

	_, err := ParseFlags([]string{"-c", path})
	assert.Error(t, err)
}

func TestValidateServe(t *testing.T) {
	cfg := Defaults()
	assert.Error(t, cfg.ValidateServe())

	cfg.SessionSalt = "salt"
	assert.NoError(t, cfg.ValidateServe())
}

func TestSlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"":      slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range tests {
		got, err := Config{LogLevel: in}.SlogLevel()
		require.NoError(t, err)
		assert.Equal(t, want, got, "level %q", in)
	}
}

func TestLoadDotEnv(t *testing.T) {
	os.Unsetenv("QC_DOTENV_FRESH")
	t.Cleanup(func() { os.Unsetenv("QC_DOTENV_FRESH") })
	t.Setenv("QC_DOTENV_PRESET", "already-set")

	path := writeFile(t, ".env", "QC_DOTENV_FRESH=v3\nQC_DOTENV_PRESET=from-dotenv\n")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "v3", os.Getenv("QC_DOTENV_FRESH"))
	// the environment wins over the file
	assert.Equal(t, "already-set", os.Getenv("QC_DOTENV_PRESET"))

	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}
