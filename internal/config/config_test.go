package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	cfg := New()

	assert.Equal(t, SchemaVersion, cfg.Version)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.True(t, cfg.List.ShowDetail)
	assert.False(t, cfg.List.Watch)
	assert.Equal(t, DefaultWheelStep, cfg.List.WheelStep)
	assert.NotEmpty(t, cfg.List.Placeholder)
	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, New(), cfg)
	})

	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
		require.NoError(t, err)
		assert.Equal(t, New(), cfg)
	})

	t.Run("partial file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: warn\n"), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "warn", cfg.Logging.Level)
		assert.Equal(t, DefaultWheelStep, cfg.List.WheelStep)
	})

	t.Run("unsupported version", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("version: 2.0.0\n"), 0o600))

		_, err := Load(path)
		require.ErrorIs(t, err, ErrUnsupportedVersion)
		assert.Contains(t, err.Error(), path)
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "empty version", mutate: func(c *Config) { c.Version = "" }},
		{name: "minor version", mutate: func(c *Config) { c.Version = "1.4.2" }},
		{name: "major version", mutate: func(c *Config) { c.Version = "2.0.0" }, wantErr: ErrUnsupportedVersion},
		{name: "not semver", mutate: func(c *Config) { c.Version = "latest" }, wantErr: ErrInvalidConfig},
		{name: "upper case level", mutate: func(c *Config) { c.Logging.Level = "DEBUG" }},
		{name: "bad level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: ErrInvalidConfig},
		{name: "json format", mutate: func(c *Config) { c.Logging.Format = "json" }},
		{name: "bad format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: ErrInvalidConfig},
		{name: "zero wheel step", mutate: func(c *Config) { c.List.WheelStep = 0 }},
		{name: "negative wheel step", mutate: func(c *Config) { c.List.WheelStep = -1 }, wantErr: ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvLogLevel:  "debug",
		EnvLogFormat: "",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := New()
	cfg.ApplyEnv(lookup)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format, "empty values are ignored")
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := New()
	cfg.List.Watch = true
	cfg.Keys.Down = []string{"n"}
	require.NoError(t, cfg.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
