package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) (string, bool) { return "", false }

func TestGlobalConfig(t *testing.T) {
	// Reset global config
	ResetGlobalConfigForTest()
	t.Cleanup(ResetGlobalConfigForTest)

	// Test GetGlobalConfig initializes if needed
	cfg := GetGlobalConfig()
	assert.NotNil(t, cfg)
	assert.Equal(t, "info", cfg.Logging.Level)

	// Test that subsequent calls return the same instance
	cfg2 := GetGlobalConfig()
	assert.Same(t, cfg, cfg2)

	// SetGlobalConfig replaces the instance
	replacement := New()
	SetGlobalConfig(replacement)
	assert.Same(t, replacement, GetGlobalConfig())

	// Test ResetGlobalConfigForTest resets the instance
	ResetGlobalConfigForTest()
	cfg3 := GetGlobalConfig()
	assert.NotSame(t, replacement, cfg3)
}

func TestGetLoggingConfig(t *testing.T) {
	ResetGlobalConfigForTest()
	t.Cleanup(ResetGlobalConfigForTest)

	cfg := GetGlobalConfig()
	cfg.Logging.Level = "debug"
	cfg.Logging.File = "/tmp/listkit-test.log"

	lc := GetLoggingConfig()
	assert.Equal(t, "debug", lc.Level)

	converted := lc.ToLoggingConfig()
	assert.Equal(t, "file", converted.Output)
	assert.Equal(t, "/tmp/listkit-test.log", converted.File)

	lc.File = ""
	assert.Equal(t, "stderr", lc.ToLoggingConfig().Output)
}

func TestEnsureLogDir(t *testing.T) {
	ResetGlobalConfigForTest()
	t.Cleanup(ResetGlobalConfigForTest)

	// No log file configured is a no-op.
	require.NoError(t, EnsureLogDir())

	logDir := filepath.Join(t.TempDir(), "nested", "logs")
	GetGlobalConfig().Logging.File = filepath.Join(logDir, "listkit.log")
	require.NoError(t, EnsureLogDir())
	assert.DirExists(t, logDir)
}

func TestGetConfigDir(t *testing.T) {
	t.Run("home override", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(EnvHome, dir)

		got, err := GetConfigDir()
		require.NoError(t, err)
		assert.Equal(t, dir, got)
	})

	t.Run("user home", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv(EnvHome, "")
		t.Setenv("HOME", home)

		got, err := GetConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".listkit"), got)
	})
}

func TestResolvePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)

	env := func(key string) (string, bool) {
		if key == EnvConfig {
			return "/etc/listkit.yaml", true
		}
		return "", false
	}

	tests := []struct {
		name      string
		explicit  string
		lookupEnv func(string) (string, bool)
		expect    string
	}{
		{name: "explicit wins", explicit: "custom.yaml", lookupEnv: env, expect: "custom.yaml"},
		{name: "environment", lookupEnv: env, expect: "/etc/listkit.yaml"},
		{name: "config directory", lookupEnv: noEnv, expect: filepath.Join(home, "config.yaml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePath(tt.explicit, tt.lookupEnv)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, got)
		})
	}
}
