package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/listkit/internal/config"
)

func TestConfigInit(t *testing.T) {
	home := setupCLITest(t)
	configPath := filepath.Join(home, "config.yaml")

	output, err := executeCLI(t, nil, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, output, "Configuration initialized successfully")
	assert.Contains(t, output, configPath)

	cfg, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, config.New(), cfg)

	_, err = executeCLI(t, nil, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = executeCLI(t, nil, "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigInit_ExplicitPath(t *testing.T) {
	setupCLITest(t)
	target := filepath.Join(t.TempDir(), "custom", "listkit.yaml")

	_, err := executeCLI(t, nil, "--config", target, "config", "init")
	require.NoError(t, err)
	assert.FileExists(t, target)
}

func TestConfigInit_EnvPath(t *testing.T) {
	setupCLITest(t)
	target := filepath.Join(t.TempDir(), "env.yaml")

	_, err := executeCLI(t, map[string]string{config.EnvConfig: target}, "config", "init")
	require.NoError(t, err)
	assert.FileExists(t, target)
}

func TestConfigValidate(t *testing.T) {
	t.Run("no file", func(t *testing.T) {
		setupCLITest(t)

		output, err := executeCLI(t, nil, "config", "validate")
		require.NoError(t, err)
		assert.Contains(t, output, "defaults are in effect")
	})

	t.Run("valid file verbose", func(t *testing.T) {
		home := setupCLITest(t)
		content := "version: 1.0.0\nlist:\n  wheel_step: 5\nkeys:\n  quit: [x]\n"
		require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(content), 0o600))

		output, err := executeCLI(t, nil, "config", "validate", "--verbose")
		require.NoError(t, err)
		assert.Contains(t, output, "Configuration is valid")
		assert.Contains(t, output, "Wheel step: 5")
		assert.Contains(t, output, "quit: x")
	})

	t.Run("unsupported version", func(t *testing.T) {
		home := setupCLITest(t)
		require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("version: 3.0.0\n"), 0o600))

		_, err := executeCLI(t, nil, "config", "validate")
		require.Error(t, err)
		require.ErrorIs(t, err, config.ErrUnsupportedVersion)
		assert.Contains(t, err.Error(), "configuration validation failed")
	})
}

func TestRoot_InvalidConfigFailsOtherCommands(t *testing.T) {
	home := setupCLITest(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("logging:\n  format: xml\n"), 0o600))

	_, err := executeCLI(t, nil, "simulate", writeNumberedList(t, 3))
	require.Error(t, err)
	require.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "loading configuration")
}

func TestRoot_EnvOverridesLogging(t *testing.T) {
	setupCLITest(t)

	env := map[string]string{config.EnvLogLevel: "error", config.EnvLogFormat: "json"}
	_, err := executeCLI(t, env, "config", "validate")
	require.NoError(t, err)

	cfg := config.GetGlobalConfig()
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}
