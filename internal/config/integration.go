package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Environment variables read by listkit.
const (
	EnvHome      = "LISTKIT_HOME"
	EnvConfig    = "LISTKIT_CONFIG"
	EnvLogLevel  = "LISTKIT_LOG_LEVEL"
	EnvLogFormat = "LISTKIT_LOG_FORMAT"
	EnvLogCaller = "LISTKIT_LOG_CALLER"
)

// GlobalConfig holds the global configuration instance.
var GlobalConfig *Config        //nolint:gochecknoglobals // Singleton pattern for configuration
var globalConfigMu sync.RWMutex //nolint:gochecknoglobals // Guards GlobalConfig

// SetGlobalConfig replaces the global configuration.
func SetGlobalConfig(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	GlobalConfig = cfg
}

// ResetGlobalConfigForTest resets the global config for testing purposes.
func ResetGlobalConfigForTest() {
	SetGlobalConfig(nil)
}

// GetGlobalConfig returns the global configuration, defaulting it if unset.
func GetGlobalConfig() *Config {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	if GlobalConfig == nil {
		GlobalConfig = New()
	}
	return GlobalConfig
}

// GetConfigDir returns the listkit configuration directory.
func GetConfigDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".listkit"), nil
}

// ResolvePath picks the configuration file: the explicit path, then
// LISTKIT_CONFIG, then config.yaml in the configuration directory.
func ResolvePath(explicit string, lookupEnv func(string) (string, bool)) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if v, ok := lookupEnv(EnvConfig); ok && v != "" {
		return v, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// EnsureLogDir ensures the directory for the configured log file exists.
func EnsureLogDir() error {
	cfg := GetGlobalConfig()
	if cfg.Logging.File == "" {
		return nil
	}
	logDir := filepath.Dir(cfg.Logging.File)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return fmt.Errorf("failed to create log directory %q: %w", logDir, err)
	}
	return nil
}
