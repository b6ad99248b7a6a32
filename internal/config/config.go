package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// SchemaVersion is the configuration schema version written by New.
const SchemaVersion = "1.0.0"

// supportedSchema is the range of configuration schema versions this build reads.
const supportedSchema = "^1"

// DefaultWheelStep is the number of rows scrolled per mouse wheel notch.
const DefaultWheelStep = 3

// configFileName is the file name looked up in the configuration directory.
const configFileName = "config.yaml"

// Configuration errors.
var (
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrUnsupportedVersion = errors.New("unsupported configuration version")
)

// Config is the listkit configuration file.
type Config struct {
	Version string        `yaml:"version"`
	Logging LoggingConfig `yaml:"logging"`
	List    ListConfig    `yaml:"list"`
	Keys    KeysConfig    `yaml:"keys"`
}

// LoggingConfig controls log level, format and destination.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// ListConfig controls list browsing behavior.
type ListConfig struct {
	// Watch reloads sources when they change on disk.
	Watch bool `yaml:"watch"`
	// ShowDetail renders the detail line under each entry title.
	ShowDetail bool `yaml:"show_detail"`
	// WheelStep is the number of rows scrolled per mouse wheel notch.
	WheelStep int `yaml:"wheel_step"`
	// Placeholder fills viewport rows that are not materialized yet.
	Placeholder string `yaml:"placeholder"`
}

// KeysConfig maps browser actions to key names as reported by Bubble Tea.
// An empty list keeps the default binding for that action.
type KeysConfig struct {
	Up       []string `yaml:"up,omitempty"`
	Down     []string `yaml:"down,omitempty"`
	Home     []string `yaml:"home,omitempty"`
	End      []string `yaml:"end,omitempty"`
	PageUp   []string `yaml:"page_up,omitempty"`
	PageDown []string `yaml:"page_down,omitempty"`
	Filter   []string `yaml:"filter,omitempty"`
	Choose   []string `yaml:"choose,omitempty"`
	Quit     []string `yaml:"quit,omitempty"`
}

// New returns a configuration with default values.
func New() *Config {
	return &Config{
		Version: SchemaVersion,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		List: ListConfig{
			ShowDetail:  true,
			WheelStep:   DefaultWheelStep,
			Placeholder: "·",
		},
	}
}

// Load reads the configuration at path on top of the defaults.
// A missing file is not an error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := New()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err := ShallowMergeYAML(cfg, path); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides logging settings from LISTKIT_LOG_LEVEL and LISTKIT_LOG_FORMAT.
func (c *Config) ApplyEnv(lookupEnv func(string) (string, bool)) {
	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookupEnv(EnvLogFormat); ok && v != "" {
		c.Logging.Format = v
	}
}

// Validate checks the schema version and field values.
func (c *Config) Validate() error {
	if err := checkVersion(c.Version); err != nil {
		return err
	}

	if c.Logging.Level != "" {
		if _, err := zerolog.ParseLevel(strings.ToLower(c.Logging.Level)); err != nil {
			return fmt.Errorf("%w: logging.level %q", ErrInvalidConfig, c.Logging.Level)
		}
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("%w: logging.format %q must be console or json", ErrInvalidConfig, c.Logging.Format)
	}
	if c.List.WheelStep < 0 {
		return fmt.Errorf("%w: list.wheel_step must be >= 0, got %d", ErrInvalidConfig, c.List.WheelStep)
	}
	return nil
}

func checkVersion(version string) error {
	if version == "" {
		return nil
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: version %q is not a semantic version: %w", ErrInvalidConfig, version, err)
	}
	constraint, err := semver.NewConstraint(supportedSchema)
	if err != nil {
		return err
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s (supported %s)", ErrUnsupportedVersion, v, supportedSchema)
	}
	return nil
}

// Save writes c to path as YAML, creating the parent directory.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
