package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/listkit/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd(lookupEnv func(string) (string, bool)) *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the configuration file for syntax and semantic correctness.

This includes:
- YAML syntax of every section
- Schema version compatibility
- Logging level and format
- List settings such as wheel_step`,
		Example: `  # Validate current configuration
  listkit config validate

  # Validate and show detailed information
  listkit config validate --verbose`,
		Annotations: map[string]string{annotationDefaultConfig: ""},
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := configPath(cmd, lookupEnv)
			if err != nil {
				return err
			}
			return runConfigValidate(cmd, path, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, path string, verbose bool) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cmd.Printf("No configuration file at %s, defaults are in effect\n", path)
		return nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("✅ Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, path, cfg)
	}

	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, path string, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Configuration file: %s\n", path)
	cmd.Printf("  Schema version: %s\n", cfg.Version)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	cmd.Printf("  Logging format: %s\n", cfg.Logging.Format)
	cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	cmd.Printf("  Watch sources: %t\n", cfg.List.Watch)
	cmd.Printf("  Show detail: %t\n", cfg.List.ShowDetail)
	cmd.Printf("  Wheel step: %d\n", cfg.List.WheelStep)

	printKeyDetails(cmd, cfg.Keys)
}

// printKeyDetails prints the configured key overrides.
func printKeyDetails(cmd *cobra.Command, keys config.KeysConfig) {
	overrides := []struct {
		action string
		keys   []string
	}{
		{"up", keys.Up}, {"down", keys.Down}, {"home", keys.Home}, {"end", keys.End},
		{"page_up", keys.PageUp}, {"page_down", keys.PageDown},
		{"filter", keys.Filter}, {"choose", keys.Choose}, {"quit", keys.Quit},
	}

	printed := false
	for _, o := range overrides {
		if len(o.keys) == 0 {
			continue
		}
		if !printed {
			cmd.Println("  Key overrides:")
			printed = true
		}
		cmd.Printf("    - %s: %s\n", o.action, strings.Join(o.keys, ", "))
	}
	if !printed {
		cmd.Println("  No key overrides configured")
	}
}
