package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/listkit/internal/config"
	"github.com/rshade/listkit/internal/logging"
)

// Command annotations read by the root PersistentPreRunE.
const (
	// annotationInteractive marks commands that own the terminal. They never log to stderr.
	annotationInteractive = "listkit/interactive"
	// annotationDefaultConfig marks commands that must run even when the config file is invalid.
	annotationDefaultConfig = "listkit/default-config"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// streamIsTerminal reports whether a command input or output stream is a terminal.
func streamIsTerminal(stream any) bool {
	f, ok := stream.(*os.File)
	return ok && isTerminal(f)
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the listkit CLI.
// It wires up configuration, logging and tracing, and the browse, simulate and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithEnv(ver, os.LookupEnv)
}

// NewRootCmdWithEnv creates the root command with an explicit env lookup for testability.
func NewRootCmdWithEnv(ver string, lookupEnv func(string) (string, bool)) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "listkit",
		Short:         "Browse and simulate incrementally rendered lists",
		Long:          "listkit: browse large lists in the terminal, rendering only what the viewport needs",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd, lookupEnv); err != nil {
				return err
			}

			result := setupLogging(cmd, lookupEnv)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "configuration file (default $LISTKIT_HOME/config.yaml)")
	cmd.AddCommand(NewBrowseCmd(), NewSimulateCmd(), newConfigCmd(lookupEnv))

	return cmd
}

// loadConfig resolves, loads and publishes the configuration for this invocation.
func loadConfig(cmd *cobra.Command, lookupEnv func(string) (string, bool)) error {
	path, err := configPath(cmd, lookupEnv)
	if err != nil {
		return err
	}

	cfg, err := config.Load(path)
	if err != nil {
		if !hasAnnotation(cmd, annotationDefaultConfig) {
			return fmt.Errorf("loading configuration: %w", err)
		}
		cfg = config.New()
	}
	cfg.ApplyEnv(lookupEnv)
	config.SetGlobalConfig(cfg)
	return nil
}

// configPath resolves the configuration file from --config, LISTKIT_CONFIG or the config directory.
func configPath(cmd *cobra.Command, lookupEnv func(string) (string, bool)) (string, error) {
	explicit, _ := cmd.Flags().GetString("config")
	return config.ResolvePath(explicit, lookupEnv)
}

func hasAnnotation(cmd *cobra.Command, name string) bool {
	_, ok := cmd.Annotations[name]
	return ok
}

const rootCmdExample = `  # Browse a list interactively, reloading when the file changes
  listkit browse items.yaml --watch

  # Replay keys against a 20 line viewport without a terminal
  listkit simulate items.txt --height 20 --keys down,down,end

  # Initialize configuration
  listkit config init

  # Validate configuration
  listkit config validate`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd(lookupEnv func(string) (string, bool)) *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(lookupEnv), NewConfigValidateCmd(lookupEnv))
	return cmd
}
