package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/listkit/internal/config"
	"github.com/rshade/listkit/internal/logging"
)

// debugLogFile is the log file used by interactive commands run with --debug
// when no file is configured.
const debugLogFile = "listkit.log"

// setupLogging configures logging based on config file, environment, and CLI flags.
func setupLogging(cmd *cobra.Command, lookupEnv func(string) (string, bool)) logging.LogPathResult {
	loggingCfg := config.GetLoggingConfig()
	interactive := hasAnnotation(cmd, annotationInteractive)

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		if !interactive {
			loggingCfg.Format = "console"
			loggingCfg.File = ""
		}
	}

	// The alternate screen owns the terminal, so interactive debug output goes to a file.
	if interactive && debug && loggingCfg.File == "" {
		if dir, err := config.GetConfigDir(); err == nil {
			loggingCfg.File = filepath.Join(dir, debugLogFile)
		}
	}

	// Ensure log directory exists after all overrides have been applied.
	if loggingCfg.File != "" {
		if err := config.EnsureLogDir(); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not create log directory: %v\n", err)
		}
	}

	logCfg := loggingCfg.ToLoggingConfig()
	if interactive && logCfg.Output == logging.OutputStderr {
		logCfg.Output = logging.OutputDiscard
	}
	if v, ok := lookupEnv(config.EnvLogCaller); ok && v != "" {
		logCfg.Caller = true
	}

	result := logging.NewLoggerWithPath(logCfg)
	logger = logging.ComponentLogger(result.Logger, "cli")

	if result.UsingFile {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Info().Ctx(ctx).Str("command", cmd.Name()).Str("trace_id", traceID).Msg("command started")

	return result
}

// cleanupLogging closes the log file handle, if any.
func cleanupLogging(logResult *logging.LogPathResult) error {
	if logResult != nil {
		return logResult.Close()
	}
	return nil
}
