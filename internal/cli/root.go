// Package cli provides the command-line interface for devops.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rrajen/sfdx-utility-plugins/internal/constants"
	"github.com/rrajen/sfdx-utility-plugins/internal/errors"
	"github.com/rrajen/sfdx-utility-plugins/internal/tui"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// globalLogger stores the initialized logger for use by subcommands.
// This is set during PersistentPreRunE and should be accessed via GetLogger.
// Access is protected by globalLoggerMu for thread safety.
var (
	globalLogger   zerolog.Logger //nolint:gochecknoglobals // CLI logger requires global access
	globalLoggerMu sync.RWMutex   //nolint:gochecknoglobals // Protects globalLogger
)

// GetLogger returns the initialized logger for use by subcommands.
//
// IMPORTANT: This function MUST only be called after the root command's
// PersistentPreRunE has executed. Calling it before initialization will
// return a zero-value logger that discards all log output.
//
// Commands normally read the logger from their context with zerolog.Ctx;
// GetLogger is for code that has no context at hand.
func GetLogger() zerolog.Logger {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	return globalLogger
}

// newRootCmd creates and returns the root command for the devops CLI.
func newRootCmd(flags *GlobalFlags, info BuildInfo) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   constants.AppName,
		Short: "devops - Salesforce deployment utilities",
		Long: `devops reports on Salesforce metadata deployments.

It fetches the deploy status of one or more deployment ids (through the sf CLI,
the Metadata REST API, or saved files) and prints a readable report: a summary
of the counts, the components grouped by type, and every component error with
its location.`,
		Version: formatVersion(info),
		// Run displays help when the root command is invoked without subcommands.
		// This ensures PersistentPreRunE is called for flag validation.
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := BindGlobalFlags(v, cmd); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}
			resolveGlobalFlags(v, cmd, flags)

			if !IsValidOutputFormat(flags.Output) {
				return fmt.Errorf("%w: %q must be one of %v", errors.ErrInvalidOutputFormat, flags.Output, ValidOutputFormats())
			}

			globalLoggerMu.Lock()
			globalLogger = InitLogger(flags.Verbose, flags.Quiet)
			logger := globalLogger.With().Str("run_id", uuid.NewString()).Logger()
			globalLogger = logger
			globalLoggerMu.Unlock()

			cmd.SetContext(logger.WithContext(contextOf(cmd)))
			return nil
		},
		// Errors are printed by Execute through tui.Output.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	AddGlobalFlags(cmd, flags)

	AddDeploymentCommand(cmd, flags)

	return cmd
}

// contextOf returns the command context, or a background context when the
// command was executed without one.
func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command with the provided context and build info.
// A failing command has its error printed on stderr, with the suggested
// action, in the selected output format. The error is returned so the
// caller can pick the exit code.
func Execute(ctx context.Context, info BuildInfo) error {
	flags := &GlobalFlags{}
	//nolint:contextcheck // Cobra command pattern uses cmd.Context() internally
	return execute(ctx, newRootCmd(flags, info), flags)
}

// execute runs root and reports a failure on the stderr of the command that
// ran.
func execute(ctx context.Context, root *cobra.Command, flags *GlobalFlags) error {
	executed, err := root.ExecuteContextC(ctx)
	if err != nil {
		if executed == nil {
			executed = root
		}
		logger := GetLogger()
		logger.Debug().Err(err).Str("command", executed.CommandPath()).Msg("command failed")
		reportError(executed.ErrOrStderr(), errorFormat(executed, flags), err)
	}
	CloseLogFile()
	return err
}

// errorFormat returns the output format for an error of cmd. A command's own
// --json flag asks for JSON the same way --output json does.
func errorFormat(cmd *cobra.Command, flags *GlobalFlags) string {
	if cmd != nil {
		if f := cmd.Flags().Lookup("json"); f != nil && f.Changed && f.Value.String() == "true" {
			return OutputJSON
		}
	}
	if IsValidOutputFormat(flags.Output) {
		return flags.Output
	}
	return OutputText
}

// reportError prints err on w.
func reportError(w io.Writer, format string, err error) {
	if w == nil {
		w = os.Stderr
	}
	tui.NewOutput(w, format).Error(tui.FromError(err))
}
