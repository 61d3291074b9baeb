package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rrajen/sfdx-utility-plugins/internal/config"
	"github.com/rrajen/sfdx-utility-plugins/internal/deploystatus"
	"github.com/rrajen/sfdx-utility-plugins/internal/errors"
	"github.com/rrajen/sfdx-utility-plugins/internal/report"
	"github.com/rrajen/sfdx-utility-plugins/internal/source"
	"github.com/rrajen/sfdx-utility-plugins/internal/tui"
)

// ArtifactsFlags holds flags specific to the artifacts command.
type ArtifactsFlags struct {
	// IDs are the deployment ids to report on, in order.
	IDs []string
	// Summary prints counts per component type instead of every component.
	Summary bool
	// NoColors disables ANSI colors on component labels.
	NoColors bool
	// NoGlyphs drops the ✔ / ✖ markers from component labels.
	NoGlyphs bool
	// JSON dumps the raw deploy result instead of the report.
	JSON bool
	// File reads the deploy result from a saved file ("-" for stdin).
	File string
	// Source overrides source.kind.
	Source string
	// TargetOrg overrides source.target_org.
	TargetOrg string
}

// FetcherFactory builds the deploy status fetcher for a configuration.
type FetcherFactory func(cfg *config.SourceConfig, opts source.Options) (source.Fetcher, error)

// artifactsDeps holds the process-level dependencies of the artifacts command.
type artifactsDeps struct {
	newFetcher FetcherFactory
	stdin      io.Reader
	stderr     io.Writer
	lookupEnv  func(string) (string, bool)
}

// AddArtifactsCommand adds the artifacts command to a parent command.
func AddArtifactsCommand(parent *cobra.Command, global *GlobalFlags) {
	flags := &ArtifactsFlags{}
	parent.AddCommand(newArtifactsCmd(global, flags))
}

// newArtifactsCmd creates the artifacts command.
func newArtifactsCmd(global *GlobalFlags, flags *ArtifactsFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "artifacts",
		Short: "Print the result of a metadata deployment",
		Long: `Print the deploy result of one or more deployments.

The report has a summary of the deployment counts, the deployed components
grouped by metadata type (marked ✔ for success and ✖ for failure), and every
component error with its file position.

Examples:
  devops deployment artifacts -i 0Afq000001HKFDO
  devops deployment artifacts -i 0Afq000001HKFDO -s          # counts per type
  devops deployment artifacts -i 0Afq000001HKFDO --json      # raw deploy result
  devops deployment artifacts -i 0Afq000001HKFDO --target-org uat
  sf project deploy report --job-id 0Afq000001HKFDO --json | devops deployment artifacts -i 0Afq000001HKFDO --file -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runArtifacts(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), global, flags)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringArrayVarP(&flags.IDs, "deploymentid", "i", nil, "deployment id to report on (repeatable)")
	cmd.Flags().BoolVarP(&flags.Summary, "summary", "s", false, "print the number of components per type instead of every component")
	cmd.Flags().BoolVar(&flags.NoColors, "nocolors", false, "disable colors on component labels")
	cmd.Flags().BoolVar(&flags.NoGlyphs, "noglyphs", false, "disable the ✔ / ✖ markers on component labels")
	cmd.Flags().BoolVar(&flags.JSON, "json", false, "print the raw deploy result as JSON")
	cmd.Flags().StringVar(&flags.File, "file", "", "read the deploy result from a file (- for stdin)")
	cmd.Flags().StringVar(&flags.Source, "source", "", "deploy status source (auto|cli|rest|file)")
	cmd.Flags().StringVar(&flags.TargetOrg, "target-org", "", "org alias or username passed to the sf CLI")

	return cmd
}

// runArtifacts executes the artifacts command with default dependencies.
func runArtifacts(ctx context.Context, w, errW io.Writer, global *GlobalFlags, flags *ArtifactsFlags) error {
	return runArtifactsWithDeps(ctx, w, global, flags, artifactsDeps{
		newFetcher: source.New,
		stdin:      os.Stdin,
		stderr:     errW,
		lookupEnv:  os.LookupEnv,
	})
}

// runArtifactsWithDeps executes the artifacts command with custom dependencies.
// Every id is fetched before anything is printed; reports are then written in
// the order the ids were given. A failed id does not stop the others: with
// several ids, each failure is printed as a warning and the returned error
// counts them.
func runArtifactsWithDeps(ctx context.Context, w io.Writer, global *GlobalFlags, flags *ArtifactsFlags, deps artifactsDeps) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := validateIDs(flags.IDs); err != nil {
		return err
	}

	cfg, err := loadArtifactsConfig(ctx, global, flags, deps)
	if err != nil {
		return err
	}

	fetcher, err := deps.newFetcher(&cfg.Source, source.Options{Path: flags.File, Stdin: deps.stdin})
	if err != nil {
		return errors.Wrap(err, "failed to set up deploy status source")
	}

	logger := zerolog.Ctx(ctx)
	logger.Debug().
		Strs("ids", flags.IDs).
		Str("source", sourceName(cfg, flags)).
		Str("format", cfg.Output.Format).
		Msg("fetching deploy status")

	results := source.FetchAll(ctx, fetcher, flags.IDs, cfg.Source.Concurrency)

	write, err := newReportWriter(w, cfg, flags)
	if err != nil {
		return err
	}

	var failed []source.Result
	for _, res := range results {
		if res.Err != nil {
			logger.Debug().Err(res.Err).Str("id", res.ID).Msg("deploy status fetch failed")
			failed = append(failed, res)
			continue
		}
		if err := write(res.ID, res.Document); err != nil {
			return errors.Wrap(err, "failed to write report")
		}
	}

	return failedIDsError(deps.stderr, cfg, len(results), failed)
}

// failedIDsError turns failed fetches into the command's error. A single id
// returns its own error; with several ids each failure is first printed as a
// warning on errW.
func failedIDsError(errW io.Writer, cfg *config.Config, total int, failed []source.Result) error {
	if len(failed) == 0 {
		return nil
	}
	if total == 1 {
		return errors.Wrapf(failed[0].Err, "deployment %s", failed[0].ID)
	}

	if errW == nil {
		errW = io.Discard
	}
	out := tui.NewOutput(errW, messageFormat(cfg))
	errs := make([]error, 0, len(failed))
	for _, res := range failed {
		out.Warning(fmt.Sprintf("deployment %s: %s", res.ID, errors.UserMessage(res.Err)))
		errs = append(errs, errors.Wrapf(res.Err, "deployment %s", res.ID))
	}
	return fmt.Errorf("%w: %d of %d: %w", errors.ErrDeploymentsFailed, len(failed), total, stderrors.Join(errs...))
}

// messageFormat picks the tui output format for stderr messages.
func messageFormat(cfg *config.Config) string {
	if cfg.Output.Format == config.FormatJSON {
		return OutputJSON
	}
	return OutputText
}

// validateIDs requires at least one id and checks the shape of each.
func validateIDs(ids []string) error {
	if len(ids) == 0 {
		return errors.NewExitCode2Error(errors.ErrDeploymentIDRequired)
	}
	for _, id := range ids {
		if err := source.ValidateDeploymentID(id); err != nil {
			return errors.NewExitCode2Error(err)
		}
	}
	return nil
}

// loadArtifactsConfig loads the layered configuration with the command's
// flags applied on top.
func loadArtifactsConfig(ctx context.Context, global *GlobalFlags, flags *ArtifactsFlags, deps artifactsDeps) (*config.Config, error) {
	overrides := &config.Config{
		Source: config.SourceConfig{
			Kind:      flags.Source,
			TargetOrg: flags.TargetOrg,
		},
	}
	switch {
	case flags.JSON:
		overrides.Output.Format = config.FormatJSON
	case global.outputSet:
		overrides.Output.Format = global.Output
	}

	var (
		cfg *config.Config
		err error
	)
	if global.ConfigPath != "" {
		cfg, err = config.LoadFileWithOverrides(ctx, global.ConfigPath, overrides)
	} else {
		cfg, err = config.LoadWithOverrides(ctx, overrides)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load configuration")
	}

	// Bools only turn settings off, so they are applied after loading.
	if flags.NoColors {
		cfg.Output.Colors = false
	}
	if _, ok := deps.lookupEnv("NO_COLOR"); ok {
		cfg.Output.Colors = false
	}
	if flags.NoGlyphs {
		cfg.Output.Glyphs = false
	}
	return cfg, nil
}

// newReportWriter returns the function that prints one deployment, either as
// the text report or as the raw document.
func newReportWriter(w io.Writer, cfg *config.Config, flags *ArtifactsFlags) (func(id string, doc *deploystatus.Document) error, error) {
	if cfg.Output.Format == config.FormatText {
		mode := report.ModeFull
		if flags.Summary {
			mode = report.ModeSummary
		}
		renderer := report.NewRenderer(w, report.Options{
			Mode:  mode,
			Style: report.NewStyle(cfg.Output.Colors, cfg.Output.Glyphs),
		})
		return renderer.Render, nil
	}

	format, err := report.ParseRawFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	return func(_ string, doc *deploystatus.Document) error {
		return report.WriteRaw(w, report.RenderRaw(doc), format)
	}, nil
}

// sourceName describes where documents come from, for logging.
func sourceName(cfg *config.Config, flags *ArtifactsFlags) string {
	if flags.File != "" {
		return fmt.Sprintf("file:%s", flags.File)
	}
	return cfg.Source.Kind
}
