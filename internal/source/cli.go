package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rrajen/sfdx-utility-plugins/internal/config"
	"github.com/rrajen/sfdx-utility-plugins/internal/constants"
	"github.com/rrajen/sfdx-utility-plugins/internal/deploystatus"
	deverrors "github.com/rrajen/sfdx-utility-plugins/internal/errors"
	"github.com/rrajen/sfdx-utility-plugins/internal/logging"
)

// sf CLI error names that mean the org session is missing or rejected.
//
//nolint:gochecknoglobals // fixed lookup table
var sfAuthErrorNames = []string{
	"NoDefaultEnvError",
	"NoOrgFound",
	"NamedOrgNotFoundError",
	"NoAuthInfoFound",
	"AuthInfoCreationError",
	"RefreshTokenAuthError",
}

// CLIFetcher reads deploy status through `sf project deploy report --json`.
type CLIFetcher struct {
	executor  config.CommandExecutor
	targetOrg string
}

// NewCLIFetcher creates a CLIFetcher. An empty targetOrg uses the CLI's default org.
func NewCLIFetcher(executor config.CommandExecutor, targetOrg string) *CLIFetcher {
	return &CLIFetcher{executor: executor, targetOrg: targetOrg}
}

// Name implements the logging name of the fetcher.
func (f *CLIFetcher) Name() string { return "sf-cli" }

// Fetch runs the report command and returns the envelope's result.
//
// The sf CLI exits non-zero for failed deployments while still printing the
// full JSON envelope, so the exit status alone decides nothing.
func (f *CLIFetcher) Fetch(ctx context.Context, id string) (*deploystatus.Document, error) {
	if _, err := f.executor.LookPath(constants.SalesforceCLI); err != nil {
		return nil, fmt.Errorf("%w: %s not found: %w", deverrors.ErrSourceUnavailable, constants.SalesforceCLI, err)
	}

	args := []string{"project", "deploy", "report", "--job-id", id, "--json"}
	if f.targetOrg != "" {
		args = append(args, "--target-org", f.targetOrg)
	}

	zerolog.Ctx(ctx).Debug().
		Str("source", f.Name()).
		Str("deployment_id", id).
		Str("target_org", logging.SafeValue("target_org", f.targetOrg)).
		Msg("running sf project deploy report")

	output, runErr := f.executor.Run(ctx, constants.SalesforceCLI, args...)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	if strings.TrimSpace(output) == "" {
		if runErr != nil {
			return nil, fmt.Errorf("%w: sf project deploy report: %w", deverrors.ErrCommandFailed, runErr)
		}
		return nil, fmt.Errorf("%w: sf returned no output", deverrors.ErrFetchFailed)
	}

	envelope, err := deploystatus.Parse([]byte(output))
	if err != nil {
		return nil, err
	}

	if result, ok := envelope.Child("result"); ok && isMapping(result) {
		return unwrap(result), nil
	}
	return nil, envelopeError(envelope, runErr)
}

// envelopeError classifies an sf JSON envelope that carries no result.
func envelopeError(envelope *deploystatus.Document, runErr error) error {
	name := childText(envelope, "name")
	message := childText(envelope, "message")
	detail := strings.Trim(name+": "+message, ": ")
	if detail == "" {
		detail = "sf reported no result"
	}

	for _, authName := range sfAuthErrorNames {
		if name == authName {
			return fmt.Errorf("%w: %s", deverrors.ErrUnauthorized, detail)
		}
	}

	upper := strings.ToUpper(name + " " + message)
	switch {
	case strings.Contains(upper, "INVALID_SESSION_ID"):
		return fmt.Errorf("%w: %s", deverrors.ErrUnauthorized, detail)
	case strings.Contains(upper, "INVALID_CROSS_REFERENCE_KEY"),
		strings.Contains(upper, "INVALID_ID_FIELD"),
		strings.Contains(upper, "MALFORMED_ID"):
		return fmt.Errorf("%w: %s", deverrors.ErrDeploymentNotFound, detail)
	}

	if runErr != nil {
		return fmt.Errorf("%w: %s: %w", deverrors.ErrFetchFailed, detail, runErr)
	}
	return fmt.Errorf("%w: %s", deverrors.ErrFetchFailed, detail)
}

func childText(doc *deploystatus.Document, key string) string {
	if child, ok := doc.Child(key); ok {
		return child.Text().Text
	}
	return ""
}
