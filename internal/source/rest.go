package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rrajen/sfdx-utility-plugins/internal/constants"
	"github.com/rrajen/sfdx-utility-plugins/internal/deploystatus"
	deverrors "github.com/rrajen/sfdx-utility-plugins/internal/errors"
	"github.com/rrajen/sfdx-utility-plugins/internal/logging"
)

// maxResponseBytes caps how much of a REST response is read.
const maxResponseBytes = 64 << 20

// HTTPClient abstracts HTTP operations for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: constants.DefaultSourceTimeout}
}

// RESTFetcher reads deploy status from the Metadata REST API
// deployRequest resource.
type RESTFetcher struct {
	httpClient  HTTPClient
	instanceURL string
	apiVersion  string
	token       string
}

// NewRESTFetcherWithHTTP creates a RESTFetcher with a custom HTTP client.
func NewRESTFetcherWithHTTP(httpClient HTTPClient, instanceURL, apiVersion, token string) *RESTFetcher {
	if apiVersion == "" {
		apiVersion = constants.DefaultAPIVersion
	}
	return &RESTFetcher{
		httpClient:  httpClient,
		instanceURL: strings.TrimRight(instanceURL, "/"),
		apiVersion:  strings.TrimPrefix(apiVersion, "v"),
		token:       token,
	}
}

// Name implements the logging name of the fetcher.
func (f *RESTFetcher) Name() string { return "rest" }

// Endpoint returns the deployRequest URL for id.
func (f *RESTFetcher) Endpoint(id string) string {
	return fmt.Sprintf("%s/services/data/v%s/metadata/deployRequest/%s?includeDetails=true",
		f.instanceURL, f.apiVersion, url.PathEscape(id))
}

// Fetch requests the deploy result with component details.
func (f *RESTFetcher) Fetch(ctx context.Context, id string) (*deploystatus.Document, error) {
	if f.instanceURL == "" {
		return nil, fmt.Errorf("%w: no instance url configured", deverrors.ErrSourceUnavailable)
	}
	if f.token == "" {
		return nil, fmt.Errorf("%w: no access token in the environment", deverrors.ErrSourceUnavailable)
	}

	endpoint := f.Endpoint(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+f.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", constants.AppName+"-cli")

	zerolog.Ctx(ctx).Debug().
		Str("source", f.Name()).
		Str("deployment_id", id).
		Str("url", logging.SafeValue("url", endpoint)).
		Msg("requesting deploy status")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: HTTP request failed: %w", deverrors.ErrFetchFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck // HTTP response body close

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", deverrors.ErrFetchFailed, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		doc, err := deploystatus.Parse(body)
		if err != nil {
			return nil, err
		}
		return unwrap(doc), nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", deverrors.ErrDeploymentNotFound, restErrorMessage(body, resp.StatusCode))
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: %s", deverrors.ErrUnauthorized, restErrorMessage(body, resp.StatusCode))
	default:
		return nil, fmt.Errorf("%w: %s", deverrors.ErrFetchFailed, restErrorMessage(body, resp.StatusCode))
	}
}

// restErrorMessage extracts errorCode and message from an API error body
// ([{"errorCode": ..., "message": ...}]), falling back to the status.
func restErrorMessage(body []byte, status int) string {
	msg := fmt.Sprintf("status %d", status)
	doc, err := deploystatus.Parse(body)
	if err != nil {
		return msg
	}
	if code := doc.Field("errorCode"); code.Present {
		msg += " " + code.Text
	}
	if text := doc.Field("message"); text.Present {
		msg += ": " + text.Text
	}
	return msg
}
