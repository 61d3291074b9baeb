package source

import (
	"context"
	stderrors "errors"

	"github.com/rs/zerolog"

	"github.com/rrajen/sfdx-utility-plugins/internal/deploystatus"
	deverrors "github.com/rrajen/sfdx-utility-plugins/internal/errors"
)

// FallbackFetcher tries each fetcher in order and returns the first success.
type FallbackFetcher struct {
	fetchers []Fetcher
}

// NewFallbackFetcher creates a FallbackFetcher over fetchers, tried in order.
func NewFallbackFetcher(fetchers ...Fetcher) *FallbackFetcher {
	return &FallbackFetcher{fetchers: fetchers}
}

// Name implements the logging name of the fetcher.
func (f *FallbackFetcher) Name() string { return "fallback" }

// Fetch returns the first successful result. When every fetcher fails the
// errors are joined; sources that were merely unavailable are left out of the
// joined error if any source was actually tried, so a transient failure of
// one source is not masked by another source being unconfigured.
func (f *FallbackFetcher) Fetch(ctx context.Context, id string) (*deploystatus.Document, error) {
	logger := zerolog.Ctx(ctx)

	var tried, unavailable []error
	for _, fetcher := range f.fetchers {
		doc, err := fetcher.Fetch(ctx, id)
		if err == nil {
			return doc, nil
		}
		if stderrors.Is(err, context.Canceled) || ctx.Err() != nil {
			return nil, err
		}

		logger.Debug().
			Err(err).
			Str("source", nameOf(fetcher)).
			Str("deployment_id", id).
			Msg("deploy status source failed, trying next")

		if stderrors.Is(err, deverrors.ErrSourceUnavailable) {
			unavailable = append(unavailable, err)
			continue
		}
		tried = append(tried, err)
	}

	if len(tried) > 0 {
		return nil, stderrors.Join(tried...)
	}
	if len(unavailable) > 0 {
		return nil, stderrors.Join(unavailable...)
	}
	return nil, deverrors.ErrSourceUnavailable
}
