// Package source fetches deploy status documents for the report.
//
// A Fetcher turns a deployment id into a deploystatus.Document. The sf CLI,
// the Metadata REST API, and saved files each have one; New assembles the
// configured chain with fallback and retry around them. Every fetcher strips
// the response envelope it knows about, so callers always get the deploy
// result itself.
package source

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rrajen/sfdx-utility-plugins/internal/config"
	"github.com/rrajen/sfdx-utility-plugins/internal/deploystatus"
	deverrors "github.com/rrajen/sfdx-utility-plugins/internal/errors"
)

// Fetcher retrieves the deploy status document for one deployment.
type Fetcher interface {
	Fetch(ctx context.Context, id string) (*deploystatus.Document, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, id string) (*deploystatus.Document, error)

// Fetch calls f(ctx, id).
func (f FetcherFunc) Fetch(ctx context.Context, id string) (*deploystatus.Document, error) {
	return f(ctx, id)
}

// Options carries the process-level dependencies New needs. Zero values fall
// back to the real implementations.
type Options struct {
	// Executor runs the sf CLI.
	Executor config.CommandExecutor
	// HTTPClient performs REST requests.
	HTTPClient HTTPClient
	// Getenv reads the access token variable.
	Getenv func(string) string
	// Path, when set, reads a single saved document ("-" for stdin) for every id.
	Path string
	// Stdin is read when Path is "-".
	Stdin io.Reader
}

// New builds the Fetcher selected by cfg.
//
//   - Options.Path set: a PathFetcher, regardless of cfg.Kind
//   - file: a FileFetcher over cfg.Dir
//   - cli: the sf CLI, with retries
//   - rest: the REST API, with retries
//   - auto: the sf CLI falling back to REST, with retries
func New(cfg *config.SourceConfig, opts Options) (Fetcher, error) {
	if cfg == nil {
		return nil, deverrors.ErrConfigNil
	}
	opts = withDefaults(opts)

	if opts.Path != "" {
		return NewPathFetcher(opts.Path, opts.Stdin), nil
	}

	cli := NewCLIFetcher(opts.Executor, cfg.TargetOrg)
	rest := NewRESTFetcherWithHTTP(opts.HTTPClient, cfg.InstanceURL, cfg.APIVersion, opts.Getenv(cfg.AccessTokenEnv))

	var base Fetcher
	switch cfg.Kind {
	case config.SourceFile:
		return NewFileFetcher(cfg.Dir), nil
	case config.SourceCLI:
		base = cli
	case config.SourceREST:
		base = rest
	case config.SourceAuto, "":
		base = NewFallbackFetcher(cli, rest)
	default:
		return nil, deverrors.Wrapf(deverrors.ErrConfigInvalidSource, "unknown source kind %q", cfg.Kind)
	}

	return NewRetryFetcher(base, cfg.MaxAttempts, cfg.Timeout), nil
}

func withDefaults(opts Options) Options {
	if opts.Executor == nil {
		opts.Executor = &config.DefaultCommandExecutor{}
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = newHTTPClient()
	}
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	return opts
}

// envelopeKeys are the wrappers stripped from fetched documents, outermost
// first: the sf CLI "result" and the REST "deployResult".
//
//nolint:gochecknoglobals // fixed lookup table
var envelopeKeys = []string{"result", "deployResult"}

// unwrap strips known envelopes. Only top-level keys holding a mapping count.
func unwrap(doc *deploystatus.Document) *deploystatus.Document {
	for _, key := range envelopeKeys {
		if sub, ok := doc.Child(key); ok && isMapping(sub) {
			doc = sub
		}
	}
	return doc
}

func isMapping(doc *deploystatus.Document) bool {
	root := doc.Root()
	return root != nil && root.Kind == yaml.MappingNode
}

// nameOf returns a short fetcher name for logs.
func nameOf(f Fetcher) string {
	if n, ok := f.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", f)
}
