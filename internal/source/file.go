package source

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rrajen/sfdx-utility-plugins/internal/deploystatus"
	deverrors "github.com/rrajen/sfdx-utility-plugins/internal/errors"
)

// fileExtensions are tried in order when looking up <dir>/<id><ext>.
//
//nolint:gochecknoglobals // fixed lookup table
var fileExtensions = []string{".json", ".yaml", ".yml"}

// FileFetcher reads saved deploy results named after their deployment id.
type FileFetcher struct {
	dir string
}

// NewFileFetcher creates a FileFetcher over dir.
func NewFileFetcher(dir string) *FileFetcher {
	return &FileFetcher{dir: dir}
}

// Name implements the logging name of the fetcher.
func (f *FileFetcher) Name() string { return "file" }

// Fetch reads <dir>/<id>.json, .yaml, or .yml, whichever exists first.
func (f *FileFetcher) Fetch(ctx context.Context, id string) (*deploystatus.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.dir == "" {
		return nil, fmt.Errorf("%w: no source directory configured", deverrors.ErrSourceUnavailable)
	}

	for _, ext := range fileExtensions {
		path := filepath.Join(f.dir, id+ext)
		data, err := os.ReadFile(path) //nolint:gosec // path is built from the configured dir
		if stderrors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, deverrors.Wrapf(err, "failed to read %s", path)
		}
		return parseSaved(data, path)
	}

	return nil, fmt.Errorf("%w: no %s.json or %s.yaml in %s", deverrors.ErrDeploymentNotFound, id, id, f.dir)
}

// PathFetcher serves one saved document, from a file or stdin ("-"), for
// every id. The input is read once.
type PathFetcher struct {
	path  string
	stdin io.Reader

	once sync.Once
	doc  *deploystatus.Document
	err  error
}

// NewPathFetcher creates a PathFetcher. stdin is read when path is "-".
func NewPathFetcher(path string, stdin io.Reader) *PathFetcher {
	return &PathFetcher{path: path, stdin: stdin}
}

// Name implements the logging name of the fetcher.
func (f *PathFetcher) Name() string { return "path" }

// Fetch returns the document at the configured path. The id is not used.
func (f *PathFetcher) Fetch(ctx context.Context, _ string) (*deploystatus.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.once.Do(func() {
		f.doc, f.err = f.read()
	})
	return f.doc, f.err
}

func (f *PathFetcher) read() (*deploystatus.Document, error) {
	if f.path == "-" {
		data, err := io.ReadAll(f.stdin)
		if err != nil {
			return nil, deverrors.Wrap(err, "failed to read stdin")
		}
		return parseSaved(data, "stdin")
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, deverrors.Wrapf(err, "failed to read %s", f.path)
	}
	return parseSaved(data, f.path)
}

func parseSaved(data []byte, name string) (*deploystatus.Document, error) {
	doc, err := deploystatus.Parse(data)
	if err != nil {
		return nil, deverrors.Wrap(err, name)
	}
	return unwrap(doc), nil
}
