package source

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/rrajen/sfdx-utility-plugins/internal/deploystatus"
)

// Result is the outcome of fetching one deployment.
type Result struct {
	ID       string
	Document *deploystatus.Document
	Err      error
}

// FetchAll fetches every id with at most limit fetches in flight. Results
// come back in the order of ids; one failure does not stop the others.
func FetchAll(ctx context.Context, f Fetcher, ids []string, limit int) []Result {
	if limit < 1 {
		limit = 1
	}

	results := make([]Result, len(ids))
	var g errgroup.Group
	g.SetLimit(limit)

	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			doc, err := f.Fetch(ctx, id)
			results[i] = Result{ID: id, Document: doc, Err: err}
			return nil
		})
	}

	_ = g.Wait() // per-id errors are carried in results
	return results
}
