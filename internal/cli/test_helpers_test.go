package cli

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rrajen/sfdx-utility-plugins/internal/config"
	"github.com/rrajen/sfdx-utility-plugins/internal/constants"
	"github.com/rrajen/sfdx-utility-plugins/internal/deploystatus"
	"github.com/rrajen/sfdx-utility-plugins/internal/source"
)

const (
	testID      = "0Afq000001HzQ1qCAF"
	otherTestID = "0Afq000001HKFDO"
)

const testDocument = `{
	"status": "Succeeded",
	"numberComponentsTotal": 2,
	"numberComponentsDeployed": 2,
	"numberComponentErrors": 0,
	"componentSuccesses": [
		{"fullName": "Foo", "componentType": "ApexClass"},
		{"fullName": "Bar", "componentType": "ApexClass"}
	]
}`

// isolateHome points DEVOPS_HOME at a temp dir and runs the test from an
// empty working directory, so no real config or log file is touched.
// Tests using it cannot run in parallel.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(constants.HomeEnvVar, home)
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })
	return home
}

func mustParse(t *testing.T, input string) *deploystatus.Document {
	t.Helper()
	doc, err := deploystatus.Parse([]byte(input))
	require.NoError(t, err)
	return doc
}

// fakeSource records how the command built its fetcher and serves canned
// documents or errors per id.
type fakeSource struct {
	mu      sync.Mutex
	cfg     *config.SourceConfig
	opts    source.Options
	docs    map[string]*deploystatus.Document
	errs    map[string]error
	factErr error
}

func (f *fakeSource) factory(cfg *config.SourceConfig, opts source.Options) (source.Fetcher, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cfg = cfg
	f.opts = opts
	if f.factErr != nil {
		return nil, f.factErr
	}
	return source.FetcherFunc(func(_ context.Context, id string) (*deploystatus.Document, error) {
		if err, ok := f.errs[id]; ok {
			return nil, err
		}
		return f.docs[id], nil
	}), nil
}

func noEnv(string) (string, bool) { return "", false }

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// writeConfig writes the global config file under home.
func writeConfig(t *testing.T, home, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(home, constants.ConfigFileName), []byte(content), 0o600))
}
