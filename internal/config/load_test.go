package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rrajen/sfdx-utility-plugins/internal/constants"
	"github.com/rrajen/sfdx-utility-plugins/internal/errors"
)

// isolate points the global config at an empty temp dir and runs the test
// from another empty temp dir, so no real config files are read.
func isolate(t *testing.T) (home, project string) {
	t.Helper()

	home = t.TempDir()
	project = t.TempDir()
	t.Setenv(constants.HomeEnvVar, home)

	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(project))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })

	return home, project
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoad_ReturnsDefaultsWhenNoConfigFile(t *testing.T) {
	isolate(t)

	cfg, err := Load(context.Background())
	require.NoError(t, err, "Load should not fail when no config file exists")
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_ProjectOverridesGlobal(t *testing.T) {
	home, project := isolate(t)

	writeFile(t, filepath.Join(home, "config.yaml"), `
output:
  format: yaml
  glyphs: false
source:
  target_org: global-org
  concurrency: 2
`)
	writeFile(t, filepath.Join(project, ".devops", "config.yaml"), `
source:
  target_org: project-org
  timeout: 30s
`)

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, FormatYAML, cfg.Output.Format)
	assert.False(t, cfg.Output.Glyphs)
	assert.True(t, cfg.Output.Colors)
	assert.Equal(t, "project-org", cfg.Source.TargetOrg)
	assert.Equal(t, 2, cfg.Source.Concurrency)
	assert.Equal(t, 30*time.Second, cfg.Source.Timeout)
}

func TestLoad_EnvironmentOverridesFiles(t *testing.T) {
	home, _ := isolate(t)

	writeFile(t, filepath.Join(home, "config.yaml"), "source:\n  kind: cli\n")
	t.Setenv("DEVOPS_SOURCE_KIND", "rest")
	t.Setenv("DEVOPS_SOURCE_MAX_ATTEMPTS", "5")

	cfg, err := Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceREST, cfg.Source.Kind)
	assert.Equal(t, 5, cfg.Source.MaxAttempts)
}

func TestLoad_InvalidFileValue(t *testing.T) {
	home, _ := isolate(t)

	writeFile(t, filepath.Join(home, "config.yaml"), "output:\n  format: xml\n")

	_, err := Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrConfigInvalidOutput)
}

func TestLoadWithOverrides(t *testing.T) {
	isolate(t)

	cfg, err := LoadWithOverrides(context.Background(), &Config{
		Output: OutputConfig{Format: FormatJSON},
		Source: SourceConfig{Kind: SourceFile, Dir: "/tmp/results", MaxAttempts: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, FormatJSON, cfg.Output.Format)
	assert.True(t, cfg.Output.Colors, "bool overrides are applied by the caller")
	assert.Equal(t, SourceFile, cfg.Source.Kind)
	assert.Equal(t, "/tmp/results", cfg.Source.Dir)
	assert.Equal(t, 1, cfg.Source.MaxAttempts)
	assert.Equal(t, constants.DefaultAPIVersion, cfg.Source.APIVersion)
}

func TestLoadWithOverrides_Invalid(t *testing.T) {
	isolate(t)

	_, err := LoadWithOverrides(context.Background(), &Config{Source: SourceConfig{Kind: "soap"}})
	require.ErrorIs(t, err, errors.ErrConfigInvalidSource)
}

func TestLoadFileWithOverrides(t *testing.T) {
	home, _ := isolate(t)

	writeFile(t, filepath.Join(home, "config.yaml"), "source:\n  target_org: ignored\n")
	explicit := filepath.Join(t.TempDir(), "ci.yaml")
	writeFile(t, explicit, "source:\n  kind: rest\n  instance_url: https://acme.my.salesforce.com\n")

	cfg, err := LoadFileWithOverrides(context.Background(), explicit, &Config{Source: SourceConfig{APIVersion: "60.0"}})
	require.NoError(t, err)

	assert.Equal(t, SourceREST, cfg.Source.Kind)
	assert.Equal(t, "https://acme.my.salesforce.com", cfg.Source.InstanceURL)
	assert.Equal(t, "60.0", cfg.Source.APIVersion)
	assert.Empty(t, cfg.Source.TargetOrg, "explicit file replaces the global file")

	_, err = LoadFileWithOverrides(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFromPaths_MissingFilesUseDefaults(t *testing.T) {
	isolate(t)

	dir := t.TempDir()
	cfg, err := LoadFromPaths(context.Background(), filepath.Join(dir, "a.yaml"), filepath.Join(dir, "b.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFromPaths_MalformedYAML(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "output: [unclosed\n")

	_, err := LoadFromPaths(context.Background(), path, "")
	require.Error(t, err)
}
