// Package config provides configuration management for devops with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags (passed via LoadWithOverrides)
//  2. Environment variables (DEVOPS_* prefix)
//  3. Project config (.devops/config.yaml)
//  4. Global config (~/.devops/config.yaml)
//  5. Built-in defaults
//
// Each higher level completely overrides the lower level for the same key.
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import other internal packages.
package config

import "time"

// Output formats. Text renders the report; json and yaml dump the raw result.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Source kinds select where deploy status documents come from.
const (
	// SourceAuto tries the sf CLI first and falls back to the REST API.
	SourceAuto = "auto"
	// SourceCLI uses `sf project deploy report`.
	SourceCLI = "cli"
	// SourceREST calls the Metadata REST API directly.
	SourceREST = "rest"
	// SourceFile reads saved documents from disk.
	SourceFile = "file"
)

// Config is the root configuration structure for devops.
type Config struct {
	// Output contains settings for how reports are printed.
	Output OutputConfig `yaml:"output" mapstructure:"output"`

	// Source contains settings for fetching deploy status documents.
	Source SourceConfig `yaml:"source" mapstructure:"source"`
}

// OutputConfig contains report presentation settings.
type OutputConfig struct {
	// Format is one of text, json, yaml.
	// Default: text
	Format string `yaml:"format" mapstructure:"format"`

	// Colors enables ANSI colors on component labels.
	// Default: true (NO_COLOR and --nocolors turn it off)
	Colors bool `yaml:"colors" mapstructure:"colors"`

	// Glyphs enables the ✔ / ✖ markers on component labels.
	// Default: true
	Glyphs bool `yaml:"glyphs" mapstructure:"glyphs"`
}

// SourceConfig contains deploy status producer settings.
type SourceConfig struct {
	// Kind is one of auto, cli, rest, file.
	// Default: auto
	Kind string `yaml:"kind" mapstructure:"kind"`

	// TargetOrg is passed to the sf CLI as --target-org. Empty uses the CLI default org.
	TargetOrg string `yaml:"target_org" mapstructure:"target_org"`

	// InstanceURL is the org base URL for the REST source, e.g. https://acme.my.salesforce.com.
	InstanceURL string `yaml:"instance_url" mapstructure:"instance_url"`

	// APIVersion is the Metadata REST API version without the leading "v".
	// Default: 61.0
	APIVersion string `yaml:"api_version" mapstructure:"api_version"`

	// AccessTokenEnv names the environment variable holding the REST access token.
	// The token itself is never read from config files.
	// Default: SF_ACCESS_TOKEN
	AccessTokenEnv string `yaml:"access_token_env" mapstructure:"access_token_env"`

	// Dir is the directory the file source reads <id>.json or <id>.yaml from.
	Dir string `yaml:"dir" mapstructure:"dir"`

	// Timeout bounds a single fetch attempt.
	// Default: 2 minutes
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// MaxAttempts is the number of tries for a transient fetch failure.
	// Default: 3, Valid range: 1-10
	MaxAttempts int `yaml:"max_attempts" mapstructure:"max_attempts"`

	// Concurrency limits parallel fetches when several ids are given.
	// Default: 4, Valid range: 1-32
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}
