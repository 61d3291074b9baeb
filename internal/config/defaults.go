package config

import (
	"github.com/rrajen/sfdx-utility-plugins/internal/constants"
)

// DefaultConfig returns a new Config with default values.
// These defaults are the base layer that config files, environment
// variables, and CLI flags override.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format: FormatText,
			Colors: true,
			Glyphs: true,
		},
		Source: SourceConfig{
			// Kind: auto prefers an authenticated sf CLI and falls back to REST.
			Kind:           SourceAuto,
			APIVersion:     constants.DefaultAPIVersion,
			AccessTokenEnv: constants.DefaultAccessTokenEnv,
			Timeout:        constants.DefaultSourceTimeout,
			MaxAttempts:    constants.MaxRetryAttempts,
			Concurrency:    constants.DefaultFetchConcurrency,
		},
	}
}
