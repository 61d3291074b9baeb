// Package constants provides centralized constant values used throughout devops.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// AppName is the binary and command name.
const AppName = "devops"

// Directory names and paths used by devops for organizing data.
const (
	// DevopsHome is the hidden directory name where devops stores its data.
	// This directory is created in the user's home directory.
	DevopsHome = ".devops"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// CLILogFileName is the name of the global CLI log file.
	// This file is located in ~/.devops/logs/devops.log
	CLILogFileName = "devops.log"

	// ConfigFileName is the name of both the global and project config files.
	ConfigFileName = "config.yaml"

	// EnvPrefix is the prefix for environment variable overrides (DEVOPS_OUTPUT, ...).
	EnvPrefix = "DEVOPS"

	// HomeEnvVar overrides the devops home directory.
	HomeEnvVar = "DEVOPS_HOME"
)

// Log rotation settings for the CLI log file.
const (
	LogMaxSizeMB  = 10
	LogMaxBackups = 3
	LogMaxAgeDays = 28
	LogCompress   = true
)

// Deploy status source settings.
const (
	// DefaultAPIVersion is the Metadata REST API version used when none is configured.
	DefaultAPIVersion = "61.0"

	// DefaultAccessTokenEnv is the environment variable holding the REST access token.
	DefaultAccessTokenEnv = "SF_ACCESS_TOKEN"

	// DefaultSourceTimeout bounds a single deploy status fetch.
	DefaultSourceTimeout = 2 * time.Minute

	// DefaultFetchConcurrency limits concurrent fetches when several ids are requested.
	DefaultFetchConcurrency = 4

	// SalesforceCLI is the executable name of the Salesforce CLI.
	SalesforceCLI = "sf"
)

// Retry configuration defaults for recoverable operations.
const (
	// MaxRetryAttempts is the maximum number of attempts for a transient fetch failure.
	MaxRetryAttempts = 3

	// InitialBackoff is the initial backoff duration before the first retry.
	InitialBackoff = 1 * time.Second

	// BackoffMultiplier is the factor applied to the backoff after each failed attempt.
	BackoffMultiplier = 2
)

// ANSI SGR parameters used for report colorization.
const (
	SGRGreen = 2
	SGRRed   = 1
)

// Glyphs prefixed to component labels. The trailing space is part of the glyph.
const (
	SuccessGlyph = "✔ "
	ErrorGlyph   = "✖ "
)
