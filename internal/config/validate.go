package config

import (
	"fmt"
	"time"

	"github.com/rrajen/sfdx-utility-plugins/internal/errors"
)

// Limits on source settings.
const (
	maxAttemptsLimit = 10
	concurrencyLimit = 32
	minSourceTimeout = time.Second
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - output.format must be text, json or yaml
//   - source.kind must be auto, cli, rest or file
//   - source.timeout must be at least one second
//   - source.max_attempts must be between 1 and 10
//   - source.concurrency must be between 1 and 32
//   - source.api_version must not be empty
//   - source.dir is required when source.kind is file
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if err := validateOutputConfig(&cfg.Output); err != nil {
		return err
	}

	return validateSourceConfig(&cfg.Source)
}

func validateOutputConfig(cfg *OutputConfig) error {
	switch cfg.Format {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	default:
		return errors.Wrapf(errors.ErrConfigInvalidOutput,
			"output.format must be one of text, json, yaml, got %q", cfg.Format)
	}
}

func validateSourceConfig(cfg *SourceConfig) error {
	switch cfg.Kind {
	case SourceAuto, SourceCLI, SourceREST, SourceFile:
	default:
		return errors.Wrapf(errors.ErrConfigInvalidSource,
			"source.kind must be one of auto, cli, rest, file, got %q", cfg.Kind)
	}

	if cfg.Timeout < minSourceTimeout {
		return errors.Wrapf(errors.ErrConfigInvalidSource,
			"source.timeout must be at least %s, got %s", minSourceTimeout, cfg.Timeout)
	}

	if cfg.MaxAttempts < 1 || cfg.MaxAttempts > maxAttemptsLimit {
		return errors.Wrapf(errors.ErrConfigInvalidSource,
			"source.max_attempts must be between 1 and %d, got %d", maxAttemptsLimit, cfg.MaxAttempts)
	}

	if cfg.Concurrency < 1 || cfg.Concurrency > concurrencyLimit {
		return errors.Wrapf(errors.ErrConfigInvalidSource,
			"source.concurrency must be between 1 and %d, got %d", concurrencyLimit, cfg.Concurrency)
	}

	if cfg.APIVersion == "" {
		return fmt.Errorf("%w: source.api_version: %w", errors.ErrConfigInvalidSource, errors.ErrEmptyValue)
	}

	if cfg.Kind == SourceFile && cfg.Dir == "" {
		return fmt.Errorf("%w: source.dir is required for the file source: %w", errors.ErrConfigInvalidSource, errors.ErrEmptyValue)
	}

	return nil
}
