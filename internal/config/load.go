package config

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/rrajen/sfdx-utility-plugins/internal/constants"
	"github.com/rrajen/sfdx-utility-plugins/internal/errors"
)

// newViperInstance creates a new Viper instance with the devops environment
// prefix (DEVOPS_), key replacer, and defaults.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// isConfigNotFoundError returns true if the error is a viper config file not found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// unmarshalAndValidate unmarshals viper config into Config struct and validates it.
func unmarshalAndValidate(ctx context.Context, v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	logger := zerolog.Ctx(ctx).With().Str("component", "config").Logger()
	logger.Debug().
		Str("output.format", cfg.Output.Format).
		Str("source.kind", cfg.Source.Kind).
		Dur("source.timeout", cfg.Source.Timeout).
		Int("source.max_attempts", cfg.Source.MaxAttempts).
		Msg("configuration loaded and unmarshaled")

	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// Load reads configuration from all available sources with proper precedence.
// Configuration is loaded in the following order (highest precedence first):
//  1. Environment variables (DEVOPS_* prefix)
//  2. Project config (.devops/config.yaml)
//  3. Global config (~/.devops/config.yaml)
//  4. Built-in defaults
//
// For CLI flag overrides, use LoadWithOverrides instead.
// Missing config files are not an error.
func Load(ctx context.Context) (*Config, error) {
	v := newViperInstance()

	// Global config first so project config merges over it.
	if err := loadGlobalConfig(v); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(v); err != nil {
		return nil, err
	}

	return unmarshalAndValidate(ctx, v)
}

// loadGlobalConfig attempts to load the global config file (~/.devops/config.yaml).
// Returns nil if the file doesn't exist or home directory cannot be determined.
func loadGlobalConfig(v *viper.Viper) error {
	globalConfigPath, ok := getGlobalConfigPathIfExists()
	if !ok {
		return nil
	}

	v.SetConfigFile(globalConfigPath)
	if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read global config file")
	}
	return nil
}

// getGlobalConfigPathIfExists returns the global config path if it exists.
func getGlobalConfigPathIfExists() (string, bool) {
	globalConfigPath, err := GlobalConfigPath()
	if err != nil {
		return "", false
	}

	if !fileExists(globalConfigPath) {
		return "", false
	}
	return globalConfigPath, true
}

// loadProjectConfig attempts to load the project config file (.devops/config.yaml).
// Returns nil if the file doesn't exist.
func loadProjectConfig(v *viper.Viper) error {
	projectConfigPath := ProjectConfigPath()
	if !fileExists(projectConfigPath) {
		return nil
	}

	v.SetConfigFile(projectConfigPath)
	if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read project config file")
	}
	return nil
}

// fileExists returns true if the file at path exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadWithOverrides loads configuration and applies CLI flag overrides.
// The overrides parameter contains values from CLI flags which have the
// highest precedence in the configuration hierarchy.
//
// Only non-zero values in overrides are applied. Zero values are ignored
// to allow partial overrides.
func LoadWithOverrides(ctx context.Context, overrides *Config) (*Config, error) {
	cfg, err := Load(ctx)
	if err != nil {
		return nil, err
	}
	return withOverrides(cfg, overrides)
}

// LoadFileWithOverrides is LoadWithOverrides with an explicit config file
// (the --config flag) in place of the project and global files. The file
// must exist.
func LoadFileWithOverrides(ctx context.Context, path string, overrides *Config) (*Config, error) {
	if !fileExists(path) {
		return nil, errors.Wrapf(os.ErrNotExist, "config file %s", path)
	}
	cfg, err := LoadFromPaths(ctx, path, "")
	if err != nil {
		return nil, err
	}
	return withOverrides(cfg, overrides)
}

func withOverrides(cfg, overrides *Config) (*Config, error) {
	if overrides != nil {
		applyOverrides(cfg, overrides)
	}

	if err := Validate(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration after overrides")
	}
	return cfg, nil
}

// LoadFromPaths loads configuration from specific file paths.
//
// projectConfigPath is the path to project-level config (higher priority).
// globalConfigPath is the path to global config (lower priority).
// Either path can be empty to skip that level.
func LoadFromPaths(ctx context.Context, projectConfigPath, globalConfigPath string) (*Config, error) {
	v := newViperInstance()

	if globalConfigPath != "" {
		v.SetConfigFile(globalConfigPath)
		if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read global config: %s", globalConfigPath)
		}
	}

	if projectConfigPath != "" {
		v.SetConfigFile(projectConfigPath)
		if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read project config: %s", projectConfigPath)
		}
	}

	return unmarshalAndValidate(ctx, v)
}

// setDefaults configures all default values on the Viper instance.
// These defaults match the values from DefaultConfig().
// IMPORTANT: Keys must match the YAML tag names exactly, and every key
// must have a default for DEVOPS_* environment overrides to be seen.
func setDefaults(v *viper.Viper) {
	def := DefaultConfig()

	v.SetDefault("output.format", def.Output.Format)
	v.SetDefault("output.colors", def.Output.Colors)
	v.SetDefault("output.glyphs", def.Output.Glyphs)

	v.SetDefault("source.kind", def.Source.Kind)
	v.SetDefault("source.target_org", def.Source.TargetOrg)
	v.SetDefault("source.instance_url", def.Source.InstanceURL)
	v.SetDefault("source.api_version", def.Source.APIVersion)
	v.SetDefault("source.access_token_env", def.Source.AccessTokenEnv)
	v.SetDefault("source.dir", def.Source.Dir)
	v.SetDefault("source.timeout", def.Source.Timeout.String())
	v.SetDefault("source.max_attempts", def.Source.MaxAttempts)
	v.SetDefault("source.concurrency", def.Source.Concurrency)
}

// applyOverrides merges non-zero override values into the config.
//
// IMPORTANT: Boolean fields (Colors, Glyphs) cannot be overridden to false
// here because the zero value is indistinguishable from "not set". The CLI
// applies --nocolors and --noglyphs after loading.
func applyOverrides(cfg, overrides *Config) {
	if overrides.Output.Format != "" {
		cfg.Output.Format = overrides.Output.Format
	}
	applySourceOverrides(&cfg.Source, &overrides.Source)
}

func applySourceOverrides(cfg, overrides *SourceConfig) {
	if overrides.Kind != "" {
		cfg.Kind = overrides.Kind
	}
	if overrides.TargetOrg != "" {
		cfg.TargetOrg = overrides.TargetOrg
	}
	if overrides.InstanceURL != "" {
		cfg.InstanceURL = overrides.InstanceURL
	}
	if overrides.APIVersion != "" {
		cfg.APIVersion = overrides.APIVersion
	}
	if overrides.AccessTokenEnv != "" {
		cfg.AccessTokenEnv = overrides.AccessTokenEnv
	}
	if overrides.Dir != "" {
		cfg.Dir = overrides.Dir
	}
	if overrides.Timeout != 0 {
		cfg.Timeout = overrides.Timeout
	}
	if overrides.MaxAttempts != 0 {
		cfg.MaxAttempts = overrides.MaxAttempts
	}
	if overrides.Concurrency != 0 {
		cfg.Concurrency = overrides.Concurrency
	}
}

// viperDecoderOption returns the decoder options for Viper unmarshal.
// This configures mapstructure to handle time.Duration conversion from strings.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)
}
