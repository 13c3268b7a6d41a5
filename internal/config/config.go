// Package config provides Viper-based configuration loading for the codec tools.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/wodi/internal/event"
	"github.com/cory-johannsen/wodi/internal/wire"
)

// AutoVersion makes writers reuse the format version detected on read.
const AutoVersion = "auto"

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// CodecConfig holds CommonEvent.dat codec settings.
type CodecConfig struct {
	// TargetVersion is the format written: "auto" or a version such as "2.24".
	TargetVersion string `mapstructure:"target_version"`
	// Encoding is the string encoding: "shift_jis" or "utf-8".
	Encoding string `mapstructure:"encoding"`
	// UnknownCommands is "fail" to reject unknown command codes or "raw" to keep them verbatim.
	UnknownCommands string `mapstructure:"unknown_commands"`
	// Workers bounds the files processed concurrently.
	Workers int `mapstructure:"workers"`
}

// Version returns the forced write version, or zero for "auto".
//
// Precondition: c has passed Validate.
func (c CodecConfig) Version() (wire.Version, error) {
	if c.TargetVersion == AutoVersion || c.TargetVersion == "" {
		return 0, nil
	}
	return wire.ParseVersion(c.TargetVersion)
}

// Policy returns the unknown-command policy.
func (c CodecConfig) Policy() (event.Policy, error) {
	return event.ParsePolicy(c.UnknownCommands)
}

// TextEncoding returns the string encoding.
func (c CodecConfig) TextEncoding() (wire.Encoding, error) {
	return wire.ParseEncoding(c.Encoding)
}

// ExportConfig holds YAML export settings.
type ExportConfig struct {
	// OutputDir receives one YAML document per exported file.
	OutputDir string `mapstructure:"output_dir"`
	// Indent is the YAML indentation width.
	Indent int `mapstructure:"indent"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Codec   CodecConfig   `mapstructure:"codec"`
	Export  ExportConfig  `mapstructure:"export"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateCodec(c.Codec); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateExport(c.Export); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateCodec(c CodecConfig) error {
	var errs []string
	if _, err := c.Version(); err != nil {
		errs = append(errs, fmt.Sprintf("codec.target_version must be %q or major.minor, got %q", AutoVersion, c.TargetVersion))
	}
	validEncodings := map[string]bool{"shift_jis": true, "utf-8": true}
	if !validEncodings[c.Encoding] {
		errs = append(errs, fmt.Sprintf("codec.encoding must be one of [shift_jis, utf-8], got %q", c.Encoding))
	}
	if _, err := c.Policy(); err != nil {
		errs = append(errs, fmt.Sprintf("codec.unknown_commands must be one of [fail, raw], got %q", c.UnknownCommands))
	}
	if c.Workers < 1 || c.Workers > 64 {
		errs = append(errs, fmt.Sprintf("codec.workers must be 1-64, got %d", c.Workers))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateExport(e ExportConfig) error {
	var errs []string
	if e.OutputDir == "" {
		errs = append(errs, "export.output_dir must not be empty")
	}
	if e.Indent < 2 || e.Indent > 8 {
		errs = append(errs, fmt.Sprintf("export.indent must be 2-8, got %d", e.Indent))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Default returns the built-in configuration with environment overrides applied.
//
// Postcondition: Returns a valid Config or a non-nil error caused by an environment override.
func Default() (Config, error) {
	return LoadFromViper(newViper())
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()

	// Environment variable overrides with WODI_ prefix
	v.SetEnvPrefix("WODI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("codec.target_version", AutoVersion)
	v.SetDefault("codec.encoding", "shift_jis")
	v.SetDefault("codec.unknown_commands", "fail")
	v.SetDefault("codec.workers", 4)

	v.SetDefault("export.output_dir", ".")
	v.SetDefault("export.indent", 2)
}
