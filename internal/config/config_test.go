package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/wodi/internal/event"
	"github.com/cory-johannsen/wodi/internal/wire"
)

func validConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Codec: CodecConfig{
			TargetVersion:   "auto",
			Encoding:        "shift_jis",
			UnknownCommands: "fail",
			Workers:         4,
		},
		Export: ExportConfig{
			OutputDir: "out",
			Indent:    2,
		},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, AutoVersion, cfg.Codec.TargetVersion)
	assert.Equal(t, "shift_jis", cfg.Codec.Encoding)
	assert.Equal(t, "fail", cfg.Codec.UnknownCommands)
	assert.Equal(t, 4, cfg.Codec.Workers)
	assert.Equal(t, ".", cfg.Export.OutputDir)
	assert.Equal(t, 2, cfg.Export.Indent)
}

func TestDefault_EnvOverride(t *testing.T) {
	t.Setenv("WODI_CODEC_WORKERS", "9")
	t.Setenv("WODI_CODEC_UNKNOWN_COMMANDS", "raw")
	cfg, err := Default()
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Codec.Workers)
	assert.Equal(t, "raw", cfg.Codec.UnknownCommands)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
logging:
  level: debug
  format: console
codec:
  target_version: "2.24"
  encoding: utf-8
  unknown_commands: raw
  workers: 2
export:
  output_dir: yaml
  indent: 4
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 2, cfg.Codec.Workers)
	assert.Equal(t, "yaml", cfg.Export.OutputDir)
	assert.Equal(t, 4, cfg.Export.Indent)

	v, err := cfg.Codec.Version()
	require.NoError(t, err)
	assert.Equal(t, wire.V2_24, v)
	p, err := cfg.Codec.Policy()
	require.NoError(t, err)
	assert.Equal(t, event.PolicyRaw, p)
	enc, err := cfg.Codec.TextEncoding()
	require.NoError(t, err)
	assert.Equal(t, wire.UTF8, enc)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("codec:\n  workers: 8\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Codec.Workers)
	assert.Equal(t, "shift_jis", cfg.Codec.Encoding)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestAutoVersionIsZero(t *testing.T) {
	cfg := validConfig()
	v, err := cfg.Codec.Version()
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestValidateLoggingLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := validConfig()
		cfg.Logging.Level = level
		assert.NoError(t, cfg.Validate(), "level %q should be valid", level)
	}
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingFormat(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		cfg := validConfig()
		cfg.Logging.Format = format
		assert.NoError(t, cfg.Validate(), "format %q should be valid", format)
	}
	cfg := validConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidateTargetVersion(t *testing.T) {
	for _, v := range []string{"auto", "1.31", "2.24", "3.00"} {
		cfg := validConfig()
		cfg.Codec.TargetVersion = v
		assert.NoError(t, cfg.Validate(), "version %q should be valid", v)
	}
	for _, v := range []string{"2", "2.2", "latest"} {
		cfg := validConfig()
		cfg.Codec.TargetVersion = v
		assert.Error(t, cfg.Validate(), "version %q should be rejected", v)
	}
}

func TestValidateEncoding(t *testing.T) {
	cfg := validConfig()
	cfg.Codec.Encoding = "euc-jp"
	assert.Error(t, cfg.Validate())
}

func TestValidateUnknownCommands(t *testing.T) {
	cfg := validConfig()
	cfg.Codec.UnknownCommands = "skip"
	assert.Error(t, cfg.Validate())
}

func TestValidateExport(t *testing.T) {
	cfg := validConfig()
	cfg.Export.OutputDir = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Export.Indent = 1
	assert.Error(t, cfg.Validate())
}

func TestValidateCollectsAllViolations(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	cfg.Codec.Workers = 0
	cfg.Export.Indent = 9
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
	assert.Contains(t, err.Error(), "codec.workers")
	assert.Contains(t, err.Error(), "export.indent")
}

// Property-based tests

func TestPropertyValidWorkerRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		workers := rapid.IntRange(1, 64).Draw(t, "workers")
		cfg := validConfig()
		cfg.Codec.Workers = workers
		if err := cfg.Validate(); err != nil {
			t.Fatalf("valid workers %d rejected: %v", workers, err)
		}
	})
}

func TestPropertyInvalidWorkerRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		workers := rapid.OneOf(
			rapid.IntRange(-1000, 0),
			rapid.IntRange(65, 1000),
		).Draw(t, "workers")
		cfg := validConfig()
		cfg.Codec.Workers = workers
		if err := cfg.Validate(); err == nil {
			t.Fatalf("invalid workers %d accepted", workers)
		}
	})
}

func TestPropertyVersionStringRoundTrips(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		major := rapid.IntRange(1, 9).Draw(t, "major")
		minor := rapid.IntRange(0, 99).Draw(t, "minor")
		cfg := validConfig()
		cfg.Codec.TargetVersion = wire.Version(major*100 + minor).String()
		v, err := cfg.Codec.Version()
		if err != nil {
			t.Fatalf("version %q rejected: %v", cfg.Codec.TargetVersion, err)
		}
		assert.Equal(t, cfg.Codec.TargetVersion, v.String())
	})
}
