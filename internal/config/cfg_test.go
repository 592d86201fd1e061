package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"

	"rapidsvg/internal/attr"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, "example.svg", cfg.Viewer.DefaultPath)
	assert.Equal(t, 1.25, cfg.Viewer.ZoomStep)
	assert.Equal(t, 2, cfg.Viewer.PanStep)
	assert.False(t, cfg.Colors.LegacyArithmetic)
	assert.Equal(t, attr.Standard, cfg.ColorMode())
	assert.Equal(t, 90, cfg.Export.JPEGQuality)
	assert.Equal(t, "normal", cfg.Logging.ConsoleLogger.Level)
	assert.Equal(t, "none", cfg.Logging.FileLogger.Level)
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	path := writeConfig(t, `version: 1
viewer:
  default_path: ~/drawings/house.svg
  pan_step: 5
colors:
  legacy_arithmetic: true
export:
  width: 640
`)

	cfg, err := LoadConfiguration(path)
	require.NoError(t, err)

	home, err := homedir.Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "drawings", "house.svg"), cfg.Viewer.DefaultPath)
	assert.Equal(t, 5, cfg.Viewer.PanStep)
	assert.Equal(t, attr.Legacy, cfg.ColorMode())
	assert.Equal(t, 640, cfg.Export.Width)

	// untouched values come from the template
	assert.Equal(t, 1.25, cfg.Viewer.ZoomStep)
	assert.Equal(t, 90, cfg.Export.JPEGQuality)
}

func TestLoadConfiguration_UnknownField(t *testing.T) {
	path := writeConfig(t, "version: 1\nviewer:\n  colour: red\n")
	_, err := LoadConfiguration(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")
}

func TestLoadConfiguration_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"version", "version: 2\n"},
		{"zoom step", "version: 1\nviewer:\n  zoom_step: 0.5\n"},
		{"jpeg quality", "version: 1\nexport:\n  jpeg_quality: 0\n"},
		{"log level", "version: 1\nlogging:\n  console:\n    level: loud\n"},
		{"log mode", "version: 1\nlogging:\n  file:\n    mode: rotate\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfiguration(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfiguration_MissingFile(t *testing.T) {
	_, err := LoadConfiguration(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPrepareAndDump(t *testing.T) {
	data, err := Prepare()
	require.NoError(t, err)
	assert.Contains(t, string(data), "legacy_arithmetic")

	cfg, err := LoadConfiguration("")
	require.NoError(t, err)
	out, err := Dump(cfg)
	require.NoError(t, err)

	var back Config
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, *cfg, back)
}

func TestLoggingConfig_PrepareFileOnly(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "run.log")
	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "debug"},
		FileLogger:    LoggerConfig{Level: "debug", Destination: dest, Mode: "overwrite"},
	}

	log, err := conf.Prepare(false)
	require.NoError(t, err)
	log.Info("hello from test")
	_ = log.Sync()

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
	assert.Equal(t, filepath.Join(filepath.Dir(dest), "rapidsvg-panic.log"), conf.PanicLogName())
}

func TestLoggingConfig_NoPanicLogWithoutFile(t *testing.T) {
	conf := LoggingConfig{FileLogger: LoggerConfig{Level: "none", Destination: "/tmp/x.log"}}
	assert.Empty(t, conf.PanicLogName())
}
