package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"rapidsvg/internal/attr"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	ViewerConfig struct {
		DefaultPath string  `yaml:"default_path" validate:"required"`
		ZoomStep    float64 `yaml:"zoom_step" validate:"gt=1,lte=4"`
		PanStep     int     `yaml:"pan_step" validate:"min=1,max=100"`
	}

	ColorsConfig struct {
		LegacyArithmetic bool `yaml:"legacy_arithmetic"`
	}

	ExportConfig struct {
		Width       int `yaml:"width" validate:"min=0,max=16384"`
		Height      int `yaml:"height" validate:"min=0,max=16384"`
		JPEGQuality int `yaml:"jpeg_quality" validate:"min=1,max=100"`
	}

	Config struct {
		Version int           `yaml:"version" validate:"eq=1"`
		Viewer  ViewerConfig  `yaml:"viewer"`
		Colors  ColorsConfig  `yaml:"colors"`
		Export  ExportConfig  `yaml:"export"`
		Logging LoggingConfig `yaml:"logging"`
	}
)

// ColorMode is the decoder arithmetic selected by the configuration.
func (c *Config) ColorMode() attr.Mode {
	if c.Colors.LegacyArithmetic {
		return attr.Legacy
	}
	return attr.Standard
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// only fields we defined are accepted
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := expandPaths(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func expandPaths(cfg *Config) (err error) {
	for _, p := range []*string{&cfg.Viewer.DefaultPath, &cfg.Logging.FileLogger.Destination} {
		if *p, err = homedir.Expand(*p); err != nil {
			return fmt.Errorf("unable to expand path %q: %w", *p, err)
		}
	}
	return nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of the expanded configuration template and
// performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	if path, err = homedir.Expand(path); err != nil {
		return nil, fmt.Errorf("unable to expand config path: %w", err)
	}
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
