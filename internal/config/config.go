// internal/config/config.go

// Package config loads optional YAML defaults for the alnn command. Values
// from the file apply only to flags the user did not set explicitly.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config mirrors the tunable CLI flags. Zero values mean "not set";
// Workers and Header are pointers so an explicit 0 or false is kept.
type Config struct {
	Workers   *int   `yaml:"workers"`
	Metric    string `yaml:"metric"`
	Format    string `yaml:"format"`
	Header    *bool  `yaml:"header"`
	Progress  string `yaml:"progress"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Load reads a YAML config file. Unknown keys are rejected; an empty file
// yields a zero Config.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML config bytes.
func Parse(data []byte) (Config, error) {
	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if c.Workers != nil && *c.Workers < 0 {
		return Config{}, fmt.Errorf("parse config: workers must be >= 0 (got %d)", *c.Workers)
	}
	return c, nil
}
