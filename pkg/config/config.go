// Package config provides configuration loading and management for
// ndpslide. It handles loading configuration from YAML files and
// provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Reader parameters
	Reader struct {
		// AnnotationSuffix is appended to the image path to locate
		// the sidecar annotation file when no explicit path is given
		AnnotationSuffix string `yaml:"annotationSuffix"`
	} `yaml:"reader"`

	// Output parameters
	Output struct {
		// Format selects the report format, "text" or "json"
		Format string `yaml:"format"`

		// Verbose controls whether per-annotation detail is printed
		Verbose bool `yaml:"verbose"`

		// ReportMicrons converts reported lengths from pixels to
		// microns using the slide resolution
		ReportMicrons bool `yaml:"reportMicrons"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default reader parameters
	cfg.Reader.AnnotationSuffix = ".ndpa"

	// Set default output parameters
	cfg.Output.Format = "text"
	cfg.Output.Verbose = true
	cfg.Output.ReportMicrons = true

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the
// specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
