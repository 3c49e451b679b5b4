// Package config provides configuration loading and structs for the Keiyaku server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug    bool           `yaml:"debug"`
	Server   ServerConfig   `yaml:"server"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Export   ExportConfig   `yaml:"export"`
	Intake   IntakeConfig   `yaml:"intake"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// AnalysisConfig holds generation-capability and pipeline settings.
type AnalysisConfig struct {
	// BaseURL is the base URL of the OpenAI-compatible chat completion endpoint.
	BaseURL string `yaml:"base_url"`
	// Model is the model name sent with each generation request.
	Model string `yaml:"model"`
	// Temperature biases generation toward deterministic output; nil uses 0.3.
	Temperature *float64 `yaml:"temperature"`
	// MaxInputChars caps how much extracted text is embedded in a prompt.
	// Longer documents are clipped silently, which is lossy for very long contracts.
	MaxInputChars int `yaml:"max_input_chars"`
	// MinDocumentChars is the minimum extracted length accepted for analysis.
	MinDocumentChars int `yaml:"min_document_chars"`
	// Language is the target language for all generated prose fields.
	Language string `yaml:"language"`
	// MaxTokens limits response length. 0 uses the endpoint default.
	MaxTokens int `yaml:"max_tokens"`
}

// TemperatureOrDefault returns the sampling temperature; defaults to 0.3 when unset.
func (a *AnalysisConfig) TemperatureOrDefault() float64 {
	if a.Temperature != nil {
		return *a.Temperature
	}
	return 0.3
}

// ExportConfig holds artifact export settings.
type ExportConfig struct {
	Directory string `yaml:"directory"`
}

// IntakeConfig holds intake directory watch settings.
type IntakeConfig struct {
	Directories []string `yaml:"directories"`
	Extensions  []string `yaml:"extensions"`
	Recursive   *bool    `yaml:"recursive"`
}

// RecursiveOrDefault returns whether to watch intake directories recursively;
// defaults to true when unset.
func (i *IntakeConfig) RecursiveOrDefault() bool {
	if i.Recursive != nil {
		return *i.Recursive
	}
	return true
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Export.Directory = expandPath(cfg.Export.Directory, configDir)
	for i := range cfg.Intake.Directories {
		cfg.Intake.Directories[i] = expandPath(cfg.Intake.Directories[i], configDir)
	}

	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
