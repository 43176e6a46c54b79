// Package config handles configuration loading and management
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gamekeeper/gamekeeper/pkg/types"
)

// DefaultFileName is the config file searched for in the working directory
const DefaultFileName = "gamekeeper.config.json"

// Manager handles configuration operations
type Manager struct{}

// NewManager creates a new configuration manager
func NewManager() *Manager {
	return &Manager{}
}

// LoadConfig loads configuration from a file
func (m *Manager) LoadConfig(path string) (*types.GamekeeperConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg types.GamekeeperConfig

	// Try JSON first
	if err := json.Unmarshal(data, &cfg); err == nil {
		return m.applyDefaults(&cfg)
	}

	// Try YAML - converted through JSON so struct tags stay authoritative
	var yamlData map[string]interface{}
	if err := yaml.Unmarshal(data, &yamlData); err == nil {
		jsonData, err := json.Marshal(yamlData)
		if err == nil {
			if err := json.Unmarshal(jsonData, &cfg); err == nil {
				return m.applyDefaults(&cfg)
			}
		}
	}

	return nil, fmt.Errorf("failed to parse config as JSON or YAML")
}

// LoadOrDefault loads the config at path, falling back to the built-in
// defaults when no file exists
func (m *Manager) LoadOrDefault(path string) (*types.GamekeeperConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return types.DefaultConfig(), nil
	}
	return m.LoadConfig(path)
}

// SaveConfig writes a configuration file as indented JSON
func (m *Manager) SaveConfig(cfg *types.GamekeeperConfig, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyDefaults fills unset fields from the defaults and validates the
// result
func (m *Manager) applyDefaults(cfg *types.GamekeeperConfig) (*types.GamekeeperConfig, error) {
	defaults := types.DefaultConfig()

	if cfg.Pattern == "" {
		cfg.Pattern = defaults.Pattern
	}
	if cfg.SourceExtension == "" {
		cfg.SourceExtension = defaults.SourceExtension
	}
	if len(cfg.BuildCommand) == 0 {
		cfg.BuildCommand = defaults.BuildCommand
	}
	if cfg.Watch == nil {
		cfg.Watch = defaults.Watch
	}
	if cfg.Watch.SettlingDelayMs <= 0 {
		cfg.Watch.SettlingDelayMs = defaults.Watch.SettlingDelayMs
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
