// Package types provides core types and configuration for Gamekeeper
package types

import "fmt"

// ConfigVersion is the config schema version this build understands
const ConfigVersion = "1.0"

// LogLevel represents logging verbosity levels
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// HarvestStatus represents the state of a harvest run
type HarvestStatus string

const (
	HarvestStatusScanning  HarvestStatus = "scanning"
	HarvestStatusCopying   HarvestStatus = "copying"
	HarvestStatusBuilding  HarvestStatus = "building"
	HarvestStatusSucceeded HarvestStatus = "succeeded"
	HarvestStatusFailed    HarvestStatus = "failed"
)

// NotificationConfig controls desktop notifications
type NotificationConfig struct {
	Enabled      bool   `json:"enabled"`
	SuccessSound string `json:"successSound,omitempty"`
	FailureSound string `json:"failureSound,omitempty"`
}

// WatchConfig controls the watch command
type WatchConfig struct {
	// SettlingDelayMs is how long the source tree must be quiet
	// before a re-harvest is triggered.
	SettlingDelayMs int      `json:"settlingDelayMs,omitempty"`
	Exclusions      []string `json:"exclusions,omitempty"`
}

// GamekeeperConfig is the top-level configuration
type GamekeeperConfig struct {
	Version         string              `json:"version"`
	Pattern         string              `json:"pattern"`
	SourceExtension string              `json:"sourceExtension"`
	BuildCommand    []string            `json:"buildCommand"`
	Notifications   *NotificationConfig `json:"notifications,omitempty"`
	Watch           *WatchConfig        `json:"watch,omitempty"`
}

// DefaultConfig returns the built-in configuration: harvest directories
// whose name contains "game" and run `go build` against every .go file
// found in the harvested layout.
func DefaultConfig() *GamekeeperConfig {
	return &GamekeeperConfig{
		Version:         ConfigVersion,
		Pattern:         "game",
		SourceExtension: ".go",
		BuildCommand:    []string{"go", "build"},
		Notifications:   &NotificationConfig{Enabled: false},
		Watch:           &WatchConfig{SettlingDelayMs: 500},
	}
}

// Validate checks the configuration for values the pipeline cannot run with
func (c *GamekeeperConfig) Validate() error {
	if c.Version != "" && c.Version != ConfigVersion {
		return fmt.Errorf("unsupported config version: %s", c.Version)
	}
	if c.Pattern == "" {
		return fmt.Errorf("pattern must not be empty")
	}
	if c.SourceExtension == "" || c.SourceExtension[0] != '.' {
		return fmt.Errorf("sourceExtension must start with '.': %q", c.SourceExtension)
	}
	if len(c.BuildCommand) == 0 {
		return fmt.Errorf("buildCommand must not be empty")
	}
	return nil
}

// HarvestManifest is the metadata file written to the target root after
// materialization. NumberOfGames always equals len(GameNames).
type HarvestManifest struct {
	GameNames     []string `json:"game_names"`
	NumberOfGames int      `json:"number_of_games"`
}

// NewManifest builds a manifest for the given names. GameNames is never
// nil so an empty harvest serializes as [] rather than null.
func NewManifest(names []string) HarvestManifest {
	copied := make([]string, len(names))
	copy(copied, names)
	return HarvestManifest{
		GameNames:     copied,
		NumberOfGames: len(copied),
	}
}
