package types_test

import (
	"encoding/json"
	"testing"

	"github.com/gamekeeper/gamekeeper/pkg/types"
)

func TestNewManifest(t *testing.T) {
	m := types.NewManifest([]string{"One", "MyTwo", "3"})

	if m.NumberOfGames != 3 {
		t.Errorf("NumberOfGames = %d, want 3", m.NumberOfGames)
	}
	if len(m.GameNames) != m.NumberOfGames {
		t.Error("count invariant violated")
	}
}

func TestNewManifest_EmptySerializesAsArray(t *testing.T) {
	m := types.NewManifest(nil)

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"game_names":[],"number_of_games":0}`
	if string(data) != want {
		t.Errorf("marshal = %s, want %s", data, want)
	}
}

func TestManifest_WireShape(t *testing.T) {
	m := types.NewManifest([]string{"One"})

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"game_names":["One"],"number_of_games":1}`
	if string(data) != want {
		t.Errorf("marshal = %s, want %s", data, want)
	}

	var back types.HarvestManifest
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.NumberOfGames != 1 || back.GameNames[0] != "One" {
		t.Errorf("round trip diverged: %+v", back)
	}
}

func TestNewManifest_CopiesInput(t *testing.T) {
	names := []string{"One"}
	m := types.NewManifest(names)

	names[0] = "mutated"
	if m.GameNames[0] != "One" {
		t.Error("manifest aliases caller's slice")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*types.GamekeeperConfig)
		wantErr bool
	}{
		{"defaults are valid", func(c *types.GamekeeperConfig) {}, false},
		{"empty pattern", func(c *types.GamekeeperConfig) { c.Pattern = "" }, true},
		{"extension without dot", func(c *types.GamekeeperConfig) { c.SourceExtension = "go" }, true},
		{"empty extension", func(c *types.GamekeeperConfig) { c.SourceExtension = "" }, true},
		{"empty build command", func(c *types.GamekeeperConfig) { c.BuildCommand = nil }, true},
		{"unknown version", func(c *types.GamekeeperConfig) { c.Version = "9.9" }, true},
		{"blank version allowed", func(c *types.GamekeeperConfig) { c.Version = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := types.DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
