package harvest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gamekeeper/gamekeeper/pkg/harvest"
)

func TestWriteManifest(t *testing.T) {
	target := t.TempDir()

	if err := harvest.WriteManifest(target, []string{"One", "MyTwo", "3"}); err != nil {
		t.Fatalf("WriteManifest failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(target, harvest.ManifestName))
	if err != nil {
		t.Fatal(err)
	}
	want := `{"game_names":["One","MyTwo","3"],"number_of_games":3}`
	if string(data) != want {
		t.Errorf("manifest = %s, want %s", data, want)
	}
}

func TestWriteManifest_EmptyIsArray(t *testing.T) {
	target := t.TempDir()

	if err := harvest.WriteManifest(target, nil); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(target, harvest.ManifestName))
	if err != nil {
		t.Fatal(err)
	}
	want := `{"game_names":[],"number_of_games":0}`
	if string(data) != want {
		t.Errorf("manifest = %s, want %s", data, want)
	}
}

func TestWriteManifest_Overwrites(t *testing.T) {
	target := t.TempDir()

	if err := harvest.WriteManifest(target, []string{"Old", "Stale"}); err != nil {
		t.Fatal(err)
	}
	if err := harvest.WriteManifest(target, []string{"Fresh"}); err != nil {
		t.Fatal(err)
	}

	manifest, err := harvest.ReadManifest(target)
	if err != nil {
		t.Fatal(err)
	}
	if manifest.NumberOfGames != 1 || manifest.GameNames[0] != "Fresh" {
		t.Errorf("manifest not fully replaced: %+v", manifest)
	}
}

func TestReadManifest_RoundTrip(t *testing.T) {
	target := t.TempDir()
	names := []string{"One", "MyTwo", "3", "nota"}

	if err := harvest.WriteManifest(target, names); err != nil {
		t.Fatal(err)
	}

	manifest, err := harvest.ReadManifest(target)
	if err != nil {
		t.Fatal(err)
	}

	if manifest.NumberOfGames != len(manifest.GameNames) {
		t.Errorf("count invariant violated: %d != %d", manifest.NumberOfGames, len(manifest.GameNames))
	}
	for i, name := range names {
		if manifest.GameNames[i] != name {
			t.Errorf("name %d = %q, want %q", i, manifest.GameNames[i], name)
		}
	}
}
