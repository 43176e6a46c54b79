package harvest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gamekeeper/gamekeeper/pkg/types"
	"github.com/gamekeeper/gamekeeper/pkg/utils"
)

// ManifestName is the manifest file written at the target root
const ManifestName = "metadata.json"

// WriteManifest serializes the harvest manifest to
// targetRoot/metadata.json, fully replacing any previous manifest. The
// manifest write is the commit point of a run: a target root without an
// up-to-date manifest should not be trusted.
func WriteManifest(targetRoot string, names []string) error {
	manifest := types.NewManifest(names)

	data, err := json.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	path := filepath.Join(targetRoot, ManifestName)
	if err := utils.WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("failed to write manifest %s: %w", path, err)
	}
	return nil
}

// ReadManifest reads the manifest back from a target root
func ReadManifest(targetRoot string) (*types.HarvestManifest, error) {
	path := filepath.Join(targetRoot, ManifestName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	var manifest types.HarvestManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	return &manifest, nil
}
