package harvest

import (
	"fmt"

	"github.com/gamekeeper/gamekeeper/pkg/utils"
)

// ResolvePath turns a possibly-relative path into its canonical absolute
// form. The path is not required to exist; later stages surface any
// resolution problems when they touch the filesystem.
func ResolvePath(path string) string {
	return utils.NormalizePath(path)
}

// PrepareTarget creates the destination root (including missing parents)
// if absent and returns its canonical absolute path. An existing
// directory is a no-op.
func PrepareTarget(path string) (string, error) {
	abs := utils.NormalizePath(path)
	if err := utils.EnsureDirectory(abs); err != nil {
		return "", fmt.Errorf("failed to prepare target directory %s: %w", abs, err)
	}
	return abs, nil
}
