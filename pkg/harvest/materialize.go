package harvest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gamekeeper/gamekeeper/pkg/utils"
)

// CopyTree recursively merge-copies src into dst: conflicting files are
// overwritten, destination entries absent from the source are left
// intact. Any I/O failure aborts the copy; entries already written stay
// in place.
func CopyTree(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("failed to copy %s: %w", path, err)
		}

		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return fmt.Errorf("failed to copy %s: %w", path, err)
		}
		dstPath := filepath.Join(dst, relPath)

		if info.IsDir() {
			if err := os.MkdirAll(dstPath, info.Mode()); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dstPath, err)
			}
			return nil
		}

		if err := utils.CopyFile(path, dstPath); err != nil {
			return fmt.Errorf("failed to copy %s: %w", path, err)
		}
		return nil
	})
}

// Materialize copies every mapped source directory into
// targetRoot/<NewName>. Copies are idempotent and overwriting; there is
// no rollback of partial copies on failure.
func Materialize(mappings []NameMapping, targetRoot string) error {
	for _, m := range mappings {
		dst := filepath.Join(targetRoot, m.NewName)
		if err := CopyTree(m.Source.Path, dst); err != nil {
			return err
		}
	}
	return nil
}
