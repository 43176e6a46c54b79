// Package harvest implements the directory-harvesting pipeline: find
// game directories under a source root, copy them into a fresh layout
// under stripped names, and record a manifest of the run.
package harvest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gamekeeper/gamekeeper/pkg/utils"
)

// SourceEntry is a matched source directory. Entries are immutable and
// scoped to a single run.
type SourceEntry struct {
	Path string // absolute path
	Name string // base name, original case
}

// ContainsPattern reports whether name contains pattern, ignoring case.
// Discovery and renaming both use this predicate so a discovered name
// can never fail the renaming stage.
func ContainsPattern(name, pattern string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(pattern))
}

// FindGameDirs scans sourceRoot one level deep and returns the child
// directories (never files) whose name contains pattern
// case-insensitively, in enumeration order. Zero matches is not an
// error.
func FindGameDirs(sourceRoot, pattern string) ([]SourceEntry, error) {
	entries, err := os.ReadDir(sourceRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, sourceRoot)
		}
		if utils.FileExists(sourceRoot) {
			return nil, fmt.Errorf("%w: %s", ErrNotADirectory, sourceRoot)
		}
		return nil, fmt.Errorf("failed to scan source directory %s: %w", sourceRoot, err)
	}

	var found []SourceEntry
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if !ContainsPattern(entry.Name(), pattern) {
			continue
		}
		found = append(found, SourceEntry{
			Path: filepath.Join(sourceRoot, entry.Name()),
			Name: entry.Name(),
		})
	}

	return found, nil
}
