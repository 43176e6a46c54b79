package harvest

import (
	"errors"
	"fmt"
)

// Sentinel errors for harvest operations, checked with errors.Is
var (
	// ErrSourceNotFound indicates the source directory does not exist
	ErrSourceNotFound = errors.New("source directory does not exist")

	// ErrNotADirectory indicates the source path exists but is not a directory
	ErrNotADirectory = errors.New("source path is not a directory")
)

// PatternMismatchError reports a matched directory whose name does not
// contain the pattern at rename time. The finder and the transformer
// share one substring-containment predicate, so this indicates the two
// stages were fed different inputs; the name is never silently passed
// through unmodified.
type PatternMismatchError struct {
	Name    string
	Pattern string
}

func (e *PatternMismatchError) Error() string {
	return fmt.Sprintf("directory name %q does not contain pattern %q", e.Name, e.Pattern)
}
