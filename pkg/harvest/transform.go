package harvest

import "strings"

// NameMapping pairs a matched source directory with its destination name
type NameMapping struct {
	Source  SourceEntry
	NewName string
}

// StripPattern removes the first case-insensitive occurrence of pattern
// from name, leaving any further occurrences untouched. A name without
// an occurrence returns a PatternMismatchError rather than passing the
// name through.
func StripPattern(name, pattern string) (string, error) {
	idx := strings.Index(strings.ToLower(name), strings.ToLower(pattern))
	if idx < 0 {
		return "", &PatternMismatchError{Name: name, Pattern: pattern}
	}
	return name[:idx] + name[idx+len(pattern):], nil
}

// DeriveNames derives a destination name for every matched directory,
// preserving the finder's order.
func DeriveNames(entries []SourceEntry, pattern string) ([]NameMapping, error) {
	mappings := make([]NameMapping, 0, len(entries))
	for _, entry := range entries {
		newName, err := StripPattern(entry.Name, pattern)
		if err != nil {
			return nil, err
		}
		mappings = append(mappings, NameMapping{Source: entry, NewName: newName})
	}
	return mappings, nil
}
