package features

import (
	"fmt"
	"io/fs"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// FunctionPatterns returns the keys of the functions object, sorted.
func FunctionPatterns(config map[string]any) []string {
	functions, ok := config["functions"].(map[string]any)
	if !ok {
		return nil
	}
	patterns := make([]string, 0, len(functions))
	for pattern := range functions {
		patterns = append(patterns, pattern)
	}
	slices.Sort(patterns)
	return patterns
}

// InvalidPatterns returns the patterns that are not valid globs.
func InvalidPatterns(patterns []string) []string {
	var invalid []string
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			invalid = append(invalid, p)
		}
	}
	return invalid
}

// UnmatchedPatterns returns the valid patterns that match no file in fsys.
// Invalid patterns are skipped; report them with InvalidPatterns.
func UnmatchedPatterns(fsys fs.FS, patterns []string) ([]string, error) {
	var unmatched []string
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			continue
		}
		matches, err := doublestar.Glob(fsys, p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("failed to match pattern %q: %w", p, err)
		}
		if len(matches) == 0 {
			unmatched = append(unmatched, p)
		}
	}
	return unmatched, nil
}
