package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoMatches is returned when an input glob matches no file.
var ErrNoMatches = errors.New("no files match pattern")

// ResolveInput turns the positional input argument into the list of files
// to read. A plain path is returned as is, so a missing file surfaces as an
// open error when it is read. An existing file is never treated as a glob,
// even when its name contains glob characters. Anything else with glob
// characters is expanded into its sorted matches.
func ResolveInput(arg string) ([]string, error) {
	if arg == "" {
		return nil, errors.New("input path is empty")
	}

	if !hasGlobMeta(arg) {
		return []string{arg}, nil
	}
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		return []string{arg}, nil
	}

	matches, err := filepath.Glob(arg)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", arg, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoMatches, arg)
	}

	sort.Strings(matches)
	return matches, nil
}

func hasGlobMeta(s string) bool {
	return strings.ContainsAny(s, "*?[")
}
