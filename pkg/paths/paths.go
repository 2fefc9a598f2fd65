// Package paths canonicalizes watched roots and maps changed files back to
// the root that contains them.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Canonicalize returns the absolute, symlink-resolved form of path.
//
// A leading ~ is expanded to the user's home directory. The path must exist
// and must be a regular file or a directory.
func Canonicalize(path string) (string, error) {
	expanded := ExpandHome(path)

	info, err := os.Stat(expanded)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotExist, path)
		}
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if !info.IsDir() && !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s", ErrNotFileOrDir, path)
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize %s: %w", path, err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize %s: %w", path, err)
	}

	return resolved, nil
}

// CanonicalizeAll canonicalizes every path in order and stops at the first
// failure.
func CanonicalizeAll(paths []string) ([]string, error) {
	roots := make([]string, 0, len(paths))
	for _, path := range paths {
		root, err := Canonicalize(path)
		if err != nil {
			return nil, err
		}
		roots = append(roots, root)
	}

	return roots, nil
}

// NearestRoot walks upward from changed, through changed itself and every
// parent directory, and returns the first path that is exactly one of
// roots. The deepest matching root wins.
//
// Returns ErrOutsideRoots if no ancestor is a root.
func NearestRoot(changed string, roots []string) (string, error) {
	set := make(map[string]struct{}, len(roots))
	for _, root := range roots {
		set[root] = struct{}{}
	}

	current := filepath.Clean(changed)
	for {
		if _, ok := set[current]; ok {
			return current, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}

	return "", fmt.Errorf("%w: %s", ErrOutsideRoots, changed)
}

// ExpandHome expands a leading ~ or ~/ to the user's home directory.
// Other forms, such as ~user, are returned unchanged.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	if path == "~" {
		return homeDir
	}

	return filepath.Join(homeDir, path[2:])
}
