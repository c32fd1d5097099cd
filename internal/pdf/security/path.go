// Package security confines tool supplied paths to a configured directory.
package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideDirectory is returned for paths that escape the configured
// directory, directly or through a symlink.
var ErrOutsideDirectory = errors.New("path is outside configured directory")

// PathValidator provides security validation for file paths
type PathValidator struct {
	root string
}

// NewPathValidator creates a validator rooted at directory, which must exist.
func NewPathValidator(directory string) (*PathValidator, error) {
	if directory == "" {
		return nil, fmt.Errorf("configured directory cannot be empty")
	}

	abs, err := filepath.Abs(directory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve configured directory: %w", err)
	}

	root, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve configured directory: %w", err)
	}

	return &PathValidator{root: root}, nil
}

// Root returns the resolved configured directory.
func (v *PathValidator) Root() string {
	return v.root
}

// Resolve returns the absolute, symlink free location of path. Relative
// paths are taken relative to the configured directory. A path that does
// not exist yet is checked through its nearest existing parent.
func (v *PathValidator) Resolve(path string) (string, error) {
	path = strings.ReplaceAll(path, "\x00", "")
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(v.root, path)
	}
	clean := filepath.Clean(path)

	resolved, err := resolveExisting(clean)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	if !v.contains(resolved) {
		return "", fmt.Errorf("%w: %s", ErrOutsideDirectory, path)
	}
	return resolved, nil
}

// ValidatePath checks that path stays within the configured directory.
func (v *PathValidator) ValidatePath(path string) error {
	_, err := v.Resolve(path)
	return err
}

func (v *PathValidator) contains(path string) bool {
	if path == v.root {
		return true
	}
	prefix := v.root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(path, prefix)
}

// resolveExisting evaluates symlinks in the longest existing prefix of path
// and appends the missing remainder unchanged.
func resolveExisting(path string) (string, error) {
	var missing []string
	for {
		resolved, err := filepath.EvalSymlinks(path)
		if err == nil {
			for i := len(missing) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, missing[i])
			}
			return resolved, nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}

		parent := filepath.Dir(path)
		if parent == path {
			return "", err
		}
		missing = append(missing, filepath.Base(path))
		path = parent
	}
}
