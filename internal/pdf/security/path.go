// Package security checks externally supplied paths before the renamer touches them.
package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot is returned for paths that resolve outside the validator's root.
var ErrOutsideRoot = errors.New("path is outside configured directory")

// PathValidator confines paths to one root directory
type PathValidator struct {
	root string
}

// NewPathValidator creates a validator for root, which must be an existing directory.
func NewPathValidator(root string) (*PathValidator, error) {
	if root == "" {
		return nil, errors.New("configured directory cannot be empty")
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve configured directory: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("cannot access configured directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("configured directory is not a directory: %s", root)
	}

	return &PathValidator{root: abs}, nil
}

// Root returns the resolved root directory
func (v *PathValidator) Root() string {
	return v.root
}

// Resolve returns the absolute form of path. Relative paths are taken from the
// root, and symlinks are followed before the containment check.
func (v *PathValidator) Resolve(path string) (string, error) {
	path = strings.ReplaceAll(path, "\x00", "")
	if path == "" {
		return "", errors.New("path cannot be empty")
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(v.root, path)
	}
	clean := filepath.Clean(path)

	target := clean
	if resolved, err := filepath.EvalSymlinks(clean); err == nil {
		target = resolved
	}

	if !v.contains(target) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, path)
	}
	return target, nil
}

// ResolveDirectory is Resolve for paths that must name an existing directory.
// An empty path means the root itself.
func (v *PathValidator) ResolveDirectory(path string) (string, error) {
	if path == "" {
		return v.root, nil
	}

	resolved, err := v.Resolve(path)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path is not a directory: %s", path)
	}
	return resolved, nil
}

func (v *PathValidator) contains(path string) bool {
	if path == v.root {
		return true
	}
	rootWithSep := v.root
	if !strings.HasSuffix(rootWithSep, string(filepath.Separator)) {
		rootWithSep += string(filepath.Separator)
	}
	return strings.HasPrefix(path, rootWithSep)
}
