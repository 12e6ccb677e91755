package renamer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ConflictPolicy decides what happens when the computed name is already taken.
type ConflictPolicy string

const (
	// ConflictFail leaves the file alone and records an error.
	ConflictFail ConflictPolicy = "fail"
	// ConflictSuffix appends " (2)", " (3)", ... before the extension.
	ConflictSuffix ConflictPolicy = "suffix"
	// ConflictOverwrite replaces the existing file.
	ConflictOverwrite ConflictPolicy = "overwrite"
)

// maxSuffix bounds the search for a free " (n)" name.
const maxSuffix = 999

// ParseConflictPolicy converts a configuration value into a ConflictPolicy.
func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	switch p := ConflictPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case ConflictFail, ConflictSuffix, ConflictOverwrite:
		return p, nil
	case "":
		return ConflictFail, nil
	default:
		return "", fmt.Errorf("unknown conflict policy %q (must be one of: fail, suffix, overwrite)", s)
	}
}

// resolveTarget returns the name current should be renamed to inside dir.
func resolveTarget(dir, current, desired string, policy ConflictPolicy) (string, error) {
	if desired == current {
		return desired, nil
	}

	taken, err := occupiedBy(dir, current, desired)
	if err != nil {
		return "", err
	}
	if !taken {
		return desired, nil
	}

	switch policy {
	case ConflictOverwrite:
		return desired, nil
	case ConflictSuffix:
		base := strings.TrimSuffix(desired, filepath.Ext(desired))
		ext := filepath.Ext(desired)
		for n := 2; n <= maxSuffix; n++ {
			candidate := fmt.Sprintf("%s (%d)%s", base, n, ext)
			if candidate == current {
				return candidate, nil
			}
			taken, err := occupiedBy(dir, current, candidate)
			if err != nil {
				return "", err
			}
			if !taken {
				return candidate, nil
			}
		}
		return "", fmt.Errorf("no free name for %s after %d attempts", desired, maxSuffix)
	default:
		return "", fmt.Errorf("target already exists: %s", desired)
	}
}

// occupiedBy reports whether name exists in dir as a different file than current.
// On case-insensitive filesystems a case-only rename finds current itself.
func occupiedBy(dir, current, name string) (bool, error) {
	target, err := os.Lstat(filepath.Join(dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cannot check target %s: %w", name, err)
	}

	source, err := os.Lstat(filepath.Join(dir, current))
	if err == nil && os.SameFile(source, target) {
		return false, nil
	}
	return true, nil
}
