// Package security validates user supplied file paths.
package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// dangerousChars contains shell metacharacters that could be used for injection attacks.
var dangerousChars = []string{";", "&", "|", "$", "`", "<", ">", "\n", "\r"}

// ValidateFilePath cleans path, makes it absolute and resolves symlinks.
// The target must exist and be a regular file.
func ValidateFilePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("file path cannot be empty")
	}

	for _, char := range dangerousChars {
		if strings.Contains(path, char) {
			return "", fmt.Errorf("file path contains forbidden character %q: %s", char, path)
		}
	}

	cleanPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("failed to resolve file path: %w", err)
	}

	resolved, err := filepath.EvalSymlinks(cleanPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve file path: %w", err)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("not a regular file: %s", path)
	}

	return resolved, nil
}

// SafeOpen opens a file after validating the path.
func SafeOpen(path string) (*os.File, error) {
	cleanPath, err := ValidateFilePath(path)
	if err != nil {
		return nil, err
	}
	// #nosec G304 - path is validated above
	return os.Open(cleanPath)
}
