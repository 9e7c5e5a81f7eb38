// Package pathguard validates user-supplied paths and exclusion names before
// they reach the cleanup engine. The engine itself assumes pre-validated
// input, so every external path flows through here exactly once.
package pathguard

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// systemPrefixes are directory trees the cleaner refuses to operate on,
// regardless of what the user asked for.
var systemPrefixes = []string{
	"/etc", "/usr", "/bin", "/sbin", "/lib", "/boot", "/dev", "/proc",
	"/sys", "/var", "/opt",
	`c:\windows`, `c:\program files`, `c:\program files (x86)`,
}

// maxExcludeNameLen bounds exclusion names to a single filesystem component.
const maxExcludeNameLen = 255

// ValidateRoot canonicalizes path and verifies that it exists, is a
// directory, and does not point into a protected system tree. Relative
// paths are resolved against the current working directory. The returned
// path is absolute with symlinks resolved.
func ValidateRoot(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}
	if strings.Contains(path, "~") {
		return "", fmt.Errorf("home directory expansion (~) not allowed in %q", path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %q: %w", path, err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("canonicalizing %q: %w", path, err)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("inspecting %q: %w", path, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%q is not a directory", path)
	}

	lower := strings.ToLower(filepath.ToSlash(resolved))
	for _, prefix := range systemPrefixes {
		p := strings.ToLower(filepath.ToSlash(prefix))
		if lower == p || strings.HasPrefix(lower, p+"/") {
			return "", fmt.Errorf("refusing to clean system directory %q", resolved)
		}
	}

	return resolved, nil
}

// ValidateExcludeName checks that name is a plain directory name: no path
// separators, no traversal sequences, no reserved names, bounded length.
func ValidateExcludeName(name string) error {
	if name == "" {
		return fmt.Errorf("exclude directory name cannot be empty")
	}
	if name == "." || name == ".." {
		return fmt.Errorf("reserved directory name cannot be excluded: %q", name)
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("invalid exclude directory name: %q", name)
	}
	if len(name) > maxExcludeNameLen {
		return fmt.Errorf("exclude directory name too long (max %d characters)", maxExcludeNameLen)
	}
	return nil
}

// ValidateExcludeNames applies ValidateExcludeName to every entry.
func ValidateExcludeNames(names []string) error {
	for _, n := range names {
		if err := ValidateExcludeName(n); err != nil {
			return err
		}
	}
	return nil
}
