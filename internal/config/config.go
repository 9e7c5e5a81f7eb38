// Package config loads and merges devmole configuration: an optional JSON
// config file layered under command-line flags, with flags winning.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
)

// Bounds and defaults for the safety limits.
const (
	DefaultMaxDepth = 50
	DefaultMaxFiles = 10000

	MaxDepthCeiling      = 1000
	MaxFilesCeiling      = 100000
	MaxConcurrentCeiling = 64
)

// configFileNames are probed in order at each search location.
var configFileNames = []string{"devmole.json", ".devmole.json"}

// DefaultExcludeDirs are directory names pruned from every scan unless the
// user overrides them. They are either build output (cleaning inside them
// is pointless) or source trees that never hold project roots of their own.
var DefaultExcludeDirs = []string{
	"node_modules",
	"target",
	"build",
	"dist",
	"bin",
	"pkg",
	"src",
	"tests",
	"test",
}

// File mirrors the JSON config file. Zero values mean "not set".
type File struct {
	DefaultPath   string   `json:"default_path,omitempty"`
	ExcludeTypes  []string `json:"exclude_types,omitempty"`
	ExcludeDirs   []string `json:"exclude_dirs,omitempty"`
	MaxConcurrent int      `json:"max_concurrent,omitempty"`
	MaxDepth      int      `json:"max_depth,omitempty"`
	MaxFiles      int      `json:"max_files,omitempty"`
	Verbose       bool     `json:"verbose,omitempty"`
}

// Effective is the merged, validated configuration a run uses.
type Effective struct {
	Path          string
	ExcludeTypes  []string
	ExcludeDirs   []string
	MaxConcurrent int
	MaxDepth      int
	MaxFiles      int
	Verbose       bool
}

// FromFile reads a JSON config file.
func FromFile(path string) (File, error) {
	var f File
	data, err := os.ReadFile(path)
	if err != nil {
		return f, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return f, nil
}

// Load finds and reads the first config file present: user config
// directory first, then the working directory, then ./config. A missing
// file is not an error; the zero File is returned.
func Load() (File, error) {
	var dirs []string
	if userDir, err := UserConfigDir(); err == nil {
		dirs = append(dirs, userDir)
	}
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd, filepath.Join(cwd, "config"))
	}

	for _, dir := range dirs {
		for _, name := range configFileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return FromFile(path)
			}
		}
	}
	return File{}, nil
}

// Validate checks bounds on every set value.
func (f File) Validate() error {
	if f.MaxConcurrent < 0 || f.MaxConcurrent > MaxConcurrentCeiling {
		return fmt.Errorf("max_concurrent must be between 1 and %d, got %d", MaxConcurrentCeiling, f.MaxConcurrent)
	}
	if f.MaxDepth < 0 || f.MaxDepth > MaxDepthCeiling {
		return fmt.Errorf("max_depth must be between 1 and %d, got %d", MaxDepthCeiling, f.MaxDepth)
	}
	if f.MaxFiles < 0 || f.MaxFiles > MaxFilesCeiling {
		return fmt.Errorf("max_files must be between 1 and %d, got %d", MaxFilesCeiling, f.MaxFiles)
	}
	return nil
}

// Validate checks that the merged limits are positive and within the same
// ceilings enforced on the config file. CLI flags never pass through
// File.Validate, so the merged result must be checked before it reaches
// the engine: a negative depth would silently empty every scan, and a
// negative file ceiling would zero every size measurement.
func (e Effective) Validate() error {
	if e.MaxConcurrent < 1 || e.MaxConcurrent > MaxConcurrentCeiling {
		return fmt.Errorf("concurrency must be between 1 and %d, got %d", MaxConcurrentCeiling, e.MaxConcurrent)
	}
	if e.MaxDepth < 1 || e.MaxDepth > MaxDepthCeiling {
		return fmt.Errorf("max depth must be between 1 and %d, got %d", MaxDepthCeiling, e.MaxDepth)
	}
	if e.MaxFiles < 1 || e.MaxFiles > MaxFilesCeiling {
		return fmt.Errorf("max files must be between 1 and %d, got %d", MaxFilesCeiling, e.MaxFiles)
	}
	return nil
}

// Merge layers CLI values over the file config and fills in defaults.
// CLI zero values mean the flag was not given.
func (f File) Merge(cli Effective) Effective {
	out := cli

	if out.Path == "" {
		out.Path = f.DefaultPath
	}
	if out.Path == "" {
		out.Path = "."
	}
	if len(out.ExcludeTypes) == 0 {
		out.ExcludeTypes = f.ExcludeTypes
	}
	if len(out.ExcludeDirs) == 0 {
		out.ExcludeDirs = f.ExcludeDirs
	}
	if out.MaxConcurrent == 0 {
		out.MaxConcurrent = f.MaxConcurrent
	}
	if out.MaxConcurrent == 0 {
		out.MaxConcurrent = DefaultConcurrency()
	}
	if out.MaxDepth == 0 {
		out.MaxDepth = f.MaxDepth
	}
	if out.MaxDepth == 0 {
		out.MaxDepth = DefaultMaxDepth
	}
	if out.MaxFiles == 0 {
		out.MaxFiles = f.MaxFiles
	}
	if out.MaxFiles == 0 {
		out.MaxFiles = DefaultMaxFiles
	}
	out.Verbose = out.Verbose || f.Verbose

	// User exclusions extend the defaults rather than replacing them.
	out.ExcludeDirs = append(append([]string(nil), DefaultExcludeDirs...), out.ExcludeDirs...)

	return out
}

// DefaultConcurrency is the worker count when none is configured: the
// number of logical CPUs, capped by the concurrency ceiling.
func DefaultConcurrency() int {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		n = runtime.NumCPU()
	}
	if n < 1 {
		n = 1
	}
	if n > MaxConcurrentCeiling {
		n = MaxConcurrentCeiling
	}
	return n
}

// UserConfigDir returns the per-user config directory: %APPDATA%\devmole
// on Windows, ~/.devmole elsewhere.
func UserConfigDir() (string, error) {
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "devmole"), nil
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, ".devmole"), nil
}

// UserConfigPath returns the path of the user's config file, which may not
// exist yet.
func UserConfigPath() (string, error) {
	dir, err := UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileNames[0]), nil
}

// InitUserConfig writes a default config file in the user config
// directory, creating the directory if needed, and returns its path.
func InitUserConfig() (string, error) {
	path, err := UserConfigPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}
	if err := writeFile(path, File{}); err != nil {
		return "", err
	}
	return path, nil
}

// SetUserValue updates one key in the user's config file, creating the
// file if it does not exist.
func SetUserValue(key, value string) error {
	path, err := UserConfigPath()
	if err != nil {
		return err
	}

	var f File
	if _, statErr := os.Stat(path); statErr == nil {
		if f, err = FromFile(path); err != nil {
			return err
		}
	} else if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	switch key {
	case "default_path":
		f.DefaultPath = value
	case "exclude_types":
		f.ExcludeTypes = splitList(value)
	case "exclude_dirs":
		f.ExcludeDirs = splitList(value)
	case "max_concurrent":
		if f.MaxConcurrent, err = parsePositive(key, value); err != nil {
			return err
		}
	case "max_depth":
		if f.MaxDepth, err = parsePositive(key, value); err != nil {
			return err
		}
	case "max_files":
		if f.MaxFiles, err = parsePositive(key, value); err != nil {
			return err
		}
	case "verbose":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for verbose: %q", value)
		}
		f.Verbose = v
	default:
		return fmt.Errorf("unknown configuration key: %q", key)
	}

	if err := f.Validate(); err != nil {
		return err
	}
	return writeFile(path, f)
}

// UserConfig reads the user config file, returning the zero File when it
// does not exist.
func UserConfig() (File, error) {
	path, err := UserConfigPath()
	if err != nil {
		return File{}, err
	}
	if _, err := os.Stat(path); err != nil {
		return File{}, nil
	}
	return FromFile(path)
}

func writeFile(path string, f File) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parsePositive(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid value for %s: %q", key, value)
	}
	return n, nil
}
